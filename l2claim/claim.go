package l2claim

import (
	"crypto/sha256"
	"crypto/subtle"

	"github.com/go-errors/errors"

	"github.com/lightninglabs/xmrswap/curveutil"
)

// ErrAddressNetworkMismatch is returned when the destination address
// does not parse as a valid address for the declared network.
var ErrAddressNetworkMismatch = errors.New("l2claim: destination address does not parse for network")

// ErrSecretHashlockMismatch is returned when the caller supplies an
// expected hashlock that the revealed secret does not satisfy.
var ErrSecretHashlockMismatch = errors.New("l2claim: secret/hashlock mismatch")

// AddressValidator parses and validates a destination address string
// against a declared network, e.g. checking its prefix and checksum.
type AddressValidator interface {
	Validate(address, network string) error
}

// Params bundles ExecuteClaim's arguments.
type Params struct {
	DestinationAddress string
	Network            string

	// ExpectedHashlock, if non-nil, is checked against
	// SHA256(RevealedSecret) before any wallet state is touched.
	ExpectedHashlock *[32]byte
	RevealedSecret   []byte

	PartialA, PartialB []byte // 32-byte scalar encodings, reduced mod l

	RestoreHeight uint64
	GuardPath     string
}

// ExecuteClaim runs the import-then-sweep claim flow: it validates the
// destination address and the revealed secret, acquires the replay
// guard, derives and imports the composite spend/view key, sweeps the
// wallet's balance to the destination, and commits the guard only once
// the sweep has succeeded.
func ExecuteClaim(validator AddressValidator, wallet Wallet, p Params) (txHash string, err error) {
	defer zero(p.RevealedSecret)
	defer zero(p.PartialA)
	defer zero(p.PartialB)

	if err := validator.Validate(p.DestinationAddress, p.Network); err != nil {
		return "", ErrAddressNetworkMismatch
	}

	if p.ExpectedHashlock != nil {
		sum := sha256.Sum256(p.RevealedSecret)
		if subtle.ConstantTimeCompare(sum[:], p.ExpectedHashlock[:]) != 1 {
			return "", ErrSecretHashlockMismatch
		}
	}

	guard, err := AcquireGuard(p.GuardPath)
	if err != nil {
		return "", err
	}
	defer guard.Release()

	revealedSecret, err := curveutil.ReduceScalar(p.RevealedSecret)
	if err != nil {
		return "", errors.Errorf("l2claim: reducing revealed secret: %v", err)
	}
	partialA, err := curveutil.ScalarFromCanonicalBytes(p.PartialA)
	if err != nil {
		return "", errors.Errorf("l2claim: parsing partial A: %v", err)
	}
	partialB, err := curveutil.ScalarFromCanonicalBytes(p.PartialB)
	if err != nil {
		return "", errors.Errorf("l2claim: parsing partial B: %v", err)
	}

	spend := DeriveSpendKey(partialA, partialB, revealedSecret)
	view, err := DeriveViewKey(spend)
	if err != nil {
		return "", errors.Errorf("l2claim: deriving view key: %v", err)
	}
	addr := DeriveAddress(p.Network, spend, view)

	if err := wallet.ImportSpendKey(spend, view, addr, p.RestoreHeight); err != nil {
		return "", errors.Errorf("l2claim: importing spend key: %v", err)
	}

	txHash, err = wallet.SweepAll(p.DestinationAddress)
	if err != nil {
		return "", errors.Errorf("l2claim: sweeping to destination: %v", err)
	}

	guard.Commit()
	return txHash, nil
}

// zero overwrites b with zero bytes in place. Called on every claim
// exit path so secret material does not linger in memory past use.
func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

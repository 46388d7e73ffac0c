package escrowprog

import (
	"bytes"
	"crypto/sha256"
	"crypto/subtle"
	"time"

	"github.com/lightninglabs/xmrswap/dleq"
)

// TokenLedger is the minimal view of the host L1 runtime the program
// needs in order to move tokens. The runtime itself is external to
// this package; this interface is the program's entire contract with it.
type TokenLedger interface {
	// MintOf returns the token mint held by account.
	MintOf(account []byte) ([]byte, error)

	// TransferToVault moves amount of mint from funding into vault,
	// both authorized by the depositor's signature (checked by the
	// runtime, not by the program).
	TransferToVault(funding, vault, mint []byte, amount uint64) error

	// TransferFromVault moves amount of mint from vault to dest,
	// signed for by the program's derived authority over vault.
	TransferFromVault(vault, dest, mint []byte, amount uint64) error
}

// InitParams bundles Initialize's arguments.
type InitParams struct {
	ProgramID      []byte
	Depositor      []byte
	FundingAccount []byte
	Transcript     dleq.Transcript
	LockUntil      time.Time
	Amount         uint64
	TokenMint      []byte
}

// Initialize creates and funds a new escrow Record. It is the only
// operation that runs the DLEQ transcript validator against
// caller-supplied (not yet stored) fields.
func Initialize(now time.Time, ledger TokenLedger, p InitParams) (*Record, *Initialized, error) {
	if !p.LockUntil.After(now) {
		return nil, nil, ErrInvalidTimelock
	}

	fundingMint, err := ledger.MintOf(p.FundingAccount)
	if err != nil {
		return nil, nil, wrapf("escrowprog: reading funding account mint: %w", err)
	}
	if !bytes.Equal(fundingMint, p.TokenMint) {
		return nil, nil, ErrInvalidTokenMint
	}

	if !dleq.ValidateTranscript(p.Transcript) {
		return nil, nil, ErrInvalidDleqProof
	}

	escrowAddr := DeriveEscrowAddress(p.ProgramID, p.Depositor, p.Transcript.H)
	vault := DeriveVaultAddress(p.ProgramID, escrowAddr)

	if err := ledger.TransferToVault(p.FundingAccount, vault[:], p.TokenMint, p.Amount); err != nil {
		return nil, nil, wrapf("escrowprog: funding vault: %w", err)
	}

	rec := &Record{
		Address:   escrowAddr,
		Depositor: p.Depositor,
		Hashlock:  p.Transcript.H,
		AdaptorT:  p.Transcript.T,
		SecondU:   p.Transcript.U,
		YPoint:    p.Transcript.Y,
		R1:        p.Transcript.R1,
		R2:        p.Transcript.R2,
		Challenge: p.Transcript.C,
		Response:  p.Transcript.S,
		LockUntil: p.LockUntil,
		Amount:    p.Amount,
		TokenMint: p.TokenMint,
		Vault:     vault[:],
	}

	evt := &Initialized{
		Lock:      escrowAddr,
		Depositor: p.Depositor,
		Mint:      p.TokenMint,
		Amount:    p.Amount,
		LockUntil: p.LockUntil.Unix(),
	}
	return rec, evt, nil
}

// VerifyDleq re-runs the on-ledger transcript validator over the
// record's stored fields and sets DleqVerified. It is idempotent: a
// second call on an already-verified record is a no-op success.
func VerifyDleq(rec *Record) error {
	if rec.DleqVerified {
		return nil
	}
	if !dleq.ValidateTranscript(rec.transcript()) {
		return ErrInvalidDleqProof
	}
	rec.DleqVerified = true
	return nil
}

// UnlockParams bundles VerifyAndUnlock's arguments.
type UnlockParams struct {
	Unlocker        []byte
	UnlockerAccount []byte
	Secret          []byte
}

// VerifyAndUnlock releases the vault to the unlocker once the revealed
// secret hashes to the stored hashlock.
func VerifyAndUnlock(rec *Record, ledger TokenLedger, p UnlockParams) (*Unlocked, error) {
	if rec.Unlocked {
		return nil, ErrAlreadyUnlocked
	}
	if !rec.DleqVerified {
		return nil, ErrDleqNotVerified
	}

	mint, err := ledger.MintOf(p.UnlockerAccount)
	if err != nil {
		return nil, wrapf("escrowprog: reading unlocker account mint: %w", err)
	}
	if !bytes.Equal(mint, rec.TokenMint) {
		return nil, ErrInvalidTokenMint
	}

	sum := sha256.Sum256(p.Secret)
	if subtle.ConstantTimeCompare(sum[:], rec.Hashlock[:]) != 1 {
		return nil, ErrInvalidSecret
	}

	if err := ledger.TransferFromVault(rec.Vault, p.UnlockerAccount, rec.TokenMint, rec.Amount); err != nil {
		return nil, wrapf("escrowprog: draining vault to unlocker: %w", err)
	}
	rec.Unlocked = true

	return &Unlocked{Lock: rec.Address, Unlocker: p.Unlocker, Amount: rec.Amount}, nil
}

// RefundParams bundles Refund's arguments.
type RefundParams struct {
	Caller []byte
}

// Refund returns the vault to the depositor once the timelock has
// passed, provided the escrow has not already been drained.
func Refund(now time.Time, rec *Record, ledger TokenLedger, p RefundParams) (*Refunded, error) {
	if rec.Unlocked {
		return nil, ErrAlreadyUnlocked
	}
	if !bytes.Equal(p.Caller, rec.Depositor) {
		return nil, ErrUnauthorizedDepositor
	}
	if now.Before(rec.LockUntil) {
		return nil, ErrRefundNotAvailable
	}

	depositorMint, err := ledger.MintOf(rec.Depositor)
	if err != nil {
		return nil, wrapf("escrowprog: reading depositor account mint: %w", err)
	}
	if !bytes.Equal(depositorMint, rec.TokenMint) {
		return nil, ErrInvalidTokenMint
	}

	if err := ledger.TransferFromVault(rec.Vault, rec.Depositor, rec.TokenMint, rec.Amount); err != nil {
		return nil, wrapf("escrowprog: refunding vault to depositor: %w", err)
	}
	rec.Unlocked = true

	return &Refunded{Lock: rec.Address, Depositor: rec.Depositor, Amount: rec.Amount}, nil
}

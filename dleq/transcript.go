// Package dleq implements the discrete-log-equality proof that binds
// an L1-usable hashlock to an L2 adaptor point, plus the cheap
// transcript-only check the L1 program itself can afford to run.
package dleq

import (
	"golang.org/x/crypto/blake2s"

	"github.com/lightninglabs/xmrswap/curveutil"
)

// domainTag distinguishes this transcript from any other use of
// Blake2s-256 in the system. It is mandatory and always the first four
// bytes hashed.
var domainTag = []byte("DLEQ")

// Transcript is the full set of public values a DLEQ proof publishes:
// the two witness points, the nonce commitments, the challenge, the
// response, and the hashlock the proof is bound to. Field sizes match
// the escrow record layout.
type Transcript struct {
	T  [32]byte // t*G
	U  [32]byte // t*Y
	Y  [32]byte // counterparty's public partial
	R1 [32]byte // k*G
	R2 [32]byte // k*Y
	C  [32]byte // Fiat-Shamir challenge
	S  [32]byte // k + c*t
	H  [32]byte // SHA256(secret), the hashlock
}

// ComputeChallenge recomputes c = reduce_mod_l(Blake2s-256("DLEQ" || G ||
// Y || T || U || R1 || R2 || H)) from the raw 32-byte fields, with no
// point decompression. This is deliberately cheap enough to run inside
// an on-ledger program: it costs one hash and one scalar reduction.
func ComputeChallenge(g, y, t, u, r1, r2, h [32]byte) [32]byte {
	hasher, _ := blake2s.New256(nil)
	hasher.Write(domainTag)
	hasher.Write(g[:])
	hasher.Write(y[:])
	hasher.Write(t[:])
	hasher.Write(u[:])
	hasher.Write(r1[:])
	hasher.Write(r2[:])
	hasher.Write(h[:])
	digest := hasher.Sum(nil)

	scalar, err := curveutil.ReduceScalar(digest)
	if err != nil {
		// digest is always exactly 32 bytes from blake2s.New256, so
		// ReduceScalar cannot fail here.
		panic(err)
	}

	var out [32]byte
	copy(out[:], scalar.Bytes())
	return out
}

// ValidateTranscript is the on-ledger fast path: it recomputes the
// challenge over t.G (the fixed generator), t.Y, t.T, t.U, t.R1, t.R2,
// t.H and compares it byte-for-byte against t.C. It performs no point
// decompression and therefore cannot itself raise
// ErrInvalidPointEncoding; a transcript with malformed points will
// simply fail to match here too, because the challenge hash covers the
// raw point bytes.
func ValidateTranscript(t Transcript) bool {
	var g [32]byte
	copy(g[:], curveutil.CompressPoint(curveutil.Generator()))

	recomputed := ComputeChallenge(g, t.Y, t.T, t.U, t.R1, t.R2, t.H)
	return recomputed == t.C
}

// Package curveutil wraps filippo.io/edwards25519 with the decompression,
// small-order rejection, and scalar reduction rules this system's DLEQ
// transcripts depend on, plus a compute-budget-conscious windowed
// scalar-mult routine for the on-ledger verification path.
package curveutil

import (
	"filippo.io/edwards25519"
)

// PointSize is the length in bytes of a compressed Edwards-25519 point.
const PointSize = 32

// DecompressPoint decodes a 32-byte compressed point, rejecting
// non-canonical encodings (via the underlying library) and points of
// small order (order dividing the curve's cofactor of 8).
//
// Five points per transcript go through this check: G is the fixed
// generator and never decompressed this way, but Y, T, U, R1, R2 all
// must be rejected here if malformed.
func DecompressPoint(b []byte) (*edwards25519.Point, error) {
	if len(b) != PointSize {
		return nil, ErrInvalidPointEncoding
	}

	p, err := new(edwards25519.Point).SetBytes(b)
	if err != nil {
		return nil, ErrInvalidPointEncoding
	}

	if IsSmallOrder(p) {
		return nil, ErrInvalidPointEncoding
	}

	return p, nil
}

// IsSmallOrder reports whether p has order dividing 8, i.e. whether
// multiplying p by the cofactor yields the identity element. The
// identity itself (the neutral element) is small-order and is rejected
// by this check.
func IsSmallOrder(p *edwards25519.Point) bool {
	cleared := new(edwards25519.Point).MultByCofactor(p)
	identity := edwards25519.NewIdentityPoint()
	return cleared.Equal(identity) == 1
}

// CompressPoint returns the canonical 32-byte compressed encoding of p.
func CompressPoint(p *edwards25519.Point) []byte {
	return p.Bytes()
}

// Generator returns the standard Edwards-25519 base point G.
func Generator() *edwards25519.Point {
	return edwards25519.NewGeneratorPoint()
}

package curveutil

import (
	"crypto/rand"
	"fmt"

	"filippo.io/edwards25519"
)

// ScalarSize is the length in bytes of a canonical scalar encoding.
const ScalarSize = 32

// ReduceScalar constructs a scalar from raw bytes, reducing modulo the
// group order l, for every case where a scalar is constructed from raw
// bytes rather than sampled uniformly. b may be up to 32 bytes, or
// exactly 64; shorter inputs are zero-extended to the 64-byte width
// the underlying wide-reduction routine requires.
func ReduceScalar(b []byte) (*edwards25519.Scalar, error) {
	wide := make([]byte, 64)
	switch {
	case len(b) == 64:
		copy(wide, b)
	case len(b) <= 32:
		copy(wide, b)
	default:
		return nil, fmt.Errorf("curveutil: scalar input too large (%d bytes)", len(b))
	}

	s, err := new(edwards25519.Scalar).SetUniformBytes(wide)
	if err != nil {
		return nil, fmt.Errorf("curveutil: reducing scalar: %w", err)
	}
	return s, nil
}

// RandomScalar samples a scalar uniformly at random, used for the DLEQ
// prover's nonce k.
func RandomScalar() (*edwards25519.Scalar, error) {
	var buf [64]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return nil, fmt.Errorf("curveutil: sampling nonce: %w", err)
	}
	return new(edwards25519.Scalar).SetUniformBytes(buf[:])
}

// ScalarFromCanonicalBytes parses an already-reduced, canonically
// encoded 32-byte scalar (e.g. a stored response or challenge field),
// rejecting values that are not the canonical encoding of an element of
// Z_l.
func ScalarFromCanonicalBytes(b []byte) (*edwards25519.Scalar, error) {
	if len(b) != ScalarSize {
		return nil, fmt.Errorf("curveutil: scalar must be %d bytes, got %d", ScalarSize, len(b))
	}
	s, err := new(edwards25519.Scalar).SetCanonicalBytes(b)
	if err != nil {
		return nil, fmt.Errorf("curveutil: non-canonical scalar: %w", err)
	}
	return s, nil
}

// AddScalars returns a+b mod l.
func AddScalars(a, b *edwards25519.Scalar) *edwards25519.Scalar {
	return new(edwards25519.Scalar).Add(a, b)
}

// MultiplyAddScalars returns x*y + z mod l.
func MultiplyAddScalars(x, y, z *edwards25519.Scalar) *edwards25519.Scalar {
	return new(edwards25519.Scalar).MultiplyAdd(x, y, z)
}

package curveutil

import "filippo.io/edwards25519"

// ScalarMultWindowed computes s*p using a fixed 4-bit window over a
// precomputed table of the 16 low multiples of p. It does strictly more
// point additions than the library's own ScalarMult for a single
// multiplication, but it bounds the work to one table build plus 64
// steps of four doublings, each followed by one table addition when
// that step's digit is non-zero, which is the shape an on-ledger full
// DLEQ verifier would need under a fixed compute budget if that path is
// ever reintroduced. The current program does not call this; it is
// kept available for the part-1/part-2 verifier split.
func ScalarMultWindowed(s *edwards25519.Scalar, p *edwards25519.Point) *edwards25519.Point {
	table := buildWindowTable(p)

	digits := scalarNibbles(s)

	acc := edwards25519.NewIdentityPoint()
	for i := len(digits) - 1; i >= 0; i-- {
		for j := 0; j < 4; j++ {
			acc.Add(acc, acc)
		}
		d := digits[i]
		if d != 0 {
			acc.Add(acc, table[d])
		}
	}
	return acc
}

// buildWindowTable returns [0*p, 1*p, ..., 15*p].
func buildWindowTable(p *edwards25519.Point) [16]*edwards25519.Point {
	var table [16]*edwards25519.Point
	table[0] = edwards25519.NewIdentityPoint()
	table[1] = p
	for i := 2; i < 16; i++ {
		table[i] = new(edwards25519.Point).Add(table[i-1], p)
	}
	return table
}

// scalarNibbles splits a scalar's canonical little-endian encoding into
// 64 big-endian-ordered 4-bit digits (most significant nibble first),
// suitable for driving a fixed left-to-right windowed multiplication.
func scalarNibbles(s *edwards25519.Scalar) []byte {
	b := s.Bytes() // 32 bytes, little-endian.
	digits := make([]byte, 0, 64)
	for i := len(b) - 1; i >= 0; i-- {
		digits = append(digits, b[i]>>4, b[i]&0x0f)
	}
	return digits
}

// DoubleScalarMult computes a*A + b*B, the combined form the off-ledger
// verifier uses for both DLEQ equations (s*G - c*T and s*Y - c*U can
// each be expressed as a sum of two scalar multiplications by negating
// one scalar). It defers to the library's own ScalarMult for each term,
// the straightforward double-scalar form used on the off-ledger path,
// as opposed to ScalarMultWindowed's fixed-budget form.
func DoubleScalarMult(a *edwards25519.Scalar, A *edwards25519.Point, b *edwards25519.Scalar, B *edwards25519.Point) *edwards25519.Point {
	aA := new(edwards25519.Point).ScalarMult(a, A)
	bB := new(edwards25519.Point).ScalarMult(b, B)
	return new(edwards25519.Point).Add(aA, bB)
}

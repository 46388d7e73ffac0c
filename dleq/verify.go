package dleq

import (
	"filippo.io/edwards25519"

	"github.com/lightninglabs/xmrswap/curveutil"
)

// decompressed holds the five transcript points once decompressed and
// checked for small order, plus the parsed challenge/response scalars.
type decompressed struct {
	y, t, u, r1, r2 *edwards25519.Point
	c, s            *edwards25519.Scalar
	ok              bool
}

// decompose decompresses every point in tr and parses its scalars. The
// result has ok=false (and no error is returned) whenever a scalar
// fails to parse as canonical; that is a soft verification failure,
// not a hard error. A hard ErrInvalidPointEncoding is returned only
// for point decompression/small-order failures.
func decompose(tr Transcript) (decompressed, error) {
	y, err := curveutil.DecompressPoint(tr.Y[:])
	if err != nil {
		return decompressed{}, ErrInvalidPointEncoding
	}
	t, err := curveutil.DecompressPoint(tr.T[:])
	if err != nil {
		return decompressed{}, ErrInvalidPointEncoding
	}
	u, err := curveutil.DecompressPoint(tr.U[:])
	if err != nil {
		return decompressed{}, ErrInvalidPointEncoding
	}
	r1, err := curveutil.DecompressPoint(tr.R1[:])
	if err != nil {
		return decompressed{}, ErrInvalidPointEncoding
	}
	r2, err := curveutil.DecompressPoint(tr.R2[:])
	if err != nil {
		return decompressed{}, ErrInvalidPointEncoding
	}

	c, err := curveutil.ScalarFromCanonicalBytes(tr.C[:])
	if err != nil {
		return decompressed{}, nil
	}
	s, err := curveutil.ScalarFromCanonicalBytes(tr.S[:])
	if err != nil {
		return decompressed{}, nil
	}

	return decompressed{y: y, t: t, u: u, r1: r1, r2: r2, c: c, s: s, ok: true}, nil
}

// Verify runs the full off-ledger verifier: it decompresses all five
// points (hard error on failure), recomputes the challenge, and checks
// both DLEQ equations. It returns (false, nil) for any mismatch and
// only returns a non-nil error for ErrInvalidPointEncoding.
func Verify(tr Transcript) (bool, error) {
	d, err := decompose(tr)
	if err != nil {
		return false, err
	}
	if !d.ok {
		return false, nil
	}

	var gBytes [32]byte
	copy(gBytes[:], curveutil.CompressPoint(curveutil.Generator()))
	recomputed := ComputeChallenge(gBytes, tr.Y, tr.T, tr.U, tr.R1, tr.R2, tr.H)
	if recomputed != tr.C {
		return false, nil
	}

	if !checkEquation(d.s, d.c, d.t, curveutil.Generator(), d.r1) {
		return false, nil
	}
	if !checkEquation(d.s, d.c, d.u, d.y, d.r2) {
		return false, nil
	}
	return true, nil
}

// VerifyPart1 checks only s*G - c*T == R1, the first of the two
// equations a full verification requires. It exists so that an
// on-ledger full verifier reintroduced later can split the two
// scalar-mul checks across separate transactions under a fixed
// compute budget.
func VerifyPart1(tr Transcript) (bool, error) {
	d, err := decompose(tr)
	if err != nil {
		return false, err
	}
	if !d.ok {
		return false, nil
	}
	return checkEquation(d.s, d.c, d.t, curveutil.Generator(), d.r1), nil
}

// VerifyPart2 checks only s*Y - c*U == R2, the second equation.
func VerifyPart2(tr Transcript) (bool, error) {
	d, err := decompose(tr)
	if err != nil {
		return false, err
	}
	if !d.ok {
		return false, nil
	}
	return checkEquation(d.s, d.c, d.u, d.y, d.r2), nil
}

// checkEquation reports whether s*base - c*point == r, computed as
// s*base + (-c)*point to stay within the library's addition API.
func checkEquation(s, c *edwards25519.Scalar, point, base, r *edwards25519.Point) bool {
	negC := new(edwards25519.Scalar).Negate(c)
	lhs := curveutil.DoubleScalarMult(s, base, negC, point)
	return lhs.Equal(r) == 1
}

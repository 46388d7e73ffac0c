package dleq

import (
	"filippo.io/edwards25519"

	"github.com/lightninglabs/xmrswap/curveutil"
)

// Prove constructs a DLEQ transcript for secret t and counterparty point
// Y, bound to hashlock h: it samples a nonce k, computes R1 = k*G, R2 =
// k*Y, T = t*G, U = t*Y, the Fiat-Shamir challenge c, and the response s
// = k + c*t.
func Prove(t *edwards25519.Scalar, y *edwards25519.Point, h [32]byte) (Transcript, error) {
	g := curveutil.Generator()

	k, err := curveutil.RandomScalar()
	if err != nil {
		return Transcript{}, err
	}

	r1 := new(edwards25519.Point).ScalarBaseMult(k)
	r2 := new(edwards25519.Point).ScalarMult(k, y)
	tPoint := new(edwards25519.Point).ScalarBaseMult(t)
	uPoint := new(edwards25519.Point).ScalarMult(t, y)

	var out Transcript
	copy(out.Y[:], curveutil.CompressPoint(y))
	copy(out.T[:], curveutil.CompressPoint(tPoint))
	copy(out.U[:], curveutil.CompressPoint(uPoint))
	copy(out.R1[:], curveutil.CompressPoint(r1))
	copy(out.R2[:], curveutil.CompressPoint(r2))
	out.H = h

	var gBytes [32]byte
	copy(gBytes[:], curveutil.CompressPoint(g))
	out.C = ComputeChallenge(gBytes, out.Y, out.T, out.U, out.R1, out.R2, out.H)

	c, err := curveutil.ScalarFromCanonicalBytes(out.C[:])
	if err != nil {
		return Transcript{}, err
	}
	s := curveutil.MultiplyAddScalars(c, t, k)
	copy(out.S[:], s.Bytes())

	return out, nil
}

package curveutil_test

import (
	"testing"

	"filippo.io/edwards25519"
	"github.com/stretchr/testify/require"

	"github.com/lightninglabs/xmrswap/curveutil"
)

func TestDecompressRejectsIdentity(t *testing.T) {
	identity := edwards25519.NewIdentityPoint().Bytes()
	_, err := curveutil.DecompressPoint(identity)
	require.ErrorIs(t, err, curveutil.ErrInvalidPointEncoding)
}

func TestDecompressRejectsWrongLength(t *testing.T) {
	_, err := curveutil.DecompressPoint(make([]byte, 31))
	require.ErrorIs(t, err, curveutil.ErrInvalidPointEncoding)
}

func TestDecompressAcceptsGenerator(t *testing.T) {
	g := curveutil.Generator().Bytes()
	p, err := curveutil.DecompressPoint(g)
	require.NoError(t, err)
	require.Equal(t, g, curveutil.CompressPoint(p))
}

func TestScalarMultWindowedMatchesLibrary(t *testing.T) {
	s, err := curveutil.ReduceScalar([]byte("some arbitrary 32 byte input!!!"))
	require.NoError(t, err)

	g := curveutil.Generator()
	want := new(edwards25519.Point).ScalarMult(s, g)
	got := curveutil.ScalarMultWindowed(s, g)

	require.Equal(t, want.Bytes(), got.Bytes())
}

func TestDoubleScalarMult(t *testing.T) {
	a, err := curveutil.RandomScalar()
	require.NoError(t, err)
	b, err := curveutil.RandomScalar()
	require.NoError(t, err)

	g := curveutil.Generator()
	want := new(edwards25519.Point).Add(
		new(edwards25519.Point).ScalarMult(a, g),
		new(edwards25519.Point).ScalarMult(b, g),
	)
	got := curveutil.DoubleScalarMult(a, g, b, g)
	require.Equal(t, want.Bytes(), got.Bytes())
}

func TestReduceScalarRoundTrip(t *testing.T) {
	raw := make([]byte, 32)
	raw[0] = 0x01
	s, err := curveutil.ReduceScalar(raw)
	require.NoError(t, err)
	require.Len(t, s.Bytes(), curveutil.ScalarSize)
}

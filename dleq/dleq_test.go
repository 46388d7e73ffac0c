package dleq_test

import (
	"crypto/sha256"
	"testing"

	"filippo.io/edwards25519"
	"github.com/stretchr/testify/require"

	"github.com/lightninglabs/xmrswap/curveutil"
	"github.com/lightninglabs/xmrswap/dleq"
)

func honestTranscript(t *testing.T) (dleq.Transcript, *edwards25519.Scalar) {
	t.Helper()

	secret, err := curveutil.ReduceScalar([]byte("deterministic-test-secret-bytes"))
	require.NoError(t, err)

	yScalar, err := curveutil.RandomScalar()
	require.NoError(t, err)
	y := new(edwards25519.Point).ScalarBaseMult(yScalar)

	var hashlock [32]byte
	sum := sha256.Sum256(secret.Bytes())
	copy(hashlock[:], sum[:])

	tr, err := dleq.Prove(secret, y, hashlock)
	require.NoError(t, err)
	return tr, secret
}

func TestHonestTranscriptVerifies(t *testing.T) {
	tr, _ := honestTranscript(t)

	ok, err := dleq.Verify(tr)
	require.NoError(t, err)
	require.True(t, ok)

	require.True(t, dleq.ValidateTranscript(tr))

	p1, err := dleq.VerifyPart1(tr)
	require.NoError(t, err)
	require.True(t, p1)

	p2, err := dleq.VerifyPart2(tr)
	require.NoError(t, err)
	require.True(t, p2)
}

func TestBitFlipInvalidatesTranscript(t *testing.T) {
	tr, _ := honestTranscript(t)

	for _, mutate := range []func(*dleq.Transcript){
		func(tr *dleq.Transcript) { tr.T[0] ^= 0x01 },
		func(tr *dleq.Transcript) { tr.U[0] ^= 0x01 },
		func(tr *dleq.Transcript) { tr.R1[0] ^= 0x01 },
		func(tr *dleq.Transcript) { tr.R2[0] ^= 0x01 },
		func(tr *dleq.Transcript) { tr.C[1] ^= 0x22 },
		func(tr *dleq.Transcript) { tr.S[0] ^= 0x01 },
		func(tr *dleq.Transcript) { tr.H[0] ^= 0x01 },
	} {
		mutated := tr
		mutate(&mutated)

		ok, err := dleq.Verify(mutated)
		require.NoError(t, err)
		require.False(t, ok)
		require.False(t, dleq.ValidateTranscript(mutated))
	}
}

func TestSmallOrderPointRejected(t *testing.T) {
	tr, _ := honestTranscript(t)

	identity := edwards25519.NewIdentityPoint().Bytes()
	copy(tr.Y[:], identity)

	_, err := dleq.Verify(tr)
	require.ErrorIs(t, err, dleq.ErrInvalidPointEncoding)
}

func TestValidateTranscriptRunsWithoutDecompression(t *testing.T) {
	tr, _ := honestTranscript(t)

	// Corrupt a point so badly it wouldn't even decompress, yet the
	// fast-path validator should still just compare hashes and fail
	// cleanly rather than erroring.
	tr.T = [32]byte{0xFF, 0xFF, 0xFF, 0xFF}
	require.False(t, dleq.ValidateTranscript(tr))
}

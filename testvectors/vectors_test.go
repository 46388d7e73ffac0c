package testvectors_test

import (
	"testing"

	"filippo.io/edwards25519"
	"github.com/stretchr/testify/require"

	"github.com/lightninglabs/xmrswap/curveutil"
	"github.com/lightninglabs/xmrswap/dleq"
	"github.com/lightninglabs/xmrswap/testvectors"
)

func TestVectorRoundTripsThroughJSON(t *testing.T) {
	secretBytes := make([]byte, 32)
	secretBytes[0] = 0x01
	secretBytes[31] = 0x02
	secret, err := curveutil.ReduceScalar(secretBytes)
	require.NoError(t, err)

	yScalar, err := curveutil.RandomScalar()
	require.NoError(t, err)
	y := new(edwards25519.Point).ScalarBaseMult(yScalar)

	var hashlock [32]byte
	hashlock[0] = 0x42

	tr, err := dleq.Prove(secret, y, hashlock)
	require.NoError(t, err)

	vec := testvectors.FromTranscript(tr, secretBytes)
	marshalled, err := testvectors.Marshal(vec)
	require.NoError(t, err)

	parsed, err := testvectors.Unmarshal(marshalled)
	require.NoError(t, err)

	recoveredTr, err := parsed.Transcript()
	require.NoError(t, err)
	require.Equal(t, tr, recoveredTr)

	secretOut, ok, err := parsed.DecodeSecret()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, secretBytes, secretOut)

	ok2, err := dleq.Verify(recoveredTr)
	require.NoError(t, err)
	require.True(t, ok2)
}

func TestVectorWithoutSecret(t *testing.T) {
	secretBytes := make([]byte, 32)
	secretBytes[5] = 0x09
	secret, err := curveutil.ReduceScalar(secretBytes)
	require.NoError(t, err)

	yScalar, err := curveutil.RandomScalar()
	require.NoError(t, err)
	y := new(edwards25519.Point).ScalarBaseMult(yScalar)

	var hashlock [32]byte
	tr, err := dleq.Prove(secret, y, hashlock)
	require.NoError(t, err)

	vec := testvectors.FromTranscript(tr, nil)
	require.Empty(t, vec.Secret)

	_, ok, err := vec.DecodeSecret()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestTranscriptRejectsWrongLength(t *testing.T) {
	vec := testvectors.Vector{
		AdaptorPointCompressed:    "abcd",
		DleqSecondPointCompressed: "00",
		YCompressed:               "00",
		R1Compressed:              "00",
		R2Compressed:              "00",
		Challenge:                 "00",
		Response:                  "00",
		Hashlock:                  "00",
	}
	_, err := vec.Transcript()
	require.ErrorIs(t, err, testvectors.ErrWrongFieldLength)
}

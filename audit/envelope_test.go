package audit_test

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lightninglabs/xmrswap/audit"
)

func examplePayload() audit.Payload {
	return audit.Payload{
		SwapID:        "swap-1",
		EventKind:     "state_change",
		Detail:        "created -> initialized",
		TimestampUnix: 1_700_000_000,
	}
}

func TestCanonicalBytesRoundTrip(t *testing.T) {
	p := examplePayload()
	b, err := p.CanonicalBytes()
	require.NoError(t, err)

	decoded, err := audit.PayloadFromCanonicalBytes(b)
	require.NoError(t, err)
	require.Equal(t, p, decoded)
}

func TestSealAndVerifySigned(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	_ = pub

	env, err := audit.Seal(examplePayload(), priv)
	require.NoError(t, err)

	require.NoError(t, audit.Verify(env, audit.VerifyOptions{}))
}

func TestVerifyRejectsHashMismatch(t *testing.T) {
	env, err := audit.Seal(examplePayload(), nil)
	require.NoError(t, err)
	env.PayloadHash[0] ^= 0xFF

	err = audit.Verify(env, audit.VerifyOptions{AllowUnsigned: true})
	require.ErrorIs(t, err, audit.ErrHashMismatch)
}

func TestVerifyRejectsUnsignedByDefault(t *testing.T) {
	env, err := audit.Seal(examplePayload(), nil)
	require.NoError(t, err)

	err = audit.Verify(env, audit.VerifyOptions{})
	require.ErrorIs(t, err, audit.ErrUnsigned)

	require.NoError(t, audit.Verify(env, audit.VerifyOptions{AllowUnsigned: true}))
}

func TestVerifyRejectsMixedPresence(t *testing.T) {
	env, err := audit.Seal(examplePayload(), nil)
	require.NoError(t, err)
	env.PublicKey = []byte("not-really-a-key-but-present")

	err = audit.Verify(env, audit.VerifyOptions{AllowUnsigned: true})
	require.ErrorIs(t, err, audit.ErrMixedSignaturePresence)
}

func TestVerifyRejectsBadSignature(t *testing.T) {
	_, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	env, err := audit.Seal(examplePayload(), priv)
	require.NoError(t, err)
	env.Signature[0] ^= 0xFF

	err = audit.Verify(env, audit.VerifyOptions{})
	require.ErrorIs(t, err, audit.ErrBadSignature)
}

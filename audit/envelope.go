// Package audit implements the audit/alert envelope: every externally
// emitted status record is wrapped in a
// (payload, payload_hash, optional signature, optional public_key)
// envelope, canonicalised via the tlv encoder so producers and
// verifiers agree byte-for-byte on what was hashed and signed.
package audit

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"

	"github.com/go-errors/errors"

	"github.com/lightninglabs/xmrswap/tlv"
)

// Payload field tags, in ascending order, for the canonical TLV
// encoding. Stable once assigned, matching the escrow program's
// error-code stability rule.
const (
	tagSwapID tlv.Type = iota + 1
	tagEventKind
	tagDetail
	tagTimestampUnix
)

// Payload is the structured record carried by an envelope.
type Payload struct {
	SwapID        string
	EventKind     string
	Detail        string
	TimestampUnix int64
}

// CanonicalBytes returns the TLV-encoded canonical serialisation of p,
// the exact byte sequence payload_hash and signature are computed
// over. Producers and verifiers must both call this function rather
// than hand-rolling a serialisation.
func (p Payload) CanonicalBytes() ([]byte, error) {
	return tlv.Encode([]tlv.Record{
		{Type: tagSwapID, Value: []byte(p.SwapID)},
		{Type: tagEventKind, Value: []byte(p.EventKind)},
		{Type: tagDetail, Value: []byte(p.Detail)},
		{Type: tagTimestampUnix, Value: encodeInt64(p.TimestampUnix)},
	})
}

func encodeInt64(v int64) []byte {
	var b [8]byte
	u := uint64(v)
	for i := 7; i >= 0; i-- {
		b[i] = byte(u)
		u >>= 8
	}
	return b[:]
}

func decodeInt64(b []byte) int64 {
	var u uint64
	for _, c := range b {
		u = u<<8 | uint64(c)
	}
	return int64(u)
}

// PayloadFromCanonicalBytes reverses CanonicalBytes, used by a
// verifier reconstructing the payload from stored canonical bytes.
func PayloadFromCanonicalBytes(b []byte) (Payload, error) {
	records, err := tlv.Decode(b)
	if err != nil {
		return Payload{}, err
	}

	var p Payload
	if v, ok := tlv.Find(records, tagSwapID); ok {
		p.SwapID = string(v)
	}
	if v, ok := tlv.Find(records, tagEventKind); ok {
		p.EventKind = string(v)
	}
	if v, ok := tlv.Find(records, tagDetail); ok {
		p.Detail = string(v)
	}
	if v, ok := tlv.Find(records, tagTimestampUnix); ok {
		p.TimestampUnix = decodeInt64(v)
	}
	return p, nil
}

// Envelope wraps a Payload with its canonical hash and an optional
// Ed25519 signature over the canonical bytes.
type Envelope struct {
	Payload     Payload
	PayloadHash [32]byte
	Signature   []byte // ed25519.SignatureSize bytes, or nil
	PublicKey   []byte // ed25519.PublicKeySize bytes, or nil
}

// Seal builds an Envelope from payload, optionally signing it with
// priv. Pass a nil priv to produce an unsigned envelope.
func Seal(payload Payload, priv ed25519.PrivateKey) (Envelope, error) {
	canonical, err := payload.CanonicalBytes()
	if err != nil {
		return Envelope{}, err
	}
	hash := sha256.Sum256(canonical)

	env := Envelope{Payload: payload, PayloadHash: hash}
	if priv != nil {
		env.Signature = ed25519.Sign(priv, canonical)
		env.PublicKey = append([]byte{}, priv.Public().(ed25519.PublicKey)...)
	}
	return env, nil
}

// ErrHashMismatch is returned by Verify when the recomputed payload
// hash does not match the envelope's stored hash.
var ErrHashMismatch = errors.New("audit: payload hash mismatch")

// ErrMixedSignaturePresence is returned by Verify when exactly one of
// Signature/PublicKey is present; an envelope must carry both or
// neither.
var ErrMixedSignaturePresence = errors.New("audit: exactly one of signature/public_key present")

// ErrUnsigned is returned by Verify when neither signature nor key is
// present and the caller did not opt into AllowUnsigned.
var ErrUnsigned = errors.New("audit: envelope is unsigned")

// ErrBadSignature is returned when a present signature fails to
// verify against the present public key.
var ErrBadSignature = errors.New("audit: signature verification failed")

// VerifyOptions controls Verify's policy toward unsigned envelopes.
type VerifyOptions struct {
	AllowUnsigned bool
}

// Verify implements the envelope's verification policy: (i) recompute
// the hash and reject on mismatch; (ii) if signature and key are
// present, verify them; (iii) if both are absent, reject unless
// opts.AllowUnsigned; (iv) mixing presence is always rejected.
func Verify(env Envelope, opts VerifyOptions) error {
	canonical, err := env.Payload.CanonicalBytes()
	if err != nil {
		return err
	}
	if sha256.Sum256(canonical) != env.PayloadHash {
		return ErrHashMismatch
	}

	hasSig := len(env.Signature) > 0
	hasKey := len(env.PublicKey) > 0

	switch {
	case hasSig != hasKey:
		return ErrMixedSignaturePresence
	case !hasSig && !hasKey:
		if !opts.AllowUnsigned {
			return ErrUnsigned
		}
		return nil
	default:
		if !ed25519.Verify(ed25519.PublicKey(env.PublicKey), canonical, env.Signature) {
			return ErrBadSignature
		}
		return nil
	}
}

// PayloadHashHex returns the envelope's payload hash as lowercase hex.
func (e Envelope) PayloadHashHex() string {
	return hex.EncodeToString(e.PayloadHash[:])
}

// Package testvectors implements the JSON schema for DLEQ test
// fixtures: a fixed set of hex-encoded curve points plus the scalar
// responses that make up a transcript, with an optional demo secret.
package testvectors

import (
	"encoding/hex"
	"encoding/json"

	"github.com/go-errors/errors"

	"github.com/lightninglabs/xmrswap/dleq"
)

// Vector is one test fixture, serialised with lowercase 64-character
// hex strings per field.
type Vector struct {
	AdaptorPointCompressed    string `json:"adaptor_point_compressed"`
	DleqSecondPointCompressed string `json:"dleq_second_point_compressed"`
	YCompressed               string `json:"y_compressed"`
	R1Compressed              string `json:"r1_compressed"`
	R2Compressed              string `json:"r2_compressed"`
	Challenge                 string `json:"challenge"`
	Response                  string `json:"response"`
	Hashlock                  string `json:"hashlock"`
	Secret                    string `json:"secret,omitempty"`
}

// FromTranscript builds a Vector from a dleq.Transcript, optionally
// including the demo secret's hex encoding.
func FromTranscript(tr dleq.Transcript, secret []byte) Vector {
	v := Vector{
		AdaptorPointCompressed:    hex.EncodeToString(tr.T[:]),
		DleqSecondPointCompressed: hex.EncodeToString(tr.U[:]),
		YCompressed:               hex.EncodeToString(tr.Y[:]),
		R1Compressed:              hex.EncodeToString(tr.R1[:]),
		R2Compressed:              hex.EncodeToString(tr.R2[:]),
		Challenge:                 hex.EncodeToString(tr.C[:]),
		Response:                  hex.EncodeToString(tr.S[:]),
		Hashlock:                  hex.EncodeToString(tr.H[:]),
	}
	if secret != nil {
		v.Secret = hex.EncodeToString(secret)
	}
	return v
}

// ErrWrongFieldLength is returned when a Vector field does not decode
// to the expected 32 bytes.
var ErrWrongFieldLength = errors.New("testvectors: field is not 32 bytes")

// Transcript parses a Vector back into a dleq.Transcript.
func (v Vector) Transcript() (dleq.Transcript, error) {
	var tr dleq.Transcript
	fields := map[*[32]byte]string{
		&tr.T:  v.AdaptorPointCompressed,
		&tr.U:  v.DleqSecondPointCompressed,
		&tr.Y:  v.YCompressed,
		&tr.R1: v.R1Compressed,
		&tr.R2: v.R2Compressed,
		&tr.C:  v.Challenge,
		&tr.S:  v.Response,
		&tr.H:  v.Hashlock,
	}

	for out, hexVal := range fields {
		b, err := hex.DecodeString(hexVal)
		if err != nil {
			return dleq.Transcript{}, err
		}
		if len(b) != 32 {
			return dleq.Transcript{}, ErrWrongFieldLength
		}
		copy(out[:], b)
	}
	return tr, nil
}

// DecodeSecret decodes the optional demo secret, returning ok=false if the
// vector carries none.
func (v Vector) DecodeSecret() (secret []byte, ok bool, err error) {
	if v.Secret == "" {
		return nil, false, nil
	}
	b, err := hex.DecodeString(v.Secret)
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// Marshal serialises a Vector to indented, human-readable JSON, the
// form dleqvectors generate writes to its output file.
func Marshal(v Vector) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// Unmarshal parses a Vector from JSON.
func Unmarshal(b []byte) (Vector, error) {
	var v Vector
	if err := json.Unmarshal(b, &v); err != nil {
		return Vector{}, err
	}
	return v, nil
}

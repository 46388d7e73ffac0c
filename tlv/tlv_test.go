package tlv_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lightninglabs/xmrswap/tlv"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	records := []tlv.Record{
		{Type: 2, Value: []byte("second")},
		{Type: 1, Value: []byte("first")},
		{Type: 3, Value: []byte{}},
	}

	encoded, err := tlv.Encode(records)
	require.NoError(t, err)

	decoded, err := tlv.Decode(encoded)
	require.NoError(t, err)
	require.Len(t, decoded, 3)
	require.Equal(t, tlv.Type(1), decoded[0].Type)
	require.Equal(t, []byte("first"), decoded[0].Value)
	require.Equal(t, tlv.Type(2), decoded[1].Type)
	require.Equal(t, tlv.Type(3), decoded[2].Type)

	// Canonical: order in the input doesn't matter, output bytes do.
	reordered := []tlv.Record{records[1], records[0], records[2]}
	encoded2, err := tlv.Encode(reordered)
	require.NoError(t, err)
	require.Equal(t, encoded, encoded2)
}

func TestEncodeDuplicateType(t *testing.T) {
	_, err := tlv.Encode([]tlv.Record{
		{Type: 1, Value: []byte("a")},
		{Type: 1, Value: []byte("b")},
	})
	require.ErrorIs(t, err, tlv.ErrDuplicateType)
}

func TestDecodeTruncated(t *testing.T) {
	_, err := tlv.Decode([]byte{1, 0})
	require.ErrorIs(t, err, tlv.ErrTruncated)

	_, err = tlv.Decode([]byte{1, 0, 5, 'a', 'b'})
	require.ErrorIs(t, err, tlv.ErrTruncated)
}

func TestFind(t *testing.T) {
	records := []tlv.Record{
		{Type: 5, Value: []byte("hello")},
	}
	v, ok := tlv.Find(records, 5)
	require.True(t, ok)
	require.Equal(t, []byte("hello"), v)

	_, ok = tlv.Find(records, 9)
	require.False(t, ok)
}

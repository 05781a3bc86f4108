package deflate

import (
	"bytes"
	"compress/flate"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sunxiaotianmg/fo-dicom.Codecs/codec"
	"github.com/sunxiaotianmg/fo-dicom.Codecs/codec/discovery"
)

func TestNewCodec(t *testing.T) {
	c, err := NewCodec(flate.BestSpeed)
	require.NoError(t, err)
	require.Equal(t, flate.BestSpeed, c.level)

	_, err = NewCodec(42)
	require.EqualError(t, err, "invalid compression level 42")

	_, err = NewCodec(-3)
	require.EqualError(t, err, "invalid compression level -3")
}

func TestCodec_EncodeDecode(t *testing.T) {
	c, err := NewCodec(flate.DefaultCompression)
	require.NoError(t, err)
	require.Equal(t, codec.DeflatedExplicitVRLittleEndian, c.TransferSyntax())

	raw := bytes.Repeat([]byte{0, 1, 2, 3}, 1024)

	data, err := c.Encode(raw)
	require.NoError(t, err)
	require.Less(t, len(data), len(raw))

	out, err := c.Decode(data)
	require.NoError(t, err)
	require.Equal(t, raw, out)
}

func TestCodec_DecodeCorrupted(t *testing.T) {
	c, err := NewCodec(flate.DefaultCompression)
	require.NoError(t, err)

	_, err = c.Decode([]byte{0xff, 0xff, 0xff})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to inflate")
}

func TestDeclared(t *testing.T) {
	iter := discovery.NewFinder().FindCandidates(discovery.Source{Pattern: "deflate.*"})

	require.True(t, iter.HasNext())

	candidate := iter.GetNext()
	require.True(t, discovery.IsCodec(candidate))
	require.False(t, iter.HasNext())

	value, err := candidate.New()
	require.NoError(t, err)
	require.Equal(t, &Codec{level: flate.DefaultCompression}, value)
}

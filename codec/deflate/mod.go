// Package deflate implements the codec of the Deflated Explicit VR Little
// Endian transfer syntax. The stream is a raw deflate stream (RFC 1951)
// without any zlib header.
//
// Importing the package declares the codec in the process catalog with the
// default compression level.
package deflate

import (
	"bytes"
	"compress/flate"
	"io"
	"reflect"

	"github.com/sunxiaotianmg/fo-dicom.Codecs/codec"
	"github.com/sunxiaotianmg/fo-dicom.Codecs/codec/discovery"
	"golang.org/x/xerrors"
)

func init() {
	discovery.DeclareFactory(reflect.TypeOf(&Codec{}), func() (interface{}, error) {
		return NewCodec(flate.DefaultCompression)
	})
}

// Codec compresses and decompresses data with deflate.
//
// - implements codec.Codec
type Codec struct {
	level int
}

// NewCodec returns a new codec using the compression level, between
// flate.HuffmanOnly and flate.BestCompression.
func NewCodec(level int) (*Codec, error) {
	if level < flate.HuffmanOnly || level > flate.BestCompression {
		return nil, xerrors.Errorf("invalid compression level %d", level)
	}

	return &Codec{level: level}, nil
}

// TransferSyntax implements codec.Codec.
func (c *Codec) TransferSyntax() codec.TransferSyntax {
	return codec.DeflatedExplicitVRLittleEndian
}

// Encode implements codec.Codec. It returns the deflated data.
func (c *Codec) Encode(raw []byte) ([]byte, error) {
	buffer := new(bytes.Buffer)

	w, err := flate.NewWriter(buffer, c.level)
	if err != nil {
		return nil, xerrors.Errorf("failed to create writer: %v", err)
	}

	_, err = w.Write(raw)
	if err != nil {
		return nil, xerrors.Errorf("failed to deflate: %v", err)
	}

	err = w.Close()
	if err != nil {
		return nil, xerrors.Errorf("failed to flush: %v", err)
	}

	return buffer.Bytes(), nil
}

// Decode implements codec.Codec. It returns the inflated data.
func (c *Codec) Decode(data []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, xerrors.Errorf("failed to inflate: %v", err)
	}

	return raw, nil
}

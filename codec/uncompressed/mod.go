// Package uncompressed implements the codecs of the native, uncompressed,
// little endian transfer syntaxes. Encoding and decoding copy the pixel data.
//
// Importing the package declares the codecs in the process catalog.
package uncompressed

import (
	"github.com/sunxiaotianmg/fo-dicom.Codecs/codec"
	"github.com/sunxiaotianmg/fo-dicom.Codecs/codec/discovery"
)

func init() {
	discovery.Declare(ImplicitLittleEndian{})
	discovery.Declare(ExplicitLittleEndian{})
}

// ImplicitLittleEndian is the codec of the Implicit VR Little Endian transfer
// syntax, the default one of DICOM.
//
// - implements codec.Codec
type ImplicitLittleEndian struct{}

// TransferSyntax implements codec.Codec.
func (ImplicitLittleEndian) TransferSyntax() codec.TransferSyntax {
	return codec.ImplicitVRLittleEndian
}

// Encode implements codec.Codec. It returns a copy of the pixel data.
func (ImplicitLittleEndian) Encode(raw []byte) ([]byte, error) {
	return clone(raw), nil
}

// Decode implements codec.Codec. It returns a copy of the pixel data.
func (ImplicitLittleEndian) Decode(data []byte) ([]byte, error) {
	return clone(data), nil
}

// ExplicitLittleEndian is the codec of the Explicit VR Little Endian transfer
// syntax.
//
// - implements codec.Codec
type ExplicitLittleEndian struct{}

// TransferSyntax implements codec.Codec.
func (ExplicitLittleEndian) TransferSyntax() codec.TransferSyntax {
	return codec.ExplicitVRLittleEndian
}

// Encode implements codec.Codec. It returns a copy of the pixel data.
func (ExplicitLittleEndian) Encode(raw []byte) ([]byte, error) {
	return clone(raw), nil
}

// Decode implements codec.Codec. It returns a copy of the pixel data.
func (ExplicitLittleEndian) Decode(data []byte) ([]byte, error) {
	return clone(data), nil
}

func clone(buf []byte) []byte {
	res := make([]byte, len(buf))
	copy(res, buf)

	return res
}

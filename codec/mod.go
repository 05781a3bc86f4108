// Package codec defines the capability a pixel data codec must implement to
// be registered, and the transfer syntax identifier it is indexed by.
//
// The actual compression schemes (JPEG, JPEG-LS, JPEG 2000, RLE) are provided
// by native libraries wrapped in their own packages. This package only
// describes what the registry expects from them.
package codec

// TransferSyntax is the DICOM unique identifier of an encoding scheme, for
// instance "1.2.840.10008.1.2.5" for RLE Lossless.
type TransferSyntax string

// Well-known transfer syntaxes of the DICOM standard (PS3.6, annex A).
const (
	ImplicitVRLittleEndian         TransferSyntax = "1.2.840.10008.1.2"
	ExplicitVRLittleEndian         TransferSyntax = "1.2.840.10008.1.2.1"
	DeflatedExplicitVRLittleEndian TransferSyntax = "1.2.840.10008.1.2.1.99"
	ExplicitVRBigEndian            TransferSyntax = "1.2.840.10008.1.2.2"
	JPEGBaseline                   TransferSyntax = "1.2.840.10008.1.2.4.50"
	JPEGExtended                   TransferSyntax = "1.2.840.10008.1.2.4.51"
	JPEGLossless                   TransferSyntax = "1.2.840.10008.1.2.4.57"
	JPEGLosslessSV1                TransferSyntax = "1.2.840.10008.1.2.4.70"
	JPEGLSLossless                 TransferSyntax = "1.2.840.10008.1.2.4.80"
	JPEGLSNearLossless             TransferSyntax = "1.2.840.10008.1.2.4.81"
	JPEG2000Lossless               TransferSyntax = "1.2.840.10008.1.2.4.90"
	JPEG2000                       TransferSyntax = "1.2.840.10008.1.2.4.91"
	RLELossless                    TransferSyntax = "1.2.840.10008.1.2.5"
)

var names = map[TransferSyntax]string{
	ImplicitVRLittleEndian:         "Implicit VR Little Endian",
	ExplicitVRLittleEndian:         "Explicit VR Little Endian",
	DeflatedExplicitVRLittleEndian: "Deflated Explicit VR Little Endian",
	ExplicitVRBigEndian:            "Explicit VR Big Endian",
	JPEGBaseline:                   "JPEG Baseline (Process 1)",
	JPEGExtended:                   "JPEG Extended (Process 2 & 4)",
	JPEGLossless:                   "JPEG Lossless, Non-Hierarchical (Process 14)",
	JPEGLosslessSV1:                "JPEG Lossless, First-Order Prediction (Process 14 SV1)",
	JPEGLSLossless:                 "JPEG-LS Lossless",
	JPEGLSNearLossless:             "JPEG-LS Lossy (Near-Lossless)",
	JPEG2000Lossless:               "JPEG 2000 (Lossless Only)",
	JPEG2000:                       "JPEG 2000",
	RLELossless:                    "RLE Lossless",
}

// Name returns the human readable name of the transfer syntax if it is known,
// otherwise it returns the UID itself.
func (ts TransferSyntax) Name() string {
	name, found := names[ts]
	if !found {
		return string(ts)
	}

	return name
}

// String implements fmt.Stringer. It returns the UID.
func (ts TransferSyntax) String() string {
	return string(ts)
}

// Codec is the capability implemented by an encoder/decoder of pixel data for
// a given transfer syntax.
type Codec interface {
	// TransferSyntax returns the identifier of the encoding scheme supported
	// by the codec.
	TransferSyntax() TransferSyntax

	// Encode takes raw pixel data and returns it compressed.
	Encode(raw []byte) ([]byte, error)

	// Decode takes compressed pixel data and returns it raw.
	Decode(data []byte) ([]byte, error)
}

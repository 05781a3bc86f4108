// Package registry defines the codec registry, which indexes the codecs by
// the transfer syntax they support.
//
// The registry is an explicitly constructed object: the application owns one
// instance and hands it to the components that need to transcode pixel data.
// A later registration for the same transfer syntax silently replaces the
// earlier one.
package registry

import (
	"github.com/sunxiaotianmg/fo-dicom.Codecs/codec"
	"golang.org/x/xerrors"
)

// ErrCodecNotFound is returned, wrapped, when no codec is registered for a
// transfer syntax.
var ErrCodecNotFound = xerrors.New("codec not found")

// Registry is an interface to register and look up codecs for a specific
// transfer syntax.
type Registry interface {
	// Clear removes all the entries.
	Clear()

	// Register associates the codec to the transfer syntax. Any previous
	// codec for the same transfer syntax is replaced.
	Register(codec.TransferSyntax, codec.Codec)

	// Lookup returns the codec associated with the transfer syntax, or an
	// error wrapping ErrCodecNotFound.
	Lookup(codec.TransferSyntax) (codec.Codec, error)

	// Replace swaps the whole content of the registry with the given entries
	// so that no reader observes a partial state.
	Replace(map[codec.TransferSyntax]codec.Codec)

	// Keys returns the registered transfer syntaxes in ascending order.
	Keys() []codec.TransferSyntax

	// Len returns the number of entries.
	Len() int
}

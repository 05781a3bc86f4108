// Package discovery finds the codec implementations available to the process
// without the registry needing compile-time knowledge of each one.
//
// Two sources are supported. The default one is the process image: codec
// packages declare their types in a Catalog from their init function, and a
// binary enables them with a blank import. The second one is a directory of
// Go plugins, each of them exporting a DeclareCodecs function that fills a
// catalog.
//
//	func init() {
//		discovery.Declare(MyCodec{})
//	}
//
// Discovery never fails: an unreadable directory or a broken plugin is logged
// at debug level and skipped, and an empty result is a valid outcome. Warning
// about an empty result is left to the caller.
package discovery

import (
	"fmt"
	"path"
	"reflect"

	"github.com/sunxiaotianmg/fo-dicom.Codecs/codec"
)

// EntryPoint is the name of the symbol a codec plugin must export. Its type
// must be func(*discovery.Catalog).
const EntryPoint = "DeclareCodecs"

// MatchAll is the pattern used when a source does not define one.
const MatchAll = "*"

// Source describes where to look for codecs. An empty path means the process
// image, an empty pattern matches everything.
type Source struct {
	// Path is the directory to scan for plugins.
	Path string `yaml:"path"`

	// Pattern filters the plugin file names, or the candidate short names
	// ("package.Type") for the process image. See filepath.Match for the
	// syntax.
	Pattern string `yaml:"pattern"`
}

// IsProcess returns true if the source is the current process image.
func (s Source) IsProcess() bool {
	return s.Path == ""
}

// GetPattern returns the pattern, or the match-all pattern if it is empty.
func (s Source) GetPattern() string {
	if s.Pattern == "" {
		return MatchAll
	}

	return s.Pattern
}

// String implements fmt.Stringer. It returns a description of the source.
func (s Source) String() string {
	if s.IsProcess() {
		return fmt.Sprintf("<process>/%s", s.GetPattern())
	}

	return path.Join(s.Path, s.GetPattern())
}

// Candidate is the descriptor of a type that may implement a codec, and the
// function to create an instance of it.
type Candidate struct {
	// Name is the fully qualified name of the type, e.g.
	// "github.com/org/codecs/rle.Codec".
	Name string

	// Type is the dynamic type of the instances.
	Type reflect.Type

	// New creates a new instance of the type.
	New func() (interface{}, error)
}

// ShortName returns the last element of the package path followed by the
// type name, e.g. "rle.Codec".
func (c Candidate) ShortName() string {
	return path.Base(c.Name)
}

// CandidateIterator is an iterator over candidates. It is lazy: a plugin is
// only opened when the iterator reaches it.
type CandidateIterator interface {
	// HasNext returns true if a candidate is available.
	HasNext() bool

	// GetNext returns the next candidate, or an empty one if the iterator is
	// exhausted.
	GetNext() Candidate
}

// Finder enumerates the candidates available from a source.
type Finder interface {
	// FindCandidates returns a new iterator over the candidates of the
	// source. Each call starts from the beginning.
	FindCandidates(Source) CandidateIterator
}

var codecType = reflect.TypeOf((*codec.Codec)(nil)).Elem()

// IsCodec returns true if the candidate type implements the codec capability.
// Having Encode and Decode methods is not enough, the type must also expose
// its transfer syntax.
func IsCodec(c Candidate) bool {
	if c.Type == nil {
		return false
	}

	return c.Type.Implements(codecType)
}

// Package fake provides fake implementations for interfaces commonly used in
// the repository.
// The implementations offer configuration to return errors when it is needed by
// the unit test and it is also possible to record the call of functions of an
// object in some cases.
package fake

import (
	"sync"

	"github.com/sunxiaotianmg/fo-dicom.Codecs/codec"
	"golang.org/x/xerrors"
)

// Call is a tool to keep track of a function calls.
type Call struct {
	sync.Mutex
	calls [][]interface{}
}

// Get returns the nth call ith parameter.
func (c *Call) Get(n, i int) interface{} {
	c.Lock()
	defer c.Unlock()

	return c.calls[n][i]
}

// Len returns the number of calls.
func (c *Call) Len() int {
	c.Lock()
	defer c.Unlock()

	return len(c.calls)
}

// Add adds a call to the list.
func (c *Call) Add(args ...interface{}) {
	c.Lock()
	c.calls = append(c.calls, args)
	c.Unlock()
}

// Codec is a fake implementation of codec.Codec. The tag allows a test to
// tell apart two codecs declared for the same transfer syntax.
//
// - implements codec.Codec
type Codec struct {
	Syntax codec.TransferSyntax
	Tag    string
	err    error
	call   *Call
}

// NewCodec returns a fake codec for the transfer syntax.
func NewCodec(ts codec.TransferSyntax, tag string) Codec {
	return Codec{Syntax: ts, Tag: tag}
}

// NewBadCodec returns a fake codec that returns an error on encode and decode.
func NewBadCodec(ts codec.TransferSyntax) Codec {
	return Codec{Syntax: ts, err: xerrors.New("fake error")}
}

// NewRecordingCodec returns a fake codec that records the payloads it
// receives.
func NewRecordingCodec(ts codec.TransferSyntax, call *Call) Codec {
	return Codec{Syntax: ts, call: call}
}

// TransferSyntax implements codec.Codec.
func (c Codec) TransferSyntax() codec.TransferSyntax {
	return c.Syntax
}

// Encode implements codec.Codec. It returns the input prefixed with the tag.
func (c Codec) Encode(raw []byte) ([]byte, error) {
	if c.call != nil {
		c.call.Add("encode", raw)
	}

	if c.err != nil {
		return nil, c.err
	}

	return append([]byte(c.Tag), raw...), nil
}

// Decode implements codec.Codec. It returns the input without the tag.
func (c Codec) Decode(data []byte) ([]byte, error) {
	if c.call != nil {
		c.call.Add("decode", data)
	}

	if c.err != nil {
		return nil, c.err
	}

	if len(data) < len(c.Tag) {
		return nil, xerrors.Errorf("data too short: %d < %d", len(data), len(c.Tag))
	}

	return data[len(c.Tag):], nil
}

// NotACodec is a type that has an Encode and a Decode method but does not
// expose a transfer syntax. It must never be discovered as a codec.
type NotACodec struct{}

// Encode returns the input.
func (NotACodec) Encode(raw []byte) ([]byte, error) {
	return raw, nil
}

// Decode returns the input.
func (NotACodec) Decode(data []byte) ([]byte, error) {
	return data, nil
}

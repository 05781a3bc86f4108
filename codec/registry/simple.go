// This file contains the implementation of a codec registry.

package registry

import (
	"sort"
	"sync"

	"github.com/sunxiaotianmg/fo-dicom.Codecs/codec"
	"golang.org/x/xerrors"
)

// SimpleRegistry is a default implementation of the Registry interface backed
// by a map guarded by a read-write lock.
//
// - implements registry.Registry
type SimpleRegistry struct {
	sync.RWMutex
	store map[codec.TransferSyntax]codec.Codec
}

// NewSimpleRegistry returns a new empty registry.
func NewSimpleRegistry() *SimpleRegistry {
	return &SimpleRegistry{
		store: make(map[codec.TransferSyntax]codec.Codec),
	}
}

// Clear implements registry.Registry. It removes every entry.
func (r *SimpleRegistry) Clear() {
	r.Lock()
	r.store = make(map[codec.TransferSyntax]codec.Codec)
	r.Unlock()
}

// Register implements registry.Registry. It registers the codec for the given
// transfer syntax, overwriting any previous entry.
func (r *SimpleRegistry) Register(ts codec.TransferSyntax, c codec.Codec) {
	r.Lock()
	r.store[ts] = c
	r.Unlock()
}

// Lookup implements registry.Registry. It returns the codec associated with
// the transfer syntax if it exists, otherwise an error.
func (r *SimpleRegistry) Lookup(ts codec.TransferSyntax) (codec.Codec, error) {
	r.RLock()
	c, found := r.store[ts]
	r.RUnlock()

	if !found {
		return nil, xerrors.Errorf("transfer syntax '%s': %w", ts, ErrCodecNotFound)
	}

	return c, nil
}

// Replace implements registry.Registry. It installs a copy of the entries in
// place of the current content.
func (r *SimpleRegistry) Replace(entries map[codec.TransferSyntax]codec.Codec) {
	store := make(map[codec.TransferSyntax]codec.Codec, len(entries))
	for ts, c := range entries {
		store[ts] = c
	}

	r.Lock()
	r.store = store
	r.Unlock()
}

// Keys implements registry.Registry. It returns the sorted list of the
// registered transfer syntaxes.
func (r *SimpleRegistry) Keys() []codec.TransferSyntax {
	r.RLock()
	keys := make([]codec.TransferSyntax, 0, len(r.store))
	for ts := range r.store {
		keys = append(keys, ts)
	}
	r.RUnlock()

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	return keys
}

// Len implements registry.Registry. It returns the number of entries.
func (r *SimpleRegistry) Len() int {
	r.RLock()
	defer r.RUnlock()

	return len(r.store)
}

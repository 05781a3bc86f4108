package registry

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sunxiaotianmg/fo-dicom.Codecs/codec"
	"github.com/sunxiaotianmg/fo-dicom.Codecs/internal/testing/fake"
)

func TestSimpleRegistry_Register(t *testing.T) {
	registry := NewSimpleRegistry()

	registry.Register(codec.RLELossless, fake.NewCodec(codec.RLELossless, "A"))
	require.Len(t, registry.store, 1)

	registry.Register(codec.RLELossless, fake.NewCodec(codec.RLELossless, "B"))
	require.Len(t, registry.store, 1)

	registry.Register(codec.JPEGBaseline, fake.NewCodec(codec.JPEGBaseline, "C"))
	require.Len(t, registry.store, 2)
}

func TestSimpleRegistry_LastWriterWins(t *testing.T) {
	registry := NewSimpleRegistry()

	tags := []string{"A", "B", "C", "D"}
	for _, tag := range tags {
		registry.Register(codec.RLELossless, fake.NewCodec(codec.RLELossless, tag))

		c, err := registry.Lookup(codec.RLELossless)
		require.NoError(t, err)
		require.Equal(t, tag, c.(fake.Codec).Tag)
	}
}

func TestSimpleRegistry_Lookup(t *testing.T) {
	registry := NewSimpleRegistry()

	registry.Register(codec.RLELossless, fake.NewCodec(codec.RLELossless, "A"))

	c, err := registry.Lookup(codec.RLELossless)
	require.NoError(t, err)
	require.Equal(t, fake.NewCodec(codec.RLELossless, "A"), c)

	_, err = registry.Lookup(codec.TransferSyntax("unknown"))
	require.True(t, errors.Is(err, ErrCodecNotFound))
	require.EqualError(t, err, "transfer syntax 'unknown': codec not found")
}

func TestSimpleRegistry_Clear(t *testing.T) {
	registry := NewSimpleRegistry()

	all := []codec.TransferSyntax{codec.RLELossless, codec.JPEGBaseline, codec.JPEG2000}
	for _, ts := range all {
		registry.Register(ts, fake.NewCodec(ts, ""))
	}

	registry.Clear()
	require.Equal(t, 0, registry.Len())

	for _, ts := range all {
		_, err := registry.Lookup(ts)
		require.ErrorIs(t, err, ErrCodecNotFound)
	}
}

func TestSimpleRegistry_Replace(t *testing.T) {
	registry := NewSimpleRegistry()
	registry.Register(codec.RLELossless, fake.NewCodec(codec.RLELossless, "old"))

	entries := map[codec.TransferSyntax]codec.Codec{
		codec.JPEGBaseline: fake.NewCodec(codec.JPEGBaseline, "new"),
	}

	registry.Replace(entries)
	require.Equal(t, []codec.TransferSyntax{codec.JPEGBaseline}, registry.Keys())

	// The registry keeps its own copy of the entries.
	entries[codec.RLELossless] = fake.NewCodec(codec.RLELossless, "late")
	require.Equal(t, 1, registry.Len())
}

func TestSimpleRegistry_Keys(t *testing.T) {
	registry := NewSimpleRegistry()
	require.Empty(t, registry.Keys())

	registry.Register(codec.RLELossless, fake.NewCodec(codec.RLELossless, ""))
	registry.Register(codec.ExplicitVRLittleEndian, fake.NewCodec(codec.ExplicitVRLittleEndian, ""))
	registry.Register(codec.JPEGBaseline, fake.NewCodec(codec.JPEGBaseline, ""))

	expected := []codec.TransferSyntax{
		codec.ExplicitVRLittleEndian,
		codec.JPEGBaseline,
		codec.RLELossless,
	}
	require.Equal(t, expected, registry.Keys())
}

func TestSimpleRegistry_Concurrency(t *testing.T) {
	registry := NewSimpleRegistry()

	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(2)

		go func(i int) {
			defer wg.Done()

			ts := codec.TransferSyntax(fmt.Sprintf("1.2.%d", i))
			registry.Register(ts, fake.NewCodec(ts, ""))
		}(i)

		go func(i int) {
			defer wg.Done()

			registry.Lookup(codec.TransferSyntax(fmt.Sprintf("1.2.%d", i)))
			registry.Keys()
		}(i)
	}

	wg.Wait()

	require.Equal(t, 10, registry.Len())
}

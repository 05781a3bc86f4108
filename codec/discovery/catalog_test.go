package discovery

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sunxiaotianmg/fo-dicom.Codecs/codec"
	"github.com/sunxiaotianmg/fo-dicom.Codecs/internal/testing/fake"
	"golang.org/x/xerrors"
)

func TestCatalog_Declare(t *testing.T) {
	catalog := NewCatalog()

	catalog.Declare(fake.Codec{})
	catalog.Declare(&fake.Codec{})
	catalog.Declare(fake.NotACodec{})
	require.Equal(t, 3, catalog.Len())

	candidates := catalog.Candidates()
	require.Equal(t, "github.com/sunxiaotianmg/fo-dicom.Codecs/internal/testing/fake.Codec",
		candidates[0].Name)
	require.Equal(t, "*github.com/sunxiaotianmg/fo-dicom.Codecs/internal/testing/fake.Codec",
		candidates[1].Name)
	require.Equal(t, "fake.NotACodec", candidates[2].ShortName())

	value, err := candidates[0].New()
	require.NoError(t, err)
	require.Equal(t, fake.Codec{}, value)

	value, err = candidates[1].New()
	require.NoError(t, err)
	require.Equal(t, &fake.Codec{}, value)
}

func TestCatalog_DeclareNil(t *testing.T) {
	catalog := NewCatalog()

	require.Panics(t, func() { catalog.Declare(nil) })
	require.Panics(t, func() { catalog.DeclareFactory(nil, nil) })
	require.Panics(t, func() {
		catalog.DeclareFactory(reflect.TypeOf(fake.Codec{}), nil)
	})
}

func TestCatalog_DeclareFactory(t *testing.T) {
	catalog := NewCatalog()

	catalog.DeclareFactory(reflect.TypeOf(fake.Codec{}), func() (interface{}, error) {
		return fake.NewCodec(codec.RLELossless, "A"), nil
	})
	catalog.DeclareFactory(reflect.TypeOf(fake.Codec{}), func() (interface{}, error) {
		return nil, xerrors.New("oops")
	})

	candidates := catalog.Candidates()
	require.Len(t, candidates, 2)

	value, err := candidates[0].New()
	require.NoError(t, err)
	require.Equal(t, fake.NewCodec(codec.RLELossless, "A"), value)

	_, err = candidates[1].New()
	require.EqualError(t, err, "oops")
}

func TestCatalog_Candidates(t *testing.T) {
	catalog := NewCatalog()
	catalog.Declare(fake.Codec{})

	candidates := catalog.Candidates()
	candidates[0] = Candidate{}

	require.Equal(t, reflect.TypeOf(fake.Codec{}), catalog.Candidates()[0].Type)
}

func TestDefaultCatalog(t *testing.T) {
	n := DefaultCatalog.Len()

	Declare(fake.Codec{})
	DeclareFactory(reflect.TypeOf(fake.Codec{}), func() (interface{}, error) {
		return fake.Codec{}, nil
	})

	defer func() {
		DefaultCatalog.Lock()
		DefaultCatalog.candidates = DefaultCatalog.candidates[:n]
		DefaultCatalog.Unlock()
	}()

	require.Equal(t, n+2, DefaultCatalog.Len())
}

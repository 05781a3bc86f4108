package discovery

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sunxiaotianmg/fo-dicom.Codecs/codec"
	"github.com/sunxiaotianmg/fo-dicom.Codecs/internal/testing/fake"
)

func TestSource_GetPattern(t *testing.T) {
	require.Equal(t, MatchAll, Source{}.GetPattern())
	require.Equal(t, "*.so", Source{Pattern: "*.so"}.GetPattern())
}

func TestSource_String(t *testing.T) {
	require.True(t, Source{}.IsProcess())
	require.Equal(t, "<process>/*", Source{}.String())
	require.Equal(t, "<process>/rle.*", Source{Pattern: "rle.*"}.String())

	src := Source{Path: "/opt/codecs", Pattern: "*.so"}
	require.False(t, src.IsProcess())
	require.Equal(t, "/opt/codecs/*.so", src.String())
}

func TestCandidate_ShortName(t *testing.T) {
	c := Candidate{Name: "github.com/org/codecs/rle.Codec"}
	require.Equal(t, "rle.Codec", c.ShortName())

	c = Candidate{Name: "*github.com/org/codecs/rle.Codec"}
	require.Equal(t, "rle.Codec", c.ShortName())
}

func TestIsCodec(t *testing.T) {
	require.True(t, IsCodec(Candidate{Type: reflect.TypeOf(fake.Codec{})}))
	require.True(t, IsCodec(Candidate{Type: reflect.TypeOf(&fake.Codec{})}))

	require.False(t, IsCodec(Candidate{}))
	require.False(t, IsCodec(Candidate{Type: reflect.TypeOf(fake.NotACodec{})}))
	require.False(t, IsCodec(Candidate{Type: reflect.TypeOf("")}))
}

// The capability must be checked from the candidate towards the interface.
// The other direction would accept any interface type wider than the codec
// one and reject every concrete implementation.
func TestIsCodec_Direction(t *testing.T) {
	wider := reflect.TypeOf((*interface{})(nil)).Elem()
	require.True(t, codecType.AssignableTo(wider))
	require.False(t, IsCodec(Candidate{Type: wider}))

	impl := reflect.TypeOf(fake.NewCodec(codec.RLELossless, ""))
	require.False(t, codecType.AssignableTo(impl))
	require.True(t, IsCodec(Candidate{Type: impl}))

	// The codec interface itself trivially implements the capability.
	require.True(t, IsCodec(Candidate{Type: codecType}))
}

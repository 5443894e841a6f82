package resources

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	xfont "golang.org/x/image/font"

	"github.com/SimonSapin/victor/core/font"
)

func TestResolveFallbackFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.resources")
	defer teardown()
	//
	loader := ResolveTypeCase("fallback", xfont.StyleNormal, xfont.WeightNormal, 11.0)
	typecase, err := loader.TypeCase()
	if err != nil {
		t.Error(err)
	}
	if typecase == nil {
		t.Fatalf("typecase is nil, should not be")
	}
	t.Logf("pt-size of typecase = %f", typecase.PtSize())
	assert.Equal(t, 11.0, typecase.PtSize())
}

func TestResolveRegisteredFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.resources")
	defer teardown()
	//
	font.GlobalRegistry().StoreFont(font.FallbackFont())
	loader := ResolveTypeCase("Go Regular", xfont.StyleNormal, xfont.WeightNormal, 12.0)
	typecase, err := loader.TypeCase()
	assert.NoError(t, err)
	assert.Equal(t, "Go Regular", typecase.ScalableFontParent().Fontname)
}

func TestBestVariant(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.resources")
	defer teardown()
	//
	fi := GoogleFontInfo{
		Family:   "Inconsolata",
		Variants: []string{"regular", "700"},
	}
	assert.Equal(t, "700", bestVariant(fi, xfont.StyleNormal, xfont.WeightBold))
	assert.Equal(t, "regular", bestVariant(fi, xfont.StyleNormal, xfont.WeightNormal))
}

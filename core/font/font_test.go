package font

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	xfont "golang.org/x/image/font"
)

func TestFallbackFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.core")
	defer teardown()
	//
	f := FallbackFont()
	assert.NotNil(t, f)
	assert.Equal(t, "Go Regular", f.Fontname)
	assert.NotNil(t, f.SFNT)
}

func TestFallbackVariants(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.core")
	defer teardown()
	//
	b := FallbackVariant(xfont.StyleNormal, xfont.WeightBold)
	assert.Equal(t, "Go Bold", b.Fontname)
	bi := FallbackVariant(xfont.StyleItalic, xfont.WeightBold)
	assert.Equal(t, "Go Bold Italic", bi.Fontname)
	r := FallbackVariant(xfont.StyleNormal, xfont.WeightNormal)
	assert.Equal(t, "Go Regular", r.Fontname)
}

func TestGlyphID(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.core")
	defer teardown()
	//
	f := FallbackFont()
	if gid := f.GlyphID('A'); gid == 0 {
		t.Errorf("expected fallback font to have a glyph for 'A'")
	}
	// Go Regular has no Linear B glyphs, but the lookup must not choke
	// on a code point outside the BMP
	assert.False(t, f.SupportsCodepoint(0x10000))
}

func TestRegistryTypeCase(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.core")
	defer teardown()
	//
	reg := NewRegistry()
	reg.StoreFont(FallbackFont())
	tc, err := reg.TypeCase("Go Regular", 12)
	assert.NoError(t, err)
	assert.Equal(t, 12.0, tc.PtSize())
	tc2, err := reg.TypeCase("Go Regular", 12)
	assert.NoError(t, err)
	assert.Same(t, tc, tc2)
}

func TestRegistryFallsBack(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.core")
	defer teardown()
	//
	reg := NewRegistry()
	tc, err := reg.TypeCase("No Such Font", 11)
	assert.Error(t, err)
	assert.NotNil(t, tc)
	assert.Equal(t, "Go Regular", tc.ScalableFontParent().Fontname)
}

func TestFindVariants(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.core")
	defer teardown()
	//
	reg := NewRegistry()
	reg.StoreFont(FallbackVariant(xfont.StyleNormal, xfont.WeightNormal))
	reg.StoreFont(FallbackVariant(xfont.StyleNormal, xfont.WeightBold))
	variants := reg.FindVariants("Go")
	assert.Equal(t, 2, len(variants))
}

func TestGuessStyleAndWeight(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.core")
	defer teardown()
	//
	style, weight := GuessStyleAndWeight("NotoSans-BoldItalic")
	assert.Equal(t, xfont.StyleItalic, style)
	assert.Equal(t, xfont.WeightBold, weight)
	style, weight = GuessStyleAndWeight("Vera")
	assert.Equal(t, xfont.StyleNormal, style)
	assert.Equal(t, xfont.WeightNormal, weight)
}

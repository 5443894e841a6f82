package squares

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"

	"github.com/SimonSapin/victor/core/dimen"
	"github.com/SimonSapin/victor/engine/glyphing"
)

func TestSquareShaping(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.glyphs")
	defer teardown()
	//
	sh := Shaper(16 * dimen.PT)
	seq, err := sh.Shape(strings.NewReader("XXXX"), nil, nil, glyphing.Params{})
	assert.NoError(t, err)
	assert.Len(t, seq.Glyphs, 4)
	assert.Equal(t, 64*dimen.PT, seq.W, "4 glyphs at one em each")
	w, h, d := seq.BoundingBox()
	assert.Equal(t, seq.W, w)
	assert.Equal(t, h+d, 16*dimen.PT, "height plus depth is one em")
	for _, g := range seq.Glyphs {
		assert.Equal(t, 16*dimen.PT, g.XAdvance)
	}
}

func TestSquareShapingNonBMP(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.glyphs")
	defer teardown()
	//
	sh := Shaper(10 * dimen.PT)
	// Linear B syllable B008 A, beyond the BMP
	seq, err := sh.Shape(strings.NewReader("\U00010000\U00010001"), nil, nil, glyphing.Params{})
	assert.NoError(t, err)
	assert.Len(t, seq.Glyphs, 2)
	assert.Equal(t, rune(0x10000), seq.Glyphs[0].CodePoint)
	assert.Equal(t, 20*dimen.PT, seq.W)
}

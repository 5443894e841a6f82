/*
Package simple implements a naive shaper on top of the font's character
map: one glyph per code point, advanced by the glyph's metric advance.
No kerning, no ligatures, no contextual substitution. It is adequate for
debugging output and for scripts without complex shaping rules.
*/
package simple

import (
	"io"

	"github.com/npillmayer/schuko/tracing"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/SimonSapin/victor/core/dimen"
	"github.com/SimonSapin/victor/engine/glyphing"
)

// tracer traces with key 'victor.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("victor.glyphs")
}

type cmapShaper struct{}

// Shaper creates a shaper which maps every code point to a single glyph.
func Shaper() glyphing.Shaper {
	return cmapShaper{}
}

// Shape creates a glyph sequence from a text. Code points the font has
// no glyph for map to the font's notdef glyph.
func (s cmapShaper) Shape(text io.RuneReader, buf []glyphing.ShapedGlyph, context [][]rune,
	params glyphing.Params) (glyphing.GlyphSequence, error) {
	//
	if text == nil || params.Font == nil {
		return glyphing.GlyphSequence{}, nil
	}
	seq := glyphing.GlyphSequence{Glyphs: buf}
	if seq.Glyphs == nil {
		seq.Glyphs = make([]glyphing.ShapedGlyph, 0, 64)
	} else {
		seq.Glyphs = seq.Glyphs[:0]
	}
	sfont := params.Font.ScalableFontParent()
	ppem := fixed.Int26_6(params.Font.PtSize() * 64)
	var sfntBuf sfnt.Buffer
	i := 0
	for {
		r, sz, err := text.ReadRune()
		if sz == 0 || err != nil {
			break
		}
		gid := sfont.GlyphID(r)
		if gid == 0 {
			tracer().Debugf("font %s has no glyph for %#U", sfont.Fontname, r)
		}
		adv, err := sfont.SFNT.GlyphAdvance(&sfntBuf, gid, ppem, xfont.HintingNone)
		if err != nil {
			adv = ppem / 2
		}
		g := glyphing.ShapedGlyph{
			ClusterID: i,
			GID:       gid,
			CodePoint: r,
			XAdvance:  scale26_6(adv),
		}
		seq.Glyphs = append(seq.Glyphs, g)
		seq.W += g.XAdvance
		i++
	}
	if metrics, err := sfont.SFNT.Metrics(&sfntBuf, ppem, xfont.HintingNone); err == nil {
		seq.H = scale26_6(metrics.Ascent)
		seq.D = scale26_6(metrics.Descent)
	} else {
		em := dimen.Dimen(params.Font.PtSize() * float64(dimen.PT))
		seq.H = em * 4 / 5
		seq.D = em / 5
	}
	return seq, nil
}

// scale26_6 converts a fixed-point length at the prepared ppem into a
// dimension. ppem is set up in points, so 1/64 fixed units are points.
func scale26_6(x fixed.Int26_6) dimen.Dimen {
	return dimen.Dimen(int64(x) * int64(dimen.PT) / 64)
}

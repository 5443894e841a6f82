/*
Package squares implements a shaper for layout testing: every grapheme
cluster maps to a single glyph occupying exactly one em square, with an
ascent of 0.8em and a descent of 0.2em. Text shaped this way has fully
predictable metrics, which makes layout results easy to verify by hand.
*/
package squares

import (
	"io"
	"unicode/utf8"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"

	"github.com/SimonSapin/victor/core/dimen"
	"github.com/SimonSapin/victor/engine/glyphing"
)

// tracer traces with key 'victor.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("victor.glyphs")
}

type sqshape struct {
	em               dimen.Dimen
	graphemeSplitter *segment.Segmenter
}

// Shaper creates a shaper for em-square typesetting. An em-dimension may
// be given which will then be used for shaping text. If it is zero, the
// font size from the shaping parameters is used, or 10pt if no font is
// given either.
func Shaper(em dimen.Dimen) glyphing.Shaper {
	sh := &sqshape{em: em}
	onGraphemes := grapheme.NewBreaker(1)
	sh.graphemeSplitter = segment.NewSegmenter(onGraphemes)
	grapheme.SetupGraphemeClasses()
	return sh
}

// Shape creates a glyph sequence from a text.
func (sq *sqshape) Shape(text io.RuneReader, buf []glyphing.ShapedGlyph, context [][]rune,
	params glyphing.Params) (glyphing.GlyphSequence, error) {
	//
	if text == nil {
		return glyphing.GlyphSequence{}, nil
	}
	em := sq.em
	if em == 0 {
		if params.Font != nil {
			em = dimen.Dimen(params.Font.PtSize() * float64(dimen.PT))
		} else {
			em = 10 * dimen.PT
		}
	}
	seq := glyphing.GlyphSequence{Glyphs: buf}
	if seq.Glyphs == nil {
		seq.Glyphs = make([]glyphing.ShapedGlyph, 0, 64)
	} else {
		seq.Glyphs = seq.Glyphs[:0]
	}
	sq.graphemeSplitter.Init(text)
	i := 0
	for sq.graphemeSplitter.Next() {
		grphm := sq.graphemeSplitter.Bytes()
		codepoint, _ := utf8.DecodeRune(grphm)
		g := glyphing.ShapedGlyph{
			ClusterID: i,
			CodePoint: codepoint,
			XAdvance:  em,
		}
		seq.Glyphs = append(seq.Glyphs, g)
		seq.W += g.XAdvance
		i++
	}
	tracer().Debugf("shaped %d grapheme clusters onto em squares", i)
	seq.H = em * 4 / 5
	seq.D = em / 5
	return seq, nil
}

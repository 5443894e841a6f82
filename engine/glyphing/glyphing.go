/*
Package glyphing turns text into sequences of positioned glyphs.

Shapers map Unicode code points (including code points beyond the Basic
Multilingual Plane) to glyphs of a font and position them. Implementations
range from a trivial one-glyph-per-rune shaper to a full HarfBuzz
adapter.
*/
package glyphing

import (
	"fmt"
	"io"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/language"

	"github.com/SimonSapin/victor/core/dimen"
	"github.com/SimonSapin/victor/core/font"
)

// tracer traces with key 'victor.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("victor.glyphs")
}

// Direction is the direction to typeset text in.
type Direction int

// Direction to typeset text in.
const (
	LeftToRight Direction = iota
	RightToLeft
	TopToBottom
	BottomToTop
)

// A ShapedGlyph is the shaper's output for one glyph, positioned and
// scaled to the requested font size.
type ShapedGlyph struct {
	ClusterID int             // position of code point(s) for this glyph in the input
	XAdvance  dimen.Dimen     // advance after the glyph has been set
	YAdvance  dimen.Dimen     //
	XOffset   dimen.Dimen     // offset of the glyph from the current position
	YOffset   dimen.Dimen     //
	GID       sfnt.GlyphIndex // glyph index within the font
	CodePoint rune            // first rune that produced this glyph
}

func (g ShapedGlyph) String() string {
	return fmt.Sprintf("(GID=%d, advance=%v)", g.GID, g.XAdvance)
}

// A Shaper creates a sequence of glyphs from a sequence of Unicode code
// points. Glyphs are taken from a font at a specific point size.
//
// Clients may pass a pre-allocated glyph buffer to avoid allocation, and
// textual context around the input ([2][]rune, before and after).
type Shaper interface {
	Shape(text io.RuneReader, buf []ShapedGlyph, context [][]rune, params Params) (GlyphSequence, error)
}

// Params collects shaping parameters.
type Params struct {
	Font      *font.TypeCase  // use a font at a given point size
	Direction Direction       // writing direction
	Script    language.Script // 4-letter ISO 15924 script identifier
	Language  language.Tag    // BCP 47 language tag
}

// GlyphSequence contains a sequence of shaped glyphs.
type GlyphSequence struct {
	Glyphs  []ShapedGlyph // resulting sequence of glyphs
	W, H, D dimen.Dimen   // width, height and depth of the bounding box
}

// BoundingBox returns width, height (above the baseline) and depth
// (below the baseline) of a glyph sequence.
func (seq GlyphSequence) BoundingBox() (w, h, d dimen.Dimen) {
	return seq.W, seq.H, seq.D
}

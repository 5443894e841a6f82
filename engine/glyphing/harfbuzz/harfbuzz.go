/*
Package harfbuzz adapts the HarfBuzz shaper to the glyphing interface.

HarfBuzz selects a shape plan based on the shaping parameters, the
selected font and the properties of the input text, and handles complex
scripts, ligatures and kerning.
*/
package harfbuzz

import (
	"bytes"
	"encoding/binary"
	"io"
	"unicode"

	hbtt "github.com/benoitkugler/textlayout/fonts/truetype"
	hb "github.com/benoitkugler/textlayout/harfbuzz"
	hblang "github.com/benoitkugler/textlayout/language"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/language"

	"github.com/SimonSapin/victor/core/dimen"
	"github.com/SimonSapin/victor/engine/glyphing"
)

// tracer traces with key 'victor.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("victor.glyphs")
}

// --- Type conversion -------------------------------------------------------

// Lang4HB returns a language tag as a HarfBuzz language.
func Lang4HB(l language.Tag) hblang.Language {
	return hblang.NewLanguage(l.String())
}

// Script4HB returns a script as a HarfBuzz script.
func Script4HB(s language.Script) hblang.Script {
	b := []byte(s.String())
	b[0] = byte(unicode.ToLower(rune(b[0])))
	h := binary.BigEndian.Uint32(b)
	return hblang.Script(h)
}

// Direction4HB translates a direction to a HarfBuzz direction.
func Direction4HB(d glyphing.Direction) hb.Direction {
	switch d {
	case glyphing.LeftToRight:
		return hb.LeftToRight
	case glyphing.RightToLeft:
		return hb.RightToLeft
	case glyphing.TopToBottom:
		return hb.TopToBottom
	case glyphing.BottomToTop:
		return hb.BottomToTop
	}
	return hb.LeftToRight
}

// --- Shaper ----------------------------------------------------------------

type hbshape struct {
	fonts map[*sfnt.Font]*hb.Font // parsed font cache
}

// Shaper creates a shaper backed by HarfBuzz. Fonts are parsed into
// HarfBuzz's representation on first use and cached. A shaper is not
// safe for concurrent use.
func Shaper() glyphing.Shaper {
	return &hbshape{fonts: make(map[*sfnt.Font]*hb.Font)}
}

// Shape shapes a sequence of code points, turning Unicode characters
// into positioned glyphs.
//
// params.Font must be set, otherwise no output is created. Clients may
// provide buf to avoid allocating memory by Shape.
func (hs *hbshape) Shape(text io.RuneReader, buf []glyphing.ShapedGlyph, context [][]rune,
	params glyphing.Params) (glyphing.GlyphSequence, error) {
	//
	if text == nil || params.Font == nil {
		return glyphing.GlyphSequence{}, nil
	}
	sfont := params.Font.ScalableFontParent()
	hbFont, err := hs.hbFont(sfont.SFNT, sfont.Binary)
	if err != nil {
		return glyphing.GlyphSequence{}, err
	}
	hbFont.Ptem = float32(params.Font.PtSize())
	var props hb.SegmentProperties
	convertParams(&props, params)
	hbBuf := hb.NewBuffer()
	hbBuf.Props = props
	bytesBuf, offset, length := bufferText(text, context)
	runes := bytes.Runes(bytesBuf.Bytes())
	hbBuf.AddRunes(runes, offset, length)
	hbBuf.Shape(hbFont, nil)
	if buf == nil || len(buf) < len(hbBuf.Info) {
		buf = make([]glyphing.ShapedGlyph, len(hbBuf.Info))
	}
	seq := glyphing.GlyphSequence{Glyphs: buf[:len(hbBuf.Info)]}
	// HarfBuzz positions are in font units, scale them to the point size
	xscale, yscale := hbFont.XScale, hbFont.YScale
	em := params.Font.PtSize() * float64(dimen.PT)
	for i, ginfo := range hbBuf.Info {
		gpos := &hbBuf.Pos[i]
		g := &seq.Glyphs[i]
		g.ClusterID = ginfo.Cluster
		g.GID = sfnt.GlyphIndex(ginfo.Glyph)
		g.XAdvance = scaled(gpos.XAdvance, xscale, em)
		g.YAdvance = scaled(gpos.YAdvance, yscale, em)
		g.XOffset = scaled(gpos.XOffset, xscale, em)
		g.YOffset = scaled(gpos.YOffset, yscale, em)
		if g.ClusterID < len(runes) {
			g.CodePoint = runes[g.ClusterID]
		}
		seq.W += g.XAdvance
	}
	seq.H = dimen.Dimen(em * 4 / 5)
	seq.D = dimen.Dimen(em / 5)
	tracer().Debugf("HarfBuzz shaped %d runes onto %d glyphs", length, len(seq.Glyphs))
	return seq, nil
}

func (hs *hbshape) hbFont(parsed *sfnt.Font, binary []byte) (*hb.Font, error) {
	if f, ok := hs.fonts[parsed]; ok {
		return f, nil
	}
	face, err := hbtt.Parse(bytes.NewReader(binary), true)
	if err != nil {
		return nil, err
	}
	f := hb.NewFont(face)
	hs.fonts[parsed] = f
	return f, nil
}

func scaled(x int32, scale int32, em float64) dimen.Dimen {
	if scale == 0 {
		return 0
	}
	return dimen.Dimen(float64(x) / float64(scale) * em)
}

// convertParams converts glyphing parameters to HarfBuzz's format.
func convertParams(props *hb.SegmentProperties, params glyphing.Params) {
	if params.Language != language.Und {
		props.Language = Lang4HB(params.Language)
	}
	var none language.Script
	if params.Script != none {
		props.Script = Script4HB(params.Script)
	}
	props.Direction = Direction4HB(params.Direction)
}

// bufferText buffers the input text as a bytes.Buffer. To conform to
// HarfBuzz's API, context is pre-/appended to the input runes.
//
// bufferText returns the start position of the input within the returned
// buffer, together with the input's length in runes.
func bufferText(text io.RuneReader, context [][]rune) (buf bytes.Buffer, off int, length int) {
	if len(context) > 0 {
		for _, r := range context[0] {
			buf.WriteRune(r)
			off++
		}
	}
	for {
		r, sz, err := text.ReadRune()
		if sz == 0 || err != nil {
			break
		}
		length++
		buf.WriteRune(r)
	}
	if len(context) > 1 {
		for _, r := range context[1] {
			buf.WriteRune(r)
		}
	}
	return buf, off, length
}

package layout

import (
	"image/color"

	"github.com/SimonSapin/victor/core/dimen"
	"github.com/SimonSapin/victor/core/font"
	"github.com/SimonSapin/victor/engine/dom"
	"github.com/SimonSapin/victor/engine/frame"
	"github.com/SimonSapin/victor/engine/glyphing"
)

// Fragment is a node of the fragment tree which layout produces: box
// fragments for block-level and inline-level boxes, text fragments for
// shaped runs of text on a line.
type Fragment interface {
	fragment()
}

// BoxFragment is a laid-out box. All dimensions are resolved, rects are
// flow-relative and positioned relative to the parent fragment's content
// rect.
type BoxFragment struct {
	domNode     *dom.StyNode
	ContentRect frame.FlowRect
	Padding     frame.FlowSides
	Border      frame.FlowSides
	Margin      frame.FlowSides
	Styling     *frame.Styling
	Flow        frame.Flow
	Children    []Fragment
}

func (f *BoxFragment) fragment() {}

// DOMNode returns the styled DOM node this fragment was generated for,
// or nil for anonymous boxes and line boxes.
func (f *BoxFragment) DOMNode() *dom.StyNode {
	return f.domNode
}

// BorderRect returns the border box rect: the content rect inflated by
// padding and border.
func (f *BoxFragment) BorderRect() frame.FlowRect {
	return f.ContentRect.Inflate(f.Padding).Inflate(f.Border)
}

// MarginRect returns the border rect inflated by the margins.
func (f *BoxFragment) MarginRect() frame.FlowRect {
	return f.BorderRect().Inflate(f.Margin)
}

// TextFragment is a run of shaped text on a line, with uniform styles.
type TextFragment struct {
	domNode *dom.StyNode
	Rect    frame.FlowRect // relative to the parent's content rect
	// Baseline is the distance from the rect's block-start edge to the
	// baseline the glyphs sit on.
	Baseline dimen.Dimen
	Text     string
	Glyphs   []glyphing.ShapedGlyph
	Font     *font.TypeCase
	Color    color.RGBA
}

func (f *TextFragment) fragment() {}

// DOMNode returns the text node this fragment renders.
func (f *TextFragment) DOMNode() *dom.StyNode {
	return f.domNode
}

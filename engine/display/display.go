/*
Package display builds device-independent display lists from a laid-out
fragment tree.

A display list is a flat sequence of paint items per page, in painting
order: solid rectangles for backgrounds and borders, text items for
shaped glyph runs. Backends consume display lists without knowing
anything about boxes, styles or fonts beyond what an item carries.
*/
package display

import (
	"image/color"

	"github.com/npillmayer/schuko/tracing"

	"github.com/SimonSapin/victor/core/dimen"
	"github.com/SimonSapin/victor/core/font"
	"github.com/SimonSapin/victor/engine/glyphing"
)

// tracer traces with key 'victor.display'.
func tracer() tracing.Trace {
	return tracing.Select("victor.display")
}

// Item is one paint operation of a display list.
type Item interface {
	item()
}

// SolidRectangle fills a rectangle with a color.
type SolidRectangle struct {
	Rect  dimen.Rect
	Color color.RGBA
}

func (SolidRectangle) item() {}

// Text sets a run of shaped glyphs, starting at Start on the baseline.
type Text struct {
	Glyphs []glyphing.ShapedGlyph
	Font   *font.TypeCase
	Size   float64 // point size
	Color  color.RGBA
	Start  dimen.Point
}

func (Text) item() {}

// Page is the display list of one page.
type Page struct {
	Size  dimen.Point
	Items []Item
}

// Document is a sequence of pages.
type Document struct {
	Pages []*Page
}

package frame

import (
	"fmt"

	"github.com/SimonSapin/victor/core/dimen"
	"github.com/SimonSapin/victor/engine/dom/style"
)

// WritingMode is a type for the CSS writing-mode property.
type WritingMode uint8

// Supported writing modes.
const (
	HorizontalTB WritingMode = iota // horizontal lines, stacked downwards
	VerticalRL                      // vertical lines, stacked right to left
	VerticalLR                      // vertical lines, stacked left to right
	SidewaysRL                      // like vertical-rl, glyphs rotated
	SidewaysLR                      // like vertical-lr, lines run bottom-up
)

// Direction is a type for the CSS direction property.
type Direction uint8

// Inline base directions.
const (
	LTR Direction = iota
	RTL
)

// Flow combines writing mode and direction. It determines how
// flow-relative terms (inline and block axis) map onto physical ones.
type Flow struct {
	Mode WritingMode
	Dir  Direction
}

// ParseFlow reads writing-mode and direction from computed styles.
func ParseFlow(pmap *style.PropertyMap) Flow {
	flow := Flow{}
	switch pmap.Property("writing-mode") {
	case "vertical-rl":
		flow.Mode = VerticalRL
	case "vertical-lr":
		flow.Mode = VerticalLR
	case "sideways-rl":
		flow.Mode = SidewaysRL
	case "sideways-lr":
		flow.Mode = SidewaysLR
	}
	if pmap.Property("direction") == "rtl" {
		flow.Dir = RTL
	}
	return flow
}

// IsVertical is true if lines run vertically.
func (f Flow) IsVertical() bool {
	return f.Mode != HorizontalTB
}

// --- Physical and flow-relative geometry -----------------------------------

// PhysicalSides are lengths attached to the four physical edges.
type PhysicalSides struct {
	Top, Right, Bottom, Left dimen.Dimen
}

// FlowSides are lengths attached to the four flow-relative edges.
type FlowSides struct {
	BlockStart, InlineEnd, BlockEnd, InlineStart dimen.Dimen
}

func (s FlowSides) String() string {
	return fmt.Sprintf("sides{bs=%v ie=%v be=%v is=%v}",
		s.BlockStart, s.InlineEnd, s.BlockEnd, s.InlineStart)
}

// InlineSum returns start plus end in the inline axis.
func (s FlowSides) InlineSum() dimen.Dimen {
	return s.InlineStart + s.InlineEnd
}

// BlockSum returns start plus end in the block axis.
func (s FlowSides) BlockSum() dimen.Dimen {
	return s.BlockStart + s.BlockEnd
}

// FlowVec is a point or size in flow-relative coordinates.
type FlowVec struct {
	Inline, Block dimen.Dimen
}

// FlowRect is a rectangle in flow-relative coordinates. Origin is the
// (inline-start, block-start) corner, measured from the containing
// rectangle's (inline-start, block-start) corner.
type FlowRect struct {
	Origin FlowVec
	Size   FlowVec
}

// Inflate grows a rectangle by sides, moving the origin towards
// (inline-start, block-start) and growing the size by the side sums.
func (r FlowRect) Inflate(s FlowSides) FlowRect {
	return FlowRect{
		Origin: FlowVec{
			Inline: r.Origin.Inline - s.InlineStart,
			Block:  r.Origin.Block - s.BlockStart,
		},
		Size: FlowVec{
			Inline: r.Size.Inline + s.InlineSum(),
			Block:  r.Size.Block + s.BlockSum(),
		},
	}
}

// Translate moves a rectangle by a flow-relative offset.
func (r FlowRect) Translate(by FlowVec) FlowRect {
	r.Origin.Inline += by.Inline
	r.Origin.Block += by.Block
	return r
}

// --- Mapping between the two -----------------------------------------------

// ToFlow maps physical sides into flow-relative sides, given a flow.
//
// For horizontal-tb/ltr the mapping is the identity (top = block-start and
// so on); vertical modes rotate the block axis onto the x axis.
func (f Flow) ToFlow(p PhysicalSides) FlowSides {
	var s FlowSides
	switch f.Mode {
	case HorizontalTB:
		s.BlockStart, s.BlockEnd = p.Top, p.Bottom
		if f.Dir == LTR {
			s.InlineStart, s.InlineEnd = p.Left, p.Right
		} else {
			s.InlineStart, s.InlineEnd = p.Right, p.Left
		}
	case VerticalRL, SidewaysRL:
		s.BlockStart, s.BlockEnd = p.Right, p.Left
		if f.Dir == LTR {
			s.InlineStart, s.InlineEnd = p.Top, p.Bottom
		} else {
			s.InlineStart, s.InlineEnd = p.Bottom, p.Top
		}
	case VerticalLR:
		s.BlockStart, s.BlockEnd = p.Left, p.Right
		if f.Dir == LTR {
			s.InlineStart, s.InlineEnd = p.Top, p.Bottom
		} else {
			s.InlineStart, s.InlineEnd = p.Bottom, p.Top
		}
	case SidewaysLR:
		s.BlockStart, s.BlockEnd = p.Left, p.Right
		// sideways-lr lines run bottom-up
		if f.Dir == LTR {
			s.InlineStart, s.InlineEnd = p.Bottom, p.Top
		} else {
			s.InlineStart, s.InlineEnd = p.Top, p.Bottom
		}
	}
	return s
}

// ToPhysical is the inverse of ToFlow.
func (f Flow) ToPhysical(s FlowSides) PhysicalSides {
	var p PhysicalSides
	switch f.Mode {
	case HorizontalTB:
		p.Top, p.Bottom = s.BlockStart, s.BlockEnd
		if f.Dir == LTR {
			p.Left, p.Right = s.InlineStart, s.InlineEnd
		} else {
			p.Right, p.Left = s.InlineStart, s.InlineEnd
		}
	case VerticalRL, SidewaysRL:
		p.Right, p.Left = s.BlockStart, s.BlockEnd
		if f.Dir == LTR {
			p.Top, p.Bottom = s.InlineStart, s.InlineEnd
		} else {
			p.Bottom, p.Top = s.InlineStart, s.InlineEnd
		}
	case VerticalLR:
		p.Left, p.Right = s.BlockStart, s.BlockEnd
		if f.Dir == LTR {
			p.Top, p.Bottom = s.InlineStart, s.InlineEnd
		} else {
			p.Bottom, p.Top = s.InlineStart, s.InlineEnd
		}
	case SidewaysLR:
		p.Left, p.Right = s.BlockStart, s.BlockEnd
		if f.Dir == LTR {
			p.Bottom, p.Top = s.InlineStart, s.InlineEnd
		} else {
			p.Top, p.Bottom = s.InlineStart, s.InlineEnd
		}
	}
	return p
}

// RectToPhysical converts a flow-relative rectangle into physical
// coordinates, given the physical size of the containing rectangle.
// The result uses the usual screen convention: origin at top-left, y
// growing downwards.
func (f Flow) RectToPhysical(r FlowRect, container dimen.Point) (topLeft dimen.Point, size dimen.Point) {
	var w, h dimen.Dimen // physical size of r
	if f.IsVertical() {
		w, h = r.Size.Block, r.Size.Inline
	} else {
		w, h = r.Size.Inline, r.Size.Block
	}
	size = dimen.Point{X: w, Y: h}
	// inline and block offsets, measured from their physical start edges
	i, b := r.Origin.Inline, r.Origin.Block
	iSpan, bSpan := i+r.Size.Inline, b+r.Size.Block
	var x, y dimen.Dimen
	switch f.Mode {
	case HorizontalTB:
		y = b
		if f.Dir == LTR {
			x = i
		} else {
			x = container.X - iSpan
		}
	case VerticalRL, SidewaysRL:
		x = container.X - bSpan
		if f.Dir == LTR {
			y = i
		} else {
			y = container.Y - iSpan
		}
	case VerticalLR:
		x = b
		if f.Dir == LTR {
			y = i
		} else {
			y = container.Y - iSpan
		}
	case SidewaysLR:
		x = b
		if f.Dir == LTR {
			y = container.Y - iSpan
		} else {
			y = i
		}
	}
	topLeft = dimen.Point{X: x, Y: y}
	return
}

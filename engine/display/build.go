package display

import (
	"github.com/SimonSapin/victor/core/dimen"
	"github.com/SimonSapin/victor/engine/dom/style"
	"github.com/SimonSapin/victor/engine/frame"
	"github.com/SimonSapin/victor/engine/frame/layout"
)

// Build converts a fragment tree into a display list document with a
// single page of the given size.
func Build(root *layout.BoxFragment, pageSize dimen.Point) *Document {
	page := &Page{Size: pageSize}
	if root != nil {
		paintBox(page, root, dimen.Origin, pageSize)
	}
	tracer().Debugf("display list with %d items", len(page.Items))
	return &Document{Pages: []*Page{page}}
}

// paintBox paints one box fragment and recurses into its children.
// origin is the physical position of the containing content rect,
// container its physical size.
func paintBox(page *Page, frag *layout.BoxFragment, origin dimen.Point, container dimen.Point) {
	flow := frag.Flow
	borderTopL, borderSize := flow.RectToPhysical(frag.BorderRect(), container)
	borderTopL.Shift(origin)
	if frag.Styling != nil {
		if bg := frag.Styling.Colors.Background; bg != style.Transparent {
			page.Items = append(page.Items, SolidRectangle{
				Rect:  rectAt(borderTopL, borderSize),
				Color: bg,
			})
		}
		paintBorders(page, frag, borderTopL, borderSize)
	}
	contentTopL, contentSize := flow.RectToPhysical(frag.ContentRect, container)
	contentTopL.Shift(origin)
	for _, ch := range frag.Children {
		switch c := ch.(type) {
		case *layout.BoxFragment:
			paintBox(page, c, contentTopL, contentSize)
		case *layout.TextFragment:
			paintText(page, c, flow, contentTopL, contentSize)
		}
	}
}

// paintBorders paints the four border edges as solid rectangles. Dashed
// and dotted styles currently paint like solid ones.
func paintBorders(page *Page, frag *layout.BoxFragment, topL dimen.Point, size dimen.Point) {
	widths := frag.Flow.ToPhysical(frag.Border)
	styles := physicalBorders(frag)
	x2, y2 := topL.X+size.X, topL.Y+size.Y
	edges := [4]struct {
		style frame.BorderStyle
		rect  dimen.Rect
	}{
		{styles[0], dimen.Rect{TopL: topL, BotR: dimen.Point{X: x2, Y: topL.Y + widths.Top}}},
		{styles[1], dimen.Rect{TopL: dimen.Point{X: x2 - widths.Right, Y: topL.Y}, BotR: dimen.Point{X: x2, Y: y2}}},
		{styles[2], dimen.Rect{TopL: dimen.Point{X: topL.X, Y: y2 - widths.Bottom}, BotR: dimen.Point{X: x2, Y: y2}}},
		{styles[3], dimen.Rect{TopL: topL, BotR: dimen.Point{X: topL.X + widths.Left, Y: y2}}},
	}
	for _, e := range edges {
		if e.style.LineStyle == frame.LSNone {
			continue
		}
		if e.rect.Width() <= 0 || e.rect.Height() <= 0 {
			continue
		}
		page.Items = append(page.Items, SolidRectangle{Rect: e.rect, Color: e.style.LineColor})
	}
}

// physicalBorders returns the fragment's border styles in physical
// order top, right, bottom, left.
func physicalBorders(frag *layout.BoxFragment) [4]frame.BorderStyle {
	if frag.Styling == nil {
		return [4]frame.BorderStyle{}
	}
	// Styling borders are flow-relative; recover the physical order by
	// mapping marker values through the flow.
	marks := frag.Flow.ToPhysical(frame.FlowSides{
		BlockStart: 0, InlineEnd: 1, BlockEnd: 2, InlineStart: 3,
	})
	flowIdx := [4]dimen.Dimen{marks.Top, marks.Right, marks.Bottom, marks.Left}
	var phys [4]frame.BorderStyle
	for i, fi := range flowIdx {
		phys[i] = frag.Styling.Borders[fi]
	}
	return phys
}

// paintText emits a text item for a shaped text fragment. The baseline
// start point is at the fragment's inline-start edge.
func paintText(page *Page, frag *layout.TextFragment, flow frame.Flow,
	origin dimen.Point, container dimen.Point) {
	//
	topL, size := flow.RectToPhysical(frag.Rect, container)
	topL.Shift(origin)
	start := topL
	if flow.IsVertical() {
		start.X += size.X - frag.Baseline
	} else {
		start.Y += frag.Baseline
	}
	item := Text{
		Glyphs: frag.Glyphs,
		Font:   frag.Font,
		Color:  frag.Color,
		Start:  start,
	}
	if frag.Font != nil {
		item.Size = frag.Font.PtSize()
	}
	page.Items = append(page.Items, item)
}

func rectAt(topL dimen.Point, size dimen.Point) dimen.Rect {
	return dimen.Rect{
		TopL: topL,
		BotR: dimen.Point{X: topL.X + size.X, Y: topL.Y + size.Y},
	}
}

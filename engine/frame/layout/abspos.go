package layout

import (
	"github.com/SimonSapin/victor/core/dimen"
	"github.com/SimonSapin/victor/engine/dom/style/css"
	"github.com/SimonSapin/victor/engine/frame"
	"github.com/SimonSapin/victor/engine/frame/boxtree"
)

// layoutOutOfFlow places an absolutely positioned or floated box inside
// its containing block. containing is the content size of the containing
// block's fragment.
//
// Floats get no exclusion handling: they are placed at their static
// block position, flush with the inline-start or inline-end edge, and
// surrounding content does not flow around them.
func layoutOutOfFlow(p pendingBox, containing frame.FlowVec, ctx *Context,
	parentFontSize dimen.Dimen) (*BoxFragment, error) {
	//
	b := p.box
	fontsize := resolveFontSize(b.Styling, parentFontSize, ctx)
	offsets := insetOffsets(b, containing, fontsize, ctx)
	avail := containing.Inline
	if offsets[frame.InlineStart].IsAbsolute() {
		avail -= offsets[frame.InlineStart].Unwrap()
	}
	if offsets[frame.InlineEnd].IsAbsolute() {
		avail -= offsets[frame.InlineEnd].Unwrap()
	}
	frag, err := layoutBlockBox(b, avail, ctx, parentFontSize)
	if err != nil {
		return nil, err
	}
	margin := frag.MarginRect()
	var i, blk dimen.Dimen
	switch {
	case offsets[frame.InlineStart].IsAbsolute():
		i = offsets[frame.InlineStart].Unwrap()
	case offsets[frame.InlineEnd].IsAbsolute():
		i = containing.Inline - offsets[frame.InlineEnd].Unwrap() - margin.Size.Inline
	case b.Float == boxtree.FloatRight:
		i = containing.Inline - margin.Size.Inline
	default:
		i = 0 // static inline position
	}
	switch {
	case offsets[frame.BlockStart].IsAbsolute():
		blk = offsets[frame.BlockStart].Unwrap()
	case offsets[frame.BlockEnd].IsAbsolute():
		blk = containing.Block - offsets[frame.BlockEnd].Unwrap() - margin.Size.Block
	default:
		blk = p.staticB
	}
	// move the fragment's margin box to (i, blk)
	frag.ContentRect = frag.ContentRect.Translate(frame.FlowVec{
		Inline: i,
		Block:  blk,
	})
	return frag, nil
}

// insetOffsets resolves the box's inset properties (top/right/bottom/
// left) into flow-relative, absolute dimensions. Inline-axis percentages
// resolve against the containing inline size, block-axis percentages
// against the containing block size. Auto offsets stay unset.
func insetOffsets(b *boxtree.BlockBox, containing frame.FlowVec,
	fontsize dimen.Dimen, ctx *Context) [4]css.DimenT {
	//
	var phys [4]css.DimenT
	if b.Position.Offsets != nil {
		copy(phys[:], b.Position.Offsets)
	}
	offsets := frame.OffsetsToFlow(b.Flow, phys)
	for dir := frame.Top; dir <= frame.Left; dir++ {
		d := offsets[dir]
		if d.IsAuto() || d.IsNone() {
			offsets[dir] = css.Dimen()
			continue
		}
		d = d.ScaleFromFont(fontsize)
		d = d.ScaleFromViewport(ctx.Viewport.X, ctx.Viewport.Y)
		base := containing.Inline
		if dir == frame.BlockStart || dir == frame.BlockEnd {
			base = containing.Block
		}
		offsets[dir] = d.ScaleFromPercentBase(base)
	}
	return offsets
}

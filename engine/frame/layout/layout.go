package layout

import (
	"github.com/SimonSapin/victor/core/dimen"
	"github.com/SimonSapin/victor/core/font"
	"github.com/SimonSapin/victor/engine/dom/style/css"
	"github.com/SimonSapin/victor/engine/frame"
	"github.com/SimonSapin/victor/engine/frame/boxtree"
	"github.com/SimonSapin/victor/engine/glyphing"
	"github.com/SimonSapin/victor/engine/glyphing/simple"
)

// Context carries everything layout needs besides the box tree itself.
type Context struct {
	Shaper       glyphing.Shaper // shaper for text runs
	Fonts        *font.Registry  // font registry for typeface lookup
	Viewport     dimen.Point     // physical size of the viewport or page
	RootFontSize dimen.Dimen     // font size relative units resolve against
}

// NewContext creates a layout context with sensible defaults: the global
// font registry, the naive cmap shaper and a 16px root font size.
func NewContext(viewport dimen.Point) *Context {
	return &Context{
		Shaper:       simple.Shaper(),
		Fonts:        font.GlobalRegistry(),
		Viewport:     viewport,
		RootFontSize: 16 * dimen.PX,
	}
}

// Layout lays out a box tree, producing a fragment tree. The root box
// fills the context's viewport in the inline direction.
func Layout(root *boxtree.BlockBox, ctx *Context) (*BoxFragment, error) {
	if root == nil {
		return nil, boxtree.ErrNoBoxTreeCreated
	}
	cb := ctx.Viewport.X
	if root.Flow.IsVertical() {
		cb = ctx.Viewport.Y
	}
	tracer().Debugf("layout of %s against inline size %v", root.TagName(), cb)
	return layoutBlockBox(root, cb, ctx, ctx.RootFontSize)
}

// layoutBlockBox lays out one block-level box and its subtree. cb is the
// inline extent of the containing block. The returned fragment's origin
// holds the box's own edge offsets; the caller adds the block-axis
// position.
func layoutBlockBox(b *boxtree.BlockBox, cb dimen.Dimen, ctx *Context,
	parentFontSize dimen.Dimen) (*BoxFragment, error) {
	//
	fontsize := resolveFontSize(b.Styling, parentFontSize, ctx)
	box := *b.CSSBox
	scaleBox(&box, fontsize, ctx)
	if _, err := frame.FixDimensionsFromEnclosingWidth(&box, cb); err != nil {
		return nil, err
	}
	frag := &BoxFragment{
		domNode: b.DOMNode(),
		Styling: b.Styling,
		Flow:    b.Flow,
		Padding: box.PaddingSides(),
		Border:  box.BorderSides(),
		Margin:  box.MarginSides(),
	}
	w := box.W.Unwrap()
	var contentBSize dimen.Dimen
	var err error
	if b.Inline != nil {
		frag.Children, contentBSize, err = layoutInlineContent(b.Inline, w, ctx, fontsize)
		if err != nil {
			return nil, err
		}
	}
	var pendings []pendingBox
	if len(b.Children) > 0 {
		contentBSize, pendings, err = layoutBlockChildren(frag, b.Children, w, ctx, fontsize, contentBSize)
		if err != nil {
			return nil, err
		}
	}
	height := contentBSize
	if box.H.IsAbsolute() {
		height = box.H.Unwrap()
	}
	frag.ContentRect.Size = frame.FlowVec{Inline: w, Block: height}
	frag.ContentRect.Origin = frame.FlowVec{
		Inline: frag.Margin.InlineStart + frag.Border.InlineStart + frag.Padding.InlineStart,
		Block:  frag.Margin.BlockStart + frag.Border.BlockStart + frag.Padding.BlockStart,
	}
	// out-of-flow boxes position against the now-known content size
	for _, p := range pendings {
		pfrag, perr := layoutOutOfFlow(p, frag.ContentRect.Size, ctx, fontsize)
		if perr != nil {
			return nil, perr
		}
		frag.Children = append(frag.Children, pfrag)
	}
	return frag, nil
}

// pendingBox is an out-of-flow box waiting for its containing block's
// content size, together with the static block position it would have
// had in normal flow.
type pendingBox struct {
	box     *boxtree.BlockBox
	staticB dimen.Dimen
}

// layoutBlockChildren stacks in-flow children in the block direction,
// collapsing adjoining sibling margins to the greater one. Out-of-flow
// children are collected for later placement. Returns the content's
// block extent.
func layoutBlockChildren(parent *BoxFragment, children []*boxtree.BlockBox, cb dimen.Dimen,
	ctx *Context, fontsize dimen.Dimen, startB dimen.Dimen) (dimen.Dimen, []pendingBox, error) {
	//
	cursor := startB // block position of the last border-box end
	var prevMargin dimen.Dimen
	var pendings []pendingBox
	first := startB == 0
	for _, ch := range children {
		if ch.IsOutOfFlow() {
			pendings = append(pendings, pendingBox{box: ch, staticB: cursor + prevMargin})
			continue
		}
		frag, err := layoutBlockBox(ch, cb, ctx, fontsize)
		if err != nil {
			return 0, nil, err
		}
		var gap dimen.Dimen
		if first {
			gap = frag.Margin.BlockStart
			first = false
		} else {
			gap = dimen.Max(prevMargin, frag.Margin.BlockStart)
		}
		// the fragment's own origin includes its block-start edges; shift
		// it so that its margin box starts at cursor + gap - margin
		frag.ContentRect = frag.ContentRect.Translate(frame.FlowVec{
			Block: cursor + gap - frag.Margin.BlockStart,
		})
		parent.Children = append(parent.Children, frag)
		border := frag.BorderRect()
		cursor = border.Origin.Block + border.Size.Block
		prevMargin = frag.Margin.BlockEnd
	}
	return cursor + prevMargin, pendings, nil
}

// resolveFontSize computes the used font size of a box from its styling,
// resolving em/percent values against the parent's font size.
func resolveFontSize(st *frame.Styling, parent dimen.Dimen, ctx *Context) dimen.Dimen {
	if st == nil {
		return parent
	}
	d := st.Text.FontSize
	if d.IsNone() || d.IsAuto() {
		return parent
	}
	if d.IsPercent() {
		d = d.ScaleFromPercentBase(parent)
	} else if d.IsRelative() {
		d = d.ScaleFromFont(parent)
		d = d.ScaleFromViewport(ctx.Viewport.X, ctx.Viewport.Y)
	}
	v, err := d.FixedValue()
	if err != nil {
		tracer().Infof("font size did not resolve, inheriting: %v", err)
		return parent
	}
	return v
}

// scaleBox resolves font- and viewport-dependent dimensions of a box.
// Percentages stay, they resolve against the containing block later.
func scaleBox(box *frame.Box, fontsize dimen.Dimen, ctx *Context) {
	scale := func(d css.DimenT) css.DimenT {
		d = d.ScaleFromFont(fontsize)
		return d.ScaleFromViewport(ctx.Viewport.X, ctx.Viewport.Y)
	}
	box.W = scale(box.W)
	box.H = scale(box.H)
	for dir := frame.Top; dir <= frame.Left; dir++ {
		box.Padding[dir] = scale(box.Padding[dir])
		box.BorderWidth[dir] = scale(box.BorderWidth[dir])
		box.Margins[dir] = scale(box.Margins[dir])
	}
}

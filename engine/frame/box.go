package frame

import (
	"errors"
	"fmt"

	"github.com/SimonSapin/victor/core/dimen"
	"github.com/SimonSapin/victor/core/option"
	"github.com/SimonSapin/victor/engine/dom/style"
	"github.com/SimonSapin/victor/engine/dom/style/css"
)

// Size is a pair of optional extents.
type Size struct {
	W css.DimenT // inline extent
	H css.DimenT // block extent
}

// Box type, following the CSS box model. Box edges are flow-relative:
// index Top is block-start, Right is inline-end, and so on. For
// horizontal-tb/ltr these coincide with the physical edges.
type Box struct {
	Size
	Padding     [4]css.DimenT // inside of border
	BorderWidth [4]css.DimenT // thickness of border
	Margins     [4]css.DimenT // outside of border, maybe unknown
}

// For padding, margins, etc. 4-way values always start at the block-start
// edge and travel clockwise (in flow-relative terms).
const (
	Top int = iota // block-start
	Right          // inline-end
	Bottom         // block-end
	Left           // inline-start
)

// Flow-relative aliases for the edge indices.
const (
	BlockStart  = Top
	InlineEnd   = Right
	BlockEnd    = Bottom
	InlineStart = Left
)

// InitEmptyBox initializes padding, border and margins to 0 and the size
// to auto.
func InitEmptyBox(box *Box) *Box {
	if box == nil {
		box = &Box{}
	}
	for dir := Top; dir <= Left; dir++ {
		box.Padding[dir] = css.SomeDimen(0)
		box.BorderWidth[dir] = css.SomeDimen(0)
		box.Margins[dir] = css.SomeDimen(0)
	}
	box.W = css.AutoDimen()
	box.H = css.AutoDimen()
	return box
}

// BoxFromStyles reads size, padding, border and margins from computed
// styles. Physical properties (margin-left and friends) are mapped onto
// flow-relative edges according to the element's writing mode and
// direction. Border widths of edges with border-style none are forced
// to 0.
func BoxFromStyles(pmap *style.PropertyMap, flow Flow) *Box {
	box := &Box{}
	box.W = css.DimenOption(pmap.Property("width"))
	box.H = css.DimenOption(pmap.Property("height"))
	if flow.IsVertical() { // width and height are physical, our size is not
		box.W, box.H = box.H, box.W
	}
	physEdges := [4]string{"top", "right", "bottom", "left"}
	var padding, border, margins [4]css.DimenT
	for i, edge := range physEdges {
		padding[i] = css.DimenOption(pmap.Property("padding-" + edge))
		margins[i] = css.DimenOption(pmap.Property("margin-" + edge))
		if pmap.Property("border-"+edge+"-style") == "none" {
			border[i] = css.SomeDimen(0)
		} else {
			border[i] = css.DimenOption(pmap.Property("border-" + edge + "-width"))
		}
	}
	// physical index -> flow-relative index
	perm := flowEdgePermutation(flow)
	for i := Top; i <= Left; i++ {
		box.Padding[i] = padding[perm[i]]
		box.BorderWidth[i] = border[perm[i]]
		box.Margins[i] = margins[perm[i]]
	}
	return box
}

// flowEdgePermutation returns, for each flow-relative edge index, the
// physical edge index it maps to.
func flowEdgePermutation(flow Flow) [4]int {
	key := func(d dimen.Dimen) int { // recover the marked edge
		switch d {
		case 1:
			return Top
		case 2:
			return Right
		case 3:
			return Bottom
		}
		return Left
	}
	marked := flow.ToFlow(PhysicalSides{Top: 1, Right: 2, Bottom: 3, Left: 4})
	return [4]int{
		BlockStart:  key(marked.BlockStart),
		InlineEnd:   key(marked.InlineEnd),
		BlockEnd:    key(marked.BlockEnd),
		InlineStart: key(marked.InlineStart),
	}
}

// OffsetsToFlow maps physical inset offsets (top, right, bottom, left,
// as in css.PositionT) onto flow-relative edges.
func OffsetsToFlow(flow Flow, phys [4]css.DimenT) [4]css.DimenT {
	perm := flowEdgePermutation(flow)
	var offsets [4]css.DimenT
	for i := Top; i <= Left; i++ {
		offsets[i] = phys[perm[i]]
	}
	return offsets
}

// DebugString returns a textual representation of a box's dimensions.
// Intended for debugging.
func (box *Box) DebugString() string {
	s := fmt.Sprintf("box{\n   w=%v, h=%v\n", box.W, box.H)
	s += fmt.Sprintf("   p.bs=%v, p.ie=%v, p.be=%v, p.is=%v\n",
		box.Padding[Top], box.Padding[Right],
		box.Padding[Bottom], box.Padding[Left])
	s += fmt.Sprintf("   b.bs=%v, b.ie=%v, b.be=%v, b.is=%v\n",
		box.BorderWidth[Top], box.BorderWidth[Right],
		box.BorderWidth[Bottom], box.BorderWidth[Left])
	s += fmt.Sprintf("   m.bs=%v, m.ie=%v, m.be=%v, m.is=%v\n",
		box.Margins[Top], box.Margins[Right],
		box.Margins[Bottom], box.Margins[Left])
	s += "}"
	return s
}

// InnerDecorationWidth is the inline-axis sum of padding and border. It is
// unset if any of them is not fixed yet.
func (box *Box) InnerDecorationWidth() css.DimenT {
	if !box.Padding[Left].IsAbsolute() || !box.Padding[Right].IsAbsolute() ||
		!box.BorderWidth[Left].IsAbsolute() || !box.BorderWidth[Right].IsAbsolute() {
		return css.Dimen()
	}
	w := dimen.Zero
	w += box.Padding[Left].Unwrap()
	w += box.Padding[Right].Unwrap()
	w += box.BorderWidth[Left].Unwrap()
	w += box.BorderWidth[Right].Unwrap()
	return css.SomeDimen(w)
}

// InnerDecorationHeight is the block-axis sum of padding and border.
func (box *Box) InnerDecorationHeight() css.DimenT {
	if !box.Padding[Top].IsAbsolute() || !box.Padding[Bottom].IsAbsolute() ||
		!box.BorderWidth[Top].IsAbsolute() || !box.BorderWidth[Bottom].IsAbsolute() {
		return css.Dimen()
	}
	h := dimen.Zero
	h += box.Padding[Top].Unwrap()
	h += box.Padding[Bottom].Unwrap()
	h += box.BorderWidth[Top].Unwrap()
	h += box.BorderWidth[Bottom].Unwrap()
	return css.SomeDimen(h)
}

// HasFixedBorderBoxWidth returns true if box.W, padding and border widths
// of the inline edges have fixed (known) values.
// If includeMargins is true, inline margins are checked as well.
func (box *Box) HasFixedBorderBoxWidth(includeMargins bool) bool {
	if includeMargins {
		if !box.Margins[Left].IsAbsolute() || !box.Margins[Right].IsAbsolute() {
			return false
		}
	}
	return box.W.IsAbsolute() && !box.InnerDecorationWidth().IsNone()
}

// BorderBoxWidth returns the inline extent of a box, including padding
// and border. If at least one of the dimensions is not of fixed value, an
// unset dimension is returned.
func (box *Box) BorderBoxWidth() css.DimenT {
	if box.HasFixedBorderBoxWidth(false) {
		w := box.W.Unwrap()
		w += box.InnerDecorationWidth().Unwrap()
		return css.SomeDimen(w)
	}
	return css.Dimen()
}

// BorderBoxHeight returns the block extent of a box, including padding
// and border.
func (box *Box) BorderBoxHeight() css.DimenT {
	if box.H.IsAbsolute() && !box.InnerDecorationHeight().IsNone() {
		h := box.H.Unwrap()
		h += box.InnerDecorationHeight().Unwrap()
		return css.SomeDimen(h)
	}
	return css.Dimen()
}

// TotalWidth returns the overall inline extent of a box, including
// margins. If one of the dimensions is not of fixed value, an unset
// dimension is returned.
func (box *Box) TotalWidth() css.DimenT {
	if box.HasFixedBorderBoxWidth(true) {
		w := box.BorderBoxWidth().Unwrap()
		w += box.Margins[Left].Unwrap()
		w += box.Margins[Right].Unwrap()
		return css.SomeDimen(w)
	}
	return css.Dimen()
}

// TotalHeight returns the overall block extent of a box, including
// margins.
func (box *Box) TotalHeight() css.DimenT {
	if !box.BorderBoxHeight().IsNone() &&
		box.Margins[Top].IsAbsolute() && box.Margins[Bottom].IsAbsolute() {
		h := box.BorderBoxHeight().Unwrap()
		h += box.Margins[Top].Unwrap()
		h += box.Margins[Bottom].Unwrap()
		return css.SomeDimen(h)
	}
	return css.Dimen()
}

// PaddingSides returns the fixed padding as flow-relative sides. Unfixed
// values count as 0.
func (box *Box) PaddingSides() FlowSides {
	return FlowSides{
		BlockStart:  fixedOrZero(box.Padding[Top]),
		InlineEnd:   fixedOrZero(box.Padding[Right]),
		BlockEnd:    fixedOrZero(box.Padding[Bottom]),
		InlineStart: fixedOrZero(box.Padding[Left]),
	}
}

// BorderSides returns the fixed border widths as flow-relative sides.
func (box *Box) BorderSides() FlowSides {
	return FlowSides{
		BlockStart:  fixedOrZero(box.BorderWidth[Top]),
		InlineEnd:   fixedOrZero(box.BorderWidth[Right]),
		BlockEnd:    fixedOrZero(box.BorderWidth[Bottom]),
		InlineStart: fixedOrZero(box.BorderWidth[Left]),
	}
}

// MarginSides returns the fixed margins as flow-relative sides.
func (box *Box) MarginSides() FlowSides {
	return FlowSides{
		BlockStart:  fixedOrZero(box.Margins[Top]),
		InlineEnd:   fixedOrZero(box.Margins[Right]),
		BlockEnd:    fixedOrZero(box.Margins[Bottom]),
		InlineStart: fixedOrZero(box.Margins[Left]),
	}
}

func fixedOrZero(d css.DimenT) dimen.Dimen {
	v, err := d.FixedValue()
	if err != nil {
		return 0
	}
	return v
}

// FixPercentages resolves %-relative padding, border and margin values
// against the enclosing inline extent. Percentages of all four edges
// refer to the inline size of the containing block, never its block size.
func (box *Box) FixPercentages(enclosingWidth dimen.Dimen) bool {
	fixed := true
	for dir := Top; dir <= Left; dir++ {
		box.Padding[dir] = box.Padding[dir].ScaleFromPercentBase(enclosingWidth)
		box.BorderWidth[dir] = box.BorderWidth[dir].ScaleFromPercentBase(enclosingWidth)
		box.Margins[dir] = box.Margins[dir].ScaleFromPercentBase(enclosingWidth)
		if !box.Padding[dir].IsAbsolute() || !box.BorderWidth[dir].IsAbsolute() {
			fixed = false
		}
	}
	return fixed
}

// CollapseMargins returns the greater margin between the block-end margin
// of box1 and the block-start margin of box2, and the smaller one as the
// second return value.
//
// If any of the boxes' margins are unset, return values may be unset, too.
func CollapseMargins(box1, box2 *Box) (css.DimenT, css.DimenT) {
	if box1 == nil {
		if box2 == nil {
			return css.SomeDimen(0), css.SomeDimen(0)
		}
		return box2.Margins[Top], css.SomeDimen(0)
	} else if box2 == nil {
		return box1.Margins[Bottom], css.SomeDimen(0)
	}
	return css.MaxDimen(box1.Margins[Bottom], box2.Margins[Top]),
		css.MinDimen(box1.Margins[Bottom], box2.Margins[Top])
}

// --- API for constraint width solving --------------------------------------

// ErrUnfixedScaledUnit is returned if a dimension calculation encounters a
// dimension-specification which is dependent on view-size or font-size.
var ErrUnfixedScaledUnit error = errors.New("font/view dependent dimension is unfixed")

// ErrUnderspecified is returned if a dimension calculation cannot be
// completed because the input values are underspecified.
var ErrUnderspecified error = errors.New("box width dimensions are underspecified")

// FixDimensionsFromEnclosingWidth calculates missing/auto dimensions from
// the inline extent of the enclosing box.
//
// This will distribute space according to the equation (ref. CSS spec):
//
//	margin-left + border-width-left + padding-left + width +
//	  padding-right + border-width-right + margin-right = width of containing block
//
// in flow-relative reading. If width is auto, it receives whatever the
// other values leave over. If the equation is over-constrained, the
// inline-end margin is overwritten with the remaining space.
//
// Font- and viewport-dependent dimensions (em, vw, …) must have been
// resolved beforehand; otherwise ErrUnfixedScaledUnit is returned.
func FixDimensionsFromEnclosingWidth(box *Box, enclosingWidth dimen.Dimen) (bool, error) {
	tracer().Debugf("fix constraint dimensions, enclosing = %v", enclosingWidth)
	fixIllegalDimensionSpecifications(box)
	box.FixPercentages(enclosingWidth)
	if err := checkForUnresolvedDependentDimensions(box); err != nil {
		return false, err
	}
	box.W = box.W.ScaleFromPercentBase(enclosingWidth)
	var w css.DimenT
	var err error
	if box.W.IsAbsolute() {
		w, err = takeWidth(box, enclosingWidth)
	} else {
		w, err = calcWidthAsRest(box, enclosingWidth)
	}
	if err != nil {
		return false, err
	} else if !w.IsAbsolute() {
		return false, ErrUnderspecified
	}
	box.W = w
	tracer().Debugf("dimensions calculated from enclosing width: %s", box.DebugString())
	return true, nil
}

// takeWidth keeps a fixed width and distributes the remaining space into
// the inline margins.
func takeWidth(box *Box, enclosing dimen.Dimen) (css.DimenT, error) {
	tracer().Debugf("calculating width: simply take it as is = %v", box.W)
	fixed := distributeInlineMarginSpace(box, enclosing)
	if !fixed {
		return box.W, ErrUnderspecified
	}
	return box.W, nil
}

// Spec: If 'width' is set to 'auto', any other 'auto' values become '0'
// and 'width' follows from the resulting equality.
func calcWidthAsRest(box *Box, enclosing dimen.Dimen) (css.DimenT, error) {
	for _, dir := range []int{Left, Right} {
		if !box.Margins[dir].IsAbsolute() {
			box.Margins[dir] = css.SomeDimen(0)
		}
	}
	width := enclosing - box.Margins[Left].Unwrap() - box.Margins[Right].Unwrap()
	deco := box.InnerDecorationWidth()
	if deco.IsNone() {
		return css.Dimen(), ErrUnderspecified // this cannot happen
	}
	width -= deco.Unwrap()
	r := css.SomeDimen(width)
	tracer().Debugf("calculate width as rest to w = %v", r)
	return r, nil
}

// distributeInlineMarginSpace distributes space into inline-start and
// inline-end margins after the border box extent is fixed. Two auto
// margins center the box; with no auto margin the inline-end margin
// absorbs the remainder.
func distributeInlineMarginSpace(box *Box, enclosing dimen.Dimen) bool {
	if !box.HasFixedBorderBoxWidth(false) {
		return false
	}
	w := box.BorderBoxWidth().Unwrap()
	remaining := enclosing - w
	left, right := box.Margins[Left], box.Margins[Right]
	var l, r dimen.Dimen
	switch {
	case left.IsAuto() && right.IsAuto():
		l = remaining / 2
		r = remaining - l
	case left.IsAuto():
		r = right.Unwrap()
		l = remaining - r
	default:
		// right margin absorbs, also in the over-constrained case
		l = left.Unwrap()
		r = remaining - l
	}
	box.Margins[Left] = css.SomeDimen(l)
	box.Margins[Right] = css.SomeDimen(r)
	return true
}

// checkForUnresolvedDependentDimensions will return an error for box
// dimensions which are dependent on view-size or font-size.
func checkForUnresolvedDependentDimensions(box *Box) error {
	check := func(d css.DimenT) error {
		_, err := d.Match(option.Of{
			option.None:    nil,
			css.FontScaled: option.Fail(ErrUnfixedScaledUnit),
			css.ViewScaled: option.Fail(ErrUnfixedScaledUnit),
			option.Some:    nil,
		})
		return err
	}
	for dir := Top; dir <= Left; dir++ {
		if err := check(box.Padding[dir]); err != nil {
			return err
		}
		if err := check(box.BorderWidth[dir]); err != nil {
			return err
		}
		if err := check(box.Margins[dir]); err != nil {
			return err
		}
	}
	if err := check(box.W); err != nil {
		return err
	}
	return nil
}

// Padding and border width do not allow auto or negative values; illegal
// specifications collapse to 0.
func fixIllegalDimensionSpecifications(box *Box) {
	for dir := Top; dir <= Left; dir++ {
		padd := box.Padding[dir]
		if padd.IsAuto() || padd.IsNone() || (padd.IsAbsolute() && padd.Unwrap() < 0) {
			box.Padding[dir] = css.SomeDimen(0)
		}
		bord := box.BorderWidth[dir]
		if bord.IsAuto() || bord.IsNone() || (bord.IsAbsolute() && bord.Unwrap() < 0) {
			box.BorderWidth[dir] = css.SomeDimen(0)
		}
	}
}

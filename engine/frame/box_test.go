package frame

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"

	"github.com/SimonSapin/victor/core/dimen"
	"github.com/SimonSapin/victor/engine/dom/style"
	"github.com/SimonSapin/victor/engine/dom/style/css"
)

func TestBoxInit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.frame")
	defer teardown()
	//
	box := InitEmptyBox(nil)
	assert.True(t, box.W.IsAuto())
	assert.True(t, box.Margins[Top].IsAbsolute())
	assert.Equal(t, dimen.Zero, box.Margins[Top].Unwrap())
}

func TestBoxBorderBoxWidth(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.frame")
	defer teardown()
	//
	box := InitEmptyBox(nil)
	assert.True(t, box.BorderBoxWidth().IsNone(), "auto width must not fix border box width")
	box.W = css.SomeDimen(100 * dimen.PX)
	box.Padding[Left] = css.SomeDimen(10 * dimen.PX)
	box.BorderWidth[Right] = css.SomeDimen(2 * dimen.PX)
	assert.Equal(t, 112*dimen.PX, box.BorderBoxWidth().Unwrap())
}

func TestBoxFixWidthAsRest(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.frame")
	defer teardown()
	//
	box := InitEmptyBox(nil)
	box.Margins[Left] = css.SomeDimen(10 * dimen.PX)
	box.Margins[Right] = css.AutoDimen()
	ok, err := FixDimensionsFromEnclosingWidth(box, 300*dimen.PX)
	assert.NoError(t, err)
	assert.True(t, ok)
	// auto width eats everything, auto margins become 0
	assert.Equal(t, 290*dimen.PX, box.W.Unwrap())
	assert.Equal(t, dimen.Zero, box.Margins[Right].Unwrap())
}

func TestBoxFixAutoMarginsCentered(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.frame")
	defer teardown()
	//
	box := InitEmptyBox(nil)
	box.W = css.SomeDimen(100 * dimen.PX)
	box.Margins[Left] = css.AutoDimen()
	box.Margins[Right] = css.AutoDimen()
	ok, err := FixDimensionsFromEnclosingWidth(box, 300*dimen.PX)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 100*dimen.PX, box.Margins[Left].Unwrap())
	assert.Equal(t, 100*dimen.PX, box.Margins[Right].Unwrap())
}

func TestBoxFixOverconstrained(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.frame")
	defer teardown()
	//
	box := InitEmptyBox(nil)
	box.W = css.SomeDimen(100 * dimen.PX)
	box.Margins[Left] = css.SomeDimen(50 * dimen.PX)
	box.Margins[Right] = css.SomeDimen(50 * dimen.PX)
	ok, err := FixDimensionsFromEnclosingWidth(box, 300*dimen.PX)
	assert.NoError(t, err)
	assert.True(t, ok)
	// inline-end margin absorbs the surplus
	assert.Equal(t, 50*dimen.PX, box.Margins[Left].Unwrap())
	assert.Equal(t, 150*dimen.PX, box.Margins[Right].Unwrap())
}

func TestBoxFixPercentages(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.frame")
	defer teardown()
	//
	box := InitEmptyBox(nil)
	box.W = css.Percentage(50)
	box.Padding[Left] = css.Percentage(10)
	ok, err := FixDimensionsFromEnclosingWidth(box, 200*dimen.PX)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 100*dimen.PX, box.W.Unwrap())
	assert.Equal(t, 20*dimen.PX, box.Padding[Left].Unwrap())
}

func TestBoxUnresolvedFontScaled(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.frame")
	defer teardown()
	//
	box := InitEmptyBox(nil)
	box.W = css.DimenOption(style.Property("2em"))
	_, err := FixDimensionsFromEnclosingWidth(box, 200*dimen.PX)
	assert.ErrorIs(t, err, ErrUnfixedScaledUnit)
}

func TestCollapseMargins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.frame")
	defer teardown()
	//
	box1, box2 := InitEmptyBox(nil), InitEmptyBox(nil)
	box1.Margins[Bottom] = css.SomeDimen(20 * dimen.PX)
	box2.Margins[Top] = css.SomeDimen(12 * dimen.PX)
	maxm, minm := CollapseMargins(box1, box2)
	assert.Equal(t, 20*dimen.PX, maxm.Unwrap())
	assert.Equal(t, 12*dimen.PX, minm.Unwrap())
	maxm, _ = CollapseMargins(nil, box2)
	assert.Equal(t, 12*dimen.PX, maxm.Unwrap())
}

func borderStylesMap(kv map[string]string) *style.PropertyMap {
	pmap := style.NewPropertyMap()
	for k, v := range kv {
		pmap.Add(k, style.Property(v))
	}
	return pmap
}

func TestBoxFromStyles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.frame")
	defer teardown()
	//
	pmap := borderStylesMap(map[string]string{
		"width":              "100px",
		"height":             "auto",
		"margin-left":        "10px",
		"border-left-width":  "5px",
		"border-left-style":  "none",
		"border-right-width": "5px",
		"border-right-style": "solid",
	})
	box := BoxFromStyles(pmap, Flow{Mode: HorizontalTB, Dir: LTR})
	assert.Equal(t, 100*dimen.PX, box.W.Unwrap())
	assert.True(t, box.H.IsAuto())
	assert.Equal(t, 10*dimen.PX, box.Margins[InlineStart].Unwrap())
	assert.Equal(t, dimen.Zero, box.BorderWidth[InlineStart].Unwrap(), "style none zeroes the border width")
	assert.Equal(t, 5*dimen.PX, box.BorderWidth[InlineEnd].Unwrap())
}

func TestBoxFromStylesVertical(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.frame")
	defer teardown()
	//
	pmap := borderStylesMap(map[string]string{
		"width":         "100px",
		"height":        "50px",
		"margin-top":    "7px",
		"padding-right": "3px",
	})
	box := BoxFromStyles(pmap, Flow{Mode: VerticalRL, Dir: LTR})
	// in vertical-rl the physical height is the inline extent
	assert.Equal(t, 50*dimen.PX, box.W.Unwrap())
	assert.Equal(t, 100*dimen.PX, box.H.Unwrap())
	// physical top is the inline-start edge, physical right the block-start edge
	assert.Equal(t, 7*dimen.PX, box.Margins[InlineStart].Unwrap())
	assert.Equal(t, 3*dimen.PX, box.Padding[BlockStart].Unwrap())
}

func TestStylingFromStyles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.frame")
	defer teardown()
	//
	pmap := borderStylesMap(map[string]string{
		"color":             "red",
		"background-color":  "transparent",
		"font-family":       "fallback",
		"font-style":        "italic",
		"border-top-style":  "dashed",
		"border-top-color":  "currentcolor",
		"border-left-color": "blue",
	})
	styling := StylingFromStyles(pmap, Flow{Mode: HorizontalTB, Dir: LTR})
	assert.Equal(t, uint8(0xff), styling.Colors.Foreground.R)
	assert.Equal(t, uint8(0), styling.Colors.Background.A)
	assert.Equal(t, "italic", styling.Text.FontStyle)
	assert.Equal(t, LSDashed, styling.Borders[BlockStart].LineStyle)
	assert.Equal(t, styling.Colors.Foreground, styling.Borders[BlockStart].LineColor,
		"currentcolor resolves to foreground")
	assert.Equal(t, uint8(0xff), styling.Borders[InlineStart].LineColor.B)
}

package frame

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"

	"github.com/SimonSapin/victor/core/dimen"
	"github.com/SimonSapin/victor/engine/dom/style"
)

func TestFlowMapping(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.frame")
	defer teardown()
	//
	phys := PhysicalSides{Top: 1, Right: 2, Bottom: 3, Left: 4}
	f := Flow{Mode: HorizontalTB, Dir: LTR}
	sides := f.ToFlow(phys)
	assert.Equal(t, dimen.Dimen(1), sides.BlockStart)
	assert.Equal(t, dimen.Dimen(4), sides.InlineStart)
	assert.Equal(t, phys, f.ToPhysical(sides), "round trip must be identity")
	//
	f = Flow{Mode: VerticalRL, Dir: LTR}
	sides = f.ToFlow(phys)
	assert.Equal(t, dimen.Dimen(2), sides.BlockStart, "vertical-rl blocks stack from the right")
	assert.Equal(t, dimen.Dimen(1), sides.InlineStart, "vertical-rl/ltr lines run downwards")
	assert.Equal(t, phys, f.ToPhysical(sides))
}

func TestFlowRectInflate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.frame")
	defer teardown()
	//
	r := FlowRect{
		Origin: FlowVec{Inline: 10, Block: 20},
		Size:   FlowVec{Inline: 100, Block: 50},
	}
	r = r.Inflate(FlowSides{BlockStart: 1, InlineEnd: 2, BlockEnd: 3, InlineStart: 4})
	assert.Equal(t, dimen.Dimen(6), r.Origin.Inline)
	assert.Equal(t, dimen.Dimen(19), r.Origin.Block)
	assert.Equal(t, dimen.Dimen(106), r.Size.Inline)
	assert.Equal(t, dimen.Dimen(54), r.Size.Block)
}

func TestRectToPhysical(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.frame")
	defer teardown()
	//
	container := dimen.Point{X: 200, Y: 300}
	r := FlowRect{
		Origin: FlowVec{Inline: 10, Block: 20},
		Size:   FlowVec{Inline: 100, Block: 50},
	}
	f := Flow{Mode: HorizontalTB, Dir: LTR}
	topLeft, size := f.RectToPhysical(r, container)
	assert.Equal(t, dimen.Point{X: 10, Y: 20}, topLeft)
	assert.Equal(t, dimen.Point{X: 100, Y: 50}, size)
	//
	f = Flow{Mode: HorizontalTB, Dir: RTL}
	topLeft, size = f.RectToPhysical(r, container)
	assert.Equal(t, dimen.Point{X: 90, Y: 20}, topLeft, "rtl measures inline from the right edge")
	assert.Equal(t, dimen.Point{X: 100, Y: 50}, size)
	//
	f = Flow{Mode: VerticalRL, Dir: LTR}
	topLeft, size = f.RectToPhysical(r, container)
	assert.Equal(t, dimen.Point{X: 130, Y: 10}, topLeft, "blocks stack leftwards from the right edge")
	assert.Equal(t, dimen.Point{X: 50, Y: 100}, size, "extents swap in vertical modes")
}

func TestParseFlow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.frame")
	defer teardown()
	//
	pmap := style.NewPropertyMap()
	pmap.Add("writing-mode", "vertical-rl")
	pmap.Add("direction", "rtl")
	f := ParseFlow(pmap)
	assert.Equal(t, VerticalRL, f.Mode)
	assert.Equal(t, RTL, f.Dir)
	assert.True(t, f.IsVertical())
	assert.False(t, ParseFlow(nil).IsVertical(), "default flow is horizontal-tb/ltr")
}

func TestParseDisplay(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.frame")
	defer teardown()
	//
	d := ParseDisplay(style.Property("block"))
	assert.True(t, d.Contains(BlockMode))
	assert.True(t, d.Contains(FlowMode))
	d = ParseDisplay(style.Property("inline-block"))
	assert.True(t, d.Contains(InlineMode))
	assert.True(t, d.Contains(FlowRoot))
	d = ParseDisplay(style.Property("none"))
	assert.True(t, d.Contains(DisplayNone))
}

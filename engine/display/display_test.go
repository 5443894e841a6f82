package display_test

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SimonSapin/victor/core/dimen"
	"github.com/SimonSapin/victor/engine/display"
	"github.com/SimonSapin/victor/engine/dom"
	"github.com/SimonSapin/victor/engine/frame/boxtree"
	"github.com/SimonSapin/victor/engine/frame/layout"
	"github.com/SimonSapin/victor/engine/glyphing/squares"
)

func buildDisplayList(t *testing.T, htm string, viewport dimen.Point) *display.Document {
	doc, err := dom.ParseString(htm)
	require.NoError(t, err)
	require.NoError(t, doc.Style())
	root, err := boxtree.BuildBoxTree(doc.Root())
	require.NoError(t, err)
	ctx := layout.NewContext(viewport)
	ctx.Shaper = squares.Shaper(10 * dimen.PX)
	frag, err := layout.Layout(root, ctx)
	require.NoError(t, err)
	return display.Build(frag, viewport)
}

func TestDisplayListBackground(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.display")
	defer teardown()
	//
	viewport := dimen.Point{X: 400 * dimen.PX, Y: 600 * dimen.PX}
	doc := buildDisplayList(t, `<html><body style="margin: 0">`+
		`<div style="width: 100px; height: 50px; background-color: red"></div>`+
		`</body></html>`, viewport)
	//
	require.Len(t, doc.Pages, 1)
	page := doc.Pages[0]
	require.Len(t, page.Items, 1, "one background rectangle, nothing else paints")
	rect, ok := page.Items[0].(display.SolidRectangle)
	require.True(t, ok)
	assert.Equal(t, uint8(0xff), rect.Color.R)
	assert.Equal(t, dimen.Zero, rect.Rect.TopL.X)
	assert.Equal(t, 100*dimen.PX, rect.Rect.Width())
	assert.Equal(t, 50*dimen.PX, rect.Rect.Height())
}

func TestDisplayListBorders(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.display")
	defer teardown()
	//
	viewport := dimen.Point{X: 400 * dimen.PX, Y: 600 * dimen.PX}
	doc := buildDisplayList(t, `<html><body style="margin: 0">`+
		`<div style="width: 100px; height: 50px;`+
		` border-top-width: 5px; border-top-style: solid; border-top-color: blue"></div>`+
		`</body></html>`, viewport)
	//
	page := doc.Pages[0]
	require.Len(t, page.Items, 1, "only the top border paints")
	border := page.Items[0].(display.SolidRectangle)
	assert.Equal(t, uint8(0xff), border.Color.B)
	assert.Equal(t, 5*dimen.PX, border.Rect.Height())
	assert.Equal(t, dimen.Zero, border.Rect.TopL.Y)
}

func TestDisplayListText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.display")
	defer teardown()
	//
	viewport := dimen.Point{X: 400 * dimen.PX, Y: 600 * dimen.PX}
	doc := buildDisplayList(t, `<html><body style="margin: 0">`+
		`<p style="margin: 0">XX</p>`+
		`</body></html>`, viewport)
	//
	page := doc.Pages[0]
	require.Len(t, page.Items, 1)
	text, ok := page.Items[0].(display.Text)
	require.True(t, ok)
	assert.Len(t, text.Glyphs, 2)
	assert.Equal(t, dimen.Zero, text.Start.X)
	assert.Greater(t, int(text.Start.Y), 0, "baseline sits below the line top")
	//
	dump := doc.DebugString()
	assert.True(t, strings.Contains(dump, "text 2 glyphs"), dump)
}

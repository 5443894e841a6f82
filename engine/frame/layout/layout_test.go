package layout

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SimonSapin/victor/core/dimen"
	"github.com/SimonSapin/victor/engine/dom"
	"github.com/SimonSapin/victor/engine/frame/boxtree"
	"github.com/SimonSapin/victor/engine/glyphing/squares"
)

func layoutHTML(t *testing.T, htm string, viewport dimen.Point) *BoxFragment {
	doc, err := dom.ParseString(htm)
	require.NoError(t, err)
	require.NoError(t, doc.Style())
	root, err := boxtree.BuildBoxTree(doc.Root())
	require.NoError(t, err)
	ctx := NewContext(viewport)
	ctx.Shaper = squares.Shaper(10 * dimen.PX)
	frag, err := Layout(root, ctx)
	require.NoError(t, err)
	return frag
}

func fragByTag(f *BoxFragment, tag string) *BoxFragment {
	if f.DOMNode() != nil && f.DOMNode().TagName() == tag {
		return f
	}
	for _, ch := range f.Children {
		if b, ok := ch.(*BoxFragment); ok {
			if hit := fragByTag(b, tag); hit != nil {
				return hit
			}
		}
	}
	return nil
}

func TestLayoutBlockStacking(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.frame")
	defer teardown()
	//
	viewport := dimen.Point{X: 400 * dimen.PX, Y: 600 * dimen.PX}
	frag := layoutHTML(t, `<html><body style="margin: 0">`+
		`<div style="width: 100px; height: 40px; margin-top: 10px; margin-bottom: 30px"></div>`+
		`<div style="height: 20px; margin-top: 20px"></div>`+
		`</body></html>`, viewport)
	//
	body := fragByTag(frag, "body")
	require.NotNil(t, body)
	assert.Equal(t, 400*dimen.PX, body.ContentRect.Size.Inline)
	assert.Equal(t, 100*dimen.PX, body.ContentRect.Size.Block,
		"10 + 40 + max(30, 20) + 20")
	require.Len(t, body.Children, 2)
	first := body.Children[0].(*BoxFragment)
	second := body.Children[1].(*BoxFragment)
	assert.Equal(t, 10*dimen.PX, first.ContentRect.Origin.Block)
	assert.Equal(t, 100*dimen.PX, first.ContentRect.Size.Inline)
	assert.Equal(t, 40*dimen.PX, first.ContentRect.Size.Block)
	assert.Equal(t, 80*dimen.PX, second.ContentRect.Origin.Block,
		"adjoining margins collapse to the greater one")
	assert.Equal(t, 400*dimen.PX, second.ContentRect.Size.Inline,
		"auto width fills the containing block")
}

func TestLayoutLineBreaking(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.frame")
	defer teardown()
	//
	viewport := dimen.Point{X: 400 * dimen.PX, Y: 600 * dimen.PX}
	frag := layoutHTML(t, `<html><body style="margin: 0">`+
		`<p style="margin: 0; width: 35px">XX XX XX</p>`+
		`</body></html>`, viewport)
	//
	p := fragByTag(frag, "p")
	require.NotNil(t, p)
	require.Len(t, p.Children, 3, "three lines at 35px with 10px glyph squares")
	lineH := 16 * dimen.PX * 6 / 5
	for i, ch := range p.Children {
		run, ok := ch.(*TextFragment)
		require.True(t, ok)
		assert.Equal(t, dimen.Zero, run.Rect.Origin.Inline)
		assert.Equal(t, dimen.Dimen(i)*lineH, run.Rect.Origin.Block)
		assert.Equal(t, lineH, run.Rect.Size.Block)
	}
	assert.Equal(t, 3*lineH, p.ContentRect.Size.Block, "auto height wraps the lines")
}

func TestLayoutCentersAutoMargins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.frame")
	defer teardown()
	//
	viewport := dimen.Point{X: 400 * dimen.PX, Y: 600 * dimen.PX}
	frag := layoutHTML(t, `<html><body style="margin: 0">`+
		`<div style="width: 100px; height: 10px; margin-left: auto; margin-right: auto"></div>`+
		`</body></html>`, viewport)
	//
	div := fragByTag(frag, "div")
	require.NotNil(t, div)
	assert.Equal(t, 150*dimen.PX, div.ContentRect.Origin.Inline)
	assert.Equal(t, 100*dimen.PX, div.ContentRect.Size.Inline)
}

func TestLayoutAbsolutePosition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.frame")
	defer teardown()
	//
	viewport := dimen.Point{X: 400 * dimen.PX, Y: 600 * dimen.PX}
	frag := layoutHTML(t, `<html><body style="margin: 0">`+
		`<div style="height: 50px"></div>`+
		`<div style="position: absolute; top: 10px; left: 20px; width: 30px; height: 40px"></div>`+
		`</body></html>`, viewport)
	//
	body := fragByTag(frag, "body")
	require.NotNil(t, body)
	assert.Equal(t, 50*dimen.PX, body.ContentRect.Size.Block,
		"out-of-flow boxes do not grow the content")
	require.Len(t, body.Children, 2)
	abs := body.Children[1].(*BoxFragment)
	assert.Equal(t, 20*dimen.PX, abs.ContentRect.Origin.Inline)
	assert.Equal(t, 10*dimen.PX, abs.ContentRect.Origin.Block)
	assert.Equal(t, 30*dimen.PX, abs.ContentRect.Size.Inline)
	assert.Equal(t, 40*dimen.PX, abs.ContentRect.Size.Block)
}

func TestLayoutFontScaledMargins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.frame")
	defer teardown()
	//
	viewport := dimen.Point{X: 400 * dimen.PX, Y: 600 * dimen.PX}
	frag := layoutHTML(t, `<html><body style="margin: 0">`+
		`<div style="font-size: 20px; margin-top: 2em; height: 10px"></div>`+
		`</body></html>`, viewport)
	//
	div := fragByTag(frag, "div")
	require.NotNil(t, div)
	assert.Equal(t, 40*dimen.PX, div.ContentRect.Origin.Block, "2em at 20px font size")
}

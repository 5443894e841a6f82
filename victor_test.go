package victor_test

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/SimonSapin/victor"
	"github.com/SimonSapin/victor/core/dimen"
	"github.com/SimonSapin/victor/core/font"
	"github.com/SimonSapin/victor/core/license"
	"github.com/SimonSapin/victor/engine/display"
	"github.com/SimonSapin/victor/engine/glyphing/squares"
)

func TestLoadAndLayout(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.core")
	defer teardown()
	//
	doc, err := victor.LoadString(
		`<html><body style="margin: 0"><p style="margin: 0; background-color: red">XX</p></body></html>`)
	require.NoError(t, err)
	doc.SetShaper(squares.Shaper(10 * dimen.PX))
	rendered, err := doc.Layout(dimen.Point{X: 400 * dimen.PX, Y: 600 * dimen.PX})
	require.NoError(t, err)
	require.Len(t, rendered.Pages, 1)
	page := rendered.Pages[0]
	assert.Equal(t, dimen.Dimen(400*dimen.PX), page.Size.X)
	var rects, texts int
	for _, item := range page.Items {
		switch item.(type) {
		case display.SolidRectangle:
			rects++
		case display.Text:
			texts++
		}
	}
	assert.Equal(t, 1, rects, "expected the paragraph's background")
	assert.Equal(t, 1, texts, "expected one glyph run")
}

func TestLayoutAuthorStylesheet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.core")
	defer teardown()
	//
	doc, err := victor.LoadString(`<body><p>XX</p></body>`,
		`body { margin: 0 } p { margin: 0; width: 50px }`)
	require.NoError(t, err)
	doc.SetShaper(squares.Shaper(10 * dimen.PX))
	rendered, err := doc.LayoutA4()
	require.NoError(t, err)
	require.Len(t, rendered.Pages, 1)
	assert.Equal(t, dimen.DINA4, rendered.Pages[0].Size)
}

func TestAddFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.core")
	defer teardown()
	//
	doc, err := victor.LoadString(`<p>hello</p>`)
	require.NoError(t, err)
	err = doc.AddFont("Test Mono", gomono.TTF, "BSD-3-Clause")
	require.NoError(t, err)
	tc, err := font.GlobalRegistry().TypeCase("Test Mono", 12.0)
	require.NoError(t, err)
	assert.Equal(t, "Test Mono", tc.ScalableFontParent().Fontname)
	asset, ok := license.GlobalRegistry().Asset("Test Mono")
	require.True(t, ok)
	assert.Equal(t, "BSD-3-Clause", asset.SPDX)
	assert.True(t, strings.Contains(license.GlobalRegistry().Expression(), "BSD-3-Clause"))
}

func TestAddFontRejectsGarbage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.core")
	defer teardown()
	//
	doc, err := victor.LoadString(`<p>hello</p>`)
	require.NoError(t, err)
	err = doc.AddFont("Broken", []byte{0xde, 0xad, 0xbe, 0xef}, "")
	assert.Error(t, err)
}

package css

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"

	"github.com/SimonSapin/victor/core/dimen"
	"github.com/SimonSapin/victor/core/option"
	"github.com/SimonSapin/victor/engine/dom/style"
)

func TestDimenOption(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.style")
	defer teardown()
	//
	d := DimenOption(style.Property("15px"))
	assert.True(t, d.IsAbsolute())
	assert.Equal(t, dimen.FromPx(15), d.Unwrap())
	//
	a := DimenOption(style.Property("auto"))
	assert.True(t, a.IsAuto())
	//
	p := DimenOption(style.Property("80%"))
	assert.True(t, p.IsPercent())
	//
	n := DimenOption(style.Property("12banana"))
	assert.True(t, n.IsNone())
}

func TestDimenOptionBorderKeywords(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.style")
	defer teardown()
	//
	assert.Equal(t, dimen.FromPx(3), DimenOption("medium").Unwrap())
	assert.Equal(t, dimen.FromPx(1), DimenOption("thin").Unwrap())
}

func TestDimenMatching(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.style")
	defer teardown()
	//
	width := DimenOption("auto")
	v, err := width.Match(option.Of{
		Auto:        "is-auto",
		option.Some: "fixed",
	})
	assert.NoError(t, err)
	assert.Equal(t, "is-auto", v)
}

func TestScaleFromFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.style")
	defer teardown()
	//
	em := DimenOption("2em")
	fixed := em.ScaleFromFont(dimen.FromPx(16))
	assert.True(t, fixed.IsAbsolute())
	assert.Equal(t, dimen.FromPx(32), fixed.Unwrap())
}

func TestScaleFromViewport(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.style")
	defer teardown()
	//
	vw := DimenOption("50vw")
	fixed := vw.ScaleFromViewport(dimen.FromPx(800), dimen.FromPx(600))
	assert.True(t, fixed.IsAbsolute())
	assert.Equal(t, dimen.FromPx(400), fixed.Unwrap())
}

func TestScaleFromPercentBase(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.style")
	defer teardown()
	//
	p := DimenOption("150%")
	fixed := p.ScaleFromPercentBase(dimen.FromPx(100))
	assert.True(t, fixed.IsAbsolute())
	assert.Equal(t, dimen.FromPx(150), fixed.Unwrap())
}

func TestFixedValue(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.style")
	defer teardown()
	//
	_, err := DimenOption("1em").FixedValue()
	assert.ErrorIs(t, err, ErrUnfixedRelativeDimen)
	d, err := DimenOption("auto").FixedValue()
	assert.NoError(t, err)
	assert.Equal(t, dimen.Dimen(0), d)
}

func TestPositionOption(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.style")
	defer teardown()
	//
	pmap := style.NewPropertyMap()
	pmap.Add("position", "absolute")
	pmap.Add("top", "10px")
	pmap.Add("left", "auto")
	pos := PositionOption(styler{pmap})
	assert.Equal(t, PositionAbsolute, pos.Unwrap())
	assert.True(t, pos.IsOutOfFlow())
	assert.Equal(t, dimen.FromPx(10), pos.Offsets[0].Unwrap())
	assert.True(t, pos.Offsets[3].IsAuto())
}

type styler struct {
	pmap *style.PropertyMap
}

func (s styler) Styles() *style.PropertyMap {
	return s.pmap
}

package harfbuzz_test

import (
	"fmt"
	"strings"
	"testing"

	hb "github.com/benoitkugler/textlayout/harfbuzz"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/SimonSapin/victor/core/font"
	"github.com/SimonSapin/victor/engine/glyphing"
	"github.com/SimonSapin/victor/engine/glyphing/harfbuzz"
)

func TestHBScript(t *testing.T) {
	id := "Plrd"
	script := language.MustParseScript(id)
	hbScript := harfbuzz.Script4HB(script)
	hstr := fmt.Sprintf("%x", uint32(hbScript))
	if hstr != "706c7264" {
		t.Logf("script %q: %x => %x", id, script, uint32(hbScript))
		t.Errorf("expected HB script of 706c7264, is %s", hstr)
	}
}

func TestHBLang(t *testing.T) {
	langT, err := language.Parse("de_DE")
	require.NoError(t, err)
	h := harfbuzz.Lang4HB(langT)
	assert.Equal(t, "de-de", string(h))
}

func TestHBDir(t *testing.T) {
	dir := harfbuzz.Direction4HB(glyphing.TopToBottom)
	assert.Equal(t, hb.TopToBottom, dir)
}

func TestHBShape(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.glyphs")
	defer teardown()
	//
	input := "Hello"
	typecase, err := font.FallbackFont().PrepareCase(12.0)
	require.NoError(t, err)
	params := glyphing.Params{Font: typecase}
	seq, err := harfbuzz.Shaper().Shape(strings.NewReader(input), nil, nil, params)
	require.NoError(t, err)
	require.NotNil(t, seq.Glyphs)
	assert.Len(t, seq.Glyphs, len(input))
	assert.Greater(t, int(seq.W), 0)
}

package license

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestExpression(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.core")
	defer teardown()
	//
	r := NewRegistry()
	r.Register(Asset{Name: "Vera", Kind: "font", SPDX: SPDXBitstreamVera})
	r.Register(Asset{Name: "Noto Sans Linear B", Kind: "font", SPDX: SPDXOFL})
	r.Register(Asset{Name: "Go Regular", Kind: "font", SPDX: "BSD-3-Clause"})
	expr := r.Expression()
	assert.Equal(t, "(MIT OR Apache-2.0) AND BSD-3-Clause AND Bitstream-Vera AND OFL-1.1", expr)
}

func TestExpressionDeduplicates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.core")
	defer teardown()
	//
	r := NewRegistry()
	r.Register(Asset{Name: "Go Regular", Kind: "font", SPDX: "BSD-3-Clause"})
	r.Register(Asset{Name: "Go Bold", Kind: "font", SPDX: "BSD-3-Clause"})
	assert.Equal(t, "(MIT OR Apache-2.0) AND BSD-3-Clause", r.Expression())
}

func TestNotice(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.core")
	defer teardown()
	//
	r := NewRegistry()
	r.Register(Asset{
		Name:   "Vera",
		Kind:   "font",
		SPDX:   SPDXBitstreamVera,
		Notice: "Copyright 2003 Bitstream, Inc.",
	})
	notice := r.Notice()
	assert.True(t, strings.Contains(notice, "Vera (font), licensed Bitstream-Vera"))
	assert.True(t, strings.Contains(notice, "Copyright 2003 Bitstream, Inc."))
}

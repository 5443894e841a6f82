package xpathadapter

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"golang.org/x/net/html"
)

func parse(t *testing.T, input string) *html.Node {
	doc, err := html.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("cannot parse test HTML: %v", err)
	}
	return doc
}

func TestQueryElements(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.dom")
	defer teardown()
	//
	doc := parse(t, `<html><body><p>one</p><p>two</p></body></html>`)
	nodes, err := Query(doc, "//p")
	assert.NoError(t, err)
	assert.Equal(t, 2, len(nodes))
}

func TestQueryAttribute(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.dom")
	defer teardown()
	//
	doc := parse(t, `<html><body><p id="x">one</p><p>two</p></body></html>`)
	nodes, err := Query(doc, `//p[@id="x"]`)
	assert.NoError(t, err)
	if assert.Equal(t, 1, len(nodes)) {
		assert.Equal(t, "p", nodes[0].Data)
	}
}

func TestQueryText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.dom")
	defer teardown()
	//
	doc := parse(t, `<html><body><p>one</p></body></html>`)
	nodes, err := Query(doc, `//p[text()="one"]`)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(nodes))
}

func TestBadExpression(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.dom")
	defer teardown()
	//
	_, err := Query(parse(t, `<html></html>`), `///`)
	assert.Error(t, err)
}

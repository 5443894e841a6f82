package dom

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"

	"github.com/SimonSapin/victor/engine/dom/style"
)

const testDoc = `<html>
  <head>
    <style>p { color: red; margin: 4px }</style>
  </head>
  <body>
    <p class="intro">Hello <b>World</b>!</p>
  </body>
</html>`

func TestParseAndStyle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.dom")
	defer teardown()
	//
	doc, err := ParseString(testDoc)
	assert.NoError(t, err)
	assert.NoError(t, doc.Style())
	root := doc.Root()
	if root == nil {
		t.Fatal("no styled root")
	}
	assert.Equal(t, "html", root.TagName())
	assert.Equal(t, style.Property("block"), root.Styles().Property("display"))
}

func TestStyleElementApplies(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.dom")
	defer teardown()
	//
	doc, err := ParseString(testDoc)
	assert.NoError(t, err)
	assert.NoError(t, doc.Style())
	p := findStyled(doc.Root(), "p")
	if p == nil {
		t.Fatal("no styled <p>")
	}
	assert.Equal(t, style.Property("red"), p.Styles().Property("color"))
	assert.Equal(t, style.Property("4px"), p.Styles().Property("margin-top"))
}

func TestTextNodesInheritStyles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.dom")
	defer teardown()
	//
	doc, err := ParseString(testDoc)
	assert.NoError(t, err)
	assert.NoError(t, doc.Style())
	p := findStyled(doc.Root(), "p")
	var text *StyNode
	for _, c := range p.Children() {
		if c.IsText() {
			text = c
			break
		}
	}
	if text == nil {
		t.Fatal("no text child under <p>")
	}
	assert.Equal(t, style.Property("red"), text.Styles().Property("color"))
}

func TestAuthorStylesheetArgument(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.dom")
	defer teardown()
	//
	doc, err := ParseString(`<html><body><p>x</p></body></html>`)
	assert.NoError(t, err)
	assert.NoError(t, doc.Style(`p { color: green }`))
	p := findStyled(doc.Root(), "p")
	assert.Equal(t, style.Property("green"), p.Styles().Property("color"))
}

func TestDisplayNoneOnHead(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.dom")
	defer teardown()
	//
	doc, err := ParseString(testDoc)
	assert.NoError(t, err)
	assert.NoError(t, doc.Style())
	head := findStyled(doc.Root(), "head")
	assert.Equal(t, style.Property("none"), head.Styles().Property("display"))
}

func TestNodeLanguage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.dom")
	defer teardown()
	//
	doc, err := ParseString(`<html lang="de"><body><p>x</p><p lang="fr-CA">y</p></body></html>`)
	assert.NoError(t, err)
	assert.NoError(t, doc.Style())
	ps := findAllStyled(doc.Root(), "p")
	assert.Len(t, ps, 2)
	assert.Equal(t, "de", ps[0].Language().String())
	assert.Equal(t, "fr-CA", ps[1].Language().String())
}

func findAllStyled(root *StyNode, tag string) []*StyNode {
	var found []*StyNode
	root.Walk(func(sn *StyNode) bool {
		if sn.TagName() == tag {
			found = append(found, sn)
		}
		return true
	})
	return found
}

func findStyled(root *StyNode, tag string) *StyNode {
	var found *StyNode
	root.Walk(func(sn *StyNode) bool {
		if sn.TagName() == tag {
			found = sn
			return false
		}
		return true
	})
	return found
}

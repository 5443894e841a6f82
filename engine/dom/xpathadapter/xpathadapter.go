// Package xpathadapter makes HTML parse trees navigable by XPath
// expressions. It implements the NodeNavigator interface of
// github.com/antchfx/xpath on top of golang.org/x/net/html nodes.
//
// XPath queries are a debugging and testing aid: they let tests address
// specific elements of a document without walking the tree by hand.
package xpathadapter

import (
	"strings"

	"github.com/antchfx/xpath"
	"golang.org/x/net/html"

	"github.com/SimonSapin/victor/core"
)

// Query runs an XPath expression over an HTML tree and returns the
// matching element nodes.
func Query(root *html.Node, expr string) ([]*html.Node, error) {
	xp, err := xpath.Compile(expr)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot compile XPath expression '%s'", expr)
	}
	var nodes []*html.Node
	iter := xp.Select(NewNavigator(root))
	for iter.MoveNext() {
		if nav, ok := iter.Current().(*Navigator); ok {
			nodes = append(nodes, nav.current)
		}
	}
	return nodes, nil
}

// Navigator walks an HTML tree for the XPath engine.
type Navigator struct {
	root    *html.Node
	current *html.Node
	attrPos int // 0 = positioned on the node itself, n>0 = on attribute n-1
}

var _ xpath.NodeNavigator = &Navigator{}

// NewNavigator creates a navigator positioned on the given root node.
func NewNavigator(root *html.Node) *Navigator {
	return &Navigator{root: root, current: root}
}

// Current returns the HTML node the navigator is positioned on.
func (nav *Navigator) Current() *html.Node {
	return nav.current
}

func (nav *Navigator) NodeType() xpath.NodeType {
	if nav.attrPos > 0 {
		return xpath.AttributeNode
	}
	switch nav.current.Type {
	case html.DocumentNode:
		return xpath.RootNode
	case html.ElementNode:
		return xpath.ElementNode
	case html.TextNode:
		return xpath.TextNode
	case html.CommentNode:
		return xpath.CommentNode
	}
	return xpath.TextNode
}

func (nav *Navigator) LocalName() string {
	if nav.attrPos > 0 {
		return nav.current.Attr[nav.attrPos-1].Key
	}
	if nav.current.Type == html.ElementNode {
		return nav.current.Data
	}
	return ""
}

func (nav *Navigator) Prefix() string {
	return ""
}

func (nav *Navigator) Value() string {
	if nav.attrPos > 0 {
		return nav.current.Attr[nav.attrPos-1].Val
	}
	switch nav.current.Type {
	case html.TextNode, html.CommentNode:
		return nav.current.Data
	case html.ElementNode, html.DocumentNode:
		var text strings.Builder
		collectText(nav.current, &text)
		return text.String()
	}
	return ""
}

func collectText(n *html.Node, text *strings.Builder) {
	if n.Type == html.TextNode {
		text.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, text)
	}
}

func (nav *Navigator) Copy() xpath.NodeNavigator {
	cp := *nav
	return &cp
}

func (nav *Navigator) MoveToRoot() {
	nav.current = nav.root
	nav.attrPos = 0
}

func (nav *Navigator) MoveToParent() bool {
	if nav.attrPos > 0 {
		nav.attrPos = 0
		return true
	}
	if nav.current.Parent == nil {
		return false
	}
	nav.current = nav.current.Parent
	return true
}

func (nav *Navigator) MoveToNextAttribute() bool {
	if nav.attrPos >= len(nav.current.Attr) {
		return false
	}
	nav.attrPos++
	return true
}

func (nav *Navigator) MoveToChild() bool {
	if nav.attrPos > 0 || nav.current.FirstChild == nil {
		return false
	}
	nav.current = nav.current.FirstChild
	return true
}

func (nav *Navigator) MoveToFirst() bool {
	if nav.attrPos > 0 || nav.current.Parent == nil {
		return false
	}
	nav.current = nav.current.Parent.FirstChild
	return true
}

func (nav *Navigator) MoveToNext() bool {
	if nav.attrPos > 0 || nav.current.NextSibling == nil {
		return false
	}
	nav.current = nav.current.NextSibling
	return true
}

func (nav *Navigator) MoveToPrevious() bool {
	if nav.attrPos > 0 || nav.current.PrevSibling == nil {
		return false
	}
	nav.current = nav.current.PrevSibling
	return true
}

func (nav *Navigator) MoveTo(other xpath.NodeNavigator) bool {
	o, ok := other.(*Navigator)
	if !ok || o.root != nav.root {
		return false
	}
	nav.current = o.current
	nav.attrPos = o.attrPos
	return true
}

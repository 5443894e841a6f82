/*
Package dom builds a styled document object model from HTML input.

The DOM is a thin layer on top of the node type of golang.org/x/net/html:
every styled node wraps an HTML node and carries the computed styles for
it. Styling walks the HTML tree top-down, matching the document's
stylesheets (user-agent stylesheet, style elements, style attributes)
against each element.
*/
package dom

import (
	"io"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
	"golang.org/x/text/language"

	"github.com/SimonSapin/victor/core"
	"github.com/SimonSapin/victor/core/font/fontface"
	"github.com/SimonSapin/victor/engine/dom/style"
)

// tracer traces to tracing key 'victor.dom'.
func tracer() tracing.Trace {
	return tracing.Select("victor.dom")
}

// StyNode is a styled node, the building block of the styled tree.
type StyNode struct {
	htmlNode       *html.Node
	parent         *StyNode
	children       []*StyNode
	computedStyles *style.PropertyMap
}

var _ style.Styler = &StyNode{}

// HTMLNode gets the HTML DOM node corresponding to this styled node.
func (sn *StyNode) HTMLNode() *html.Node {
	return sn.htmlNode
}

// Parent returns the parent styled node, nil for the root.
func (sn *StyNode) Parent() *StyNode {
	return sn.parent
}

// Children returns the styled element and text children of this node.
func (sn *StyNode) Children() []*StyNode {
	return sn.children
}

// Styles is part of interface style.Styler.
func (sn *StyNode) Styles() *style.PropertyMap {
	return sn.computedStyles
}

// SetStyles sets the styling properties of a styled node.
func (sn *StyNode) SetStyles(styles *style.PropertyMap) {
	sn.computedStyles = styles
}

// IsText is true for text nodes.
func (sn *StyNode) IsText() bool {
	return sn.htmlNode.Type == html.TextNode
}

// Text returns the text content of a text node.
func (sn *StyNode) Text() string {
	if sn.IsText() {
		return sn.htmlNode.Data
	}
	return ""
}

// TagName returns the element name of an element node, "" otherwise.
func (sn *StyNode) TagName() string {
	if sn.htmlNode.Type == html.ElementNode {
		return sn.htmlNode.Data
	}
	return ""
}

// Language returns the content language of a node, taken from the nearest
// ancestor-or-self carrying a lang attribute. Nodes without one report the
// undetermined language.
func (sn *StyNode) Language() language.Tag {
	for n := sn; n != nil; n = n.parent {
		for _, attr := range n.htmlNode.Attr {
			if attr.Key != "lang" {
				continue
			}
			tag, err := language.Parse(attr.Val)
			if err != nil {
				tracer().Infof("unintelligible lang attribute %q: %v", attr.Val, err)
				break
			}
			return tag
		}
	}
	return language.Und
}

// --- Document --------------------------------------------------------------

// Document is a parsed and styled HTML document.
type Document struct {
	htmlRoot *html.Node
	root     *StyNode // styled <html> element
	cssom    *style.CSSOM
}

// Parse reads and parses HTML input. The document is not styled yet;
// call Style with any author stylesheets.
func Parse(r io.Reader) (*Document, error) {
	htmlRoot, err := html.Parse(r)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse HTML input")
	}
	return &Document{htmlRoot: htmlRoot}, nil
}

// ParseString parses HTML from a string.
func ParseString(input string) (*Document, error) {
	return Parse(strings.NewReader(input))
}

// HTMLRoot returns the root node of the underlying HTML parse tree.
func (doc *Document) HTMLRoot() *html.Node {
	return doc.htmlRoot
}

// Root returns the styled root element. It is nil before Style has run.
func (doc *Document) Root() *StyNode {
	return doc.root
}

// FontFaces returns the @font-face declarations found during styling.
func (doc *Document) FontFaces() []*fontface.Declaration {
	if doc.cssom == nil {
		return nil
	}
	return doc.cssom.FontFaces()
}

// StyleElements collects the text of all <style> elements of the document,
// in document order.
func (doc *Document) StyleElements() []string {
	var sheets []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "style" {
			var text strings.Builder
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					text.WriteString(c.Data)
				}
			}
			sheets = append(sheets, text.String())
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc.htmlRoot)
	return sheets
}

// Style computes styles for the whole document. Stylesheets apply in this
// order: the user-agent stylesheet, <style> elements in document order,
// then any additional author stylesheets given here.
func (doc *Document) Style(authorStylesheets ...string) error {
	cssom := style.NewCSSOM()
	if err := cssom.AddStylesheet(style.UAStylesheet, style.UserAgent); err != nil {
		return err
	}
	for _, sheet := range doc.StyleElements() {
		if err := cssom.AddStylesheet(sheet, style.Author); err != nil {
			tracer().Errorf("skipping style element: %v", err)
		}
	}
	for _, sheet := range authorStylesheets {
		if err := cssom.AddStylesheet(sheet, style.Author); err != nil {
			return err
		}
	}
	doc.cssom = cssom
	htmlElem := findElement(doc.htmlRoot, "html")
	if htmlElem == nil {
		return core.Error(core.EINVALID, "document has no root element")
	}
	doc.root = styleSubtree(cssom, htmlElem, nil)
	return nil
}

// styleSubtree styles an element and its descendants, top-down.
func styleSubtree(cssom *style.CSSOM, n *html.Node, parent *StyNode) *StyNode {
	sn := &StyNode{htmlNode: n, parent: parent}
	var parentStyles *style.PropertyMap
	if parent != nil {
		parentStyles = parent.Styles()
	}
	if n.Type == html.ElementNode {
		sn.computedStyles = style.ComputeStyles(cssom, n, parentStyles)
		style.FixDisplay(sn.computedStyles, parent == nil)
	} else {
		// text nodes carry their parent's inheritable styles
		sn.computedStyles = parentStyles
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			sn.children = append(sn.children, styleSubtree(cssom, c, sn))
		case html.TextNode:
			if strings.TrimSpace(c.Data) == "" && !preservesWhitespace(n) {
				continue
			}
			sn.children = append(sn.children, &StyNode{
				htmlNode:       c,
				parent:         sn,
				computedStyles: sn.computedStyles,
			})
		}
	}
	return sn
}

func preservesWhitespace(n *html.Node) bool {
	return n.Type == html.ElementNode && n.Data == "pre"
}

func findElement(n *html.Node, name string) *html.Node {
	if n.Type == html.ElementNode && n.Data == name {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if e := findElement(c, name); e != nil {
			return e
		}
	}
	return nil
}

// Walk calls visit for every styled node of the subtree rooted at sn, in
// depth-first pre-order. Walking stops early if visit returns false.
func (sn *StyNode) Walk(visit func(*StyNode) bool) {
	if !visit(sn) {
		return
	}
	for _, c := range sn.children {
		c.Walk(visit)
	}
}

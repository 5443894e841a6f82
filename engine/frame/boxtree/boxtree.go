package boxtree

import (
	"strings"

	"github.com/SimonSapin/victor/engine/dom"
	"github.com/SimonSapin/victor/engine/dom/style/css"
	"github.com/SimonSapin/victor/engine/frame"
)

// BlockBox is a block-level box in the render tree, generated by a
// block-level element or created as an anonymous wrapper.
//
// A block box holds either block-level children or inline content, never
// both. The box-tree builder guarantees this by wrapping stray inline
// content into anonymous block boxes. One exception: a box whose only
// block-level children are out-of-flow may carry inline content next to
// them, since out-of-flow boxes do not participate in normal flow.
type BlockBox struct {
	domNode  *dom.StyNode // nil for anonymous boxes
	Display  frame.DisplayMode
	Flow     frame.Flow
	CSSBox   *frame.Box
	Styling  *frame.Styling
	Position css.PositionT
	Float    FloatKind
	Children []*BlockBox    // block-level children; nil if Inline is set
	Inline   *InlineContent // inline formatting context; nil if Children is set
	// ContainsFloats is set on a box whose child list holds at least one
	// floated box.
	ContainsFloats bool
}

// DOMNode returns the styled DOM node this box was generated for, or nil
// for anonymous boxes.
func (b *BlockBox) DOMNode() *dom.StyNode {
	return b.domNode
}

// IsAnonymous is true for boxes without a generating DOM element.
func (b *BlockBox) IsAnonymous() bool {
	return b.domNode == nil
}

// IsOutOfFlow is true for absolutely positioned and floated boxes.
func (b *BlockBox) IsOutOfFlow() bool {
	return b.Position.IsOutOfFlow() || b.Float != FloatNone
}

// TagName returns the generating element's tag, or "(anonymous)".
func (b *BlockBox) TagName() string {
	if b.domNode == nil {
		return "(anonymous)"
	}
	return b.domNode.TagName()
}

// FloatKind is the parsed value of the CSS float property.
type FloatKind uint8

const (
	FloatNone FloatKind = iota
	FloatLeft
	FloatRight
)

func parseFloat(s string) FloatKind {
	switch strings.TrimSpace(s) {
	case "left":
		return FloatLeft
	case "right":
		return FloatRight
	}
	return FloatNone
}

// --- Inline content --------------------------------------------------------

// InlineContent is the inline formatting context of a block container.
type InlineContent struct {
	Nodes []InlineNode
}

// InlineNode is an element of an inline formatting context: either a
// TextRun or a nested InlineBox.
type InlineNode interface {
	inlineNode()
}

// TextRun is a contiguous run of text with uniform styles.
type TextRun struct {
	domNode *dom.StyNode
	Text    string
	Styling *frame.Styling
	// WSCollapse signals that consecutive whitespace in Text may be
	// collapsed to a single space during layout.
	WSCollapse bool
}

func (t *TextRun) inlineNode() {}

// DOMNode returns the text node this run was generated for.
func (t *TextRun) DOMNode() *dom.StyNode {
	return t.domNode
}

// InlineBox is a box generated by an inline-level element, nested inside
// an inline formatting context. During line breaking an inline box may be
// split over several fragments; only the first fragment carries the
// inline-start margin, border and padding, only the last one the
// inline-end edges.
type InlineBox struct {
	domNode  *dom.StyNode
	CSSBox   *frame.Box
	Styling  *frame.Styling
	Display  frame.DisplayMode
	Children []InlineNode
}

func (ib *InlineBox) inlineNode() {}

// DOMNode returns the generating element's styled DOM node.
func (ib *InlineBox) DOMNode() *dom.StyNode {
	return ib.domNode
}

// TagName returns the generating element's tag.
func (ib *InlineBox) TagName() string {
	return ib.domNode.TagName()
}

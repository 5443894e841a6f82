package boxtree

// This module knows which boxes to generate for each styled DOM node and
// how to wrap mixed content into anonymous boxes.

import (
	"errors"

	"github.com/SimonSapin/victor/engine/dom"
	"github.com/SimonSapin/victor/engine/dom/style/css"
	"github.com/SimonSapin/victor/engine/frame"
)

var ErrDOMRootIsNull = errors.New("DOM root is null")
var ErrNoBoxTreeCreated = errors.New("no box tree created")

// BuildBoxTree creates a render box tree from a styled DOM tree. The DOM
// must have been styled before; un-styled nodes generate no boxes.
//
// The returned root box corresponds to the document's root element.
func BuildBoxTree(domRoot *dom.StyNode) (*BlockBox, error) {
	if domRoot == nil {
		return nil, ErrDOMRootIsNull
	}
	tracer().Debugf("creating box tree for %s", domRoot.TagName())
	root := newBlockBox(domRoot, frame.ParseFlow(domRoot.Styles()))
	if root == nil {
		return nil, ErrNoBoxTreeCreated
	}
	buildBlockContent(root, domRoot)
	return root, nil
}

// newBlockBox creates a block-level box for a DOM element, or nil for
// display:none. The element's own writing mode wins over the inherited
// one (they coincide anyway, writing-mode is inherited).
func newBlockBox(sn *dom.StyNode, parentFlow frame.Flow) *BlockBox {
	styles := sn.Styles()
	mode := frame.ParseDisplay(styles.Property("display"))
	if mode.Contains(frame.DisplayNone) {
		tracer().Debugf("element %s generates no box, display = none", sn.TagName())
		return nil
	}
	flow := frame.ParseFlow(styles)
	box := &BlockBox{
		domNode:  sn,
		Display:  mode,
		Flow:     flow,
		CSSBox:   frame.BoxFromStyles(styles, flow),
		Styling:  frame.StylingFromStyles(styles, flow),
		Position: css.PositionOption(sn),
		Float:    parseFloat(string(styles.Property("float"))),
	}
	return box
}

// blockBuilder accumulates the children of a block container. Inline
// content is collected until block-level content interrupts it, then
// wrapped into an anonymous block box.
type blockBuilder struct {
	owner   *BlockBox
	blocks  []*BlockBox
	ongoing []InlineNode // inline content not yet assigned to a box
	floats  bool
}

func buildBlockContent(b *BlockBox, sn *dom.StyNode) {
	builder := &blockBuilder{owner: b}
	builder.addChildren(sn)
	builder.finish()
}

func (bb *blockBuilder) addChildren(sn *dom.StyNode) {
	for _, ch := range sn.Children() {
		bb.addChild(ch)
	}
}

func (bb *blockBuilder) addChild(ch *dom.StyNode) {
	if ch.IsText() {
		bb.addText(ch)
		return
	}
	mode := frame.ParseDisplay(ch.Styles().Property("display"))
	switch {
	case mode.Contains(frame.DisplayNone):
		// no box, no descending
	case mode.Contains(frame.ContentsMode):
		// the element itself generates no box, its children appear in place
		bb.addChildren(ch)
	case mode.Contains(frame.InlineMode) && !mode.Contains(frame.FlowRoot):
		bb.ongoing = append(bb.ongoing, newInlineBox(ch, bb.owner.Flow))
	default:
		child := newBlockBox(ch, bb.owner.Flow)
		if child == nil {
			return
		}
		if child.Float != FloatNone {
			bb.floats = true
		}
		if !child.IsOutOfFlow() {
			// out-of-flow boxes do not interrupt the inline content
			// around them
			bb.flushInline()
		}
		buildBlockContent(child, ch)
		bb.blocks = append(bb.blocks, child)
	}
}

func (bb *blockBuilder) addText(ch *dom.StyNode) {
	collapse := true
	if p := ch.Parent(); p != nil && p.TagName() == "pre" {
		collapse = false
	}
	run := &TextRun{
		domNode:    ch,
		Text:       ch.Text(),
		Styling:    frame.StylingFromStyles(ch.Styles(), bb.owner.Flow),
		WSCollapse: collapse,
	}
	bb.ongoing = append(bb.ongoing, run)
}

// newInlineBox creates a box for an inline-level element and recursively
// collects its inline children. Block-level children of inline elements
// are not supported and are skipped with a notice.
func newInlineBox(sn *dom.StyNode, flow frame.Flow) *InlineBox {
	styles := sn.Styles()
	ibox := &InlineBox{
		domNode: sn,
		Display: frame.ParseDisplay(styles.Property("display")),
		CSSBox:  frame.BoxFromStyles(styles, flow),
		Styling: frame.StylingFromStyles(styles, flow),
	}
	for _, ch := range sn.Children() {
		if ch.IsText() {
			collapse := sn.TagName() != "pre"
			ibox.Children = append(ibox.Children, &TextRun{
				domNode:    ch,
				Text:       ch.Text(),
				Styling:    frame.StylingFromStyles(ch.Styles(), flow),
				WSCollapse: collapse,
			})
			continue
		}
		mode := frame.ParseDisplay(ch.Styles().Property("display"))
		switch {
		case mode.Contains(frame.DisplayNone):
		case mode.Contains(frame.ContentsMode):
			for _, grandchild := range ch.Children() {
				if sub := inlineChildNode(grandchild, flow); sub != nil {
					ibox.Children = append(ibox.Children, sub)
				}
			}
		case mode.Contains(frame.InlineMode):
			ibox.Children = append(ibox.Children, newInlineBox(ch, flow))
		default:
			tracer().Infof("skipping block-level %s inside inline %s",
				ch.TagName(), sn.TagName())
		}
	}
	return ibox
}

func inlineChildNode(ch *dom.StyNode, flow frame.Flow) InlineNode {
	if ch.IsText() {
		return &TextRun{
			domNode:    ch,
			Text:       ch.Text(),
			Styling:    frame.StylingFromStyles(ch.Styles(), flow),
			WSCollapse: true,
		}
	}
	mode := frame.ParseDisplay(ch.Styles().Property("display"))
	if mode.Contains(frame.DisplayNone) {
		return nil
	}
	if mode.Contains(frame.InlineMode) {
		return newInlineBox(ch, flow)
	}
	return nil
}

// flushInline wraps collected inline content into an anonymous block box.
func (bb *blockBuilder) flushInline() {
	if len(bb.ongoing) == 0 {
		return
	}
	anon := &BlockBox{
		Display:  frame.BlockMode | frame.FlowMode,
		Flow:     bb.owner.Flow,
		CSSBox:   frame.InitEmptyBox(nil),
		Position: css.SomePosition(css.PositionStatic),
		Inline:   &InlineContent{Nodes: bb.ongoing},
	}
	bb.ongoing = nil
	bb.blocks = append(bb.blocks, anon)
}

// finish assigns the collected content to the owning box. A container
// with only inline content holds it directly, without an anonymous
// wrapper.
func (bb *blockBuilder) finish() {
	if len(bb.blocks) == 0 || onlyOutOfFlow(bb.blocks) {
		if len(bb.ongoing) > 0 {
			bb.owner.Inline = &InlineContent{Nodes: bb.ongoing}
			bb.owner.Children = bb.blocks
			bb.owner.ContainsFloats = bb.floats
			return
		}
	}
	bb.flushInline()
	bb.owner.Children = bb.blocks
	bb.owner.ContainsFloats = bb.floats
}

func onlyOutOfFlow(blocks []*BlockBox) bool {
	for _, b := range blocks {
		if !b.IsOutOfFlow() {
			return false
		}
	}
	return true
}

package layout

import (
	"bufio"
	"strings"
	"unicode"

	xfont "golang.org/x/image/font"
	"golang.org/x/text/unicode/norm"

	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax14"

	"github.com/SimonSapin/victor/core/dimen"
	"github.com/SimonSapin/victor/core/font"
	"github.com/SimonSapin/victor/engine/dom"
	"github.com/SimonSapin/victor/engine/dom/style/css"
	"github.com/SimonSapin/victor/engine/frame"
	"github.com/SimonSapin/victor/engine/frame/boxtree"
	"github.com/SimonSapin/victor/engine/glyphing"
)

// lineItem is a piece of inline content ready for line filling: a shaped
// segment of text, or a pure advance produced by an inline box edge.
type lineItem struct {
	text      string
	seq       glyphing.GlyphSequence
	advance   dimen.Dimen
	ascent    dimen.Dimen
	lineH     dimen.Dimen
	inlinePos dimen.Dimen // assigned during line filling
	font      *font.TypeCase
	styling   *frame.Styling
	domNode   *dom.StyNode
	isSpace   bool // segment consists of whitespace only
	edgeOnly  bool // inline box edge, advances the cursor but renders nothing
}

// layoutInlineContent shapes the inline content of a block container,
// breaks it into lines of the given inline extent and produces text
// fragments. Returns the fragments and the block extent the lines cover.
//
// Line breaking is greedy first-fit at UAX#14 break opportunities. The
// line height is 1.2 times the tallest font size on the line.
func layoutInlineContent(ic *boxtree.InlineContent, lineWidth dimen.Dimen, ctx *Context,
	fontsize dimen.Dimen) ([]Fragment, dimen.Dimen, error) {
	//
	var items []lineItem
	for _, node := range ic.Nodes {
		its, err := itemize(node, ctx, fontsize)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, its...)
	}
	return fillLines(items, lineWidth)
}

// itemize produces line items for one inline node, recursively for
// inline boxes. An inline box contributes its inline-start edge before
// and its inline-end edge after its children; the edges of boxes split
// over several lines stay with the first and last fragment.
func itemize(node boxtree.InlineNode, ctx *Context, fontsize dimen.Dimen) ([]lineItem, error) {
	switch n := node.(type) {
	case *boxtree.TextRun:
		return itemizeText(n, ctx, fontsize)
	case *boxtree.InlineBox:
		runFontsize := resolveFontSize(n.Styling, fontsize, ctx)
		var items []lineItem
		if e := inlineEdge(n.CSSBox, frame.InlineStart, runFontsize, ctx); e > 0 {
			items = append(items, lineItem{advance: e, edgeOnly: true})
		}
		for _, ch := range n.Children {
			its, err := itemize(ch, ctx, runFontsize)
			if err != nil {
				return nil, err
			}
			items = append(items, its...)
		}
		if e := inlineEdge(n.CSSBox, frame.InlineEnd, runFontsize, ctx); e > 0 {
			items = append(items, lineItem{advance: e, edgeOnly: true})
		}
		return items, nil
	}
	return nil, nil
}

// itemizeText splits a text run at line break opportunities and shapes
// every segment.
func itemizeText(run *boxtree.TextRun, ctx *Context, fontsize dimen.Dimen) ([]lineItem, error) {
	text := run.Text
	if run.WSCollapse {
		text = collapseWhitespace(text)
	}
	if text == "" {
		return nil, nil
	}
	runFontsize := fontsize
	if run.Styling != nil {
		runFontsize = resolveFontSize(run.Styling, fontsize, ctx)
	}
	typecase := typecaseFor(run.Styling, runFontsize, ctx)
	params := glyphing.Params{Font: typecase}
	if run.DOMNode() != nil {
		params.Language = run.DOMNode().Language()
	}
	seg := segment.NewSegmenter(uax14.NewLineWrap())
	seg.Init(bufio.NewReader(norm.NFC.Reader(strings.NewReader(text))))
	var items []lineItem
	for seg.Next() {
		piece := seg.Text()
		if piece == "" {
			continue
		}
		seq, err := ctx.Shaper.Shape(strings.NewReader(piece), nil, nil, params)
		if err != nil {
			return nil, err
		}
		items = append(items, lineItem{
			text:    piece,
			seq:     seq,
			advance: seq.W,
			ascent:  seq.H,
			lineH:   runFontsize * 6 / 5,
			font:    typecase,
			styling: run.Styling,
			domNode: run.DOMNode(),
			isSpace: strings.TrimSpace(piece) == "",
		})
	}
	return items, nil
}

// fillLines distributes items greedily onto lines.
func fillLines(items []lineItem, lineWidth dimen.Dimen) ([]Fragment, dimen.Dimen, error) {
	var frags []Fragment
	var line []lineItem
	var cursor, lineB dimen.Dimen
	flush := func() {
		if len(line) == 0 {
			return
		}
		lineB += placeLine(line, lineB, &frags)
		line = line[:0]
		cursor = 0
	}
	for _, it := range items {
		if cursor > 0 && cursor+it.advance > lineWidth && !it.isSpace {
			flush()
		}
		if cursor == 0 && it.isSpace {
			continue // no spaces at the start of a line
		}
		it.inlinePos = cursor
		line = append(line, it)
		cursor += it.advance
	}
	flush()
	return frags, lineB, nil
}

// placeLine finalizes one line: computes the line height and baseline
// from the tallest item and emits text fragments. Returns the line
// height.
func placeLine(line []lineItem, lineB dimen.Dimen, frags *[]Fragment) dimen.Dimen {
	var lineH, ascent dimen.Dimen
	for _, it := range line {
		lineH = dimen.Max(lineH, it.lineH)
		ascent = dimen.Max(ascent, it.ascent)
	}
	if lineH == 0 {
		return 0
	}
	// center the text block inside the line box
	leading := lineH - ascent
	for _, it := range line {
		if it.edgeOnly || it.text == "" {
			continue
		}
		frag := &TextFragment{
			domNode: it.domNode,
			Rect: frame.FlowRect{
				Origin: frame.FlowVec{Inline: it.inlinePos, Block: lineB},
				Size:   frame.FlowVec{Inline: it.advance, Block: lineH},
			},
			Baseline: ascent + leading/2,
			Text:     it.text,
			Glyphs:   it.seq.Glyphs,
			Font:     it.font,
		}
		if it.styling != nil {
			frag.Color = it.styling.Colors.Foreground
		}
		*frags = append(*frags, frag)
	}
	return lineH
}

// inlineEdge sums margin, border and padding of one inline edge of a
// box. Relative values resolve against the font size; percentages on
// inline boxes are not supported and count as 0.
func inlineEdge(box *frame.Box, dir int, fontsize dimen.Dimen, ctx *Context) dimen.Dimen {
	if box == nil {
		return 0
	}
	sum := dimen.Zero
	for _, d := range []css.DimenT{box.Margins[dir], box.BorderWidth[dir], box.Padding[dir]} {
		d = d.ScaleFromFont(fontsize)
		d = d.ScaleFromViewport(ctx.Viewport.X, ctx.Viewport.Y)
		if d.IsAbsolute() {
			sum += d.Unwrap()
		}
	}
	return sum
}

// typecaseFor resolves a styling to a prepared typecase, falling back to
// the embedded fallback family for unknown font families.
func typecaseFor(st *frame.Styling, fontsize dimen.Dimen, ctx *Context) *font.TypeCase {
	pts := float64(fontsize) / float64(dimen.PT)
	family := "fallback"
	style, weight := xfont.StyleNormal, xfont.WeightNormal
	if st != nil {
		if st.Text.FontFamily != "" {
			family = st.Text.FontFamily
		}
		if st.Text.FontStyle == "italic" || st.Text.FontStyle == "oblique" {
			style = xfont.StyleItalic
		}
		if st.Text.FontWeight == "bold" {
			weight = xfont.WeightBold
		}
	}
	registry := ctx.Fonts
	if registry == nil {
		registry = font.GlobalRegistry()
	}
	typecase, err := registry.TypeCase(font.NormalizeFontname(family), pts)
	if err == nil && (style != xfont.StyleNormal || weight != xfont.WeightNormal) {
		// prefer a matching variant of the family over the plain face
		for _, variant := range registry.FindVariants(font.NormalizeFontname(family)) {
			if font.MatchStyle(variant.Fontname, style) && font.MatchWeight(variant.Fontname, weight) {
				if tc, verr := variant.PrepareCase(pts); verr == nil {
					return tc
				}
			}
		}
	}
	if err != nil {
		// registry handed us the fallback face; honor style and weight
		if fb, ferr := font.FallbackVariant(style, weight).PrepareCase(pts); ferr == nil {
			return fb
		}
	}
	return typecase
}

// collapseWhitespace replaces every run of whitespace with a single
// space.
func collapseWhitespace(s string) string {
	var sb strings.Builder
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		inWS = false
		sb.WriteRune(r)
	}
	if inWS && sb.Len() > 0 {
		sb.WriteByte(' ')
	}
	return sb.String()
}

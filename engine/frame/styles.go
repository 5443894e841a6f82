package frame

import (
	"image/color"
	"strings"

	"github.com/SimonSapin/victor/engine/dom/style"
	"github.com/SimonSapin/victor/engine/dom/style/css"
)

// LineStyle is the type of border lines.
type LineStyle int8

// Supported line styles. Everything else douceur may hand us is treated
// as LSSolid.
const (
	LSNone LineStyle = iota
	LSSolid
	LSDashed
	LSDotted
)

func parseLineStyle(p style.Property) LineStyle {
	switch strings.TrimSpace(string(p)) {
	case "none", "hidden", "":
		return LSNone
	case "dashed":
		return LSDashed
	case "dotted":
		return LSDotted
	}
	return LSSolid
}

// TextStyle collects the font-related styles of a box. FontSize may be
// relative (em, %); relative sizes resolve against the parent font size
// during layout.
type TextStyle struct {
	FontFamily string
	FontStyle  string // "normal" or "italic"
	FontWeight string // "normal" or "bold"
	FontSize   css.DimenT
}

// ColorStyle collects the color properties of a box.
type ColorStyle struct {
	Foreground color.RGBA
	Background color.RGBA
}

// BorderStyle describes one border edge.
type BorderStyle struct {
	LineColor color.RGBA
	LineStyle LineStyle
}

// Styling is a bundle of appearance properties of a box, distilled from
// computed styles. Border edges are flow-relative, indexed by the edge
// constants (Top = block-start, and so on).
type Styling struct {
	Text    TextStyle
	Colors  ColorStyle
	Borders [4]BorderStyle
}

// StylingFromStyles distills the appearance properties from a computed
// property map. Border colors of "currentcolor" resolve to the element's
// foreground color.
func StylingFromStyles(pmap *style.PropertyMap, flow Flow) *Styling {
	styling := &Styling{}
	styling.Text.FontFamily = string(pmap.Property("font-family"))
	styling.Text.FontStyle = string(pmap.Property("font-style"))
	styling.Text.FontWeight = string(pmap.Property("font-weight"))
	styling.Text.FontSize = css.DimenOption(pmap.Property("font-size"))
	styling.Colors.Foreground = pmap.Property("color").Color()
	bg := pmap.Property("background-color")
	if strings.TrimSpace(string(bg)) == "currentcolor" {
		styling.Colors.Background = styling.Colors.Foreground
	} else {
		styling.Colors.Background = bg.Color()
	}
	physEdges := [4]string{"top", "right", "bottom", "left"}
	var borders [4]BorderStyle
	for i, edge := range physEdges {
		borders[i].LineStyle = parseLineStyle(pmap.Property("border-" + edge + "-style"))
		c := pmap.Property("border-" + edge + "-color")
		if strings.TrimSpace(string(c)) == "currentcolor" || c == style.NullStyle {
			borders[i].LineColor = styling.Colors.Foreground
		} else {
			borders[i].LineColor = c.Color()
		}
	}
	perm := flowEdgePermutation(flow)
	for i := Top; i <= Left; i++ {
		styling.Borders[i] = borders[perm[i]]
	}
	return styling
}

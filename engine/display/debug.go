package display

import (
	"fmt"
	"strings"
)

// DebugString renders a display list document as a readable dump, one
// line per item. Intended for golden tests and debugging, not for
// presentation.
func (doc *Document) DebugString() string {
	var sb strings.Builder
	for i, page := range doc.Pages {
		fmt.Fprintf(&sb, "page %d (%.1fpt x %.1fpt)\n", i+1,
			page.Size.X.Points(), page.Size.Y.Points())
		for _, item := range page.Items {
			switch it := item.(type) {
			case SolidRectangle:
				fmt.Fprintf(&sb, "  rect (%.1f,%.1f)-(%.1f,%.1f) #%02x%02x%02x%02x\n",
					it.Rect.TopL.X.Points(), it.Rect.TopL.Y.Points(),
					it.Rect.BotR.X.Points(), it.Rect.BotR.Y.Points(),
					it.Color.R, it.Color.G, it.Color.B, it.Color.A)
			case Text:
				name := "?"
				if it.Font != nil {
					name = it.Font.ScalableFontParent().Fontname
				}
				fmt.Fprintf(&sb, "  text %d glyphs %q %.1fpt at (%.1f,%.1f)\n",
					len(it.Glyphs), name, it.Size,
					it.Start.X.Points(), it.Start.Y.Points())
			}
		}
	}
	return sb.String()
}

/*
Package layout produces a fragment tree from a box tree.

Layout works in flow-relative coordinates: every fragment's content rect
is positioned relative to its parent's content rect, with an inline and a
block axis given by the box's writing mode. The mapping to physical page
coordinates happens when fragments are converted into display items.

Block-level boxes lay out top-down: the inline extent of a box is solved
against its containing block before descending (CSS defines the width
equation to be solvable without looking at the content), the block extent
of auto-height boxes follows from the content afterwards. Inline content
is shaped, broken into lines and placed on line boxes.
*/
package layout

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'victor.frame'.
func tracer() tracing.Trace {
	return tracing.Select("victor.frame")
}

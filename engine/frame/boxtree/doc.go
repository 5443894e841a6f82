/*
Package boxtree produces a render box tree from a styled DOM.

This package knows which boxes to create for each HTML element and how
the boxes nest: block containers hold either block-level children or an
inline formatting context, never both. Mixed content gets wrapped into
anonymous block boxes. Elements with display:none produce no box at all,
display:contents elements contribute their children in place.

Out-of-flow boxes (absolutely positioned or floated) stay in their
containing box's child list, flagged as such; layout skips them when
placing in-flow content and positions them separately.
*/
package boxtree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'victor.frame'.
func tracer() tracing.Trace {
	return tracing.Select("victor.frame")
}

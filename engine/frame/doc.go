/*
Package frame deals with CSS boxes.

Layout may be understood as the process of placing boxes within larger
boxes. Boxes follow the CSS box model: a content area, wrapped in
padding, border and margins. This package provides the box type itself,
CSS display modes, and flow-relative geometry.

Geometry deserves a word: CSS layout is specified in flow-relative terms
(inline and block axis) and only maps to physical directions (left, top)
once the writing mode is known. Boxes in this package carry their edges
in flow-relative order; package geom converts to physical sides.
*/
package frame

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'victor.frame'.
func tracer() tracing.Trace {
	return tracing.Select("victor.frame")
}

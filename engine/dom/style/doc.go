/*
Package style implements CSS styling for a DOM.

Styling is done in two phases: collecting the declarations that apply to
an element (the cascade), and computing final property values from them
(defaulting, inheritance, CSS-wide keywords). The result is a PropertyMap
per element, from which clients read computed values.

Stylesheet text is parsed with the douceur CSS parser, selectors are
matched with cascadia.
*/
package style

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'victor.style'.
func tracer() tracing.Trace {
	return tracing.Select("victor.style")
}

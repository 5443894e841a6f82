/*
Package resources resolves font resources for a layout run.

As resource loading may be a time-consuming task, some functions in this
package will work in an async/await fashion by returning a promise.
Functions named

	Resolve…(…)

will return a resource-specific promise type, which the client will call
later to receive the loaded resource. The call to the promise-function will
then block until loading has completed.

Resolving proceeds through a fixed sequence of locations: the global font
registry, fonts embedded into the binary, fonts installed on the system,
and finally the Google Fonts service.
*/
package resources

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'victor.resources'.
func tracer() tracing.Trace {
	return tracing.Select("victor.resources")
}

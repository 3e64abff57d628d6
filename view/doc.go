/*
Package view is the widget-facing glue around the preview registry: a panel
resolves the best handler for a resource, renders asynchronously, and
broadcasts completed renders to subscribed hosts. Scroll synchronization
requests are forwarded to the optional capabilities of the handler that
produced the current render.

Rendering runs in a goroutine per request. Cancellation is cooperative: a
render superseded by a newer request is simply dropped on completion, so a
slow, stale render can never overwrite newer state or reach subscribers.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

For details please refer to the LICENSE file.
*/
package view

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'preview'
func tracer() tracing.Trace {
	return tracing.Select("preview")
}

/*
Package dom provides construction and search helpers for rendered output
trees. A rendered preview is an HTML node tree (golang.org/x/net/html);
handlers annotate the elements they emit with the 1-based source line their
content originates from, and the mapping helpers in this package search
those annotations to keep source and preview in sync.

The registry never looks inside an output tree; only handlers (and hosts
that obtained a tree from a handler) use this package.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

For details please refer to the LICENSE file.
*/
package dom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'preview'
func tracer() tracing.Trace {
	return tracing.Select("preview")
}

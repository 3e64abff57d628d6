/*
Package console formats rendered preview trees for terminal display. It is
the plain-console counterpart of a GUI preview widget: block elements are
laid out as indented, line-wrapped paragraphs, inline markup is visualized
with ANSI colors, and wrapping respects Unicode line-break opportunities
and East Asian character widths.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

For details please refer to the LICENSE file.
*/
package console

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'preview'
func tracer() tracing.Trace {
	return tracing.Select("preview")
}

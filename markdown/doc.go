/*
Package markdown provides a preview handler for Markdown resources, backed
by the goldmark parser. Rendering walks the parsed AST and emits an HTML
node tree whose block elements carry source-line annotations, so the
handler supports the full source/preview synchronization protocol: anchor
lookup, source-line to element mapping, and offset to source-line mapping.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

For details please refer to the LICENSE file.
*/
package markdown

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'preview'
func tracer() tracing.Trace {
	return tracing.Select("preview")
}

/*
Package preview connects source documents to live, navigable previews.

Text editors frequently offer a rendered view of the document being edited,
e.g., displaying markup as styled output side by side with the source. The
interesting problems are not in rendering any single format (that is the job
of pluggable handlers) but in deciding which of several competing handlers
should render a given resource, and in keeping source and preview in sync
by line position while the user scrolls or navigates either side.

Package preview contains the handler contract and the selection engine:

Handler is the capability surface every concrete renderer implements:
scoring its own applicability to a resource and rendering content. Optional
capabilities (fragment lookup, source-line mapping, offset mapping) are
modelled as separately asserted interfaces; a handler implements the ones it
supports and omits the rest.

Registry holds an externally supplied, ordered set of handlers and
answers, per resource, which handlers apply and in what priority order.

Concrete renderers live in sub-packages (markdown, plaintext) and widget
glue lives in package view. The registry itself never parses or renders
content and never interprets a handler's output tree.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

For details please refer to the LICENSE file.
*/
package preview

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// PreviewError is an error type for the preview module.
type PreviewError string

func (e PreviewError) Error() string {
	return string(e)
}

// ErrIllegalParams is flagged whenever render parameters fail the validity
// predicate (see Params.IsValid). Callers receive this instead of a silent
// empty render.
const ErrIllegalParams = PreviewError("render parameters are incomplete")

// ErrNoHandler signals that no registered handler is applicable to a
// resource. This is a normal outcome for callers to handle (disable the
// preview), distinct from a failed render.
const ErrNoHandler = PreviewError("no handler applicable to resource")

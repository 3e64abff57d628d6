/*
Package document provides an immutable line-indexed snapshot of a source
text. Handlers use it to translate the byte offsets reported by their
parsers into the 1-based source line numbers the preview synchronization
protocol speaks.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

For details please refer to the LICENSE file.
*/
package document

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'preview'
func tracer() tracing.Trace {
	return tracing.Select("preview")
}

// DocumentError is an error type for the document package.
type DocumentError string

func (e DocumentError) Error() string {
	return string(e)
}

// ErrOffsetOutOfBounds is returned for byte offsets beyond the document.
const ErrOffsetOutOfBounds = DocumentError("offset out of bounds")

// ErrLineOutOfBounds is returned for line numbers outside 1…LineCount.
const ErrLineOutOfBounds = DocumentError("line out of bounds")

/*
Package plaintext provides the fallback preview handler: it renders any
textual resource as preformatted output, one annotated span per source
line. Its applicability score is deliberately low so that format-specific
handlers outrank it, but a preview is never unavailable merely because no
richer handler claimed the resource.

The handler supports line and offset mapping (which is trivial here, lines
map 1:1), but not fragment lookup: plain text has no anchors.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

For details please refer to the LICENSE file.
*/
package plaintext

import (
	"github.com/npillmayer/preview"
	"github.com/npillmayer/preview/document"
	"github.com/npillmayer/preview/dom"
	"golang.org/x/net/html"
)

// Applicability scores, below every format-specific handler.
const (
	scorePlainTextFile = 3 // resource that declares a plain-text extension
	scoreFallback      = 1 // any other resource with a path
)

// Handler renders plain text resources. It implements preview.Handler, the
// line and offset mapping capabilities, and preview.IconProvider, but not
// preview.FragmentLocator.
type Handler struct{}

var _ preview.Handler = Handler{}
var _ preview.LineLocator = Handler{}
var _ preview.OffsetMapper = Handler{}
var _ preview.IconProvider = Handler{}

// New creates the fallback plain text handler.
func New() Handler {
	return Handler{}
}

// CanHandle claims every resource that has a path at all, slightly
// preferring declared text files.
func (h Handler) CanHandle(res preview.Resource) int {
	if res.Path == "" {
		return 0
	}
	switch res.Ext() {
	case ".txt", ".text", ".log":
		return scorePlainTextFile
	}
	return scoreFallback
}

// RenderContent wraps the source in a pre element holding one span per
// source line, each annotated with its line number.
func (h Handler) RenderContent(params preview.Params) (*html.Node, error) {
	if !params.IsValid() {
		return nil, preview.ErrIllegalParams
	}
	doc := document.FromBytes(params.Content)
	pre := dom.Element("pre")
	for line := 1; line <= doc.LineCount(); line++ {
		text, err := doc.Line(line)
		if err != nil {
			return nil, err
		}
		span := dom.Element("span", dom.Text(text+"\n"))
		dom.SetSourceLine(span, line)
		dom.Append(pre, span)
	}
	return pre, nil
}

// ElementForSourceLine returns the span rendered for the given line, or the
// nearest preceding one.
func (h Handler) ElementForSourceLine(root *html.Node, line int) *html.Node {
	return dom.ElementForLine(root, line)
}

// SourceLineForOffset maps an offset in the rendered text back to its line.
func (h Handler) SourceLineForOffset(root *html.Node, offset uint64) (int, bool) {
	return dom.SourceLineForOffset(root, offset)
}

// IconClass declares the icon UI hosts may decorate plain text previews
// with.
func (h Handler) IconClass() string {
	return "preview-icon-text"
}

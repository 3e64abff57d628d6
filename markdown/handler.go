package markdown

/*
BSD 3-Clause License

Copyright (c) Norbert Pillmayer

Please refer to the LICENSE file in the repository root.

*/

import (
	"fmt"

	"github.com/npillmayer/preview"
	"github.com/npillmayer/preview/document"
	"github.com/npillmayer/preview/dom"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"golang.org/x/net/html"
)

// Applicability scores. Local files with a Markdown extension are this
// handler's home turf; Markdown under other schemes is still handled, with
// room above and below for more specific contributions to outrank us.
const (
	scoreMarkdownFile  = 20 // file-scheme resource with a Markdown extension
	scoreMarkdownOther = 10 // Markdown extension under another scheme
)

// Handler renders Markdown resources. It implements preview.Handler and all
// three synchronization capabilities.
type Handler struct {
	md goldmark.Markdown
}

var _ preview.Handler = (*Handler)(nil)
var _ preview.FragmentLocator = (*Handler)(nil)
var _ preview.LineLocator = (*Handler)(nil)
var _ preview.OffsetMapper = (*Handler)(nil)
var _ preview.IconProvider = (*Handler)(nil)

// New creates a Markdown preview handler.
func New() *Handler {
	return &Handler{
		md: goldmark.New(
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(), // headings become anchor targets
			),
		),
	}
}

// CanHandle scores this handler's applicability from the resource's file
// extension. It inspects no content and is cheap enough to run on every
// registry query.
func (h *Handler) CanHandle(res preview.Resource) int {
	switch res.Ext() {
	case ".md", ".markdown", ".mdown", ".mkd":
		if res.Scheme == "" || res.Scheme == "file" {
			return scoreMarkdownFile
		}
		return scoreMarkdownOther
	}
	return 0
}

// RenderContent parses the Markdown source and converts the AST into an
// annotated output tree rooted in an article element.
func (h *Handler) RenderContent(params preview.Params) (*html.Node, error) {
	if !params.IsValid() {
		return nil, preview.ErrIllegalParams
	}
	tb := &treeBuilder{
		source: params.Content,
		doc:    document.FromBytes(params.Content),
	}
	root, err := h.parse(params.Content)
	if err != nil {
		return nil, err
	}
	return tb.build(root), nil
}

// parse isolates goldmark: a panicking parser surfaces as a render failure
// for this attempt instead of unwinding into the preview host.
func (h *Handler) parse(source []byte) (root ast.Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			tracer().Errorf("markdown parser panicked: %v", r)
			err = fmt.Errorf("markdown: parsing failed: %v", r)
		}
	}()
	return h.md.Parser().Parse(text.NewReader(source)), nil
}

// ElementForFragment locates the heading (or other element) whose id matches
// the fragment.
func (h *Handler) ElementForFragment(root *html.Node, fragment string) *html.Node {
	return dom.ElementByID(root, fragment)
}

// ElementForSourceLine maps a 1-based source line to the nearest preceding
// rendered block.
func (h *Handler) ElementForSourceLine(root *html.Node, line int) *html.Node {
	return dom.ElementForLine(root, line)
}

// SourceLineForOffset maps an offset into the rendered text back to its
// source line. The result is monotone in the offset (see
// dom.SourceLineForOffset).
func (h *Handler) SourceLineForOffset(root *html.Node, offset uint64) (int, bool) {
	return dom.SourceLineForOffset(root, offset)
}

// IconClass declares the icon UI hosts may decorate Markdown previews with.
func (h *Handler) IconClass() string {
	return "preview-icon-markdown"
}

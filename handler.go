package preview

/*
BSD 3-Clause License

Copyright (c) Norbert Pillmayer

Please refer to the LICENSE file in the repository root.

*/

import (
	"path"
	"strings"

	"golang.org/x/net/html"
)

// Resource identifies a source document. It is an opaque, comparable value:
// the registry only hands it to handlers for applicability scoring and never
// parses or mutates it.
type Resource struct {
	Scheme   string // e.g. "file"
	Path     string // path portion of the document's URI
	Fragment string // optional anchor, without the leading '#'
}

// FileResource creates a resource for a local file path.
func FileResource(p string) Resource {
	return Resource{Scheme: "file", Path: p}
}

// IsZero reports whether the resource carries no identity at all.
func (r Resource) IsZero() bool {
	return r == Resource{}
}

// Ext returns the lower-cased filename extension of the resource's path,
// including the dot, or "" if there is none. Handlers commonly score their
// applicability from it.
func (r Resource) Ext() string {
	return strings.ToLower(path.Ext(r.Path))
}

func (r Resource) String() string {
	s := r.Path
	if r.Scheme != "" {
		s = r.Scheme + "://" + s
	}
	if r.Fragment != "" {
		s += "#" + r.Fragment
	}
	return s
}

// Params are the parameters for a single render call: the full textual
// content of a resource together with the resource it came from. Params are
// treated as immutable by handlers.
//
// A nil Content slice means "content absent" and is invalid; an empty but
// non-nil slice is a present, empty document.
type Params struct {
	Content   []byte   // full source text of the resource
	OriginURI Resource // the resource the content was read from
}

// IsValid is the validity predicate for render parameters. Both fields must
// be present: malformed parameters are rejected before any handler is
// invoked, rather than silently rendering empty output.
func (p Params) IsValid() bool {
	return p.Content != nil && !p.OriginURI.IsZero()
}

// Handler is the contract every concrete renderer implements. Handlers are
// registered with a Registry, which selects among them per resource; the
// registry is written against this contract only, never against a concrete
// renderer.
//
// Throughout this module source lines are 1-based, matching the convention
// of editors.
type Handler interface {
	// CanHandle scores the handler's applicability to a resource. A value
	// ≤ 0 means "not applicable"; positive values rank applicable handlers,
	// higher meaning more specific. CanHandle runs once per registry query
	// for every candidate, so implementations must be cheap (no full parse)
	// and must not render or mutate state.
	CanHandle(res Resource) int

	// RenderContent renders the content given by params into an output
	// tree. params have been checked with Params.IsValid before the call.
	// A failed render returns a non-nil error and no partially built tree;
	// a nil tree with a nil error means rendering legitimately produced
	// nothing.
	RenderContent(params Params) (*html.Node, error)
}

// Optional handler capabilities. A concrete renderer supports source/preview
// synchronization by additionally implementing one or more of the following
// interfaces; callers discover them with type assertions. Handlers that
// render but cannot map positions simply omit them.

// FragmentLocator locates the output node corresponding to a URI fragment
// (an anchor or heading id) in a previously rendered tree. Used to jump to
// an anchor when a preview is first opened.
type FragmentLocator interface {
	// ElementForFragment returns the matching node, or nil if the fragment
	// does not occur in the rendered tree.
	ElementForFragment(root *html.Node, fragment string) *html.Node
}

// LineLocator maps a 1-based source line to the rendered node whose content
// originates from that line. Used to scroll the preview when the source
// editor scrolls.
type LineLocator interface {
	// ElementForSourceLine returns the node for the given source line. For
	// lines without a directly corresponding node the nearest preceding
	// rendered node is returned; nil if no node precedes the line.
	ElementForSourceLine(root *html.Node, line int) *html.Node
}

// OffsetMapper is the inverse mapping: given an offset into the rendered
// output, estimate the originating source line. Used to scroll the source
// editor when the preview scrolls.
type OffsetMapper interface {
	// SourceLineForOffset returns the best-estimate 1-based source line for
	// a byte offset into the rendered output's flattened text, and false if
	// the tree carries no line information at all. Implementations must be
	// monotonically non-decreasing in offset, so that smooth scrolling of
	// the preview never makes the source jump backwards.
	SourceLineForOffset(root *html.Node, offset uint64) (int, bool)
}

// IconProvider lets a handler declare an icon class for UI decoration.
// Purely cosmetic; no behavioral contract attaches to it.
type IconProvider interface {
	IconClass() string
}

package dom

/*
BSD 3-Clause License

Copyright (c) Norbert Pillmayer

Please refer to the LICENSE file in the repository root.

*/

import (
	"strings"

	"golang.org/x/net/html"
)

// ElementByID locates the element carrying the given id attribute, walking
// the tree in document order. An exact match wins; failing that, the first
// case-insensitive match is returned, since anchor generation and hand-typed
// fragments frequently disagree on case. Returns nil if the id does not
// occur.
func ElementByID(root *html.Node, id string) *html.Node {
	if root == nil || id == "" {
		return nil
	}
	var relaxed *html.Node
	var walk func(n *html.Node) *html.Node
	walk = func(n *html.Node) *html.Node {
		if n.Type == html.ElementNode {
			if v, ok := Attr(n, "id"); ok {
				if v == id {
					return n
				}
				if relaxed == nil && strings.EqualFold(v, id) {
					relaxed = n
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if hit := walk(c); hit != nil {
				return hit
			}
		}
		return nil
	}
	if hit := walk(root); hit != nil {
		return hit
	}
	return relaxed
}

// ElementForLine returns the annotated element best matching a 1-based
// source line: the element with the greatest source-line annotation that is
// ≤ line. Among elements annotated with the same line the first in document
// order wins. Returns nil when no annotated element precedes the line, e.g.
// for lines above the first rendered block.
func ElementForLine(root *html.Node, line int) *html.Node {
	if root == nil || line < 1 {
		return nil
	}
	var best *html.Node
	bestLine := 0
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if l, ok := SourceLine(n); ok && l <= line && l > bestLine {
			best, bestLine = n, l
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return best
}

// SourceLineForOffset estimates the source line originating the rendered
// text at the given byte offset (an offset into the tree's flattened text,
// see InnerText). The walk visits text in document order and keeps the
// maximum source-line annotation entered at or before the offset; returning
// that running maximum makes the result monotonically non-decreasing in the
// offset, so smooth preview scrolling cannot make the source jump backwards.
// At an offset falling exactly on a boundary between two annotated regions
// the later region wins (the annotation is applied on entry).
//
// The second return value is false when no annotation precedes the offset.
func SourceLineForOffset(root *html.Node, offset uint64) (int, bool) {
	if root == nil {
		return 0, false
	}
	line := 0
	var pos uint64
	var walk func(n *html.Node) bool
	walk = func(n *html.Node) bool {
		if l, ok := SourceLine(n); ok && l > line {
			line = l
		}
		if n.Type == html.TextNode {
			pos += uint64(len(n.Data))
			if pos > offset {
				return false
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if !walk(c) {
				return false
			}
		}
		return true
	}
	walk(root)
	if line == 0 {
		return 0, false
	}
	return line, true
}

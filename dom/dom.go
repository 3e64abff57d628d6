package dom

/*
BSD 3-Clause License

Copyright (c) Norbert Pillmayer

Please refer to the LICENSE file in the repository root.

*/

import (
	"strconv"

	"github.com/npillmayer/cords"
	"golang.org/x/net/html"
)

// SourceLineAttr is the attribute handlers set on emitted elements to record
// the 1-based source line their content originates from.
const SourceLineAttr = "data-source-line"

// Element creates an element node with the given tag, appending any children.
func Element(tag string, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: tag}
	for _, c := range children {
		if c != nil {
			n.AppendChild(c)
		}
	}
	return n
}

// Text creates a text node.
func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Append appends children to a node, skipping nils.
func Append(n *html.Node, children ...*html.Node) *html.Node {
	for _, c := range children {
		if c != nil {
			n.AppendChild(c)
		}
	}
	return n
}

// SetAttr sets an attribute on an element node, replacing an existing value.
func SetAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// Attr looks up an attribute value on an element node.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetSourceLine annotates an element with its originating 1-based source
// line.
func SetSourceLine(n *html.Node, line int) {
	SetAttr(n, SourceLineAttr, strconv.Itoa(line))
}

// SourceLine reads a node's source-line annotation. It returns false for
// unannotated nodes and for annotations that do not parse to a positive
// line number.
func SourceLine(n *html.Node) (int, bool) {
	if n.Type != html.ElementNode {
		return 0, false
	}
	v, ok := Attr(n, SourceLineAttr)
	if !ok {
		return 0, false
	}
	line, err := strconv.Atoi(v)
	if err != nil || line < 1 {
		tracer().Infof("dom: ignoring malformed source-line annotation %q", v)
		return 0, false
	}
	return line, true
}

// InnerText collects the textual content of a node and all its descendents
// into a cord. The fragment organization of the resulting cord reflects the
// hierarchy of the node's descendents. Offsets into this flattened text are
// the "scroll offsets" of the offset-mapping protocol.
func InnerText(n *html.Node) (cords.Cord, error) {
	if n == nil {
		return cords.Cord{}, cords.ErrIllegalArguments
	}
	b := cords.NewBuilder()
	collectText(n, b)
	return b.Cord(), nil
}

func collectText(n *html.Node, b *cords.Builder) {
	if n.Type == html.TextNode && n.Data != "" {
		b.Append(cords.StringLeaf(n.Data))
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

package markdown

/*
BSD 3-Clause License

Copyright (c) Norbert Pillmayer

Please refer to the LICENSE file in the repository root.

*/

import (
	"bytes"
	"strconv"

	"github.com/npillmayer/preview/document"
	"github.com/npillmayer/preview/dom"
	"github.com/yuin/goldmark/ast"
	"golang.org/x/net/html"
)

// treeBuilder converts a goldmark AST into a rendered output tree. Block
// elements are annotated with the 1-based source line their first text
// segment starts on.
type treeBuilder struct {
	source []byte
	doc    *document.Document
}

func (tb *treeBuilder) build(root ast.Node) *html.Node {
	return tb.block(root)
}

func (tb *treeBuilder) block(n ast.Node) *html.Node {
	var el *html.Node
	switch b := n.(type) {
	case *ast.Document:
		el = dom.Element("article")
		tb.blockChildren(el, n)
		return el // the root carries no line annotation of its own
	case *ast.Heading:
		el = dom.Element("h" + strconv.Itoa(b.Level))
		if id, ok := b.AttributeString("id"); ok {
			if idb, isBytes := id.([]byte); isBytes {
				dom.SetAttr(el, "id", string(idb))
			}
		}
	case *ast.Paragraph:
		el = dom.Element("p")
	case *ast.TextBlock:
		// tight list items wrap their content in a text block, not a paragraph
		el = dom.Element("span")
	case *ast.Blockquote:
		el = dom.Element("blockquote")
	case *ast.FencedCodeBlock:
		el = tb.codeBlock(n, b.Language(tb.source))
		tb.annotate(el, n)
		return el
	case *ast.CodeBlock:
		el = tb.codeBlock(n, nil)
		tb.annotate(el, n)
		return el
	case *ast.List:
		if b.IsOrdered() {
			el = dom.Element("ol")
			if b.Start != 1 {
				dom.SetAttr(el, "start", strconv.Itoa(b.Start))
			}
		} else {
			el = dom.Element("ul")
		}
	case *ast.ListItem:
		el = dom.Element("li")
	case *ast.ThematicBreak:
		el = dom.Element("hr")
		tb.annotate(el, n)
		return el
	case *ast.HTMLBlock:
		tracer().Debugf("markdown: skipping raw HTML block")
		return nil
	default:
		el = dom.Element("div")
	}
	tb.annotate(el, n)
	tb.blockChildren(el, n)
	return el
}

func (tb *treeBuilder) blockChildren(el *html.Node, n ast.Node) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Type() == ast.TypeBlock {
			dom.Append(el, tb.block(c))
		} else {
			tb.inline(el, c)
		}
	}
}

// codeBlock renders a (fenced or indented) code block as pre>code with the
// verbatim line content.
func (tb *treeBuilder) codeBlock(n ast.Node, language []byte) *html.Node {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(tb.source))
	}
	code := dom.Element("code", dom.Text(buf.String()))
	if len(language) > 0 {
		dom.SetAttr(code, "class", "language-"+string(language))
	}
	return dom.Element("pre", code)
}

// inline appends the rendering of an inline AST node to parent. An inline
// node may expand to more than one output node (e.g. text plus a line
// break), which is why this appends instead of returning.
func (tb *treeBuilder) inline(parent *html.Node, n ast.Node) {
	switch i := n.(type) {
	case *ast.Text:
		if txt := string(i.Segment.Value(tb.source)); txt != "" {
			dom.Append(parent, dom.Text(txt))
		}
		if i.HardLineBreak() {
			dom.Append(parent, dom.Element("br"))
		} else if i.SoftLineBreak() {
			dom.Append(parent, dom.Text("\n"))
		}
	case *ast.String:
		dom.Append(parent, dom.Text(string(i.Value)))
	case *ast.CodeSpan:
		code := dom.Element("code")
		tb.inlineChildren(code, n)
		dom.Append(parent, code)
	case *ast.Emphasis:
		tag := "em"
		if i.Level >= 2 {
			tag = "strong"
		}
		el := dom.Element(tag)
		tb.inlineChildren(el, n)
		dom.Append(parent, el)
	case *ast.Link:
		a := dom.Element("a")
		dom.SetAttr(a, "href", string(i.Destination))
		if len(i.Title) > 0 {
			dom.SetAttr(a, "title", string(i.Title))
		}
		tb.inlineChildren(a, n)
		dom.Append(parent, a)
	case *ast.AutoLink:
		a := dom.Element("a", dom.Text(string(i.Label(tb.source))))
		dom.SetAttr(a, "href", string(i.URL(tb.source)))
		dom.Append(parent, a)
	case *ast.Image:
		img := dom.Element("img")
		dom.SetAttr(img, "src", string(i.Destination))
		if alt := tb.plainText(n); alt != "" {
			dom.SetAttr(img, "alt", alt)
		}
		dom.Append(parent, img)
	case *ast.RawHTML:
		tracer().Debugf("markdown: skipping raw inline HTML")
	default:
		span := dom.Element("span")
		tb.inlineChildren(span, n)
		dom.Append(parent, span)
	}
}

func (tb *treeBuilder) inlineChildren(el *html.Node, n ast.Node) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		tb.inline(el, c)
	}
}

// plainText flattens an inline subtree to its raw text, e.g. for img alt
// attributes.
func (tb *treeBuilder) plainText(n ast.Node) string {
	var buf bytes.Buffer
	var walk func(n ast.Node)
	walk = func(n ast.Node) {
		switch i := n.(type) {
		case *ast.Text:
			buf.Write(i.Segment.Value(tb.source))
		case *ast.String:
			buf.Write(i.Value)
		}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			walk(c)
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		walk(c)
	}
	return buf.String()
}

// annotate records the source line a block element originates from.
func (tb *treeBuilder) annotate(el *html.Node, n ast.Node) {
	start, ok := sourceStart(n)
	if !ok {
		return
	}
	line, err := tb.doc.LineAt(uint64(start))
	if err != nil {
		tracer().Errorf("markdown: block start %d outside document: %v", start, err)
		return
	}
	dom.SetSourceLine(el, line)
}

// sourceStart finds the starting source offset of a block node: its own
// first text segment, or that of its first descendent carrying one (lists
// and block quotes hold no segments themselves).
func sourceStart(n ast.Node) (int, bool) {
	if n.Type() == ast.TypeBlock {
		if lines := n.Lines(); lines != nil && lines.Len() > 0 {
			return lines.At(0).Start, true
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if start, ok := sourceStart(c); ok {
			return start, true
		}
	}
	return 0, false
}

package console

/*
BSD 3-Clause License

Copyright (c) Norbert Pillmayer

Please refer to the LICENSE file in the repository root.

*/

import (
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/npillmayer/uax/uax11"
	"golang.org/x/net/html"
	"golang.org/x/term"
)

// Config represents a set of configuration parameters for console output.
type Config struct {
	LineWidth int
	Context   *uax11.Context
}

// ConfigFromTerminal creates a configuration from the current terminal's
// properties (if stdout is interactive) and the user environment.
func ConfigFromTerminal() *Config {
	config := &Config{LineWidth: 80}
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			config.LineWidth = w
		}
	}
	config.Context = uax11.ContextFromEnvironment()
	return config
}

// FixedWidth writes rendered preview trees as ANSI-styled text for consoles
// with a fixed width font.
type FixedWidth struct {
	colors map[string]*color.Color // element tag ↦ display color
}

// NewFixedWidth creates a console formatter. colors maps element tags to
// the colors used for their text; it may cover just a subset of the tags
// occurring in the trees this formatter will handle. A nil map selects a
// default palette.
func NewFixedWidth(colors map[string]*color.Color) *FixedWidth {
	fw := &FixedWidth{colors: colors}
	if fw.colors == nil {
		fw.colors = makeDefaultPalette()
	}
	return fw
}

func makeDefaultPalette() map[string]*color.Color {
	return map[string]*color.Color{
		"h1":         color.New(color.Bold, color.Underline),
		"h2":         color.New(color.Bold),
		"h3":         color.New(color.Bold),
		"h4":         color.New(color.Bold),
		"h5":         color.New(color.Bold),
		"h6":         color.New(color.Bold),
		"em":         color.New(color.Italic),
		"strong":     color.New(color.Bold),
		"code":       color.New(color.FgYellow),
		"pre":        color.New(color.FgYellow),
		"a":          color.New(color.FgBlue, color.Underline),
		"blockquote": color.New(color.FgHiBlack),
	}
}

// Output formats a rendered tree to out. A nil config context defaults to
// uax11.LatinContext, a non-positive line width to 80 columns.
func (fw *FixedWidth) Output(root *html.Node, out io.Writer, config *Config) error {
	if root == nil || out == nil {
		return errors.New("illegal argument: nil")
	}
	if config == nil {
		config = &Config{}
	}
	ctx := config.Context
	if ctx == nil {
		ctx = uax11.LatinContext
	}
	width := config.LineWidth
	if width <= 0 {
		width = 80
	}
	p := &printer{fw: fw, out: out, width: width, context: ctx}
	p.block(root, "")
	return p.err
}

// Print outputs a rendered tree to stdout, with configuration derived from
// the terminal.
func (fw *FixedWidth) Print(root *html.Node) error {
	return fw.Output(root, os.Stdout, ConfigFromTerminal())
}

// --- Output driver ---------------------------------------------------------

type printer struct {
	fw      *FixedWidth
	out     io.Writer
	width   int
	context *uax11.Context
	err     error
}

func (p *printer) write(s string) {
	if p.err != nil || s == "" {
		return
	}
	_, p.err = io.WriteString(p.out, s)
}

func (p *printer) styled(s string, c *color.Color) {
	if p.err != nil || s == "" {
		return
	}
	if c == nil {
		p.write(s)
		return
	}
	_, p.err = c.Fprint(p.out, s)
}

var blockTags = map[string]bool{
	"article": true, "div": true, "p": true, "blockquote": true,
	"ul": true, "ol": true, "li": true, "pre": true, "hr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// block dispatches one block-level element.
func (p *printer) block(n *html.Node, indent string) {
	switch n.Data {
	case "article", "div":
		p.container(n, indent)
	case "blockquote":
		p.container(n, indent+"│ ")
	case "ul", "ol":
		p.list(n, indent)
	case "pre":
		p.preformatted(n, indent)
	case "hr":
		p.rule(indent)
	default: // p, headings, stray spans
		runs := p.inlineRuns(n, p.fw.colors[n.Data], nil)
		p.flow(runs, indent, indent)
	}
}

// container renders child blocks separated by blank lines.
func (p *printer) container(n *html.Node, indent string) {
	first := true
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if !first {
			p.write("\n")
		}
		first = false
		p.block(c, indent)
	}
}

func (p *printer) list(n *html.Node, indent string) {
	index := 1
	if n.Data == "ol" {
		for _, a := range n.Attr {
			if a.Key == "start" {
				if s, err := strconv.Atoi(a.Val); err == nil {
					index = s
				}
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != "li" {
			continue
		}
		prefix := "• "
		if n.Data == "ol" {
			prefix = strconv.Itoa(index) + ". "
			index++
		}
		p.listItem(c, indent, prefix)
	}
}

func (p *printer) listItem(li *html.Node, indent, prefix string) {
	hanging := indent + strings.Repeat(" ", stringWidth(prefix, p.context))
	var runs []run
	flushed := false
	flush := func() {
		if flushed {
			p.flow(runs, hanging, hanging)
		} else {
			p.flow(runs, indent+prefix, hanging)
		}
		flushed = true
		runs = nil
	}
	for c := li.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "ul" || c.Data == "ol") {
			flush()
			p.list(c, hanging)
		} else if c.Type == html.ElementNode && blockTags[c.Data] && c.Data != "p" {
			flush()
			p.block(c, hanging)
		} else {
			runs = p.inlineRuns(c, nil, runs)
		}
	}
	if len(runs) > 0 || !flushed {
		flush()
	}
}

func (p *printer) preformatted(n *html.Node, indent string) {
	c := p.fw.colors["pre"]
	text := plainText(n)
	text = strings.TrimRight(text, "\n")
	for _, line := range strings.Split(text, "\n") {
		p.write(indent + "    ")
		p.styled(line, c)
		p.write("\n")
	}
}

func (p *printer) rule(indent string) {
	w := p.width - p.visibleWidth(indent)
	if w > 40 {
		w = 40
	}
	if w < 1 {
		w = 1
	}
	p.write(indent + strings.Repeat("─", w) + "\n")
}

// --- Inline runs and line wrapping ------------------------------------------

// run is a maximal sequence of uniformly styled text.
type run struct {
	text  string
	color *color.Color
}

// inlineRuns flattens an inline subtree into styled runs. The innermost
// ancestor tag with a palette entry determines a run's color.
func (p *printer) inlineRuns(n *html.Node, active *color.Color, runs []run) []run {
	switch n.Type {
	case html.TextNode:
		// paragraphs reflow, so inner newlines become spaces
		return append(runs, run{strings.ReplaceAll(n.Data, "\n", " "), active})
	case html.ElementNode:
		if n.Data == "br" {
			return append(runs, run{" ", active})
		}
		if c, ok := p.fw.colors[n.Data]; ok {
			active = c
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		runs = p.inlineRuns(c, active, runs)
	}
	return runs
}

// flow prints runs as a wrapped paragraph: the first line opens with first,
// continuation lines with cont.
func (p *printer) flow(runs []run, first, cont string) {
	var sb strings.Builder
	for _, r := range runs {
		sb.WriteString(r.text)
	}
	text := sb.String()
	if strings.TrimSpace(text) == "" {
		p.write(first + "\n")
		return
	}
	breaks := wrapPoints(text, p.width-p.visibleWidth(cont), p.context)
	p.write(first)
	pos := 0
	bi := 0
	for _, r := range runs {
		runStart := pos
		runEnd := pos + len(r.text)
		segStart := runStart
		for bi < len(breaks) && breaks[bi] < runEnd {
			b := breaks[bi]
			if b > segStart {
				p.styled(strings.TrimRight(r.text[segStart-runStart:b-runStart], " "), r.color)
			}
			p.write("\n" + cont)
			segStart = b
			// a break consumes one following space, if any
			if segStart < runEnd && r.text[segStart-runStart] == ' ' {
				segStart++
			}
			bi++
		}
		if segStart < runEnd {
			p.styled(r.text[segStart-runStart:], r.color)
		}
		pos = runEnd
	}
	p.write("\n")
}

func (p *printer) visibleWidth(s string) int {
	return stringWidth(s, p.context)
}

// plainText flattens a subtree to its raw text content.
func plainText(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

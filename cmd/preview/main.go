/*
Command preview renders a document file as a text preview on the console.

	preview [-width n] [-fragment id] [-trace] file

The file's content type is determined from its extension; currently
Markdown and plain text are supported. With -fragment the source line of
an anchor in the rendered document is reported, which is handy for
checking fragment navigation.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

For details please refer to the LICENSE file.
*/
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/npillmayer/preview"
	"github.com/npillmayer/preview/console"
	"github.com/npillmayer/preview/dom"
	"github.com/npillmayer/preview/markdown"
	"github.com/npillmayer/preview/plaintext"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

func main() {
	width := flag.Int("width", 0, "line width (0 = terminal width)")
	fragment := flag.String("fragment", "", "report the source line of an anchor")
	trace := flag.Bool("trace", false, "enable debug tracing")
	flag.Parse()

	gtrace.CoreTracer = gologadapter.New()
	if *trace {
		gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: preview [-width n] [-fragment id] [-trace] file")
		os.Exit(2)
	}
	if err := run(flag.Arg(0), *width, *fragment); err != nil {
		fmt.Fprintln(os.Stderr, "preview:", err)
		os.Exit(1)
	}
}

func run(file string, width int, fragment string) error {
	content, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	params := preview.Params{
		Content:   content,
		OriginURI: preview.FileResource(file),
	}
	registry := preview.NewRegistry(markdown.New(), plaintext.New())
	handlers := registry.FindContribution(params.OriginURI)
	if len(handlers) == 0 {
		return preview.ErrNoHandler
	}
	handler := handlers[0]
	root, err := handler.RenderContent(params)
	if err != nil {
		return err
	}
	if fragment != "" {
		locator, ok := handler.(preview.FragmentLocator)
		if !ok {
			return fmt.Errorf("%s previews have no anchors", file)
		}
		el := locator.ElementForFragment(root, fragment)
		if el == nil {
			return fmt.Errorf("no anchor %q in %s", fragment, file)
		}
		if line, ok := dom.SourceLine(el); ok {
			fmt.Printf("#%s ⇒ %s, line %d\n", fragment, file, line)
		} else {
			fmt.Printf("#%s ⇒ %s, line unknown\n", fragment, file)
		}
		return nil
	}
	config := console.ConfigFromTerminal()
	if width > 0 {
		config.LineWidth = width
	}
	return console.NewFixedWidth(nil).Output(root, os.Stdout, config)
}

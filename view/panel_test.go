package view

import (
	"context"
	"testing"
	"time"

	"github.com/npillmayer/preview"
	"github.com/npillmayer/preview/dom"
	"golang.org/x/net/html"
)

// scriptedHandler lets tests control scoring and rendering per call.
type scriptedHandler struct {
	score  int
	render func(preview.Params) (*html.Node, error)
}

func (h *scriptedHandler) CanHandle(res preview.Resource) int {
	return h.score
}

func (h *scriptedHandler) RenderContent(params preview.Params) (*html.Node, error) {
	return h.render(params)
}

func (h *scriptedHandler) ElementForSourceLine(root *html.Node, line int) *html.Node {
	return dom.ElementForLine(root, line)
}

func (h *scriptedHandler) SourceLineForOffset(root *html.Node, offset uint64) (int, bool) {
	return dom.SourceLineForOffset(root, offset)
}

func markedTree(marker string, line int) *html.Node {
	el := dom.Element("div", dom.Text(marker))
	dom.SetAttr(el, "data-marker", marker)
	dom.SetSourceLine(el, line)
	return el
}

func receive(t *testing.T, ch chan interface{}) *Rendered {
	t.Helper()
	select {
	case m, ok := <-ch:
		if !ok {
			t.Fatalf("subscriber channel closed unexpectedly")
		}
		r, isRendered := m.(*Rendered)
		if !isRendered {
			t.Fatalf("unexpected message type %T", m)
		}
		return r
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for a render")
	}
	return nil
}

func expectSilence(t *testing.T, ch chan interface{}) {
	t.Helper()
	select {
	case m := <-ch:
		t.Fatalf("unexpected message %v", m)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestShowPublishesRender(t *testing.T) {
	h := &scriptedHandler{score: 5, render: func(p preview.Params) (*html.Node, error) {
		return markedTree("one", 1), nil
	}}
	panel := NewPanel(preview.NewRegistry(h))
	defer panel.Close()
	ch, ok := panel.Subscribe(context.Background())
	if !ok {
		t.Fatalf("Subscribe failed")
	}
	defer panel.Unsubscribe(ch)

	params := preview.Params{Content: []byte("hello"), OriginURI: preview.FileResource("a.txt")}
	if err := panel.Show(params); err != nil {
		t.Fatalf("Show failed: %v", err)
	}
	r := receive(t, ch)
	if r.Err != nil {
		t.Fatalf("render failed: %v", r.Err)
	}
	if marker, _ := dom.Attr(r.Root, "data-marker"); marker != "one" {
		t.Errorf("wrong tree published, marker=%q", marker)
	}
	if cur := panel.Current(); cur == nil || cur != r {
		t.Errorf("Current() should hold the published render")
	}
}

func TestShowRejectsInvalidParams(t *testing.T) {
	panel := NewPanel(preview.NewRegistry())
	defer panel.Close()
	if err := panel.Show(preview.Params{}); err != preview.ErrIllegalParams {
		t.Errorf("expected ErrIllegalParams, got %v", err)
	}
}

func TestShowReportsNoHandler(t *testing.T) {
	h := &scriptedHandler{score: 0}
	panel := NewPanel(preview.NewRegistry(h))
	defer panel.Close()
	params := preview.Params{Content: []byte("x"), OriginURI: preview.FileResource("a.bin")}
	if err := panel.Show(params); err != preview.ErrNoHandler {
		t.Errorf("expected ErrNoHandler, got %v", err)
	}
}

func TestRenderFailureIsSurfacedNotCached(t *testing.T) {
	h := &scriptedHandler{score: 5, render: func(p preview.Params) (*html.Node, error) {
		return nil, preview.PreviewError("renderer exploded")
	}}
	panel := NewPanel(preview.NewRegistry(h))
	defer panel.Close()
	ch, _ := panel.Subscribe(context.Background())
	defer panel.Unsubscribe(ch)

	params := preview.Params{Content: []byte("x"), OriginURI: preview.FileResource("a.txt")}
	if err := panel.Show(params); err != nil {
		t.Fatalf("Show failed: %v", err)
	}
	r := receive(t, ch)
	if r.Err == nil {
		t.Fatalf("expected a failed render")
	}
	if r.Root != nil {
		t.Errorf("failed render must not carry a tree")
	}
	if panel.Current() != nil {
		t.Errorf("a failed render must not become the current render")
	}
}

func TestStaleRenderIsDropped(t *testing.T) {
	gate := make(chan struct{})
	h := &scriptedHandler{score: 5}
	h.render = func(p preview.Params) (*html.Node, error) {
		if string(p.Content) == "slow" {
			<-gate
			return markedTree("slow", 1), nil
		}
		return markedTree("fast", 2), nil
	}
	panel := NewPanel(preview.NewRegistry(h))
	defer panel.Close()
	ch, _ := panel.Subscribe(context.Background())
	defer panel.Unsubscribe(ch)

	origin := preview.FileResource("a.txt")
	if err := panel.Show(preview.Params{Content: []byte("slow"), OriginURI: origin}); err != nil {
		t.Fatalf("Show(slow) failed: %v", err)
	}
	if err := panel.Show(preview.Params{Content: []byte("fast"), OriginURI: origin}); err != nil {
		t.Fatalf("Show(fast) failed: %v", err)
	}
	r := receive(t, ch)
	if marker, _ := dom.Attr(r.Root, "data-marker"); marker != "fast" {
		t.Fatalf("expected the fast render, got %q", marker)
	}
	close(gate) // let the stale render finish now
	expectSilence(t, ch)
	if cur := panel.Current(); cur == nil {
		t.Fatalf("no current render")
	} else if marker, _ := dom.Attr(cur.Root, "data-marker"); marker != "fast" {
		t.Errorf("stale render overwrote the current one: %q", marker)
	}
}

func TestLateRenderCannotFollowNewerPublication(t *testing.T) {
	gate := make(chan struct{})
	h := &scriptedHandler{score: 5}
	h.render = func(p preview.Params) (*html.Node, error) {
		if string(p.Content) == "slow" {
			<-gate
			return markedTree("slow", 1), nil
		}
		return markedTree(string(p.Content), 2), nil
	}
	panel := NewPanel(preview.NewRegistry(h))
	defer panel.Close()
	ch, _ := panel.Subscribe(context.Background())
	defer panel.Unsubscribe(ch)

	origin := preview.FileResource("a.txt")
	if err := panel.Show(preview.Params{Content: []byte("slow"), OriginURI: origin}); err != nil {
		t.Fatalf("Show(slow) failed: %v", err)
	}
	if err := panel.Show(preview.Params{Content: []byte("fast"), OriginURI: origin}); err != nil {
		t.Fatalf("Show(fast) failed: %v", err)
	}
	r := receive(t, ch)
	if marker, _ := dom.Attr(r.Root, "data-marker"); marker != "fast" {
		t.Fatalf("expected the fast render first, got %q", marker)
	}
	// the superseded render finishes only now, after the newer publication;
	// subscribers must never see it
	close(gate)
	expectSilence(t, ch)
	// and publishing must not have wedged the panel: a fresh Show still
	// goes through
	if err := panel.Show(preview.Params{Content: []byte("third"), OriginURI: origin}); err != nil {
		t.Fatalf("Show(third) failed: %v", err)
	}
	r = receive(t, ch)
	if marker, _ := dom.Attr(r.Root, "data-marker"); marker != "third" {
		t.Fatalf("expected the third render, got %q", marker)
	}
	if cur := panel.Current(); cur == nil {
		t.Fatalf("no current render")
	} else if marker, _ := dom.Attr(cur.Root, "data-marker"); marker != "third" {
		t.Errorf("current render is %q, want the latest", marker)
	}
}

func TestMappingForwarding(t *testing.T) {
	h := &scriptedHandler{score: 5, render: func(p preview.Params) (*html.Node, error) {
		return markedTree("m", 7), nil
	}}
	panel := NewPanel(preview.NewRegistry(h))
	defer panel.Close()
	ch, _ := panel.Subscribe(context.Background())
	defer panel.Unsubscribe(ch)

	params := preview.Params{Content: []byte("x"), OriginURI: preview.FileResource("a.txt")}
	if err := panel.Show(params); err != nil {
		t.Fatalf("Show failed: %v", err)
	}
	receive(t, ch)

	if el := panel.ElementForSourceLine(8); el == nil {
		t.Errorf("line mapping should find the annotated element")
	}
	if line, ok := panel.SourceLineForOffset(0); !ok || line != 7 {
		t.Errorf("offset mapping=%d/%v, want 7", line, ok)
	}
	// the scripted handler implements no fragment lookup
	if panel.ElementForFragment("anywhere") != nil {
		t.Errorf("fragment lookup must degrade to nil without the capability")
	}
}

func TestMappingWithoutCurrentRender(t *testing.T) {
	panel := NewPanel(preview.NewRegistry())
	defer panel.Close()
	if panel.ElementForSourceLine(1) != nil {
		t.Errorf("no render, no mapping")
	}
	if _, ok := panel.SourceLineForOffset(0); ok {
		t.Errorf("no render, no offset mapping")
	}
}

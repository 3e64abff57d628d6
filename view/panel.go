package view

/*
BSD 3-Clause License

Copyright (c) Norbert Pillmayer

Please refer to the LICENSE file in the repository root.

*/

import (
	"context"
	"sync"

	"github.com/guiguan/caster"
	"github.com/npillmayer/preview"
	"golang.org/x/net/html"
)

// Rendered is one completed render attempt, published to panel subscribers.
// Err is non-nil when the handler failed; Root is nil in that case.
type Rendered struct {
	Root     *html.Node
	Handler  preview.Handler
	Resource preview.Resource
	Err      error
}

// Panel drives previews for a host widget. It is safe for concurrent use.
type Panel struct {
	registry *preview.Registry
	cast     *caster.Caster

	mu         sync.Mutex
	generation uint64    // identifies the most recent Show call
	current    *Rendered // last successful, non-stale render
}

// NewPanel creates a panel over a registry of handlers.
func NewPanel(registry *preview.Registry) *Panel {
	return &Panel{
		registry: registry,
		cast:     caster.New(nil),
	}
}

// Subscribe returns a channel on which the panel publishes *Rendered values.
// The channel closes when ctx is done or the panel is closed. The second
// return value is false if the panel is already closed.
func (p *Panel) Subscribe(ctx context.Context) (chan interface{}, bool) {
	if ctx == nil {
		ctx = context.Background()
	}
	return p.cast.Sub(ctx, 1)
}

// Unsubscribe releases a channel obtained from Subscribe.
func (p *Panel) Unsubscribe(ch chan interface{}) {
	p.cast.Unsub(ch)
}

// Show starts rendering a resource's content in the background. It returns
// an error immediately for invalid parameters or when no registered handler
// applies; the render result itself (or its failure) arrives on subscriber
// channels. A Show supersedes all earlier ones: their results are discarded
// if they have not been published yet.
func (p *Panel) Show(params preview.Params) error {
	if !params.IsValid() {
		return preview.ErrIllegalParams
	}
	found := p.registry.FindContribution(params.OriginURI)
	if len(found) == 0 {
		return preview.ErrNoHandler
	}
	handler := found[0]
	p.mu.Lock()
	p.generation++
	gen := p.generation
	p.mu.Unlock()
	go p.render(handler, params, gen)
	return nil
}

// render runs one render attempt and publishes its outcome, unless a newer
// Show superseded this attempt while it was in flight.
func (p *Panel) render(handler preview.Handler, params preview.Params, gen uint64) {
	root, err := handler.RenderContent(params)
	r := &Rendered{
		Root:     root,
		Handler:  handler,
		Resource: params.OriginURI,
		Err:      err,
	}
	if err != nil {
		r.Root = nil
	}
	p.mu.Lock()
	if gen != p.generation {
		p.mu.Unlock()
		tracer().Debugf("view: dropping stale render of %v", params.OriginURI)
		return
	}
	if err == nil {
		p.current = r
	}
	// publish while still holding the lock: the generation check and the
	// publication must be atomic, or a superseded render could slip its
	// result out after the newer one's. TryPub never blocks.
	p.cast.TryPub(r)
	p.mu.Unlock()
}

// Current returns the most recent successful render, or nil if none exists
// yet.
func (p *Panel) Current() *Rendered {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// ElementForSourceLine forwards a source scroll position to the current
// handler's line mapping. It returns nil when there is no current render or
// its handler does not support line mapping.
func (p *Panel) ElementForSourceLine(line int) *html.Node {
	cur := p.Current()
	if cur == nil {
		return nil
	}
	locator, ok := cur.Handler.(preview.LineLocator)
	if !ok {
		return nil
	}
	return locator.ElementForSourceLine(cur.Root, line)
}

// SourceLineForOffset forwards a preview scroll position to the current
// handler's offset mapping. It returns false when there is no current
// render or its handler does not support offset mapping.
func (p *Panel) SourceLineForOffset(offset uint64) (int, bool) {
	cur := p.Current()
	if cur == nil {
		return 0, false
	}
	mapper, ok := cur.Handler.(preview.OffsetMapper)
	if !ok {
		return 0, false
	}
	return mapper.SourceLineForOffset(cur.Root, offset)
}

// ElementForFragment locates an anchor in the current render, for "jump to
// fragment on open". It returns nil when there is no current render or its
// handler does not support fragment lookup.
func (p *Panel) ElementForFragment(fragment string) *html.Node {
	cur := p.Current()
	if cur == nil {
		return nil
	}
	locator, ok := cur.Handler.(preview.FragmentLocator)
	if !ok {
		return nil
	}
	return locator.ElementForFragment(cur.Root, fragment)
}

// Close shuts down the panel's broadcaster. Subscriber channels close;
// renders still in flight are dropped silently.
func (p *Panel) Close() {
	p.cast.Close()
}

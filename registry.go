package preview

/*
BSD 3-Clause License

Copyright (c) Norbert Pillmayer

Please refer to the LICENSE file in the repository root.

*/

import "sort"

// Registry prioritizes an open set of preview handlers. The handler sequence
// is supplied once, at composition time, by an external contribution source;
// handlers are neither added nor removed afterwards. Queries are synchronous,
// side-effect-free functions over that fixed sequence, safe for concurrent
// use without locking.
type Registry struct {
	handlers []Handler
}

// NewRegistry creates a registry over the given handlers. Registration order
// is significant: it breaks ties between handlers claiming equal
// applicability.
func NewRegistry(handlers ...Handler) *Registry {
	rg := &Registry{handlers: make([]Handler, len(handlers))}
	copy(rg.handlers, handlers)
	return rg
}

// Size returns the number of registered handlers.
func (rg *Registry) Size() int {
	return len(rg.handlers)
}

// FindContribution returns the handlers applicable to a resource, most
// specific first. Every registered handler is scored with CanHandle;
// handlers scoring ≤ 0 are dropped and the rest are ordered by descending
// score. Equal scores keep their registration order (stable sort), making
// registration order a deterministic secondary preference.
//
// Scores are a snapshot taken during this call and are never cached:
// applicability may depend on content inspected at query time, which can
// change between calls.
func (rg *Registry) FindContribution(res Resource) []Handler {
	type candidate struct {
		handler Handler
		score   int
	}
	candidates := make([]candidate, 0, len(rg.handlers))
	for _, h := range rg.handlers {
		if score := applicability(h, res); score > 0 {
			candidates = append(candidates, candidate{handler: h, score: score})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	found := make([]Handler, len(candidates))
	for i, c := range candidates {
		found[i] = c.handler
	}
	return found
}

// CanHandle reports whether any registered handler applies to the resource.
// It is derived from FindContribution so the two can never drift apart.
func (rg *Registry) CanHandle(res Resource) bool {
	return len(rg.FindContribution(res)) > 0
}

// applicability scores one handler, containing any panic from a misbehaving
// contribution. A handler that panics during scoring is treated as
// non-applicable for this query; it must not prevent the remaining handlers
// from being found.
func applicability(h Handler, res Resource) (score int) {
	defer func() {
		if r := recover(); r != nil {
			T().Errorf("preview handler panicked scoring %v, excluding it: %v", res, r)
			score = 0
		}
	}()
	return h.CanHandle(res)
}

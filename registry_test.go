package preview

import (
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/net/html"
)

// stubHandler is a scriptable handler for registry tests.
type stubHandler struct {
	name  string
	score func(Resource) int
}

func (h *stubHandler) CanHandle(res Resource) int {
	return h.score(res)
}

func (h *stubHandler) RenderContent(params Params) (*html.Node, error) {
	return &html.Node{Type: html.ElementNode, Data: "div"}, nil
}

func fixedScore(n int) func(Resource) int {
	return func(Resource) int { return n }
}

func TestFindContributionFiltersAndRanks(t *testing.T) {
	low := &stubHandler{name: "low", score: fixedScore(1)}
	high := &stubHandler{name: "high", score: fixedScore(9)}
	never := &stubHandler{name: "never", score: fixedScore(0)}
	negative := &stubHandler{name: "negative", score: fixedScore(-4)}
	rg := NewRegistry(low, never, high, negative)

	found := rg.FindContribution(FileResource("doc.md"))
	if len(found) != 2 {
		t.Fatalf("expected 2 applicable handlers, got %d", len(found))
	}
	if found[0] != high || found[1] != low {
		t.Errorf("expected [high low], got [%s %s]",
			found[0].(*stubHandler).name, found[1].(*stubHandler).name)
	}
}

func TestFindContributionTieBreaksByRegistrationOrder(t *testing.T) {
	x := &stubHandler{name: "X", score: fixedScore(5)}
	y := &stubHandler{name: "Y", score: fixedScore(5)}
	z := &stubHandler{name: "Z", score: fixedScore(0)}
	rg := NewRegistry(x, y, z)

	res := FileResource("doc.md")
	found := rg.FindContribution(res)
	if len(found) != 2 {
		t.Fatalf("expected [X Y], got %d handlers", len(found))
	}
	if found[0] != x || found[1] != y {
		t.Errorf("equal scores must keep registration order, got [%s %s]",
			found[0].(*stubHandler).name, found[1].(*stubHandler).name)
	}
	if !rg.CanHandle(res) {
		t.Errorf("CanHandle must be true when FindContribution is non-empty")
	}
}

func TestFindContributionEmptyWhenNothingApplies(t *testing.T) {
	rg := NewRegistry(
		&stubHandler{name: "a", score: fixedScore(0)},
		&stubHandler{name: "b", score: fixedScore(-1)},
	)
	res := FileResource("doc.bin")
	if found := rg.FindContribution(res); len(found) != 0 {
		t.Errorf("expected no applicable handlers, got %d", len(found))
	}
	if rg.CanHandle(res) {
		t.Errorf("CanHandle must be false when no handler applies")
	}
}

func TestFindContributionSurvivesPanickingHandler(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	faulty := &stubHandler{name: "faulty", score: func(Resource) int {
		panic("scoring went sideways")
	}}
	sound := &stubHandler{name: "sound", score: fixedScore(3)}
	rg := NewRegistry(faulty, sound)

	found := rg.FindContribution(FileResource("doc.md"))
	if len(found) != 1 || found[0] != sound {
		t.Fatalf("expected the sound handler to survive a faulty sibling, got %d handlers", len(found))
	}
}

func TestFindContributionRecomputesScores(t *testing.T) {
	calls := 0
	counting := &stubHandler{name: "counting", score: func(Resource) int {
		calls++
		return 1
	}}
	rg := NewRegistry(counting)
	res := FileResource("doc.md")
	rg.FindContribution(res)
	rg.FindContribution(res)
	if calls != 2 {
		t.Errorf("scores must be recomputed per query, CanHandle ran %d times", calls)
	}
}

func TestEmptyRegistry(t *testing.T) {
	rg := NewRegistry()
	if rg.Size() != 0 {
		t.Errorf("expected size 0, got %d", rg.Size())
	}
	if rg.CanHandle(FileResource("doc.md")) {
		t.Errorf("empty registry cannot handle anything")
	}
}

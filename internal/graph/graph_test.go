package graph

import (
	"strings"
	"testing"

	"github.com/ymake-go/ymake/internal/graphbuild"
)

// TestRenderSimpleChain covers spec (ADDED) S8: a two-target, one-edge
// graph produces a two-line indented tree.
func TestRenderSimpleChain(t *testing.T) {
	g := graphbuild.NewGraph()
	all := g.LookupOrCreateTarget("", "all")
	build := g.LookupOrCreateTarget("", "build")
	all.AddDependency(build)

	out := Render(g)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), out)
	}
	if !strings.Contains(lines[0], "all") {
		t.Errorf("first line should render the root %q", lines[0])
	}
	if !strings.Contains(lines[1], "build") {
		t.Errorf("second line should render the dependency %q", lines[1])
	}
}

func TestRenderDiamondSharesSubtree(t *testing.T) {
	g := graphbuild.NewGraph()
	all := g.LookupOrCreateTarget("", "all")
	build := g.LookupOrCreateTarget("", "build")
	test := g.LookupOrCreateTarget("", "test")
	deps := g.LookupOrCreateTarget("", "deps")

	all.AddDependency(build)
	all.AddDependency(test)
	build.AddDependency(deps)
	test.AddDependency(deps)

	out := Render(g)
	if strings.Count(out, "deps") != 2 {
		t.Fatalf("expected deps to appear twice (once in full, once as a reference), got:\n%s", out)
	}
	if !strings.Contains(out, "(see above)") {
		t.Errorf("expected a (see above) reference for the shared dependency, got:\n%s", out)
	}
}

// TestRenderSelfCycleDoesNotPanic covers spec (ADDED) S8's requirement
// that rendering does not panic on a self-referential prerequisite.
func TestRenderSelfCycleDoesNotPanic(t *testing.T) {
	g := graphbuild.NewGraph()
	loop := g.LookupOrCreateTarget("", "loop")
	loop.AddDependency(loop)

	out := Render(g)
	if !strings.Contains(out, "(cycle)") {
		t.Errorf("expected a (cycle) marker, got:\n%s", out)
	}
}

func TestRenderEmptyGraph(t *testing.T) {
	g := graphbuild.NewGraph()
	out := Render(g)
	if out != "No targets found.\n" {
		t.Errorf("unexpected output for empty graph: %q", out)
	}
}

func TestRenderInferenceRuleLabel(t *testing.T) {
	g := graphbuild.NewGraph()
	rule := g.LookupOrCreateTarget("", ".c.obj")
	rule.InferenceRulePseudoTarget = true

	out := Render(g)
	if !strings.Contains(out, "(inference rule)") {
		t.Errorf("expected inference rule annotation, got:\n%s", out)
	}
}

func TestRenderMultipleScopesSortDeterministically(t *testing.T) {
	g := graphbuild.NewGraph()
	g.LookupOrCreateTarget("b", "all")
	g.LookupOrCreateTarget("a", "all")

	first := Render(g)
	second := Render(g)
	if first != second {
		t.Errorf("expected deterministic rendering across calls")
	}
	if strings.Index(first, "a: all") > strings.Index(first, "b: all") {
		t.Errorf("expected scope a before scope b, got:\n%s", first)
	}
}

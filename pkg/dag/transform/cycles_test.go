package transform

import (
	"testing"

	"github.com/matzehuels/flowcanvas/pkg/dag"
)

func build(ids []string, edges [][2]string) *dag.DAG {
	g := dag.New()
	for _, id := range ids {
		_ = g.AddNode(dag.Node{ID: id})
	}
	for _, e := range edges {
		_ = g.AddEdge(dag.Edge{From: e[0], To: e[1]})
	}
	return g
}

func TestBreakCycles_NoCycles(t *testing.T) {
	g := build([]string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}})

	removed := BreakCycles(g)

	if len(removed) != 0 {
		t.Errorf("BreakCycles() removed %d edges, want 0", len(removed))
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
}

func TestBreakCycles_RetryLoop(t *testing.T) {
	// init → work → check → work (retry)
	g := build(
		[]string{"init", "work", "check"},
		[][2]string{{"init", "work"}, {"work", "check"}, {"check", "work"}},
	)

	removed := BreakCycles(g)

	if len(removed) != 1 {
		t.Fatalf("BreakCycles() removed %d edges, want 1", len(removed))
	}
	if removed[0] != (dag.Edge{From: "check", To: "work"}) {
		t.Errorf("removed %v, want check→work", removed[0])
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
}

func TestBreakCycles_NoSources(t *testing.T) {
	// Every node is on the cycle; traversal starts at the first inserted node.
	g := build([]string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}})

	removed := BreakCycles(g)

	if len(removed) != 1 || removed[0] != (dag.Edge{From: "c", To: "a"}) {
		t.Errorf("BreakCycles() = %v, want [c→a]", removed)
	}
}

func TestBreakCycles_MultipleCycles(t *testing.T) {
	g := build(
		[]string{"a", "b", "c", "d"},
		[][2]string{{"a", "b"}, {"b", "a"}, {"c", "d"}, {"d", "c"}},
	)

	removed := BreakCycles(g)

	if len(removed) != 2 {
		t.Errorf("BreakCycles() removed %d edges, want 2", len(removed))
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
}

func TestBreakCycles_SelfLoop(t *testing.T) {
	g := build([]string{"a"}, [][2]string{{"a", "a"}})

	removed := BreakCycles(g)

	if len(removed) != 1 {
		t.Errorf("BreakCycles() removed %d edges, want 1", len(removed))
	}
	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0", g.EdgeCount())
	}
}

func TestBreakCycles_DiamondNoCycle(t *testing.T) {
	g := build(
		[]string{"a", "b", "c", "d"},
		[][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}},
	)

	if removed := BreakCycles(g); len(removed) != 0 {
		t.Errorf("BreakCycles() removed %d edges, want 0", len(removed))
	}
}

func TestBreakCycles_ResultIsAcyclic(t *testing.T) {
	g := build(
		[]string{"a", "b", "c", "d"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}, {"d", "b"}},
	)

	BreakCycles(g)

	if removed := BreakCycles(g); len(removed) != 0 {
		t.Errorf("graph still has cycles after BreakCycles(): %v", removed)
	}
}

func TestBreakCycles_EmptyGraph(t *testing.T) {
	if removed := BreakCycles(dag.New()); len(removed) != 0 {
		t.Errorf("BreakCycles() removed %d edges, want 0", len(removed))
	}
}

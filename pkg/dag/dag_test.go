package dag

import (
	"errors"
	"slices"
	"testing"
)

func TestAddNode(t *testing.T) {
	g := New()
	if err := g.AddNode(Node{ID: ""}); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("AddNode(empty) = %v, want %v", err, ErrInvalidNodeID)
	}
	if err := g.AddNode(Node{ID: "a"}); err != nil {
		t.Fatalf("AddNode(a) = %v", err)
	}
	if err := g.AddNode(Node{ID: "a"}); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("AddNode(a) twice = %v, want %v", err, ErrDuplicateNodeID)
	}
	if n, ok := g.Node("a"); !ok || n.Kind != NodeKindRegular {
		t.Errorf("Node(a) = %v, %v; want regular node", n, ok)
	}
}

func TestAddEdgeUnknownEndpoints(t *testing.T) {
	g := New()
	_ = g.AddNode(Node{ID: "a"})

	if err := g.AddEdge(Edge{From: "x", To: "a"}); !errors.Is(err, ErrUnknownSourceNode) {
		t.Errorf("AddEdge(x→a) = %v, want %v", err, ErrUnknownSourceNode)
	}
	if err := g.AddEdge(Edge{From: "a", To: "x"}); !errors.Is(err, ErrUnknownTargetNode) {
		t.Errorf("AddEdge(a→x) = %v, want %v", err, ErrUnknownTargetNode)
	}
}

func TestNodesInsertionOrder(t *testing.T) {
	g := New()
	ids := []string{"step-2", "step-0", "observer-0", "step-1"}
	for _, id := range ids {
		_ = g.AddNode(Node{ID: id})
	}

	for i := 0; i < 5; i++ {
		if got := NodeIDs(g.Nodes()); !slices.Equal(got, ids) {
			t.Fatalf("Nodes() = %v, want %v", got, ids)
		}
	}
}

func TestSetRowsKeepsOrderWithinRow(t *testing.T) {
	g := New()
	for _, id := range []string{"a", "b", "c", "d"} {
		_ = g.AddNode(Node{ID: id})
	}
	g.SetRows(map[string]int{"a": 0, "b": 1, "c": 0, "d": 1})

	if got := NodeIDs(g.NodesInRow(0)); !slices.Equal(got, []string{"a", "c"}) {
		t.Errorf("row 0 = %v, want [a c]", got)
	}
	if got := NodeIDs(g.NodesInRow(1)); !slices.Equal(got, []string{"b", "d"}) {
		t.Errorf("row 1 = %v, want [b d]", got)
	}
	if g.MaxRow() != 1 {
		t.Errorf("MaxRow() = %d, want 1", g.MaxRow())
	}
}

func TestRemoveEdge(t *testing.T) {
	g := New()
	_ = g.AddNode(Node{ID: "a"})
	_ = g.AddNode(Node{ID: "b"})
	_ = g.AddEdge(Edge{From: "a", To: "b"})
	_ = g.AddEdge(Edge{From: "a", To: "b"})

	g.RemoveEdge("a", "b")

	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0", g.EdgeCount())
	}
	if g.OutDegree("a") != 0 || g.InDegree("b") != 0 {
		t.Error("adjacency should be empty after RemoveEdge")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		rows    map[string]int
		edges   []Edge
		wantErr error
	}{
		{
			name:  "Layered",
			rows:  map[string]int{"a": 0, "b": 1, "c": 2},
			edges: []Edge{{From: "a", To: "b"}, {From: "b", To: "c"}},
		},
		{
			name:    "LongEdge",
			rows:    map[string]int{"a": 0, "b": 1, "c": 2},
			edges:   []Edge{{From: "a", To: "c"}},
			wantErr: ErrNonConsecutiveRows,
		},
		{
			name:    "UpwardEdge",
			rows:    map[string]int{"a": 0, "b": 1, "c": 0},
			edges:   []Edge{{From: "a", To: "b"}, {From: "b", To: "c"}, {From: "c", To: "b"}},
			wantErr: ErrNonConsecutiveRows,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			for _, id := range []string{"a", "b", "c"} {
				_ = g.AddNode(Node{ID: id, Row: tt.rows[id]})
			}
			for _, e := range tt.edges {
				_ = g.AddEdge(e)
			}
			if err := g.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDetectCycles(t *testing.T) {
	g := New()
	_ = g.AddNode(Node{ID: "a"})
	_ = g.AddNode(Node{ID: "b"})
	_ = g.AddEdge(Edge{From: "a", To: "b"})
	_ = g.AddEdge(Edge{From: "b", To: "a"})

	if err := g.detectCycles(); !errors.Is(err, ErrGraphHasCycle) {
		t.Errorf("detectCycles() = %v, want %v", err, ErrGraphHasCycle)
	}
}

func TestCountCrossings(t *testing.T) {
	g := New()
	for _, id := range []string{"a", "b", "c"} {
		_ = g.AddNode(Node{ID: id, Row: 0})
	}
	for _, id := range []string{"x", "y", "z"} {
		_ = g.AddNode(Node{ID: id, Row: 1})
	}
	_ = g.AddEdge(Edge{From: "a", To: "z"})
	_ = g.AddEdge(Edge{From: "b", To: "y"})
	_ = g.AddEdge(Edge{From: "c", To: "x"})

	orders := map[int][]string{0: {"a", "b", "c"}, 1: {"x", "y", "z"}}
	if got := CountCrossings(g, orders); got != 3 {
		t.Errorf("CountCrossings() = %d, want 3", got)
	}

	orders[1] = []string{"z", "y", "x"}
	if got := CountCrossings(g, orders); got != 0 {
		t.Errorf("CountCrossings() after reorder = %d, want 0", got)
	}
}

package transform

import (
	"fmt"

	"github.com/matzehuels/flowcanvas/pkg/dag"
)

// Subdivide replaces every edge that spans more than one row with a chain of
// [dag.NodeKindVirtual] nodes, one per intermediate row:
//
//	Before: step-0 (row 0) → step-3 (row 3)
//	After:  step-0 → step-0~step-3~1 → step-0~step-3~2 → step-3
//
// Virtual node IDs that collide with existing nodes get a numeric suffix. Subdivide returns the number of
// virtual nodes added.
func Subdivide(g *dag.DAG) int {
	gen := newIDGen(g.Nodes())
	added := 0

	for _, e := range g.Edges() {
		src, _ := g.Node(e.From)
		dst, _ := g.Node(e.To)
		if dst.Row <= src.Row+1 {
			continue
		}

		g.RemoveEdge(e.From, e.To)
		prevID := src.ID
		for row := src.Row + 1; row < dst.Row; row++ {
			id := gen.next(fmt.Sprintf("%s~%s~%d", src.ID, dst.ID, row))
			mustAdd(g.AddNode(dag.Node{ID: id, Row: row, Kind: dag.NodeKindVirtual}))
			mustAdd(g.AddEdge(dag.Edge{From: prevID, To: id}))
			prevID = id
			added++
		}
		mustAdd(g.AddEdge(dag.Edge{From: prevID, To: dst.ID}))
	}
	return added
}

// mustAdd panics on errors that can only come from a bug in this package:
// every endpoint passed to AddEdge was just created or read from g.
func mustAdd(err error) {
	if err != nil {
		panic(err)
	}
}

type idGen struct {
	used map[string]struct{}
}

func newIDGen(nodes []*dag.Node) *idGen {
	m := make(map[string]struct{}, len(nodes)*2)
	for _, n := range nodes {
		m[n.ID] = struct{}{}
	}
	return &idGen{used: m}
}

func (gen *idGen) next(base string) string {
	id := base
	for i := 1; ; i++ {
		if _, exists := gen.used[id]; !exists {
			gen.used[id] = struct{}{}
			return id
		}
		id = fmt.Sprintf("%s__%d", base, i)
	}
}

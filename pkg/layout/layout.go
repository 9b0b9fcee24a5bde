package layout

import (
	"slices"

	"github.com/matzehuels/flowcanvas/pkg/dag"
	"github.com/matzehuels/flowcanvas/pkg/dag/transform"
	"github.com/matzehuels/flowcanvas/pkg/flow"
)

// Result is a computed layout plus diagnostics.
type Result struct {
	// Nodes are copies of the input nodes, in input order, with new positions.
	Nodes []flow.Node
	// Ranks maps each node ID to its rank along the flow axis.
	Ranks map[string]int
	// BackEdges are the input edges ignored to break cycles.
	BackEdges []flow.Edge
	// Dropped are input edges with an unknown endpoint.
	Dropped []flow.Edge
	// Crossings is the number of edge crossings in the chosen ordering,
	// counted on the subdivided graph.
	Crossings int
	// VirtualNodes is the number of dummy nodes used for long edges.
	VirtualNodes int
	// Invalid is the [dag.DAG.Validate] error of the ranked, subdivided
	// graph. It is nil unless ranking left an edge that skips or climbs a
	// rank, or a cycle survived; positions are returned either way.
	Invalid error
}

// Layout returns copies of nodes with positions computed by Compute.
func Layout(nodes []flow.Node, edges []flow.Edge, opts Options) []flow.Node {
	return Compute(nodes, edges, opts).Nodes
}

// Compute lays out nodes along the edges between them. It never fails:
// edges with unknown endpoints are dropped and an invalid direction falls
// back to TB.
func Compute(nodes []flow.Node, edges []flow.Edge, opts Options) Result {
	opts = opts.withDefaults()
	if opts.Validate() != nil {
		opts.Direction = TopBottom
	}

	g := dag.New()
	for _, n := range nodes {
		// Empty and duplicate IDs are rejected; duplicates share the
		// first node's position below.
		_ = g.AddNode(dag.Node{ID: n.ID})
	}

	type pair struct{ from, to string }
	byPair := make(map[pair][]flow.Edge)
	var dropped []flow.Edge
	for _, e := range edges {
		if _, ok := g.Node(e.Source); !ok {
			dropped = append(dropped, e)
			continue
		}
		if _, ok := g.Node(e.Target); !ok {
			dropped = append(dropped, e)
			continue
		}
		p := pair{e.Source, e.Target}
		if _, seen := byPair[p]; !seen {
			_ = g.AddEdge(dag.Edge{From: e.Source, To: e.Target})
		}
		byPair[p] = append(byPair[p], e)
	}

	var backEdges []flow.Edge
	for _, e := range transform.BreakCycles(g) {
		backEdges = append(backEdges, byPair[pair{e.From, e.To}]...)
	}

	transform.AssignLayers(g)
	ranks := make(map[string]int, g.NodeCount())
	for _, n := range g.Nodes() {
		ranks[n.ID] = n.Row
	}

	virtual := transform.Subdivide(g)
	invalid := g.Validate()
	orders := opts.Orderer.OrderRows(g)

	return Result{
		Nodes:        place(nodes, g, orders, opts),
		Ranks:        ranks,
		BackEdges:    backEdges,
		Dropped:      dropped,
		Crossings:    dag.CountCrossings(g, orders),
		VirtualNodes: virtual,
		Invalid:      invalid,
	}
}

// place converts ranks and within-rank order into coordinates. Each rank is
// centred on the widest rank so ranks share a common axis.
func place(nodes []flow.Node, g *dag.DAG, orders map[int][]string, opts Options) []flow.Node {
	flowSize, crossSize := opts.NodeHeight, opts.NodeWidth
	if opts.Direction == LeftRight {
		flowSize, crossSize = opts.NodeWidth, opts.NodeHeight
	}
	flowStep := flowSize + opts.RankSep
	crossStep := crossSize + opts.NodeSep

	rows := make(map[int][]string, len(orders))
	widest := 0
	for r, ids := range orders {
		placed := slices.DeleteFunc(slices.Clone(ids), func(id string) bool {
			n, ok := g.Node(id)
			return !ok || n.IsVirtual()
		})
		rows[r] = placed
		widest = max(widest, len(placed))
	}

	positions := make(map[string]flow.Position, len(nodes))
	for r, ids := range rows {
		offset := float64(widest-len(ids)) * crossStep / 2
		for slot, id := range ids {
			along := float64(r) * flowStep
			across := offset + float64(slot)*crossStep
			if opts.Direction == LeftRight {
				positions[id] = flow.Position{X: along, Y: across}
			} else {
				positions[id] = flow.Position{X: across, Y: along}
			}
		}
	}

	out := slices.Clone(nodes)
	for i := range out {
		if p, ok := positions[out[i].ID]; ok {
			out[i].Position = p
		}
	}
	return out
}

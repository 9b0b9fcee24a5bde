package layout

import (
	"cmp"
	"maps"
	"slices"

	"github.com/matzehuels/flowcanvas/pkg/dag"
)

// Orderer decides the order of nodes within each row to reduce edge
// crossings. The result maps row index to node IDs, including virtual nodes.
type Orderer interface {
	OrderRows(g *dag.DAG) map[int][]string
}

// Barycentric orders rows with alternating barycenter sweeps.
//
// Even iterations sweep downwards, sorting each row by the mean position of
// its parents in the row above; odd iterations sweep upwards using children.
// Nodes without neighbours in the fixed row keep their slot, and ties keep
// the current order, so the initial order (insertion order) decides every
// tie. The ordering with the fewest crossings seen is returned.
type Barycentric struct {
	Iterations int
}

// OrderRows implements Orderer.
func (b Barycentric) OrderRows(g *dag.DAG) map[int][]string {
	rows := g.RowIDs()
	orders := make(map[int][]string, len(rows))
	for _, r := range rows {
		orders[r] = dag.NodeIDs(g.NodesInRow(r))
	}

	iterations := b.Iterations
	if iterations <= 0 {
		iterations = DefaultIterations
	}

	best := cloneOrders(orders)
	bestCrossings := dag.CountCrossings(g, orders)

	for i := 0; i < iterations && bestCrossings > 0; i++ {
		if i%2 == 0 {
			for k := 1; k < len(rows); k++ {
				sortByBarycenter(orders[rows[k]], orders[rows[k-1]], g.Parents)
			}
		} else {
			for k := len(rows) - 2; k >= 0; k-- {
				sortByBarycenter(orders[rows[k]], orders[rows[k+1]], g.Children)
			}
		}
		if c := dag.CountCrossings(g, orders); c < bestCrossings {
			best, bestCrossings = cloneOrders(orders), c
		}
	}
	return best
}

// sortByBarycenter reorders row in place. Only nodes with at least one
// neighbour in fixed move; they are sorted among the slots they occupy.
func sortByBarycenter(row, fixed []string, neighbours func(string) []string) {
	pos := dag.PosMap(fixed)

	type item struct {
		id     string
		center float64
	}
	var (
		slots []int
		items []item
	)
	for i, id := range row {
		sum, n := 0.0, 0
		for _, nb := range neighbours(id) {
			if p, ok := pos[nb]; ok {
				sum += float64(p)
				n++
			}
		}
		if n == 0 {
			continue
		}
		slots = append(slots, i)
		items = append(items, item{id: id, center: sum / float64(n)})
	}

	slices.SortStableFunc(items, func(a, b item) int { return cmp.Compare(a.center, b.center) })
	for k, slot := range slots {
		row[slot] = items[k].id
	}
}

func cloneOrders(orders map[int][]string) map[int][]string {
	out := maps.Clone(orders)
	for r, ids := range out {
		out[r] = slices.Clone(ids)
	}
	return out
}

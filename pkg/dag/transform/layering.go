package transform

import "github.com/matzehuels/flowcanvas/pkg/dag"

// AssignLayers assigns every node a row equal to its longest-path distance
// from a source node (a node with no incoming edges).
//
// The traversal is Kahn's algorithm: sources start at row 0, each processed
// node pushes its children to at least row+1, and a child is enqueued once all
// of its parents are done. Existing row assignments are overwritten.
//
// # Cycles
//
// AssignLayers assumes the graph is acyclic. Nodes on a cycle never reach
// in-degree zero and stay at row 0. Run [BreakCycles] first.
//
// # Performance
//
// O(V + E) time, O(V) space.
func AssignLayers(g *dag.DAG) {
	nodes := g.Nodes()
	inDegree := make(map[string]int, len(nodes))
	rows := make(map[string]int, len(nodes))
	queue := make([]string, 0, len(nodes))

	for _, n := range nodes {
		degree := g.InDegree(n.ID)
		inDegree[n.ID] = degree
		rows[n.ID] = 0
		if degree == 0 {
			queue = append(queue, n.ID)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, child := range g.Children(curr) {
			if row := rows[curr] + 1; row > rows[child] {
				rows[child] = row
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	g.SetRows(rows)
}

// Package transform prepares a [dag.DAG] for layered layout.
//
// The layout engine runs the transformations in this order:
//
//	removed := transform.BreakCycles(g) // drop back edges
//	transform.AssignLayers(g)           // longest-path ranks
//	transform.Subdivide(g)              // virtual nodes on long edges
//
// # Cycle Breaking
//
// Workflow graphs may contain loops (a step that transitions back to an
// earlier one). [BreakCycles] removes the back edges found by a depth-first
// traversal so that rank assignment terminates. The removed edges are
// returned; callers still draw them, they just do not influence ranks.
//
// # Layer Assignment
//
// [AssignLayers] places every node at its longest-path distance from a
// source, so for every remaining edge a→b, row(a) < row(b).
//
// # Edge Subdivision
//
// [Subdivide] breaks edges that span more than one row into chains of
// virtual nodes. The crossing heuristic only compares adjacent rows, and
// without placeholders a long edge would be invisible to it.
package transform

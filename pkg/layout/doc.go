// Package layout positions canvas nodes with a layered (Sugiyama-style)
// algorithm.
//
// # Pipeline
//
// [Compute] runs four passes over a [dag.DAG] built from the nodes and edges:
//
//  1. [transform.BreakCycles] drops back edges found by depth-first search.
//  2. [transform.AssignLayers] gives each node its longest-path rank.
//  3. [transform.Subdivide] splits edges spanning several ranks into virtual
//     nodes so crossing reduction sees them.
//  4. An [Orderer] (by default [Barycentric]) orders every rank.
//
// Ranks then map to the flow axis and order within a rank to the cross axis.
// Virtual nodes take part in ordering but never get a position.
//
// # Guarantees
//
// Output is deterministic for the same input. For every edge that is not a
// back edge, the source's flow coordinate is strictly less than the
// target's. Nodes of the same rank never overlap.
//
// Edges that reference unknown nodes are ignored rather than reported, since
// the layout must always succeed for an editor to show a broken graph.
//
// [dag.DAG]: github.com/matzehuels/flowcanvas/pkg/dag.DAG
// [transform.BreakCycles]: github.com/matzehuels/flowcanvas/pkg/dag/transform.BreakCycles
// [transform.AssignLayers]: github.com/matzehuels/flowcanvas/pkg/dag/transform.AssignLayers
// [transform.Subdivide]: github.com/matzehuels/flowcanvas/pkg/dag/transform.Subdivide
package layout

// Package dag provides the directed graph used by the layout engine.
//
// # Overview
//
// The layout engine positions workflow and pipeline nodes in ranks (rows)
// along a flow axis. This package holds the structure it works on: nodes
// carry a row assignment, edges connect nodes, and every query returns
// results in insertion order so that layouts are reproducible for the same
// input.
//
// # Basic Usage
//
// Create a new graph with [New], add nodes with [DAG.AddNode], and edges with
// [DAG.AddEdge]:
//
//	g := dag.New()
//	g.AddNode(dag.Node{ID: "step-0"})
//	g.AddNode(dag.Node{ID: "step-1"})
//	g.AddEdge(dag.Edge{From: "step-0", To: "step-1"})
//
// Query the graph structure with [DAG.Children], [DAG.Parents],
// [DAG.NodesInRow] and related methods. [DAG.Validate] verifies that the
// graph is layered (edges connect consecutive rows) and acyclic, which is the
// state the transform pipeline leaves it in.
//
// # Node Kinds
//
//   - [NodeKindRegular]: a node that corresponds to a graph node on the canvas
//   - [NodeKindVirtual]: a placeholder inserted on long edges so that crossing
//     reduction can see every rank an edge passes through
//
// # Edge Crossings
//
// [CountCrossings] and [CountLayerCrossings] use a Fenwick tree to count
// inversions in O(E log V) time. The ordering heuristic evaluates every sweep
// with them and keeps the best ordering found.
//
// # Concurrency
//
// DAG instances are not safe for concurrent use.
package dag

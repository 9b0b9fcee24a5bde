package flow

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/flowcanvas/pkg/definition"
	"github.com/matzehuels/flowcanvas/pkg/errors"
)

// =============================================================================
// Wire Types
// =============================================================================

type wireGraph struct {
	Nodes []wireNode `json:"nodes"`
	Edges []wireEdge `json:"edges"`
}

type wireNode struct {
	ID        string            `json:"id"`
	Kind      NodeKind          `json:"kind"`
	Label     string            `json:"label,omitempty"`
	StepIndex int               `json:"stepIndex"`
	Payload   definition.Record `json:"payload"`
	Position  Position          `json:"position"`
}

type wireEdge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label,omitempty"`
}

// MarshalJSON encodes the node with its payload as a plain object.
func (n Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(toWireNode(n))
}

// UnmarshalJSON decodes a node and wraps its payload in the variant for its kind.
func (n *Node) UnmarshalJSON(data []byte) error {
	var w wireNode
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*n = fromWireNode(w)
	return nil
}

// MarshalJSON encodes the edge with lower-case keys.
func (e Edge) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireEdge(e))
}

// UnmarshalJSON decodes an edge.
func (e *Edge) UnmarshalJSON(data []byte) error {
	var w wireEdge
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*e = Edge(w)
	return nil
}

// MarshalJSON encodes the graph, writing empty lists rather than null.
func (g Graph) MarshalJSON() ([]byte, error) {
	out := wireGraph{
		Nodes: make([]wireNode, len(g.Nodes)),
		Edges: make([]wireEdge, len(g.Edges)),
	}
	for i, n := range g.Nodes {
		out.Nodes[i] = toWireNode(n)
	}
	for i, e := range g.Edges {
		out.Edges[i] = wireEdge(e)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a graph.
func (g *Graph) UnmarshalJSON(data []byte) error {
	var w wireGraph
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	g.Nodes = make([]Node, len(w.Nodes))
	for i, n := range w.Nodes {
		g.Nodes[i] = fromWireNode(n)
	}
	g.Edges = make([]Edge, len(w.Edges))
	for i, e := range w.Edges {
		g.Edges[i] = Edge(e)
	}
	return nil
}

func toWireNode(n Node) wireNode {
	return wireNode{
		ID:        n.ID,
		Kind:      n.Kind,
		Label:     n.Label,
		StepIndex: n.StepIndex,
		Payload:   n.Record(),
		Position:  n.Position,
	}
}

func fromWireNode(w wireNode) Node {
	return Node{
		ID:        w.ID,
		Kind:      w.Kind,
		Label:     w.Label,
		StepIndex: w.StepIndex,
		Payload:   PayloadFor(w.Kind, w.Payload),
		Position:  w.Position,
	}
}

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph converts a graph to indented JSON bytes.
func MarshalGraph(g Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraph writes a graph as indented JSON to w.
func WriteGraph(g Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteGraphFile writes a graph to a JSON file with 0644 permissions.
func WriteGraphFile(g Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGraph(g, f)
}

// ReadGraph decodes and validates a JSON graph.
func ReadGraph(r io.Reader) (Graph, error) {
	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return Graph{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode graph")
	}
	if err := g.Validate(); err != nil {
		return Graph{}, err
	}
	return g, nil
}

// ReadGraphFile reads and validates a JSON graph file.
func ReadGraphFile(path string) (Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Graph{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "graph %s", path)
		}
		return Graph{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	g, err := ReadGraph(f)
	if err != nil {
		return Graph{}, fmt.Errorf("read %s: %w", path, err)
	}
	return g, nil
}

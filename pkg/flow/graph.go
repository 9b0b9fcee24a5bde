package flow

import (
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/flowcanvas/pkg/definition"
	"github.com/matzehuels/flowcanvas/pkg/errors"
)

// ImplicitMarker appears in the ID of every edge synthesized from entry order
// rather than declared by the definition author.
const ImplicitMarker = "implicit"

// Position is a node's top-left corner on the canvas.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is one canvas node.
type Node struct {
	ID    string
	Kind  NodeKind
	Label string
	// StepIndex is the node's position in its source list. It survives any
	// reordering of the node slice and is the sort key on reconstruction.
	StepIndex int
	Payload   Payload
	Position  Position
}

// Record returns the payload as a plain record, never nil.
func (n Node) Record() definition.Record {
	if n.Payload == nil {
		return definition.Record{}
	}
	return n.Payload.Record()
}

// Edge is a directed connection between two nodes.
type Edge struct {
	ID     string
	Source string
	Target string
	Label  string
}

// IsImplicit reports whether the edge was synthesized from entry order.
func (e Edge) IsImplicit() bool { return strings.Contains(e.ID, ImplicitMarker) }

// NewEdge creates an edge for a connection drawn by the user. Its ID is
// random so it cannot collide with generated IDs.
func NewEdge(source, target, label string) Edge {
	return Edge{
		ID:     "edge-" + uuid.NewString(),
		Source: source,
		Target: target,
		Label:  label,
	}
}

// Graph is the canvas content.
type Graph struct {
	Nodes []Node
	Edges []Edge
}

// Node returns the node with the given ID.
func (g Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Positions returns every node's position keyed by ID.
func (g Graph) Positions() map[string]Position {
	m := make(map[string]Position, len(g.Nodes))
	for _, n := range g.Nodes {
		m[n.ID] = n.Position
	}
	return m
}

// Validate checks that node IDs are non-empty and unique, kinds are known,
// edge IDs are unique, and every edge endpoint exists.
func (g Graph) Validate() error {
	nodes := make(map[string]struct{}, len(g.Nodes))
	for i, n := range g.Nodes {
		if n.ID == "" {
			return errors.New(errors.ErrCodeInvalidGraph, "node %d has no id", i)
		}
		if _, dup := nodes[n.ID]; dup {
			return errors.New(errors.ErrCodeInvalidGraph, "duplicate node id %q", n.ID)
		}
		if !n.Kind.Valid() {
			return errors.New(errors.ErrCodeInvalidGraph, "node %q has unknown kind %q", n.ID, n.Kind)
		}
		nodes[n.ID] = struct{}{}
	}

	edges := make(map[string]struct{}, len(g.Edges))
	for _, e := range g.Edges {
		if _, dup := edges[e.ID]; dup {
			return errors.New(errors.ErrCodeInvalidGraph, "duplicate edge id %q", e.ID)
		}
		edges[e.ID] = struct{}{}
		if _, ok := nodes[e.Source]; !ok {
			return errors.New(errors.ErrCodeInvalidGraph, "edge %q: unknown source %q", e.ID, e.Source)
		}
		if _, ok := nodes[e.Target]; !ok {
			return errors.New(errors.ErrCodeInvalidGraph, "edge %q: unknown target %q", e.ID, e.Target)
		}
	}
	return nil
}

// Package canvas stores and restores manual node layouts.
//
// A canvas blob is a JSON object mapping node IDs to {x, y}. It is a
// best-effort cache with no version: anything that does not decode cleanly is
// treated as if no blob had been saved, and a blob is only applied when it
// covers every node of the graph.
package canvas

import (
	"encoding/json"
	"math"

	"github.com/matzehuels/flowcanvas/pkg/flow"
)

// Blob maps node IDs to positions.
type Blob map[string]flow.Position

// FromNodes captures the current position of every node.
func FromNodes(nodes []flow.Node) Blob {
	b := make(Blob, len(nodes))
	for _, n := range nodes {
		b[n.ID] = n.Position
	}
	return b
}

// Marshal serializes the blob. Keys are written in sorted order.
func (b Blob) Marshal() ([]byte, error) {
	if b == nil {
		b = Blob{}
	}
	return json.Marshal(map[string]flow.Position(b))
}

type entry struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

// Parse decodes a blob. ok is false for empty input, malformed JSON, or a
// value that is not an object. Entries without numeric x and y are left out,
// which makes Covers fail for their nodes.
func Parse(data []byte) (b Blob, ok bool) {
	if len(data) == 0 {
		return nil, false
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return nil, false
	}
	b = make(Blob, len(raw))
	for id, msg := range raw {
		var e entry
		if err := json.Unmarshal(msg, &e); err != nil || e.X == nil || e.Y == nil {
			continue
		}
		if math.IsNaN(*e.X) || math.IsNaN(*e.Y) || math.IsInf(*e.X, 0) || math.IsInf(*e.Y, 0) {
			continue
		}
		b[id] = flow.Position{X: *e.X, Y: *e.Y}
	}
	return b, true
}

// Covers reports whether the blob has a position for every node.
func (b Blob) Covers(nodes []flow.Node) bool {
	for _, n := range nodes {
		if _, ok := b[n.ID]; !ok {
			return false
		}
	}
	return true
}

// Missing returns the IDs of nodes the blob has no position for.
func (b Blob) Missing(nodes []flow.Node) []string {
	var missing []string
	for _, n := range nodes {
		if _, ok := b[n.ID]; !ok {
			missing = append(missing, n.ID)
		}
	}
	return missing
}

// Apply sets each node's position from the blob. Nodes without an entry are
// left unchanged; callers check Covers first.
func (b Blob) Apply(nodes []flow.Node) {
	for i := range nodes {
		if p, ok := b[nodes[i].ID]; ok {
			nodes[i].Position = p
		}
	}
}

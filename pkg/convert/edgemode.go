package convert

import "github.com/matzehuels/flowcanvas/pkg/definition"

// EdgeMode is how a workflow's step edges are derived. A definition uses
// exactly one mode; the two are never mixed.
type EdgeMode int

const (
	// ImplicitSequential connects every step to the next one. It applies
	// when no step has a transitions key.
	ImplicitSequential EdgeMode = iota
	// ExplicitTransitions draws one edge per resolvable transition. It
	// applies as soon as any step has a transitions key, even an empty one.
	ExplicitTransitions
)

func (m EdgeMode) String() string {
	switch m {
	case ImplicitSequential:
		return "implicit"
	case ExplicitTransitions:
		return "explicit"
	}
	return "unknown"
}

// EdgeModeOf returns the edge mode of a workflow.
func EdgeModeOf(w *definition.Workflow) EdgeMode {
	if w.HasExplicitTransitions() {
		return ExplicitTransitions
	}
	return ImplicitSequential
}

package definition

import (
	"github.com/matzehuels/flowcanvas/pkg/errors"
)

// Type tags the two definition shapes.
type Type string

const (
	TypeWorkflow Type = "workflow"
	TypePipeline Type = "pipeline"
)

// Top-level keys of a definition document.
const (
	keyType          = "type"
	keySteps         = "steps"
	keyObservers     = "observers"
	keyTriggers      = "triggers"
	keyExitCondition = "exit_condition"
)

// Definition is either a *Workflow or a *Pipeline.
type Definition interface {
	Type() Type
	definition()
}

// Workflow is a step state-machine definition.
type Workflow struct {
	Steps     []Record
	Observers []Record
	Triggers  Triggers
	// ExitCondition is opaque; nil means the workflow has none.
	ExitCondition any
}

// Type implements Definition.
func (*Workflow) Type() Type { return TypeWorkflow }
func (*Workflow) definition() {}

// HasExplicitTransitions reports whether any step carries a transitions key.
func (w *Workflow) HasExplicitTransitions() bool {
	for _, s := range w.Steps {
		if s.Has(FieldTransitions) {
			return true
		}
	}
	return false
}

// Pipeline is a linear list of stages.
type Pipeline struct {
	Steps []Record
}

// Type implements Definition.
func (*Pipeline) Type() Type { return TypePipeline }
func (*Pipeline) definition() {}

// detectType picks the shape of an untyped document. An explicit type tag
// wins; otherwise any workflow-only section makes it a workflow, and a
// document with steps but none of those sections is a pipeline.
func detectType(tag string, has func(key string) bool) (Type, error) {
	switch Type(tag) {
	case TypePipeline:
		return TypePipeline, nil
	case TypeWorkflow:
		return TypeWorkflow, nil
	case "":
	default:
		return "", errors.New(errors.ErrCodeInvalidDefinition, "unknown definition type %q", tag)
	}

	if has(keyObservers) || has(keyTriggers) || has(keyExitCondition) {
		return TypeWorkflow, nil
	}
	if has(keySteps) {
		return TypePipeline, nil
	}
	return "", errors.New(errors.ErrCodeInvalidDefinition, "definition has neither steps nor workflow sections")
}

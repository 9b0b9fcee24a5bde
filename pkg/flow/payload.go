package flow

import (
	"github.com/matzehuels/flowcanvas/pkg/definition"
)

// Payload is the data a node carries from its source entry.
// The set of implementations is closed.
type Payload interface {
	// Record returns the payload as a plain record, as exposed on the wire.
	Record() definition.Record
	payload()
}

// StepPayload is a workflow step.
type StepPayload struct{ Step definition.Record }

// ObserverPayload is a workflow observer.
type ObserverPayload struct{ Observer definition.Record }

// TriggerPayload is every action bound to one event.
type TriggerPayload struct {
	Event   string
	Actions any
}

// ExitConditionPayload is a workflow's exit condition.
type ExitConditionPayload struct{ Value any }

// StagePayload is a pipeline stage.
type StagePayload struct{ Stage definition.Record }

// RecordPayload carries data for kinds without a definition section
// (variables, rules).
type RecordPayload struct{ Data definition.Record }

// Wire keys of the non-record payloads.
const (
	payloadKeyName    = "name"
	payloadKeyActions = "actions"
	payloadKeyValue   = "value"
)

func (p StepPayload) Record() definition.Record     { return orEmpty(p.Step) }
func (p ObserverPayload) Record() definition.Record { return orEmpty(p.Observer) }
func (p StagePayload) Record() definition.Record    { return orEmpty(p.Stage) }
func (p RecordPayload) Record() definition.Record   { return orEmpty(p.Data) }

func (p TriggerPayload) Record() definition.Record {
	return definition.Record{payloadKeyName: p.Event, payloadKeyActions: p.Actions}
}

func (p ExitConditionPayload) Record() definition.Record {
	return definition.Record{payloadKeyValue: p.Value}
}

func (StepPayload) payload()          {}
func (ObserverPayload) payload()      {}
func (TriggerPayload) payload()       {}
func (ExitConditionPayload) payload() {}
func (StagePayload) payload()         {}
func (RecordPayload) payload()        {}

// PayloadFor wraps a wire record in the variant that matches kind.
func PayloadFor(kind NodeKind, rec definition.Record) Payload {
	switch {
	case kind == KindStep:
		return StepPayload{Step: rec}
	case kind == KindObserver:
		return ObserverPayload{Observer: rec}
	case kind == KindTriggerGroup:
		name, _ := rec[payloadKeyName].(string)
		return TriggerPayload{Event: name, Actions: rec[payloadKeyActions]}
	case kind == KindExitCondition:
		return ExitConditionPayload{Value: rec[payloadKeyValue]}
	case kind.IsStage():
		return StagePayload{Stage: rec}
	}
	return RecordPayload{Data: rec}
}

func orEmpty(r definition.Record) definition.Record {
	if r == nil {
		return definition.Record{}
	}
	return r
}

package convert

import (
	"cmp"
	"slices"
	"time"

	"github.com/matzehuels/flowcanvas/pkg/canvas"
	"github.com/matzehuels/flowcanvas/pkg/definition"
	"github.com/matzehuels/flowcanvas/pkg/errors"
	"github.com/matzehuels/flowcanvas/pkg/flow"
	"github.com/matzehuels/flowcanvas/pkg/observability"
)

// Result is a reconstructed definition plus the canvas blob holding every
// node's current position.
type Result struct {
	Definition definition.Definition
	Canvas     []byte
}

// ToDefinition rebuilds a definition from a possibly edited graph.
//
// In pipeline mode every node becomes a stage, in StepIndex order. In
// workflow mode nodes are partitioned by kind; each step's transitions are
// rebuilt from its outgoing edges to other steps, and removed when it has
// none. Variable and rule nodes have no definition section and are skipped.
func (c *Converter) ToDefinition(nodes []flow.Node, edges []flow.Edge, isPipeline bool) (Result, error) {
	start := time.Now()

	var (
		def   definition.Definition
		shape = definition.TypeWorkflow
	)
	if isPipeline {
		shape = definition.TypePipeline
		def = pipelineDefinition(nodes)
	} else {
		def = c.workflowDefinition(nodes, edges)
	}

	blob, err := canvas.FromNodes(nodes).Marshal()
	if err != nil {
		err = errors.Wrap(errors.ErrCodeInternal, err, "serialize canvas")
	}
	observability.Convert().OnToDefinition(string(shape), len(nodes), len(edges), time.Since(start), err)
	if err != nil {
		return Result{}, err
	}
	return Result{Definition: def, Canvas: blob}, nil
}

func pipelineDefinition(nodes []flow.Node) *definition.Pipeline {
	sorted := byStepIndex(nodes)
	steps := make([]definition.Record, len(sorted))
	for i, n := range sorted {
		steps[i] = n.Record().Clone()
	}
	return &definition.Pipeline{Steps: steps}
}

func (c *Converter) workflowDefinition(nodes []flow.Node, edges []flow.Edge) *definition.Workflow {
	var steps, observers, triggers, exits []flow.Node
	for _, n := range nodes {
		switch n.Kind {
		case flow.KindStep:
			steps = append(steps, n)
		case flow.KindObserver:
			observers = append(observers, n)
		case flow.KindTriggerGroup:
			triggers = append(triggers, n)
		case flow.KindExitCondition:
			exits = append(exits, n)
		default:
			c.logger.Debug("node has no place in a workflow", "node", n.ID, "kind", n.Kind)
		}
	}

	w := &definition.Workflow{}

	stepByID := make(map[string]flow.Node, len(steps))
	for _, n := range steps {
		stepByID[n.ID] = n
	}
	outgoing := make(map[string][]definition.Transition, len(steps))
	for _, e := range edges {
		if _, ok := stepByID[e.Source]; !ok {
			continue
		}
		target, ok := stepByID[e.Target]
		if !ok {
			c.logger.Debug("ignoring edge to non-step node", "edge", e.ID, "target", e.Target)
			continue
		}
		outgoing[e.Source] = append(outgoing[e.Source], definition.Transition{
			To:   target.Record().Name(),
			When: e.Label,
		})
	}

	for _, n := range byStepIndex(steps) {
		rec := n.Record().Clone()
		rec.SetTransitions(outgoing[n.ID])
		w.Steps = append(w.Steps, rec)
	}
	for _, n := range byStepIndex(observers) {
		w.Observers = append(w.Observers, n.Record().Clone())
	}
	for _, n := range triggers {
		w.Triggers = setTrigger(w.Triggers, triggerOf(n))
	}
	if len(exits) == 1 {
		w.ExitCondition = exitValue(exits[0])
	} else if len(exits) > 1 {
		c.logger.Debug("multiple exit conditions, omitting", "count", len(exits))
	}
	return w
}

func triggerOf(n flow.Node) definition.Trigger {
	if p, ok := n.Payload.(flow.TriggerPayload); ok {
		return definition.Trigger{Event: p.Event, Actions: p.Actions}
	}
	rec := n.Record()
	return definition.Trigger{Event: rec.Name(), Actions: rec["actions"]}
}

// setTrigger appends t, or replaces the actions of an earlier trigger for the
// same event so the result stays a valid mapping.
func setTrigger(ts definition.Triggers, t definition.Trigger) definition.Triggers {
	for i := range ts {
		if ts[i].Event == t.Event {
			ts[i].Actions = t.Actions
			return ts
		}
	}
	return append(ts, t)
}

func exitValue(n flow.Node) any {
	if p, ok := n.Payload.(flow.ExitConditionPayload); ok {
		return p.Value
	}
	return n.Record()["value"]
}

// byStepIndex returns a copy of nodes sorted by StepIndex. Ties keep their
// input order.
func byStepIndex(nodes []flow.Node) []flow.Node {
	sorted := slices.Clone(nodes)
	slices.SortStableFunc(sorted, func(a, b flow.Node) int { return cmp.Compare(a.StepIndex, b.StepIndex) })
	return sorted
}

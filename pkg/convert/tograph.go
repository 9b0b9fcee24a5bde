package convert

import (
	"fmt"
	"time"

	"github.com/matzehuels/flowcanvas/pkg/canvas"
	"github.com/matzehuels/flowcanvas/pkg/definition"
	"github.com/matzehuels/flowcanvas/pkg/errors"
	"github.com/matzehuels/flowcanvas/pkg/flow"
	"github.com/matzehuels/flowcanvas/pkg/layout"
	"github.com/matzehuels/flowcanvas/pkg/observability"
)

// Stage fields that decide a pipeline node's kind, in precedence order.
const (
	stageExec              = "exec"
	stagePrompt            = "prompt"
	stageMCP               = "mcp"
	stageSpawnSession      = "spawn-session"
	stageSpawnSessionSnake = "spawn_session"
	stageApproval          = "approval"
)

// ToGraphValue converts an already-decoded definition value. Values that are
// recognizable as neither shape fail with INVALID_DEFINITION.
func (c *Converter) ToGraphValue(v any, canvasBlob []byte) (flow.Graph, error) {
	def, err := definition.FromValue(v)
	if err != nil {
		return flow.Graph{}, err
	}
	return c.ToGraph(def, canvasBlob)
}

// ToGraph converts a definition into a graph and positions its nodes.
//
// canvasBlob is a previously saved canvas. It is used only when it parses
// and has an entry for every node produced; otherwise the whole graph is
// laid out automatically and the blob is ignored.
func (c *Converter) ToGraph(def definition.Definition, canvasBlob []byte) (flow.Graph, error) {
	start := time.Now()

	var (
		g   flow.Graph
		err error
	)
	switch d := def.(type) {
	case *definition.Workflow:
		if d == nil {
			err = errors.New(errors.ErrCodeInvalidDefinition, "nil workflow")
			break
		}
		g = c.workflowGraph(d)
	case *definition.Pipeline:
		if d == nil {
			err = errors.New(errors.ErrCodeInvalidDefinition, "nil pipeline")
			break
		}
		g = pipelineGraph(d)
	default:
		err = errors.New(errors.ErrCodeInvalidDefinition, "unrecognized definition %T", def)
	}

	shape := "unknown"
	if def != nil && err == nil {
		shape = string(def.Type())
	}
	if err == nil {
		c.position(&g, canvasBlob)
	}
	observability.Convert().OnToGraph(shape, len(g.Nodes), len(g.Edges), time.Since(start), err)
	if err != nil {
		return flow.Graph{}, err
	}
	return g, nil
}

func (c *Converter) workflowGraph(w *definition.Workflow) flow.Graph {
	size := len(w.Steps) + len(w.Observers) + len(w.Triggers) + 1
	nodes := make([]flow.Node, 0, size)

	for i, s := range w.Steps {
		id := flow.NodeID(flow.KindStep, i)
		nodes = append(nodes, flow.Node{
			ID:        id,
			Kind:      flow.KindStep,
			Label:     nameOr(s, id),
			StepIndex: i,
			Payload:   flow.StepPayload{Step: s.Clone()},
		})
	}
	for i, o := range w.Observers {
		id := flow.NodeID(flow.KindObserver, i)
		nodes = append(nodes, flow.Node{
			ID:        id,
			Kind:      flow.KindObserver,
			Label:     nameOr(o, id),
			StepIndex: i,
			Payload:   flow.ObserverPayload{Observer: o.Clone()},
		})
	}
	for i, t := range w.Triggers {
		nodes = append(nodes, flow.Node{
			ID:        flow.NodeID(flow.KindTriggerGroup, i),
			Kind:      flow.KindTriggerGroup,
			Label:     t.Event,
			StepIndex: i,
			Payload:   flow.TriggerPayload{Event: t.Event, Actions: t.Actions},
		})
	}
	if w.ExitCondition != nil {
		nodes = append(nodes, flow.Node{
			ID:      flow.NodeID(flow.KindExitCondition, 0),
			Kind:    flow.KindExitCondition,
			Label:   "exit condition",
			Payload: flow.ExitConditionPayload{Value: w.ExitCondition},
		})
	}

	var edges []flow.Edge
	switch EdgeModeOf(w) {
	case ExplicitTransitions:
		edges = c.explicitEdges(w.Steps)
	case ImplicitSequential:
		edges = chain(flow.KindStep, len(w.Steps))
	}
	return flow.Graph{Nodes: nodes, Edges: edges}
}

// explicitEdges draws one edge per transition whose target name matches a
// step. Duplicate names resolve to the first step carrying the name.
func (c *Converter) explicitEdges(steps []definition.Record) []flow.Edge {
	byName := make(map[string]int, len(steps))
	for i, s := range steps {
		if name := s.Name(); name != "" {
			if _, dup := byName[name]; !dup {
				byName[name] = i
			}
		}
	}

	var edges []flow.Edge
	for i, s := range steps {
		transitions, _ := s.Transitions()
		source := flow.NodeID(flow.KindStep, i)
		for k, t := range transitions {
			j, ok := byName[t.To]
			if !ok {
				c.logger.Debug("dropping unresolved transition", "step", source, "to", t.To)
				continue
			}
			target := flow.NodeID(flow.KindStep, j)
			edges = append(edges, flow.Edge{
				ID:     fmt.Sprintf("edge-%s-%s-%d", source, target, k),
				Source: source,
				Target: target,
				Label:  t.When,
			})
		}
	}
	return edges
}

// chain connects n nodes of a kind in order with implicit edges.
func chain(kind flow.NodeKind, n int) []flow.Edge {
	if n < 2 {
		return nil
	}
	edges := make([]flow.Edge, 0, n-1)
	for i := 0; i+1 < n; i++ {
		source, target := flow.NodeID(kind, i), flow.NodeID(kind, i+1)
		edges = append(edges, flow.Edge{
			ID:     fmt.Sprintf("edge-%s-%s-%s", flow.ImplicitMarker, source, target),
			Source: source,
			Target: target,
		})
	}
	return edges
}

func pipelineGraph(p *definition.Pipeline) flow.Graph {
	nodes := make([]flow.Node, len(p.Steps))
	for i, s := range p.Steps {
		kind := StageKind(s)
		nodes[i] = flow.Node{
			ID:        flow.NodeID(kind, i),
			Kind:      kind,
			Label:     stageLabel(s, kind, i),
			StepIndex: i,
			Payload:   flow.StagePayload{Stage: s.Clone()},
		}
	}
	return flow.Graph{Nodes: nodes, Edges: chain(flow.KindPipeline, len(p.Steps))}
}

// StageKind infers a pipeline stage's node kind from the fields it has:
// exec, then prompt, then mcp, then spawn-session data, then approval. A
// stage with none of them is a plain pipeline stage.
func StageKind(stage definition.Record) flow.NodeKind {
	switch {
	case stage.Has(stageExec):
		return flow.KindExec
	case stage.Has(stagePrompt):
		return flow.KindPrompt
	case stage.Has(stageMCP):
		return flow.KindMCP
	case stage.Has(stageSpawnSession), stage.Has(stageSpawnSessionSnake):
		return flow.KindSpawnSession
	case stage.Has(stageApproval):
		return flow.KindApproval
	}
	return flow.KindPipeline
}

// position applies the canvas blob when it covers every node and runs the
// layout engine otherwise.
func (c *Converter) position(g *flow.Graph, canvasBlob []byte) {
	if len(canvasBlob) > 0 {
		blob, ok := canvas.Parse(canvasBlob)
		switch {
		case !ok:
			c.logger.Debug("canvas unreadable, using auto layout")
			observability.Convert().OnCanvasFallback("unparsable", len(g.Nodes))
		case !blob.Covers(g.Nodes):
			missing := blob.Missing(g.Nodes)
			c.logger.Debug("canvas incomplete, using auto layout", "missing", missing)
			observability.Convert().OnCanvasFallback("incomplete", len(missing))
		default:
			blob.Apply(g.Nodes)
			return
		}
	}

	start := time.Now()
	res := layout.Compute(g.Nodes, g.Edges, c.layout)
	g.Nodes = res.Nodes
	if len(res.BackEdges) > 0 {
		ids := make([]string, len(res.BackEdges))
		for i, e := range res.BackEdges {
			ids[i] = e.ID
		}
		c.logger.Debug("ignored back edges for layout", "edges", ids)
	}
	if res.Invalid != nil {
		c.logger.Debug("layout ranks are inconsistent", "err", res.Invalid)
	}
	observability.Convert().OnLayout(len(res.Nodes), len(res.BackEdges), res.Crossings, time.Since(start))
}

package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/flowcanvas/pkg/canvas"
	"github.com/matzehuels/flowcanvas/pkg/definition"
	"github.com/matzehuels/flowcanvas/pkg/errors"
	"github.com/matzehuels/flowcanvas/pkg/flow"
)

const scenarioYAML = `
steps:
  - name: init
    transitions:
      - to: work
        when: ready
  - name: work
    transitions:
      - to: done
        when: complete
  - name: done
observers:
  - name: audit
    on: step_finished
triggers:
  on_start: [notify]
  on_fail: [page, retry]
exit_condition: done
`

const implicitYAML = `
steps:
  - name: fetch
  - name: build
  - name: test
  - name: ship
observers: []
`

const pipelineYAML = `
type: pipeline
steps:
  - name: compile
    exec: go build ./...
  - prompt: Summarize the build output and flag anything unusual
  - mcp:
      tool: github.create_issue
  - spawn_session: {agent: reviewer}
  - approval: {approvers: [ops]}
  - {}
`

func parse(t *testing.T, src string) definition.Definition {
	t.Helper()
	def, err := definition.Parse([]byte(src))
	require.NoError(t, err)
	return def
}

func ids(nodes []flow.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}

func TestScenarioRoundTrip(t *testing.T) {
	def := parse(t, scenarioYAML)
	w := def.(*definition.Workflow)

	g, err := ToGraph(def, nil)
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"step-0", "step-1", "step-2", "observer-0", "trigger-0", "trigger-1", "exit-condition-0"},
		ids(g.Nodes))
	assert.Equal(t, "init", g.Nodes[0].Label)
	assert.Equal(t, "on_start", g.Nodes[4].Label)
	assert.Equal(t, "on_fail", g.Nodes[5].Label)

	require.Len(t, g.Edges, 2)
	assert.Equal(t, flow.Edge{ID: "edge-step-0-step-1-0", Source: "step-0", Target: "step-1", Label: "ready"}, g.Edges[0])
	assert.Equal(t, flow.Edge{ID: "edge-step-1-step-2-0", Source: "step-1", Target: "step-2", Label: "complete"}, g.Edges[1])
	require.NoError(t, g.Validate())

	res, err := ToDefinition(g.Nodes, g.Edges, false)
	require.NoError(t, err)
	got, ok := res.Definition.(*definition.Workflow)
	require.True(t, ok)

	assert.Equal(t, w.Steps, got.Steps)
	assert.Equal(t, w.Observers, got.Observers)
	assert.Equal(t, w.Triggers, got.Triggers)
	assert.Equal(t, "done", got.ExitCondition)

	ts, present := got.Steps[0].Transitions()
	assert.True(t, present)
	assert.Equal(t, []definition.Transition{{To: "work", When: "ready"}}, ts)
	assert.False(t, got.Steps[2].Has(definition.FieldTransitions))
}

func TestToGraphDoesNotMutateDefinition(t *testing.T) {
	def := parse(t, scenarioYAML)
	before := parse(t, scenarioYAML)

	g, err := ToGraph(def, nil)
	require.NoError(t, err)
	_, err = ToDefinition(g.Nodes, g.Edges, false)
	require.NoError(t, err)

	assert.Equal(t, before, def)
}

func TestImplicitEdges(t *testing.T) {
	def := parse(t, implicitYAML)
	assert.Equal(t, ImplicitSequential, EdgeModeOf(def.(*definition.Workflow)))

	g, err := ToGraph(def, nil)
	require.NoError(t, err)

	require.Len(t, g.Edges, 3)
	for i, e := range g.Edges {
		assert.True(t, e.IsImplicit(), e.ID)
		assert.Contains(t, e.ID, "implicit")
		assert.Equal(t, flow.NodeID(flow.KindStep, i), e.Source)
		assert.Equal(t, flow.NodeID(flow.KindStep, i+1), e.Target)
		assert.Empty(t, e.Label)
	}
}

func TestExplicitModeNeverMixes(t *testing.T) {
	def := parse(t, `
steps:
  - name: a
  - name: b
    transitions: []
  - name: c
observers: []
`)
	assert.Equal(t, ExplicitTransitions, EdgeModeOf(def.(*definition.Workflow)))

	g, err := ToGraph(def, nil)
	require.NoError(t, err)
	assert.Empty(t, g.Edges)
}

func TestUnresolvedTransitionIsDropped(t *testing.T) {
	def := parse(t, `
steps:
  - name: a
    transitions:
      - to: nowhere
      - to: b
        when: ok
  - name: b
triggers: {}
`)
	g, err := ToGraph(def, nil)
	require.NoError(t, err)

	require.Len(t, g.Edges, 1)
	assert.Equal(t, "edge-step-0-step-1-1", g.Edges[0].ID)
	assert.Equal(t, "ok", g.Edges[0].Label)
}

func TestDuplicateNamesResolveToFirst(t *testing.T) {
	def := parse(t, `
steps:
  - name: start
    transitions: [{to: dup}]
  - name: dup
  - name: dup
observers: []
`)
	g, err := ToGraph(def, nil)
	require.NoError(t, err)

	require.Len(t, g.Edges, 1)
	assert.Equal(t, "step-1", g.Edges[0].Target)
}

func TestPipelineKinds(t *testing.T) {
	g, err := ToGraph(parse(t, pipelineYAML), nil)
	require.NoError(t, err)

	wantKinds := []flow.NodeKind{
		flow.KindExec, flow.KindPrompt, flow.KindMCP,
		flow.KindSpawnSession, flow.KindApproval, flow.KindPipeline,
	}
	wantLabels := []string{
		"compile",
		"Summarize the build output and flag any…",
		"mcp: github.create_issue",
		"spawn session",
		"approval",
		"stage 6",
	}
	require.Len(t, g.Nodes, len(wantKinds))
	for i, n := range g.Nodes {
		assert.Equal(t, flow.NodeID(flow.KindPipeline, i), n.ID)
		assert.Equal(t, wantKinds[i], n.Kind, n.ID)
		assert.Equal(t, wantLabels[i], n.Label, n.ID)
		assert.Equal(t, i, n.StepIndex)
	}

	require.Len(t, g.Edges, 5)
	for i, e := range g.Edges {
		assert.Equal(t, flow.NodeID(flow.KindPipeline, i), e.Source)
		assert.Equal(t, flow.NodeID(flow.KindPipeline, i+1), e.Target)
		assert.True(t, e.IsImplicit())
	}
}

func TestStageKindPrecedence(t *testing.T) {
	tests := []struct {
		name  string
		stage definition.Record
		want  flow.NodeKind
	}{
		{"ExecOverApproval", definition.Record{"approval": true, "exec": "make"}, flow.KindExec},
		{"ExecOverPrompt", definition.Record{"prompt": "hi", "exec": "make"}, flow.KindExec},
		{"PromptOverMCP", definition.Record{"mcp": "x", "prompt": "hi"}, flow.KindPrompt},
		{"MCPOverSpawn", definition.Record{"spawn-session": "x", "mcp": "x"}, flow.KindMCP},
		{"SpawnOverApproval", definition.Record{"approval": true, "spawn-session": "x"}, flow.KindSpawnSession},
		{"SnakeSpawn", definition.Record{"spawn_session": nil}, flow.KindSpawnSession},
		{"Approval", definition.Record{"approval": nil}, flow.KindApproval},
		{"Fallback", definition.Record{"name": "x"}, flow.KindPipeline},
		{"Nil", nil, flow.KindPipeline},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StageKind(tt.stage))
		})
	}
}

func TestPipelineRoundTrip(t *testing.T) {
	def := parse(t, pipelineYAML)
	g, err := ToGraph(def, nil)
	require.NoError(t, err)

	// The editor may hand nodes back in any order.
	shuffled := []flow.Node{g.Nodes[3], g.Nodes[0], g.Nodes[5], g.Nodes[1], g.Nodes[4], g.Nodes[2]}
	res, err := ToDefinition(shuffled, g.Edges, true)
	require.NoError(t, err)

	got, ok := res.Definition.(*definition.Pipeline)
	require.True(t, ok)
	assert.Equal(t, definition.TypePipeline, got.Type())
	assert.Equal(t, def.(*definition.Pipeline).Steps, got.Steps)
}

func TestStepOrderSurvivesShuffle(t *testing.T) {
	def := parse(t, implicitYAML)
	g, err := ToGraph(def, nil)
	require.NoError(t, err)

	reversed := make([]flow.Node, len(g.Nodes))
	for i, n := range g.Nodes {
		reversed[len(g.Nodes)-1-i] = n
	}
	res, err := ToDefinition(reversed, g.Edges, false)
	require.NoError(t, err)

	steps := res.Definition.(*definition.Workflow).Steps
	names := make([]string, len(steps))
	for i, s := range steps {
		names[i] = s.Name()
	}
	assert.Equal(t, []string{"fetch", "build", "test", "ship"}, names)
}

func TestToDefinitionWorkflowEdits(t *testing.T) {
	nodes := []flow.Node{
		{ID: "step-0", Kind: flow.KindStep, StepIndex: 0, Payload: flow.StepPayload{Step: definition.Record{"name": "a"}}},
		{ID: "step-1", Kind: flow.KindStep, StepIndex: 1, Payload: flow.StepPayload{Step: definition.Record{"name": "b", "transitions": []any{}}}},
		{ID: "observer-0", Kind: flow.KindObserver, Payload: flow.ObserverPayload{Observer: definition.Record{"name": "watch"}}},
		{ID: "var-0", Kind: flow.KindVariable, Payload: flow.RecordPayload{Data: definition.Record{"x": 1}}},
		{ID: "exit-condition-0", Kind: flow.KindExitCondition, Payload: flow.ExitConditionPayload{Value: "x"}},
		{ID: "exit-condition-1", Kind: flow.KindExitCondition, Payload: flow.ExitConditionPayload{Value: "y"}},
	}
	edges := []flow.Edge{
		flow.NewEdge("step-0", "step-1", ""),
		{ID: "to-observer", Source: "step-0", Target: "observer-0"},
		{ID: "back", Source: "step-1", Target: "step-0", Label: "retry"},
	}

	res, err := ToDefinition(nodes, edges, false)
	require.NoError(t, err)
	w := res.Definition.(*definition.Workflow)

	require.Len(t, w.Steps, 2)
	assert.Equal(t, []any{map[string]any{"to": "b"}}, w.Steps[0]["transitions"])
	assert.Equal(t, []any{map[string]any{"to": "a", "when": "retry"}}, w.Steps[1]["transitions"])
	assert.Equal(t, []definition.Record{{"name": "watch"}}, w.Observers)
	assert.Nil(t, w.ExitCondition, "two exit conditions are ambiguous")
	assert.Empty(t, w.Triggers)

	blob, ok := canvas.Parse(res.Canvas)
	require.True(t, ok)
	assert.True(t, blob.Covers(nodes))
}

func TestToDefinitionRemovesStaleTransitions(t *testing.T) {
	nodes := []flow.Node{
		{ID: "step-0", Kind: flow.KindStep, Payload: flow.StepPayload{Step: definition.Record{
			"name":        "a",
			"transitions": []any{map[string]any{"to": "gone"}},
		}}},
	}
	res, err := ToDefinition(nodes, nil, false)
	require.NoError(t, err)
	assert.False(t, res.Definition.(*definition.Workflow).Steps[0].Has("transitions"))
}

func TestTriggerOrderPreserved(t *testing.T) {
	def := parse(t, `
steps: [{name: a}]
triggers:
  zeta: [z]
  alpha: [a]
  mid: [m]
`)
	g, err := ToGraph(def, nil)
	require.NoError(t, err)

	res, err := ToDefinition(g.Nodes, g.Edges, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, res.Definition.(*definition.Workflow).Triggers.Events())
}

func TestUnknownShape(t *testing.T) {
	tests := []struct {
		name string
		v    any
	}{
		{"Scalar", 42},
		{"List", []any{"a"}},
		{"NoSections", map[string]any{"name": "x"}},
		{"BadType", map[string]any{"type": "dag", "steps": []any{}}},
		{"StepNotMapping", map[string]any{"steps": []any{"oops"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToGraphValue(tt.v, nil)
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeInvalidDefinition, errors.GetCode(err))
		})
	}

	_, err := ToGraph(nil, nil)
	assert.Equal(t, errors.ErrCodeInvalidDefinition, errors.GetCode(err))

	var nilWorkflow *definition.Workflow
	_, err = ToGraph(nilWorkflow, nil)
	assert.Equal(t, errors.ErrCodeInvalidDefinition, errors.GetCode(err))
}

func TestToGraphValue(t *testing.T) {
	g, err := ToGraphValue(map[string]any{
		"steps": []any{
			map[string]any{"name": "a", "exec": "make"},
			map[string]any{"name": "b"},
		},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"pipeline-0", "pipeline-1"}, ids(g.Nodes))
	assert.Equal(t, flow.KindExec, g.Nodes[0].Kind)
}

func TestEmptyWorkflow(t *testing.T) {
	g, err := ToGraph(&definition.Workflow{}, nil)
	require.NoError(t, err)
	assert.Empty(t, g.Nodes)
	assert.Empty(t, g.Edges)

	res, err := ToDefinition(nil, nil, false)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(res.Canvas))
}

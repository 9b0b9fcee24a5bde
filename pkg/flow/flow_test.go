package flow

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/flowcanvas/pkg/definition"
	"github.com/matzehuels/flowcanvas/pkg/errors"
)

func TestNodeID(t *testing.T) {
	tests := []struct {
		kind NodeKind
		idx  int
		want string
	}{
		{KindStep, 0, "step-0"},
		{KindObserver, 2, "observer-2"},
		{KindTriggerGroup, 1, "trigger-1"},
		{KindExitCondition, 0, "exit-condition-0"},
		{KindExec, 3, "pipeline-3"},
		{KindApproval, 0, "pipeline-0"},
		{KindPipeline, 7, "pipeline-7"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NodeID(tt.kind, tt.idx))
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, got)
		assert.NotEmpty(t, k.Info().Label)
	}

	_, err := ParseKind("widget")
	assert.Equal(t, errors.ErrCodeInvalidGraph, errors.GetCode(err))
}

func TestNewEdge(t *testing.T) {
	a := NewEdge("step-0", "step-1", "")
	b := NewEdge("step-0", "step-1", "")

	assert.NotEqual(t, a.ID, b.ID)
	assert.True(t, strings.HasPrefix(a.ID, "edge-"))
	assert.False(t, a.IsImplicit())
	assert.True(t, Edge{ID: "edge-implicit-step-0-step-1"}.IsImplicit())
}

func TestValidate(t *testing.T) {
	step := func(id string) Node { return Node{ID: id, Kind: KindStep} }

	tests := []struct {
		name    string
		g       Graph
		wantErr bool
	}{
		{"Empty", Graph{}, false},
		{"Valid", Graph{
			Nodes: []Node{step("a"), step("b")},
			Edges: []Edge{{ID: "e", Source: "a", Target: "b"}},
		}, false},
		{"MissingID", Graph{Nodes: []Node{step("")}}, true},
		{"DuplicateNode", Graph{Nodes: []Node{step("a"), step("a")}}, true},
		{"UnknownKind", Graph{Nodes: []Node{{ID: "a", Kind: "widget"}}}, true},
		{"DuplicateEdge", Graph{
			Nodes: []Node{step("a"), step("b")},
			Edges: []Edge{{ID: "e", Source: "a", Target: "b"}, {ID: "e", Source: "b", Target: "a"}},
		}, true},
		{"DanglingTarget", Graph{
			Nodes: []Node{step("a")},
			Edges: []Edge{{ID: "e", Source: "a", Target: "zz"}},
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.g.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, errors.ErrCodeInvalidGraph, errors.GetCode(err))
		})
	}
}

func TestPayloadRecord(t *testing.T) {
	trig := TriggerPayload{Event: "on_start", Actions: []any{"notify"}}
	assert.Equal(t, definition.Record{"name": "on_start", "actions": []any{"notify"}}, trig.Record())

	exit := ExitConditionPayload{Value: "done"}
	assert.Equal(t, definition.Record{"value": "done"}, exit.Record())

	var n Node
	assert.NotNil(t, n.Record())
}

func TestGraphJSON(t *testing.T) {
	g := Graph{
		Nodes: []Node{
			{ID: "step-0", Kind: KindStep, Label: "init", Payload: StepPayload{Step: definition.Record{"name": "init"}}, Position: Position{X: 1, Y: 2}},
			{ID: "trigger-0", Kind: KindTriggerGroup, Label: "on_start", StepIndex: 0, Payload: TriggerPayload{Event: "on_start", Actions: "go"}},
			{ID: "exit-condition-0", Kind: KindExitCondition, Label: "exit condition", Payload: ExitConditionPayload{Value: "done"}},
			{ID: "pipeline-1", Kind: KindExec, StepIndex: 1, Payload: StagePayload{Stage: definition.Record{"exec": "make"}}},
			{ID: "var-0", Kind: KindVariable, Payload: RecordPayload{Data: definition.Record{"x": 1.0}}},
		},
		Edges: []Edge{{ID: "edge-implicit-step-0-step-1", Source: "step-0", Target: "pipeline-1"}},
	}

	data, err := MarshalGraph(g)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"stepIndex": 1`)
	assert.Contains(t, string(data), `"source": "step-0"`)

	got, err := ReadGraph(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, got.Nodes, 5)

	assert.Equal(t, StepPayload{Step: definition.Record{"name": "init"}}, got.Nodes[0].Payload)
	assert.Equal(t, TriggerPayload{Event: "on_start", Actions: "go"}, got.Nodes[1].Payload)
	assert.Equal(t, ExitConditionPayload{Value: "done"}, got.Nodes[2].Payload)
	assert.Equal(t, StagePayload{Stage: definition.Record{"exec": "make"}}, got.Nodes[3].Payload)
	assert.Equal(t, RecordPayload{Data: definition.Record{"x": 1.0}}, got.Nodes[4].Payload)
	assert.Equal(t, Position{X: 1, Y: 2}, got.Nodes[0].Position)
	assert.Equal(t, g.Edges, got.Edges)
}

func TestMarshalEmptyGraph(t *testing.T) {
	data, err := MarshalGraph(Graph{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"nodes":[],"edges":[]}`, string(data))
}

func TestReadGraphErrors(t *testing.T) {
	_, err := ReadGraph(strings.NewReader("{"))
	assert.Equal(t, errors.ErrCodeInvalidFormat, errors.GetCode(err))

	_, err = ReadGraph(strings.NewReader(`{"nodes":[{"id":"a","kind":"step"}],"edges":[{"id":"e","source":"a","target":"b"}]}`))
	assert.Equal(t, errors.ErrCodeInvalidGraph, errors.GetCode(err))

	_, err = ReadGraphFile("/nonexistent/graph.json")
	assert.Equal(t, errors.ErrCodeFileNotFound, errors.GetCode(err))
}

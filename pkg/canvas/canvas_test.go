package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/flowcanvas/pkg/flow"
)

func nodes(ids ...string) []flow.Node {
	out := make([]flow.Node, len(ids))
	for i, id := range ids {
		out[i] = flow.Node{ID: id, Kind: flow.KindStep}
	}
	return out
}

func TestMarshalParse(t *testing.T) {
	ns := nodes("step-0", "step-1")
	ns[0].Position = flow.Position{X: 10.5, Y: -3}
	ns[1].Position = flow.Position{X: 200, Y: 140}

	data, err := FromNodes(ns).Marshal()
	require.NoError(t, err)
	assert.JSONEq(t, `{"step-0":{"x":10.5,"y":-3},"step-1":{"x":200,"y":140}}`, string(data))

	b, ok := Parse(data)
	require.True(t, ok)
	assert.True(t, b.Covers(ns))

	fresh := nodes("step-0", "step-1")
	b.Apply(fresh)
	assert.Equal(t, ns[0].Position, fresh[0].Position)
	assert.Equal(t, ns[1].Position, fresh[1].Position)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"Empty", ""},
		{"NotJSON", "{not json"},
		{"Array", `[1, 2]`},
		{"Null", `null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Parse([]byte(tt.data))
			assert.False(t, ok)
		})
	}
}

func TestParseSkipsBadEntries(t *testing.T) {
	b, ok := Parse([]byte(`{"a":{"x":1,"y":2},"b":{"x":1},"c":"oops","d":{"x":"1","y":2}}`))
	require.True(t, ok)

	assert.Equal(t, Blob{"a": {X: 1, Y: 2}}, b)
	assert.False(t, b.Covers(nodes("a", "b")))
	assert.Equal(t, []string{"b", "c"}, b.Missing(nodes("a", "b", "c")))
}

func TestMarshalNil(t *testing.T) {
	var b Blob
	data, err := b.Marshal()
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

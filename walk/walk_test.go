package walk

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/dataflow-continuations/errors"
	"github.com/wippyai/dataflow-continuations/graph"
)

func atomic(id string, inputs ...string) graph.Node {
	n := graph.Node{ID: id, OutputPorts: []graph.Port{{Name: "out"}}}
	for _, in := range inputs {
		n.InputPorts = append(n.InputPorts, graph.Port{Name: in})
	}
	return n
}

func connect(b *graph.Builder, from, to, toPort string) {
	b.AddEdge(graph.Edge{From: from, FromPort: "out", To: to, ToPort: toPort})
}

// inputsOrEntered continues through the entered port when it is an input,
// and through every input otherwise.
func inputsOrEntered(n *graph.Node, port string) ([]string, error) {
	if n.Direction(port) == graph.DirInput {
		return []string{port}, nil
	}
	return n.InputNames(), nil
}

func TestBack_Chain(t *testing.T) {
	b := graph.NewBuilder()
	require.NoError(t, b.AddNode(atomic("a")))
	require.NoError(t, b.AddNode(atomic("b", "x")))
	require.NoError(t, b.AddNode(atomic("sink", "in")))
	connect(b, "a", "b", "x")
	connect(b, "b", "sink", "in")
	g, err := b.Build()
	require.NoError(t, err)

	paths, err := Back(g, "sink", "in", inputsOrEntered)
	require.NoError(t, err)
	require.Len(t, paths, 1)

	p := paths[0]
	assert.Equal(t, []string{"a", "b", "sink"}, p.Nodes())
	assert.True(t, p.Start().IsStart())
	assert.Equal(t, "in", p.Start().Port)
	assert.Equal(t, "a", p.Terminal().Node)
	assert.Equal(t, "out", p.Terminal().Port)
	assert.Equal(t, "b", p.Terminal().Edge.To)
	assert.Equal(t, "x", p.Terminal().Edge.ToPort)
}

func TestBack_ForksPerInput(t *testing.T) {
	b := graph.NewBuilder()
	require.NoError(t, b.AddNode(atomic("l")))
	require.NoError(t, b.AddNode(atomic("r1")))
	require.NoError(t, b.AddNode(atomic("r0")))
	require.NoError(t, b.AddNode(atomic("r", "x")))
	require.NoError(t, b.AddNode(atomic("add", "left", "right")))
	require.NoError(t, b.AddNode(atomic("sink", "in")))
	connect(b, "l", "add", "left")
	connect(b, "r", "add", "right")
	connect(b, "r1", "r", "x")
	connect(b, "r0", "r", "x")
	connect(b, "add", "sink", "in")
	g, err := b.Build()
	require.NoError(t, err)

	paths, err := Back(g, "sink", "in", inputsOrEntered)
	require.NoError(t, err)
	require.Len(t, paths, 3)
	assert.Equal(t, []string{"l", "add", "sink"}, paths[0].Nodes())
	assert.Equal(t, []string{"r1", "r", "add", "sink"}, paths[1].Nodes())
	assert.Equal(t, []string{"r0", "r", "add", "sink"}, paths[2].Nodes())
}

func TestBack_StopsWhenFollowReturnsNothing(t *testing.T) {
	b := graph.NewBuilder()
	require.NoError(t, b.AddNode(atomic("a")))
	require.NoError(t, b.AddNode(atomic("wall", "x")))
	require.NoError(t, b.AddNode(atomic("sink", "in")))
	connect(b, "a", "wall", "x")
	connect(b, "wall", "sink", "in")
	g, err := b.Build()
	require.NoError(t, err)

	stopAtWall := func(n *graph.Node, port string) ([]string, error) {
		if n.ID == "wall" {
			return nil, nil
		}
		return inputsOrEntered(n, port)
	}
	paths, err := Back(g, "sink", "in", stopAtWall)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, []string{"wall", "sink"}, paths[0].Nodes())
}

func TestBack_CycleGuard(t *testing.T) {
	b := graph.NewBuilder()
	require.NoError(t, b.AddNode(atomic("a", "x")))
	require.NoError(t, b.AddNode(atomic("b", "x")))
	require.NoError(t, b.AddNode(atomic("sink", "in")))
	connect(b, "b", "a", "x")
	connect(b, "a", "b", "x")
	connect(b, "a", "sink", "in")
	g, err := b.Build()
	require.NoError(t, err)

	paths, err := Back(g, "sink", "in", inputsOrEntered)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, []string{"b", "a", "sink"}, paths[0].Nodes())
}

func TestBack_SkipsContinuationEdges(t *testing.T) {
	b := graph.NewBuilder()
	require.NoError(t, b.AddNode(atomic("a")))
	require.NoError(t, b.AddNode(atomic("sink", "in")))
	b.AddEdge(graph.Edge{From: "a", To: "sink", ToPort: "in", Name: "a→→sink@in", Continuation: true})
	g, err := b.Build()
	require.NoError(t, err)

	paths, err := Back(g, "sink", "in", inputsOrEntered)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, []string{"sink"}, paths[0].Nodes())
}

func TestBack_Errors(t *testing.T) {
	b := graph.NewBuilder()
	require.NoError(t, b.AddNode(atomic("a")))
	require.NoError(t, b.AddNode(atomic("sink", "in")))
	connect(b, "a", "sink", "in")
	g, err := b.Build()
	require.NoError(t, err)

	t.Run("unknown node", func(t *testing.T) {
		_, err := Back(g, "nope", "in", inputsOrEntered)
		assert.True(t, stderrors.Is(err, &errors.Error{Phase: errors.PhaseWalk, Kind: errors.KindNotFound}))
	})

	t.Run("undeclared port", func(t *testing.T) {
		_, err := Back(g, "sink", "input3", inputsOrEntered)
		require.Error(t, err)
		var e *errors.Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, "input3", e.Port)
	})

	t.Run("follow error", func(t *testing.T) {
		boom := stderrors.New("boom")
		_, err := Back(g, "sink", "in", func(*graph.Node, string) ([]string, error) { return nil, boom })
		assert.ErrorIs(t, err, boom)
	})
}

func TestPath_Helpers(t *testing.T) {
	p := Path{{Node: "a"}, {Node: "b"}, {Node: "c"}}

	assert.Equal(t, []string{"b", "c"}, p.Suffix(2).Nodes())
	assert.Equal(t, []string{"a", "b", "c"}, p.Suffix(0).Nodes())
	assert.Equal(t, []string{"a", "b", "c"}, p.Suffix(7).Nodes())
	assert.Equal(t, []string{"c", "b", "a"}, p.Reversed().Nodes())
	assert.Equal(t, []string{"a", "b", "c"}, p.Nodes(), "Reversed must not modify the path")
}

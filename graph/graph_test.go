package graph

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/dataflow-continuations/errors"
)

func buildSmall(t *testing.T) *Graph {
	t.Helper()
	b := NewBuilder()
	require.NoError(t, b.AddNode(Node{
		ID:          "f",
		Kind:        KindCompound,
		InputPorts:  []Port{{Name: "n", Type: "number"}},
		OutputPorts: []Port{{Name: "out", Type: "number"}},
	}))
	require.NoError(t, b.AddNode(Node{
		ID:          "f:mux",
		Component:   MuxComponent,
		Parent:      "f",
		InputPorts:  []Port{{Name: PortControl}, {Name: PortInput1}, {Name: PortInput2}},
		OutputPorts: []Port{{Name: "output"}},
	}))
	require.NoError(t, b.AddNode(Node{
		ID:          "f:c",
		Component:   "math/const",
		Parent:      "f",
		OutputPorts: []Port{{Name: "output"}},
	}))
	b.AddEdge(Edge{From: "f", FromPort: "n", To: "f:mux", ToPort: PortControl})
	b.AddEdge(Edge{From: "f:c", FromPort: "output", To: "f:mux", ToPort: PortInput1})
	b.AddEdge(Edge{From: "f", FromPort: "n", To: "f:mux", ToPort: PortInput2})
	b.AddEdge(Edge{From: "f:mux", FromPort: "output", To: "f", ToPort: "out"})
	g, err := b.Build()
	require.NoError(t, err)
	return g
}

func TestBuilder_ResolvesMuxKind(t *testing.T) {
	g := buildSmall(t)

	mux, err := g.Node("f:mux")
	require.NoError(t, err)
	assert.Equal(t, KindMux, mux.Kind)
	assert.True(t, mux.IsMux())
	assert.Equal(t, []string{"f:mux"}, g.Muxes())
}

func TestBuilder_DuplicateNode(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.AddNode(Node{ID: "a"}))

	err := b.AddNode(Node{ID: "a"})
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, &errors.Error{Phase: errors.PhaseBuild, Kind: errors.KindDuplicate}))
}

func TestBuilder_EmptyID(t *testing.T) {
	err := NewBuilder().AddNode(Node{})
	assert.True(t, stderrors.Is(err, &errors.Error{Phase: errors.PhaseBuild, Kind: errors.KindInvalidInput}))
}

func TestBuilder_DanglingEdges(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.AddNode(Node{ID: "a"}))
	b.AddEdge(Edge{From: "a", FromPort: "out", To: "missing", ToPort: "in"})

	_, err := b.Build()
	require.Error(t, err)
	var dangling *errors.DanglingEdgesError
	require.ErrorAs(t, err, &dangling)
	assert.Equal(t, "missing", dangling.Edges[0].Missing)
}

func TestBuilder_EdgeReplacedByName(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.AddNode(Node{ID: "a"}))
	require.NoError(t, b.AddNode(Node{ID: "b"}))
	b.AddEdge(Edge{From: "a", To: "b", Name: "a→→b@input1"})
	b.AddEdge(Edge{From: "a", To: "b", Name: "a→→b@input1", Continuation: true})

	g, err := b.Build()
	require.NoError(t, err)
	require.Len(t, g.Edges(), 1)
	e, ok := g.Edge("a→→b@input1")
	require.True(t, ok)
	assert.True(t, e.Continuation)
}

func TestGraph_Lookups(t *testing.T) {
	g := buildSmall(t)

	assert.Equal(t, 3, g.Len())
	assert.Equal(t, "f", g.Parent("f:mux"))
	assert.Equal(t, "", g.Parent("unknown"))
	assert.Equal(t, []string{"f:mux", "f:c"}, g.Children("f"))

	in := g.InEdges("f:mux", PortInput1)
	require.Len(t, in, 1)
	assert.Equal(t, "f:c", in[0].From)
	assert.Equal(t, DefaultEdgeName("f:c", "output", "f:mux", PortInput1), in[0].Name)

	idx, ok := g.Index("f:c")
	assert.True(t, ok)
	assert.Equal(t, 2, idx)

	_, err := g.Node("nope")
	assert.True(t, stderrors.Is(err, &errors.Error{Phase: errors.PhaseWalk, Kind: errors.KindNotFound}))
}

func TestNode_Direction(t *testing.T) {
	g := buildSmall(t)
	f, err := g.Node("f")
	require.NoError(t, err)

	assert.Equal(t, DirInput, f.Direction("n"))
	assert.Equal(t, DirOutput, f.Direction("out"))
	assert.Equal(t, DirNone, f.Direction("x"))
	assert.Equal(t, []string{"n"}, f.InputNames())
	assert.Equal(t, []string{"out"}, f.OutputNames())
}

func TestNode_CloneIsDeep(t *testing.T) {
	n := Node{
		ID:             "n",
		InputPorts:     []Port{{Name: "a"}},
		RecursesTo:     &RecursesTo{Branch: []string{"f"}},
		IsContinuation: &Mark{Descriptor: &Descriptor{Node: "n", Port: PortInput1, BranchPorts: []string{"a"}}},
		Continuations:  []Descriptor{{Node: "x", Port: PortInput2, BranchPorts: []string{"b"}}},
	}
	c := n.Clone()
	require.Equal(t, n, c)

	c.InputPorts[0].Name = "changed"
	c.RecursesTo.Branch[0] = "changed"
	c.IsContinuation.Descriptor.BranchPorts[0] = "changed"
	c.Continuations[0].BranchPorts[0] = "changed"

	assert.Equal(t, "a", n.InputPorts[0].Name)
	assert.Equal(t, "f", n.RecursesTo.Branch[0])
	assert.Equal(t, "a", n.IsContinuation.Descriptor.BranchPorts[0])
	assert.Equal(t, "b", n.Continuations[0].BranchPorts[0])
}

func TestNode_ClonePreservesNil(t *testing.T) {
	n := Node{ID: "n"}
	c := n.Clone()
	assert.Nil(t, c.InputPorts)
	assert.Nil(t, c.Continuations)
	assert.Nil(t, c.IsContinuation)
	assert.Equal(t, n, c)
}

func TestResolveKind(t *testing.T) {
	tests := []struct {
		component string
		atomic    bool
		want      Kind
	}{
		{MuxComponent, true, KindMux},
		{MuxComponent, false, KindMux},
		{"math/add", true, KindAtomic},
		{"defco_factorial", false, KindCompound},
	}
	for _, tt := range tests {
		t.Run(tt.component, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveKind(tt.component, tt.atomic))
		})
	}
}

func TestEdgeNames(t *testing.T) {
	assert.Equal(t, "m→→t@input2", ContinuationEdgeName("m", "t", PortInput2))
	assert.Equal(t, "a@out→b@in", DefaultEdgeName("a", "out", "b", "in"))
}

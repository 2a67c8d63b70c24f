package continuation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wippyai/dataflow-continuations/graph"
)

const outPort = "output"

type fixture struct {
	t *testing.T
	b *graph.Builder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{t: t, b: graph.NewBuilder()}
}

func (f *fixture) add(n graph.Node) {
	f.t.Helper()
	require.NoError(f.t, f.b.AddNode(n))
}

func (f *fixture) wire(from, fromPort, to, toPort string) {
	f.b.AddEdge(graph.Edge{From: from, FromPort: fromPort, To: to, ToPort: toPort})
}

func (f *fixture) build() *graph.Graph {
	f.t.Helper()
	g, err := f.b.Build()
	require.NoError(f.t, err)
	return g
}

func ports(names ...string) []graph.Port {
	if len(names) == 0 {
		return nil
	}
	ps := make([]graph.Port, len(names))
	for i, n := range names {
		ps[i] = graph.Port{Name: n, Type: "generic"}
	}
	return ps
}

// function adds a recursive function body with the given inputs.
func (f *fixture) function(id string, inputs ...string) {
	f.add(graph.Node{
		ID:            id,
		Component:     id,
		Kind:          graph.KindCompound,
		InputPorts:    ports(inputs...),
		OutputPorts:   ports("value"),
		RecursiveRoot: true,
	})
}

func (f *fixture) atomic(id, parent string, inputs ...string) {
	f.add(graph.Node{
		ID:          id,
		Component:   "math/op",
		Kind:        graph.KindAtomic,
		Parent:      parent,
		InputPorts:  ports(inputs...),
		OutputPorts: ports(outPort),
	})
}

func (f *fixture) constant(id, parent string) {
	f.atomic(id, parent)
}

func (f *fixture) mux(id, parent string) {
	f.add(graph.Node{
		ID:          id,
		Component:   graph.MuxComponent,
		Parent:      parent,
		InputPorts:  ports(graph.PortControl, graph.PortInput1, graph.PortInput2),
		OutputPorts: ports(outPort),
	})
}

// call adds a recursive call site of fn.
func (f *fixture) call(id, parent, fn string, inputs ...string) {
	f.add(graph.Node{
		ID:          id,
		Component:   fn,
		Kind:        graph.KindCompound,
		Parent:      parent,
		InputPorts:  ports(inputs...),
		OutputPorts: ports(outPort),
		Recursive:   true,
		RecursesTo:  &graph.RecursesTo{Branch: []string{fn}},
	})
}

// addFactorial adds fac(n) = n < 1 ? 1 : n * fac(n - 1). The product feeds
// recPort of the mux, the constant the other input.
func (f *fixture) addFactorial(fn, recPort string) {
	id := func(s string) string { return fn + ":" + s }
	basePort := graph.PortInput1
	if recPort == graph.PortInput1 {
		basePort = graph.PortInput2
	}

	f.function(fn, "n")
	f.constant(id("const_1"), fn)
	f.atomic(id("less_1"), fn, "isLess", "than")
	f.constant(id("one_2"), fn)
	f.constant(id("const_5"), fn)
	f.atomic(id("sub_4"), fn, "minuend", "subtrahend")
	f.call(id("factorial_3"), fn, fn, "n")
	f.atomic(id("mul_6"), fn, "a", "b")
	f.mux(id("mux_0"), fn)

	f.wire(fn, "n", id("less_1"), "isLess")
	f.wire(id("const_1"), outPort, id("less_1"), "than")
	f.wire(id("less_1"), outPort, id("mux_0"), graph.PortControl)
	f.wire(id("one_2"), outPort, id("mux_0"), basePort)
	f.wire(fn, "n", id("mul_6"), "a")
	f.wire(fn, "n", id("sub_4"), "minuend")
	f.wire(id("const_5"), outPort, id("sub_4"), "subtrahend")
	f.wire(id("sub_4"), outPort, id("factorial_3"), "n")
	f.wire(id("factorial_3"), outPort, id("mul_6"), "b")
	f.wire(id("mul_6"), outPort, id("mux_0"), recPort)
	f.wire(id("mux_0"), outPort, fn, "value")
}

// addAck adds the Ackermann function:
//
//	ack(m, n) = m == 0 ? n + 1 : (n == 0 ? ack(m-1, 1) : ack(m-1, ack(m, n-1)))
func (f *fixture) addAck(fn string) {
	id := func(s string) string { return fn + ":" + s }

	f.function(fn, "m", "n")

	f.constant(id("zero_1"), fn)
	f.atomic(id("eq_1"), fn, "a", "b")
	f.constant(id("one_2"), fn)
	f.atomic(id("inc_2"), fn, "a", "b")
	f.mux(id("mux_0"), fn)

	f.constant(id("zero_5"), fn)
	f.atomic(id("eq_5"), fn, "a", "b")
	f.constant(id("one_6"), fn)
	f.atomic(id("sub_6"), fn, "a", "b")
	f.constant(id("one_7"), fn)
	f.call(id("ack_4"), fn, fn, "m", "n")
	f.constant(id("one_12"), fn)
	f.atomic(id("sub_12"), fn, "a", "b")
	f.constant(id("one_14"), fn)
	f.atomic(id("sub_14"), fn, "a", "b")
	f.call(id("ack_13"), fn, fn, "m", "n")
	f.call(id("ack_11"), fn, fn, "m", "n")
	f.mux(id("mux_3"), fn)

	f.wire(fn, "m", id("eq_1"), "a")
	f.wire(id("zero_1"), outPort, id("eq_1"), "b")
	f.wire(id("eq_1"), outPort, id("mux_0"), graph.PortControl)
	f.wire(fn, "n", id("inc_2"), "a")
	f.wire(id("one_2"), outPort, id("inc_2"), "b")
	f.wire(id("inc_2"), outPort, id("mux_0"), graph.PortInput1)
	f.wire(id("mux_3"), outPort, id("mux_0"), graph.PortInput2)
	f.wire(id("mux_0"), outPort, fn, "value")

	f.wire(fn, "n", id("eq_5"), "a")
	f.wire(id("zero_5"), outPort, id("eq_5"), "b")
	f.wire(id("eq_5"), outPort, id("mux_3"), graph.PortControl)

	f.wire(fn, "m", id("sub_6"), "a")
	f.wire(id("one_6"), outPort, id("sub_6"), "b")
	f.wire(id("sub_6"), outPort, id("ack_4"), "m")
	f.wire(id("one_7"), outPort, id("ack_4"), "n")
	f.wire(id("ack_4"), outPort, id("mux_3"), graph.PortInput1)

	f.wire(fn, "m", id("sub_12"), "a")
	f.wire(id("one_12"), outPort, id("sub_12"), "b")
	f.wire(id("sub_12"), outPort, id("ack_11"), "m")
	f.wire(fn, "m", id("ack_13"), "m")
	f.wire(fn, "n", id("sub_14"), "a")
	f.wire(id("one_14"), outPort, id("sub_14"), "b")
	f.wire(id("sub_14"), outPort, id("ack_13"), "n")
	f.wire(id("ack_13"), outPort, id("ack_11"), "n")
	f.wire(id("ack_11"), outPort, id("mux_3"), graph.PortInput2)
}

// addCountdown adds down(n) = n ? 0 : down(n - 1), with the recursive
// call feeding input2 directly. With recursiveControl the control operand is
// computed by a second recursive call.
func (f *fixture) addCountdown(fn string, recursiveControl bool) {
	id := func(s string) string { return fn + ":" + s }

	f.function(fn, "n")
	f.constant(id("zero_1"), fn)
	f.atomic(id("dec_2"), fn, "a")
	f.call(id("down_3"), fn, fn, "n")
	f.mux(id("mux_0"), fn)

	if recursiveControl {
		f.call(id("probe_4"), fn, fn, "n")
		f.wire(fn, "n", id("probe_4"), "n")
		f.wire(id("probe_4"), outPort, id("mux_0"), graph.PortControl)
	} else {
		f.wire(fn, "n", id("mux_0"), graph.PortControl)
	}
	f.wire(id("zero_1"), outPort, id("mux_0"), graph.PortInput1)
	f.wire(fn, "n", id("dec_2"), "a")
	f.wire(id("dec_2"), outPort, id("down_3"), "n")
	f.wire(id("down_3"), outPort, id("mux_0"), graph.PortInput2)
	f.wire(id("mux_0"), outPort, fn, "value")
}

// addSimpleMux adds a mux selecting between two constants.
func (f *fixture) addSimpleMux(prefix string) {
	id := func(s string) string { return prefix + ":" + s }
	f.constant(id("cond"), "")
	f.constant(id("a"), "")
	f.constant(id("b"), "")
	f.atomic(id("sink"), "", "in")
	f.mux(id("mux"), "")
	f.wire(id("cond"), outPort, id("mux"), graph.PortControl)
	f.wire(id("a"), outPort, id("mux"), graph.PortInput1)
	f.wire(id("b"), outPort, id("mux"), graph.PortInput2)
	f.wire(id("mux"), outPort, id("sink"), "in")
}

func factorialGraph(t *testing.T) *graph.Graph {
	f := newFixture(t)
	f.addFactorial("defco_factorial", graph.PortInput2)
	return f.build()
}

func ackGraph(t *testing.T) *graph.Graph {
	f := newFixture(t)
	f.addAck("defco_ack")
	return f.build()
}

func nodesOf(g *graph.Graph) []graph.Node {
	var ns []graph.Node
	for _, n := range g.Nodes() {
		ns = append(ns, *n)
	}
	return ns
}

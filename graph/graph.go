package graph

import (
	"github.com/wippyai/dataflow-continuations/errors"
)

type portKey struct {
	node string
	port string
}

// Graph is an immutable dataflow graph. Safe for concurrent reads.
type Graph struct {
	index     map[string]int
	edgeIndex map[string]int
	in        map[portKey][]int
	children  map[string][]string
	nodes     []Node
	edges     []Edge
	muxes     []string
}

// Node returns the node with the given id. The result must not be modified.
func (g *Graph) Node(id string) (*Node, error) {
	i, ok := g.index[id]
	if !ok {
		return nil, errors.NodeNotFound(errors.PhaseWalk, id)
	}
	return &g.nodes[i], nil
}

// HasNode reports whether id names a node of g.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.index[id]
	return ok
}

// Index returns the dense insertion index of a node.
func (g *Graph) Index(id string) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Nodes returns all nodes in insertion order. The pointees must not be
// modified.
func (g *Graph) Nodes() []*Node {
	result := make([]*Node, len(g.nodes))
	for i := range g.nodes {
		result[i] = &g.nodes[i]
	}
	return result
}

// Muxes returns the ids of all mux nodes in insertion order.
func (g *Graph) Muxes() []string {
	result := make([]string, len(g.muxes))
	copy(result, g.muxes)
	return result
}

// Parent returns the id of the compound node containing id, or "".
func (g *Graph) Parent(id string) string {
	if i, ok := g.index[id]; ok {
		return g.nodes[i].Parent
	}
	return ""
}

// Children returns the ids of the nodes directly nested in id.
func (g *Graph) Children(id string) []string {
	result := make([]string, len(g.children[id]))
	copy(result, g.children[id])
	return result
}

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge {
	result := make([]Edge, len(g.edges))
	copy(result, g.edges)
	return result
}

// Edge returns the edge with the given name.
func (g *Graph) Edge(name string) (Edge, bool) {
	i, ok := g.edgeIndex[name]
	if !ok {
		return Edge{}, false
	}
	return g.edges[i], true
}

// InEdges returns the edges whose target is (node, port), in insertion order.
func (g *Graph) InEdges(node, port string) []Edge {
	idx := g.in[portKey{node, port}]
	result := make([]Edge, len(idx))
	for i, e := range idx {
		result[i] = g.edges[e]
	}
	return result
}

// Builder assembles a Graph. Not safe for concurrent use.
type Builder struct {
	index     map[string]int
	edgeIndex map[string]int
	nodes     []Node
	edges     []Edge
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		index:     make(map[string]int),
		edgeIndex: make(map[string]int),
	}
}

// AddNode adds a node. Mux components are classified as KindMux regardless
// of the Kind given.
func (b *Builder) AddNode(n Node) error {
	if n.ID == "" {
		return errors.InvalidInput(errors.PhaseBuild, "node id is empty")
	}
	if _, exists := b.index[n.ID]; exists {
		return errors.DuplicateNode(errors.PhaseBuild, n.ID)
	}
	if n.Component == MuxComponent {
		n.Kind = KindMux
	}
	b.index[n.ID] = len(b.nodes)
	b.nodes = append(b.nodes, n)
	return nil
}

// AddEdge adds an edge, naming it with DefaultEdgeName when unnamed. An edge
// with the name of an existing edge replaces it in place.
func (b *Builder) AddEdge(e Edge) {
	if e.Name == "" {
		e.Name = DefaultEdgeName(e.From, e.FromPort, e.To, e.ToPort)
	}
	if i, exists := b.edgeIndex[e.Name]; exists {
		b.edges[i] = e
		return
	}
	b.edgeIndex[e.Name] = len(b.edges)
	b.edges = append(b.edges, e)
}

// Build freezes the builder contents into a Graph. Edges naming unknown
// nodes yield a *errors.DanglingEdgesError. The builder must not be reused.
func (b *Builder) Build() (*Graph, error) {
	var dangling []errors.DanglingEdge
	for _, e := range b.edges {
		if _, ok := b.index[e.From]; !ok {
			dangling = append(dangling, errors.DanglingEdge{Edge: e.Name, Missing: e.From})
		}
		if _, ok := b.index[e.To]; !ok {
			dangling = append(dangling, errors.DanglingEdge{Edge: e.Name, Missing: e.To})
		}
	}
	if len(dangling) > 0 {
		return nil, errors.NewDanglingEdgesError(dangling)
	}

	g := &Graph{
		index:     b.index,
		edgeIndex: b.edgeIndex,
		in:        make(map[portKey][]int),
		children:  make(map[string][]string),
		nodes:     b.nodes,
		edges:     b.edges,
	}
	for i := range g.nodes {
		n := &g.nodes[i]
		if n.Kind == KindMux {
			g.muxes = append(g.muxes, n.ID)
		}
		if n.Parent != "" {
			g.children[n.Parent] = append(g.children[n.Parent], n.ID)
		}
	}
	for i, e := range g.edges {
		k := portKey{e.To, e.ToPort}
		g.in[k] = append(g.in[k], i)
	}

	b.index = nil
	b.edgeIndex = nil
	b.nodes = nil
	b.edges = nil
	return g, nil
}

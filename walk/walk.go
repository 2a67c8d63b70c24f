// Package walk enumerates backward paths through a dataflow graph.
//
// A walk starts at a (node, port) pair and moves against the data flow: at
// each frame a FollowFunc picks the ports of the current node to continue
// through, and every edge arriving at one of those ports extends the path.
// A node with k predecessor edges therefore forks the path k ways.
//
// Paths are built on an arena of parent-linked frames driven by an explicit
// work-list, so deep graphs do not grow the goroutine stack and partial paths
// share their common prefix until they are materialized.
package walk

import (
	"github.com/wippyai/dataflow-continuations/errors"
	"github.com/wippyai/dataflow-continuations/graph"
)

// Frame is one step of a backward path: the node reached, the port it was
// entered through and the edge traversed backward to get there.
type Frame struct {
	Edge graph.Edge // zero for the start frame
	Node string
	Port string
}

// IsStart reports whether f is the frame the walk started from.
func (f Frame) IsStart() bool {
	return f.Edge.Name == ""
}

// Path is a backward path in data-flow order: the frame where the walk
// stopped comes first, the start frame last.
type Path []Frame

// Start returns the frame the walk started from.
func (p Path) Start() Frame {
	return p[len(p)-1]
}

// Terminal returns the frame where the walk stopped.
func (p Path) Terminal() Frame {
	return p[0]
}

// Suffix returns the last n frames, i.e. the n frames nearest the start.
// n outside (0, len(p)] yields the whole path.
func (p Path) Suffix(n int) Path {
	if n <= 0 || n >= len(p) {
		return p
	}
	return p[len(p)-n:]
}

// Reversed returns a copy of p ordered from the start frame outward.
func (p Path) Reversed() Path {
	r := make(Path, len(p))
	for i, f := range p {
		r[len(p)-1-i] = f
	}
	return r
}

// Nodes returns the node ids along p in path order.
func (p Path) Nodes() []string {
	ids := make([]string, len(p))
	for i, f := range p {
		ids[i] = f.Node
	}
	return ids
}

// FollowFunc decides which ports of n the walk continues through after
// entering n at port. An empty result ends the path at this frame.
type FollowFunc func(n *graph.Node, port string) ([]string, error)

type link struct {
	frame  Frame
	parent int32
	depth  int32
}

// Back enumerates every maximal backward path from (node, port). Paths come
// out in depth-first order following port declaration and edge insertion
// order. Continuation edges are never followed, and a frame already on the
// current path ends it.
func Back(g *graph.Graph, node, port string, follow FollowFunc) ([]Path, error) {
	start, err := g.Node(node)
	if err != nil {
		return nil, err
	}
	if start.Direction(port) == graph.DirNone {
		return nil, errors.PortNotFound(errors.PhaseWalk, node, port)
	}

	arena := []link{{frame: Frame{Node: node, Port: port}, parent: -1, depth: 1}}
	stack := []int32{0}
	var paths []Path
	var next []Frame

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		f := arena[cur].frame

		n, err := g.Node(f.Node)
		if err != nil {
			return nil, err
		}
		ports, err := follow(n, f.Port)
		if err != nil {
			return nil, err
		}

		next = next[:0]
		for _, p := range ports {
			for _, e := range g.InEdges(f.Node, p) {
				if e.Continuation {
					continue
				}
				nf := Frame{Node: e.From, Port: e.FromPort, Edge: e}
				if onPath(arena, cur, nf) {
					continue
				}
				next = append(next, nf)
			}
		}

		if len(next) == 0 {
			paths = append(paths, materialize(arena, cur))
			continue
		}
		depth := arena[cur].depth + 1
		for i := len(next) - 1; i >= 0; i-- {
			arena = append(arena, link{frame: next[i], parent: cur, depth: depth})
			stack = append(stack, int32(len(arena)-1))
		}
	}
	return paths, nil
}

func onPath(arena []link, at int32, f Frame) bool {
	for i := at; i >= 0; i = arena[i].parent {
		if arena[i].frame.Node == f.Node && arena[i].frame.Port == f.Port {
			return true
		}
	}
	return false
}

// materialize unrolls the links ending at leaf into data-flow order.
func materialize(arena []link, leaf int32) Path {
	p := make(Path, arena[leaf].depth)
	i := 0
	for at := leaf; at >= 0; at = arena[at].parent {
		p[i] = arena[at].frame
		i++
	}
	return p
}

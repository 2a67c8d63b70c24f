package continuation

import (
	"github.com/wippyai/dataflow-continuations/errors"
	"github.com/wippyai/dataflow-continuations/graph"
	"github.com/wippyai/dataflow-continuations/walk"
)

// InputPaths holds the backward paths of the three mux ports. Each path is
// in data-flow order, ending at the mux.
type InputPaths struct {
	Input1  []walk.Path
	Input2  []walk.Path
	Control []walk.Path
}

// Port returns the paths of the named mux port.
func (p InputPaths) Port(name string) []walk.Path {
	switch name {
	case graph.PortInput1:
		return p.Input1
	case graph.PortInput2:
		return p.Input2
	case graph.PortControl:
		return p.Control
	}
	return nil
}

// others returns the path sets of the two ports other than name.
func (p InputPaths) others(name string) [][]walk.Path {
	switch name {
	case graph.PortInput1:
		return [][]walk.Path{p.Control, p.Input2}
	case graph.PortInput2:
		return [][]walk.Path{p.Control, p.Input1}
	default:
		return [][]walk.Path{p.Input1, p.Input2}
	}
}

// MuxInputPaths walks backward from each input port of mux. Walks stop at the
// input ports of recursive function bodies and at the outputs of other muxes;
// compound nodes reached through an output are entered unless they are a
// recursive call or body.
func MuxInputPaths(g *graph.Graph, mux string) (InputPaths, error) {
	n, err := g.Node(mux)
	if err != nil {
		return InputPaths{}, err
	}
	if !n.IsMux() {
		return InputPaths{}, errors.New(errors.PhaseAnalyze, errors.KindInvalidInput).
			Node(mux).
			Detail("node is a %s, not a mux", n.Kind).
			Build()
	}

	follow := stopRule(mux)
	var paths InputPaths
	for _, port := range []string{graph.PortInput1, graph.PortInput2, graph.PortControl} {
		ps, err := walk.Back(g, mux, port, follow)
		if err != nil {
			return InputPaths{}, err
		}
		switch port {
		case graph.PortInput1:
			paths.Input1 = ps
		case graph.PortInput2:
			paths.Input2 = ps
		case graph.PortControl:
			paths.Control = ps
		}
	}
	return paths, nil
}

func stopRule(mux string) walk.FollowFunc {
	return func(n *graph.Node, port string) ([]string, error) {
		dir := n.Direction(port)
		switch {
		case n.RecursiveRoot && dir == graph.DirInput:
			// boundary of the enclosing function body
			return nil, nil
		case dir == graph.DirInput:
			return []string{port}, nil
		case n.IsMux() && n.ID != mux:
			return nil, nil
		case n.Kind == graph.KindCompound && dir == graph.DirOutput && !n.Recursive && !n.RecursiveRoot:
			return n.OutputNames(), nil
		default:
			return n.InputNames(), nil
		}
	}
}

package continuation

import (
	"github.com/wippyai/dataflow-continuations/errors"
	"github.com/wippyai/dataflow-continuations/graph"
	"github.com/wippyai/dataflow-continuations/walk"
)

// FirstRecursionOnPath returns the recursive call site nearest to mux on p.
// The boolean is false when p holds no recursive node.
func FirstRecursionOnPath(g *graph.Graph, mux string, p walk.Path) (walk.Frame, bool, error) {
	if len(p) == 0 {
		return walk.Frame{}, false, nil
	}
	if start := p.Start(); start.Node != mux {
		return walk.Frame{}, false, errors.New(errors.PhaseAnalyze, errors.KindInvalidInput).
			Node(mux).
			Detail("path starts at %q", start.Node).
			Build()
	}
	for i := len(p) - 1; i >= 0; i-- {
		n, err := g.Node(p[i].Node)
		if err != nil {
			return walk.Frame{}, false, err
		}
		if n.Recursive {
			return p[i], true, nil
		}
	}
	return walk.Frame{}, false, nil
}

// recursionsOn collects the first recursion of every path, one per node, in
// the order they are found.
func recursionsOn(g *graph.Graph, mux string, paths []walk.Path) ([]walk.Frame, error) {
	var found []walk.Frame
	seen := make(map[string]bool)
	for _, p := range paths {
		f, ok, err := FirstRecursionOnPath(g, mux, p)
		if err != nil {
			return nil, err
		}
		if !ok || seen[f.Node] {
			continue
		}
		seen[f.Node] = true
		found = append(found, f)
	}
	return found, nil
}

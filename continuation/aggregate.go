package continuation

import (
	"go.uber.org/zap"

	"github.com/wippyai/dataflow-continuations/graph"
	"github.com/wippyai/dataflow-continuations/internal/divergence"
	"github.com/wippyai/dataflow-continuations/walk"
)

// MuxContinuations is the continuation list of one mux.
type MuxContinuations struct {
	Mux           string
	Continuations []graph.Descriptor
}

// ForMux computes the continuations of mux: recursion descriptors first,
// then branching descriptors, then nested mux starts, each group ordered
// input1, input2, control. Entries are unique by (node, port).
func ForMux(g *graph.Graph, mux string, opts Options) (MuxContinuations, error) {
	if err := opts.Validate(); err != nil {
		return MuxContinuations{}, err
	}
	paths, err := MuxInputPaths(g, mux)
	if err != nil {
		return MuxContinuations{}, err
	}

	var recursions, branchings, starts []graph.Descriptor
	for _, port := range opts.ports() {
		suffixes := interestingSuffixes(g, paths, port)

		found, err := recursionsOn(g, mux, suffixes)
		if err != nil {
			return MuxContinuations{}, err
		}
		for _, f := range found {
			recursions = append(recursions, graph.Descriptor{
				Node: f.Node,
				Port: port,
				Type: graph.TypeRecursion,
			})
		}

		branchings = append(branchings, branchingPoints(suffixes, found, port)...)

		nested, err := muxStarts(g, paths.Port(port), port)
		if err != nil {
			return MuxContinuations{}, err
		}
		starts = append(starts, nested...)
	}

	result := MuxContinuations{
		Mux:           mux,
		Continuations: dedupe(recursions, branchings, starts),
	}
	Logger().Debug("mux analysed",
		zap.String("mux", mux),
		zap.Int("recursions", len(recursions)),
		zap.Int("branchings", len(branchings)),
		zap.Int("mux_starts", len(starts)),
		zap.Int("continuations", len(result.Continuations)))
	return result, nil
}

// interestingSuffixes trims every path of port to the frames between the
// mux and the deepest point it shares with the other two ports. Paths
// sharing nothing are kept whole.
func interestingSuffixes(g *graph.Graph, paths InputPaths, port string) []walk.Path {
	own := paths.Port(port)
	others := paths.others(port)
	result := make([]walk.Path, len(own))
	for i, p := range own {
		result[i] = p.Suffix(divergence.MaxLatestSplit(g, p, others...))
	}
	return result
}

// muxStarts reports the nested muxes that end full paths of port.
func muxStarts(g *graph.Graph, paths []walk.Path, port string) ([]graph.Descriptor, error) {
	var result []graph.Descriptor
	for _, p := range paths {
		t := p.Terminal()
		if t.IsStart() {
			continue
		}
		n, err := g.Node(t.Node)
		if err != nil {
			return nil, err
		}
		if n.IsMux() {
			result = append(result, graph.Descriptor{Node: t.Node, Port: port})
		}
	}
	return result, nil
}

func dedupe(groups ...[]graph.Descriptor) []graph.Descriptor {
	type key struct{ node, port string }
	seen := make(map[key]bool)
	var result []graph.Descriptor
	for _, group := range groups {
		for _, d := range group {
			k := key{d.Node, d.Port}
			if seen[k] {
				continue
			}
			seen[k] = true
			result = append(result, d)
		}
	}
	return result
}

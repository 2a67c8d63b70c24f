// Package divergence measures how far two backward paths from the same
// mux stay related before their node sequences part ways.
package divergence

import (
	"github.com/wippyai/dataflow-continuations/graph"
	"github.com/wippyai/dataflow-continuations/internal/bitset"
	"github.com/wippyai/dataflow-continuations/walk"
)

// LatestSplit returns the position, counted from the mux end of p with the
// mux itself at position 1, of the deepest frame of p whose node also occurs
// in q. The start frames of both paths are ignored. Zero means p and q share
// no node.
func LatestSplit(g *graph.Graph, p, q walk.Path) int {
	if len(p) < 2 || len(q) < 2 {
		return 0
	}
	return latestIn(g, p, nodeSet(g, q))
}

// MaxLatestSplit returns the largest LatestSplit of p against any path of
// the given sets.
func MaxLatestSplit(g *graph.Graph, p walk.Path, sets ...[]walk.Path) int {
	if len(p) < 2 {
		return 0
	}
	best := 0
	for _, set := range sets {
		for _, q := range set {
			if len(q) < 2 {
				continue
			}
			if d := latestIn(g, p, nodeSet(g, q)); d > best {
				best = d
			}
			if best == len(p) {
				return best
			}
		}
	}
	return best
}

// latestIn scans p from its terminal frame toward the mux; the first hit is
// the deepest one.
func latestIn(g *graph.Graph, p walk.Path, seen *bitset.Set) int {
	for i := 0; i < len(p)-1; i++ {
		if idx, ok := g.Index(p[i].Node); ok && seen.Has(idx) {
			return len(p) - i
		}
	}
	return 0
}

func nodeSet(g *graph.Graph, q walk.Path) *bitset.Set {
	s := bitset.New(g.Len())
	for _, f := range q[:len(q)-1] {
		if idx, ok := g.Index(f.Node); ok {
			s.Add(idx)
		}
	}
	return s
}

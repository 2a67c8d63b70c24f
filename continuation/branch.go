package continuation

import (
	"slices"

	"github.com/wippyai/dataflow-continuations/graph"
	"github.com/wippyai/dataflow-continuations/walk"
)

// branchingPoints finds where paths that avoid every recursion split off
// from paths leading to one. paths are the trimmed paths of one mux port and
// recursions the recursion frames found on them.
func branchingPoints(paths []walk.Path, recursions []walk.Frame, port string) []graph.Descriptor {
	if len(recursions) == 0 {
		return nil
	}
	recursive := make(map[string]bool, len(recursions))
	for _, f := range recursions {
		recursive[f.Node] = true
	}

	// Both sets read forward from the mux.
	var plain, toRecursion []walk.Path
	for _, p := range paths {
		if seg, ok := segmentToRecursion(p, recursive); ok {
			toRecursion = append(toRecursion, seg)
		} else {
			plain = append(plain, p.Reversed())
		}
	}
	if len(toRecursion) == 0 {
		return nil
	}

	type frameKey struct{ node, port string }
	seen := make(map[frameKey]bool)
	var order []string
	branchPorts := make(map[string][]string)

	for _, p := range plain {
		longest := -1
		for _, r := range toRecursion {
			if n := sharedPrefix(p, r); n > longest {
				longest = n
			}
		}
		if longest >= len(p) {
			continue
		}
		f := p[longest]
		if f.IsStart() {
			continue
		}
		k := frameKey{f.Node, f.Port}
		if seen[k] {
			continue
		}
		seen[k] = true

		target := f.Edge.To
		ports, known := branchPorts[target]
		if !known {
			order = append(order, target)
		}
		if !slices.Contains(ports, f.Edge.ToPort) {
			ports = append(ports, f.Edge.ToPort)
		}
		branchPorts[target] = ports
	}

	result := make([]graph.Descriptor, 0, len(order))
	for _, node := range order {
		result = append(result, graph.Descriptor{
			Node:        node,
			Port:        port,
			Type:        graph.TypeBranching,
			BranchPorts: branchPorts[node],
		})
	}
	return result
}

// segmentToRecursion returns the frames between the mux and the recursion
// nearest to it, mux first and recursion excluded.
func segmentToRecursion(p walk.Path, recursive map[string]bool) (walk.Path, bool) {
	for i := len(p) - 2; i >= 0; i-- {
		if recursive[p[i].Node] {
			return p[i+1:].Reversed(), true
		}
	}
	return nil, false
}

func sharedPrefix(a, b walk.Path) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i].Node != b[i].Node {
			return i
		}
	}
	return n
}

package continuation

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wippyai/dataflow-continuations/errors"
	"github.com/wippyai/dataflow-continuations/graph"
)

// Report summarizes one annotation run.
type Report struct {
	// Muxes lists every mux that received continuations, in node order.
	Muxes []MuxContinuations
	// RecursiveRoots lists the function bodies marked as recursive roots.
	RecursiveRoots []string
	// Edges is the number of continuation edges written.
	Edges int
}

// Annotate returns a copy of g carrying the continuations of every mux.
// Either the fully annotated graph or an error is returned; g is never
// modified.
func Annotate(g *graph.Graph, opts Options) (*graph.Graph, error) {
	out, _, err := AnnotateWithReport(g, opts)
	return out, err
}

// AnnotateWithReport is Annotate that also reports what was written.
func AnnotateWithReport(g *graph.Graph, opts Options) (*graph.Graph, Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, Report{}, err
	}

	all, err := analyse(g, g.Muxes(), opts)
	if err != nil {
		return nil, Report{}, err
	}

	var report Report
	for _, mc := range all {
		if len(mc.Continuations) > 0 {
			report.Muxes = append(report.Muxes, mc)
		}
	}

	targets, roots, err := continuationTargets(g, report.Muxes)
	if err != nil {
		return nil, Report{}, err
	}
	report.RecursiveRoots = roots

	out, edges, err := rebuild(g, report.Muxes, targets, roots)
	if err != nil {
		return nil, Report{}, err
	}
	report.Edges = edges

	Logger().Debug("graph annotated",
		zap.Int("muxes", len(g.Muxes())),
		zap.Int("annotated_muxes", len(report.Muxes)),
		zap.Int("continuation_edges", report.Edges),
		zap.Strings("recursive_roots", report.RecursiveRoots))
	return out, report, nil
}

// analyse runs ForMux over muxes. Results are stored by index so the output
// order never depends on scheduling.
func analyse(g *graph.Graph, muxes []string, opts Options) ([]MuxContinuations, error) {
	results := make([]MuxContinuations, len(muxes))

	if opts.Workers <= 1 {
		for i, mux := range muxes {
			mc, err := ForMux(g, mux, opts)
			if err != nil {
				return nil, err
			}
			results[i] = mc
		}
		return results, nil
	}

	eg, ctx := errgroup.WithContext(context.Background())
	eg.SetLimit(opts.Workers)
	for i, mux := range muxes {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			mc, err := ForMux(g, mux, opts)
			if err != nil {
				return err
			}
			results[i] = mc
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// continuationTargets maps each continuation target to the first descriptor
// naming it and expands recursive call sites to the function bodies they
// recurse into.
func continuationTargets(g *graph.Graph, muxes []MuxContinuations) (map[string]graph.Descriptor, []string, error) {
	targets := make(map[string]graph.Descriptor)
	seenRoot := make(map[string]bool)
	var roots []string

	for _, mc := range muxes {
		for _, d := range mc.Continuations {
			if _, ok := targets[d.Node]; !ok {
				targets[d.Node] = d
			}
			n, err := g.Node(d.Node)
			if err != nil {
				return nil, nil, err
			}
			if !n.Recursive {
				continue
			}
			if n.RecursesTo == nil {
				return nil, nil, errors.InvalidData(errors.PhaseAnnotate, n.ID, "recursive node has no recursesTo")
			}
			for _, id := range n.RecursesTo.Branch {
				if !g.HasNode(id) {
					return nil, nil, errors.New(errors.PhaseAnnotate, errors.KindNotFound).
						Node(id).
						Detail("recursesTo of %q names a missing node", n.ID).
						Build()
				}
				if !seenRoot[id] {
					seenRoot[id] = true
					roots = append(roots, id)
				}
			}
		}
	}
	return targets, roots, nil
}

// rebuild copies g into a fresh builder, sets the annotation fields and adds
// the continuation edges. It returns the number of edges written.
func rebuild(g *graph.Graph, muxes []MuxContinuations, targets map[string]graph.Descriptor, roots []string) (*graph.Graph, int, error) {
	isRoot := make(map[string]bool, len(roots))
	for _, id := range roots {
		isRoot[id] = true
	}
	lists := make(map[string][]graph.Descriptor, len(muxes))
	for _, mc := range muxes {
		lists[mc.Mux] = mc.Continuations
	}

	b := graph.NewBuilder()
	for _, n := range g.Nodes() {
		c := n.Clone()
		if isRoot[c.ID] {
			c.RecursiveRoot = true
			c.IsContinuation = &graph.Mark{}
		} else if d, ok := targets[c.ID]; ok {
			d = d.Clone()
			c.IsContinuation = &graph.Mark{Descriptor: &d}
		}
		if list, ok := lists[c.ID]; ok {
			c.Continuations = make([]graph.Descriptor, len(list))
			for i, d := range list {
				c.Continuations[i] = d.Clone()
			}
		}
		if err := b.AddNode(c); err != nil {
			return nil, 0, err
		}
	}

	for _, e := range g.Edges() {
		b.AddEdge(e)
	}
	edges := 0
	for _, mc := range muxes {
		for _, d := range mc.Continuations {
			b.AddEdge(graph.Edge{
				From:         mc.Mux,
				To:           d.Node,
				Name:         graph.ContinuationEdgeName(mc.Mux, d.Node, d.Port),
				Continuation: true,
				Control:      d.Port == graph.PortControl,
			})
			edges++
		}
	}

	out, err := b.Build()
	if err != nil {
		return nil, 0, err
	}
	return out, edges, nil
}

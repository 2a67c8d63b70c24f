// Package graph provides the dataflow graph model the continuation pass reads
// and produces.
//
// A graph is a set of nodes with ordered input and output ports, compound
// nesting via parent ids, and edges between (node, port) endpoints. Recursive
// functions appear as a compound body (RecursiveRoot) containing call sites
// flagged Recursive, with if/else expressed as mux nodes.
//
// # Lifecycle
//
// Graphs are assembled with a Builder and are immutable once built:
//
//	b := graph.NewBuilder()
//	b.AddNode(graph.Node{ID: "f", Kind: graph.KindCompound, ...})
//	b.AddEdge(graph.Edge{From: "f", FromPort: "n", To: "f:eq", ToPort: "a"})
//	g, err := b.Build()
//
// Pointers returned by lookups refer to the graph's own storage and must not
// be modified. Derived graphs are produced by cloning nodes into a new
// Builder, never by editing an existing graph.
//
// # Documents
//
// ReadJSON/WriteJSON and ReadYAML/WriteYAML use a graphlib-shaped document:
//
//	{"nodes": [{"v": id, "parent": p, "value": {...}}],
//	 "edges": [{"v": from, "w": to, "name": n, "value": {"outPort": .., "inPort": ..}}]}
//
// Port objects keep their key order, which fixes the order in which paths
// are enumerated.
package graph

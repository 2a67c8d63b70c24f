// Package dataflowcontinuations annotates dataflow graphs with the
// continuations their muxes introduce.
//
// The graphs encode recursive functions with explicit binary selector (mux)
// nodes instead of control flow. For every mux the annotation pass works out
// which downstream nodes must wait for a recursive call reachable from one of
// the mux operands, so a later compilation stage can emit trampolined or
// continuation-passing code.
//
// # Architecture Overview
//
// The module is organized into several packages with distinct responsibilities:
//
//	dataflowcontinuations/
//	├── graph/               Immutable graph model, builder, JSON and YAML documents
//	├── walk/                Backward path enumeration from a (node, port) pair
//	├── continuation/        Mux path collection, recursion and branch analysis, annotation
//	├── errors/              Structured error types for debugging
//	├── internal/divergence/ Deepest shared point of two backward paths
//	├── internal/bitset/     Dense node-index sets
//	├── internal/config/     YAML options file
//	└── cmd/contann/         Command line front end and interactive explorer
//
// # Quick Start
//
// Annotate a graph document:
//
//	g, err := graph.ReadJSON(f)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	annotated, err := continuation.Annotate(g, continuation.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	graph.WriteJSON(os.Stdout, annotated)
//
// # Annotations
//
// After the pass:
//
//   - every mux with continuations lists them, recursion first, then
//     branching points, then nested muxes
//   - every continuation target carries an isContinuation mark holding its
//     descriptor
//   - every function body a recursive call site belongs to is marked as a
//     recursive root with isContinuation set to true
//   - one continuation edge named "<mux>→→<target>@<port>" links each mux to
//     each of its targets
//
// Edge names are stable, so annotating an annotated graph again replaces the
// continuation edges instead of duplicating them.
//
// # Thread Safety
//
// A built graph.Graph is immutable and safe for concurrent reads. Annotate
// never modifies its input and returns a graph that shares no state with it.
package dataflowcontinuations

// Package continuation finds the continuations of every mux in a dataflow
// graph and writes them back as annotations.
//
// A mux is the dataflow form of an if/else. When one of its operands reaches
// a recursive call, the work downstream of that call cannot run until the
// call returns. The pass identifies those deferred nodes per mux:
//
//   - recursion continuations: the first recursive call site on an operand
//   - branching continuations: nodes where independent work joins a
//     recursion-carrying operand
//   - mux starts: nested muxes feeding an operand
//
// Annotate returns a new graph in which muxes carry their continuation list,
// targets carry an isContinuation mark, whole recursive function bodies are
// marked as recursive roots, and one continuation edge links each mux to each
// of its targets. The input graph is never modified.
//
// Basic usage:
//
//	out, err := continuation.Annotate(g, continuation.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//
// Per-mux analysis only reads the immutable input graph; Options.Workers
// spreads it over several goroutines without changing the result.
package continuation

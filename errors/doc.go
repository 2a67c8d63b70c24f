// Package errors provides structured error types for the continuation pass and
// the graph collaborators it drives.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type carries the offending node and port, a detail
// message and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseWalk, errors.KindNotFound).
//		Node("defco_factorial:mux_0").
//		Port("input3").
//		Detail("port is not declared").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NodeNotFound(errors.PhaseAnnotate, "defco_factorial")
//	err := errors.PortNotFound(errors.PhaseWalk, "mux_0", "input3")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors

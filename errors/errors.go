package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseLoad     Phase = "load"     // graph document decoding
	PhaseBuild    Phase = "build"    // graph construction
	PhaseWalk     Phase = "walk"     // backward path walking
	PhaseAnalyze  Phase = "analyze"  // per-mux continuation analysis
	PhaseAnnotate Phase = "annotate" // graph reconstruction
	PhaseConfig   Phase = "config"   // options and config files
)

// Kind categorizes the error
type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindDuplicate    Kind = "duplicate"
	KindInvalidData  Kind = "invalid_data"
	KindInvalidInput Kind = "invalid_input"
	KindUnsupported  Kind = "unsupported"
	KindDangling     Kind = "dangling_reference"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Node   string
	Port   string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Node != "" {
		b.WriteString(" at ")
		b.WriteString(e.Node)
		if e.Port != "" {
			b.WriteByte('@')
			b.WriteString(e.Port)
		}
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Node sets the offending node id
func (b *Builder) Node(id string) *Builder {
	b.err.Node = id
	return b
}

// Port sets the offending port name
func (b *Builder) Port(name string) *Builder {
	b.err.Port = name
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// NodeNotFound creates an error for a lookup of an unknown node
func NodeNotFound(phase Phase, id string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Node:   id,
		Detail: fmt.Sprintf("node %q not found", id),
	}
}

// PortNotFound creates an error for a port the node does not declare
func PortNotFound(phase Phase, node, port string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Node:   node,
		Port:   port,
		Detail: fmt.Sprintf("port %q is not declared", port),
	}
}

// DuplicateNode creates an error for a node id added twice
func DuplicateNode(phase Phase, id string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDuplicate,
		Node:   id,
		Detail: "duplicate node id",
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, node, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Node:   node,
		Detail: detail,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// ParseFailed creates a document parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}

// DanglingEdge is a single edge endpoint that names a node the graph lacks
type DanglingEdge struct {
	Edge    string // edge name
	Missing string // node id the edge refers to
}

// DanglingEdgesError is returned when a graph is built with edges whose
// endpoints were never added as nodes
type DanglingEdgesError struct {
	Edges []DanglingEdge
}

// NewDanglingEdgesError creates an error from (edge, missing node) pairs
func NewDanglingEdgesError(edges []DanglingEdge) *DanglingEdgesError {
	result := &DanglingEdgesError{
		Edges: make([]DanglingEdge, len(edges)),
	}
	copy(result.Edges, edges)
	return result
}

func (e *DanglingEdgesError) Error() string {
	if len(e.Edges) == 0 {
		return "[build] dangling_reference: no edges specified"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%d edge(s) reference missing nodes:\n", len(e.Edges)))

	// Group by missing node for cleaner output
	byNode := make(map[string][]string)
	var order []string
	for _, d := range e.Edges {
		if _, exists := byNode[d.Missing]; !exists {
			order = append(order, d.Missing)
		}
		byNode[d.Missing] = append(byNode[d.Missing], d.Edge)
	}

	for _, node := range order {
		b.WriteString("\n  ")
		b.WriteString(node)
		b.WriteString(":\n")
		for _, edge := range byNode[node] {
			b.WriteString("    - ")
			b.WriteString(edge)
			b.WriteByte('\n')
		}
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// Is reports whether target matches this error type
func (e *DanglingEdgesError) Is(target error) bool {
	_, ok := target.(*DanglingEdgesError)
	return ok
}

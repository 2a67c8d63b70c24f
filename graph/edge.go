package graph

// Edge connects an output (or compound input) port to an input (or compound
// output) port. Continuation edges added by the pass carry no ports.
type Edge struct {
	From         string
	FromPort     string
	To           string
	ToPort       string
	Name         string
	Continuation bool
	Control      bool // continuation belongs to the mux control port
}

// DefaultEdgeName is the name given to edges added without one.
func DefaultEdgeName(from, fromPort, to, toPort string) string {
	return from + "@" + fromPort + "→" + to + "@" + toPort
}

// ContinuationEdgeName is the stable name of the edge linking a mux to one of
// its continuations. Re-annotating a graph reuses the same names.
func ContinuationEdgeName(mux, target, port string) string {
	return mux + "→→" + target + "@" + port
}

package graph

import "slices"

// MuxComponent is the component id of the binary selector node.
const MuxComponent = "logic/mux"

// Mux port names.
const (
	PortControl = "control"
	PortInput1  = "input1"
	PortInput2  = "input2"
)

// Kind classifies a node. It is resolved once when the node enters a
// Builder so traversals never compare component strings.
type Kind uint8

const (
	KindAtomic Kind = iota
	KindCompound
	KindMux
)

func (k Kind) String() string {
	switch k {
	case KindAtomic:
		return "atomic"
	case KindCompound:
		return "compound"
	case KindMux:
		return "mux"
	default:
		return "unknown"
	}
}

// ResolveKind derives the node kind from its component id and atomic flag.
func ResolveKind(component string, atomic bool) Kind {
	switch {
	case component == MuxComponent:
		return KindMux
	case atomic:
		return KindAtomic
	default:
		return KindCompound
	}
}

// Direction tells whether a port is an input or an output of a node.
type Direction uint8

const (
	DirNone Direction = iota
	DirInput
	DirOutput
)

// Port is a declared node port. Type is opaque to the pass.
type Port struct {
	Name string
	Type string
}

// RecursesTo names the nodes forming the function body a recursive call
// site refers to.
type RecursesTo struct {
	Branch []string
}

// ContinuationType is the reason a descriptor was emitted. Mux-start
// descriptors have no type.
type ContinuationType string

const (
	TypeNone      ContinuationType = ""
	TypeRecursion ContinuationType = "recursion"
	TypeBranching ContinuationType = "branching"
)

// Descriptor names a node whose execution is deferred behind a mux operand.
type Descriptor struct {
	Node        string
	Port        string // mux port the continuation belongs to
	Type        ContinuationType
	BranchPorts []string // inbound ports of merged branches (branching only)
}

// Clone returns a deep copy of d.
func (d Descriptor) Clone() Descriptor {
	d.BranchPorts = slices.Clone(d.BranchPorts)
	return d
}

// Mark is the isContinuation annotation. A nil Descriptor marks a whole
// recursive function body ("true").
type Mark struct {
	Descriptor *Descriptor
}

// Clone returns a deep copy of m.
func (m *Mark) Clone() *Mark {
	if m == nil {
		return nil
	}
	if m.Descriptor == nil {
		return &Mark{}
	}
	d := m.Descriptor.Clone()
	return &Mark{Descriptor: &d}
}

// Node is a graph vertex.
type Node struct {
	RecursesTo     *RecursesTo
	IsContinuation *Mark
	ID             string
	Component      string
	Parent         string
	InputPorts     []Port
	OutputPorts    []Port
	Continuations  []Descriptor // set on annotated muxes only
	Kind           Kind
	Recursive      bool
	RecursiveRoot  bool
}

// Direction reports whether port is declared as an input or output of n.
func (n *Node) Direction(port string) Direction {
	if hasPort(n.InputPorts, port) {
		return DirInput
	}
	if hasPort(n.OutputPorts, port) {
		return DirOutput
	}
	return DirNone
}

// InputNames returns the input port names in declaration order.
func (n *Node) InputNames() []string {
	return portNames(n.InputPorts)
}

// OutputNames returns the output port names in declaration order.
func (n *Node) OutputNames() []string {
	return portNames(n.OutputPorts)
}

// IsMux reports whether n is a binary selector.
func (n *Node) IsMux() bool {
	return n.Kind == KindMux
}

// Clone returns a deep copy of n. Annotations are reconstructed on clones,
// never merged into shared records.
func (n *Node) Clone() Node {
	c := *n
	c.InputPorts = slices.Clone(n.InputPorts)
	c.OutputPorts = slices.Clone(n.OutputPorts)
	if n.RecursesTo != nil {
		c.RecursesTo = &RecursesTo{Branch: slices.Clone(n.RecursesTo.Branch)}
	}
	c.IsContinuation = n.IsContinuation.Clone()
	if n.Continuations != nil {
		c.Continuations = make([]Descriptor, len(n.Continuations))
		for i, d := range n.Continuations {
			c.Continuations[i] = d.Clone()
		}
	}
	return c
}

func hasPort(ports []Port, name string) bool {
	for _, p := range ports {
		if p.Name == name {
			return true
		}
	}
	return false
}

func portNames(ports []Port) []string {
	names := make([]string, len(ports))
	for i, p := range ports {
		names[i] = p.Name
	}
	return names
}

package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/wippyai/dataflow-continuations/errors"
)

type document struct {
	Options json.RawMessage `json:"options,omitempty"`
	Nodes   []nodeEntry     `json:"nodes"`
	Edges   []edgeEntry     `json:"edges"`
}

type nodeEntry struct {
	V      string    `json:"v"`
	Parent string    `json:"parent,omitempty"`
	Value  nodeValue `json:"value"`
}

type nodeValue struct {
	Atomic        *bool       `json:"atomic,omitempty"`
	RecursesTo    *recursesTo `json:"recursesTo,omitempty"`
	Params        *params     `json:"params,omitempty"`
	ID            string      `json:"id,omitempty"`
	InputPorts    portMap     `json:"inputPorts,omitempty"`
	OutputPorts   portMap     `json:"outputPorts,omitempty"`
	Recursive     bool        `json:"recursive,omitempty"`
	RecursiveRoot bool        `json:"recursiveRoot,omitempty"`
}

type recursesTo struct {
	Branch stringList `json:"branch"`
}

type params struct {
	IsContinuation json.RawMessage `json:"isContinuation,omitempty"`
	Continuations  []descriptor    `json:"continuations,omitempty"`
}

type descriptor struct {
	Node        string   `json:"node"`
	Port        string   `json:"port"`
	Type        string   `json:"type,omitempty"`
	BranchPorts []string `json:"branchPorts,omitempty"`
}

type edgeEntry struct {
	V     string    `json:"v"`
	W     string    `json:"w"`
	Name  string    `json:"name,omitempty"`
	Value edgeValue `json:"value"`
}

type edgeValue struct {
	OutPort      string `json:"outPort,omitempty"`
	InPort       string `json:"inPort,omitempty"`
	Continuation bool   `json:"continuation,omitempty"`
	Control      bool   `json:"control,omitempty"`
}

var defaultOptions = json.RawMessage(`{"directed":true,"multigraph":true,"compound":true}`)

// portMap is an ordered {name: type} object.
type portMap []Port

func (m portMap) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, p := range m {
		if i > 0 {
			b.WriteByte(',')
		}
		name, err := json.Marshal(p.Name)
		if err != nil {
			return nil, err
		}
		typ, err := json.Marshal(p.Type)
		if err != nil {
			return nil, err
		}
		b.Write(name)
		b.WriteByte(':')
		b.Write(typ)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

func (m *portMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*m = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("ports: expected object, got %v", tok)
	}
	var ports []Port
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := keyTok.(string)
		var typ any
		if err := dec.Decode(&typ); err != nil {
			return fmt.Errorf("port %q: %w", name, err)
		}
		ports = append(ports, Port{Name: name, Type: typeString(typ)})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*m = ports
	return nil
}

func typeString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(data)
	}
}

// stringList accepts a single string or a list of strings.
type stringList []string

func (l stringList) MarshalJSON() ([]byte, error) {
	if len(l) == 1 {
		return json.Marshal(l[0])
	}
	return json.Marshal([]string(l))
}

func (l *stringList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*l = stringList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("expected string or list of strings: %w", err)
	}
	*l = many
	return nil
}

// ReadJSON decodes a graph document.
func ReadJSON(r io.Reader) (*Graph, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.ParseFailed("graph document", err)
	}
	return doc.build()
}

// WriteJSON encodes g as an indented graph document.
func WriteJSON(w io.Writer, g *Graph) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(newDocument(g))
}

// MarshalJSON implements json.Marshaler.
func (g *Graph) MarshalJSON() ([]byte, error) {
	return json.Marshal(newDocument(g))
}

func (doc *document) build() (*Graph, error) {
	b := NewBuilder()
	for _, entry := range doc.Nodes {
		n, err := entry.node()
		if err != nil {
			return nil, err
		}
		if err := b.AddNode(n); err != nil {
			return nil, err
		}
	}
	for _, entry := range doc.Edges {
		b.AddEdge(Edge{
			From:         entry.V,
			FromPort:     entry.Value.OutPort,
			To:           entry.W,
			ToPort:       entry.Value.InPort,
			Name:         entry.Name,
			Continuation: entry.Value.Continuation,
			Control:      entry.Value.Control,
		})
	}
	return b.Build()
}

func (entry *nodeEntry) node() (Node, error) {
	v := entry.Value
	atomic := v.Atomic == nil || *v.Atomic
	n := Node{
		ID:            entry.V,
		Component:     v.ID,
		Parent:        entry.Parent,
		Kind:          ResolveKind(v.ID, atomic),
		InputPorts:    []Port(v.InputPorts),
		OutputPorts:   []Port(v.OutputPorts),
		Recursive:     v.Recursive,
		RecursiveRoot: v.RecursiveRoot,
	}
	if v.RecursesTo != nil {
		n.RecursesTo = &RecursesTo{Branch: []string(v.RecursesTo.Branch)}
	}
	if v.Params != nil {
		mark, err := decodeMark(v.Params.IsContinuation)
		if err != nil {
			return Node{}, errors.New(errors.PhaseLoad, errors.KindInvalidData).
				Node(entry.V).
				Detail("isContinuation").
				Cause(err).
				Build()
		}
		n.IsContinuation = mark
		for _, d := range v.Params.Continuations {
			n.Continuations = append(n.Continuations, d.toDescriptor())
		}
	}
	return n, nil
}

// decodeMark reads an isContinuation value: true, false, null or a descriptor.
func decodeMark(raw json.RawMessage) (*Mark, error) {
	trimmed := bytes.TrimSpace(raw)
	switch {
	case len(trimmed) == 0, bytes.Equal(trimmed, []byte("null")), bytes.Equal(trimmed, []byte("false")):
		return nil, nil
	case bytes.Equal(trimmed, []byte("true")):
		return &Mark{}, nil
	}
	var d descriptor
	if err := json.Unmarshal(trimmed, &d); err != nil {
		return nil, err
	}
	desc := d.toDescriptor()
	return &Mark{Descriptor: &desc}, nil
}

func encodeMark(m *Mark) (json.RawMessage, error) {
	if m == nil {
		return nil, nil
	}
	if m.Descriptor == nil {
		return json.RawMessage("true"), nil
	}
	return json.Marshal(fromDescriptor(*m.Descriptor))
}

func (d descriptor) toDescriptor() Descriptor {
	return Descriptor{
		Node:        d.Node,
		Port:        d.Port,
		Type:        ContinuationType(d.Type),
		BranchPorts: d.BranchPorts,
	}
}

func fromDescriptor(d Descriptor) descriptor {
	return descriptor{
		Node:        d.Node,
		Port:        d.Port,
		Type:        string(d.Type),
		BranchPorts: d.BranchPorts,
	}
}

func newDocument(g *Graph) *document {
	doc := &document{
		Options: defaultOptions,
		Nodes:   make([]nodeEntry, 0, len(g.nodes)),
		Edges:   make([]edgeEntry, 0, len(g.edges)),
	}
	for i := range g.nodes {
		doc.Nodes = append(doc.Nodes, newNodeEntry(&g.nodes[i]))
	}
	for _, e := range g.edges {
		doc.Edges = append(doc.Edges, edgeEntry{
			V:    e.From,
			W:    e.To,
			Name: e.Name,
			Value: edgeValue{
				OutPort:      e.FromPort,
				InPort:       e.ToPort,
				Continuation: e.Continuation,
				Control:      e.Control,
			},
		})
	}
	return doc
}

func newNodeEntry(n *Node) nodeEntry {
	atomic := n.Kind != KindCompound
	v := nodeValue{
		Atomic:        &atomic,
		ID:            n.Component,
		InputPorts:    portMap(n.InputPorts),
		OutputPorts:   portMap(n.OutputPorts),
		Recursive:     n.Recursive,
		RecursiveRoot: n.RecursiveRoot,
	}
	if n.RecursesTo != nil {
		v.RecursesTo = &recursesTo{Branch: stringList(n.RecursesTo.Branch)}
	}
	// encodeMark only fails on descriptors json cannot encode, which have
	// string fields only.
	mark, _ := encodeMark(n.IsContinuation)
	if mark != nil || n.Continuations != nil {
		p := &params{IsContinuation: mark}
		for _, d := range n.Continuations {
			p.Continuations = append(p.Continuations, fromDescriptor(d))
		}
		v.Params = p
	}
	return nodeEntry{V: n.ID, Parent: n.Parent, Value: v}
}

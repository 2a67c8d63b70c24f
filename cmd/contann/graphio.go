package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/wippyai/dataflow-continuations/graph"
)

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func readGraph(path string) (*graph.Graph, error) {
	if path == "" {
		return nil, fmt.Errorf("no input graph given (use --input)")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open graph: %w", err)
	}
	defer f.Close()

	var g *graph.Graph
	if isYAML(path) {
		g, err = graph.ReadYAML(f)
	} else {
		g, err = graph.ReadJSON(f)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return g, nil
}

// writeGraph writes g to path, or as JSON to stdout when path is empty or "-".
func writeGraph(stdout io.Writer, path string, g *graph.Graph) error {
	if path == "" || path == "-" {
		return graph.WriteJSON(stdout, g)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if isYAML(path) {
		err = graph.WriteYAML(f, g)
	} else {
		err = graph.WriteJSON(f, g)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/wippyai/dataflow-continuations/continuation"
	"github.com/wippyai/dataflow-continuations/graph"
	"github.com/wippyai/dataflow-continuations/walk"
)

type theme struct {
	title    lipgloss.Style
	mux      lipgloss.Style
	node     lipgloss.Style
	kind     lipgloss.Style
	selected lipgloss.Style
	err      lipgloss.Style
	help     lipgloss.Style
}

func styledTheme() theme {
	return theme{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1),
		mux:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#98FB98")),
		node: lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
		kind: lipgloss.NewStyle().Foreground(lipgloss.Color("#90EE90")),
		selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")),
		err:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		help: lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
	}
}

func plainTheme() theme {
	s := lipgloss.NewStyle()
	return theme{title: s, mux: s, node: s, kind: s, selected: s, err: s, help: s}
}

// stdoutTheme styles output only when stdout is a terminal.
func stdoutTheme() theme {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return styledTheme()
	}
	return plainTheme()
}

func (th theme) descriptor(d graph.Descriptor) string {
	var b strings.Builder
	b.WriteString(th.node.Render(d.Node))
	b.WriteString(" @")
	b.WriteString(d.Port)
	kind := string(d.Type)
	if d.Type == graph.TypeNone {
		kind = "mux start"
	}
	b.WriteString(" ")
	b.WriteString(th.kind.Render(kind))
	if len(d.BranchPorts) > 0 {
		fmt.Fprintf(&b, " via %s", strings.Join(d.BranchPorts, ", "))
	}
	return b.String()
}

// path renders p from the mux outward.
func (th theme) path(p walk.Path) string {
	parts := make([]string, len(p))
	for i, f := range p.Reversed() {
		parts[i] = th.node.Render(f.Node) + "@" + f.Port
	}
	return strings.Join(parts, " ← ")
}

func (th theme) muxContinuations(mc continuation.MuxContinuations) string {
	var b strings.Builder
	b.WriteString(th.mux.Render(mc.Mux))
	b.WriteString("\n")
	if len(mc.Continuations) == 0 {
		b.WriteString("  ")
		b.WriteString(th.help.Render("no continuations"))
		b.WriteString("\n")
		return b.String()
	}
	for _, d := range mc.Continuations {
		b.WriteString("  ")
		b.WriteString(th.descriptor(d))
		b.WriteString("\n")
	}
	return b.String()
}

func (th theme) inputPaths(paths continuation.InputPaths) string {
	var b strings.Builder
	for _, port := range []string{graph.PortInput1, graph.PortInput2, graph.PortControl} {
		ps := paths.Port(port)
		fmt.Fprintf(&b, "%s (%d)\n", th.kind.Render(port), len(ps))
		for _, p := range ps {
			b.WriteString("  ")
			b.WriteString(th.path(p))
			b.WriteString("\n")
		}
	}
	return b.String()
}

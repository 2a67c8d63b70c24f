package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/wippyai/dataflow-continuations/continuation"
	"github.com/wippyai/dataflow-continuations/graph"
)

func newExploreCmd(global *globalFlags) *cobra.Command {
	var includeControl bool

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Browse muxes, continuations and paths interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := continuation.DefaultOptions()
			opts.IncludeControl = includeControl
			p := tea.NewProgram(newExploreModel(global.input, opts), tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}
	cmd.Flags().BoolVar(&includeControl, "include-control", false, "analyse the control port too")
	return cmd
}

type muxEntry struct {
	paths continuation.InputPaths
	mc    continuation.MuxContinuations
}

type exploreState int

const (
	stateBrowse exploreState = iota
	stateDetail
)

type exploreModel struct {
	err      error
	filename string
	entries  []muxEntry
	visible  []int
	filter   textinput.Model
	th       theme
	opts     continuation.Options
	selected int
	state    exploreState
	loaded   bool
}

type loadedMsg struct {
	err     error
	entries []muxEntry
}

func newExploreModel(filename string, opts continuation.Options) *exploreModel {
	ti := textinput.New()
	ti.Placeholder = "filter muxes"
	ti.Prompt = "/ "
	ti.Width = 40
	ti.Focus()

	return &exploreModel{
		filename: filename,
		filter:   ti,
		th:       styledTheme(),
		opts:     opts,
		state:    stateBrowse,
	}
}

func (m *exploreModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.load)
}

func (m *exploreModel) load() tea.Msg {
	g, err := readGraph(m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}
	return analyseMuxes(g, m.opts)
}

func analyseMuxes(g *graph.Graph, opts continuation.Options) loadedMsg {
	var entries []muxEntry
	for _, mux := range g.Muxes() {
		paths, err := continuation.MuxInputPaths(g, mux)
		if err != nil {
			return loadedMsg{err: err}
		}
		mc, err := continuation.ForMux(g, mux, opts)
		if err != nil {
			return loadedMsg{err: err}
		}
		entries = append(entries, muxEntry{paths: paths, mc: mc})
	}
	return loadedMsg{entries: entries}
}

func (m *exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.state == stateDetail {
				m.state = stateBrowse
				return m, nil
			}
			return m, tea.Quit

		case "up":
			if m.state == stateBrowse && m.selected > 0 {
				m.selected--
			}
			return m, nil

		case "down":
			if m.state == stateBrowse && m.selected < len(m.visible)-1 {
				m.selected++
			}
			return m, nil

		case "enter":
			if m.state == stateBrowse && len(m.visible) > 0 {
				m.state = stateDetail
			} else if m.state == stateDetail {
				m.state = stateBrowse
			}
			return m, nil
		}

	case loadedMsg:
		m.loaded = true
		m.err = msg.err
		m.entries = msg.entries
		m.refilter()
		return m, nil
	}

	if m.state != stateBrowse {
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.refilter()
	return m, cmd
}

func (m *exploreModel) refilter() {
	q := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	m.visible = m.visible[:0]
	for i, e := range m.entries {
		if q == "" || strings.Contains(strings.ToLower(e.mc.Mux), q) {
			m.visible = append(m.visible, i)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = max(len(m.visible)-1, 0)
	}
}

func (m *exploreModel) View() string {
	if m.err != nil {
		return m.th.err.Render(fmt.Sprintf("Error: %v\n\nPress esc to quit.", m.err))
	}
	if !m.loaded {
		return "Loading graph..."
	}

	var b strings.Builder
	b.WriteString(m.th.title.Render("Continuation Explorer"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	switch m.state {
	case stateBrowse:
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
		if len(m.visible) == 0 {
			b.WriteString(m.th.help.Render("no matching muxes"))
			b.WriteString("\n")
		}
		for i, idx := range m.visible {
			mc := m.entries[idx].mc
			line := fmt.Sprintf("%s (%d)", mc.Mux, len(mc.Continuations))
			if i == m.selected {
				b.WriteString(m.th.selected.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(m.th.help.Render("type to filter • ↑/↓ select • enter details • esc quit"))

	case stateDetail:
		e := m.entries[m.visible[m.selected]]
		b.WriteString(m.th.muxContinuations(e.mc))
		b.WriteString("\n")
		b.WriteString(m.th.inputPaths(e.paths))
		b.WriteString("\n")
		b.WriteString(m.th.help.Render("enter/esc back • ctrl+c quit"))
	}

	return b.String()
}

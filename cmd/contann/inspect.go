package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/wippyai/dataflow-continuations/continuation"
	"github.com/wippyai/dataflow-continuations/graph"
)

func newInspectCmd(global *globalFlags) *cobra.Command {
	var includeControl bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "List the continuations of every mux",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := readGraph(global.input)
			if err != nil {
				return err
			}
			opts := continuation.DefaultOptions()
			opts.IncludeControl = includeControl
			return inspect(cmd.OutOrStdout(), stdoutTheme(), g, opts)
		},
	}
	cmd.Flags().BoolVar(&includeControl, "include-control", false, "analyse the control port too")
	return cmd
}

func inspect(w io.Writer, th theme, g *graph.Graph, opts continuation.Options) error {
	muxes := g.Muxes()
	fmt.Fprintf(w, "%s %d mux(es)\n\n", th.title.Render("Continuations"), len(muxes))
	for _, mux := range muxes {
		mc, err := continuation.ForMux(g, mux, opts)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, th.muxContinuations(mc)); err != nil {
			return err
		}
	}
	return nil
}

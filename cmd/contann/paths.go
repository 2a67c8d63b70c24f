package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/wippyai/dataflow-continuations/continuation"
)

func newPathsCmd(global *globalFlags) *cobra.Command {
	var mux string

	cmd := &cobra.Command{
		Use:   "paths",
		Short: "Print the backward paths of a mux's input ports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := readGraph(global.input)
			if err != nil {
				return err
			}
			paths, err := continuation.MuxInputPaths(g, mux)
			if err != nil {
				return err
			}
			th := stdoutTheme()
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s %s\n\n", th.title.Render("Paths"), th.mux.Render(mux))
			_, err = io.WriteString(w, th.inputPaths(paths))
			return err
		},
	}
	cmd.Flags().StringVar(&mux, "mux", "", "mux node id")
	_ = cmd.MarkFlagRequired("mux")
	return cmd
}

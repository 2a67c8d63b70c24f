package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/dataflow-continuations/continuation"
)

var log = zap.NewNop()

type globalFlags struct {
	input   string
	verbose bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:   "contann",
		Short: "Annotate dataflow graphs with mux continuations",
		Long: `contann finds, for every mux of a dataflow graph, the nodes whose execution
must wait for a recursive call reachable from one of the mux operands, and
writes them back into the graph as continuation annotations.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(flags.verbose)
		},
	}
	root.PersistentFlags().StringVarP(&flags.input, "input", "i", "", "graph document (.json, .yaml or .yml)")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newAnnotateCmd(&flags),
		newInspectCmd(&flags),
		newPathsCmd(&flags),
		newExploreCmd(&flags),
	)
	return root
}

func setupLogging(verbose bool) error {
	if !verbose {
		log = zap.NewNop()
		continuation.SetLogger(log)
		return nil
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	log = l
	continuation.SetLogger(l)
	return nil
}

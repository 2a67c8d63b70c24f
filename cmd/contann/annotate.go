package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/dataflow-continuations/continuation"
	"github.com/wippyai/dataflow-continuations/internal/config"
)

type annotateFlags struct {
	output         string
	configPath     string
	includeControl bool
	workers        int
}

func newAnnotateCmd(global *globalFlags) *cobra.Command {
	var flags annotateFlags

	cmd := &cobra.Command{
		Use:   "annotate",
		Short: "Write the annotated graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := resolveOptions(cmd, flags)
			if err != nil {
				return err
			}
			g, err := readGraph(global.input)
			if err != nil {
				return err
			}

			out, report, err := continuation.AnnotateWithReport(g, opts)
			if err != nil {
				return err
			}
			log.Info("graph annotated",
				zap.String("input", global.input),
				zap.Int("muxes", len(report.Muxes)),
				zap.Int("continuation_edges", report.Edges),
				zap.Strings("recursive_roots", report.RecursiveRoots))

			return writeGraph(cmd.OutOrStdout(), flags.output, out)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (.json, .yaml or .yml); stdout when empty")
	cmd.Flags().StringVar(&flags.configPath, "config", "", "YAML options file")
	cmd.Flags().BoolVar(&flags.includeControl, "include-control", false, "analyse the control port too")
	cmd.Flags().IntVar(&flags.workers, "workers", 1, "muxes analysed concurrently")
	return cmd
}

// resolveOptions layers explicitly set flags over the config file.
func resolveOptions(cmd *cobra.Command, flags annotateFlags) (continuation.Options, error) {
	file := config.Default()
	if flags.configPath != "" {
		var err error
		if file, err = config.Load(flags.configPath); err != nil {
			return continuation.Options{}, err
		}
	}
	if cmd.Flags().Changed("include-control") {
		file.IncludeControl = flags.includeControl
	}
	if cmd.Flags().Changed("workers") {
		file.Workers = flags.workers
	}
	return file.Options()
}

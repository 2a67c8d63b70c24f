package continuation

import (
	"fmt"

	"github.com/wippyai/dataflow-continuations/errors"
	"github.com/wippyai/dataflow-continuations/graph"
)

// Mode selects how aggressively continuations are introduced.
type Mode string

// ModeOnlyNecessary annotates only what recursion forces to be deferred.
const ModeOnlyNecessary Mode = "only necessary"

// Options configures the pass.
type Options struct {
	// Mode must be ModeOnlyNecessary or empty.
	Mode Mode
	// IncludeControl runs recursion, branching and mux-start analysis on the
	// control port as well as on input1 and input2.
	IncludeControl bool
	// Workers bounds how many muxes Annotate analyses concurrently.
	// Zero or one analyses them one after another.
	Workers int
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{Mode: ModeOnlyNecessary, Workers: 1}
}

// Validate checks that the options name a supported configuration.
func (o Options) Validate() error {
	switch o.Mode {
	case "", ModeOnlyNecessary:
	default:
		return errors.Unsupported(errors.PhaseConfig, fmt.Sprintf("mode %q", o.Mode))
	}
	if o.Workers < 0 {
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Value(o.Workers).
			Detail("workers must not be negative").
			Build()
	}
	return nil
}

// ports returns the mux ports taking part in the analysis, in output order.
func (o Options) ports() []string {
	if o.IncludeControl {
		return []string{graph.PortInput1, graph.PortInput2, graph.PortControl}
	}
	return []string{graph.PortInput1, graph.PortInput2}
}

package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/ratenum/internal/config"
	"github.com/agbru/ratenum/internal/rationals"
	"github.com/agbru/ratenum/internal/ui"
)

// GetSequencesToRun returns fresh sequences for the configured kind, or one
// per registered kind, in sorted order, when the kind is "all". Unknown
// kinds yield nil.
func GetSequencesToRun(cfg config.AppConfig, factory rationals.Factory) []rationals.Sequence {
	if cfg.Kind == config.AllKinds {
		names := factory.List()
		sequences := make([]rationals.Sequence, 0, len(names))
		for _, name := range names {
			if seq, err := factory.Create(name); err == nil {
				sequences = append(sequences, seq)
			}
		}
		return sequences
	}
	if seq, err := factory.Create(cfg.Kind); err == nil {
		return []rationals.Sequence{seq}
	}
	return nil
}

// PrintExecutionConfig describes the run about to start.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	if cfg.HasAt {
		fmt.Fprintf(out, "Computing %sq(%d)%s", ui.ColorMagenta(), cfg.At, ui.ColorReset())
	} else {
		fmt.Fprintf(out, "Listing %s%d%s values from index %s%d%s",
			ui.ColorMagenta(), cfg.Count, ui.ColorReset(), ui.ColorMagenta(), cfg.Offset, ui.ColorReset())
	}
	fmt.Fprintf(out, " with a timeout of %s%s%s.\n", ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
}

// PrintExecutionMode announces a single kind run or a comparison.
func PrintExecutionMode(sequences []rationals.Sequence, out io.Writer) {
	var modeDesc string
	if len(sequences) > 1 {
		modeDesc = fmt.Sprintf("Parallel comparison of %d integer kinds", len(sequences))
	} else {
		modeDesc = fmt.Sprintf("Single enumeration with the %s%s%s kind",
			ui.ColorGreen(), sequences[0].Kind(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}

// Package orchestration runs one enumerator per integer kind concurrently up
// to the same index and compares what they produced. Each goroutine owns its
// sequence; no sequence is ever shared between goroutines.
package orchestration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/ratenum/internal/cli"
	"github.com/agbru/ratenum/internal/config"
	apperrors "github.com/agbru/ratenum/internal/errors"
	"github.com/agbru/ratenum/internal/rationals"
	"github.com/agbru/ratenum/internal/ui"
)

// SkipResult is the outcome of skipping one sequence to the target index.
type SkipResult struct {
	// Kind is the integer kind of the sequence.
	Kind string
	// Term is the value reached; zero when Err is set.
	Term rationals.Term
	// Duration is the time the skip took.
	Duration time.Duration
	// Err is a context error or a range exhaustion.
	Err error
}

// ProgressBufferMultiplier sizes the progress channel per sequence, so slow
// redraws rarely drop updates.
const ProgressBufferMultiplier = 5

// ExecuteSkips skips every sequence to index concurrently and returns the
// results in the order of sequences. Progress is drawn to out, exported to
// the progress gauge and logged at debug level.
//
// Parameters:
//   - ctx: Cancels every skip.
//   - sequences: The sequences to run; each is used by one goroutine only.
//   - index: The zero-based target index.
//   - out: Receives the progress display; io.Discard hides it.
//
// Returns:
//   - []SkipResult: One result per sequence.
func ExecuteSkips(ctx context.Context, sequences []rationals.Sequence, index uint64, out io.Writer) []SkipResult {
	ctx, span := otel.Tracer("orchestration").Start(ctx, "ExecuteSkips")
	defer span.End()
	span.SetAttributes(attribute.Int("sequences", len(sequences)), attribute.Int64("index", int64(index)))

	g, ctx := errgroup.WithContext(ctx)
	results := make([]SkipResult, len(sequences))
	progressChan := make(chan rationals.ProgressUpdate, len(sequences)*ProgressBufferMultiplier)

	metrics := rationals.NewMetricsObserver()
	metrics.ResetMetrics()
	subject := rationals.NewProgressSubject()
	subject.Register(rationals.NewChannelObserver(progressChan))
	subject.Register(metrics)
	subject.Register(rationals.NewLoggingObserver(log.Logger, 0.25))

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go cli.DisplayProgress(&displayWg, progressChan, len(sequences), out)

	for i, seq := range sequences {
		g.Go(func() error {
			start := time.Now()
			term, err := seq.Skip(ctx, index, subject.AsProgressReporter(i))
			results[i] = SkipResult{Kind: seq.Kind(), Term: term, Duration: time.Since(start), Err: err}
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// AnalyzeComparisonResults prints a summary table of results and the agreed
// value, and returns the exit code of the comparison.
//
// Kinds whose range is exhausted before the index are reported but do not
// fail the comparison. The run fails when no kind reached the index, and is
// a mismatch when two kinds that did reach it disagree.
//
// Parameters:
//   - results: The results to analyze; sorted in place, successes first by
//     duration.
//   - cfg: The configuration, for Details and Quiet.
//   - out: The writer for the report.
//
// Returns:
//   - int: An exit code from the apperrors package.
func AnalyzeComparisonResults(results []SkipResult, cfg config.AppConfig, out io.Writer) int {
	slices.SortStableFunc(results, func(a, b SkipResult) int {
		if (a.Err == nil) != (b.Err == nil) {
			if a.Err == nil {
				return -1
			}
			return 1
		}
		switch {
		case a.Duration < b.Duration:
			return -1
		case a.Duration > b.Duration:
			return 1
		}
		return 0
	})

	var first *SkipResult
	var firstError error
	successCount := 0

	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "%sKind%s\t%sDuration%s\t%sValue%s\t%sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())

	for i := range results {
		res := &results[i]
		value := "-"
		var status string
		switch {
		case res.Err == nil:
			status = fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
			value = res.Term.String()
			successCount++
			if first == nil {
				first = res
			}
		case errors.Is(res.Err, rationals.ErrRangeExhausted):
			status = fmt.Sprintf("%s⚠ Range exhausted%s", ui.ColorYellow(), ui.ColorReset())
		default:
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		}
		if res.Err != nil && firstError == nil {
			firstError = res.Err
		}

		duration := cli.FormatExecutionDuration(res.Duration)
		if res.Duration == 0 {
			duration = "< 1µs"
		}
		fmt.Fprintf(tw, "%s%s%s\t%s%s%s\t%s\t%s\n",
			ui.ColorBlue(), res.Kind, ui.ColorReset(),
			ui.ColorYellow(), duration, ui.ColorReset(),
			value, status)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(out, "Warning: failed to flush tabwriter: %v\n", err)
	}

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No integer kind could reach index %d.\n", cfg.At)
		return apperrors.HandleEnumerationError(firstError, 0, out, ui.ThemeColors{})
	}

	for _, res := range results {
		if res.Err == nil && res.Term != first.Term {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! %s and %s disagree at index %d (%s vs %s).\n",
				first.Kind, res.Kind, cfg.At, first.Term, res.Term)
			return apperrors.ExitErrorMismatch
		}
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. %d of %d kinds agree.\n", successCount, len(results))
	if cfg.Quiet {
		cli.DisplayQuietTerm(out, first.Term)
	} else {
		cli.DisplayTerm(out, first.Term, first.Kind, first.Duration, cfg.Details)
	}
	return apperrors.ExitSuccess
}

// Package app wires configuration, the enumeration packages and the output
// layers into the ratenum command.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/agbru/ratenum/internal/cli"
	"github.com/agbru/ratenum/internal/config"
	apperrors "github.com/agbru/ratenum/internal/errors"
	"github.com/agbru/ratenum/internal/logging"
	"github.com/agbru/ratenum/internal/orchestration"
	"github.com/agbru/ratenum/internal/rationals"
	"github.com/agbru/ratenum/internal/server"
	"github.com/agbru/ratenum/internal/service"
	"github.com/agbru/ratenum/internal/ui"
)

// Application is one configured run of ratenum.
type Application struct {
	// Config holds the parsed application configuration.
	Config config.AppConfig
	// Factory creates the sequences for each integer kind.
	Factory rationals.Factory
	// ErrWriter receives logs and failure reports (typically os.Stderr).
	ErrWriter io.Writer
}

// New parses args, where args[0] is the program name, and returns the
// application. Parsing and validation errors have already been reported
// on errWriter.
func New(args []string, errWriter io.Writer) (*Application, error) {
	factory := rationals.GlobalFactory()

	programName := "ratenum"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, factory.List())
	if err != nil {
		return nil, err
	}

	return &Application{
		Config:    cfg,
		Factory:   factory,
		ErrWriter: errWriter,
	}, nil
}

// Run dispatches to the mode selected by the configuration and returns the
// process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.ShowVersion {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	a.setupLogging()
	ui.InitTheme(a.Config.Theme, a.Config.NoColor, out)

	switch {
	case a.Config.ServerMode:
		return a.runServer(ctx)
	case a.Config.HasAt && a.Config.Kind == config.AllKinds:
		return a.runComparison(ctx, out)
	case a.Config.HasAt:
		return a.runSingle(ctx, out)
	default:
		return a.runList(ctx, out)
	}
}

// setupLogging points the global zerolog logger at ErrWriter with the
// configured level. The level was validated by config.
func (a *Application) setupLogging() {
	level, err := logging.ParseLevel(a.Config.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: a.ErrWriter, NoColor: true, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
}

func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runServer serves until SIGINT or SIGTERM. The run timeout does not apply.
func (a *Application) runServer(ctx context.Context) int {
	ctx, stop := SetupSignals(ctx)
	defer stop()

	logger := logging.NewZerologAdapter(log.Logger.With().Str("component", "server").Logger())
	srv := server.NewServer(a.Factory, a.Config, server.WithLogger(logger))
	if err := srv.Start(ctx); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// outputError marks a failure to write values, as opposed to a failure to
// produce them.
type outputError struct {
	action string
	err    error
}

func (e *outputError) Error() string { return fmt.Sprintf("%s values: %v", e.action, e.err) }

// runList prints Count values starting at Offset as they are produced, and
// optionally saves them. Values produced before a failure are still written.
func (a *Application) runList(ctx context.Context, out io.Writer) int {
	ctx, lifecycle := SetupLifecycle(ctx, a.Config.Timeout)
	defer lifecycle.Cleanup()

	svc := service.NewEnumerationService(a.Factory, service.Limits{})
	opts := cli.FormatOptions{Format: a.Config.Format, ShowIndex: a.Config.ShowIndex}

	stdout, err := cli.NewTermWriter(out, opts)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error writing values: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	var file *cli.TermFile

	start := time.Now()
	err = svc.Stream(ctx, a.Config.Kind, a.Config.Offset, uint64(a.Config.Count), func(t rationals.Term) error {
		if werr := stdout.Write(t); werr != nil {
			return &outputError{action: "writing", err: werr}
		}
		if a.Config.OutputFile == "" {
			return nil
		}
		if file == nil {
			f, ferr := cli.CreateTermsFile(a.Config.OutputFile, a.Config.Kind, a.Config.Offset, opts)
			if ferr != nil {
				return &outputError{action: "saving", err: ferr}
			}
			file = f
		}
		if ferr := file.Write(t); ferr != nil {
			return &outputError{action: "saving", err: ferr}
		}
		return nil
	})
	duration := time.Since(start)

	if cerr := stdout.Close(); cerr != nil && err == nil {
		err = &outputError{action: "writing", err: cerr}
	}
	if file != nil {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = &outputError{action: "saving", err: cerr}
		}
	}

	var outErr *outputError
	if errors.As(err, &outErr) {
		fmt.Fprintf(a.ErrWriter, "Error %v\n", outErr)
		return apperrors.ExitErrorGeneric
	}
	if file != nil && !a.Config.Quiet {
		cli.DisplaySaved(a.ErrWriter, a.Config.OutputFile)
	}
	return apperrors.HandleEnumerationError(err, duration, a.ErrWriter, ui.ThemeColors{})
}

// runSingle computes the value at At for one kind.
func (a *Application) runSingle(ctx context.Context, out io.Writer) int {
	ctx, lifecycle := SetupLifecycle(ctx, a.Config.Timeout)
	defer lifecycle.Cleanup()

	sequences := cli.GetSequencesToRun(a.Config, a.Factory)
	if len(sequences) == 0 {
		fmt.Fprintf(a.ErrWriter, "No sequence available for kind %q\n", a.Config.Kind)
		return apperrors.ExitErrorConfig
	}

	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
	} else {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(sequences, out)
	}

	res := orchestration.ExecuteSkips(ctx, sequences, a.Config.At, progressOut)[0]
	if res.Err != nil {
		return apperrors.HandleEnumerationError(res.Err, res.Duration, out, ui.ThemeColors{})
	}

	if a.Config.Quiet {
		cli.DisplayQuietTerm(out, res.Term)
	} else {
		fmt.Fprintln(out)
		cli.DisplayTerm(out, res.Term, res.Kind, res.Duration, a.Config.Details)
	}
	return a.saveTerm(res, out)
}

// runComparison skips every kind to At concurrently and checks they agree.
func (a *Application) runComparison(ctx context.Context, out io.Writer) int {
	ctx, lifecycle := SetupLifecycle(ctx, a.Config.Timeout)
	defer lifecycle.Cleanup()

	sequences := cli.GetSequencesToRun(a.Config, a.Factory)
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
	} else {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(sequences, out)
	}

	results := orchestration.ExecuteSkips(ctx, sequences, a.Config.At, progressOut)
	code := orchestration.AnalyzeComparisonResults(results, a.Config, out)
	if code != apperrors.ExitSuccess {
		return code
	}
	// Sorted by AnalyzeComparisonResults: the fastest success comes first.
	return a.saveTerm(results[0], out)
}

func (a *Application) saveTerm(res orchestration.SkipResult, out io.Writer) int {
	if a.Config.OutputFile == "" {
		return apperrors.ExitSuccess
	}
	opts := cli.FormatOptions{Format: a.Config.Format, ShowIndex: a.Config.ShowIndex}
	if err := cli.WriteTermsToFile(a.Config.OutputFile, []rationals.Term{res.Term}, res.Kind, res.Duration, opts); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving value: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	if !a.Config.Quiet {
		cli.DisplaySaved(out, a.Config.OutputFile)
	}
	return apperrors.ExitSuccess
}

// IsHelpError reports whether err means -h or -help was requested.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agbru/mcgeom/internal/calibration"
	"github.com/agbru/mcgeom/internal/cli"
	"github.com/agbru/mcgeom/internal/config"
	apperrors "github.com/agbru/mcgeom/internal/errors"
	"github.com/agbru/mcgeom/internal/estimator"
	"github.com/agbru/mcgeom/internal/logging"
	"github.com/agbru/mcgeom/internal/orchestration"
	"github.com/agbru/mcgeom/internal/parallel"
	"github.com/agbru/mcgeom/internal/ui"
)

// progressBuffer is the capacity of the channel feeding the progress line.
const progressBuffer = 64

// Application represents the mcgeom application instance.
type Application struct {
	// Config holds the parsed application configuration.
	Config config.AppConfig
	// Factory provides the estimator modes.
	Factory estimator.Factory
	// ErrWriter is the writer for error and log output (typically os.Stderr).
	ErrWriter io.Writer
}

// New creates an Application by parsing command-line arguments. args[0] is
// the program name.
//
// Parameters:
//   - args: The command-line arguments (typically os.Args).
//   - errWriter: The writer for usage and error output.
//
// Returns:
//   - *Application: A new application instance.
//   - error: A configuration error, or flag.ErrHelp when help was requested.
func New(args []string, errWriter io.Writer) (*Application, error) {
	factory := estimator.GlobalFactory()

	programName := "mcgeom"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, factory.List())
	if err != nil {
		return nil, err
	}
	return &Application{Config: cfg, Factory: factory, ErrWriter: errWriter}, nil
}

// Run executes one estimation and writes its result to out.
//
// Parameters:
//   - ctx: Parent context, used for tracing.
//   - out: The writer for standard output.
//
// Returns:
//   - int: An exit code (0 for success, non-zero for errors).
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ui.InitTheme(a.Config.NoColor)

	logger, err := logging.New(a.ErrWriter, a.Config.LogLevel, !a.Config.JSONOutput, a.Config.NoColor)
	if err != nil {
		return apperrors.HandleEstimationError(err, 0, a.ErrWriter, cli.CLIColorProvider{})
	}

	est, err := a.Factory.Get(a.Config.Mode)
	if err != nil {
		return apperrors.HandleEstimationError(apperrors.NewConfigError("%v", err), 0, a.ErrWriter, cli.CLIColorProvider{})
	}
	if a.Config.Calibrate {
		return a.runCalibration(ctx, est, logger, out)
	}
	workers := parallel.EffectiveWorkers(a.Config.Workers, a.Config.Chunks)
	reducer, err := parallel.NewReducer(a.Config.Scheduler, workers)
	if err != nil {
		return apperrors.HandleEstimationError(err, 0, a.ErrWriter, cli.CLIColorProvider{})
	}

	interactive := !a.Config.JSONOutput && !a.Config.Quiet
	if interactive {
		cli.PrintExecutionConfig(a.Config, workers, out)
	}

	subject, progressChan := a.progressSubject(logger, interactive)
	var wg sync.WaitGroup
	if progressChan != nil {
		wg.Add(1)
		go cli.DisplayProgress(&wg, progressChan, uint64(a.Config.Chunks), out)
	}

	res, runErr := orchestration.ExecuteEstimation(ctx, est, orchestration.Options{
		Chunks:         a.Config.Chunks,
		TrialsPerChunk: a.Config.TrialsPerChunk,
		Seed:           a.Config.Seed,
		Reducer:        reducer,
		Progress:       subject,
		ProgressBatch:  a.Config.ProgressBatch,
		Logger:         logging.Component(logger, "orchestration"),
	})
	if progressChan != nil {
		close(progressChan)
		wg.Wait()
	}

	if a.Config.JSONOutput {
		return printJSONResult(res, a.Config.Seed, runErr, out)
	}
	if runErr != nil {
		return apperrors.HandleEstimationError(runErr, res.Duration, out, cli.CLIColorProvider{})
	}
	if a.Config.Quiet {
		cli.DisplayQuietResult(out, res)
		return apperrors.ExitSuccess
	}
	fmt.Fprintln(out)
	cli.DisplayResult(res, a.Config.Details, out)
	return apperrors.ExitSuccess
}

// runCalibration benchmarks every scheduler configuration with est and
// optionally saves the fastest as a preset.
func (a *Application) runCalibration(ctx context.Context, est estimator.Estimator, logger zerolog.Logger, out io.Writer) int {
	report, err := calibration.Run(ctx, est, calibration.Options{
		Logger: logging.Component(logger, "calibration"),
	}, out)
	if err != nil {
		return apperrors.HandleEstimationError(err, report.Elapsed, out, cli.CLIColorProvider{})
	}
	if a.Config.CalibrationOut == "" {
		return apperrors.ExitSuccess
	}
	if err := report.SavePreset(a.Config.CalibrationOut); err != nil {
		fmt.Fprintf(a.ErrWriter, "%sWarning: failed to save preset: %v%s\n", ui.ColorWarning(), err, ui.ColorReset())
		return apperrors.ExitErrorGeneric
	}
	fmt.Fprintf(out, "%sCalibration preset saved to %s%s (use -config %s)\n",
		ui.ColorSuccess(), a.Config.CalibrationOut, ui.ColorReset(), a.Config.CalibrationOut)
	return apperrors.ExitSuccess
}

// progressSubject wires the progress observers of a run. A channel feeding
// the progress line is returned only when the run is interactive.
func (a *Application) progressSubject(logger zerolog.Logger, interactive bool) (*estimator.ProgressSubject, chan estimator.ProgressUpdate) {
	subject := estimator.NewProgressSubject()
	subject.Register(estimator.NewLoggingObserver(logging.Component(logger, "progress"), 0.1))
	metrics := estimator.NewMetricsObserver()
	metrics.ResetMetrics()
	subject.Register(metrics)

	if !interactive {
		return subject, nil
	}
	ch := make(chan estimator.ProgressUpdate, progressBuffer)
	subject.Register(estimator.NewChannelObserver(ch))
	return subject, ch
}

// IsHelpError checks if the error is a help flag error (-h or --help was
// used), after which the application should exit with success.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// printJSONResult writes the run report as JSON. A failed run still emits a
// report carrying the error, and the exit code reflects the failure.
func printJSONResult(res orchestration.Result, seed uint64, runErr error, out io.Writer) int {
	if err := cli.WriteJSONReport(out, cli.NewReport(res, seed, runErr)); err != nil {
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitCode(runErr)
}

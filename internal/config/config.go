// Package config provides the configuration management for mcgeom. It
// defines the configuration structure, parses command-line flags, layers in
// environment variables and an optional YAML preset, and validates the
// result before any estimation work is dispatched.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	apperrors "github.com/agbru/mcgeom/internal/errors"
	"github.com/agbru/mcgeom/internal/estimator"
	"github.com/agbru/mcgeom/internal/parallel"
)

const (
	// EnvPrefix is the prefix for all environment variables used by mcgeom.
	EnvPrefix = "MCGEOM_"
)

// Default configuration values.
const (
	// DefaultChunks is the default number of independent chunks.
	DefaultChunks = 10_000
	// DefaultTrialsPerChunk is the default number of trials run by each chunk.
	DefaultTrialsPerChunk = 250_000
	// DefaultScheduler is the default chunk scheduler.
	DefaultScheduler = parallel.SchedulerErrGroup
	// DefaultLogLevel keeps the structured log quiet unless something fails.
	DefaultLogLevel = "warn"
)

// AppConfig aggregates the parameters of one mcgeom invocation.
type AppConfig struct {
	// Chunks is the number of independently seeded chunks.
	Chunks int
	// TrialsPerChunk is the number of trials each chunk runs sequentially.
	TrialsPerChunk int
	// Mode selects the estimator ("nearest-slope", "integrand", ...).
	Mode string
	// Scheduler selects the reducer ("errgroup" or "pargo").
	Scheduler string
	// Workers bounds the errgroup pool; 0 uses GOMAXPROCS.
	Workers int
	// ProgressBatch is the number of chunk completions between progress
	// notifications; 0 uses the estimator default.
	ProgressBatch int
	// Seed makes runs reproducible when non-zero.
	Seed uint64
	// JSONOutput prints the result as a JSON report.
	JSONOutput bool
	// Quiet prints only the estimate.
	Quiet bool
	// Details adds the run metadata to the result display.
	Details bool
	// NoColor disables all color output. NO_COLOR is also honored.
	NoColor bool
	// LogLevel is the zerolog level name.
	LogLevel string
	// ConfigFile is the optional YAML preset path.
	ConfigFile string
	// Calibrate benchmarks the schedulers instead of running an estimation.
	Calibrate bool
	// CalibrationOut, when set, receives the recommended preset.
	CalibrationOut string
}

// TotalTrials returns Chunks × TrialsPerChunk. Call it on a validated
// configuration.
func (c AppConfig) TotalTrials() uint64 {
	return uint64(c.Chunks) * uint64(c.TrialsPerChunk)
}

// Validate checks the semantic consistency of the configuration.
//
// Parameters:
//   - availableModes: The registered estimator names.
//
// Returns:
//   - error: An apperrors.ConfigError or apperrors.ValidationError, or nil.
func (c AppConfig) Validate(availableModes []string) error {
	if _, err := parallel.NewPlan(c.Chunks, c.TrialsPerChunk); err != nil {
		return err
	}
	if c.Workers < 0 {
		return apperrors.NewConfigError("worker count cannot be negative: %d", c.Workers)
	}
	if c.ProgressBatch < 0 {
		return apperrors.NewConfigError("progress batch cannot be negative: %d", c.ProgressBatch)
	}
	if !slices.Contains(availableModes, c.Mode) {
		return apperrors.NewConfigError("unrecognized mode: '%s'. Valid modes are: [%s]", c.Mode, strings.Join(availableModes, ", "))
	}
	if schedulers := parallel.SchedulerNames(); !slices.Contains(schedulers, c.Scheduler) {
		return apperrors.NewConfigError("unrecognized scheduler: '%s'. Valid schedulers are: [%s]", c.Scheduler, strings.Join(schedulers, ", "))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil || c.LogLevel == "" {
		return apperrors.NewConfigError("unrecognized log level: '%s'", c.LogLevel)
	}
	return nil
}

// ParseConfig parses the command-line arguments and returns the validated
// configuration. Values are resolved with the priority
// CLI flags > MCGEOM_* environment > YAML preset > defaults.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: The command-line arguments without the program name.
//   - errorWriter: Destination of parse errors and usage text.
//   - availableModes: The registered estimator names.
//
// Returns:
//   - AppConfig: The populated configuration struct.
//   - error: flag.ErrHelp, a parse error, or a configuration error.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableModes []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	modeHelp := fmt.Sprintf("Estimator to run, one of [%s].", strings.Join(availableModes, ", "))
	schedHelp := fmt.Sprintf("Chunk scheduler, one of [%s].", strings.Join(parallel.SchedulerNames(), ", "))

	config := AppConfig{}
	fs.IntVar(&config.Chunks, "chunks", DefaultChunks, "Number of independent chunks.")
	fs.IntVar(&config.TrialsPerChunk, "trials", DefaultTrialsPerChunk, "Number of trials per chunk.")
	fs.StringVar(&config.Mode, "mode", estimator.DefaultMode, modeHelp)
	fs.StringVar(&config.Scheduler, "scheduler", DefaultScheduler, schedHelp)
	fs.IntVar(&config.Workers, "workers", 0, "Worker goroutines for the errgroup scheduler (0 = GOMAXPROCS).")
	fs.IntVar(&config.ProgressBatch, "progress-batch", estimator.DefaultProgressBatch, "Chunk completions between progress updates.")
	fs.Uint64Var(&config.Seed, "seed", 0, "Base seed for a reproducible run (0 = fresh entropy per chunk).")
	fs.BoolVar(&config.JSONOutput, "json", false, "Output the result in JSON format.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - print only the estimate.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.Details, "d", false, "Display run metadata with the result.")
	fs.BoolVar(&config.Details, "details", false, "Alias for -d.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Structured log level (debug, info, warn, error).")
	fs.StringVar(&config.ConfigFile, "config", "", "YAML preset file with default run parameters.")
	fs.BoolVar(&config.Calibrate, "calibrate", false, "Benchmark the schedulers on this machine and recommend the fastest.")
	fs.StringVar(&config.CalibrationOut, "calibration-out", "", "Write the recommended scheduler as a YAML preset to this path.")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(errorWriter, "Unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		fs.Usage()
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	if !isFlagSet(fs, "config") {
		config.ConfigFile = getEnvString("CONFIG", config.ConfigFile)
	}
	if config.ConfigFile != "" {
		preset, err := LoadPreset(config.ConfigFile)
		if err != nil {
			fmt.Fprintln(errorWriter, "Configuration error:", err)
			return AppConfig{}, err
		}
		preset.apply(&config, fs)
	}

	applyEnvOverrides(&config, fs)

	config.Mode = strings.ToLower(config.Mode)
	config.Scheduler = strings.ToLower(config.Scheduler)
	config.LogLevel = strings.ToLower(config.LogLevel)
	if err := config.Validate(availableModes); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, err
	}
	return config, nil
}

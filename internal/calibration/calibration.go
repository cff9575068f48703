package calibration

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/rs/zerolog"

	apperrors "github.com/agbru/mcgeom/internal/errors"
	"github.com/agbru/mcgeom/internal/estimator"
	"github.com/agbru/mcgeom/internal/orchestration"
	"github.com/agbru/mcgeom/internal/ui"
)

// Default calibration workload: small enough to finish in about a second
// per candidate on a laptop, large enough to amortize scheduling.
const (
	DefaultChunks         = 256
	DefaultTrialsPerChunk = 20_000
	DefaultSeed           = 1
)

// estimateTolerance absorbs the floating-point reassociation of integral
// sums across schedulers. Hit counts agree exactly.
const estimateTolerance = 1e-9

// Options configures a calibration run.
type Options struct {
	Chunks         int
	TrialsPerChunk int
	// Seed fixes the workload so every candidate samples the same trials.
	Seed uint64
	// Candidates overrides GenerateCandidates.
	Candidates []Candidate
	Logger     zerolog.Logger
}

// Measurement is the outcome of one candidate.
type Measurement struct {
	Candidate Candidate
	Duration  time.Duration
	Estimate  float64
	Err       error
}

// TrialsPerSecond returns the measured throughput for total trials.
func (m Measurement) TrialsPerSecond(total uint64) float64 {
	if m.Duration <= 0 {
		return 0
	}
	return float64(total) / m.Duration.Seconds()
}

// Report holds every measurement of a calibration run and the fastest one.
type Report struct {
	Measurements []Measurement
	Best         Measurement
	TotalTrials  uint64
	Elapsed      time.Duration
}

// Run executes est once per candidate on the same seeded workload and
// prints the summary table to out. Seeded runs produce the same estimate
// whatever the scheduler, so a diverging estimate marks the candidate as
// failed.
//
// Parameters:
//   - ctx: Parent context for tracing.
//   - est: The estimator to benchmark.
//   - opts: Workload and candidates.
//   - out: Destination of the summary table.
//
// Returns:
//   - Report: All measurements and the recommended candidate.
//   - error: An error when no candidate succeeded.
func Run(ctx context.Context, est estimator.Estimator, opts Options, out io.Writer) (Report, error) {
	if opts.Chunks == 0 {
		opts.Chunks = DefaultChunks
	}
	if opts.TrialsPerChunk == 0 {
		opts.TrialsPerChunk = DefaultTrialsPerChunk
	}
	if opts.Seed == 0 {
		opts.Seed = DefaultSeed
	}
	candidates := opts.Candidates
	if len(candidates) == 0 {
		candidates = GenerateCandidates()
	}

	fmt.Fprintf(out, "--- Calibration Mode: comparing %d scheduler configurations ---\n", len(candidates))
	fmt.Fprintf(out, "%sWorkload: %d chunks × %d trials of %s%s\n",
		ui.ColorSecondary(), opts.Chunks, opts.TrialsPerChunk, est.Name(), ui.ColorReset())

	report := Report{Measurements: make([]Measurement, 0, len(candidates))}
	start := time.Now()
	found := false
	var reference float64
	for _, c := range candidates {
		res, err := orchestration.ExecuteEstimation(ctx, est, orchestration.Options{
			Chunks:         opts.Chunks,
			TrialsPerChunk: opts.TrialsPerChunk,
			Seed:           opts.Seed,
			Reducer:        c.Reducer(),
			Logger:         opts.Logger,
		})
		m := Measurement{Candidate: c, Duration: res.Duration, Estimate: res.Estimate(), Err: err}
		report.TotalTrials = res.TotalTrials
		if err == nil {
			if !found {
				reference = m.Estimate
			} else if math.Abs(m.Estimate-reference) > estimateTolerance*math.Max(1, math.Abs(reference)) {
				m.Err = apperrors.NewEstimationError(est.Name(),
					fmt.Errorf("estimate %v differs from %v for the same seed", m.Estimate, reference))
			}
		}
		report.Measurements = append(report.Measurements, m)
		if m.Err == nil && (!found || m.Duration < report.Best.Duration) {
			report.Best = m
			found = true
		}
	}
	report.Elapsed = time.Since(start)

	if !found {
		return report, apperrors.NewEstimationError(est.Name(), fmt.Errorf("calibration failed: no valid results obtained"))
	}
	printCalibrationResults(out, report)
	return report, nil
}

// Package orchestration runs a complete Monte Carlo estimation: it validates
// the run parameters, partitions the trials into chunks, gives every chunk
// its own random stream, dispatches the chunks through a reducer and returns
// the aggregate together with the exact number of trials performed.
package orchestration

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	apperrors "github.com/agbru/mcgeom/internal/errors"
	"github.com/agbru/mcgeom/internal/estimator"
	"github.com/agbru/mcgeom/internal/parallel"
	"github.com/agbru/mcgeom/internal/rng"
)

const tracerName = "github.com/agbru/mcgeom/internal/orchestration"

var (
	estimationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mcgeom_estimations_total",
			Help: "Number of estimation runs by mode and status",
		},
		[]string{"mode", "status"},
	)
	estimationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mcgeom_estimation_duration_seconds",
			Help:    "Wall-clock duration of estimation runs",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 12),
		},
		[]string{"mode"},
	)
)

// newSeededSource provides the high-entropy stream of a chunk when no base
// seed is configured. Tests replace it to exercise the failure path.
var newSeededSource = rng.NewSeeded

// Options configures one estimation run.
type Options struct {
	// Chunks is the number of independent chunks.
	Chunks int
	// TrialsPerChunk is the number of trials each chunk runs.
	TrialsPerChunk int
	// Seed, when non-zero, derives every chunk stream from this value so the
	// run is reproducible. Zero draws a fresh entropy seed per chunk.
	Seed uint64
	// Reducer dispatches the chunks. Nil selects an errgroup pool sized to
	// GOMAXPROCS.
	Reducer parallel.Reducer
	// Progress receives chunk completion notifications. May be nil.
	Progress *estimator.ProgressSubject
	// ProgressBatch is the number of completions between notifications.
	ProgressBatch int
	// Logger receives run start and finish events. The zero value discards.
	Logger zerolog.Logger
}

// Result is the outcome of an estimation run.
type Result struct {
	RunID          string
	Mode           string
	Kind           estimator.Kind
	Scheduler      string
	Chunks         int
	TrialsPerChunk uint64
	// Aggregate is the sum of every chunk partial: a hit count in
	// probability mode, a sum of integrand values in integral mode.
	Aggregate float64
	// TotalTrials is exactly Chunks × TrialsPerChunk.
	TotalTrials uint64
	Duration    time.Duration
}

// Estimate returns Aggregate divided by TotalTrials.
func (r Result) Estimate() float64 {
	if r.TotalTrials == 0 {
		return 0
	}
	return r.Aggregate / float64(r.TotalTrials)
}

// ExecuteEstimation runs est over opts.Chunks chunks of opts.TrialsPerChunk
// trials and returns once every chunk has been folded into the aggregate.
//
// Invalid chunk or trial counts are rejected with an
// apperrors.ValidationError before any chunk is dispatched. A failure to
// seed a chunk stream is returned as an apperrors.EstimationError.
//
// The context carries the trace span only; a run always completes its
// fixed number of trials.
//
// Parameters:
//   - ctx: Parent context for tracing.
//   - est: The estimator evaluating each trial.
//   - opts: Run parameters, scheduler and progress wiring.
//
// Returns:
//   - Result: Aggregate, total trials and run metadata.
//   - error: A validation or estimation error.
func ExecuteEstimation(ctx context.Context, est estimator.Estimator, opts Options) (Result, error) {
	if est == nil {
		return Result{}, apperrors.NewConfigError("no estimator selected")
	}
	plan, err := parallel.NewPlan(opts.Chunks, opts.TrialsPerChunk)
	if err != nil {
		return Result{}, err
	}
	reducer := opts.Reducer
	if reducer == nil {
		reducer = &parallel.ErrGroupReducer{}
	}

	res := Result{
		RunID:          uuid.NewString(),
		Mode:           est.Name(),
		Kind:           est.Kind(),
		Scheduler:      reducer.Name(),
		Chunks:         plan.Chunks,
		TrialsPerChunk: plan.TrialsPerChunk,
		TotalTrials:    plan.TotalTrials,
	}

	_, span := otel.Tracer(tracerName).Start(ctx, "ExecuteEstimation")
	defer span.End()
	span.SetAttributes(
		attribute.String("mcgeom.run_id", res.RunID),
		attribute.String("mcgeom.mode", res.Mode),
		attribute.String("mcgeom.scheduler", res.Scheduler),
		attribute.Int("mcgeom.chunks", plan.Chunks),
		attribute.Int64("mcgeom.trials_per_chunk", int64(plan.TrialsPerChunk)),
	)

	logger := opts.Logger.With().Str("run_id", res.RunID).Str("mode", res.Mode).Logger()
	logger.Info().
		Int("chunks", plan.Chunks).
		Uint64("trials_per_chunk", plan.TrialsPerChunk).
		Str("scheduler", res.Scheduler).
		Bool("seeded", opts.Seed != 0).
		Msg("estimation started")

	tracker := estimator.NewTracker(uint64(plan.Chunks), opts.ProgressBatch, opts.Progress)
	start := time.Now()
	aggregate, err := reducer.Reduce(plan.Chunks, func(chunk int) (float64, error) {
		src, err := chunkSource(opts.Seed, chunk)
		if err != nil {
			return 0, err
		}
		partial := est.RunChunk(rng.NewSampler(src), plan.TrialsPerChunk)
		tracker.ChunkCompleted()
		return partial, nil
	})
	res.Duration = time.Since(start)
	estimationDuration.WithLabelValues(res.Mode).Observe(res.Duration.Seconds())

	if err != nil {
		estimationsTotal.WithLabelValues(res.Mode, "error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Error().Err(err).
			Uint64("chunks_completed", tracker.Completed()).
			Dur("duration", res.Duration).
			Msg("estimation failed")
		return res, apperrors.NewEstimationError(res.Mode, err)
	}

	res.Aggregate = aggregate
	estimationsTotal.WithLabelValues(res.Mode, "success").Inc()
	span.SetAttributes(attribute.Float64("mcgeom.estimate", res.Estimate()))
	logger.Info().
		Float64("aggregate", res.Aggregate).
		Uint64("total_trials", res.TotalTrials).
		Float64("estimate", res.Estimate()).
		Dur("duration", res.Duration).
		Msg("estimation finished")
	return res, nil
}

func chunkSource(seed uint64, chunk int) (*rng.Xoshiro256Plus, error) {
	if seed != 0 {
		return rng.New(rng.DeriveSeed(seed, chunk)), nil
	}
	src, err := newSeededSource()
	if err != nil {
		return nil, apperrors.WrapError(err, "seeding random stream")
	}
	return src, nil
}

package estimator

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// ─────────────────────────────────────────────────────────────────────────────
// Channel Observer
// ─────────────────────────────────────────────────────────────────────────────

// ChannelObserver forwards updates to a channel consumed by the CLI progress
// display.
type ChannelObserver struct {
	channel chan<- ProgressUpdate
}

// NewChannelObserver creates an observer that sends updates to ch. The
// channel should be buffered; a nil channel discards updates.
func NewChannelObserver(ch chan<- ProgressUpdate) *ChannelObserver {
	return &ChannelObserver{channel: ch}
}

// Update implements ProgressObserver with a non-blocking send. When the
// channel is full the update is dropped and the display catches up on the
// next one.
func (o *ChannelObserver) Update(update ProgressUpdate) {
	if o.channel == nil {
		return
	}
	select {
	case o.channel <- update:
	default:
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Logging Observer
// ─────────────────────────────────────────────────────────────────────────────

// LoggingObserver logs progress at debug level, throttled so that only
// changes of at least threshold are written.
type LoggingObserver struct {
	logger    zerolog.Logger
	threshold float64
	last      float64
	mu        sync.Mutex
}

// NewLoggingObserver creates a throttled logging observer. threshold <= 0
// defaults to 0.1 (10%).
func NewLoggingObserver(logger zerolog.Logger, threshold float64) *LoggingObserver {
	if threshold <= 0 {
		threshold = 0.1
	}
	return &LoggingObserver{logger: logger, threshold: threshold}
}

// Update implements ProgressObserver.
func (o *LoggingObserver) Update(update ProgressUpdate) {
	o.mu.Lock()
	defer o.mu.Unlock()

	shouldLog := update.Done() ||
		o.last == 0 && update.Value > 0 ||
		update.Value-o.last >= o.threshold
	if !shouldLog {
		return
	}
	o.logger.Debug().
		Uint64("completed", update.Completed).
		Uint64("total", update.Total).
		Str("percent", fmt.Sprintf("%.1f%%", update.Value*100)).
		Msg("estimation progress")
	if update.Value > o.last {
		o.last = update.Value
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Metrics Observer (Prometheus)
// ─────────────────────────────────────────────────────────────────────────────

var (
	progressGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mcgeom_estimation_progress",
		Help: "Fraction of chunks completed in the current estimation (0.0 to 1.0)",
	})
	chunksCompletedGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mcgeom_chunks_completed",
		Help: "Number of chunks completed in the current estimation",
	})
)

// MetricsObserver exports progress to the in-process Prometheus registry.
type MetricsObserver struct {
	progress  prometheus.Gauge
	completed prometheus.Gauge
	mu        sync.Mutex
	highest   uint64
}

// NewMetricsObserver creates an observer backed by the package gauges.
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{progress: progressGauge, completed: chunksCompletedGauge}
}

// Update implements ProgressObserver. Out-of-order updates never move the
// gauges backwards.
func (o *MetricsObserver) Update(update ProgressUpdate) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if update.Completed < o.highest {
		return
	}
	o.highest = update.Completed
	o.progress.Set(update.Value)
	o.completed.Set(float64(update.Completed))
}

// ResetMetrics zeroes the gauges before a new run.
func (o *MetricsObserver) ResetMetrics() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.highest = 0
	o.progress.Set(0)
	o.completed.Set(0)
}

// ─────────────────────────────────────────────────────────────────────────────
// No-Op Observer (Null Object Pattern)
// ─────────────────────────────────────────────────────────────────────────────

// NoOpObserver discards all progress updates.
type NoOpObserver struct{}

// NewNoOpObserver creates a no-op observer.
func NewNoOpObserver() *NoOpObserver {
	return &NoOpObserver{}
}

// Update implements ProgressObserver by doing nothing.
func (o *NoOpObserver) Update(ProgressUpdate) {}

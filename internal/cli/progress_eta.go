package cli

import (
	"fmt"
	"time"

	"github.com/agbru/mcgeom/internal/estimator"
)

// ProgressWithETA keeps the most advanced chunk count seen so far and a
// smoothed completion rate used to estimate the remaining time.
// Notifications may arrive out of order; older ones never move it backwards.
type ProgressWithETA struct {
	total        uint64
	completed    uint64
	startTime    time.Time
	lastUpdate   time.Time
	lastProgress float64
	progressRate float64 // smoothed progress per second
}

// NewProgressWithETA creates a tracker for a run of total chunks.
func NewProgressWithETA(total uint64) *ProgressWithETA {
	now := time.Now()
	return &ProgressWithETA{total: total, startTime: now, lastUpdate: now}
}

// Progress returns the completed fraction in [0, 1].
func (p *ProgressWithETA) Progress() float64 {
	if p.total == 0 {
		return 0
	}
	return min(float64(p.completed)/float64(p.total), 1)
}

// Snapshot returns the current state as a ProgressUpdate.
func (p *ProgressWithETA) Snapshot() estimator.ProgressUpdate {
	return estimator.ProgressUpdate{Completed: p.completed, Total: p.total, Value: p.Progress()}
}

// UpdateWithETA records update and returns the resulting progress and ETA.
// The rate is smoothed exponentially (70% previous, 30% instantaneous).
func (p *ProgressWithETA) UpdateWithETA(update estimator.ProgressUpdate) (progress float64, eta time.Duration) {
	if update.Completed > p.completed {
		p.completed = update.Completed
	}
	progress = p.Progress()

	now := time.Now()
	elapsed := now.Sub(p.startTime)
	if elapsed < 100*time.Millisecond || progress <= 0.001 {
		p.lastUpdate = now
		p.lastProgress = progress
		return progress, 0
	}

	if dt := now.Sub(p.lastUpdate).Seconds(); dt > 0.05 {
		if delta := progress - p.lastProgress; delta > 0 {
			instantRate := delta / dt
			if p.progressRate > 0 {
				p.progressRate = 0.7*p.progressRate + 0.3*instantRate
			} else {
				p.progressRate = progress / elapsed.Seconds()
			}
		}
		p.lastUpdate = now
		p.lastProgress = progress
	}
	return progress, p.GetETA()
}

// GetETA returns the estimated remaining time, 0 when unknown or done. It
// is capped at 24 hours.
func (p *ProgressWithETA) GetETA() time.Duration {
	progress := p.Progress()
	if p.progressRate <= 0 || progress >= 1.0 {
		return 0
	}
	eta := time.Duration((1.0 - progress) / p.progressRate * float64(time.Second))
	return min(eta, 24*time.Hour)
}

// FormatETA formats a duration as "< 1s", "42s", "2m30s" or "1h15m".
// Zero or negative durations render as "calculating...".
func FormatETA(eta time.Duration) string {
	if eta <= 0 {
		return "calculating..."
	}
	if eta < time.Second {
		return "< 1s"
	}
	if eta < time.Minute {
		return fmt.Sprintf("%ds", int(eta.Seconds()))
	}
	if eta < time.Hour {
		minutes := int(eta.Minutes())
		if seconds := int(eta.Seconds()) % 60; seconds > 0 {
			return fmt.Sprintf("%dm%ds", minutes, seconds)
		}
		return fmt.Sprintf("%dm", minutes)
	}
	hours := int(eta.Hours())
	if minutes := int(eta.Minutes()) % 60; minutes > 0 {
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}
	return fmt.Sprintf("%dh", hours)
}

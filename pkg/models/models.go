// Package models defines the data structures shared with consumers of the
// mcgeom JSON output.
package models

// Report is the JSON document written by `mcgeom -json`. Durations appear
// both as a Go duration string and in seconds.
type Report struct {
	RunID           string  `json:"run_id"`
	Mode            string  `json:"mode"`
	Kind            string  `json:"kind"` // "probability" or "integral"
	Scheduler       string  `json:"scheduler"`
	Chunks          int     `json:"chunks"`
	TrialsPerChunk  uint64  `json:"trials_per_chunk"`
	TotalTrials     uint64  `json:"total_trials"`
	Aggregate       float64 `json:"aggregate"`
	Estimate        float64 `json:"estimate"`
	Seed            uint64  `json:"seed,omitempty"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Timestamp       string  `json:"timestamp"`
	Error           string  `json:"error,omitempty"`
}

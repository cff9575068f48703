package estimator

import "sync/atomic"

// DefaultProgressBatch is the number of chunk completions between two
// progress notifications.
const DefaultProgressBatch = 1000

// ProgressUpdate is the snapshot handed to observers when chunks complete.
type ProgressUpdate struct {
	// Completed is the number of chunks finished so far.
	Completed uint64
	// Total is the number of chunks in the run.
	Total uint64
	// Value is Completed/Total, in [0, 1].
	Value float64
}

// Done reports whether every chunk has completed.
func (u ProgressUpdate) Done() bool { return u.Total > 0 && u.Completed >= u.Total }

// Tracker counts completed chunks with a lock-free atomic increment and
// notifies a ProgressSubject every Batch completions and on the last chunk.
// The count is observational: nothing in the reduction reads it.
//
// Notifications are issued from the worker that completed the chunk, so two
// updates can reach an observer out of order. Observers should keep the
// largest Completed they have seen.
type Tracker struct {
	completed atomic.Uint64
	total     uint64
	batch     uint64
	subject   *ProgressSubject
}

// NewTracker creates a tracker for total chunks. batch <= 0 selects
// DefaultProgressBatch. subject may be nil, in which case nothing is
// notified and only the counter advances.
func NewTracker(total uint64, batch int, subject *ProgressSubject) *Tracker {
	if batch <= 0 {
		batch = DefaultProgressBatch
	}
	return &Tracker{total: total, batch: uint64(batch), subject: subject}
}

// ChunkCompleted records one finished chunk.
func (t *Tracker) ChunkCompleted() {
	n := t.completed.Add(1)
	if t.subject == nil {
		return
	}
	if n%t.batch == 0 || n == t.total {
		t.subject.Notify(t.snapshot(n))
	}
}

// Completed returns the number of chunks recorded so far.
func (t *Tracker) Completed() uint64 { return t.completed.Load() }

// Total returns the number of chunks the tracker expects.
func (t *Tracker) Total() uint64 { return t.total }

// Snapshot returns the current progress.
func (t *Tracker) Snapshot() ProgressUpdate { return t.snapshot(t.completed.Load()) }

func (t *Tracker) snapshot(n uint64) ProgressUpdate {
	u := ProgressUpdate{Completed: n, Total: t.total}
	if t.total > 0 {
		u.Value = float64(n) / float64(t.total)
		if u.Value > 1 {
			u.Value = 1
		}
	}
	return u
}

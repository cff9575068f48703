// Package cli renders the command-line surface of mcgeom: the live
// progress line fed by chunk completion notifications, the execution
// banner and the final result in text or JSON form.
package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/mcgeom/internal/estimator"
	"github.com/agbru/mcgeom/internal/ui"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the progress line.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// FormatExecutionDuration formats a time.Duration for display, using
// microseconds below a millisecond and milliseconds below a second.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(time.Millisecond).String()
}

// Spinner abstracts the terminal spinner so DisplayProgress can be tested
// without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts briandowns/spinner to Spinner.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// progressBar renders progress as a bar of length runes.
func progressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}

// DisplayProgress renders a spinner with a progress bar, the number of
// completed chunks and an ETA until progressChan is closed, then prints the
// final line permanently. It is meant to run in its own goroutine and calls
// wg.Done on return.
//
// Parameters:
//   - wg: Signalled when the display routine has returned.
//   - progressChan: Chunk progress notifications, closed after the run.
//   - totalChunks: Number of chunks in the run.
//   - out: Destination of the progress line.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan estimator.ProgressUpdate, totalChunks uint64, out io.Writer) {
	defer wg.Done()
	if totalChunks == 0 {
		for range progressChan {
		}
		return
	}

	state := NewProgressWithETA(totalChunks)
	s := newSpinner(spinner.WithWriter(out))
	s.Start()
	spinnerStopped := false
	defer func() {
		if !spinnerStopped {
			s.Stop()
		}
	}()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.Stop()
				spinnerStopped = true
				fmt.Fprintf(out, "%sChunks%s %s\n", ui.ColorBold(), ui.ColorReset(),
					FormatProgressLine(state.Snapshot(), 0))
				return
			}
			state.UpdateWithETA(update)
		case <-ticker.C:
			s.UpdateSuffix(" Chunks " + FormatProgressLine(state.Snapshot(), state.GetETA()))
		}
	}
}

// FormatProgressLine renders "45.00% [████░░░░] 4500/10000 ETA: 2m30s".
func FormatProgressLine(u estimator.ProgressUpdate, eta time.Duration) string {
	etaStr := FormatETA(eta)
	if u.Done() {
		etaStr = "done"
	}
	return fmt.Sprintf("%6.2f%% [%s] %d/%d ETA: %s",
		u.Value*100, progressBar(u.Value, ProgressBarWidth), u.Completed, u.Total, etaStr)
}

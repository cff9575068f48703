package calibration

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/agbru/mcgeom/internal/cli"
	"github.com/agbru/mcgeom/internal/parallel"
	"github.com/agbru/mcgeom/internal/ui"
)

// label renders a candidate as "errgroup ×8" or "pargo /2".
func (c Candidate) label() string {
	if c.Scheduler == parallel.SchedulerPargo {
		return fmt.Sprintf("%s /%d", c.Scheduler, c.Threshold)
	}
	return fmt.Sprintf("%s ×%d", c.Scheduler, c.Workers)
}

// Flags returns the command-line flags selecting c.
func (c Candidate) Flags() string {
	if c.Scheduler == parallel.SchedulerPargo {
		return "-scheduler pargo"
	}
	return fmt.Sprintf("-scheduler %s -workers %d", c.Scheduler, c.Workers)
}

// printCalibrationResults formats and prints the calibration results table.
func printCalibrationResults(out io.Writer, report Report) {
	fmt.Fprintf(out, "\n--- Calibration Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  %sScheduler%s\t│ %sExecution Time%s\t│ %sTrials/s%s\n",
		ui.ColorBold(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(tw, "  %s\t┼%s\t┼%s\n", strings.Repeat("─", 14), strings.Repeat("─", 16), strings.Repeat("─", 12))
	for _, m := range report.Measurements {
		durationStr := fmt.Sprintf("%sN/A%s", ui.ColorError(), ui.ColorReset())
		rateStr := "-"
		if m.Err == nil {
			durationStr = cli.FormatExecutionDuration(m.Duration)
			if m.Duration == 0 {
				durationStr = "< 1µs"
			}
			rateStr = fmt.Sprintf("%.3g", m.TrialsPerSecond(report.TotalTrials))
		}
		highlight := ""
		if m.Err == nil && m.Candidate == report.Best.Candidate {
			highlight = fmt.Sprintf(" %s(Optimal)%s", ui.ColorSuccess(), ui.ColorReset())
		}
		fmt.Fprintf(tw, "  %s%s%s\t│ %s%s%s\t│ %s%s\n",
			ui.ColorSecondary(), m.Candidate.label(), ui.ColorReset(),
			ui.ColorWarning(), durationStr, ui.ColorReset(), rateStr, highlight)
	}
	tw.Flush()

	fmt.Fprintf(out, "\n%s✅ Recommendation for this machine: %s%s%s\n",
		ui.ColorSuccess(), ui.ColorWarning(), report.Best.Candidate.Flags(), ui.ColorReset())
}

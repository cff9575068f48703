package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/agbru/mcgeom/internal/estimator"
	"github.com/agbru/mcgeom/internal/orchestration"
	"github.com/agbru/mcgeom/internal/ui"
	"github.com/agbru/mcgeom/pkg/models"
)

// Decimal places of the printed estimate per kind.
const (
	ProbabilityPrecision = 10
	IntegralPrecision    = 12
)

// precision returns the number of decimals used to print an estimate of kind.
func precision(kind estimator.Kind) int {
	if kind == estimator.KindIntegral {
		return IntegralPrecision
	}
	return ProbabilityPrecision
}

// FormatEstimate formats the headline line of a result, for example
// "Probability after 1000 trials: 0.4908000000".
func FormatEstimate(res orchestration.Result) string {
	label := "Probability"
	if res.Kind == estimator.KindIntegral {
		label = "Integral estimate"
	}
	return fmt.Sprintf("%s after %d trials: %.*f", label, res.TotalTrials, precision(res.Kind), res.Estimate())
}

// FormatQuietResult returns the bare estimate, suitable for scripting.
func FormatQuietResult(res orchestration.Result) string {
	return fmt.Sprintf("%.*f", precision(res.Kind), res.Estimate())
}

// DisplayQuietResult writes FormatQuietResult followed by a newline.
func DisplayQuietResult(out io.Writer, res orchestration.Result) {
	fmt.Fprintln(out, FormatQuietResult(res))
}

// DisplayResult prints the estimate and, when details is set, the run
// metadata (run id, scheduler, chunk layout, raw aggregate and duration).
//
// Parameters:
//   - res: The completed estimation.
//   - details: Whether to print the run metadata.
//   - out: The output writer.
func DisplayResult(res orchestration.Result, details bool, out io.Writer) {
	fmt.Fprintf(out, "%s%s%s\n", ui.ColorSuccess(), FormatEstimate(res), ui.ColorReset())
	if !details {
		return
	}
	fmt.Fprintf(out, "\n%s--- Run details ---%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(out, "  Run ID:           %s%s%s\n", ui.ColorSecondary(), res.RunID, ui.ColorReset())
	fmt.Fprintf(out, "  Mode:             %s (%s)\n", res.Mode, res.Kind)
	fmt.Fprintf(out, "  Scheduler:        %s\n", res.Scheduler)
	fmt.Fprintf(out, "  Chunks:           %d × %d trials\n", res.Chunks, res.TrialsPerChunk)
	fmt.Fprintf(out, "  Aggregate:        %.*f\n", precision(res.Kind), res.Aggregate)
	fmt.Fprintf(out, "  Duration:         %s%s%s\n", ui.ColorWarning(), FormatExecutionDuration(res.Duration), ui.ColorReset())
	if secs := res.Duration.Seconds(); secs > 0 {
		fmt.Fprintf(out, "  Throughput:       %.3g trials/s\n", float64(res.TotalTrials)/secs)
	}
}

// NewReport builds the JSON report of res. runErr, when non-nil, is carried
// in the Error field.
func NewReport(res orchestration.Result, seed uint64, runErr error) models.Report {
	r := models.Report{
		RunID:           res.RunID,
		Mode:            res.Mode,
		Kind:            res.Kind.String(),
		Scheduler:       res.Scheduler,
		Chunks:          res.Chunks,
		TrialsPerChunk:  res.TrialsPerChunk,
		TotalTrials:     res.TotalTrials,
		Aggregate:       res.Aggregate,
		Estimate:        res.Estimate(),
		Seed:            seed,
		Duration:        res.Duration.String(),
		DurationSeconds: res.Duration.Seconds(),
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
	}
	if runErr != nil {
		r.Error = runErr.Error()
	}
	return r
}

// WriteJSONReport encodes report as indented JSON to out.
func WriteJSONReport(out io.Writer, report models.Report) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/agbru/mcgeom/internal/estimator"
	"github.com/agbru/mcgeom/internal/orchestration"
	"github.com/agbru/mcgeom/internal/testutil"
	"github.com/agbru/mcgeom/internal/ui"
	"github.com/agbru/mcgeom/pkg/models"
)

func probabilityResult() orchestration.Result {
	return orchestration.Result{
		RunID:          "run-1",
		Mode:           estimator.ModeNearestSlope,
		Kind:           estimator.KindProbability,
		Scheduler:      "errgroup",
		Chunks:         4,
		TrialsPerChunk: 250,
		Aggregate:      491,
		TotalTrials:    1000,
		Duration:       1500 * time.Millisecond,
	}
}

func TestFormatEstimate(t *testing.T) {
	t.Parallel()
	res := probabilityResult()
	if got, want := FormatEstimate(res), "Probability after 1000 trials: 0.4910000000"; got != want {
		t.Errorf("FormatEstimate() = %q, want %q", got, want)
	}
	if got, want := FormatQuietResult(res), "0.4910000000"; got != want {
		t.Errorf("FormatQuietResult() = %q, want %q", got, want)
	}

	res.Kind = estimator.KindIntegral
	res.Mode = estimator.ModeIntegrand
	res.Aggregate = 250
	if got, want := FormatEstimate(res), "Integral estimate after 1000 trials: 0.250000000000"; got != want {
		t.Errorf("FormatEstimate() = %q, want %q", got, want)
	}
}

func TestDisplayQuietResult(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplayQuietResult(&buf, probabilityResult())
	if buf.String() != "0.4910000000\n" {
		t.Errorf("quiet output = %q", buf.String())
	}
}

func TestDisplayResult(t *testing.T) {
	ui.InitTheme(false)

	tests := []struct {
		name    string
		details bool
		want    []string
		absent  []string
	}{
		{"Headline", false, []string{"Probability after 1000 trials: 0.4910000000"}, []string{"Run details"}},
		{"Details", true, []string{"Run details", "run-1", "nearest-slope (probability)", "4 × 250 trials", "1.5s", "trials/s"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			DisplayResult(probabilityResult(), tt.details, &buf)
			output := testutil.StripAnsiCodes(buf.String())
			for _, s := range tt.want {
				if !strings.Contains(output, s) {
					t.Errorf("Expected output to contain %q, but got:\n%s", s, output)
				}
			}
			for _, s := range tt.absent {
				if strings.Contains(output, s) {
					t.Errorf("Output should not contain %q:\n%s", s, output)
				}
			}
		})
	}
}

func TestWriteJSONReport(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := WriteJSONReport(&buf, NewReport(probabilityResult(), 42, nil)); err != nil {
		t.Fatalf("WriteJSONReport() error = %v", err)
	}

	var got models.Report
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if got.Kind != "probability" || got.TotalTrials != 1000 || got.Seed != 42 {
		t.Errorf("report = %+v", got)
	}
	if !testutil.ApproxEqual(got.Estimate, 0.491, 1e-12) || got.DurationSeconds != 1.5 {
		t.Errorf("estimate/duration = %v/%v", got.Estimate, got.DurationSeconds)
	}
	if strings.Contains(buf.String(), `"error"`) {
		t.Errorf("error field present on success: %s", buf.String())
	}
}

func TestNewReportCarriesError(t *testing.T) {
	t.Parallel()
	r := NewReport(orchestration.Result{Mode: "integrand"}, 0, errors.New("entropy unavailable"))
	if r.Error != "entropy unavailable" || r.Estimate != 0 {
		t.Errorf("report = %+v", r)
	}
}

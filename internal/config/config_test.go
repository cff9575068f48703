package config

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"strings"
	"testing"

	apperrors "github.com/agbru/mcgeom/internal/errors"
	"github.com/agbru/mcgeom/internal/estimator"
)

var availableModes = estimator.NewDefaultFactory().List()

func TestParseConfig(t *testing.T) {
	t.Parallel()

	t.Run("DefaultValues", func(t *testing.T) {
		t.Parallel()
		cfg, err := ParseConfig("mcgeom", nil, io.Discard, availableModes)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if cfg.Chunks != DefaultChunks || cfg.TrialsPerChunk != DefaultTrialsPerChunk {
			t.Errorf("defaults = %d×%d", cfg.Chunks, cfg.TrialsPerChunk)
		}
		if cfg.Mode != estimator.DefaultMode || cfg.Scheduler != DefaultScheduler {
			t.Errorf("mode/scheduler = %s/%s", cfg.Mode, cfg.Scheduler)
		}
		if cfg.ProgressBatch != estimator.DefaultProgressBatch || cfg.LogLevel != DefaultLogLevel {
			t.Errorf("batch/log level = %d/%s", cfg.ProgressBatch, cfg.LogLevel)
		}
		if cfg.TotalTrials() != 2_500_000_000 {
			t.Errorf("TotalTrials() = %d", cfg.TotalTrials())
		}
	})

	t.Run("ValidFlags", func(t *testing.T) {
		t.Parallel()
		args := []string{
			"-chunks", "12",
			"-trials", "34",
			"-mode", "Scan-Quadratic",
			"-scheduler", "pargo",
			"-workers", "3",
			"-seed", "99",
			"-q", "-d", "-json", "-no-color",
			"-log-level", "debug",
		}
		cfg, err := ParseConfig("mcgeom", args, io.Discard, availableModes)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		want := AppConfig{
			Chunks: 12, TrialsPerChunk: 34, Mode: estimator.ModeScanQuadratic,
			Scheduler: "pargo", Workers: 3, ProgressBatch: estimator.DefaultProgressBatch,
			Seed: 99, JSONOutput: true, Quiet: true, Details: true, NoColor: true,
			LogLevel: "debug",
		}
		if cfg != want {
			t.Errorf("got %+v\nwant %+v", cfg, want)
		}
	})

	t.Run("Calibration", func(t *testing.T) {
		t.Parallel()
		cfg, err := ParseConfig("mcgeom", []string{"-calibrate", "-calibration-out", "fast.yaml"}, io.Discard, availableModes)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !cfg.Calibrate || cfg.CalibrationOut != "fast.yaml" {
			t.Errorf("calibration flags = %v/%q", cfg.Calibrate, cfg.CalibrationOut)
		}
	})

	t.Run("Help", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		_, err := ParseConfig("mcgeom", []string{"-h"}, &buf, availableModes)
		if !errors.Is(err, flag.ErrHelp) {
			t.Fatalf("error = %v, want flag.ErrHelp", err)
		}
		for _, want := range []string{"Usage:", "-chunks", "-mode", "MCGEOM_"} {
			if !strings.Contains(buf.String(), want) {
				t.Errorf("usage missing %q", want)
			}
		}
	})
}

func TestParseConfigRejects(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		args       []string
		validation bool
	}{
		{"zero chunks", []string{"-chunks", "0"}, true},
		{"negative trials", []string{"-trials", "-5"}, true},
		{"unknown mode", []string{"-mode", "hexagon"}, false},
		{"unknown scheduler", []string{"-scheduler", "rayon"}, false},
		{"negative workers", []string{"-workers", "-1"}, false},
		{"negative batch", []string{"-progress-batch", "-1"}, false},
		{"bad log level", []string{"-log-level", "loud"}, false},
		{"positional", []string{"extra"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseConfig("mcgeom", tt.args, io.Discard, availableModes)
			if err == nil {
				t.Fatal("expected an error")
			}
			if apperrors.ExitCode(err) != apperrors.ExitErrorConfig {
				t.Errorf("exit code = %d for %v", apperrors.ExitCode(err), err)
			}
			var ve apperrors.ValidationError
			if errors.As(err, &ve) != tt.validation {
				t.Errorf("ValidationError = %v, want %v (%v)", !tt.validation, tt.validation, err)
			}
		})
	}
}

func TestParseConfigUnknownFlag(t *testing.T) {
	t.Parallel()
	if _, err := ParseConfig("mcgeom", []string{"-n", "10"}, io.Discard, availableModes); err == nil {
		t.Error("unknown flag accepted")
	}
}

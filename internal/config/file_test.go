package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/agbru/mcgeom/internal/errors"
)

func writePreset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "preset.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParsePreset(t *testing.T) {
	t.Parallel()

	p, err := ParsePreset([]byte("chunks: 64\nmode: integrand\nseed: 12\ndetails: true\n"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if p.Chunks == nil || *p.Chunks != 64 || p.Mode == nil || *p.Mode != "integrand" {
		t.Errorf("unexpected preset %+v", p)
	}
	if p.Trials != nil {
		t.Error("absent key decoded as a value")
	}

	if _, err := ParsePreset(nil); err != nil {
		t.Errorf("empty preset rejected: %v", err)
	}
	if _, err := ParsePreset([]byte("chunkz: 3\n")); err == nil {
		t.Error("unknown key accepted")
	}
	if _, err := ParsePreset([]byte("chunks: [1, 2]\n")); err == nil {
		t.Error("wrong type accepted")
	}
}

func TestPresetPriority(t *testing.T) {
	path := writePreset(t, "chunks: 64\ntrials: 10\nmode: scan-quadratic\nscheduler: pargo\n")
	t.Setenv("MCGEOM_TRIALS", "20")

	cfg, err := ParseConfig("mcgeom", []string{"-config", path, "-mode", "integrand"}, io.Discard, availableModes)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Chunks != 64 {
		t.Errorf("Chunks = %d, want preset value 64", cfg.Chunks)
	}
	if cfg.TrialsPerChunk != 20 {
		t.Errorf("TrialsPerChunk = %d, want environment value 20", cfg.TrialsPerChunk)
	}
	if cfg.Mode != "integrand" {
		t.Errorf("Mode = %s, want flag value integrand", cfg.Mode)
	}
	if cfg.Scheduler != "pargo" {
		t.Errorf("Scheduler = %s, want preset value pargo", cfg.Scheduler)
	}
}

func TestPresetFromEnvironment(t *testing.T) {
	t.Setenv("MCGEOM_CONFIG", writePreset(t, "chunks: 3\n"))
	cfg, err := ParseConfig("mcgeom", nil, io.Discard, availableModes)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Chunks != 3 {
		t.Errorf("Chunks = %d, want 3", cfg.Chunks)
	}
}

func TestPresetErrors(t *testing.T) {
	t.Parallel()
	missing := filepath.Join(t.TempDir(), "absent.yaml")
	_, err := ParseConfig("mcgeom", []string{"-config", missing}, io.Discard, availableModes)
	if apperrors.ExitCode(err) != apperrors.ExitErrorConfig {
		t.Errorf("missing preset: error = %v", err)
	}

	bad := writePreset(t, "chunks: 0\n")
	_, err = ParseConfig("mcgeom", []string{"-config", bad}, io.Discard, availableModes)
	if apperrors.ExitCode(err) != apperrors.ExitErrorConfig {
		t.Errorf("zero chunks preset: error = %v", err)
	}
}

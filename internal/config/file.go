package config

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	apperrors "github.com/agbru/mcgeom/internal/errors"
)

// Preset is a YAML file of run parameters. Absent keys leave the flag
// default in place; unknown keys are rejected.
//
// Example:
//
//	chunks: 20000
//	trials: 100000
//	mode: scan-quadratic
//	scheduler: pargo
//	seed: 42
type Preset struct {
	Chunks        *int    `yaml:"chunks,omitempty"`
	Trials        *int    `yaml:"trials,omitempty"`
	Mode          *string `yaml:"mode,omitempty"`
	Scheduler     *string `yaml:"scheduler,omitempty"`
	Workers       *int    `yaml:"workers,omitempty"`
	ProgressBatch *int    `yaml:"progress_batch,omitempty"`
	Seed          *uint64 `yaml:"seed,omitempty"`
	JSON          *bool   `yaml:"json,omitempty"`
	Quiet         *bool   `yaml:"quiet,omitempty"`
	Details       *bool   `yaml:"details,omitempty"`
	NoColor       *bool   `yaml:"no_color,omitempty"`
	LogLevel      *string `yaml:"log_level,omitempty"`
}

// LoadPreset reads and decodes the preset at path. An empty file is a valid
// preset with no values.
func LoadPreset(path string) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, apperrors.NewConfigError("cannot read preset %s: %v", path, err)
	}
	return ParsePreset(data)
}

// ParsePreset decodes a YAML preset document.
func ParsePreset(data []byte) (Preset, error) {
	var p Preset
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Preset{}, apperrors.NewConfigError("invalid preset: %v", err)
	}
	return p, nil
}

// apply copies the preset values into config for every flag that was not set
// on the command line. Environment overrides are applied afterwards.
func (p Preset) apply(config *AppConfig, fs *flag.FlagSet) {
	setInt := func(dst *int, v *int, names ...string) {
		if v != nil && !isFlagSet(fs, names...) {
			*dst = *v
		}
	}
	setString := func(dst *string, v *string, names ...string) {
		if v != nil && !isFlagSet(fs, names...) {
			*dst = *v
		}
	}
	setBool := func(dst *bool, v *bool, names ...string) {
		if v != nil && !isFlagSet(fs, names...) {
			*dst = *v
		}
	}

	setInt(&config.Chunks, p.Chunks, "chunks")
	setInt(&config.TrialsPerChunk, p.Trials, "trials")
	setInt(&config.Workers, p.Workers, "workers")
	setInt(&config.ProgressBatch, p.ProgressBatch, "progress-batch")
	setString(&config.Mode, p.Mode, "mode")
	setString(&config.Scheduler, p.Scheduler, "scheduler")
	setString(&config.LogLevel, p.LogLevel, "log-level")
	setBool(&config.JSONOutput, p.JSON, "json")
	setBool(&config.Quiet, p.Quiet, "quiet", "q")
	setBool(&config.Details, p.Details, "d", "details")
	setBool(&config.NoColor, p.NoColor, "no-color")
	if p.Seed != nil && !isFlagSet(fs, "seed") {
		config.Seed = *p.Seed
	}
}

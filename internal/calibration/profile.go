package calibration

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/agbru/mcgeom/internal/config"
	apperrors "github.com/agbru/mcgeom/internal/errors"
	"github.com/agbru/mcgeom/internal/parallel"
)

// Preset converts the recommended candidate into a YAML preset loadable
// with -config.
func (r Report) Preset() config.Preset {
	scheduler := r.Best.Candidate.Scheduler
	p := config.Preset{Scheduler: &scheduler}
	if scheduler == parallel.SchedulerErrGroup {
		workers := r.Best.Candidate.Workers
		p.Workers = &workers
	}
	return p
}

// MarshalPreset renders the recommended preset with a header describing
// the machine it was calibrated on.
func (r Report) MarshalPreset() ([]byte, error) {
	body, err := yaml.Marshal(r.Preset())
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# mcgeom calibration, %s\n", time.Now().UTC().Format(time.RFC3339))
	fmt.Fprintf(&buf, "# %d logical CPUs, %s/%s, %s\n", runtime.NumCPU(), runtime.GOOS, runtime.GOARCH, runtime.Version())
	buf.Write(body)
	return buf.Bytes(), nil
}

// SavePreset writes the recommended preset to path, creating the parent
// directory when needed.
func (r Report) SavePreset(path string) error {
	data, err := r.MarshalPreset()
	if err != nil {
		return apperrors.WrapError(err, "encoding calibration preset")
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperrors.WrapError(err, "creating preset directory")
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return apperrors.WrapError(err, "writing calibration preset")
	}
	return nil
}

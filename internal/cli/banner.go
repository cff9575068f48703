package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"

	"github.com/agbru/mcgeom/internal/config"
	"github.com/agbru/mcgeom/internal/ui"
)

// writeOut writes to out, ignoring errors as is usual for terminal output.
func writeOut(out io.Writer, format string, a ...any) {
	fmt.Fprintf(out, format, a...)
}

// CPUFeatures lists the SIMD features detected on the host.
func CPUFeatures() []string {
	var features []string
	switch runtime.GOARCH {
	case "amd64", "386":
		if cpu.X86.HasAVX2 {
			features = append(features, "AVX2")
		}
		if cpu.X86.HasFMA {
			features = append(features, "FMA")
		}
		if cpu.X86.HasAVX512F {
			features = append(features, "AVX-512F")
		}
	case "arm64":
		if cpu.ARM64.HasASIMD {
			features = append(features, "ASIMD")
		}
		if cpu.ARM64.HasFPHP {
			features = append(features, "FPHP")
		}
	}
	return features
}

// PrintExecutionConfig prints the run parameters and host information
// before the estimation starts.
func PrintExecutionConfig(cfg config.AppConfig, workers int, out io.Writer) {
	features := "none"
	if f := CPUFeatures(); len(f) > 0 {
		features = strings.Join(f, ", ")
	}
	seed := "entropy"
	if cfg.Seed != 0 {
		seed = fmt.Sprintf("%d", cfg.Seed)
	}

	writeOut(out, "%s--- Execution Configuration ---%s\n", ui.ColorBold(), ui.ColorReset())
	writeOut(out, "Mode: %s%s%s, scheduler: %s%s%s (%d workers).\n",
		ui.ColorSecondary(), cfg.Mode, ui.ColorReset(), ui.ColorSecondary(), cfg.Scheduler, ui.ColorReset(), workers)
	writeOut(out, "Trials: %s%d%s chunks × %s%d%s = %s%d%s, seed: %s.\n",
		ui.ColorPrimary(), cfg.Chunks, ui.ColorReset(),
		ui.ColorPrimary(), cfg.TrialsPerChunk, ui.ColorReset(),
		ui.ColorPrimary(), cfg.TotalTrials(), ui.ColorReset(), seed)
	writeOut(out, "Environment: %d logical CPUs, GOMAXPROCS=%d, %s/%s, CPU features: %s.\n",
		runtime.NumCPU(), runtime.GOMAXPROCS(0), runtime.GOOS, runtime.GOARCH, features)
	writeOut(out, "\n%s--- Starting Estimation ---%s\n", ui.ColorBold(), ui.ColorReset())
}

// Package calibration measures the throughput of each scheduler on the
// current hardware and recommends the fastest configuration.
package calibration

import (
	"runtime"
	"slices"

	"github.com/agbru/mcgeom/internal/parallel"
)

// Candidate is one scheduler configuration tried during calibration.
type Candidate struct {
	Scheduler string
	// Workers is the errgroup pool size; unused by pargo.
	Workers int
	// Threshold is the pargo threshold; unused by errgroup.
	Threshold int
}

// Reducer builds the reducer described by c.
func (c Candidate) Reducer() parallel.Reducer {
	if c.Scheduler == parallel.SchedulerPargo {
		return &parallel.PargoReducer{Threshold: c.Threshold}
	}
	return &parallel.ErrGroupReducer{Workers: c.Workers}
}

// GenerateWorkerCounts returns the errgroup pool sizes worth comparing for
// numCPU logical CPUs: powers of two below numCPU, numCPU itself and twice
// numCPU to expose oversubscription.
func GenerateWorkerCounts(numCPU int) []int {
	if numCPU <= 1 {
		return []int{1, 2}
	}
	var counts []int
	for w := 1; w < numCPU; w *= 2 {
		counts = append(counts, w)
	}
	counts = append(counts, numCPU, 2*numCPU)
	return slices.Compact(counts)
}

// GenerateCandidates lists every configuration calibrated on this machine:
// the errgroup pool at each worker count and pargo as selected by
// -scheduler pargo.
func GenerateCandidates() []Candidate {
	var candidates []Candidate
	for _, w := range GenerateWorkerCounts(runtime.NumCPU()) {
		candidates = append(candidates, Candidate{Scheduler: parallel.SchedulerErrGroup, Workers: w})
	}
	return append(candidates, Candidate{Scheduler: parallel.SchedulerPargo, Threshold: parallel.DefaultPargoThreshold})
}

package parallel

import (
	"math/bits"

	apperrors "github.com/agbru/mcgeom/internal/errors"
)

// Plan is the partition of a run into equally sized chunks. Chunk
// identifiers are the integers in [0, Chunks).
type Plan struct {
	// Chunks is the number of independent chunks.
	Chunks int
	// TrialsPerChunk is the number of trials each chunk runs sequentially.
	TrialsPerChunk uint64
	// TotalTrials is exactly Chunks × TrialsPerChunk.
	TotalTrials uint64
}

// NewPlan validates the two run parameters and returns the partition.
// Both counts must be strictly positive and their product must fit in a
// uint64.
func NewPlan(chunks, trialsPerChunk int) (Plan, error) {
	if chunks <= 0 {
		return Plan{}, apperrors.NewValidationError("chunks", "must be strictly positive", chunks)
	}
	if trialsPerChunk <= 0 {
		return Plan{}, apperrors.NewValidationError("trials_per_chunk", "must be strictly positive", trialsPerChunk)
	}
	hi, total := bits.Mul64(uint64(chunks), uint64(trialsPerChunk))
	if hi != 0 {
		return Plan{}, apperrors.NewValidationError("trials_per_chunk", "total trial count overflows uint64", trialsPerChunk)
	}
	return Plan{
		Chunks:         chunks,
		TrialsPerChunk: uint64(trialsPerChunk),
		TotalTrials:    total,
	}, nil
}

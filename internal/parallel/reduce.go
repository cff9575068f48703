package parallel

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	pargo "github.com/exascience/pargo/parallel"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/mcgeom/internal/errors"
)

// ChunkFunc runs one chunk to completion and returns its partial aggregate.
type ChunkFunc func(chunk int) (float64, error)

// Reducer dispatches every chunk of [0, chunks) exactly once across the
// available execution contexts and folds the partials by addition. The
// result is only valid once Reduce has returned.
type Reducer interface {
	// Name identifies the scheduling strategy.
	Name() string
	// Reduce runs fn for every chunk and returns the sum of the partials.
	// The first chunk error aborts the remaining dispatch and is returned.
	Reduce(chunks int, fn ChunkFunc) (float64, error)
}

// Scheduler names accepted by NewReducer.
const (
	SchedulerErrGroup = "errgroup"
	SchedulerPargo    = "pargo"
)

// DefaultPargoThreshold asks pargo to split the range into twice as many
// subranges as there are logical CPUs.
const DefaultPargoThreshold = 2

// NewReducer returns the reducer registered under name. workers <= 0 selects
// runtime.GOMAXPROCS(0). An unknown name is reported as a ConfigError.
func NewReducer(name string, workers int) (Reducer, error) {
	switch name {
	case SchedulerErrGroup, "":
		return &ErrGroupReducer{Workers: workers}, nil
	case SchedulerPargo:
		return &PargoReducer{Threshold: DefaultPargoThreshold}, nil
	}
	return nil, apperrors.NewConfigError("unknown scheduler: %s", name)
}

// SchedulerNames returns the accepted scheduler names, sorted.
func SchedulerNames() []string {
	names := []string{SchedulerErrGroup, SchedulerPargo}
	sort.Strings(names)
	return names
}

// EffectiveWorkers clamps the requested worker count to [1, chunks],
// defaulting to GOMAXPROCS.
func EffectiveWorkers(workers, chunks int) int {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > chunks {
		workers = chunks
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

// ErrGroupReducer runs a fixed pool of workers in an errgroup. Workers claim
// chunk identifiers from a shared atomic cursor, so each identifier is taken
// by exactly one worker, and accumulate a private partial. The partials are
// folded once every worker has returned.
type ErrGroupReducer struct {
	// Workers is the pool size; <= 0 means GOMAXPROCS.
	Workers int
}

// Name returns "errgroup".
func (r *ErrGroupReducer) Name() string { return SchedulerErrGroup }

// Reduce implements Reducer.
func (r *ErrGroupReducer) Reduce(chunks int, fn ChunkFunc) (float64, error) {
	if chunks <= 0 {
		return 0, nil
	}
	workers := EffectiveWorkers(r.Workers, chunks)
	partials := make([]float64, workers)
	var cursor atomic.Int64

	g, ctx := errgroup.WithContext(context.Background())
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			var local float64
			for ctx.Err() == nil {
				chunk := int(cursor.Add(1) - 1)
				if chunk >= chunks {
					break
				}
				v, err := fn(chunk)
				if err != nil {
					return fmt.Errorf("chunk %d: %w", chunk, err)
				}
				local += v
			}
			partials[w] = local
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var total float64
	for _, p := range partials {
		total += p
	}
	return total, nil
}

// PargoReducer splits the chunk range recursively with pargo and runs each
// subrange sequentially in its own goroutine.
type PargoReducer struct {
	// Threshold is passed to pargo (see pargo.ComputeEffectiveThreshold).
	Threshold int
}

// Name returns "pargo".
func (r *PargoReducer) Name() string { return SchedulerPargo }

// Reduce implements Reducer. pargo.ErrRange reports the left-most failing
// subrange; the collector only stops sibling subranges early.
func (r *PargoReducer) Reduce(chunks int, fn ChunkFunc) (float64, error) {
	if chunks <= 0 {
		return 0, nil
	}
	var (
		mu    sync.Mutex
		total float64
		ec    ErrorCollector
	)
	err := pargo.ErrRange(0, chunks, r.Threshold, func(low, high int) error {
		var local float64
		for chunk := low; chunk < high; chunk++ {
			if ec.Failed() {
				return nil
			}
			v, err := fn(chunk)
			if err != nil {
				err = fmt.Errorf("chunk %d: %w", chunk, err)
				ec.SetError(err)
				return err
			}
			local += v
		}
		mu.Lock()
		total += local
		mu.Unlock()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

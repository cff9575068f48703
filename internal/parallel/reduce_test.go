package parallel

import (
	"errors"
	"math"
	"strings"
	"sync/atomic"
	"testing"

	apperrors "github.com/agbru/mcgeom/internal/errors"
)

func reducers() []Reducer {
	return []Reducer{
		&ErrGroupReducer{Workers: 1},
		&ErrGroupReducer{Workers: 4},
		&ErrGroupReducer{},
		&PargoReducer{Threshold: 1},
		&PargoReducer{Threshold: DefaultPargoThreshold},
	}
}

func TestReduceVisitsEveryChunkOnce(t *testing.T) {
	t.Parallel()
	const chunks = 1537
	for _, r := range reducers() {
		t.Run(r.Name(), func(t *testing.T) {
			t.Parallel()
			visits := make([]atomic.Int32, chunks)
			total, err := r.Reduce(chunks, func(chunk int) (float64, error) {
				visits[chunk].Add(1)
				return float64(chunk), nil
			})
			if err != nil {
				t.Fatalf("Reduce() error: %v", err)
			}
			for i := range visits {
				if n := visits[i].Load(); n != 1 {
					t.Fatalf("chunk %d visited %d times", i, n)
				}
			}
			want := float64(chunks*(chunks-1)) / 2
			if total != want {
				t.Errorf("total = %v, want %v", total, want)
			}
		})
	}
}

func TestReduceGroupingDoesNotChangeSum(t *testing.T) {
	t.Parallel()
	// The same 4096 values summed as one chunk and as 64 chunks of 64.
	values := make([]float64, 4096)
	for i := range values {
		values[i] = math.Sin(float64(i)) * 0.731
	}
	var sequential float64
	for _, v := range values {
		sequential += v
	}

	const k = 64
	for _, r := range reducers() {
		t.Run(r.Name(), func(t *testing.T) {
			t.Parallel()
			total, err := r.Reduce(k, func(chunk int) (float64, error) {
				var local float64
				for _, v := range values[chunk*k : (chunk+1)*k] {
					local += v
				}
				return local, nil
			})
			if err != nil {
				t.Fatalf("Reduce() error: %v", err)
			}
			if math.Abs(total-sequential) > 1e-9 {
				t.Errorf("grouped sum %v differs from sequential %v", total, sequential)
			}
		})
	}
}

func TestReducePropagatesChunkError(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	for _, r := range reducers() {
		t.Run(r.Name(), func(t *testing.T) {
			t.Parallel()
			_, err := r.Reduce(100, func(chunk int) (float64, error) {
				if chunk == 42 {
					return 0, boom
				}
				return 1, nil
			})
			if !errors.Is(err, boom) {
				t.Errorf("Reduce() error = %v, want %v", err, boom)
			}
		})
	}
}

func TestReduceZeroChunks(t *testing.T) {
	t.Parallel()
	for _, r := range reducers() {
		total, err := r.Reduce(0, func(int) (float64, error) {
			t.Error("chunk function called for an empty range")
			return 0, nil
		})
		if err != nil || total != 0 {
			t.Errorf("%s: Reduce(0) = %v, %v", r.Name(), total, err)
		}
	}
}

func TestNewReducer(t *testing.T) {
	t.Parallel()
	for _, name := range append(SchedulerNames(), "") {
		r, err := NewReducer(name, 2)
		if err != nil {
			t.Fatalf("NewReducer(%q) error: %v", name, err)
		}
		if name != "" && r.Name() != name {
			t.Errorf("NewReducer(%q).Name() = %q", name, r.Name())
		}
	}
	_, err := NewReducer("rayon", 0)
	if err == nil {
		t.Fatal("NewReducer accepted an unknown scheduler")
	}
	if code := apperrors.ExitCode(err); code != apperrors.ExitErrorConfig {
		t.Errorf("ExitCode(%v) = %d, want %d", err, code, apperrors.ExitErrorConfig)
	}
}

func TestPargoReduceNamesFailingChunk(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	for _, threshold := range []int{0, 1, DefaultPargoThreshold} {
		r := &PargoReducer{Threshold: threshold}
		var calls atomic.Int64
		_, err := r.Reduce(64, func(chunk int) (float64, error) {
			calls.Add(1)
			if chunk == 7 {
				return 0, boom
			}
			return 1, nil
		})
		if !errors.Is(err, boom) || !strings.Contains(err.Error(), "chunk 7") {
			t.Errorf("threshold %d: Reduce() error = %v", threshold, err)
		}
		if n := calls.Load(); n > 64 {
			t.Errorf("threshold %d: %d chunk calls for 64 chunks", threshold, n)
		}
	}
}

func TestEffectiveWorkers(t *testing.T) {
	t.Parallel()
	if got := EffectiveWorkers(8, 3); got != 3 {
		t.Errorf("EffectiveWorkers(8, 3) = %d, want 3", got)
	}
	if got := EffectiveWorkers(2, 100); got != 2 {
		t.Errorf("EffectiveWorkers(2, 100) = %d, want 2", got)
	}
	if got := EffectiveWorkers(0, 1); got != 1 {
		t.Errorf("EffectiveWorkers(0, 1) = %d, want 1", got)
	}
}

package estimator

import (
	"slices"
	"sync"
	"testing"

	"github.com/agbru/mcgeom/internal/rng"
)

// mockEstimator contributes a fixed value per trial.
type mockEstimator struct{ value float64 }

func (m *mockEstimator) Name() string { return "mock" }
func (m *mockEstimator) Kind() Kind   { return KindIntegral }
func (m *mockEstimator) RunChunk(_ *rng.Sampler, trials uint64) float64 {
	return m.value * float64(trials)
}

func TestDefaultFactory_BuiltinModes(t *testing.T) {
	t.Parallel()
	factory := NewDefaultFactory()
	want := []string{ModeIntegrand, ModeNearestQuadratic, ModeNearestSlope, ModeScanQuadratic}
	if got := factory.List(); !slices.Equal(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
	for _, name := range want {
		e, err := factory.Get(name)
		if err != nil {
			t.Fatalf("Get(%q) error: %v", name, err)
		}
		if e.Name() != name {
			t.Errorf("Get(%q).Name() = %q", name, e.Name())
		}
	}
	if !factory.Has(DefaultMode) {
		t.Errorf("default mode %q not registered", DefaultMode)
	}
}

func TestDefaultFactory_RegisterCreateGet(t *testing.T) {
	t.Parallel()
	factory := NewDefaultFactory()

	if err := factory.Register("mock", func() Estimator { return &mockEstimator{value: 1} }); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if err := factory.Register("", func() Estimator { return &mockEstimator{} }); err == nil {
		t.Error("empty name accepted")
	}
	if err := factory.Register("nil", nil); err == nil {
		t.Error("nil creator accepted")
	}

	a, _ := factory.Create("mock")
	b, _ := factory.Create("mock")
	if a == b {
		t.Error("Create should return fresh instances")
	}

	g1, _ := factory.Get("mock")
	g2, _ := factory.Get("mock")
	if g1 != g2 {
		t.Error("Get should return the cached instance")
	}

	// Re-registering drops the cache.
	_ = factory.Register("mock", func() Estimator { return &mockEstimator{value: 2} })
	g3, _ := factory.Get("mock")
	if g3 == g1 || g3.RunChunk(nil, 1) != 2 {
		t.Error("re-registration did not replace the cached estimator")
	}

	if _, err := factory.Get("nonexistent"); err == nil {
		t.Error("Get should fail for unknown names")
	}
	if _, err := factory.Create("nonexistent"); err == nil {
		t.Error("Create should fail for unknown names")
	}
	if all := factory.GetAll(); len(all) != 5 {
		t.Errorf("GetAll() returned %d estimators, want 5", len(all))
	}
}

func TestDefaultFactory_MustGetPanics(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Error("MustGet should panic for unknown names")
		}
	}()
	NewDefaultFactory().MustGet("missing")
}

func TestDefaultFactory_ConcurrentGet(t *testing.T) {
	t.Parallel()
	factory := NewDefaultFactory()
	var wg sync.WaitGroup
	results := make([]Estimator, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = factory.MustGet(ModeScanQuadratic)
		}(i)
	}
	wg.Wait()
	for _, e := range results {
		if e != results[0] {
			t.Fatal("concurrent Get returned different instances")
		}
	}
}

func TestGlobalFactory(t *testing.T) {
	t.Parallel()
	if GlobalFactory() == nil || !GlobalFactory().Has(ModeIntegrand) {
		t.Fatal("global factory missing built-in modes")
	}
}

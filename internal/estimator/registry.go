package estimator

import (
	"fmt"
	"sort"
	"sync"

	"github.com/agbru/mcgeom/internal/geometry"
)

// Default mode names.
const (
	ModeNearestSlope     = "nearest-slope"
	ModeNearestQuadratic = "nearest-quadratic"
	ModeScanQuadratic    = "scan-quadratic"
	ModeIntegrand        = "integrand"
)

// DefaultMode is the estimator used when none is configured.
const DefaultMode = ModeNearestSlope

// Factory creates estimators by mode name.
type Factory interface {
	// Create always builds a fresh estimator.
	Create(name string) (Estimator, error)
	// Get returns a cached estimator, building it on first use.
	Get(name string) (Estimator, error)
	// List returns the registered names, sorted.
	List() []string
	// Register adds or replaces a mode.
	Register(name string, creator func() Estimator) error
	// GetAll returns every registered estimator.
	GetAll() map[string]Estimator
}

// DefaultFactory is a thread-safe registry of estimator creators that caches
// the estimators it hands out through Get.
type DefaultFactory struct {
	mu         sync.RWMutex
	creators   map[string]func() Estimator
	estimators map[string]Estimator
}

// NewDefaultFactory returns a factory with the four built-in modes:
//   - "nearest-slope": nearest border, closed-form bisector slope
//   - "nearest-quadratic": nearest border, quadratic root
//   - "scan-quadratic": quadratic root over left, right, bottom, top
//   - "integrand": scalar integrand over (u, v)
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{
		creators:   make(map[string]func() Estimator),
		estimators: make(map[string]Estimator),
	}
	_ = f.Register(ModeNearestSlope, func() Estimator {
		return NewPredicateEstimator(geometry.SlopePredicate{})
	})
	_ = f.Register(ModeNearestQuadratic, func() Estimator {
		return NewPredicateEstimator(geometry.QuadraticPredicate{})
	})
	_ = f.Register(ModeScanQuadratic, func() Estimator {
		return NewPredicateEstimator(geometry.QuadraticPredicate{Scan: true})
	})
	_ = f.Register(ModeIntegrand, func() Estimator { return NewIntegrandEstimator() })
	return f
}

// Register adds a creator under name. A cached estimator with the same name
// is dropped so the next Get uses the new creator.
func (f *DefaultFactory) Register(name string, creator func() Estimator) error {
	if name == "" {
		return fmt.Errorf("estimator name must not be empty")
	}
	if creator == nil {
		return fmt.Errorf("nil creator for estimator %s", name)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creators[name] = creator
	delete(f.estimators, name)
	return nil
}

// Create builds a new estimator without caching it.
func (f *DefaultFactory) Create(name string) (Estimator, error) {
	f.mu.RLock()
	creator, ok := f.creators[name]
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown estimator: %s", name)
	}
	return creator(), nil
}

// Get returns the cached estimator for name, creating it if needed.
func (f *DefaultFactory) Get(name string) (Estimator, error) {
	f.mu.RLock()
	if e, exists := f.estimators[name]; exists {
		f.mu.RUnlock()
		return e, nil
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()
	if e, exists := f.estimators[name]; exists {
		return e, nil
	}
	creator, ok := f.creators[name]
	if !ok {
		return nil, fmt.Errorf("unknown estimator: %s", name)
	}
	e := creator()
	f.estimators[name] = e
	return e, nil
}

// List returns the registered names in alphabetical order.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.creators))
	for name := range f.creators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll initializes every registered estimator and returns a copy of the
// cache.
func (f *DefaultFactory) GetAll() map[string]Estimator {
	f.mu.Lock()
	defer f.mu.Unlock()
	for name, creator := range f.creators {
		if _, exists := f.estimators[name]; !exists {
			f.estimators[name] = creator()
		}
	}
	result := make(map[string]Estimator, len(f.estimators))
	for name, e := range f.estimators {
		result[name] = e
	}
	return result
}

// MustGet is like Get but panics if name is not registered.
func (f *DefaultFactory) MustGet(name string) Estimator {
	e, err := f.Get(name)
	if err != nil {
		panic(fmt.Sprintf("estimator: required estimator not found: %s", name))
	}
	return e
}

// Has reports whether name is registered.
func (f *DefaultFactory) Has(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, exists := f.creators[name]
	return exists
}

var globalFactory = NewDefaultFactory()

// GlobalFactory returns the process-wide factory.
func GlobalFactory() *DefaultFactory {
	return globalFactory
}

// RegisterEstimator registers a mode in the global factory.
func RegisterEstimator(name string, creator func() Estimator) error {
	return globalFactory.Register(name, creator)
}

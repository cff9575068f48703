// Package estimator turns geometric predicates and integrands into Monte
// Carlo estimators that run one chunk of trials against a private random
// stream. It also provides the completion tracker and the observers that
// surface chunk progress without touching the aggregate.
package estimator

import (
	"github.com/agbru/mcgeom/internal/geometry"
	"github.com/agbru/mcgeom/internal/rng"
)

// Kind tells how the aggregate of an estimator is interpreted.
type Kind uint8

const (
	// KindProbability aggregates a count of trials for which a predicate holds.
	KindProbability Kind = iota
	// KindIntegral aggregates a sum of integrand values.
	KindIntegral
)

// String returns "probability" or "integral".
func (k Kind) String() string {
	if k == KindIntegral {
		return "integral"
	}
	return "probability"
}

// Estimator runs the trials of one chunk sequentially and returns the
// chunk's partial aggregate. Implementations must be safe for concurrent use
// by several chunks, each passing its own Sampler.
type Estimator interface {
	// Name returns the registered mode name.
	Name() string
	// Kind reports whether the aggregate is a count or a sum.
	Kind() Kind
	// RunChunk executes trials trials drawing from s.
	RunChunk(s *rng.Sampler, trials uint64) float64
}

// PredicateEstimator counts the trials whose two points satisfy a geometric
// predicate.
type PredicateEstimator struct {
	predicate geometry.Predicate
}

// NewPredicateEstimator wraps p.
func NewPredicateEstimator(p geometry.Predicate) *PredicateEstimator {
	return &PredicateEstimator{predicate: p}
}

// Name returns the predicate name.
func (e *PredicateEstimator) Name() string { return e.predicate.Name() }

// Kind returns KindProbability.
func (e *PredicateEstimator) Kind() Kind { return KindProbability }

// RunChunk draws two points per trial and counts the hits.
func (e *PredicateEstimator) RunChunk(s *rng.Sampler, trials uint64) float64 {
	var hits uint64
	for i := uint64(0); i < trials; i++ {
		p1, p2 := s.Trial()
		if e.predicate.Holds(p1, p2) {
			hits++
		}
	}
	return float64(hits)
}

// IntegrandEstimator sums the closed-form integrand over uniform (u, v)
// samples. The sum is divided by the total trial count only once every chunk
// has been reduced.
type IntegrandEstimator struct{}

// NewIntegrandEstimator returns the integral-mode estimator.
func NewIntegrandEstimator() *IntegrandEstimator { return &IntegrandEstimator{} }

// Name returns "integrand".
func (*IntegrandEstimator) Name() string { return "integrand" }

// Kind returns KindIntegral.
func (*IntegrandEstimator) Kind() Kind { return KindIntegral }

// RunChunk draws u then v for each trial.
func (*IntegrandEstimator) RunChunk(s *rng.Sampler, trials uint64) float64 {
	var sum float64
	for i := uint64(0); i < trials; i++ {
		u := s.Coordinate()
		v := s.Coordinate()
		sum += geometry.Integrand(u, v)
	}
	return sum
}

package rng

import (
	"math/rand/v2"

	"github.com/agbru/mcgeom/internal/geometry"
)

// maxMantissa is the largest 53-bit value; dividing by it maps the 53-bit
// range onto [0,1] with both ends reachable.
const maxMantissa = 1<<53 - 1

// Sampler draws uniformly distributed coordinates from a private source.
type Sampler struct {
	src rand.Source
}

// NewSampler wraps src. The sampler takes ownership: src must not be used
// concurrently elsewhere.
func NewSampler(src rand.Source) *Sampler {
	return &Sampler{src: src}
}

// Coordinate returns a value uniformly distributed over the closed interval
// [0,1], built from the top 53 bits of the next output.
func (s *Sampler) Coordinate() float64 {
	return float64(s.src.Uint64()>>11) / maxMantissa
}

// Point returns a point with independent uniform coordinates (two draws).
func (s *Sampler) Point() geometry.Point {
	x := s.Coordinate()
	y := s.Coordinate()
	return geometry.Point{X: x, Y: y}
}

// Trial returns the two points of one trial (four draws).
func (s *Sampler) Trial() (p1, p2 geometry.Point) {
	p1 = s.Point()
	p2 = s.Point()
	return p1, p2
}

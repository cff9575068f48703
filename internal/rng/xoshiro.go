// Package rng provides the per-chunk pseudo-random streams of the estimator.
//
// Each chunk owns one Xoshiro256Plus generator seeded from fresh entropy, so
// no generator state is ever shared between goroutines and no lock guards it.
package rng

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/bits"
	"math/rand/v2"
)

// Xoshiro256Plus is the xoshiro256+ generator. It is not safe for concurrent
// use; each worker must own its instance.
type Xoshiro256Plus struct {
	s [4]uint64
}

// Compile-time check that the generator can back math/rand/v2.
var _ rand.Source = (*Xoshiro256Plus)(nil)

// New returns a generator whose state is expanded from seed with SplitMix64.
// Equal seeds produce equal streams.
func New(seed uint64) *Xoshiro256Plus {
	x := &Xoshiro256Plus{}
	x.Seed(seed)
	return x
}

// NewSeeded returns a generator seeded from the operating system's entropy
// source.
func NewSeeded() (*Xoshiro256Plus, error) {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return nil, fmt.Errorf("reading seed entropy: %w", err)
	}
	return New(binary.LittleEndian.Uint64(buf[:])), nil
}

// Seed resets the state from seed.
func (x *Xoshiro256Plus) Seed(seed uint64) {
	sm := seed
	for i := range x.s {
		x.s[i] = splitMix64(&sm)
	}
	// The all-zero state is a fixed point.
	if x.s == [4]uint64{} {
		x.s[0] = 0x9e3779b97f4a7c15
	}
}

// Uint64 returns the next 64-bit output.
func (x *Xoshiro256Plus) Uint64() uint64 {
	s := &x.s
	result := s[0] + s[3]
	t := s[1] << 17

	s[2] ^= s[0]
	s[3] ^= s[1]
	s[1] ^= s[2]
	s[0] ^= s[3]

	s[2] ^= t
	s[3] = bits.RotateLeft64(s[3], 45)

	return result
}

// DeriveSeed mixes a base seed with a chunk index so that reproducible runs
// still give every chunk a distinct stream.
func DeriveSeed(base uint64, chunk int) uint64 {
	z := base ^ (uint64(chunk) * 0xd1342543de82ef95)
	return splitMix64(&z)
}

// splitMix64 advances s and returns the mixed output.
func splitMix64(s *uint64) uint64 {
	*s += 0x9e3779b97f4a7c15
	z := *s
	z ^= z >> 30
	z *= 0xbf58476d1ce4e5b9
	z ^= z >> 27
	z *= 0x94d049bb133111eb
	z ^= z >> 31
	return z
}

// Package sampler provides the random sources fed to the queue engines.
package sampler

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Seeded draws uniform integers from a PCG generator. It is not safe for
// concurrent use; create one per run.
type Seeded struct {
	seed uint64
	rng  *rand.Rand
}

// NewSeeded returns a sampler whose draws are fully determined by seed.
func NewSeeded(seed uint64) *Seeded {
	return &Seeded{
		seed: seed,
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// NewSeed picks a seed from the wall clock.
func NewSeed() uint64 {
	return uint64(time.Now().UnixNano())
}

// Seed returns the seed the sampler was built with.
func (s *Seeded) Seed() uint64 {
	return s.seed
}

// IntInRange returns a value in [lo, hi]. If hi < lo it returns lo.
func (s *Seeded) IntInRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.IntN(hi-lo+1)
}

// Scripted replays a fixed sequence of values regardless of the requested
// bounds. It panics once the sequence is exhausted.
type Scripted struct {
	values []int
	next   int
}

// NewScripted returns a sampler that yields values in order.
func NewScripted(values ...int) *Scripted {
	return &Scripted{values: values}
}

// IntInRange returns the next scripted value.
func (s *Scripted) IntInRange(lo, hi int) int {
	if s.next >= len(s.values) {
		panic(fmt.Sprintf("scripted sampler exhausted after %d draws (range [%d, %d])", s.next, lo, hi))
	}
	v := s.values[s.next]
	s.next++
	return v
}

// Remaining reports how many scripted values have not been drawn yet.
func (s *Scripted) Remaining() int {
	return len(s.values) - s.next
}

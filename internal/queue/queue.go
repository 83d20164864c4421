// Package queue builds customer timelines for the single-server and the
// Able/Baker dual-server queue.
//
// Both engines draw their random inputs through a Sampler, derive absolute
// arrival times from the inter-arrival gaps and then walk customers in
// arrival order, carrying the time at which each server becomes free from one
// customer to the next. Nothing is revised once computed.
package queue

import (
	"github.com/rotisserie/eris"
)

// ErrInvalidArgument is returned when a run is requested with a customer count
// or sampling bound outside its domain.
var ErrInvalidArgument = eris.New("invalid argument")

// Sampler supplies uniformly distributed integers in the inclusive range
// [lo, hi].
type Sampler interface {
	IntInRange(lo, hi int) int
}

type param struct {
	name  string
	value int
}

// validate fails on the first parameter below 1.
func validate(params ...param) error {
	for _, p := range params {
		if p.value < 1 {
			return eris.Wrapf(ErrInvalidArgument, "%s must be >= 1, got %d", p.name, p.value)
		}
	}
	return nil
}

// drawGaps samples n inter-arrival gaps; the first customer's gap is fixed
// at zero.
func drawGaps(s Sampler, n, maxGap int) []int {
	gaps := make([]int, n)
	for i := 1; i < n; i++ {
		gaps[i] = s.IntInRange(1, maxGap)
	}
	return gaps
}

func drawServiceTimes(s Sampler, n, maxService int) []int {
	times := make([]int, n)
	for i := range times {
		times[i] = s.IntInRange(1, maxService)
	}
	return times
}

// checkSamples guards the deterministic builders against malformed input.
func checkSamples(gaps []int, service ...[]int) error {
	if len(gaps) == 0 {
		return eris.Wrap(ErrInvalidArgument, "at least one customer is required")
	}
	if gaps[0] != 0 {
		return eris.Wrapf(ErrInvalidArgument, "first inter-arrival gap must be 0, got %d", gaps[0])
	}
	for i, g := range gaps {
		if g < 0 {
			return eris.Wrapf(ErrInvalidArgument, "inter-arrival gap %d is negative", i)
		}
	}
	for _, times := range service {
		if len(times) != len(gaps) {
			return eris.Wrapf(ErrInvalidArgument, "got %d service times for %d customers", len(times), len(gaps))
		}
		for i, v := range times {
			if v < 0 {
				return eris.Wrapf(ErrInvalidArgument, "service time %d is negative", i)
			}
		}
	}
	return nil
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

func average(total, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(total) / float64(n)
}

package itinerary

import "math/rand/v2"

// RandomSource supplies the only nondeterminism in an itinerary: activity
// durations and daily cost variance.
type RandomSource interface {
	Float64() float64
}

type globalRandom struct{}

func (globalRandom) Float64() float64 { return rand.Float64() }

// NewSeededRandom returns a reproducible source. It is not safe for
// concurrent use.
func NewSeededRandom(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

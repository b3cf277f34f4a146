package progress

import (
	"math/rand/v2"
)

// PlacementTest is the name of the one-time placement test.
const PlacementTest = "levels"

// DefaultPassThreshold is the lowest chapter-test score that counts as a pass.
const DefaultPassThreshold = 60.0

// Engine is the progress-gating and leveling core. It holds no per-request state;
// every call receives the caller's Identity explicitly.
type Engine struct {
	store         Store
	policy        SamplePolicy
	passThreshold float64
	shuffle       func(n int, swap func(i, j int))
}

type Option func(*Engine)

// WithSamplePolicy overrides how many questions a chapter test serves.
func WithSamplePolicy(p SamplePolicy) Option {
	return func(e *Engine) { e.policy = p }
}

func WithPassThreshold(t float64) Option {
	return func(e *Engine) { e.passThreshold = t }
}

// WithShuffle replaces the random permutation used for sampling.
func WithShuffle(fn func(n int, swap func(i, j int))) Option {
	return func(e *Engine) { e.shuffle = fn }
}

func NewEngine(store Store, opts ...Option) *Engine {
	e := &Engine{
		store:         store,
		policy:        DefaultPolicy(),
		passThreshold: DefaultPassThreshold,
		shuffle:       rand.Shuffle,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) PassThreshold() float64 { return e.passThreshold }

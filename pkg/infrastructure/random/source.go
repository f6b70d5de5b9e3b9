package random

import (
	"encoding/binary"
	"math"
	"math/rand/v2"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// Source is the single seedable source of randomness of a simulation run.
// Every draw, including order IDs, comes from one ChaCha8 stream, so a fixed
// seed reproduces a run exactly. Not safe for concurrent use.
type Source struct {
	stream *rand.ChaCha8
	rng    *rand.Rand
}

// NewSource creates a source seeded with seed
func NewSource(seed uint64) *Source {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)

	stream := rand.NewChaCha8(key)
	return &Source{
		stream: stream,
		rng:    rand.New(stream),
	}
}

// IntN returns a uniform integer in [0, n)
func (s *Source) IntN(n int) int {
	return s.rng.IntN(n)
}

// IntRange returns a uniform integer in [lo, hi]
func (s *Source) IntRange(lo, hi int) int {
	return lo + s.rng.IntN(hi-lo+1)
}

// Float64 returns a uniform float in [0, 1)
func (s *Source) Float64() float64 {
	return s.rng.Float64()
}

// Poisson draws from a Poisson distribution with mean lambda
func (s *Source) Poisson(lambda float64) int {
	if lambda <= 0 || math.IsNaN(lambda) || math.IsInf(lambda, 1) {
		return 0
	}
	dist := distuv.Poisson{Lambda: lambda, Src: s.stream}
	return int(dist.Rand())
}

// WeightedSample draws up to k distinct indices without replacement, each
// draw proportional to the remaining weights. k is clamped to the number of
// positive weights, so asking for more items than exist is not an error.
func (s *Source) WeightedSample(weights []float64, k int) []int {
	positive := make([]float64, len(weights))
	available := 0
	for i, w := range weights {
		if w > 0 && !math.IsInf(w, 0) {
			positive[i] = w
			available++
		}
	}
	k = max(0, min(k, available))

	picked := make([]int, 0, k)
	if k == 0 {
		return picked
	}

	sampler := sampleuv.NewWeighted(positive, s.stream)
	for len(picked) < k {
		idx, ok := sampler.Take()
		if !ok {
			break
		}
		picked = append(picked, idx)
	}
	return picked
}

// NewID returns a version 4 UUID read from the seeded stream
func (s *Source) NewID() uuid.UUID {
	id, err := uuid.NewRandomFromReader(s.stream)
	if err != nil {
		// ChaCha8.Read never fails
		panic(err)
	}
	return id
}

package simulation

import (
	"math/rand/v2"

	"github.com/mbutler/baseball-simulator-sub000/models"
)

// RandomSource supplies the uniform randomness every resolver draws from.
// Injecting it keeps the engine deterministic under test and lets batch
// runs use independent seeded streams per game.
type RandomSource interface {
	Float64() float64 // uniform in [0, 1)
}

type defaultSource struct{}

func (defaultSource) Float64() float64 { return rand.Float64() }

// DefaultSource returns the process-global random source
func DefaultSource() RandomSource { return defaultSource{} }

type seededSource struct {
	r *rand.Rand
}

// NewSeededSource returns a reproducible PCG-backed source for deterministic
// replay and batch simulation.
func NewSeededSource(seed uint64) RandomSource {
	return &seededSource{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededSource) Float64() float64 { return s.r.Float64() }

// SampleOutcome draws one outcome from the distribution by cumulative
// probability over the canonical outcome order. A draw past the total mass
// (possible only with a malformed distribution) lands on the in-play out.
func SampleOutcome(dist models.Distribution, rng RandomSource) models.Outcome {
	roll := rng.Float64()
	var cum float64
	for _, o := range models.Outcomes {
		cum += dist[o]
		if roll < cum {
			return o
		}
	}
	return models.OutcomeInPlayOut
}

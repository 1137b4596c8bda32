// Package entropy provides the randomness behind trade-ledger regeneration.
// Restock volumes come from an importance-weighted draw modulated by a smooth
// per-cycle abundance field, so a settlement's market breathes between cycles
// instead of jumping around.
package entropy

import (
	"hash/fnv"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Source is the injected random generator used by the trade engine. Seeded
// implementations make ledger regeneration deterministic for tests.
type Source interface {
	// IntBetween returns a uniform value in [lo, hi].
	IntBetween(lo, hi int) int
	// Abundance returns a smooth modifier in [0.75, 1.25] for the given
	// resource at the given cycle.
	Abundance(cycle uint64, resource string) float64
}

// Seeded is a deterministic Source backed by math/rand and simplex noise.
type Seeded struct {
	rng   *rand.Rand
	noise opensimplex.Noise
}

// NewSeeded creates a Source that is fully determined by the seed.
func NewSeeded(seed int64) *Seeded {
	return &Seeded{
		rng:   rand.New(rand.NewSource(seed)),
		noise: opensimplex.NewNormalized(seed),
	}
}

// IntBetween returns a uniform value in [lo, hi].
func (s *Seeded) IntBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Intn(hi-lo+1)
}

const abundanceStep = 0.35

// Abundance samples the noise field at (cycle, resource). The resource key is
// hashed onto the second noise axis so each good drifts independently.
func (s *Seeded) Abundance(cycle uint64, resource string) float64 {
	h := fnv.New32a()
	h.Write([]byte(resource))
	y := float64(h.Sum32()%1024) * 7.1
	n := s.noise.Eval2(float64(cycle)*abundanceStep, y) // normalized to [0, 1]
	return 0.75 + n*0.5
}

// ByImportance draws a restock amount weighted by a resource's importance in
// a settlement's trade profile. Higher importance both raises and widens the
// range of the draw.
func ByImportance(src Source, importance int) int {
	if importance < 1 {
		importance = 1
	}
	return src.IntBetween(importance*10, importance*50)
}

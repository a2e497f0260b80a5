package curriculum

import (
	"math/rand/v2"

	"github.com/phrazzld/hececiz/internal/domain"
)

// Generator produces shuffled curricula.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a Generator backed by a randomly seeded source, so no
// two generators share an ordering.
func NewGenerator() *Generator {
	return NewGeneratorWithRand(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

// NewGeneratorWithRand creates a Generator that draws from rng. Tests use it
// with a fixed seed.
func NewGeneratorWithRand(rng *rand.Rand) *Generator {
	if rng == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("rng cannot be nil")
	}
	return &Generator{rng: rng}
}

// Generate builds a new curriculum. The alphabets and blocklist are static,
// so the result is never empty.
func (g *Generator) Generate() *Curriculum {
	combos := Combinations()
	syllables := make([]domain.Syllable, 0, len(combos))
	for _, text := range combos {
		if IsBlocked(text) {
			continue
		}
		s, err := domain.NewSyllable(text)
		if err != nil {
			// Alphabet entries are single runes, so every combination is two runes.
			continue
		}
		syllables = append(syllables, s)
	}

	g.shuffle(syllables)

	return &Curriculum{syllables: syllables}
}

// shuffle is an in-place Fisher–Yates shuffle.
func (g *Generator) shuffle(s []domain.Syllable) {
	for i := len(s) - 1; i > 0; i-- {
		j := g.rng.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

package curriculum

import "github.com/phrazzld/hececiz/internal/domain"

// Curriculum is a cyclic sequence of syllables for one session. It is owned by
// a single session controller and is not safe for concurrent use.
type Curriculum struct {
	syllables []domain.Syllable
	index     int
}

// New wraps an explicit syllable list. It returns nil for an empty list.
func New(syllables []domain.Syllable) *Curriculum {
	if len(syllables) == 0 {
		return nil
	}
	cp := make([]domain.Syllable, len(syllables))
	copy(cp, syllables)
	return &Curriculum{syllables: cp}
}

// Len returns the number of syllables.
func (c *Curriculum) Len() int {
	return len(c.syllables)
}

// Index returns the position of the current syllable.
func (c *Curriculum) Index() int {
	return c.index
}

// Current returns the syllable being practised.
func (c *Curriculum) Current() domain.Syllable {
	return c.syllables[c.index]
}

// Advance moves to the next syllable, wrapping at the end, and returns it.
func (c *Curriculum) Advance() domain.Syllable {
	c.index = (c.index + 1) % len(c.syllables)
	return c.Current()
}

// Syllables returns a copy of the full ordering.
func (c *Curriculum) Syllables() []domain.Syllable {
	out := make([]domain.Syllable, len(c.syllables))
	copy(out, c.syllables)
	return out
}

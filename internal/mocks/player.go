package mocks

import (
	"sync"

	"github.com/phrazzld/hececiz/internal/audio"
)

// MockPlayer implements audio.Player and records every request.
type MockPlayer struct {
	mu         sync.Mutex
	pronounced []string
	cues       []audio.Cue
}

var _ audio.Player = (*MockPlayer)(nil)

// Pronounce records text.
func (m *MockPlayer) Pronounce(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pronounced = append(m.pronounced, text)
}

// PlayCue records cue.
func (m *MockPlayer) PlayCue(cue audio.Cue) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cues = append(m.cues, cue)
}

// Pronounced returns a copy of the texts passed to Pronounce, in order.
func (m *MockPlayer) Pronounced() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.pronounced...)
}

// Cues returns a copy of the cues passed to PlayCue, in order.
func (m *MockPlayer) Cues() []audio.Cue {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]audio.Cue(nil), m.cues...)
}

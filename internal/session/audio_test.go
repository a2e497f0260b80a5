package session_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/hececiz/internal/audio"
	"github.com/phrazzld/hececiz/internal/events"
	"github.com/phrazzld/hececiz/internal/mocks"
	"github.com/phrazzld/hececiz/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnouncingPlayer(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	journal := events.NewJournal(10)
	emitter := events.NewInMemoryEventEmitter(nil)
	emitter.RegisterHandler(journal)
	next := &mocks.MockPlayer{}
	p := session.NewAnnouncingPlayer(next, emitter, id, nil)

	p.Pronounce("İA")
	p.PlayCue(audio.CueCorrect)

	assert.Equal(t, []string{"İA"}, next.Pronounced())
	assert.Equal(t, []audio.Cue{audio.CueCorrect}, next.Cues())

	entries := journal.Since(id, 0)
	require.Len(t, entries, 2)

	var spoken session.AudioPayload
	require.NoError(t, entries[0].Event.UnmarshalPayload(&spoken))
	assert.Equal(t, "ia.mp3", spoken.Name)
	assert.Equal(t, audio.MIMETypeMP3, spoken.MIMEType)
	assert.Equal(t, "/api/audio/syllables/%C4%B0A", spoken.URL)

	var cue session.AudioPayload
	require.NoError(t, entries[1].Event.UnmarshalPayload(&cue))
	assert.Equal(t, "/api/audio/cues/correct", cue.URL)
	assert.Equal(t, audio.MIMETypeWAV, cue.MIMEType)
}

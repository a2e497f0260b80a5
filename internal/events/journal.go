package events

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// DefaultJournalCapacity is the number of events a Journal keeps per session.
const DefaultJournalCapacity = 256

// Entry is a journaled event with its per-session sequence number.
// Sequence numbers start at 1 and increase without gaps.
type Entry struct {
	Seq   int    `json:"seq"`
	Event *Event `json:"event"`
}

type sessionLog struct {
	next    int
	entries []Entry
}

// Journal is an EventHandler that keeps the most recent events of every
// session so clients can poll for changes that happen asynchronously, such
// as a verdict arriving or a delayed return to IDLE.
type Journal struct {
	mu       sync.Mutex
	capacity int
	sessions map[uuid.UUID]*sessionLog
}

var _ EventHandler = (*Journal)(nil)

// NewJournal creates a Journal keeping up to capacity events per session.
// A non-positive capacity selects DefaultJournalCapacity.
func NewJournal(capacity int) *Journal {
	if capacity <= 0 {
		capacity = DefaultJournalCapacity
	}
	return &Journal{
		capacity: capacity,
		sessions: make(map[uuid.UUID]*sessionLog),
	}
}

// HandleEvent implements EventHandler.
func (j *Journal) HandleEvent(_ context.Context, event *Event) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	log, ok := j.sessions[event.SessionID]
	if !ok {
		log = &sessionLog{next: 1}
		j.sessions[event.SessionID] = log
	}

	log.entries = append(log.entries, Entry{Seq: log.next, Event: event})
	log.next++
	if over := len(log.entries) - j.capacity; over > 0 {
		log.entries = append([]Entry(nil), log.entries[over:]...)
	}
	return nil
}

// Since returns the journaled events of sessionID with a sequence number
// greater than after, oldest first.
func (j *Journal) Since(sessionID uuid.UUID, after int) []Entry {
	j.mu.Lock()
	defer j.mu.Unlock()

	log, ok := j.sessions[sessionID]
	if !ok {
		return []Entry{}
	}

	out := make([]Entry, 0, len(log.entries))
	for _, e := range log.entries {
		if e.Seq > after {
			out = append(out, e)
		}
	}
	return out
}

// Forget drops everything journaled for sessionID.
func (j *Journal) Forget(sessionID uuid.UUID) {
	j.mu.Lock()
	defer j.mu.Unlock()
	delete(j.sessions, sessionID)
}

package core

import (
	"sync"
	"time"
)

// TranscriptEntry is one record of a conversation: a user message, an agent
// reply, or a substituted tool result.
type TranscriptEntry struct {
	Role string `json:"role"` // "user", "agent" or "tool"
	Text string `json:"text"`
	// Invocation is set on tool entries and identifies the substituted call.
	Invocation Invocation `json:"invocation,omitempty"`
	Timestamp  time.Time  `json:"timestamp"`
}

// Transcript is the ordered conversation record of one test case. It is safe
// for concurrent access.
//
// Contract:
//   - Append updates the Updated timestamp
//   - Entries returns a defensive copy to avoid external mutation
//   - Clone performs a deep copy safe for independent divergence.
type Transcript struct {
	ID      string
	Records []TranscriptEntry
	Created time.Time
	Updated time.Time
	mu      sync.RWMutex
}

// NewTranscript creates an empty transcript with the given ID.
func NewTranscript(id string) *Transcript {
	now := time.Now()
	return &Transcript{ID: id, Records: []TranscriptEntry{}, Created: now, Updated: now}
}

// Append adds an entry, stamping it with the current time if unset.
func (t *Transcript) Append(entry TranscriptEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	t.Records = append(t.Records, entry)
	t.Updated = time.Now()
}

// Entries returns a defensive copy of the full record slice.
func (t *Transcript) Entries() []TranscriptEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	entries := make([]TranscriptEntry, len(t.Records))
	copy(entries, t.Records)
	return entries
}

// Len returns the number of recorded entries.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.Records)
}

// Clone returns a deep copy of the transcript safe for independent mutation.
func (t *Transcript) Clone() *Transcript {
	t.mu.RLock()
	defer t.mu.RUnlock()
	clone := &Transcript{ID: t.ID, Records: make([]TranscriptEntry, len(t.Records)), Created: t.Created, Updated: t.Updated}
	copy(clone.Records, t.Records)
	return clone
}

// TranscriptStore persists conversation transcripts per test case.
type TranscriptStore interface {
	Create(id string) (*Transcript, error)
	Get(id string) (*Transcript, error)
	Append(id string, entry TranscriptEntry) error
}

package session

import (
	"sync"

	"github.com/hupe1980/agentcheck/core"
)

// InMemoryStore is a volatile TranscriptStore implementation keeping
// per-test conversation transcripts in a process local map. It is safe for
// concurrent access and best suited for tests or one-shot evaluation runs.
// Each returned transcript is cloned to prevent external mutation of internal
// state.
type InMemoryStore struct {
	mu          sync.RWMutex
	transcripts map[string]*core.Transcript
}

// NewInMemoryStore constructs an empty in-memory transcript store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{transcripts: make(map[string]*core.Transcript)}
}

// Get returns an existing transcript (clone) or creates a new one lazily.
func (s *InMemoryStore) Get(id string) (*core.Transcript, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.transcripts[id]; ok {
		return t.Clone(), nil
	}
	return s.createLocked(id).Clone(), nil
}

// Create forces the creation (or overwriting) of a transcript with the given id.
func (s *InMemoryStore) Create(id string) (*core.Transcript, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createLocked(id).Clone(), nil
}

// Append adds an entry to an existing or newly created transcript.
func (s *InMemoryStore) Append(id string, entry core.TranscriptEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.transcripts[id]
	if !ok {
		t = s.createLocked(id)
	}
	t.Append(entry)
	return nil
}

// createLocked allocates and stores a new transcript; caller must already
// hold the lock. Internal helper used by Get/Create/Append paths.
func (s *InMemoryStore) createLocked(id string) *core.Transcript {
	t := core.NewTranscript(id)
	s.transcripts[id] = t
	return t
}

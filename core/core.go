package core

import "github.com/google/uuid"

// NewID generates a new unique identifier for sessions and transcripts.
func NewID() string { return uuid.NewString() }

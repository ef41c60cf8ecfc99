package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentcheck/core"
)

// Interface compliance (compile-time assertion)
var _ core.TranscriptStore = (*InMemoryStore)(nil)

func TestInMemoryStore_CreateAndGet(t *testing.T) {
	store := NewInMemoryStore()

	created, err := store.Create("t1")
	require.NoError(t, err)
	assert.Equal(t, "t1", created.ID)

	got, err := store.Get("t1")
	require.NoError(t, err)
	assert.Equal(t, "t1", got.ID)
	assert.Equal(t, 0, got.Len())
}

func TestInMemoryStore_AppendVisibleOnGet(t *testing.T) {
	store := NewInMemoryStore()

	_, err := store.Create("t1")
	require.NoError(t, err)

	require.NoError(t, store.Append("t1", core.TranscriptEntry{Role: "user", Text: "hi"}))
	require.NoError(t, store.Append("t1", core.TranscriptEntry{Role: "agent", Text: "hello"}))

	got, err := store.Get("t1")
	require.NoError(t, err)
	require.Equal(t, 2, got.Len())
	assert.Equal(t, "hi", got.Entries()[0].Text)
}

func TestInMemoryStore_GetReturnsClone(t *testing.T) {
	store := NewInMemoryStore()

	_, err := store.Create("t1")
	require.NoError(t, err)

	got, err := store.Get("t1")
	require.NoError(t, err)

	// Mutating the returned transcript must not leak into the store.
	got.Append(core.TranscriptEntry{Role: "user", Text: "local only"})

	fresh, err := store.Get("t1")
	require.NoError(t, err)
	assert.Equal(t, 0, fresh.Len())
}

func TestInMemoryStore_LazyCreation(t *testing.T) {
	store := NewInMemoryStore()

	require.NoError(t, store.Append("fresh", core.TranscriptEntry{Role: "user", Text: "hi"}))

	got, err := store.Get("fresh")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Len())
}

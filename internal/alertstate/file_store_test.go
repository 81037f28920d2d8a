package alertstate

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arslan1Ali/Daily-Reminder/internal/model"
)

func TestFileStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewFileStore(dir)
	require.NoError(t, err)

	// Absent file reads as an empty aggregate.
	states, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, states)

	when := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	states = model.AlertStates{
		"t1": {Level: 2, LastAlertAt: when},
		"t2": {Level: 1, LastAlertAt: when.Add(3 * time.Minute)},
	}
	require.NoError(t, store.Set(ctx, states))

	// A fresh handle over the same file sees the same document.
	reopened, err := NewFileStore(dir)
	require.NoError(t, err)
	got, err := reopened.Get(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got["t1"].Level)
	assert.True(t, got["t1"].LastAlertAt.Equal(when))
}

func TestFileStore_WritesWholeDocument(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set(ctx, model.AlertStates{
		"t1": {Level: 1, LastAlertAt: time.Now()},
	}))
	require.NoError(t, store.Set(ctx, model.AlertStates{
		"t2": {Level: 3, LastAlertAt: time.Now()},
	}))

	got, err := store.Get(ctx)
	require.NoError(t, err)
	_, hasOld := got["t1"]
	assert.False(t, hasOld, "set replaces the aggregate, not merges")
	assert.Equal(t, 3, got["t2"].Level)

	// No stray temp file left behind.
	_, err = os.Stat(filepath.Join(dir, "state.json.tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestMemoryStore_CopiesOnReadAndWrite(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	in := model.AlertStates{"t1": {Level: 1, LastAlertAt: time.Now()}}
	require.NoError(t, store.Set(ctx, in))

	// Mutating the caller's map after Set must not leak into the store.
	in["t1"] = model.AlertState{Level: 9}
	got, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, got["t1"].Level)

	// Mutating the returned map must not leak either.
	got["t1"] = model.AlertState{Level: 7}
	again, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, again["t1"].Level)
}

package watchlist

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"domainwatch/internal/checker"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "watchlist.json"))
	require.NoError(t, err)
	return store
}

func TestAddAndList(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Add("example.com", false))
	require.NoError(t, store.Add("test.de", true))

	entries := store.List()
	require.Len(t, entries, 2)
	assert.Equal(t, "example.com", entries[0].Domain)
	assert.Equal(t, "test.de", entries[1].Domain)
	assert.True(t, entries[1].Priority)
	assert.Equal(t, checker.StateUnknown, entries[0].LastState)
}

func TestAddDuplicate(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Add("example.com", false))
	err := store.Add("example.com", true)
	require.ErrorIs(t, err, ErrDuplicateEntry)

	// Normalization makes the duplicate check case insensitive
	err = store.Add("  EXAMPLE.COM ", false)
	require.ErrorIs(t, err, ErrDuplicateEntry)
	assert.Len(t, store.List(), 1)
}

func TestRemove(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Add("example.com", false))
	require.NoError(t, store.Remove("Example.com"))
	assert.Empty(t, store.List())
}

func TestRemoveNotFound(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Add("example.com", false))

	err := store.Remove("other.com")
	require.ErrorIs(t, err, ErrNotFound)

	// The store is left unchanged
	assert.Len(t, store.List(), 1)
}

func TestUpdate(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Add("example.com", false))

	expiry := time.Date(2030, 8, 13, 4, 0, 0, 0, time.UTC)
	checkedAt := time.Now()
	require.NoError(t, store.Update("example.com", checker.StateRegistered, checkedAt, expiry))

	entry, ok := store.Get("example.com")
	require.True(t, ok)
	assert.Equal(t, checker.StateRegistered, entry.LastState)
	assert.Equal(t, expiry, entry.Expiry)
	assert.WithinDuration(t, checkedAt, entry.LastCheckedAt, time.Second)

	// Becoming available clears the expiry date
	require.NoError(t, store.Update("example.com", checker.StateAvailable, time.Now(), time.Time{}))
	entry, _ = store.Get("example.com")
	assert.Equal(t, checker.StateAvailable, entry.LastState)
	assert.True(t, entry.Expiry.IsZero())
}

func TestUpdateNotFound(t *testing.T) {
	store := newTestStore(t)
	err := store.Update("example.com", checker.StateAvailable, time.Now(), time.Time{})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPersistence(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "watchlist.json")

	store, err := NewStore(filename)
	require.NoError(t, err)
	require.NoError(t, store.Add("example.com", true))
	require.NoError(t, store.Update("example.com", checker.StateRegistered, time.Now(), time.Time{}))
	store.RecordCycle(1)

	// A fresh store reads everything back from the file
	reloaded, err := NewStore(filename)
	require.NoError(t, err)
	entry, ok := reloaded.Get("example.com")
	require.True(t, ok)
	assert.True(t, entry.Priority)
	assert.Equal(t, checker.StateRegistered, entry.LastState)

	stats, lastFullCheck := reloaded.Stats()
	assert.Equal(t, 1, stats.TotalChecks)
	assert.Equal(t, 1, stats.StateChanges)
	assert.False(t, lastFullCheck.IsZero())
}

func TestRecordCycle(t *testing.T) {
	store := newTestStore(t)
	store.RecordCycle(0)
	store.RecordCycle(3)

	stats, _ := store.Stats()
	assert.Equal(t, 2, stats.TotalChecks)
	assert.Equal(t, 3, stats.StateChanges)
}

package geo

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"ipscope/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_AddKeepsNewestFirst(t *testing.T) {
	history := NewHistory(t.TempDir())

	for _, ip := range []string{"1.1.1.1", "2.2.2.2", "3.3.3.3"} {
		require.NoError(t, history.Add(&entity.GeoRecord{IP: ip, City: "City " + ip}, ip))
	}

	entries, err := history.Load()
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "3.3.3.3", entries[0].IP)
	assert.Equal(t, "2.2.2.2", entries[1].IP)
	assert.Equal(t, "1.1.1.1", entries[2].IP)
}

func TestHistory_CapEvictsOldest(t *testing.T) {
	history := NewHistory(t.TempDir())

	for i := 1; i <= MaxHistoryEntries+1; i++ {
		ip := fmt.Sprintf("10.0.0.%d", i)
		require.NoError(t, history.Add(&entity.GeoRecord{IP: ip}, ip))
	}

	entries, err := history.Load()
	require.NoError(t, err)
	require.Len(t, entries, MaxHistoryEntries)

	// The first search (10.0.0.1) has fallen off the tail.
	assert.Equal(t, fmt.Sprintf("10.0.0.%d", MaxHistoryEntries+1), entries[0].IP)
	assert.Equal(t, "10.0.0.2", entries[len(entries)-1].IP)
}

func TestHistory_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	first := NewHistory(dir)
	require.NoError(t, first.Add(&entity.GeoRecord{IP: "8.8.8.8", City: "Mountain View", Country: "US"}, "8.8.8.8"))

	second := NewHistory(dir)
	entries, err := second.Load()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, "8.8.8.8", entries[0].IP)
	assert.Equal(t, "Mountain View", entries[0].City)
	assert.Equal(t, "US", entries[0].Country)
	assert.False(t, entries[0].Timestamp.IsZero())
}

func TestHistory_FallsBackToSearchedAddress(t *testing.T) {
	history := NewHistory(t.TempDir())

	require.NoError(t, history.Add(&entity.GeoRecord{City: "Oslo"}, "203.0.113.7"))

	entries, err := history.Load()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, "203.0.113.7", entries[0].IP)
	assert.Equal(t, "Oslo", entries[0].City)
}

func TestHistory_NoDeduplication(t *testing.T) {
	history := NewHistory(t.TempDir())

	require.NoError(t, history.Add(&entity.GeoRecord{IP: "8.8.8.8"}, "8.8.8.8"))
	require.NoError(t, history.Add(&entity.GeoRecord{IP: "8.8.8.8"}, "8.8.8.8"))

	entries, err := history.Load()
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestHistory_Clear(t *testing.T) {
	history := NewHistory(t.TempDir())

	require.NoError(t, history.Add(&entity.GeoRecord{IP: "8.8.8.8"}, "8.8.8.8"))
	require.NoError(t, history.Clear())

	entries, err := history.Load()
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Clearing an already empty history is fine.
	assert.NoError(t, history.Clear())
}

func TestHistory_CorruptFileIsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, historyFile), []byte("[broken"), 0o600))

	entries, err := NewHistory(dir).Load()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

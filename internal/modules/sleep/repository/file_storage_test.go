package repository

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strophox/sleeptober-bot/internal/modules/sleep/domain"
	apperrors "github.com/strophox/sleeptober-bot/internal/shared/errors"
)

func newTestStorage(t *testing.T) (*FileStorage, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sleeptober.json")
	s, err := NewFileStorage(path)
	require.NoError(t, err)
	return s, path
}

func TestFileStorage_MissingFileIsEmptyStore(t *testing.T) {
	s, path := newTestStorage(t)
	assert.Empty(t, s.All())

	// The file is only created on first mutation
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFileStorage_GetUnknownReturnsZeroRecord(t *testing.T) {
	s, _ := newTestStorage(t)

	rec := s.Get("42")
	assert.Equal(t, "42", rec.UserID)
	assert.False(t, rec.HasData())
	assert.Zero(t, rec.TotalHours)
}

func TestFileStorage_SaveCreatesFileAndRoundTrips(t *testing.T) {
	s, path := newTestStorage(t)

	rec := domain.Record{
		UserID:     "42",
		TotalHours: 7.5,
		Entries: []domain.Entry{
			{Timestamp: time.Now().UTC().Truncate(time.Second), Hours: 7.5, Note: "ok night"},
		},
	}
	require.NoError(t, s.Save(rec))

	_, err := os.Stat(path)
	require.NoError(t, err)
	// No temp file left behind
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	// Reload from disk into a fresh store
	reloaded, err := NewFileStorage(path)
	require.NoError(t, err)
	got := reloaded.Get("42")
	assert.Equal(t, rec.UserID, got.UserID)
	assert.InDelta(t, rec.TotalHours, got.TotalHours, 1e-9)
	require.Len(t, got.Entries, 1)
	assert.InDelta(t, 7.5, got.Entries[0].Hours, 1e-9)
	assert.Equal(t, "ok night", got.Entries[0].Note)
}

func TestFileStorage_ReloadIsIdempotent(t *testing.T) {
	s, path := newTestStorage(t)
	require.NoError(t, s.Save(domain.Record{UserID: "1", TotalHours: 8, Entries: []domain.Entry{{Hours: 8}}}))
	require.NoError(t, s.Save(domain.Record{UserID: "2", TotalHours: 5, Entries: []domain.Entry{{Hours: 5}}}))

	first, err := NewFileStorage(path)
	require.NoError(t, err)
	second, err := NewFileStorage(path)
	require.NoError(t, err)

	assert.ElementsMatch(t, first.All(), second.All())
	assert.Len(t, first.All(), 2)
}

func TestFileStorage_Delete(t *testing.T) {
	s, path := newTestStorage(t)
	require.NoError(t, s.Save(domain.Record{UserID: "1", TotalHours: 8, Entries: []domain.Entry{{Hours: 8}}}))

	require.NoError(t, s.Delete("1"))
	assert.False(t, s.Get("1").HasData())

	// Deleting an absent user is a no-op
	require.NoError(t, s.Delete("404"))

	reloaded, err := NewFileStorage(path)
	require.NoError(t, err)
	assert.Empty(t, reloaded.All())
}

func TestFileStorage_FailedPersistRollsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store", "sleeptober.json")
	s, err := NewFileStorage(path)
	require.NoError(t, err)

	require.NoError(t, s.Save(domain.Record{UserID: "1", TotalHours: 8, Entries: []domain.Entry{{Hours: 8}}}))

	// Make every snapshot write (and its retry) fail
	require.NoError(t, os.RemoveAll(filepath.Dir(path)))

	err = s.Save(domain.Record{UserID: "1", TotalHours: 16, Entries: []domain.Entry{{Hours: 8}, {Hours: 8}}})
	assert.ErrorIs(t, err, apperrors.ErrStorageWrite)

	// Memory keeps matching the last acknowledged state
	rec := s.Get("1")
	assert.InDelta(t, 8, rec.TotalHours, 1e-9)
	assert.Len(t, rec.Entries, 1)

	err = s.Save(domain.Record{UserID: "2", TotalHours: 5, Entries: []domain.Entry{{Hours: 5}}})
	assert.ErrorIs(t, err, apperrors.ErrStorageWrite)
	assert.False(t, s.Get("2").HasData(), "a record from a failed save must not linger")

	err = s.Delete("1")
	assert.ErrorIs(t, err, apperrors.ErrStorageWrite)
	assert.True(t, s.Get("1").HasData(), "a failed delete must keep the record")

	// Once the directory is back, saving works again
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, s.Save(domain.Record{UserID: "1", TotalHours: 16, Entries: []domain.Entry{{Hours: 8}, {Hours: 8}}}))
	assert.InDelta(t, 16, s.Get("1").TotalHours, 1e-9)
}

func TestFileStorage_CorruptFileFailsLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sleeptober.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := NewFileStorage(path)
	assert.Error(t, err)
}

package repository

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/samber/oops"

	"github.com/strophox/sleeptober-bot/internal/metrics"
	"github.com/strophox/sleeptober-bot/internal/modules/sleep/domain"
	apperrors "github.com/strophox/sleeptober-bot/internal/shared/errors"
)

// FileStorage implements Repository over a single JSON snapshot file.
// The whole store is kept in memory and rewritten atomically on every
// mutation, so a crash can lose at most the in-flight command.
type FileStorage struct {
	path    string
	records map[string]domain.Record
	mu      sync.RWMutex
}

// NewFileStorage loads the data file if present; a missing file is an
// empty store, not an error.
func NewFileStorage(path string) (*FileStorage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, oops.With("data_file", path, "context", "failed to create data directory").Wrap(err)
	}

	s := &FileStorage{
		path:    path,
		records: make(map[string]domain.Record),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, oops.With("data_file", path, "context", "failed to read data file").Wrap(err)
	}

	if err := json.Unmarshal(data, &s.records); err != nil {
		return nil, oops.With("data_file", path, "context", "failed to unmarshal data file").Wrap(err)
	}

	return s, nil
}

func (s *FileStorage) Get(userID string) domain.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if rec, ok := s.records[userID]; ok {
		return rec
	}
	return domain.Record{UserID: userID}
}

func (s *FileStorage) Save(record domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.records[record.UserID]
	s.records[record.UserID] = record
	if err := s.persistLocked(); err != nil {
		// Roll back so memory keeps matching disk
		if existed {
			s.records[record.UserID] = prev
		} else {
			delete(s.records, record.UserID)
		}
		return err
	}
	return nil
}

func (s *FileStorage) Delete(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.records[userID]
	if !existed {
		return nil
	}
	delete(s.records, userID)
	if err := s.persistLocked(); err != nil {
		s.records[userID] = prev
		return err
	}
	return nil
}

func (s *FileStorage) All() []domain.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]domain.Record, 0, len(s.records))
	for _, rec := range s.records {
		records = append(records, rec)
	}
	return records
}

// persistLocked rewrites the snapshot, retrying a failed write once.
// Callers must hold the write lock.
func (s *FileStorage) persistLocked() error {
	err := s.writeSnapshot()
	if err != nil {
		metrics.StorePersistRetries.Inc()
		err = s.writeSnapshot()
	}
	if err != nil {
		return oops.With("data_file", s.path, "cause", err.Error()).Wrap(apperrors.ErrStorageWrite)
	}
	metrics.StorePersists.Inc()
	return nil
}

// writeSnapshot writes the whole store to a temporary file and renames it
// over the data file, so a crash mid-write cannot truncate the snapshot.
func (s *FileStorage) writeSnapshot() error {
	tempFile := s.path + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.records); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, s.path)
}

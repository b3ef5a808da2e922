package repository

import (
	"github.com/strophox/sleeptober-bot/internal/modules/sleep/domain"
)

// Repository defines the interface for sleep data persistence
type Repository interface {
	// Get returns the record for a user, or an empty record if unknown
	Get(userID string) domain.Record
	// Save stores a record and persists the whole store
	Save(record domain.Record) error
	// Delete removes a user's record and persists the whole store
	Delete(userID string) error
	// All returns every stored record
	All() []domain.Record
}

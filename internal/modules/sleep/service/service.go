package service

import (
	"math"
	"sort"
	"time"

	"github.com/samber/oops"

	"github.com/strophox/sleeptober-bot/internal/modules/sleep/domain"
	"github.com/strophox/sleeptober-bot/internal/modules/sleep/repository"
	apperrors "github.com/strophox/sleeptober-bot/internal/shared/errors"
)

// MaxHoursPerNight caps a single log entry; nobody sleeps longer than a day.
const MaxHoursPerNight = 24.0

// Service handles sleep logging business logic
type Service struct {
	repo repository.Repository
}

// New creates a new sleep service
func New(repo repository.Repository) *Service {
	return &Service{
		repo: repo,
	}
}

// AddSleep validates and logs hours for a user, persisting before returning.
// Returns the updated record.
func (s *Service) AddSleep(userID string, hours float64, note string) (domain.Record, error) {
	if err := ValidateHours(hours); err != nil {
		return domain.Record{}, err
	}

	rec := s.repo.Get(userID)
	rec.Entries = append(rec.Entries, domain.Entry{
		Timestamp: time.Now(),
		Hours:     hours,
		Note:      note,
	})
	rec.TotalHours += hours

	if err := s.repo.Save(rec); err != nil {
		return domain.Record{}, err
	}
	return rec, nil
}

// ValidateHours rejects NaN, infinities, zero, negatives and anything
// over a full day.
func ValidateHours(hours float64) error {
	if math.IsNaN(hours) || math.IsInf(hours, 0) {
		return oops.With("hours", hours).Wrap(apperrors.ErrInvalidAmount)
	}
	if hours <= 0 || hours > MaxHoursPerNight {
		return oops.With("hours", hours).Wrap(apperrors.ErrInvalidAmount)
	}
	return nil
}

// Profile returns a user's record with derived stats. Unknown users get an
// empty record, not an error.
func (s *Service) Profile(userID string) (domain.Record, domain.Stats) {
	rec := s.repo.Get(userID)
	return rec, domain.ComputeStats(rec)
}

// Reset deletes a user's record
func (s *Service) Reset(userID string) error {
	if !s.repo.Get(userID).HasData() {
		return oops.With("user_id", userID).Wrap(apperrors.ErrNotParticipating)
	}
	return s.repo.Delete(userID)
}

// Leaderboard returns participants ordered by total hours descending,
// ties broken by user ID ascending. limit <= 0 returns everyone.
func (s *Service) Leaderboard(limit int) []domain.BoardEntry {
	records := s.repo.All()

	entries := make([]domain.BoardEntry, 0, len(records))
	for _, rec := range records {
		if !rec.HasData() {
			continue
		}
		entries = append(entries, domain.BoardEntry{
			UserID:     rec.UserID,
			TotalHours: rec.TotalHours,
			Stats:      domain.ComputeStats(rec),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalHours != entries[j].TotalHours {
			return entries[i].TotalHours > entries[j].TotalHours
		}
		return entries[i].UserID < entries[j].UserID
	})

	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

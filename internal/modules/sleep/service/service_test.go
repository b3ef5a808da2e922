package service

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strophox/sleeptober-bot/internal/modules/sleep/repository"
	apperrors "github.com/strophox/sleeptober-bot/internal/shared/errors"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	repo, err := repository.NewFileStorage(filepath.Join(t.TempDir(), "sleeptober.json"))
	require.NoError(t, err)
	return New(repo)
}

func TestAddSleep_IncreasesTotalByExactAmount(t *testing.T) {
	svc := newTestService(t)

	rec, err := svc.AddSleep("A", 7, "")
	require.NoError(t, err)
	assert.InDelta(t, 7, rec.TotalHours, 1e-9)

	rec, err = svc.AddSleep("A", 3, "nap included")
	require.NoError(t, err)
	assert.InDelta(t, 10, rec.TotalHours, 1e-9)
	require.Len(t, rec.Entries, 2)
	assert.Equal(t, "nap included", rec.Entries[1].Note)
}

func TestAddSleep_RejectsInvalidAmounts(t *testing.T) {
	svc := newTestService(t)

	for _, hours := range []float64{0, -1, 24.5, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := svc.AddSleep("A", hours, "")
		assert.ErrorIs(t, err, apperrors.ErrInvalidAmount, "hours=%v", hours)
	}

	// Store unchanged after rejections
	rec, _ := svc.Profile("A")
	assert.False(t, rec.HasData())
}

func TestProfile_UnknownUser(t *testing.T) {
	svc := newTestService(t)

	rec, stats := svc.Profile("nobody")
	assert.Equal(t, "nobody", rec.UserID)
	assert.False(t, rec.HasData())
	assert.Zero(t, stats.EntriesLogged)
}

func TestReset(t *testing.T) {
	svc := newTestService(t)

	assert.ErrorIs(t, svc.Reset("A"), apperrors.ErrNotParticipating)

	_, err := svc.AddSleep("A", 8, "")
	require.NoError(t, err)
	require.NoError(t, svc.Reset("A"))

	rec, _ := svc.Profile("A")
	assert.False(t, rec.HasData())
}

func TestLeaderboard_OrderingAndTieBreak(t *testing.T) {
	svc := newTestService(t)

	mustLog := func(user string, hours float64) {
		t.Helper()
		_, err := svc.AddSleep(user, hours, "")
		require.NoError(t, err)
	}

	mustLog("B", 5)
	mustLog("A", 7)
	mustLog("D", 5)
	mustLog("C", 9)

	entries := svc.Leaderboard(0)
	require.Len(t, entries, 4)
	assert.Equal(t, "C", entries[0].UserID)
	assert.Equal(t, "A", entries[1].UserID)
	// Tie on 5 hours resolves by user ID ascending
	assert.Equal(t, "B", entries[2].UserID)
	assert.Equal(t, "D", entries[3].UserID)
	for i, e := range entries {
		assert.Equal(t, i+1, e.Rank)
	}
}

func TestLeaderboard_Limit(t *testing.T) {
	svc := newTestService(t)
	for _, user := range []string{"A", "B", "C"} {
		_, err := svc.AddSleep(user, 8, "")
		require.NoError(t, err)
	}

	assert.Len(t, svc.Leaderboard(2), 2)
	assert.Len(t, svc.Leaderboard(0), 3)
	assert.Len(t, svc.Leaderboard(10), 3)
}

func TestScenario_TwoUsersLogging(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.AddSleep("A", 7, "")
	require.NoError(t, err)
	rec, _ := svc.Profile("A")
	assert.InDelta(t, 7, rec.TotalHours, 1e-9)

	_, err = svc.AddSleep("B", 5, "")
	require.NoError(t, err)
	entries := svc.Leaderboard(0)
	require.Len(t, entries, 2)
	assert.Equal(t, "A", entries[0].UserID)
	assert.InDelta(t, 7, entries[0].TotalHours, 1e-9)
	assert.Equal(t, "B", entries[1].UserID)
	assert.InDelta(t, 5, entries[1].TotalHours, 1e-9)

	_, err = svc.AddSleep("A", 3, "")
	require.NoError(t, err)
	entries = svc.Leaderboard(0)
	assert.Equal(t, "A", entries[0].UserID)
	assert.InDelta(t, 10, entries[0].TotalHours, 1e-9)
	assert.InDelta(t, 5, entries[1].TotalHours, 1e-9)
}

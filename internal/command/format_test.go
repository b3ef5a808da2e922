package command

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/strophox/sleeptober-bot/internal/modules/sleep/domain"
)

func TestFmtHours(t *testing.T) {
	assert.Equal(t, "6:30", FmtHours(6.50069))
	assert.Equal(t, "8:00", FmtHours(8))
	assert.Equal(t, "0:30", FmtHours(0.5))
	assert.Equal(t, "10:03", FmtHours(10.05))
}

func TestFmtHoursF(t *testing.T) {
	assert.Equal(t, "6.50", FmtHoursF(6.50069))
	assert.Equal(t, "8.00", FmtHoursF(8))
}

func TestRenderLeaderboard_Empty(t *testing.T) {
	out := renderLeaderboard(nil, ">>=")
	assert.Contains(t, out, "nobody has slept yet")
	assert.Contains(t, out, ">>=slept")
}

func TestRenderLeaderboard_Rows(t *testing.T) {
	entries := []domain.BoardEntry{
		{Rank: 1, UserID: "A", TotalHours: 10, Stats: domain.Stats{EntriesLogged: 2, MedianHours: 5}},
		{Rank: 2, UserID: "B", TotalHours: 5, Stats: domain.Stats{EntriesLogged: 1, MedianHours: 5}},
	}
	out := renderLeaderboard(entries, ">>=")

	assert.Less(t, strings.Index(out, "<@A>"), strings.Index(out, "<@B>"))
	assert.Contains(t, out, "1. ` 10.00 h` <@A>")
	assert.Contains(t, out, "2. `  5.00 h` <@B>")
}

func TestRenderProfile_NoData(t *testing.T) {
	out := renderProfile(domain.Record{UserID: "A"}, domain.Stats{}, ">>=", true)
	assert.Contains(t, out, "you haven't slept yet")
	assert.Contains(t, out, ">>=slept")
}

func TestRenderProfile_NoDataOtherUser(t *testing.T) {
	out := renderProfile(domain.Record{UserID: "A"}, domain.Stats{}, ">>=", false)
	assert.Contains(t, out, "<@A> hasn't slept yet")
	assert.NotContains(t, out, "you haven't")
}

func TestHelpText_PromptListBanner(t *testing.T) {
	out := helpText(">>=")
	assert.Contains(t, out, "Official Prompt List")
	assert.Equal(t, 31, strings.Count(out, "sleep 8 hours"))
	assert.Contains(t, out, "31. sleep 8 hours")
	assert.Contains(t, out, "#Sleeptober")
}

func TestRenderProfile_WithEntries(t *testing.T) {
	rec := domain.Record{
		UserID:     "A",
		TotalHours: 15,
		Entries: []domain.Entry{
			{Timestamp: time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC), Hours: 7},
			{Timestamp: time.Date(2026, 10, 2, 9, 0, 0, 0, time.UTC), Hours: 8},
		},
	}
	out := renderProfile(rec, domain.ComputeStats(rec), ">>=", true)

	assert.Contains(t, out, "<@A>")
	assert.Contains(t, out, "2 nights logged")
	assert.Contains(t, out, "01.10")
	assert.Contains(t, out, "02.10")
	assert.Contains(t, out, "█")
}

func TestRenderGraph_CapsRecentEntries(t *testing.T) {
	entries := make([]domain.Entry, 0, 20)
	for i := 0; i < 20; i++ {
		entries = append(entries, domain.Entry{
			Timestamp: time.Date(2026, 10, 1+i, 9, 0, 0, 0, time.UTC),
			Hours:     8,
		})
	}
	out := renderGraph(entries)

	assert.NotContains(t, out, "01.10")
	assert.Contains(t, out, "20.10")
	assert.Equal(t, graphEntries, strings.Count(out, "│")/2)
}

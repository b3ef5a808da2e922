package domain

import "time"

// Entry is a single logged night of sleep
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Hours     float64   `json:"hours"`
	Note      string    `json:"note,omitempty"`
}

// Record holds one participant's cumulative sleep data.
// TotalHours is always the sum of the entry hours.
type Record struct {
	UserID     string  `json:"user_id"`
	TotalHours float64 `json:"total_hours"`
	Entries    []Entry `json:"entries,omitempty"`
}

// HasData reports whether the user has logged anything yet
func (r Record) HasData() bool {
	return len(r.Entries) > 0
}

// BoardEntry is one row of the leaderboard
type BoardEntry struct {
	Rank       int     `json:"rank"`
	UserID     string  `json:"user_id"`
	TotalHours float64 `json:"total_hours"`
	Stats      Stats   `json:"stats"`
}

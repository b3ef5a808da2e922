package service

import (
	"fmt"
	"time"

	"github.com/gorilla/feeds"
	"github.com/samber/lo"
	"github.com/samber/oops"

	"github.com/strophox/sleeptober-bot/internal/modules/sleep/domain"
	sleepService "github.com/strophox/sleeptober-bot/internal/modules/sleep/service"
)

// Service generates an RSS feed of the current leaderboard standings
type Service struct {
	sleep *sleepService.Service
}

// New creates a new feed service
func New(sleep *sleepService.Service) *Service {
	return &Service{
		sleep: sleep,
	}
}

// GenerateFeed builds the leaderboard feed, one item per participant
func (s *Service) GenerateFeed(baseURL string) (*feeds.Feed, error) {
	entries := s.sleep.Leaderboard(0)

	feed := &feeds.Feed{
		Title:       "Sleeptober Leaderboard",
		Link:        &feeds.Link{Href: fmt.Sprintf("%s/leaderboard/rss", baseURL)},
		Description: "Current Sleeptober standings, ranked by total hours slept.",
		Created:     time.Now(),
		Updated:     time.Now(),
	}

	feed.Items = lo.Map(entries, func(e domain.BoardEntry, _ int) *feeds.Item {
		return s.entryToFeedItem(e, baseURL)
	})
	return feed, nil
}

// GenerateRSS renders the feed as RSS XML
func (s *Service) GenerateRSS(baseURL string) (string, error) {
	feed, err := s.GenerateFeed(baseURL)
	if err != nil {
		return "", err
	}

	rss, err := feed.ToRss()
	if err != nil {
		return "", oops.With("context", "converting feed to RSS").Wrap(err)
	}
	return rss, nil
}

func (s *Service) entryToFeedItem(e domain.BoardEntry, baseURL string) *feeds.Item {
	description := fmt.Sprintf(
		"Rank %d: user %s with %.2f hours over %d nights (median %.2f h/night).",
		e.Rank, e.UserID, e.TotalHours, e.Stats.EntriesLogged, e.Stats.MedianHours,
	)

	return &feeds.Item{
		Title:       fmt.Sprintf("#%d: %.2f hours", e.Rank, e.TotalHours),
		Link:        &feeds.Link{Href: fmt.Sprintf("%s/leaderboard", baseURL)},
		Description: description,
		Created:     time.Now(),
		Id:          fmt.Sprintf("leaderboard-%s", e.UserID),
	}
}

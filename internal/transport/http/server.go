package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	sloghttp "github.com/samber/slog-http"

	feedService "github.com/strophox/sleeptober-bot/internal/modules/feed/service"
	sleepService "github.com/strophox/sleeptober-bot/internal/modules/sleep/service"
	"github.com/strophox/sleeptober-bot/internal/shared/config"
)

// Server exposes the leaderboard and operational endpoints over HTTP
type Server struct {
	cfg          *config.Config
	sleepService *sleepService.Service
	feedService  *feedService.Service
	logger       *slog.Logger
}

// New creates a new HTTP server
func New(cfg *config.Config, sleepService *sleepService.Service, feedService *feedService.Service) *Server {
	return &Server{
		cfg:          cfg,
		sleepService: sleepService,
		feedService:  feedService,
		logger:       slog.Default(),
	}
}

// SetLogger sets the logger
func (s *Server) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// Start starts the HTTP server
func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /leaderboard", s.handleLeaderboard)
	mux.HandleFunc("GET /leaderboard/rss", s.handleLeaderboardRSS)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%s", s.cfg.HTTPPort)
	s.logger.Info("HTTP server starting", "addr", addr)

	// Use slog-http middleware with recovery
	handler := sloghttp.Recovery(mux)
	handler = sloghttp.New(s.logger)(handler)

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return server.ListenAndServe()
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries := s.sleepService.Leaderboard(0)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(entries); err != nil {
		s.logger.Error("Error encoding leaderboard", "error", err)
	}
}

func (s *Server) handleLeaderboardRSS(w http.ResponseWriter, r *http.Request) {
	baseURL := fmt.Sprintf("%s://%s", getScheme(r), r.Host)

	rss, err := s.feedService.GenerateRSS(baseURL)
	if err != nil {
		s.logger.Error("Error generating leaderboard feed", "error", err)
		http.Error(w, "Failed to generate feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300") // Cache for 5 minutes
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(rss))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}

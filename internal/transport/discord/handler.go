package discord

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/strophox/sleeptober-bot/internal/command"
)

// Handler bridges Discord message events into the command router
type Handler struct {
	router *command.Router
}

// New creates a new Discord handler
func New(router *command.Router) *Handler {
	return &Handler{
		router: router,
	}
}

// Register attaches the handler to a session
func (h *Handler) Register(s *discordgo.Session) {
	s.AddHandler(h.onReady)
	s.AddHandler(h.onMessageCreate)
}

func (h *Handler) onReady(s *discordgo.Session, r *discordgo.Ready) {
	slog.Info("Logged in", "username", r.User.Username, "user_id", r.User.ID)
}

// onMessageCreate runs to completion per event; the session delivers one
// message at a time, so handlers never race on the store.
func (h *Handler) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	reply, ok := h.router.Handle(context.Background(), m.Author.ID, m.Content)
	if !ok {
		return
	}

	if _, err := s.ChannelMessageSendReply(m.ChannelID, reply, m.Reference()); err != nil {
		slog.Error("Failed to send reply", "error", err, "channel_id", m.ChannelID)
	}
}

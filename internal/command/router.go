package command

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/strophox/sleeptober-bot/internal/metrics"
	sleepService "github.com/strophox/sleeptober-bot/internal/modules/sleep/service"
	"github.com/strophox/sleeptober-bot/internal/shared/config"
	apperrors "github.com/strophox/sleeptober-bot/internal/shared/errors"
)

// Router parses prefixed chat messages and dispatches them to handlers.
// Handlers only read arguments and return reply text; sending the reply is
// the transport's job.
type Router struct {
	cfg      *config.Config
	sleep    *sleepService.Service
	shutdown func()
}

// New creates a new command router
func New(cfg *config.Config, sleep *sleepService.Service) *Router {
	return &Router{
		cfg:      cfg,
		sleep:    sleep,
		shutdown: func() {},
	}
}

// OnShutdown sets the callback invoked by the admin shutdown command
func (r *Router) OnShutdown(fn func()) {
	r.shutdown = fn
}

// Handle processes one message. The second return value is false when the
// message is not a command for this bot and no reply should be sent.
func (r *Router) Handle(ctx context.Context, userID, content string) (string, bool) {
	if !strings.HasPrefix(content, r.cfg.CommandPrefix) {
		return "", false
	}

	fields := strings.Fields(strings.TrimPrefix(content, r.cfg.CommandPrefix))
	if len(fields) == 0 {
		return "", false
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	var reply string
	var err error
	switch cmd {
	case "slept", "sleep", "s":
		reply, err = r.handleSlept(userID, args)
	case "profile", "p":
		reply, err = r.handleProfile(userID, args)
	case "leaderboard", "lb":
		reply, err = r.handleLeaderboard(args)
	case "admin":
		reply, err = r.handleAdmin(userID, args)
	case "help":
		reply = helpText(r.cfg.CommandPrefix)
	default:
		slog.Info("Unknown command", "command", cmd, "user_id", userID)
		err = apperrors.ErrUnknownCommand
	}

	if err != nil {
		return r.errorReply(err), true
	}

	metrics.CommandsHandled.WithLabelValues(canonicalCommand(cmd)).Inc()
	return reply, reply != ""
}

// canonicalCommand folds aliases into one metric label per command
func canonicalCommand(cmd string) string {
	switch cmd {
	case "sleep", "s":
		return "slept"
	case "p":
		return "profile"
	case "lb":
		return "leaderboard"
	default:
		return cmd
	}
}

func (r *Router) handleSlept(userID string, args []string) (string, error) {
	if len(args) == 0 {
		return "Basic usage:\n" +
			"- \"I slept a healthy 8.5h last night\" -> `" + r.cfg.CommandPrefix + "slept 8.5`\n" +
			"- \"7h 56min, rough evening\" -> `" + r.cfg.CommandPrefix + "slept 7:56 rough evening`", nil
	}

	hours, err := ParseHours(args[0])
	if err != nil {
		slog.Info("Rejected sleep amount", "user_id", userID, "input", args[0])
		return "", err
	}

	rec, err := r.sleep.AddSleep(userID, hours, splitNote(args[1:]))
	if err != nil {
		slog.Error("Failed to log sleep", "error", err, "user_id", userID)
		return "", err
	}

	slog.Info("Logged sleep", "user_id", userID, "hours", hours, "total", rec.TotalHours)
	return "Logged `" + FmtHours(hours) + "` h of sleep. Total: `" + FmtHours(rec.TotalHours) + "` h.", nil
}

func (r *Router) handleProfile(userID string, args []string) (string, error) {
	if len(args) > 0 && strings.EqualFold(args[0], "reset") {
		return r.handleProfileReset(userID, args[1:])
	}

	target := userID
	if len(args) > 0 {
		target = parseTarget(args[0])
		if target == "" {
			return "Usage: `" + r.cfg.CommandPrefix + "profile [@user]`", nil
		}
	}

	rec, stats := r.sleep.Profile(target)
	return renderProfile(rec, stats, r.cfg.CommandPrefix, target == userID), nil
}

func (r *Router) handleProfileReset(userID string, args []string) (string, error) {
	expected := confirmCode(userID)
	if len(args) == 0 {
		return "Are you sure you want to delete your data? It will be lost forever! (A long time!) - type `" +
			r.cfg.CommandPrefix + "profile reset " + expected + "`", nil
	}
	if args[0] != expected {
		return "(Wrong confirmation code, nothing was deleted)", nil
	}

	if err := r.sleep.Reset(userID); err != nil {
		slog.Error("Failed to reset profile", "error", err, "user_id", userID)
		return "", err
	}
	slog.Info("Profile reset", "user_id", userID)
	return "(Your data has been reset)", nil
}

func (r *Router) handleLeaderboard(args []string) (string, error) {
	limit := 0 // everyone
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return "Usage: `" + r.cfg.CommandPrefix + "leaderboard [n]`", nil
		}
		limit = n
	}
	return renderLeaderboard(r.sleep.Leaderboard(limit), r.cfg.CommandPrefix), nil
}

func (r *Router) handleAdmin(userID string, args []string) (string, error) {
	if !r.cfg.IsAdmin(userID) {
		slog.Warn("Forbidden admin command", "user_id", userID, "args", strings.Join(args, " "))
		return "", apperrors.ErrForbidden
	}
	if len(args) == 0 {
		return "Admin usage: `" + r.cfg.CommandPrefix + "admin reset <userID>` | `" + r.cfg.CommandPrefix + "admin shutdown`", nil
	}

	switch strings.ToLower(args[0]) {
	case "reset":
		if len(args) < 2 {
			return "Usage: `" + r.cfg.CommandPrefix + "admin reset <userID>`", nil
		}
		target := parseTarget(args[1])
		if target == "" {
			return "Usage: `" + r.cfg.CommandPrefix + "admin reset <userID>`", nil
		}
		if err := r.sleep.Reset(target); err != nil {
			slog.Error("Failed to reset user", "error", err, "user_id", target, "admin_id", userID)
			return "", err
		}
		slog.Info("Admin reset user", "user_id", target, "admin_id", userID)
		return "(Data for <@" + target + "> has been reset)", nil
	case "shutdown":
		slog.Info("Shutdown requested", "admin_id", userID)
		go r.shutdown()
		return "(Shutting down)", nil
	default:
		return "", apperrors.ErrUnknownCommand
	}
}

// errorReply maps error kinds to user-facing replies and counts them.
// Every recoverable error ends here; nothing past startup crashes the
// process.
func (r *Router) errorReply(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrInvalidAmount):
		metrics.CommandErrors.WithLabelValues("invalid_amount").Inc()
		return "(Hours must be above 0 and at most 24, given as a decimal like `8.5` or in `HH:MM` format like `7:56`)"
	case errors.Is(err, apperrors.ErrForbidden):
		metrics.CommandErrors.WithLabelValues("forbidden").Inc()
		return "(You are not allowed to do that)"
	case errors.Is(err, apperrors.ErrNotParticipating):
		metrics.CommandErrors.WithLabelValues("not_participating").Inc()
		return "(No sleep data found for that user)"
	case errors.Is(err, apperrors.ErrStorageWrite):
		metrics.CommandErrors.WithLabelValues("storage_write").Inc()
		return "(Something went wrong saving that, please try again)"
	case errors.Is(err, apperrors.ErrUnknownCommand):
		metrics.CommandErrors.WithLabelValues("unknown_command").Inc()
		return "Unknown command. Try `" + r.cfg.CommandPrefix + "help`"
	default:
		metrics.CommandErrors.WithLabelValues("internal").Inc()
		return "(Something went wrong, please try again)"
	}
}

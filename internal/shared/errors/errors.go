package errors

import "errors"

var (
	ErrMissingBotToken  = errors.New("discord_bot_token is required")
	ErrInvalidAmount    = errors.New("invalid sleep amount")
	ErrUnknownCommand   = errors.New("unknown command")
	ErrForbidden        = errors.New("forbidden")
	ErrNotParticipating = errors.New("no sleep data for user")
	ErrStorageWrite     = errors.New("failed to persist sleep data")
)

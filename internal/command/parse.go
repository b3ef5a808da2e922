package command

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/oops"

	"github.com/strophox/sleeptober-bot/internal/modules/sleep/service"
	apperrors "github.com/strophox/sleeptober-bot/internal/shared/errors"
)

var (
	reMention = regexp.MustCompile(`^<@!?(\d+)>$`)
	reClock   = regexp.MustCompile(`^(\d{1,2}):(\d{1,2})$`)
)

// ParseHours accepts hours as a decimal ("8.5") or in HH:MM format ("7:56").
func ParseHours(s string) (float64, error) {
	if m := reClock.FindStringSubmatch(s); m != nil {
		hh, _ := strconv.Atoi(m[1])
		mm, _ := strconv.Atoi(m[2])
		if !(hh >= 0 && hh < 24 && mm >= 0 && mm < 60 || hh == 24 && mm == 0) {
			return 0, oops.With("input", s).Wrap(apperrors.ErrInvalidAmount)
		}
		hours := float64(hh) + float64(mm)/60
		if err := service.ValidateHours(hours); err != nil {
			return 0, err
		}
		return hours, nil
	}

	hours, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, oops.With("input", s).Wrap(apperrors.ErrInvalidAmount)
	}
	if err := service.ValidateHours(hours); err != nil {
		return 0, err
	}
	return hours, nil
}

// parseTarget extracts a user ID from a mention ("<@123>", "<@!123>") or a
// bare numeric ID. Returns "" when the argument is neither.
func parseTarget(arg string) string {
	if m := reMention.FindStringSubmatch(arg); m != nil {
		return m[1]
	}
	if _, err := strconv.ParseUint(arg, 10, 64); err == nil {
		return arg
	}
	return ""
}

// confirmCode derives the four-letter self-reset confirmation code from a
// user ID, so the user has to type something specific to them.
func confirmCode(userID string) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyzabc"
	id, _ := strconv.ParseUint(userID, 10, 64)
	i := (id >> 22) % 26
	return alphabet[i : i+4]
}

// splitNote joins the trailing words of a slept command into the note
func splitNote(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

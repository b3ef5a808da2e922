package command

import (
	"fmt"
	"math"
	"strings"

	"github.com/strophox/sleeptober-bot/internal/modules/sleep/domain"
)

// graphEntries caps how many recent entries the profile bar graph shows
const graphEntries = 14

// FmtHoursF formats 6.50069 hours as "6.50"
func FmtHoursF(hours float64) string {
	return fmt.Sprintf("%.2f", hours)
}

// FmtHours formats 6.50069 hours as "6:30"
func FmtHours(hours float64) string {
	minutes := int(math.Round(hours * 60))
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}

const promptListBanner = "```" + `
Official Prompt List:

 1. sleep 8 hours   11. sleep 8 hours   21. sleep 8 hours
 2. sleep 8 hours   12. sleep 8 hours   22. sleep 8 hours
 3. sleep 8 hours   13. sleep 8 hours   23. sleep 8 hours
 4. sleep 8 hours   14. sleep 8 hours   24. sleep 8 hours
 5. sleep 8 hours   15. sleep 8 hours   25. sleep 8 hours
 6. sleep 8 hours   16. sleep 8 hours   26. sleep 8 hours
 7. sleep 8 hours   17. sleep 8 hours   27. sleep 8 hours
 8. sleep 8 hours   18. sleep 8 hours   28. sleep 8 hours
 9. sleep 8 hours   19. sleep 8 hours   29. sleep 8 hours
10. sleep 8 hours   20. sleep 8 hours   30. sleep 8 hours
                                        31. sleep 8 hours

            #Sleeptober
` + "```"

func helpText(prefix string) string {
	return fmt.Sprintf(`**Sleeptober** - log your sleep, one night at a time.

%[2]s
Commands:
`+"`%[1]sslept <hours> [note]`"+` - log last night's sleep (e.g. `+"`%[1]sslept 8.5`"+` or `+"`%[1]sslept 7:56 long day`"+`)
`+"`%[1]sprofile [@user]`"+` - show a sleep profile
`+"`%[1]sprofile reset`"+` - delete your own data
`+"`%[1]sleaderboard [n]`"+` - show the top sleepers
`+"`%[1]shelp`"+` - this message

> Sleeptober was created as a challenge to improve one's sleeping skills and develop positive sleeping habits.`, prefix, promptListBanner)
}

func renderProfile(rec domain.Record, stats domain.Stats, prefix string, self bool) string {
	if !rec.HasData() {
		if self {
			return fmt.Sprintf("...you haven't slept yet. Participate with `%sslept`", prefix)
		}
		return fmt.Sprintf("...<@%s> hasn't slept yet.", rec.UserID)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("**Sleeptober profile for <@%s>**\n", rec.UserID))
	b.WriteString(renderGraph(rec.Entries))
	b.WriteString(fmt.Sprintf("%d nights logged, `%s` h total:\n", stats.EntriesLogged, FmtHours(stats.TotalHours)))
	b.WriteString(fmt.Sprintf("* Cumulative short of 8h sleep: `-%s` h.\n", FmtHours(stats.DeficitHours)))
	b.WriteString(fmt.Sprintf("* Cumulative above 9h sleep: `+%s` h.\n", FmtHours(stats.SurplusHours)))
	b.WriteString("General statistics for sleep per night:\n")
	b.WriteString(fmt.Sprintf("* Average `%s` h, median `%s` h, deviation `%s` h.\n",
		FmtHours(stats.MeanHours), FmtHours(stats.MedianHours), FmtHours(stats.StdDevHours)))
	b.WriteString(fmt.Sprintf("* Score: `%s`", FmtHoursF(stats.Score)))
	return b.String()
}

// renderGraph draws a bar per recent entry, one cell per hour with partial
// block runes for the remainder, on a 24h axis.
func renderGraph(entries []domain.Entry) string {
	if len(entries) > graphEntries {
		entries = entries[len(entries)-graphEntries:]
	}

	var b strings.Builder
	b.WriteString("```\n")
	for _, e := range entries {
		quarters := int(math.Round(e.Hours * 4))
		if quarters > 4*24 {
			quarters = 4 * 24
		}
		full := quarters / 4
		rem := quarters % 4
		bar := strings.Repeat("█", full)
		cells := full
		if rem > 0 {
			bar += string([]rune("▎▌▊")[rem-1])
			cells++
		}
		bar += strings.Repeat(" ", 24-cells)
		label := e.Timestamp.Format("02.01")
		b.WriteString(fmt.Sprintf("%s %5s │%s│\n", label, FmtHours(e.Hours), bar))
	}
	b.WriteString("```\n")
	return b.String()
}

func renderLeaderboard(entries []domain.BoardEntry, prefix string) string {
	if len(entries) == 0 {
		return fmt.Sprintf("...seems like nobody has slept yet(??) (Be the first! `%sslept`)", prefix)
	}

	rows := make([]string, 0, len(entries)+1)
	rows = append(rows, "**Sleeptober leaderboard**")
	for _, e := range entries {
		rows = append(rows, fmt.Sprintf("%d. `%6s h` <@%s> (%d nights, median %s h)",
			e.Rank, FmtHoursF(e.TotalHours), e.UserID, e.Stats.EntriesLogged, FmtHours(e.Stats.MedianHours)))
	}
	return strings.Join(rows, "\n")
}

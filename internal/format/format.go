// Package format converts reset timestamps and utilization numbers into
// display strings and elapsed-fraction values. All functions are pure:
// the caller supplies the clock, and "local" time means the location of
// the supplied instant.
package format

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/claudeutils/usage-tray/internal/api"
	"github.com/claudeutils/usage-tray/internal/i18n"
)

// ElapsedPct returns the elapsed percentage of a quota period, clamped
// to [0,100]. ok is false when the period is not positive, the reset
// timestamp is empty, or it cannot be parsed.
func ElapsedPct(resetsAt string, period time.Duration, now time.Time) (float64, bool) {
	if resetsAt == "" || period <= 0 {
		return 0, false
	}
	reset, err := api.ParseResetTime(resetsAt)
	if err != nil {
		return 0, false
	}

	elapsed := period - reset.Sub(now)
	pct := float64(elapsed) / float64(period) * 100
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return pct, true
}

// TimeUntil returns a human-readable reset time, or "" when the reset
// is due (zero whole minutes remain) or the timestamp is unparseable.
// Callers treat "" as "omit this line".
//
//	Same day:  "Resets in 2h 20m (14:30)"
//	Tomorrow:  "Resets tomorrow, 12:00"
//	Later:     "Resets Sat., 12:00"
func TimeUntil(resetsAt string, now time.Time, tr *i18n.Translator) string {
	reset, err := api.ParseResetTime(resetsAt)
	if err != nil {
		return ""
	}

	totalMin := int(reset.Sub(now).Minutes())
	if totalMin <= 0 {
		return ""
	}

	// Round the displayed instant to the nearest whole minute.
	local := reset.In(now.Location())
	rounded := time.Date(local.Year(), local.Month(), local.Day(), local.Hour(), local.Minute(), 0, 0, local.Location())
	if local.Second() >= 30 {
		rounded = rounded.Add(time.Minute)
	}
	clock := rounded.Format("15:04")

	today := dateOf(now)
	resetDate := dateOf(rounded)
	switch {
	case resetDate.Equal(today):
		var duration string
		if totalMin >= 60 {
			duration = tr.TD("duration_hm", map[string]interface{}{
				"Hours":   totalMin / 60,
				"Minutes": totalMin % 60,
			})
		} else {
			duration = tr.TD("duration_m", map[string]interface{}{"Minutes": totalMin})
		}
		return tr.TD("resets_in", map[string]interface{}{"Duration": duration, "Clock": clock})
	case resetDate.Equal(today.AddDate(0, 0, 1)):
		return tr.TD("resets_tomorrow", map[string]interface{}{"Clock": clock})
	default:
		return tr.TD("resets_weekday", map[string]interface{}{
			"Day":   tr.Weekday(rounded.Weekday()),
			"Clock": clock,
		})
	}
}

// ErrorText maps a fetch error to its localized display message.
func ErrorText(err error, tr *i18n.Translator) string {
	switch {
	case errors.Is(err, api.ErrNoToken):
		return tr.T("no_token")
	case errors.Is(err, api.ErrAuthExpired):
		return tr.T("auth_expired")
	}
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) {
		return tr.TD("http_error", map[string]interface{}{"Code": statusErr.Code})
	}
	return tr.T("connection_error")
}

// Tooltip formats a snapshot as short tray tooltip text.
func Tooltip(snap api.Snapshot, now time.Time, tr *i18n.Translator) string {
	if snap.Failed() {
		if api.IsAuthError(snap.Err) {
			return tr.T("auth_expired_label") + "\n" + tr.T("auth_expired_short")
		}
		return tr.T("error_label") + "\n" + truncate(ErrorText(snap.Err, tr), 80)
	}

	lines := []string{tr.T("title")}
	for _, entry := range []struct {
		short  string
		window *api.Window
	}{
		{"5h", snap.Usage.FiveHour},
		{"7d", snap.Usage.SevenDay},
	} {
		if entry.window == nil || entry.window.Utilization == nil {
			continue
		}
		line := fmt.Sprintf("%s: %.0f%%", entry.short, entry.window.Pct())
		if reset := TimeUntil(entry.window.ResetsAt, now, tr); reset != "" {
			line += " (" + reset + ")"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// dateOf returns midnight of t's calendar date, for date comparisons.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

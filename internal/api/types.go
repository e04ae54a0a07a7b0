package api

import (
	"time"
)

// Window is one quota period as reported by the usage endpoint.
// Utilization is a pointer because the API omits it for windows that
// don't apply to the account's plan.
type Window struct {
	Utilization *float64 `json:"utilization"`
	ResetsAt    string   `json:"resets_at"`
}

// Pct returns the clamped utilization percentage. A nil window or a
// missing utilization counts as 0.
func (w *Window) Pct() float64 {
	if w == nil || w.Utilization == nil {
		return 0
	}
	return clampPct(*w.Utilization)
}

// Usage is the response of the usage endpoint. Every window is optional.
type Usage struct {
	FiveHour       *Window `json:"five_hour"`
	SevenDay       *Window `json:"seven_day"`
	SevenDaySonnet *Window `json:"seven_day_sonnet"`
	SevenDayOpus   *Window `json:"seven_day_opus"`
}

// Profile is the subset of the profile endpoint this application shows.
type Profile struct {
	Account struct {
		Email string `json:"email"`
	} `json:"account"`
	Organization struct {
		OrganizationType string `json:"organization_type"`
	} `json:"organization"`
}

// Snapshot is the result of one poll cycle: either usage data or the
// error that prevented fetching it. Snapshots are immutable values,
// replaced wholesale on each poll; concurrent writers (poll loop and
// manual refresh) may race, which is fine because the last write is
// always a complete, self-consistent snapshot.
type Snapshot struct {
	Usage *Usage
	Err   error
}

// Failed reports whether this snapshot carries an error instead of data.
func (s Snapshot) Failed() bool {
	return s.Err != nil
}

// Pct5h returns the clamped session utilization (missing treated as 0).
func (s Snapshot) Pct5h() float64 {
	if s.Usage == nil {
		return 0
	}
	return s.Usage.FiveHour.Pct()
}

// Pct7d returns the clamped weekly utilization (missing treated as 0).
func (s Snapshot) Pct7d() float64 {
	if s.Usage == nil {
		return 0
	}
	return s.Usage.SevenDay.Pct()
}

// NextReset returns the smallest positive duration until any known
// quota window resets. ok is false when no window carries a parseable
// future reset time.
func (s Snapshot) NextReset(now time.Time) (time.Duration, bool) {
	if s.Usage == nil {
		return 0, false
	}

	var earliest time.Duration
	found := false
	for _, w := range []*Window{s.Usage.FiveHour, s.Usage.SevenDay, s.Usage.SevenDaySonnet, s.Usage.SevenDayOpus} {
		if w == nil || w.ResetsAt == "" {
			continue
		}
		reset, err := ParseResetTime(w.ResetsAt)
		if err != nil {
			continue
		}
		d := reset.Sub(now)
		if d <= 0 {
			continue
		}
		if !found || d < earliest {
			earliest = d
			found = true
		}
	}
	return earliest, found
}

// ParseResetTime parses a resets_at timestamp. The endpoint returns
// RFC 3339, occasionally with fractional seconds.
func ParseResetTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Parse(time.RFC3339Nano, s)
	}
	return t, nil
}

func clampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

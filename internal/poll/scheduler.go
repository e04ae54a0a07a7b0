// Package poll implements the adaptive polling state machine.
//
// The scheduler speeds up while session usage is actively increasing
// (fast-credits), degrades to a short retry interval after failed
// requests, and aligns the next poll to an imminent quota reset so the
// icon reflects the post-reset state within seconds.
package poll

import (
	"time"

	"github.com/claudeutils/usage-tray/internal/api"
	"github.com/claudeutils/usage-tray/internal/constants"
)

// Notice is a notification decision emitted by Advance. Sending the
// actual desktop notification is the caller's side-effect.
type Notice int

const (
	// NoticeSessionReset - the 5h quota reset after being nearly exhausted.
	NoticeSessionReset Notice = iota
	// NoticeWeeklyReset - the 7d quota reset after being nearly exhausted.
	NoticeWeeklyReset
)

// Intervals holds the base polling cadence. Values come from constants
// unless overridden by the settings file.
type Intervals struct {
	Normal    time.Duration
	Fast      time.Duration
	Error     time.Duration
	FastExtra int
}

// DefaultIntervals returns the built-in polling cadence.
func DefaultIntervals() Intervals {
	return Intervals{
		Normal:    constants.PollInterval,
		Fast:      constants.PollFast,
		Error:     constants.PollError,
		FastExtra: constants.PollFastExtra,
	}
}

// Decision is the outcome of one scheduler tick.
type Decision struct {
	// Interval until the next poll.
	Interval time.Duration
	// Notices to surface to the user (may be empty).
	Notices []Notice
}

// State tracks usage trend between polls. It is owned by the poll loop:
// exactly one goroutine calls Advance, so no locking is needed.
type State struct {
	intervals Intervals

	prev5h        *float64
	prev7d        *float64
	fastRemaining int
}

// NewState creates scheduler state with the given cadence.
func NewState(intervals Intervals) *State {
	return &State{intervals: intervals}
}

// FastRemaining returns the current fast-poll credit count.
func (s *State) FastRemaining() int {
	return s.fastRemaining
}

// Advance consumes one completed fetch cycle and decides the interval
// until the next poll.
//
// Error snapshots select the error interval and leave the trend state
// untouched - a failed fetch says nothing about usage direction.
func (s *State) Advance(snap api.Snapshot, now time.Time) Decision {
	if snap.Failed() {
		return Decision{Interval: s.intervals.Error}
	}

	pct5h := snap.Pct5h()
	pct7d := snap.Pct7d()

	// Notify when a quota resets after being nearly exhausted, but only
	// if the other quota isn't still blocking usage.
	var notices []Notice
	if s.prev5h != nil && *s.prev5h > constants.NotifyHigh5h && pct5h < *s.prev5h && pct7d < constants.NotifyBlocked {
		notices = append(notices, NoticeSessionReset)
	}
	if s.prev7d != nil && *s.prev7d > constants.NotifyHigh7d && pct7d < *s.prev7d && pct5h < constants.NotifyBlocked {
		notices = append(notices, NoticeWeeklyReset)
	}

	// Trend: growth refills the fast-poll credits, otherwise one credit
	// is consumed per tick.
	if s.prev5h != nil && pct5h > *s.prev5h {
		s.fastRemaining = s.intervals.FastExtra + 1
	} else if s.fastRemaining > 0 {
		s.fastRemaining--
	}
	s.prev5h = &pct5h
	s.prev7d = &pct7d

	interval := s.intervals.Normal
	if s.fastRemaining > 0 {
		interval = s.intervals.Fast
	}

	// Reset alignment: when a quota reset lands within 1.5x the chosen
	// interval, poll right after the reset instead and keep a short
	// fast burst to catch the post-reset values.
	if next, ok := snap.NextReset(now); ok {
		if next+constants.ResetAlignBuffer <= time.Duration(float64(interval)*constants.ResetAlignFactor) {
			aligned := next.Truncate(time.Second) + constants.ResetAlignBuffer
			if aligned < s.intervals.Fast {
				aligned = s.intervals.Fast
			}
			interval = aligned
			if s.fastRemaining < 2 {
				s.fastRemaining = 2
			}
		}
	}

	return Decision{Interval: interval, Notices: notices}
}

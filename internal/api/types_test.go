package api

import (
	"testing"
	"time"
)

func TestWindowPct(t *testing.T) {
	pct := func(v float64) *float64 { return &v }

	tests := []struct {
		name   string
		window *Window
		want   float64
	}{
		{"nil window", nil, 0},
		{"missing utilization", &Window{}, 0},
		{"in range", &Window{Utilization: pct(42.5)}, 42.5},
		{"clamped high", &Window{Utilization: pct(130)}, 100},
		{"clamped low", &Window{Utilization: pct(-5)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.window.Pct(); got != tt.want {
				t.Errorf("Pct() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSnapshotNextReset(t *testing.T) {
	now := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) string { return now.Add(d).Format(time.RFC3339) }

	snap := Snapshot{Usage: &Usage{
		FiveHour:       &Window{ResetsAt: at(3 * time.Hour)},
		SevenDay:       &Window{ResetsAt: at(30 * time.Minute)},
		SevenDaySonnet: &Window{ResetsAt: at(-time.Hour)}, // already past
		SevenDayOpus:   &Window{ResetsAt: "garbage"},
	}}

	next, ok := snap.NextReset(now)
	if !ok {
		t.Fatal("NextReset reported no upcoming reset")
	}
	if next != 30*time.Minute {
		t.Errorf("next = %v, want 30m", next)
	}
}

func TestSnapshotNextResetNoneKnown(t *testing.T) {
	now := time.Now()

	if _, ok := (Snapshot{}).NextReset(now); ok {
		t.Error("empty snapshot should have no reset")
	}

	snap := Snapshot{Usage: &Usage{
		FiveHour: &Window{ResetsAt: now.Add(-time.Hour).Format(time.RFC3339)},
	}}
	if _, ok := snap.NextReset(now); ok {
		t.Error("past-only resets should report none")
	}
}

func TestParseResetTime(t *testing.T) {
	if _, err := ParseResetTime("2026-01-02T15:00:00Z"); err != nil {
		t.Errorf("RFC 3339: %v", err)
	}
	if _, err := ParseResetTime("2026-01-02T15:00:00.123456Z"); err != nil {
		t.Errorf("fractional seconds: %v", err)
	}
	if _, err := ParseResetTime("yesterday"); err == nil {
		t.Error("expected error for junk input")
	}
}

package i18n

import (
	"testing"
	"time"
)

func TestTranslatorEnglish(t *testing.T) {
	tr := New("en")

	if got := tr.T("quit"); got != "Quit" {
		t.Errorf("T(quit) = %q", got)
	}
	if got := tr.T("session"); got != "Session (5h)" {
		t.Errorf("T(session) = %q", got)
	}
}

func TestTranslatorGermanOverride(t *testing.T) {
	tr := New("de")

	if got := tr.T("quit"); got != "Beenden" {
		t.Errorf("T(quit) = %q", got)
	}
	if got := tr.T("menu_details"); got != "Nutzungsdetails" {
		t.Errorf("T(menu_details) = %q", got)
	}
}

func TestTranslatorRegionalTagFallsBackToBase(t *testing.T) {
	tr := New("de-AT")

	if got := tr.T("quit"); got != "Beenden" {
		t.Errorf("T(quit) = %q, want the base German translation", got)
	}
}

func TestTranslatorUnknownIDFallsBackToID(t *testing.T) {
	tr := New("en")

	if got := tr.T("definitely_not_a_message"); got != "definitely_not_a_message" {
		t.Errorf("T = %q, want the id itself", got)
	}
}

func TestTemplateData(t *testing.T) {
	tr := New("en")

	got := tr.TD("resets_in", map[string]interface{}{
		"Duration": "2h 20m",
		"Clock":    "14:30",
	})
	if got != "Resets in 2h 20m (14:30)" {
		t.Errorf("TD(resets_in) = %q", got)
	}

	got = tr.TD("http_error", map[string]interface{}{"Code": 503})
	if got != "HTTP error 503" {
		t.Errorf("TD(http_error) = %q", got)
	}
}

func TestWeekday(t *testing.T) {
	en := New("en")
	de := New("de")

	tests := []struct {
		day    time.Weekday
		wantEN string
		wantDE string
	}{
		{time.Monday, "Mon.", "Mo."},
		{time.Saturday, "Sat.", "Sa."},
		{time.Sunday, "Sun.", "So."},
	}

	for _, tt := range tests {
		if got := en.Weekday(tt.day); got != tt.wantEN {
			t.Errorf("en Weekday(%v) = %q, want %q", tt.day, got, tt.wantEN)
		}
		if got := de.Weekday(tt.day); got != tt.wantDE {
			t.Errorf("de Weekday(%v) = %q, want %q", tt.day, got, tt.wantDE)
		}
	}
}

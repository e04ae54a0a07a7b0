package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/ini.v1"

	"github.com/claudeutils/usage-tray/internal/constants"
)

// Settings represents the optional tray settings file.
//
// INI format:
//
//	[poll]
//	interval_seconds = 120
//	fast_interval_seconds = 60
//	error_interval_seconds = 30
//
//	[notifications]
//	enabled = true
//
//	[ui]
//	language =
//	debug = false
//
// All values are optional; absent keys keep their defaults. The poll
// intervals exist for people behind aggressive proxies who want to slow
// the monitor down - the adaptive scheduler works on top of whatever
// base values are configured here.
type Settings struct {
	Poll          PollSettings
	Notifications NotificationSettings
	UI            UISettings
}

// PollSettings overrides the polling cadence.
type PollSettings struct {
	// IntervalSeconds is the normal poll interval.
	// Minimum: 30, Maximum: 3600, Default: 120
	IntervalSeconds int `ini:"interval_seconds"`

	// FastIntervalSeconds is the interval while usage is increasing.
	// Minimum: 15, Maximum: IntervalSeconds, Default: 60
	FastIntervalSeconds int `ini:"fast_interval_seconds"`

	// ErrorIntervalSeconds is the retry interval after a failed request.
	// Minimum: 10, Maximum: 600, Default: 30
	ErrorIntervalSeconds int `ini:"error_interval_seconds"`
}

// NotificationSettings controls desktop notifications.
type NotificationSettings struct {
	// Enabled determines whether quota reset notifications are sent.
	// Default: true
	Enabled bool `ini:"enabled"`
}

// UISettings contains presentation settings.
type UISettings struct {
	// Language overrides the system locale (e.g. "de", "en-US").
	// Empty means detect from the system.
	Language string `ini:"language"`

	// Debug enables debug level logging.
	Debug bool `ini:"debug"`
}

// NewSettings returns settings with defaults applied.
func NewSettings() *Settings {
	return &Settings{
		Poll: PollSettings{
			IntervalSeconds:      int(constants.PollInterval / time.Second),
			FastIntervalSeconds:  int(constants.PollFast / time.Second),
			ErrorIntervalSeconds: int(constants.PollError / time.Second),
		},
		Notifications: NotificationSettings{Enabled: true},
		UI:            UISettings{},
	}
}

// LoadSettings reads the settings file at path. A missing file returns
// defaults without error; a malformed file returns an error.
func LoadSettings(path string) (*Settings, error) {
	s := NewSettings()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return s, nil
	}

	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings file: %w", err)
	}

	if err := file.Section("poll").MapTo(&s.Poll); err != nil {
		return nil, fmt.Errorf("invalid [poll] section: %w", err)
	}
	if err := file.Section("notifications").MapTo(&s.Notifications); err != nil {
		return nil, fmt.Errorf("invalid [notifications] section: %w", err)
	}
	if err := file.Section("ui").MapTo(&s.UI); err != nil {
		return nil, fmt.Errorf("invalid [ui] section: %w", err)
	}

	s.clamp()
	return s, nil
}

// Save writes the settings file, creating the parent directory if needed.
func (s *Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	file := ini.Empty()
	if err := file.Section("poll").ReflectFrom(&s.Poll); err != nil {
		return err
	}
	if err := file.Section("notifications").ReflectFrom(&s.Notifications); err != nil {
		return err
	}
	if err := file.Section("ui").ReflectFrom(&s.UI); err != nil {
		return err
	}
	return file.SaveTo(path)
}

// PollInterval returns the configured normal poll interval.
func (s *Settings) PollInterval() time.Duration {
	return time.Duration(s.Poll.IntervalSeconds) * time.Second
}

// PollFast returns the configured fast poll interval.
func (s *Settings) PollFast() time.Duration {
	return time.Duration(s.Poll.FastIntervalSeconds) * time.Second
}

// PollError returns the configured error retry interval.
func (s *Settings) PollError() time.Duration {
	return time.Duration(s.Poll.ErrorIntervalSeconds) * time.Second
}

// clamp enforces the documented bounds on loaded values.
func (s *Settings) clamp() {
	if s.Poll.IntervalSeconds < 30 {
		s.Poll.IntervalSeconds = 30
	}
	if s.Poll.IntervalSeconds > 3600 {
		s.Poll.IntervalSeconds = 3600
	}
	if s.Poll.FastIntervalSeconds < 15 {
		s.Poll.FastIntervalSeconds = 15
	}
	if s.Poll.FastIntervalSeconds > s.Poll.IntervalSeconds {
		s.Poll.FastIntervalSeconds = s.Poll.IntervalSeconds
	}
	if s.Poll.ErrorIntervalSeconds < 10 {
		s.Poll.ErrorIntervalSeconds = 10
	}
	if s.Poll.ErrorIntervalSeconds > 600 {
		s.Poll.ErrorIntervalSeconds = 600
	}
}

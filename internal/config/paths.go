// Package config provides configuration management for Usage Monitor for Claude.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// CredentialsPath returns the Claude Code credential store location
// (~/.claude/.credentials.json). The file is written by Claude Code on
// login; this application only reads it.
func CredentialsPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".claude", ".credentials.json")
}

// SettingsPath returns the settings file location.
//
// Locations:
//   - Windows: %APPDATA%\UsageMonitorForClaude\settings.conf
//   - Unix: ~/.config/usage-monitor-for-claude/settings.conf
func SettingsPath() string {
	return filepath.Join(configDir(), "settings.conf")
}

// LogDirectory returns the log directory.
//
// Locations:
//   - Windows: %LOCALAPPDATA%\UsageMonitorForClaude\logs
//   - Unix: ~/.config/usage-monitor-for-claude/logs
func LogDirectory() string {
	if runtime.GOOS == "windows" {
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return filepath.Join(os.TempDir(), "usage-monitor-logs")
			}
			localAppData = filepath.Join(homeDir, "AppData", "Local")
		}
		return filepath.Join(localAppData, "UsageMonitorForClaude", "logs")
	}
	return filepath.Join(configDir(), "logs")
}

// EnsureLogDirectory creates the log directory if it doesn't exist.
// Uses 0700 permissions to restrict log access to the owner.
func EnsureLogDirectory() error {
	return os.MkdirAll(LogDirectory(), 0700)
}

func configDir() string {
	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return filepath.Join(os.TempDir(), "UsageMonitorForClaude")
			}
			appData = filepath.Join(homeDir, "AppData", "Roaming")
		}
		return filepath.Join(appData, "UsageMonitorForClaude")
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "usage-monitor-for-claude")
		}
		return filepath.Join(homeDir, ".config", "usage-monitor-for-claude")
	}
	return filepath.Join(configDir, "usage-monitor-for-claude")
}

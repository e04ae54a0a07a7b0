//go:build windows

package autostart

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows/registry"
)

const (
	runKey    = `Software\Microsoft\Windows\CurrentVersion\Run`
	valueName = "UsageMonitorForClaude"
)

func supported() bool {
	return true
}

func isEnabled() bool {
	key, err := registry.OpenKey(registry.CURRENT_USER, runKey, registry.QUERY_VALUE)
	if err != nil {
		return false
	}
	defer key.Close()

	_, _, err = key.GetStringValue(valueName)
	return err == nil
}

func setEnabled(enable bool) error {
	key, err := registry.OpenKey(registry.CURRENT_USER, runKey, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("failed to open Run key: %w", err)
	}
	defer key.Close()

	if !enable {
		if err := key.DeleteValue(valueName); err != nil && err != registry.ErrNotExist {
			return fmt.Errorf("failed to remove autostart entry: %w", err)
		}
		return nil
	}

	exePath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to resolve executable path: %w", err)
	}
	return key.SetStringValue(valueName, `"`+exePath+`"`)
}

func syncPath() error {
	key, err := registry.OpenKey(registry.CURRENT_USER, runKey, registry.QUERY_VALUE)
	if err != nil {
		return nil
	}
	stored, _, err := key.GetStringValue(valueName)
	key.Close()
	if err != nil {
		// Not registered; nothing to sync.
		return nil
	}

	exePath, err := os.Executable()
	if err != nil {
		return err
	}
	if stored == `"`+exePath+`"` {
		return nil
	}
	return setEnabled(true)
}

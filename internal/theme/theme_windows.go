//go:build windows

package theme

import (
	"context"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

const (
	personalizeKey  = `Software\Microsoft\Windows\CurrentVersion\Themes\Personalize`
	lightThemeValue = "SystemUsesLightTheme"
)

type windowsSource struct{}

func newPlatformSource() Source {
	return &windowsSource{}
}

// Light reads SystemUsesLightTheme from the Personalize registry key.
// Returns false (dark) if the value cannot be read.
func (s *windowsSource) Light() bool {
	key, err := registry.OpenKey(registry.CURRENT_USER, personalizeKey, registry.QUERY_VALUE)
	if err != nil {
		return false
	}
	defer key.Close()

	value, _, err := key.GetIntegerValue(lightThemeValue)
	if err != nil {
		return false
	}
	return value != 0
}

// Watch sleeps on RegNotifyChangeKeyValue until the Personalize key is
// modified, avoiding any polling.
func (s *windowsSource) Watch(ctx context.Context, onChange func()) error {
	key, err := registry.OpenKey(registry.CURRENT_USER, personalizeKey, registry.READ)
	if err != nil {
		return err
	}
	defer key.Close()

	for {
		err := windows.RegNotifyChangeKeyValue(windows.Handle(key), false, windows.REG_NOTIFY_CHANGE_LAST_SET, 0, false)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			return err
		}
		onChange()
	}
}

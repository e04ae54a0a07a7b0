// Package autostart manages launching the tray at login.
//
// Only Windows is implemented (HKCU Run key); on other platforms
// Supported reports false and the tray hides the menu entry.
package autostart

// Supported reports whether autostart management is available on this
// platform.
func Supported() bool {
	return supported()
}

// IsEnabled reports whether the application is registered to start at
// login.
func IsEnabled() bool {
	return isEnabled()
}

// SetEnabled registers or removes the autostart entry for the current
// executable.
func SetEnabled(enable bool) error {
	return setEnabled(enable)
}

// SyncPath updates the registered path if the executable has been
// moved since the entry was created. A missing entry is left alone.
func SyncPath() error {
	return syncPath()
}

// Package theme reports whether the taskbar uses a light theme and
// watches for changes. The icon palette is inverted on light taskbars.
package theme

import (
	"context"
)

// Source provides the current taskbar theme and change notifications.
// The Windows implementation reads the Personalize registry key; other
// platforms report a dark taskbar and never signal a change.
type Source interface {
	// Light reports whether the taskbar uses the light theme.
	Light() bool

	// Watch blocks and invokes onChange whenever the theme changes,
	// until ctx is cancelled. Designed to run in its own goroutine.
	Watch(ctx context.Context, onChange func()) error
}

// NewSource returns the platform theme source.
func NewSource() Source {
	return newPlatformSource()
}

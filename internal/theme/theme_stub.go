//go:build !windows

package theme

import (
	"context"
)

// stubSource is used on platforms without a taskbar theme registry.
// It reports a dark taskbar, matching the icon's default palette.
type stubSource struct{}

func newPlatformSource() Source {
	return &stubSource{}
}

func (s *stubSource) Light() bool {
	return false
}

func (s *stubSource) Watch(ctx context.Context, onChange func()) error {
	<-ctx.Done()
	return ctx.Err()
}

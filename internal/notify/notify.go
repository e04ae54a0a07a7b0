// Package notify provides cross-platform desktop notifications.
// It uses github.com/gen2brain/beeep for cross-platform notification support.
package notify

import (
	"sync"

	"github.com/gen2brain/beeep"
	"github.com/rs/zerolog"

	"github.com/claudeutils/usage-tray/internal/i18n"
)

// Notifier sends the tray's desktop notifications.
type Notifier struct {
	logger  zerolog.Logger
	tr      *i18n.Translator
	enabled bool
	mu      sync.RWMutex
}

// NewNotifier creates a notifier. enabled comes from the settings file.
func NewNotifier(enabled bool, tr *i18n.Translator, logger zerolog.Logger) *Notifier {
	return &Notifier{
		logger:  logger,
		tr:      tr,
		enabled: enabled,
	}
}

// SetEnabled enables or disables notifications.
func (n *Notifier) SetEnabled(enabled bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.enabled = enabled
}

// IsEnabled returns whether notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.enabled
}

// QuotaReset announces that a nearly exhausted quota has reset.
func (n *Notifier) QuotaReset() {
	if !n.IsEnabled() {
		return
	}
	if err := n.send(n.tr.T("notify_reset_title"), n.tr.T("notify_reset")); err != nil {
		n.logger.Warn().Err(err).Msg("failed to send quota reset notification")
	}
}

// TokenMissing warns that no Claude Code login was found at startup.
func (n *Notifier) TokenMissing() {
	if !n.IsEnabled() {
		return
	}
	msg := n.tr.T("warn_no_token") + "\n" + n.tr.T("warn_login")
	if err := n.send(n.tr.T("title"), msg); err != nil {
		n.logger.Warn().Err(err).Msg("failed to send missing token notification")
	}
}

// send is the internal method that actually sends the notification.
// beeep.Notify is cross-platform:
//   - Windows: toast notifications
//   - macOS: NSUserNotificationCenter
//   - Linux: D-Bus notifications
func (n *Notifier) send(title, message string) error {
	return beeep.Notify(title, message, "")
}

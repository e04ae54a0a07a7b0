// Package constants defines shared constants for Usage Monitor for Claude.
package constants

import (
	"time"
)

// Polling intervals
const (
	// PollInterval - normal interval between usage polls (2 minutes)
	PollInterval = 120 * time.Second

	// PollFast - interval while session usage is actively increasing (1 minute)
	PollFast = 60 * time.Second

	// PollFastExtra - extra fast polls kept after usage stops increasing
	PollFastExtra = 2

	// PollError - retry interval after a failed request (30 seconds)
	PollError = 30 * time.Second

	// ResetAlignBuffer - safety buffer added to a reset-aligned poll (5 seconds)
	// Guards against minor timing differences (clocks, caches, processing delays).
	ResetAlignBuffer = 5 * time.Second

	// ResetAlignFactor - a reset within interval*factor pulls the next poll
	// forward to land just after the reset
	ResetAlignFactor = 1.5
)

// Anthropic OAuth API
const (
	// UsageURL - usage quota endpoint
	UsageURL = "https://api.anthropic.com/api/oauth/usage"

	// ProfileURL - account profile endpoint
	ProfileURL = "https://api.anthropic.com/api/oauth/profile"

	// RequestTimeout - fixed timeout for all API calls
	RequestTimeout = 10 * time.Second

	// UserAgent sent with every API request
	UserAgent = "usage-monitor-for-claude/1.0"

	// AnthropicBeta - beta header required by the OAuth endpoints
	AnthropicBeta = "oauth-2025-04-20"
)

// Quota periods
const (
	// Period5h - session quota window
	Period5h = 5 * time.Hour

	// Period7d - weekly quota window (shared and per-model)
	Period7d = 7 * 24 * time.Hour
)

// Tray icon geometry (64x64 canvas, two bars flush to the bottom edge)
const (
	// IconSize - square icon canvas edge in pixels
	IconSize = 64

	// IconBarHeight - height of each usage bar in pixels
	IconBarHeight = 9

	// IconBarGap - gap between the two usage bars in pixels
	IconBarGap = 3
)

// Reset notification thresholds
const (
	// NotifyHigh5h - previous session usage above this arms the 5h reset notification
	NotifyHigh5h = 95.0

	// NotifyHigh7d - previous weekly usage above this arms the 7d reset notification
	NotifyHigh7d = 98.0

	// NotifyBlocked - a reset notification is suppressed while the other
	// quota is at or above this (the reset doesn't unblock usage)
	NotifyBlocked = 99.0
)

// Popup window
const (
	// PopupRefreshInterval - refresh cadence of the detail popup while open
	PopupRefreshInterval = 60 * time.Second

	// PopupWidth - fixed popup width in device-independent pixels
	PopupWidth = 340
)

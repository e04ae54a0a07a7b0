// Package tray runs the system tray application: icon, tooltip, menu,
// and the background poll loop.
package tray

import (
	"context"
	"image"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"fyne.io/systray"
	"github.com/rs/zerolog"

	"github.com/claudeutils/usage-tray/internal/api"
	"github.com/claudeutils/usage-tray/internal/autostart"
	"github.com/claudeutils/usage-tray/internal/config"
	"github.com/claudeutils/usage-tray/internal/format"
	"github.com/claudeutils/usage-tray/internal/i18n"
	"github.com/claudeutils/usage-tray/internal/icon"
	"github.com/claudeutils/usage-tray/internal/notify"
	"github.com/claudeutils/usage-tray/internal/poll"
	"github.com/claudeutils/usage-tray/internal/theme"
)

// Options carries the collaborators the tray application needs.
type Options struct {
	Client      *api.Client
	Credentials *config.CredentialSource
	Settings    *config.Settings
	Translator  *i18n.Translator
	Notifier    *notify.Notifier
	ThemeSource theme.Source
	Logger      zerolog.Logger
}

// App manages the system tray application state.
//
// The poll loop is the sole owner of the scheduler state. The snapshot
// is shared between the poll loop, manual refreshes, and the theme
// callback; last-writer-wins is acceptable because snapshots are
// idempotent wholesale values.
type App struct {
	client      *api.Client
	creds       *config.CredentialSource
	settings    *config.Settings
	tr          *i18n.Translator
	notifier    *notify.Notifier
	themeSource theme.Source
	state       *poll.State
	logger      zerolog.Logger

	mu       sync.RWMutex
	snapshot api.Snapshot
	light    bool

	popupRunning atomic.Bool

	// Menu items (for dynamic updates)
	mDetails   *systray.MenuItem
	mRefresh   *systray.MenuItem
	mAutostart *systray.MenuItem
	mQuit      *systray.MenuItem

	done   chan struct{}
	cancel context.CancelFunc
}

// Run starts the tray application and blocks until it quits.
// Must be called from the main goroutine.
func Run(opts Options) {
	intervals := poll.Intervals{
		Normal:    opts.Settings.PollInterval(),
		Fast:      opts.Settings.PollFast(),
		Error:     opts.Settings.PollError(),
		FastExtra: poll.DefaultIntervals().FastExtra,
	}

	app := &App{
		client:      opts.Client,
		creds:       opts.Credentials,
		settings:    opts.Settings,
		tr:          opts.Translator,
		notifier:    opts.Notifier,
		themeSource: opts.ThemeSource,
		state:       poll.NewState(intervals),
		logger:      opts.Logger,
		done:        make(chan struct{}),
	}

	systray.Run(app.onReady, app.onExit)
}

func (a *App) onReady() {
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	a.light = a.themeSource.Light()

	systray.SetIcon(icon.PNG(icon.RenderUsage(0, 0, a.light)))
	systray.SetTitle(a.tr.T("title"))
	systray.SetTooltip(a.tr.T("loading"))

	a.mDetails = systray.AddMenuItem(a.tr.T("menu_details"), "")
	a.mRefresh = systray.AddMenuItem(a.tr.T("refresh"), "")

	if autostart.Supported() {
		systray.AddSeparator()
		a.mAutostart = systray.AddMenuItemCheckbox(a.tr.T("autostart"), "", autostart.IsEnabled())
		if err := autostart.SyncPath(); err != nil {
			a.logger.Warn().Err(err).Msg("failed to sync autostart path")
		}
	}

	systray.AddSeparator()
	a.mQuit = systray.AddMenuItem(a.tr.T("quit"), "")

	if _, ok := a.creds.Token(); !ok {
		a.notifier.TokenMissing()
	}

	go a.pollLoop(ctx)
	go a.handleMenuClicks()
	go a.watchTheme(ctx)
	go a.watchCredentials(ctx)
}

func (a *App) onExit() {
	if a.cancel != nil {
		a.cancel()
	}
	close(a.done)
}

// pollLoop drives fetch -> render -> sleep with adaptive intervals.
func (a *App) pollLoop(ctx context.Context) {
	a.logger.Info().Msg("poll loop started")

	for {
		snap := a.refreshOnce(ctx)
		decision := a.state.Advance(snap, time.Now())

		for range decision.Notices {
			a.notifier.QuotaReset()
		}

		a.logger.Debug().
			Dur("interval", decision.Interval).
			Int("fast_remaining", a.state.FastRemaining()).
			Bool("failed", snap.Failed()).
			Msg("next poll scheduled")

		if !a.sleep(decision.Interval) {
			a.logger.Info().Msg("poll loop stopped")
			return
		}
	}
}

// refreshOnce fetches usage and updates the shared snapshot, icon, and
// tooltip. Called by the poll loop and, concurrently, by manual
// refreshes; it never touches scheduler state.
func (a *App) refreshOnce(ctx context.Context) api.Snapshot {
	usage, err := a.client.FetchUsage(ctx)
	snap := api.Snapshot{Usage: usage, Err: err}
	if err != nil {
		a.logger.Warn().Err(err).Msg("usage fetch failed")
	}

	a.mu.Lock()
	a.snapshot = snap
	light := a.light
	a.mu.Unlock()

	a.updateUI(snap, light)
	return snap
}

// updateUI renders the tray icon and tooltip for a snapshot.
func (a *App) updateUI(snap api.Snapshot, light bool) {
	var img *image.RGBA
	if snap.Failed() {
		glyph := "!"
		if api.IsAuthError(snap.Err) {
			glyph = "C!"
		}
		img = icon.RenderStatus(glyph, light)
	} else {
		img = icon.RenderUsage(snap.Pct5h(), snap.Pct7d(), light)
	}

	systray.SetIcon(icon.PNG(img))
	systray.SetTooltip(format.Tooltip(snap, time.Now(), a.tr))
}

// sleep waits for d in whole-second slices so a quit request is honored
// within a second. Returns false when the application is shutting down.
func (a *App) sleep(d time.Duration) bool {
	for remaining := d; remaining > 0; remaining -= time.Second {
		select {
		case <-a.done:
			return false
		case <-time.After(time.Second):
		}
	}
	return true
}

// handleMenuClicks processes menu item clicks.
func (a *App) handleMenuClicks() {
	// The autostart item doesn't exist on all platforms; a nil channel
	// blocks forever in the select, which is exactly what we want.
	var autostartCh chan struct{}
	if a.mAutostart != nil {
		autostartCh = a.mAutostart.ClickedCh
	}

	for {
		select {
		case <-a.mDetails.ClickedCh:
			a.openPopup()

		case <-a.mRefresh.ClickedCh:
			go a.refreshOnce(context.Background())

		case <-autostartCh:
			a.toggleAutostart()

		case <-a.mQuit.ClickedCh:
			systray.Quit()
			return

		case <-a.done:
			return
		}
	}
}

// openPopup launches the detail window as a child process of this
// binary. Only one popup runs at a time.
func (a *App) openPopup() {
	if !a.popupRunning.CompareAndSwap(false, true) {
		return
	}

	go func() {
		defer a.popupRunning.Store(false)

		exePath, err := os.Executable()
		if err != nil {
			a.logger.Error().Err(err).Msg("failed to resolve executable path")
			return
		}

		cmd := exec.Command(exePath, "popup")
		if err := cmd.Start(); err != nil {
			a.logger.Error().Err(err).Msg("failed to launch popup")
			return
		}
		// Hold the single-instance guard until the window closes.
		_ = cmd.Wait()
	}()
}

func (a *App) toggleAutostart() {
	enable := !autostart.IsEnabled()
	if err := autostart.SetEnabled(enable); err != nil {
		a.logger.Error().Err(err).Msg("failed to toggle autostart")
		return
	}
	if enable {
		a.mAutostart.Check()
	} else {
		a.mAutostart.Uncheck()
	}
}

// watchTheme re-renders the icon when the taskbar theme flips.
func (a *App) watchTheme(ctx context.Context) {
	err := a.themeSource.Watch(ctx, func() {
		light := a.themeSource.Light()

		a.mu.Lock()
		if light == a.light {
			a.mu.Unlock()
			return
		}
		a.light = light
		snap := a.snapshot
		a.mu.Unlock()

		a.logger.Debug().Bool("light", light).Msg("taskbar theme changed")
		a.updateUI(snap, light)
	})
	if err != nil && ctx.Err() == nil {
		a.logger.Warn().Err(err).Msg("theme watcher stopped")
	}
}

// watchCredentials refreshes immediately after a Claude Code login
// rewrites the credential store.
func (a *App) watchCredentials(ctx context.Context) {
	err := config.WatchCredentials(ctx, a.creds.Path(), a.logger, func() {
		a.logger.Info().Msg("credential store changed, refreshing")
		a.refreshOnce(context.Background())
	})
	if err != nil && ctx.Err() == nil {
		a.logger.Warn().Err(err).Msg("credential watcher stopped")
	}
}

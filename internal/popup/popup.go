// Package popup is the usage detail window. The tray launches it as a
// separate process so the systray event loop and the Fyne event loop
// never share a thread.
package popup

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/claudeutils/usage-tray/internal/api"
	"github.com/claudeutils/usage-tray/internal/constants"
	"github.com/claudeutils/usage-tray/internal/format"
	"github.com/claudeutils/usage-tray/internal/i18n"
)

// Options carries the collaborators the popup needs.
type Options struct {
	Client     *api.Client
	Translator *i18n.Translator
	Logger     zerolog.Logger
}

// windowRow is one quota window's widgets. Rows are created once and
// updated in place on each refresh.
type windowRow struct {
	box    *fyne.Container
	name   *widget.Label
	bar    *usageBar
	reset  *widget.Label
	period time.Duration
	nameID string
}

// popup owns the detail window state.
type popup struct {
	client *api.Client
	tr     *i18n.Translator
	logger zerolog.Logger

	window  fyne.Window
	account *widget.Label
	errText *widget.Label
	rows    []*windowRow

	profile *api.Profile
}

// Run opens the detail window and blocks until it is closed.
// Must be called from the main goroutine.
func Run(opts Options) {
	a := fyneapp.New()
	w := a.NewWindow(opts.Translator.T("title"))

	p := &popup{
		client: opts.Client,
		tr:     opts.Translator,
		logger: opts.Logger,
		window: w,
	}

	p.account = widget.NewLabel(opts.Translator.T("loading"))
	p.account.Wrapping = fyne.TextWrapWord

	p.errText = widget.NewLabel("")
	p.errText.Wrapping = fyne.TextWrapWord
	p.errText.Hide()

	for _, entry := range []struct {
		nameID string
		period time.Duration
	}{
		{"session", constants.Period5h},
		{"weekly", constants.Period7d},
		{"weekly_sonnet", constants.Period7d},
		{"weekly_opus", constants.Period7d},
	} {
		row := &windowRow{
			name:   widget.NewLabel(""),
			bar:    newUsageBar(),
			reset:  widget.NewLabel(""),
			period: entry.period,
			nameID: entry.nameID,
		}
		row.name.TextStyle = fyne.TextStyle{Bold: true}
		row.box = container.NewVBox(row.name, row.bar, row.reset)
		row.box.Hide()
		p.rows = append(p.rows, row)
	}

	header := widget.NewLabel(opts.Translator.T("usage"))
	header.TextStyle = fyne.TextStyle{Bold: true}

	items := []fyne.CanvasObject{
		p.account,
		widget.NewSeparator(),
		header,
		p.errText,
	}
	for _, row := range p.rows {
		items = append(items, row.box)
	}

	w.SetContent(container.NewPadded(container.NewVBox(items...)))
	w.Resize(fyne.NewSize(constants.PopupWidth, 0))
	w.SetFixedSize(true)

	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			w.Close()
		}
	})

	go p.refreshLoop()

	w.ShowAndRun()
}

// refreshLoop fetches data immediately and then on a fixed cadence for
// as long as the window is open. The process exits with the window, so
// the goroutine needs no shutdown path.
func (p *popup) refreshLoop() {
	p.refresh()

	ticker := time.NewTicker(constants.PopupRefreshInterval)
	defer ticker.Stop()
	for range ticker.C {
		p.refresh()
	}
}

func (p *popup) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), constants.RequestTimeout*2)
	defer cancel()

	if p.profile == nil {
		p.profile = p.client.FetchProfile(ctx)
	}

	usage, err := p.client.FetchUsage(ctx)
	if err != nil {
		p.logger.Warn().Err(err).Msg("popup usage fetch failed")
	}
	snap := api.Snapshot{Usage: usage, Err: err}
	now := time.Now()

	fyne.Do(func() {
		p.account.SetText(p.accountText())

		if snap.Failed() {
			p.errText.SetText(format.ErrorText(snap.Err, p.tr))
			p.errText.Show()
			for _, row := range p.rows {
				row.box.Hide()
			}
			return
		}
		p.errText.Hide()

		windows := []*api.Window{
			snap.Usage.FiveHour,
			snap.Usage.SevenDay,
			snap.Usage.SevenDaySonnet,
			snap.Usage.SevenDayOpus,
		}
		for i, row := range p.rows {
			p.updateRow(row, windows[i], now)
		}
	})
}

// updateRow fills one quota row, hiding it when the account's plan does
// not carry that window.
func (p *popup) updateRow(row *windowRow, w *api.Window, now time.Time) {
	if w == nil || w.Utilization == nil {
		row.box.Hide()
		return
	}

	pct := w.Pct()
	row.name.SetText(fmt.Sprintf("%s: %.0f%%", p.tr.T(row.nameID), pct))

	elapsed := -1.0
	if e, ok := format.ElapsedPct(w.ResetsAt, row.period, now); ok {
		elapsed = e
	}
	row.bar.Set(pct, elapsed)

	if reset := format.TimeUntil(w.ResetsAt, now, p.tr); reset != "" {
		row.reset.SetText(reset)
		row.reset.Show()
	} else {
		row.reset.Hide()
	}
	row.box.Show()
}

// accountText renders the email and plan lines, or a plain title when
// the profile endpoint is unavailable.
func (p *popup) accountText() string {
	if p.profile == nil {
		return p.tr.T("account")
	}

	lines := []string{p.tr.T("account")}
	if email := p.profile.Account.Email; email != "" {
		lines = append(lines, p.tr.T("email")+": "+email)
	}
	if plan := p.profile.Organization.OrganizationType; plan != "" {
		pretty := cases.Title(language.English).String(strings.ReplaceAll(plan, "_", " "))
		lines = append(lines, p.tr.T("plan")+": "+pretty)
	}
	return strings.Join(lines, "\n")
}

// Package i18n loads the embedded message catalogs and resolves the
// display language.
//
// Resolution chain: settings override, then the system locale (both the
// full "lang-REGION" tag and its base language), then English. The
// catalog files under locale/ are the configuration - adding a language
// means adding a file.
package i18n

import (
	"encoding/json"
	"strings"
	"time"

	"embed"

	golocale "github.com/jeandeaual/go-locale"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locale/*.json
var localeFS embed.FS

// Translator resolves message IDs to localized strings.
type Translator struct {
	localizer *goi18n.Localizer
}

// New creates a translator. override, when non-empty, wins over the
// system locale (e.g. "de" or "en-US" from the settings file).
func New(override string) *Translator {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locale")
	if err == nil {
		for _, entry := range entries {
			// Embedded catalogs are build-time artifacts; a broken one
			// is a packaging bug, not a runtime condition.
			_, _ = bundle.LoadMessageFileFS(localeFS, "locale/"+entry.Name())
		}
	}

	var langs []string
	if override != "" {
		langs = append(langs, override)
	}
	if sys, err := golocale.GetLocale(); err == nil && sys != "" {
		langs = append(langs, sys)
	}
	langs = append(langs, "en")

	return &Translator{localizer: goi18n.NewLocalizer(bundle, langs...)}
}

// T returns the localized message for id.
func (t *Translator) T(id string) string {
	return t.TD(id, nil)
}

// TD returns the localized message for id with template data substituted.
// An unknown id falls back to the id itself so a missing translation is
// visible instead of blank.
func (t *Translator) TD(id string, data map[string]interface{}) string {
	msg, err := t.localizer.Localize(&goi18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		return id
	}
	return msg
}

// Weekday returns the localized short weekday name.
func (t *Translator) Weekday(d time.Weekday) string {
	return t.T("weekday_" + strings.ToLower(d.String()))
}

package ui

import (
	"embed"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-addressbook/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Messages translates user-facing keys for one language.
type Messages struct {
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	Languages []string
}

// NewMessages loads every embedded locale and selects lang, falling back to
// English for keys the language does not define.
func NewMessages(lang string) *Messages {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	m := &Messages{bundle: bundle}

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		m.SetLanguage(lang)
		return m
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}
		m.Languages = append(m.Languages, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
			config.LogKeyFile, name,
		)
	}

	m.SetLanguage(lang)
	return m
}

// SetLanguage switches the active translation.
func (m *Messages) SetLanguage(lang string) {
	if lang == "" {
		lang = config.DefaultLanguage
	}
	m.localizer = i18n.NewLocalizer(m.bundle, lang, config.DefaultLanguage)
}

// Get translates a key without template data.
func (m *Messages) Get(key string) string {
	return m.localize(&i18n.LocalizeConfig{MessageID: key})
}

// Format translates a key, filling its template with data.
func (m *Messages) Format(key string, data map[string]any) string {
	return m.localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
}

// Plural translates a key whose form depends on count. The count is also
// available to the template as .Count.
func (m *Messages) Plural(key string, count int) string {
	return m.localize(&i18n.LocalizeConfig{
		MessageID:    key,
		PluralCount:  count,
		TemplateData: map[string]any{"Count": count},
	})
}

func (m *Messages) localize(lc *i18n.LocalizeConfig) string {
	if m == nil || m.localizer == nil {
		return lc.MessageID
	}
	msg, err := m.localizer.Localize(lc)
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, lc.MessageID,
			config.LogKeyError, err,
		)
		return lc.MessageID
	}
	return msg
}

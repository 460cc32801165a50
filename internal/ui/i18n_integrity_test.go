package ui_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-addressbook/internal/config"
	"github.com/tartampluch/go-addressbook/internal/ui"
)

var translationKeys = []string{
	config.TKeyWelcome,
	config.TKeyHelp,
	config.TKeyGoodbye,
	config.TKeyHello,
	config.TKeyEnterCommand,
	config.TKeyInvalidCommand,
	config.TKeyContactAdded,
	config.TKeyContactChanged,
	config.TKeyContactDeleted,
	config.TKeyPhoneRemoved,
	config.TKeyBirthdayAdded,
	config.TKeyBookEmpty,
	config.TKeyBirthdayUnset,
	config.TKeyImported,
	config.TKeyNoBirthdays,
	config.TKeyBirthdayOn,
	config.TKeyUpcomingHeader,
	config.TKeyErrValidation,
	config.TKeyErrNotFound,
	config.TKeyErrMissingArg,
	config.TKeyErrPhoneNF,
	config.TKeyErrImport,
	config.TKeyErrUnexpected,
	config.TKeyUsageAdd,
	config.TKeyUsageChange,
	config.TKeyUsageAddBirthday,
	config.TKeyUsageRemovePhone,
	config.TKeyUsageImport,
	config.TKeyDayMonday,
	config.TKeyDayTuesday,
	config.TKeyDayWednesday,
	config.TKeyDayThursday,
	config.TKeyDayFriday,
	config.TKeyEvtSummary,
	config.TKeyEvtSummaryAge,
}

// TestI18nIntegrity ensures that every translation key defined in config.go
// exists in each locale file, and flags orphans.
func TestI18nIntegrity(t *testing.T) {
	defined := make(map[string]bool, len(translationKeys))
	for _, k := range translationKeys {
		defined[k] = true
	}

	for _, lang := range config.SupportedLanguages {
		t.Run(lang, func(t *testing.T) {
			content, err := os.ReadFile(filepath.Join("locales", "active."+lang+".json"))
			require.NoError(t, err, "Must load active.%s.json", lang)

			var jsonMap map[string]any
			require.NoError(t, json.Unmarshal(content, &jsonMap), "JSON must be valid")

			for key := range defined {
				_, exists := jsonMap[key]
				assert.Truef(t, exists, "Key '%s' defined in config.go is missing in active.%s.json", key, lang)
			}

			for jsonKey := range jsonMap {
				if strings.HasPrefix(jsonKey, "_") {
					continue
				}
				if !defined[jsonKey] {
					t.Logf("Warning: Key '%s' exists in JSON but is not checked in the test suite (might be unused)", jsonKey)
				}
			}
		})
	}
}

func TestMessages_Languages(t *testing.T) {
	m := ui.NewMessages("en")
	assert.ElementsMatch(t, config.SupportedLanguages, m.Languages)

	assert.Equal(t, "Good bye!", m.Get(config.TKeyGoodbye))
	assert.Equal(t, "Imported 1 contact.", m.Plural(config.TKeyImported, 1))
	assert.Equal(t, "Imported 3 contacts.", m.Plural(config.TKeyImported, 3))

	m.SetLanguage("fr")
	assert.Equal(t, "Au revoir !", m.Get(config.TKeyGoodbye))
	assert.Equal(t, "Contact Léa ajouté.", m.Format(config.TKeyContactAdded, map[string]any{"Name": "Léa"}))
}

func TestMessages_Fallbacks(t *testing.T) {
	m := ui.NewMessages("de")
	assert.Equal(t, "Good bye!", m.Get(config.TKeyGoodbye), "Unknown languages fall back to English")
	assert.Equal(t, "no_such_key", m.Get("no_such_key"), "Missing keys are shown verbatim")

	var nilMsgs *ui.Messages
	assert.Equal(t, config.TKeyHello, nilMsgs.Get(config.TKeyHello))
}

package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/google/uuid"
	"github.com/tartampluch/go-addressbook/internal/addressbook"
	"github.com/tartampluch/go-addressbook/internal/config"
)

// ImportStats summarizes a DecodeRecords run.
type ImportStats struct {
	Cards         int
	Imported      int
	SkippedCards  int
	SkippedPhones int
	SkippedDates  int
}

// EncodeRecord writes r as a single vCard 4.0.
func EncodeRecord(w io.Writer, r *addressbook.Record) error {
	card := make(vcard.Card)
	card.SetValue(vcard.FieldFormattedName, r.Name().String())
	card.SetName(&vcard.Name{GivenName: r.Name().String()})
	card.SetValue(vcard.FieldUID, ContactUID(r.Name()))

	for _, p := range r.Phones() {
		card.Add(vcard.FieldTelephone, &vcard.Field{
			Value:  p.String(),
			Params: vcard.Params{vcard.ParamType: {vcard.TypeVoice}},
		})
	}
	if b, ok := r.Birthday(); ok {
		card.SetValue(vcard.FieldBirthday, b.Time().Format(config.DateFormatFullBasic))
	}

	vcard.ToV4(card)
	if err := vcard.NewEncoder(w).Encode(card); err != nil {
		return fmt.Errorf("%s: %w", config.ErrVCardEncode, err)
	}
	return nil
}

// DecodeRecords reads every card of a vCard stream. Malformed cards,
// phone numbers that are not ten digits and unparsable birthdays are
// skipped so that one bad entry does not discard the whole file.
func DecodeRecords(ctx context.Context, r io.Reader) ([]*addressbook.Record, ImportStats, error) {
	decoder := vcard.NewDecoder(r)
	var stats ImportStats
	var out []*addressbook.Record

	for {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A syntax error leaves the decoder mid-stream; nothing after it can be trusted.
			if stats.Cards == 0 {
				return nil, stats, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
			}
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyError, err)
			stats.SkippedCards++
			break
		}
		stats.Cards++

		rec, err := addressbook.NewRecord(cardName(card))
		if err != nil {
			stats.SkippedCards++
			continue
		}

		for _, tel := range card.Values(vcard.FieldTelephone) {
			if err := rec.AddPhone(normalizePhone(tel)); err != nil {
				slog.Debug(config.MsgSkippedPhone,
					config.LogKeyComponent, config.CompEngine,
					config.LogKeyValue, tel)
				stats.SkippedPhones++
			}
		}

		if bday := card.Get(vcard.FieldBirthday); bday != nil && bday.Value != "" {
			t, yearKnown, err := parseDate(bday.Value)
			if err != nil || !yearKnown {
				slog.Debug(config.MsgSkippedDate,
					config.LogKeyComponent, config.CompEngine,
					config.LogKeyValue, bday.Value)
				stats.SkippedDates++
			} else {
				rec.SetBirthDate(addressbook.BirthDateOf(t))
			}
		}

		out = append(out, rec)
		stats.Imported++
	}
	return out, stats, nil
}

// ContactUID derives a stable identifier from the contact name.
func ContactUID(name addressbook.Name) string {
	input := fmt.Sprintf(config.FormatHashInput, config.UIDSalt, name)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(input)).URN()
}

// cardName prefers FN (Formatted) over N (Structured).
// Whitespace is folded into single hyphens: names are single command tokens.
func cardName(card vcard.Card) string {
	name := ""
	if fn := card.Get(vcard.FieldFormattedName); fn != nil && fn.Value != "" {
		name = fn.Value
	} else if n := card.Name(); n != nil {
		name = strings.TrimSpace(n.GivenName + " " + n.FamilyName)
	}
	if name == "" {
		name = config.FallbackName
	}
	return strings.Join(strings.Fields(name), "-")
}

func normalizePhone(s string) string {
	s = strings.TrimPrefix(s, "tel:")
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '.', '(', ')':
			return -1
		}
		return r
	}, s)
}

// parseDate handles the vCard BDAY formats seen in the wild.
func parseDate(value string) (time.Time, bool, error) {
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatBirthday,
	}
	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, true, nil
		}
	}

	// Truncated dates (year unknown)
	formatsWithoutYear := []string{config.DateFormatNoYearD, config.DateFormatNoYearB}
	for _, f := range formatsWithoutYear {
		if t, err := time.Parse(f, value); err == nil {
			return time.Date(config.DefaultLeapYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), false, nil
		}
	}

	return time.Time{}, false, errors.New(config.ErrDateParse)
}

package ui

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/tartampluch/go-addressbook/internal/addressbook"
	"github.com/tartampluch/go-addressbook/internal/config"
	"github.com/tartampluch/go-addressbook/internal/engine"
)

func (a *Assistant) addContact(args []string) (string, error) {
	if len(args) < 2 {
		return "", addressbook.MissingArgument(2, len(args))
	}
	r, err := addressbook.NewRecord(args[0])
	if err != nil {
		return "", err
	}
	if err := r.AddPhone(args[1]); err != nil {
		return "", err
	}
	a.Book.AddRecord(r)
	return a.Msg.Format(config.TKeyContactAdded, map[string]any{"Name": r.Name()}), nil
}

// changeContact replaces the first phone, or adds one to a contact that has none.
func (a *Assistant) changeContact(args []string) (string, error) {
	if len(args) < 2 {
		return "", addressbook.MissingArgument(2, len(args))
	}
	r, err := a.Book.Find(args[0])
	if err != nil {
		return "", err
	}
	if phones := r.Phones(); len(phones) > 0 {
		err = r.EditPhone(phones[0].String(), args[1])
	} else {
		err = r.AddPhone(args[1])
	}
	if err != nil {
		return "", err
	}
	return a.Msg.Format(config.TKeyContactChanged, map[string]any{"Name": r.Name()}), nil
}

func (a *Assistant) showPhone(args []string) (string, error) {
	if len(args) < 1 {
		return "", addressbook.MissingArgument(1, 0)
	}
	r, err := a.Book.Find(args[0])
	if err != nil {
		return "", err
	}
	phones := r.Phones()
	if len(phones) == 0 {
		return "", addressbook.ErrPhoneNotFound
	}
	return phones[0].String(), nil
}

func (a *Assistant) showAll() string {
	records := a.Book.Records()
	if len(records) == 0 {
		return a.Msg.Get(config.TKeyBookEmpty)
	}
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = r.String()
	}
	return strings.Join(lines, "\n")
}

func (a *Assistant) addBirthday(args []string) (string, error) {
	if len(args) < 2 {
		return "", addressbook.MissingArgument(2, len(args))
	}
	r, err := a.Book.Find(args[0])
	if err != nil {
		return "", err
	}
	if err := r.AddBirthday(args[1]); err != nil {
		return "", err
	}
	return a.Msg.Get(config.TKeyBirthdayAdded), nil
}

func (a *Assistant) showBirthday(args []string) (string, error) {
	if len(args) < 1 {
		return "", addressbook.MissingArgument(1, 0)
	}
	r, err := a.Book.Find(args[0])
	if err != nil {
		return "", err
	}
	b, ok := r.Birthday()
	if !ok {
		return a.Msg.Get(config.TKeyBirthdayUnset), nil
	}
	return b.String(), nil
}

func (a *Assistant) deleteContact(args []string) (string, error) {
	if len(args) < 1 {
		return "", addressbook.MissingArgument(1, 0)
	}
	if err := a.Book.Delete(args[0]); err != nil {
		return "", err
	}
	return a.Msg.Format(config.TKeyContactDeleted, map[string]any{"Name": args[0]}), nil
}

func (a *Assistant) removePhone(args []string) (string, error) {
	if len(args) < 2 {
		return "", addressbook.MissingArgument(2, len(args))
	}
	r, err := a.Book.Find(args[0])
	if err != nil {
		return "", err
	}
	if err := r.RemovePhone(args[1]); err != nil {
		return "", err
	}
	return a.Msg.Get(config.TKeyPhoneRemoved), nil
}

func (a *Assistant) showVCard(args []string) (string, error) {
	if len(args) < 1 {
		return "", addressbook.MissingArgument(1, 0)
	}
	r, err := a.Book.Find(args[0])
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := engine.EncodeRecord(&buf, r); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\r\n"), nil
}

// importContacts merges the cards of a file or URL into the book. Contacts
// already present under the same name are replaced.
func (a *Assistant) importContacts(ctx context.Context, args []string) (string, error) {
	if len(args) < 1 {
		return "", addressbook.MissingArgument(1, 0)
	}
	src := engine.Source{Location: args[0]}
	if src.IsRemote() && a.ImportUser != "" {
		src.User = a.ImportUser
		if a.Secrets != nil {
			pass, err := a.Secrets(a.ImportUser)
			if err != nil {
				slog.Debug(config.MsgPassFail,
					config.LogKeyComponent, config.CompUI,
					config.LogKeyUser, a.ImportUser,
					config.LogKeyError, err,
				)
			}
			src.Pass = pass
		}
	}

	records, stats, err := a.Importer.Import(ctx, src)
	if err != nil {
		return "", err
	}
	for _, r := range records {
		a.Book.AddRecord(r)
	}
	return a.Msg.Plural(config.TKeyImported, stats.Imported), nil
}

// Preload imports location before the loop starts and returns the reply
// the import command would print.
func (a *Assistant) Preload(ctx context.Context, location string) string {
	out, err := a.importContacts(ctx, []string{location})
	if err != nil {
		return a.describe(config.CmdImport, err)
	}
	return out
}

func (a *Assistant) showCalendar() (string, error) {
	data, _, err := a.Calendar.Build(a.Book.Records())
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// birthdays renders the window list, a blank line, then the weekday report.
func (a *Assistant) birthdays() string {
	rem := a.Scheduler.Upcoming(a.Book.Records())
	if len(rem.Window) == 0 && rem.Week.Empty() {
		return a.Msg.Get(config.TKeyNoBirthdays)
	}

	var sb strings.Builder
	for _, e := range rem.Window {
		sb.WriteString(a.Msg.Format(config.TKeyBirthdayOn, map[string]any{
			"Name": e.Name,
			"Date": e.Birthday.String(),
		}))
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')
	sb.WriteString(a.Msg.Get(config.TKeyUpcomingHeader))

	for _, b := range rem.Week.Buckets() {
		names := make([]string, len(b.Names))
		for i, n := range b.Names {
			names[i] = n.String()
		}
		sb.WriteByte('\n')
		sb.WriteString(a.weekday(b.Day))
		sb.WriteString(": ")
		sb.WriteString(strings.Join(names, ", "))
	}
	return sb.String()
}

var weekdayKeys = map[time.Weekday]string{
	time.Monday:    config.TKeyDayMonday,
	time.Tuesday:   config.TKeyDayTuesday,
	time.Wednesday: config.TKeyDayWednesday,
	time.Thursday:  config.TKeyDayThursday,
	time.Friday:    config.TKeyDayFriday,
}

func (a *Assistant) weekday(d time.Weekday) string {
	if key, ok := weekdayKeys[d]; ok {
		return a.Msg.Get(key)
	}
	return d.String()
}

// eventSummary localizes calendar event titles.
func (a *Assistant) eventSummary(name string, age int) string {
	if age > 0 {
		return a.Msg.Format(config.TKeyEvtSummaryAge, map[string]any{"Name": name, "Age": age})
	}
	return a.Msg.Format(config.TKeyEvtSummary, map[string]any{"Name": name})
}

package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/tartampluch/go-addressbook/internal/addressbook"
	"github.com/tartampluch/go-addressbook/internal/config"
)

// WindowMode selects the eligibility rule of RecordsInWindow.
type WindowMode int

const (
	// WindowAnniversary re-anchors each birth date to the current year
	// before testing membership. This is the rule WeekBuckets uses too.
	WindowAnniversary WindowMode = iota
	// WindowLiteral compares the stored date, birth year included.
	// It only matches people born within the current week.
	WindowLiteral
)

// ParseWindowMode maps a settings value to a WindowMode.
func ParseWindowMode(s string) (WindowMode, error) {
	switch s {
	case config.WindowModeAnniversary, "":
		return WindowAnniversary, nil
	case config.WindowModeLiteral:
		return WindowLiteral, nil
	default:
		return 0, fmt.Errorf("%s: %q", config.ErrWindowMode, s)
	}
}

func (m WindowMode) String() string {
	if m == WindowLiteral {
		return config.WindowModeLiteral
	}
	return config.WindowModeAnniversary
}

// Entry is one contact whose birthday falls in the window.
type Entry struct {
	Name     addressbook.Name
	Birthday addressbook.BirthDate
	// Next is the date the birthday is observed on, before weekend roll-over.
	Next time.Time
}

// Bucket groups the names observed on one business day.
type Bucket struct {
	Day   time.Weekday
	Names []addressbook.Name
}

// WeekReport holds the Monday to Friday buckets of the upcoming week.
type WeekReport struct {
	days [5]Bucket
}

// Buckets returns the non-empty buckets, Monday first.
func (w WeekReport) Buckets() []Bucket {
	var out []Bucket
	for _, b := range w.days {
		if len(b.Names) > 0 {
			out = append(out, b)
		}
	}
	return out
}

// Names returns the names bucketed under day (nil for Saturday and Sunday).
func (w WeekReport) Names(day time.Weekday) []addressbook.Name {
	if day < time.Monday || day > time.Friday {
		return nil
	}
	return w.days[day-time.Monday].Names
}

func (w WeekReport) Empty() bool { return len(w.Buckets()) == 0 }

// Reminder is the combined answer to "whose birthday is coming up".
// Window and Week are computed independently; with WindowLiteral they may
// disagree on who is listed.
type Reminder struct {
	Window []Entry
	Week   WeekReport
}

// Scheduler computes upcoming birthdays relative to its Clock.
type Scheduler struct {
	Clock Clock
	Mode  WindowMode
}

// Upcoming evaluates records against today's date.
func (s *Scheduler) Upcoming(records []*addressbook.Record) Reminder {
	today := StartOfDay(s.Clock.Now())
	r := Upcoming(records, today, s.Mode)

	slog.Debug(config.MsgBdayWindow,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyMode, s.Mode.String(),
		config.LogKeyWindow, len(r.Window),
		config.LogKeyBuckets, len(r.Week.Buckets()),
	)
	return r
}

// Upcoming is the pure form of Scheduler.Upcoming.
func Upcoming(records []*addressbook.Record, today time.Time, mode WindowMode) Reminder {
	return Reminder{
		Window: RecordsInWindow(records, today, mode),
		Week:   WeekBuckets(records, today),
	}
}

// RecordsInWindow returns the records whose birthday lies in
// [today, today+7 days). Records without a birth date are skipped.
func RecordsInWindow(records []*addressbook.Record, today time.Time, mode WindowMode) []Entry {
	today = StartOfDay(today)
	end := today.AddDate(0, 0, config.UpcomingWindowDays)

	var out []Entry
	for _, r := range records {
		b, ok := r.Birthday()
		if !ok {
			continue
		}

		var candidate time.Time
		if mode == WindowLiteral {
			candidate = onDay(b.Time(), b.Time().Year(), today.Location())
		} else {
			candidate = NextOccurrence(b, today)
		}

		if !candidate.Before(today) && candidate.Before(end) {
			out = append(out, Entry{Name: r.Name(), Birthday: b, Next: candidate})
		}
	}
	return out
}

// WeekBuckets distributes the birthdays of the next seven days over the
// business days they are observed on. Saturday and Sunday roll onto Monday.
func WeekBuckets(records []*addressbook.Record, today time.Time) WeekReport {
	today = StartOfDay(today)

	var w WeekReport
	for i := range w.days {
		w.days[i].Day = time.Monday + time.Weekday(i)
	}

	for _, r := range records {
		b, ok := r.Birthday()
		if !ok {
			continue
		}
		next := NextOccurrence(b, today)
		if DaysBetween(today, next) >= config.UpcomingWindowDays {
			continue
		}
		day := ObservedWeekday(next)
		w.days[day-time.Monday].Names = append(w.days[day-time.Monday].Names, r.Name())
	}
	return w
}

// NextOccurrence re-anchors b to today's year, or the next one when that
// date is already past. 29 February falls on 1 March in common years.
func NextOccurrence(b addressbook.BirthDate, today time.Time) time.Time {
	today = StartOfDay(today)
	candidate := onDay(b.Time(), today.Year(), today.Location())
	if candidate.Before(today) {
		candidate = onDay(b.Time(), today.Year()+1, today.Location())
	}
	return candidate
}

// ObservedWeekday maps weekend days to Monday.
func ObservedWeekday(t time.Time) time.Weekday {
	if IsWeekend(t) {
		return time.Monday
	}
	return t.Weekday()
}

func onDay(birth time.Time, year int, loc *time.Location) time.Time {
	return time.Date(year, birth.Month(), birth.Day(), 0, 0, 0, 0, loc)
}

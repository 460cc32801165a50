package engine

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-addressbook/internal/addressbook"
	"github.com/tartampluch/go-addressbook/internal/config"
)

// CalendarBuilder renders the next birthday of every dated contact as an
// iCalendar feed.
type CalendarBuilder struct {
	Clock Clock

	// FormatSummary allows the UI to inject localized strings into the logic layer.
	FormatSummary func(name string, age int) string
}

// Build returns the ICS bytes and the number of events they contain.
func (c *CalendarBuilder) Build(records []*addressbook.Record) ([]byte, int, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	// Local time drives the date logic; UTC is only used for the stamp.
	now := c.Clock.Now()
	today := StartOfDay(now)
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	for _, r := range records {
		b, ok := r.Birthday()
		if !ok {
			continue
		}
		next := NextOccurrence(b, today)
		age := next.Year() - b.Time().Year()

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf("%s-%d", ContactUID(r.Name()), next.Year()))
		event.Props.SetText(config.PropSummary, c.summary(r.Name().String(), age))

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(next)
		event.Props.Set(dtStartProp)
		event.Props.Set(dtStampProp)

		cal.Children = append(cal.Children, event.Component)
	}

	if len(cal.Children) == 0 {
		return []byte(config.StubVCalendar), 0, nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Debug(config.MsgCalendarBuilt,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyCount, len(cal.Children),
	)
	return buf.Bytes(), len(cal.Children), nil
}

func (c *CalendarBuilder) summary(name string, age int) string {
	if c.FormatSummary != nil {
		return c.FormatSummary(name, age)
	}
	if age > 0 {
		return fmt.Sprintf(config.FallbackSummaryAge, name, age)
	}
	return fmt.Sprintf(config.FallbackSummary, name)
}

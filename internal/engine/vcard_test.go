package engine_test

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-addressbook/internal/addressbook"
	"github.com/tartampluch/go-addressbook/internal/engine"
)

func TestEncodeRecord(t *testing.T) {
	r := dated(t, "John", "15.06.1990")
	require.NoError(t, r.AddPhone("1234567890"))
	require.NoError(t, r.AddPhone("0987654321"))

	var buf bytes.Buffer
	require.NoError(t, engine.EncodeRecord(&buf, r))

	out := buf.String()
	assert.Contains(t, out, "BEGIN:VCARD")
	assert.Contains(t, out, "VERSION:4.0")
	assert.Contains(t, out, "FN:John")
	assert.Contains(t, out, "BDAY:19900615")
	assert.Contains(t, out, "1234567890")
	assert.Contains(t, out, "0987654321")
	assert.Contains(t, out, "UID:"+engine.ContactUID("John"))
}

func TestEncodeDecode_KeepsContact(t *testing.T) {
	r := dated(t, "Jane", "29.02.2000")
	require.NoError(t, r.AddPhone("0501234567"))

	var buf bytes.Buffer
	require.NoError(t, engine.EncodeRecord(&buf, r))

	records, stats, err := engine.DecodeRecords(context.Background(), &buf)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1, stats.Cards)

	got := records[0]
	assert.Equal(t, r.Name(), got.Name())
	assert.Equal(t, r.Phones(), got.Phones())
	b, ok := got.Birthday()
	require.True(t, ok)
	assert.Equal(t, "29.02.2000", b.String())
}

func TestEncodeRecord_NoBirthday(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, engine.EncodeRecord(&buf, dated(t, "Plain", "")))
	assert.NotContains(t, buf.String(), "BDAY")
}

func TestDecodeRecords_DateFormats(t *testing.T) {
	tests := []struct {
		name      string
		bdayValue string
		want      string
	}{
		{"ISO8601 Standard", "1990-10-25", "25.10.1990"},
		{"Basic Format", "19901025", "25.10.1990"},
		{"RFC3339", "1990-10-25T00:00:00Z", "25.10.1990"},
		{"Dotted", "25.10.1990", "25.10.1990"},
		{"Truncated (Month-Day)", "--10-25", ""},
		{"Garbage Data", "not-a-date", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := "BEGIN:VCARD\nVERSION:3.0\nFN:Test\nBDAY:" + tt.bdayValue + "\nEND:VCARD\n"

			records, stats, err := engine.DecodeRecords(context.Background(), strings.NewReader(content))
			require.NoError(t, err)
			require.Len(t, records, 1, "A bad date never drops the contact")

			b, ok := records[0].Birthday()
			if tt.want == "" {
				assert.False(t, ok)
				assert.Equal(t, 1, stats.SkippedDates)
				return
			}
			assert.True(t, ok)
			assert.Equal(t, tt.want, b.String())
		})
	}
}

func TestDecodeRecords_NameFallbacks(t *testing.T) {
	content := "BEGIN:VCARD\nVERSION:3.0\nN:Doe;John;;;\nEND:VCARD\n" +
		"BEGIN:VCARD\nVERSION:3.0\nTEL:1234567890\nEND:VCARD\n"

	records, _, err := engine.DecodeRecords(context.Background(), strings.NewReader(content))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, addressbook.Name("John-Doe"), records[0].Name())
	assert.Equal(t, addressbook.Name("Unknown"), records[1].Name())
}

func TestDecodeRecords_Empty(t *testing.T) {
	records, stats, err := engine.DecodeRecords(context.Background(), strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Zero(t, stats.Cards)
}

func TestContactUID_Stable(t *testing.T) {
	assert.Equal(t, engine.ContactUID("John"), engine.ContactUID("John"))
	assert.NotEqual(t, engine.ContactUID("John"), engine.ContactUID("Jane"))
	assert.True(t, strings.HasPrefix(engine.ContactUID("John"), "urn:uuid:"))
}

// -----------------------------------------------------------------------------
// Calendar
// -----------------------------------------------------------------------------

func TestCalendarBuilder_Build(t *testing.T) {
	builder := &engine.CalendarBuilder{
		Clock: engine.FixedClock(time.Date(2024, time.May, 1, 9, 0, 0, 0, time.Local)),
	}

	records := []*addressbook.Record{
		dated(t, "John", "03.05.1990"),
		dated(t, "Jane", "01.01.1985"),
		dated(t, "NoDate", ""),
	}

	ics, count, err := builder.Build(records)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	out := string(ics)
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"), "One event per dated contact")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20240503")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20250101", "Past birthdays move to next year")
	assert.Contains(t, out, "SUMMARY:Birthday: John (34)")
	assert.Contains(t, out, "SUMMARY:Birthday: Jane (40)")
}

func TestCalendarBuilder_CustomSummary(t *testing.T) {
	builder := &engine.CalendarBuilder{
		Clock: engine.FixedClock(time.Date(2024, time.May, 1, 9, 0, 0, 0, time.Local)),
		FormatSummary: func(name string, age int) string {
			return fmt.Sprintf("Anniversaire : %s (%d)", name, age)
		},
	}

	ics, _, err := builder.Build([]*addressbook.Record{dated(t, "Marie", "03.05.2000")})
	require.NoError(t, err)
	assert.Contains(t, string(ics), "Anniversaire : Marie (24)")
}

func TestCalendarBuilder_Empty(t *testing.T) {
	builder := &engine.CalendarBuilder{Clock: engine.RealClock{}}

	ics, count, err := builder.Build(nil)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Contains(t, string(ics), "BEGIN:VCALENDAR")
	assert.NotContains(t, string(ics), "BEGIN:VEVENT")
}

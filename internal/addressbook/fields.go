package addressbook

import (
	"errors"
	"time"

	"github.com/tartampluch/go-addressbook/internal/config"
)

// Name is a contact's display name. It doubles as the directory key.
type Name string

// NewName rejects the empty string; any other value is accepted as-is.
func NewName(s string) (Name, error) {
	if s == "" {
		return "", validationError("name", s, errors.New(config.ErrNameEmpty))
	}
	return Name(s), nil
}

func (n Name) String() string { return string(n) }

// PhoneNumber is a string of exactly ten ASCII digits.
type PhoneNumber string

func NewPhoneNumber(s string) (PhoneNumber, error) {
	if !isPhone(s) {
		return "", validationError("phone", s, errors.New(config.ErrPhoneFormat))
	}
	return PhoneNumber(s), nil
}

func (p PhoneNumber) String() string { return string(p) }

func isPhone(s string) bool {
	if len(s) != config.PhoneDigits {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// BirthDate is a calendar date with no time component.
// The zero value means "not set" and is never produced by NewBirthDate.
type BirthDate struct {
	t time.Time
}

// NewBirthDate parses s as DD.MM.YYYY. Zero padding is mandatory so the
// stored value re-serializes to exactly the input.
func NewBirthDate(s string) (BirthDate, error) {
	t, err := time.Parse(config.DateFormatBirthday, s)
	if err != nil {
		return BirthDate{}, validationError("birthday", s, err)
	}
	if t.Format(config.DateFormatBirthday) != s {
		return BirthDate{}, validationError("birthday", s, errors.New(config.ErrDateFormat))
	}
	return BirthDate{t: t}, nil
}

// BirthDateOf builds a BirthDate from the calendar fields of t.
func BirthDateOf(t time.Time) BirthDate {
	return BirthDate{t: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// Time returns the date at midnight UTC.
func (b BirthDate) Time() time.Time { return b.t }

func (b BirthDate) IsZero() bool { return b.t.IsZero() }

func (b BirthDate) String() string {
	if b.t.IsZero() {
		return ""
	}
	return b.t.Format(config.DateFormatBirthday)
}

package addressbook

import (
	"slices"
	"strings"
)

// Record is one person: an immutable name, an ordered list of phone
// numbers (duplicates allowed) and an optional birth date.
type Record struct {
	name     Name
	phones   []PhoneNumber
	birthday BirthDate
}

// NewRecord creates a record with no phones and no birth date.
func NewRecord(name string) (*Record, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}
	return &Record{name: n}, nil
}

func (r *Record) Name() Name { return r.name }

// Phones returns a copy of the phone list.
func (r *Record) Phones() []PhoneNumber { return slices.Clone(r.phones) }

// Birthday returns the birth date and whether one is set.
func (r *Record) Birthday() (BirthDate, bool) {
	return r.birthday, !r.birthday.IsZero()
}

// AddPhone validates number and appends it.
func (r *Record) AddPhone(number string) error {
	p, err := NewPhoneNumber(number)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// EditPhone replaces the first phone equal to old. The record is left
// untouched when old is absent (ErrPhoneNotFound) or replacement is malformed.
func (r *Record) EditPhone(old, replacement string) error {
	i := r.indexOf(old)
	if i < 0 {
		return ErrPhoneNotFound
	}
	p, err := NewPhoneNumber(replacement)
	if err != nil {
		return err
	}
	r.phones[i] = p
	return nil
}

// FindPhone returns the first phone equal to number.
func (r *Record) FindPhone(number string) (PhoneNumber, bool) {
	i := r.indexOf(number)
	if i < 0 {
		return "", false
	}
	return r.phones[i], true
}

// RemovePhone deletes the first phone equal to number.
func (r *Record) RemovePhone(number string) error {
	i := r.indexOf(number)
	if i < 0 {
		return ErrPhoneNotFound
	}
	r.phones = slices.Delete(r.phones, i, i+1)
	return nil
}

// AddBirthday validates s and overwrites any previous birth date.
func (r *Record) AddBirthday(s string) error {
	b, err := NewBirthDate(s)
	if err != nil {
		return err
	}
	r.birthday = b
	return nil
}

// SetBirthDate stores an already validated date.
func (r *Record) SetBirthDate(b BirthDate) { r.birthday = b }

func (r *Record) indexOf(number string) int {
	return slices.Index(r.phones, PhoneNumber(number))
}

func (r *Record) String() string {
	phones := make([]string, len(r.phones))
	for i, p := range r.phones {
		phones[i] = p.String()
	}

	var sb strings.Builder
	sb.WriteString("Contact name: ")
	sb.WriteString(r.name.String())
	sb.WriteString(", phones: ")
	sb.WriteString(strings.Join(phones, ", "))
	if b, ok := r.Birthday(); ok {
		sb.WriteString(", birthday: ")
		sb.WriteString(b.String())
	}
	return sb.String()
}

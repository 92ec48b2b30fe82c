// internal/domain/calendar/date.go
package calendar

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const layout = "2006-01-02"

// Date is a calendar day with no time-of-day and no time zone.
// Attendance and session dates are always Dates, never instants.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a Date, normalizing out-of-range days the way time.Date does
// (e.g. April 31 becomes May 1).
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the Date of t using t's own location components.
// Callers holding an instant should convert it with t.In(loc) first.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// DateIn returns the calendar day on which the instant t falls in loc.
func DateIn(t time.Time, loc *time.Location) Date {
	return DateOf(t.In(loc))
}

// Today is the current calendar day in loc.
func Today(loc *time.Location) Date {
	return DateIn(time.Now(), loc)
}

// Parse reads a YYYY-MM-DD string.
func Parse(s string) (Date, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// DaysIn returns the number of days in the given month, accounting for leap years.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstOfMonth and LastOfMonth bound the month containing d.
func (d Date) FirstOfMonth() Date {
	return Date{Year: d.Year, Month: d.Month, Day: 1}
}

func (d Date) LastOfMonth() Date {
	return Date{Year: d.Year, Month: d.Month, Day: DaysIn(d.Year, d.Month)}
}

// Weekday uses the civil calendar; no zone is involved.
func (d Date) Weekday() time.Weekday {
	return d.midnightUTC().Weekday()
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.midnightUTC().AddDate(0, 0, n))
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }

// Compare returns -1, 0 or +1.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

func (d Date) IsZero() bool { return d == Date{} }

// In returns midnight of d in loc.
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Scan implements sql.Scanner for DATE columns. lib/pq hands DATE values over
// as time.Time built from the stored components, so those are read back
// directly without any zone conversion.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = DateOf(v)
		return nil
	case []byte:
		return d.parseInto(string(v))
	case string:
		return d.parseInto(v)
	case nil:
		*d = Date{}
		return nil
	default:
		return fmt.Errorf("calendar: cannot scan %T into Date", src)
	}
}

// Value implements driver.Valuer; dates travel to the database as text so
// the session time zone cannot shift them.
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

func (d *Date) parseInto(s string) error {
	if len(s) > len(layout) {
		s = s[:len(layout)]
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) midnightUTC() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func cmpInt(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

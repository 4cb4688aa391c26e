// Package civil provides a calendar date type with no time-of-day or time
// zone component. All day arithmetic in golive goes through Date so that a
// date entered as 2025-03-31 never drifts to the 30th because of a zone
// offset.
package civil

import (
	"fmt"
	"time"
)

// Layout is the canonical text form of a Date.
const Layout = "2006-01-02"

// Date is a calendar date. The zero value is the empty date.
type Date struct {
	t time.Time // always midnight UTC when set
}

// New returns the date for the given year, month and day. Out-of-range values
// are normalised the same way time.Date does.
func New(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime returns the calendar date of t in t's own location.
func FromTime(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	y, m, d := t.Date()
	return New(y, m, d)
}

// Today returns the current local calendar date.
func Today() Date {
	return FromTime(time.Now())
}

// Parse reads a YYYY-MM-DD date. Timestamps whose first ten characters form a
// valid date (e.g. "2025-03-31T10:00:00Z") are normalised to that date.
// Anything else reports false; Parse never returns an error.
func Parse(s string) (Date, bool) {
	if len(s) < len(Layout) {
		return Date{}, false
	}
	if len(s) > len(Layout) && s[len(Layout)] != 'T' && s[len(Layout)] != ' ' {
		return Date{}, false
	}
	t, err := time.Parse(Layout, s[:len(Layout)])
	if err != nil {
		return Date{}, false
	}
	return Date{t: t}, true
}

// ParseStrict is Parse for user input: empty or malformed text is an error.
func ParseStrict(s string) (Date, error) {
	d, ok := Parse(s)
	if !ok {
		return Date{}, fmt.Errorf("civil: invalid date %q (want YYYY-MM-DD)", s)
	}
	return d, nil
}

// MustParse is like Parse but panics on malformed input. Intended for tests
// and static tables.
func MustParse(s string) Date {
	d, ok := Parse(s)
	if !ok {
		panic("civil: MustParse(" + s + ")")
	}
	return d
}

// IsZero reports whether d is the empty date.
func (d Date) IsZero() bool { return d.t.IsZero() }

// String returns YYYY-MM-DD, or "" for the empty date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(Layout)
}

// Format formats d with a time layout. The empty date formats as "".
func (d Date) Format(layout string) string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(layout)
}

// Time returns d as midnight UTC.
func (d Date) Time() time.Time { return d.t }

// Year, Month and Day return the date components.
func (d Date) Year() int { return d.t.Year() }

// Month returns the month of d.
func (d Date) Month() time.Month { return d.t.Month() }

// Day returns the day of month of d.
func (d Date) Day() int { return d.t.Day() }

// Weekday returns the day of the week of d.
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }

// AddDays returns d shifted by n calendar days. The empty date stays empty.
func (d Date) AddDays(n int) Date {
	if d.IsZero() {
		return d
	}
	return Date{t: d.t.AddDate(0, 0, n)}
}

// AddMonths returns d shifted by n calendar months.
func (d Date) AddMonths(n int) Date {
	if d.IsZero() {
		return d
	}
	return Date{t: d.t.AddDate(0, n, 0)}
}

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }

// After reports whether d is strictly later than o.
func (d Date) After(o Date) bool { return d.t.After(o.t) }

// Equal reports whether d and o are the same date.
func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after o.
func (d Date) Compare(o Date) int { return d.t.Compare(o.t) }

// StartOfWeek returns the Monday on or before d.
func (d Date) StartOfWeek() Date {
	if d.IsZero() {
		return d
	}
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDays(-offset)
}

// StartOfMonth returns the first day of d's month.
func (d Date) StartOfMonth() Date {
	if d.IsZero() {
		return d
	}
	return New(d.Year(), d.Month(), 1)
}

// DaysBetween returns b − a in whole calendar days.
func DaysBetween(a, b Date) int {
	return int(b.t.Sub(a.t).Hours() / 24)
}

// Min returns the earliest non-empty date, or the empty date if none is set.
func Min(dates ...Date) Date {
	var out Date
	for _, d := range dates {
		if d.IsZero() {
			continue
		}
		if out.IsZero() || d.Before(out) {
			out = d
		}
	}
	return out
}

// Max returns the latest non-empty date, or the empty date if none is set.
func Max(dates ...Date) Date {
	var out Date
	for _, d := range dates {
		if d.IsZero() {
			continue
		}
		if out.IsZero() || d.After(out) {
			out = d
		}
	}
	return out
}

// MarshalText encodes d as YYYY-MM-DD, or as an empty string when unset.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes YYYY-MM-DD. Empty or malformed text leaves d empty
// rather than failing, so one bad field never rejects a whole document.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, _ := Parse(string(text))
	*d = parsed
	return nil
}

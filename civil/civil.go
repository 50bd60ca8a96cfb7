// Package civil provides calendar math and a civil (wall clock) date-time
// value type that is not attached to any time zone.
//
// The representable range follows the SYSTEMTIME structure limits documented at
// https://learn.microsoft.com/en-us/windows/win32/api/minwinbase/ns-minwinbase-systemtime
// so that values survive a round trip through the tick-count representation
// in package instant.
package civil

import "time"

const (
	// MinYear is the earliest representable year.
	MinYear = 1601
	// MaxYear is the latest representable year.
	MaxYear = 30827
)

// DateTime is a point in civil time with millisecond resolution.
// It is a plain value: copy it freely, compare it with Compare.
//
// Whether a DateTime denotes UTC or local time is up to the caller;
// the calendar math in this package is the same either way.
type DateTime struct {
	Year        int
	Month       time.Month   // 1 = January
	Weekday     time.Weekday // 0 = Sunday
	Day         int          // 1-31
	Hour        int          // 0-23
	Minute      int          // 0-59
	Second      int          // 0-59
	Millisecond int          // 0-999
}

// YearValid reports whether year is within the representable range.
func YearValid(year int) bool {
	return year >= MinYear && year <= MaxYear
}

// LeapYear reports whether year is a leap year in the Gregorian calendar.
func LeapYear(year int) bool {
	if year%400 == 0 {
		return true
	}
	if year%100 == 0 {
		return false
	}
	return year%4 == 0
}

// DaysInMonth returns the number of days in the given month.
// It returns 0 if month is out of range.
func DaysInMonth(month time.Month, year int) int {
	switch month {
	case time.February:
		if LeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	case time.January, time.March, time.May, time.July,
		time.August, time.October, time.December:
		return 31
	}
	return 0
}

// DateValid reports whether the given calendar date exists and is
// within the representable range.
func DateValid(day int, month time.Month, year int) bool {
	if !YearValid(year) {
		return false
	}
	if month < time.January || month > time.December {
		return false
	}
	return day >= 1 && day <= DaysInMonth(month, year)
}

// Weekday returns the day of the week for the given date using Sakamoto's
// closed-form congruence, 0 = Sunday.
// https://en.wikipedia.org/wiki/Determination_of_the_day_of_the_week
//
// The result for an invalid date is deterministic but unspecified.
// Validate with DateValid first if that matters.
func Weekday(day int, month time.Month, year int) time.Weekday {
	if month < time.January || month > time.December {
		return time.Sunday
	}
	t := [12]int{0, 3, 2, 5, 0, 3, 5, 1, 4, 6, 2, 4}
	y := year
	if month < time.March {
		y--
	}
	return time.Weekday((y + y/4 - y/100 + y/400 + t[month-1] + day) % 7)
}

// ValidIgnoreWeekday reports whether dt is a valid point in time, ignoring
// the Weekday field. Consumers of the SYSTEMTIME layout conventionally
// ignore the weekday, so most code in this module validates with this
// method and recomputes the weekday where it matters.
func (dt DateTime) ValidIgnoreWeekday() bool {
	return DateValid(dt.Day, dt.Month, dt.Year) &&
		dt.Hour >= 0 && dt.Hour <= 23 &&
		dt.Minute >= 0 && dt.Minute <= 59 &&
		dt.Second >= 0 && dt.Second <= 59 &&
		dt.Millisecond >= 0 && dt.Millisecond <= 999
}

// Valid reports whether dt is a valid point in time, including a Weekday
// field that is consistent with the date.
func (dt DateTime) Valid() bool {
	return dt.ValidIgnoreWeekday() && dt.Weekday == Weekday(dt.Day, dt.Month, dt.Year)
}

// Normalize returns dt with the Weekday field recomputed from the date.
func (dt DateTime) Normalize() DateTime {
	dt.Weekday = Weekday(dt.Day, dt.Month, dt.Year)
	return dt
}

// daysBeforeMonth[m-1] is the number of days in a non-leap year before month m.
var daysBeforeMonth = [12]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

// YearDay returns the ordinal day of the year, 1-366.
// The result for an invalid date is unspecified.
func (dt DateTime) YearDay() int {
	yday := daysBeforeMonth[dt.Month-1] + dt.Day
	if dt.Month > time.February && LeapYear(dt.Year) {
		yday++
	}
	return yday
}

// Time converts dt to a stdlib time.Time in the given location.
// The Weekday field is ignored; time.Time derives its own.
func (dt DateTime) Time(loc *time.Location) time.Time {
	return time.Date(dt.Year, dt.Month, dt.Day, dt.Hour, dt.Minute, dt.Second,
		dt.Millisecond*int(time.Millisecond), loc)
}

// CompareIgnoreWeekday compares two date-times chronologically, ignoring
// the Weekday fields. It returns -1 if a is before b, 0 if they are equal
// and 1 if a is after b.
func CompareIgnoreWeekday(a, b DateTime) int {
	if c := cmp(a.Year, b.Year); c != 0 {
		return c
	}
	if c := cmp(int(a.Month), int(b.Month)); c != 0 {
		return c
	}
	if c := cmp(a.Day, b.Day); c != 0 {
		return c
	}
	if c := cmp(a.Hour, b.Hour); c != 0 {
		return c
	}
	if c := cmp(a.Minute, b.Minute); c != 0 {
		return c
	}
	if c := cmp(a.Second, b.Second); c != 0 {
		return c
	}
	return cmp(a.Millisecond, b.Millisecond)
}

// Compare is CompareIgnoreWeekday with the Weekday fields as the final
// tie breaker. For normalized values the tie breaker never decides.
func Compare(a, b DateTime) int {
	if c := CompareIgnoreWeekday(a, b); c != 0 {
		return c
	}
	return cmp(int(a.Weekday), int(b.Weekday))
}

func cmp(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

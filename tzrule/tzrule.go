// Package tzrule models a single time zone's daylight saving behavior for
// one calendar year: a set of bias offsets plus the two dates the zone
// switches between standard and daylight time.
//
// The layout follows the TIME_ZONE_INFORMATION structure documented at
// https://learn.microsoft.com/en-us/windows/win32/api/timezoneapi/ns-timezoneapi-time_zone_information
// with the zone name fields omitted; the engine works on an anonymous zone.
package tzrule

import (
	"errors"
	"time"

	"github.com/ngrash/go-civiltz/civil"
)

// Transition describes when a zone switches into standard or daylight
// time. It reuses the civil.DateTime layout in one of three encodings:
//
//   - Absolute (Year != 0): an exact calendar date and time the switch
//     occurs on. The Weekday field is ignored.
//   - Relative (Year == 0): "the Day'th occurrence of Weekday in Month"
//     where Day is 1-5 and 5 means the final occurrence, whether or not a
//     fifth occurrence exists that year. Hour through Millisecond give the
//     local time of day of the switch.
//   - Ignored (Month == 0): the zone does not switch; daylight saving is
//     not observed for this half of the rule.
//
// A Transition is never simultaneously absolute and relative.
type Transition civil.DateTime

// ErrInvalidTransition reports a Transition that is neither a valid
// relative rule nor a valid absolute date.
var ErrInvalidTransition = errors.New("tzrule: invalid transition rule")

// Ignored reports whether t signals "no transition". A zone that does not
// observe daylight saving, or needs it disabled, carries a transition
// with Month == 0, which is otherwise invalid but deliberately permitted.
func (t Transition) Ignored() bool {
	return t.Month == 0
}

// ValidRelative reports whether t is a valid relative rule.
func (t Transition) ValidRelative() bool {
	return t.Year == 0 &&
		t.Month >= time.January && t.Month <= time.December &&
		t.Weekday >= time.Sunday && t.Weekday <= time.Saturday &&
		t.Day >= 1 && t.Day <= 5 &&
		t.Hour >= 0 && t.Hour <= 23 &&
		t.Minute >= 0 && t.Minute <= 59 &&
		t.Second >= 0 && t.Second <= 59 &&
		t.Millisecond >= 0 && t.Millisecond <= 999
}

// ValidAbsolute reports whether t is a valid absolute date, ignoring the
// Weekday field.
func (t Transition) ValidAbsolute() bool {
	return civil.DateTime(t).ValidIgnoreWeekday()
}

// Valid reports whether t is a valid relative or absolute transition.
func (t Transition) Valid() bool {
	return t.ValidRelative() || t.ValidAbsolute()
}

// FromLocal converts an absolute local date to a relative rule: the date's
// occurrence of its weekday within its month. The occurrence is 1-4; if
// roundUpToLast is set and the date is the final occurrence of that
// weekday in the month, the occurrence becomes 5 so the rule stays on the
// final occurrence in every year.
//
// The Weekday field of local is ignored and recomputed.
func FromLocal(local civil.DateTime, roundUpToLast bool) (Transition, error) {
	if !local.ValidIgnoreWeekday() {
		return Transition{}, ErrInvalidTransition
	}

	// Day holds the day of the month [1, 31] and must become the
	// occurrence of the weekday within the month [1, 5].
	occurrence := (local.Day-1)/7 + 1

	// A weekday occurs 4 or 5 times in any month. Occurrence 4 is the
	// final one exactly when the same weekday a week later falls outside
	// the month.
	if occurrence == 4 && roundUpToLast &&
		!civil.DateValid(local.Day+7, local.Month, local.Year) {
		occurrence = 5
	}

	t := Transition(local)
	t.Weekday = civil.Weekday(local.Day, local.Month, local.Year)
	t.Day = occurrence
	t.Year = 0
	return t, nil
}

// Local converts t to an absolute local date in the given year.
//
// If t is already absolute it is returned with the Weekday field
// recomputed and year is ignored. If t is relative, the occurrence is
// resolved against the first weekday of the month; a fifth occurrence
// that does not exist falls back to the fourth.
func (t Transition) Local(year int) (civil.DateTime, error) {
	if !t.ValidRelative() {
		if t.ValidAbsolute() {
			return civil.DateTime(t).Normalize(), nil
		}
		return civil.DateTime{}, ErrInvalidTransition
	}

	if !civil.YearValid(year) {
		return civil.DateTime{}, ErrInvalidTransition
	}

	// Day holds the occurrence of the weekday within the month [1, 5]
	// and must become the day of the month [1, 31].
	first := civil.Weekday(1, t.Month, year)
	daysAfterFirst := (t.Day - 1) * 7

	var day int
	if first <= t.Weekday {
		day = int(t.Weekday-first) + 1 + daysAfterFirst
	} else {
		day = int(6-first) + 1 + int(t.Weekday) + 1 + daysAfterFirst
	}

	// Occurrence 5 means the final occurrence. If there is no fifth
	// occurrence the computed day overshoots the month by a week.
	if !civil.DateValid(day, t.Month, year) {
		day -= 7
	}

	local := civil.DateTime(t)
	local.Day = day
	local.Year = year
	return local.Normalize(), nil
}

// CompareLocal compares a local time to a transition chronologically.
// Relative transitions are resolved in the year of local. It returns -1
// if local is before the transition, 0 if equal and 1 if after.
func CompareLocal(local civil.DateTime, t Transition, year int) (int, error) {
	resolved, err := t.Local(year)
	if err != nil {
		return 0, err
	}
	return civil.CompareIgnoreWeekday(local, resolved), nil
}

// MaxBias is the largest combined offset, in minutes, between universal
// and local time that a Zone may express. Parts of this module assume no
// offset exceeds a day, so it must not be raised beyond 24 hours without
// a thorough review.
const MaxBias = 24 * 60

// Zone is one time zone's rule for a single calendar year.
//
// All biases are offsets in minutes with UTC = local + bias: a zone east
// of UTC has a negative bias. The bias in effect at an instant is Bias
// plus StandardBias or DaylightBias, depending on which side of the
// transition dates the instant falls.
type Zone struct {
	Bias         int32
	StandardBias int32
	DaylightBias int32
	StandardDate Transition
	DaylightDate Transition
}

// BiasesValid reports whether every bias combination the zone can produce
// stays within MaxBias minutes of UTC without overflowing.
func (z Zone) BiasesValid() bool {
	if z.Bias > MaxBias || z.Bias < -MaxBias {
		return false
	}
	if z.StandardBias > 0 && z.Bias > MaxBias-z.StandardBias {
		return false
	}
	if z.StandardBias < 0 && z.Bias < -MaxBias-z.StandardBias {
		return false
	}
	if z.DaylightBias > 0 && z.Bias > MaxBias-z.DaylightBias {
		return false
	}
	if z.DaylightBias < 0 && z.Bias < -MaxBias-z.DaylightBias {
		return false
	}
	return true
}

// Valid reports whether the zone's biases and transition dates are valid.
// If allowIgnoredDates is set, transitions with Month == 0 pass as well;
// see Transition.Ignored.
func (z Zone) Valid(allowIgnoredDates bool) bool {
	return z.BiasesValid() &&
		(z.StandardDate.Valid() || (allowIgnoredDates && z.StandardDate.Ignored())) &&
		(z.DaylightDate.Valid() || (allowIgnoredDates && z.DaylightDate.Ignored()))
}

// Package instant provides a monotonic tick-count representation of the
// civil date-times in package civil, with range-checked arithmetic.
//
// An Instant counts 100-nanosecond intervals since 1601-01-01 00:00:00,
// the layout used by the Windows FILETIME structure. Unlike FILETIME, the
// valid range is defined as exactly the tick range that converts to a
// civil.DateTime, so every valid Instant round trips.
package instant

import (
	"errors"
	"math"
	"time"

	"github.com/ngrash/go-civiltz/civil"
)

// Instant is a signed count of 100ns ticks since 1601-01-01 00:00:00.
// Whether an Instant denotes UTC or local time is up to the caller.
type Instant int64

const (
	// TicksPerMillisecond is the number of 100ns intervals in a millisecond.
	TicksPerMillisecond = 10_000
	// TicksPerSecond is the number of 100ns intervals in a second.
	TicksPerSecond = 1000 * TicksPerMillisecond
	// TicksPerMinute is the number of 100ns intervals in a minute.
	TicksPerMinute = 60 * TicksPerSecond
	// TicksPerHour is the number of 100ns intervals in an hour.
	TicksPerHour = 60 * TicksPerMinute
	// TicksPerDay is the number of 100ns intervals in a day.
	TicksPerDay = 24 * TicksPerHour
)

// The cycle constants follow the Go standard library's time package.
const (
	daysPer400Years = 365*400 + 97
	daysPer100Years = 365*100 + 24
	daysPer4Years   = 365*4 + 1

	// leapDaysBeforeEpoch is the number of leap days in years [1, 1600].
	leapDaysBeforeEpoch = 1600/4 - 1600/100 + 1600/400

	// maxEpochDay is the number of days from the epoch to 30827-12-31,
	// the last representable day. 30827 is not a leap year, so its last
	// day is day 364 of the year.
	maxEpochDay = 365*(civil.MaxYear-civil.MinYear) +
		(30826/4 - 30826/100 + 30826/400) - leapDaysBeforeEpoch + 364
)

const (
	// Min is the earliest valid Instant, 1601-01-01 00:00:00.000.
	Min Instant = 0
	// Max is the latest valid Instant, 30827-12-31 23:59:59.999.
	// Ticks beyond the final millisecond are out of range so that
	// Max converts to the maximum civil.DateTime exactly.
	Max Instant = maxEpochDay*TicksPerDay + TicksPerDay - TicksPerMillisecond
)

var (
	// ErrInvalidTime reports a civil.DateTime that is not a valid point in time.
	ErrInvalidTime = errors.New("instant: invalid civil time")
	// ErrRange reports an Instant outside [Min, Max].
	ErrRange = errors.New("instant: out of range")
	// ErrOverflow reports tick arithmetic that would wrap around.
	ErrOverflow = errors.New("instant: tick arithmetic overflow")
)

// Valid reports whether i is within [Min, Max].
func (i Instant) Valid() bool {
	return i >= Min && i <= Max
}

// epochDays returns the number of days from the epoch to January 1 of year.
func epochDays(year int) int64 {
	y := int64(year - 1)
	return 365*int64(year-civil.MinYear) + (y/4 - y/100 + y/400) - leapDaysBeforeEpoch
}

// FromDateTime converts a civil date-time to an Instant.
// The Weekday field is ignored.
func FromDateTime(dt civil.DateTime) (Instant, error) {
	if !dt.ValidIgnoreWeekday() {
		return 0, ErrInvalidTime
	}
	d := epochDays(dt.Year) + int64(dt.YearDay()-1)
	t := d*TicksPerDay +
		int64(dt.Hour)*TicksPerHour +
		int64(dt.Minute)*TicksPerMinute +
		int64(dt.Second)*TicksPerSecond +
		int64(dt.Millisecond)*TicksPerMillisecond
	return Instant(t), nil
}

// DateTime converts i to a civil date-time with a consistent Weekday field.
// Ticks beyond millisecond resolution are truncated.
func (i Instant) DateTime() (civil.DateTime, error) {
	if !i.Valid() {
		return civil.DateTime{}, ErrRange
	}

	d := int64(i) / TicksPerDay
	rem := int64(i) % TicksPerDay

	// Split the day count into 400/100/4/1-year cycles. The epoch year
	// 1601 is congruent 1 mod 400, so the cycles line up with the
	// Gregorian leap pattern just like in the standard library.
	n := d / daysPer400Years
	y := 400 * n
	d -= daysPer400Years * n

	n = d / daysPer100Years
	n -= n >> 2
	y += 100 * n
	d -= daysPer100Years * n

	n = d / daysPer4Years
	y += 4 * n
	d -= daysPer4Years * n

	n = d / 365
	n -= n >> 2
	y += n
	d -= 365 * n

	year := civil.MinYear + int(y)
	day := int(d) + 1 // ordinal day of year

	month := time.January
	for day > civil.DaysInMonth(month, year) {
		day -= civil.DaysInMonth(month, year)
		month++
	}

	dt := civil.DateTime{
		Year:        year,
		Month:       month,
		Day:         day,
		Hour:        int(rem / TicksPerHour),
		Minute:      int(rem % TicksPerHour / TicksPerMinute),
		Second:      int(rem % TicksPerMinute / TicksPerSecond),
		Millisecond: int(rem % TicksPerSecond / TicksPerMillisecond),
	}
	return dt.Normalize(), nil
}

// Sub returns i with ticks subtracted. It fails with ErrOverflow if the
// subtraction would wrap around and with ErrRange if i or the result is
// outside [Min, Max].
func (i Instant) Sub(ticks int64) (Instant, error) {
	if !i.Valid() {
		return 0, ErrRange
	}
	if ticks == 0 {
		return i, nil
	}
	v := int64(i)
	if (ticks > 0 && v < math.MinInt64+ticks) ||
		(ticks < 0 && v > math.MaxInt64+ticks) {
		return 0, ErrOverflow
	}
	r := Instant(v - ticks)
	if !r.Valid() {
		return 0, ErrRange
	}
	return r, nil
}

// Add returns i with ticks added. It fails like Sub.
func (i Instant) Add(ticks int64) (Instant, error) {
	if ticks == math.MinInt64 {
		// Negating would overflow.
		return 0, ErrOverflow
	}
	return i.Sub(-ticks)
}

func minutesToTicks(minutes int64) (int64, error) {
	if minutes > math.MaxInt64/TicksPerMinute || minutes < math.MinInt64/TicksPerMinute {
		return 0, ErrOverflow
	}
	return minutes * TicksPerMinute, nil
}

// SubMinutes returns i with minutes subtracted.
func (i Instant) SubMinutes(minutes int64) (Instant, error) {
	ticks, err := minutesToTicks(minutes)
	if err != nil {
		return 0, err
	}
	return i.Sub(ticks)
}

// AddMinutes returns i with minutes added.
func (i Instant) AddMinutes(minutes int64) (Instant, error) {
	ticks, err := minutesToTicks(minutes)
	if err != nil {
		return 0, err
	}
	return i.Add(ticks)
}

// SubCivilMinutes subtracts minutes from a civil date-time by round
// tripping through the tick representation, the way bias offsets are
// applied to wall clock values.
func SubCivilMinutes(dt civil.DateTime, minutes int64) (civil.DateTime, error) {
	i, err := FromDateTime(dt)
	if err != nil {
		return civil.DateTime{}, err
	}
	i, err = i.SubMinutes(minutes)
	if err != nil {
		return civil.DateTime{}, err
	}
	return i.DateTime()
}

// AddCivilMinutes adds minutes to a civil date-time. See SubCivilMinutes.
func AddCivilMinutes(dt civil.DateTime, minutes int64) (civil.DateTime, error) {
	i, err := FromDateTime(dt)
	if err != nil {
		return civil.DateTime{}, err
	}
	i, err = i.AddMinutes(minutes)
	if err != nil {
		return civil.DateTime{}, err
	}
	return i.DateTime()
}

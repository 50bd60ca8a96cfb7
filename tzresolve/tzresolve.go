// Package tzresolve decides whether an instant falls in standard or
// daylight time under a per-year zone rule, and converts UTC civil time to
// local time. The conversion handles the edge case where the local
// calendar year differs from the UTC year, which happens near January 1
// and December 31 and is the reason a single-year classification is not
// enough on its own.
package tzresolve

import (
	"errors"
	"fmt"
	"time"

	"github.com/ngrash/go-civiltz/civil"
	"github.com/ngrash/go-civiltz/instant"
	"github.com/ngrash/go-civiltz/tzrule"
)

// ID classifies an instant under a zone rule.
type ID int

const (
	// Invalid means classification failed.
	Invalid ID = iota
	// Unknown means only the base bias applies: the zone does not
	// observe daylight saving or its transitions are unusable.
	Unknown
	// Standard means the instant falls in standard time.
	Standard
	// Daylight means the instant falls in daylight saving time.
	Daylight
)

func (id ID) String() string {
	switch id {
	case Invalid:
		return "Invalid"
	case Unknown:
		return "Unknown"
	case Standard:
		return "Standard"
	case Daylight:
		return "Daylight"
	default:
		return fmt.Sprintf("<undefined ID (%d)>", int(id))
	}
}

var (
	// ErrInvalidTime reports a UTC input that is not a valid point in time.
	ErrInvalidTime = errors.New("tzresolve: invalid time")
	// ErrInvalidRule reports a zone rule with unusable biases or transitions.
	ErrInvalidRule = errors.New("tzresolve: invalid zone rule")
	// ErrYearOutOfRange reports a rule year outside the representable range.
	ErrYearOutOfRange = errors.New("tzresolve: year out of range")
	// ErrYearMismatch reports a strict classification whose local result
	// landed in a different year than the rule year. The resolver
	// recovers from it by trying the next candidate year.
	ErrYearMismatch = errors.New("tzresolve: local year does not match rule year")
)

// Classify converts a UTC civil time to local time under the given zone
// rule and reports which bias applied.
//
// year is the local calendar year the rule describes and the year
// relative transitions resolve in; 0 means the year of utc. In strict
// mode the classification fails with ErrYearMismatch unless the local
// result falls in exactly that year.
//
// The local result for Unknown is utc minus Bias, for Standard utc minus
// Bias+StandardBias, and for Daylight utc minus Bias+DaylightBias.
func Classify(utc civil.DateTime, zone tzrule.Zone, year int, strict bool) (civil.DateTime, ID, error) {
	if year == 0 {
		year = utc.Year
	}
	if !civil.YearValid(year) {
		return civil.DateTime{}, Invalid, ErrYearOutOfRange
	}
	if !zone.Valid(true) {
		return civil.DateTime{}, Invalid, ErrInvalidRule
	}

	ifUnknown, err := instant.SubCivilMinutes(utc, int64(zone.Bias))
	if err != nil {
		return civil.DateTime{}, Invalid, fmt.Errorf("%w: %w", ErrInvalidTime, err)
	}
	ifStandard, err := instant.SubCivilMinutes(utc, int64(zone.Bias)+int64(zone.StandardBias))
	if err != nil {
		return civil.DateTime{}, Invalid, fmt.Errorf("%w: %w", ErrInvalidTime, err)
	}
	ifDaylight, err := instant.SubCivilMinutes(utc, int64(zone.Bias)+int64(zone.DaylightBias))
	if err != nil {
		return civil.DateTime{}, Invalid, fmt.Errorf("%w: %w", ErrInvalidTime, err)
	}

	// In strict mode the chosen candidate must land in the rule year.
	// If no candidate does, there is no point in classifying.
	if strict && ifUnknown.Year != year && ifStandard.Year != year && ifDaylight.Year != year {
		return civil.DateTime{}, Invalid, ErrYearMismatch
	}

	deliver := func(local civil.DateTime, id ID) (civil.DateTime, ID, error) {
		if strict && local.Year != year {
			return civil.DateTime{}, Invalid, ErrYearMismatch
		}
		return local, id, nil
	}

	standardStart, serr := zone.StandardDate.Local(year)
	daylightStart, derr := zone.DaylightDate.Local(year)
	if serr != nil || derr != nil {
		// An ignored transition means the zone never switches; only the
		// base bias is trusted.
		return deliver(ifUnknown, Unknown)
	}

	standardBeforeDaylightStart := civil.Compare(ifStandard, daylightStart) < 0
	daylightBeforeStandardStart := civil.Compare(ifDaylight, standardStart) < 0

	switch order := civil.Compare(standardStart, daylightStart); {
	case order < 0:
		// Standard time starts first in the year. The standard period is
		// [standardStart, daylightStart): an instant exactly on a
		// transition belongs to the period that starts there.
		if !daylightBeforeStandardStart && standardBeforeDaylightStart {
			return deliver(ifStandard, Standard)
		}
		return deliver(ifDaylight, Daylight)
	case order > 0:
		// Daylight time starts first in the year.
		if !standardBeforeDaylightStart && daylightBeforeStandardStart {
			return deliver(ifDaylight, Daylight)
		}
		return deliver(ifStandard, Standard)
	}

	// The two transitions coincide, so the rule describes no switch at
	// all. Report Daylight only if a daylight bias actually applies;
	// a coincident transition with a zero bias is not daylight saving,
	// no matter what the rule claims.
	if zone.DaylightBias != 0 {
		return deliver(ifDaylight, Daylight)
	}
	return deliver(ifUnknown, Unknown)
}

// Result is the outcome of a UTC to local conversion: the two civil
// times, the classification, and the rule and rule year that produced it.
type Result struct {
	UTC   civil.DateTime
	Local civil.DateTime
	ID    ID
	Zone  tzrule.Zone
	Year  int
}

// Resolver converts UTC to local time using rules from a Provider.
type Resolver struct {
	Provider Provider
}

// UTCToLocal converts a UTC civil time to local time.
//
// Away from year boundaries the rule for the UTC year is used and the
// local result must fall in that year. On January 1 the local time may
// still be in the previous year, so that year's rule is tried first,
// strictly; on December 31 the UTC year's rule is tried strictly and the
// next year's rule is the fallback. The fallback attempt accepts
// whichever year results. Provider failures and strict-year mismatches
// move on to the next candidate; the attempt errors are joined and
// returned only once every candidate is exhausted.
//
// The Weekday field of utc is ignored and recomputed.
func (r Resolver) UTCToLocal(utc civil.DateTime) (Result, error) {
	if !utc.ValidIgnoreWeekday() {
		return Result{}, ErrInvalidTime
	}
	utc = utc.Normalize()

	type attempt struct {
		year   int
		strict bool
	}
	var attempts []attempt
	switch {
	case utc.Month == time.January && utc.Day == 1:
		attempts = []attempt{{utc.Year - 1, true}, {utc.Year, false}}
	case utc.Month == time.December && utc.Day == 31:
		attempts = []attempt{{utc.Year, true}, {utc.Year + 1, false}}
	default:
		attempts = []attempt{{utc.Year, true}}
	}

	var errs []error
	for _, a := range attempts {
		zone, err := r.Provider.RuleForYear(a.year)
		if err != nil {
			errs = append(errs, fmt.Errorf("rule for year %d: %w", a.year, err))
			continue
		}
		local, id, err := Classify(utc, zone, a.year, a.strict)
		if err != nil {
			errs = append(errs, fmt.Errorf("year %d: %w", a.year, err))
			continue
		}
		return Result{UTC: utc, Local: local, ID: id, Zone: zone, Year: a.year}, nil
	}
	return Result{}, errors.Join(errs...)
}

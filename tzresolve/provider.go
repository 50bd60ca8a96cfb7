package tzresolve

import (
	"github.com/pkg/errors"

	"github.com/ngrash/go-civiltz/civil"
	"github.com/ngrash/go-civiltz/tzrule"
)

// Provider supplies the zone rule in effect for a local calendar year.
// It is the only external dependency of the resolver; how a host obtains
// its rules is out of the engine's hands. An implementation may
// substitute the closest year it has data for, as the stock providers in
// this package do. A failure means no usable rule exists for that year.
type Provider interface {
	RuleForYear(year int) (tzrule.Zone, error)
}

// ErrNoRule reports a provider with no rule to serve.
var ErrNoRule = errors.New("tzresolve: no rule on record")

// Years serves rules from a map of local calendar years. A missing year
// is substituted with the nearest earlier year on record, since a rule
// stays in effect until a later rule replaces it; years before the
// earliest record get the earliest rule. This mirrors how hosts publish
// zone rules as a handful of year ranges rather than one rule per year.
type Years map[int]tzrule.Zone

// RuleForYear implements Provider.
func (m Years) RuleForYear(year int) (tzrule.Zone, error) {
	if !civil.YearValid(year) {
		return tzrule.Zone{}, errors.Wrapf(ErrYearOutOfRange, "year %d", year)
	}
	if z, ok := m[year]; ok {
		return z, nil
	}
	var (
		before, after       int
		hasBefore, hasAfter bool
	)
	for y := range m {
		if y < year {
			if !hasBefore || y > before {
				before, hasBefore = y, true
			}
		} else {
			if !hasAfter || y < after {
				after, hasAfter = y, true
			}
		}
	}
	switch {
	case hasBefore:
		return m[before], nil
	case hasAfter:
		return m[after], nil
	}
	return tzrule.Zone{}, errors.WithStack(ErrNoRule)
}

// Fixed serves the same rule for every year, the behavior of hosts that
// only know their current rule. Conversions near year boundaries can be
// wrong for zones whose rules changed between the years involved.
type Fixed tzrule.Zone

// RuleForYear implements Provider.
func (f Fixed) RuleForYear(year int) (tzrule.Zone, error) {
	if !civil.YearValid(year) {
		return tzrule.Zone{}, errors.Wrapf(ErrYearOutOfRange, "year %d", year)
	}
	return tzrule.Zone(f), nil
}

// WithoutDST wraps a provider so that daylight saving is disabled: the
// served rules keep each year's base bias but drop the standard and
// daylight biases and both transition dates, so every classification
// reports Unknown with only the base bias applied.
func WithoutDST(p Provider) Provider {
	return withoutDST{p}
}

type withoutDST struct {
	p Provider
}

func (w withoutDST) RuleForYear(year int) (tzrule.Zone, error) {
	z, err := w.p.RuleForYear(year)
	if err != nil {
		return tzrule.Zone{}, err
	}
	z.StandardBias = 0
	z.DaylightBias = 0
	z.StandardDate = tzrule.Transition{}
	z.DaylightDate = tzrule.Transition{}
	return z, nil
}

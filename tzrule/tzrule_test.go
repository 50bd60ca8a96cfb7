package tzrule

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ngrash/go-civiltz/civil"
)

func TestTransitionValidity(t *testing.T) {
	cases := []struct {
		name     string
		tr       Transition
		relative bool
		absolute bool
		ignored  bool
	}{
		{
			name:     "relative first Sunday of November",
			tr:       Transition{Month: time.November, Day: 1, Weekday: time.Sunday, Hour: 2},
			relative: true,
		},
		{
			name:     "relative last occurrence",
			tr:       Transition{Month: time.March, Day: 5, Weekday: time.Sunday, Hour: 1},
			relative: true,
		},
		{
			name:     "absolute date",
			tr:       Transition{Year: 2013, Month: time.November, Day: 3, Hour: 2},
			absolute: true,
		},
		{
			name:     "absolute ignores weekday consistency",
			tr:       Transition{Year: 2013, Month: time.November, Day: 3, Weekday: time.Saturday, Hour: 2},
			absolute: true,
		},
		{
			name:    "ignored",
			tr:      Transition{},
			ignored: true,
		},
		{
			name: "occurrence out of range",
			tr:   Transition{Month: time.November, Day: 6, Weekday: time.Sunday},
		},
		{
			name: "occurrence zero",
			tr:   Transition{Month: time.November, Weekday: time.Sunday},
		},
		{
			name: "relative month out of range",
			tr:   Transition{Month: 13, Day: 1, Weekday: time.Sunday},
		},
		{
			name: "relative hour out of range",
			tr:   Transition{Month: time.November, Day: 1, Weekday: time.Sunday, Hour: 24},
		},
		{
			name: "absolute nonexistent date",
			tr:   Transition{Year: 2013, Month: time.February, Day: 29},
		},
	}
	for _, c := range cases {
		if got := c.tr.ValidRelative(); got != c.relative {
			t.Errorf("%s: ValidRelative = %v, want %v", c.name, got, c.relative)
		}
		if got := c.tr.ValidAbsolute(); got != c.absolute {
			t.Errorf("%s: ValidAbsolute = %v, want %v", c.name, got, c.absolute)
		}
		if got := c.tr.Ignored(); got != c.ignored {
			t.Errorf("%s: Ignored = %v, want %v", c.name, got, c.ignored)
		}
		if got := c.tr.Valid(); got != (c.relative || c.absolute) {
			t.Errorf("%s: Valid = %v, want %v", c.name, got, c.relative || c.absolute)
		}
	}
}

func TestFromLocal(t *testing.T) {
	cases := []struct {
		name    string
		local   civil.DateTime
		roundUp bool
		want    Transition
	}{
		{
			name:  "first Sunday of November 2013",
			local: civil.DateTime{Year: 2013, Month: time.November, Day: 3, Hour: 2},
			want:  Transition{Month: time.November, Day: 1, Weekday: time.Sunday, Hour: 2},
		},
		{
			name:  "second Sunday of March 2013",
			local: civil.DateTime{Year: 2013, Month: time.March, Day: 10, Hour: 2},
			want:  Transition{Month: time.March, Day: 2, Weekday: time.Sunday, Hour: 2},
		},
		{
			name:  "fifth Sunday needs no rounding",
			local: civil.DateTime{Year: 2013, Month: time.March, Day: 31, Hour: 1},
			want:  Transition{Month: time.March, Day: 5, Weekday: time.Sunday, Hour: 1},
		},
		{
			name:  "fourth and final occurrence without rounding",
			local: civil.DateTime{Year: 2024, Month: time.April, Day: 26},
			want:  Transition{Month: time.April, Day: 4, Weekday: time.Friday},
		},
		{
			name:    "fourth and final occurrence rounded up to last",
			local:   civil.DateTime{Year: 2024, Month: time.April, Day: 26},
			roundUp: true,
			want:    Transition{Month: time.April, Day: 5, Weekday: time.Friday},
		},
		{
			name:    "fourth but not final occurrence stays fourth",
			local:   civil.DateTime{Year: 2013, Month: time.March, Day: 24, Hour: 1},
			roundUp: true,
			want:    Transition{Month: time.March, Day: 4, Weekday: time.Sunday, Hour: 1},
		},
	}
	for _, c := range cases {
		got, err := FromLocal(c.local, c.roundUp)
		if err != nil {
			t.Errorf("%s: FromLocal: %v", c.name, err)
			continue
		}
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Errorf("%s: FromLocal mismatch (-want +got):\n%s", c.name, diff)
		}
	}

	if _, err := FromLocal(civil.DateTime{Year: 2013, Month: time.February, Day: 29}, false); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("FromLocal(invalid date) error = %v, want ErrInvalidTransition", err)
	}
}

func TestLocal(t *testing.T) {
	cases := []struct {
		name string
		tr   Transition
		year int
		want civil.DateTime
	}{
		{
			name: "first Sunday of November 2013",
			tr:   Transition{Month: time.November, Day: 1, Weekday: time.Sunday, Hour: 2},
			year: 2013,
			want: civil.DateTime{Year: 2013, Month: time.November, Day: 3, Hour: 2},
		},
		{
			name: "second Sunday of March 2013",
			tr:   Transition{Month: time.March, Day: 2, Weekday: time.Sunday, Hour: 2},
			year: 2013,
			want: civil.DateTime{Year: 2013, Month: time.March, Day: 10, Hour: 2},
		},
		{
			name: "last Sunday of March 2021",
			tr:   Transition{Month: time.March, Day: 5, Weekday: time.Sunday, Hour: 1},
			year: 2021,
			want: civil.DateTime{Year: 2021, Month: time.March, Day: 28, Hour: 1},
		},
		{
			name: "last Sunday of October 2021",
			tr:   Transition{Month: time.October, Day: 5, Weekday: time.Sunday, Hour: 1},
			year: 2021,
			want: civil.DateTime{Year: 2021, Month: time.October, Day: 31, Hour: 1},
		},
		{
			// April 2024 has only four Fridays, so the fifth falls back
			// to the fourth.
			name: "fifth Friday of April 2024",
			tr:   Transition{Month: time.April, Day: 5, Weekday: time.Friday},
			year: 2024,
			want: civil.DateTime{Year: 2024, Month: time.April, Day: 26},
		},
		{
			name: "weekday on the first of the month",
			tr:   Transition{Month: time.September, Day: 1, Weekday: time.Sunday},
			year: 2013,
			want: civil.DateTime{Year: 2013, Month: time.September, Day: 1},
		},
		{
			name: "absolute passes through with recomputed weekday",
			tr:   Transition{Year: 2013, Month: time.November, Day: 3, Weekday: time.Saturday, Hour: 2},
			year: 9999, // ignored
			want: civil.DateTime{Year: 2013, Month: time.November, Day: 3, Hour: 2},
		},
	}
	for _, c := range cases {
		got, err := c.tr.Local(c.year)
		if err != nil {
			t.Errorf("%s: Local: %v", c.name, err)
			continue
		}
		if diff := cmp.Diff(c.want.Normalize(), got); diff != "" {
			t.Errorf("%s: Local mismatch (-want +got):\n%s", c.name, diff)
		}
	}

	if _, err := (Transition{Month: time.November, Day: 6, Weekday: time.Sunday}).Local(2013); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Local(invalid rule) error = %v, want ErrInvalidTransition", err)
	}
	if _, err := (Transition{Month: time.November, Day: 1, Weekday: time.Sunday}).Local(1600); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Local(year out of range) error = %v, want ErrInvalidTransition", err)
	}
}

func TestFromLocalLocalRoundTrip(t *testing.T) {
	// Any valid date that is not on the ambiguous fourth/fifth
	// occurrence boundary must survive the relative round trip.
	dates := []civil.DateTime{
		{Year: 2013, Month: time.November, Day: 3, Hour: 2},
		{Year: 2013, Month: time.March, Day: 10, Hour: 2},
		{Year: 2021, Month: time.March, Day: 28, Hour: 1},
		{Year: 2012, Month: time.February, Day: 29, Hour: 12, Minute: 30},
		{Year: 2013, Month: time.June, Day: 1},
		{Year: 2013, Month: time.June, Day: 21, Second: 59, Millisecond: 999},
	}
	for _, date := range dates {
		tr, err := FromLocal(date, false)
		if err != nil {
			t.Errorf("FromLocal(%+v): %v", date, err)
			continue
		}
		got, err := tr.Local(date.Year)
		if err != nil {
			t.Errorf("Local(%+v, %d): %v", tr, date.Year, err)
			continue
		}
		if diff := cmp.Diff(date.Normalize(), got); diff != "" {
			t.Errorf("round trip of %+v mismatch (-want +got):\n%s", date, diff)
		}
	}
}

func TestCompareLocal(t *testing.T) {
	tr := Transition{Month: time.November, Day: 1, Weekday: time.Sunday, Hour: 2} // 2013-11-03 02:00

	cases := []struct {
		local civil.DateTime
		want  int
	}{
		{civil.DateTime{Year: 2013, Month: time.November, Day: 3, Hour: 1, Minute: 59}, -1},
		{civil.DateTime{Year: 2013, Month: time.November, Day: 3, Hour: 2}, 0},
		{civil.DateTime{Year: 2013, Month: time.November, Day: 3, Hour: 2, Millisecond: 1}, 1},
		{civil.DateTime{Year: 2013, Month: time.June, Day: 15}, -1},
	}
	for _, c := range cases {
		got, err := CompareLocal(c.local, tr, c.local.Year)
		if err != nil {
			t.Errorf("CompareLocal(%+v): %v", c.local, err)
			continue
		}
		if got != c.want {
			t.Errorf("CompareLocal(%+v) = %d, want %d", c.local, got, c.want)
		}
	}

	if _, err := CompareLocal(civil.DateTime{Year: 2013, Month: time.June, Day: 15}, Transition{Month: 13, Day: 1}, 2013); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("CompareLocal(invalid transition) error = %v, want ErrInvalidTransition", err)
	}
}

func TestBiasesValid(t *testing.T) {
	cases := []struct {
		name string
		zone Zone
		want bool
	}{
		{"zero zone", Zone{}, true},
		{"us eastern", Zone{Bias: 300, DaylightBias: -60}, true},
		{"max bias", Zone{Bias: MaxBias}, true},
		{"min bias", Zone{Bias: -MaxBias}, true},
		{"bias too large", Zone{Bias: MaxBias + 1}, false},
		{"bias too small", Zone{Bias: -MaxBias - 1}, false},
		{"combined daylight bias exceeds max", Zone{Bias: 1440, DaylightBias: 60}, false},
		{"combined standard bias exceeds max", Zone{Bias: 1440, StandardBias: 1}, false},
		{"combined bias exceeds negative max", Zone{Bias: -1440, DaylightBias: -60}, false},
		{"negative biases cancel", Zone{Bias: 1440, DaylightBias: -60}, true},
	}
	for _, c := range cases {
		if got := c.zone.BiasesValid(); got != c.want {
			t.Errorf("%s: BiasesValid = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestZoneValid(t *testing.T) {
	std := Transition{Month: time.November, Day: 1, Weekday: time.Sunday, Hour: 2}
	dst := Transition{Month: time.March, Day: 2, Weekday: time.Sunday, Hour: 2}

	zone := Zone{Bias: 300, DaylightBias: -60, StandardDate: std, DaylightDate: dst}
	if !zone.Valid(false) {
		t.Errorf("Valid(%+v) = false, want true", zone)
	}

	ignored := Zone{Bias: 300}
	if ignored.Valid(false) {
		t.Errorf("Valid without allowIgnoredDates = true, want false")
	}
	if !ignored.Valid(true) {
		t.Errorf("Valid with allowIgnoredDates = false, want true")
	}

	badBias := zone
	badBias.Bias = MaxBias + 1
	if badBias.Valid(true) {
		t.Errorf("Valid with invalid biases = true, want false")
	}

	badDate := zone
	badDate.StandardDate = Transition{Month: time.November, Day: 6, Weekday: time.Sunday}
	if badDate.Valid(true) {
		t.Errorf("Valid with invalid transition = true, want false")
	}
}

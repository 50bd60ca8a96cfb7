// Command tzwhen converts a UTC time to local time under a zone rule
// given on the command line and prints which bias applied.
//
// Example, US Eastern:
//
//	tzwhen -bias 300 -dstbias -60 -std 11,1,0,02:00 -dst 3,2,0,02:00 -utc 2013-07-01T12:00:00
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ngrash/go-civiltz/civil"
	"github.com/ngrash/go-civiltz/tzrule"
	"github.com/ngrash/go-civiltz/tzresolve"
)

var (
	utcFlag     = flag.String("utc", "", "UTC time to convert as YYYY-MM-DDThh:mm:ss (default: now)")
	biasFlag    = flag.Int("bias", 0, "base bias in minutes (UTC = local + bias)")
	stdBiasFlag = flag.Int("stdbias", 0, "additional bias during standard time")
	dstBiasFlag = flag.Int("dstbias", -60, "additional bias during daylight time")
	stdFlag     = flag.String("std", "", "start of standard time as month,occurrence,weekday,hh:mm (empty: no transition)")
	dstFlag     = flag.String("dst", "", "start of daylight time as month,occurrence,weekday,hh:mm (empty: no transition)")
)

func main() {
	flag.Parse()

	utc, err := parseUTC(*utcFlag)
	if err != nil {
		fmt.Println("parsing -utc:", err)
		os.Exit(1)
	}
	std, err := parseTransition(*stdFlag)
	if err != nil {
		fmt.Println("parsing -std:", err)
		os.Exit(1)
	}
	dst, err := parseTransition(*dstFlag)
	if err != nil {
		fmt.Println("parsing -dst:", err)
		os.Exit(1)
	}

	zone := tzrule.Zone{
		Bias:         int32(*biasFlag),
		StandardBias: int32(*stdBiasFlag),
		DaylightBias: int32(*dstBiasFlag),
		StandardDate: std,
		DaylightDate: dst,
	}

	r := tzresolve.Resolver{Provider: tzresolve.Fixed(zone)}
	res, err := r.UTCToLocal(utc)
	if err != nil {
		fmt.Println("converting:", err)
		os.Exit(1)
	}

	fmt.Println("utc   =", format(res.UTC))
	fmt.Println("local =", format(res.Local))
	fmt.Println("zone  =", res.ID)
	fmt.Println("year  =", res.Year)
}

func parseUTC(s string) (civil.DateTime, error) {
	if s == "" {
		now := time.Now().UTC()
		return civil.DateTime{
			Year:        now.Year(),
			Month:       now.Month(),
			Day:         now.Day(),
			Hour:        now.Hour(),
			Minute:      now.Minute(),
			Second:      now.Second(),
			Millisecond: now.Nanosecond() / int(time.Millisecond),
		}.Normalize(), nil
	}
	var year, month, day, hh, mm, ss int
	if _, err := fmt.Sscanf(s, "%d-%d-%dT%d:%d:%d", &year, &month, &day, &hh, &mm, &ss); err != nil {
		return civil.DateTime{}, err
	}
	dt := civil.DateTime{
		Year:   year,
		Month:  time.Month(month),
		Day:    day,
		Hour:   hh,
		Minute: mm,
		Second: ss,
	}
	if !dt.ValidIgnoreWeekday() {
		return civil.DateTime{}, fmt.Errorf("invalid time: %q", s)
	}
	return dt.Normalize(), nil
}

func parseTransition(s string) (tzrule.Transition, error) {
	if s == "" {
		return tzrule.Transition{}, nil // ignored transition
	}
	var month, occurrence, weekday, hh, mm int
	if _, err := fmt.Sscanf(s, "%d,%d,%d,%d:%d", &month, &occurrence, &weekday, &hh, &mm); err != nil {
		return tzrule.Transition{}, err
	}
	t := tzrule.Transition{
		Month:   time.Month(month),
		Day:     occurrence,
		Weekday: time.Weekday(weekday),
		Hour:    hh,
		Minute:  mm,
	}
	if !t.ValidRelative() {
		return tzrule.Transition{}, fmt.Errorf("invalid transition rule: %q", s)
	}
	return t, nil
}

func format(dt civil.DateTime) string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d.%03d (%s)",
		dt.Year, dt.Month, dt.Day, dt.Hour, dt.Minute, dt.Second, dt.Millisecond, dt.Weekday)
}

// Package duedate converts between local-zone date strings and absolute
// UTC instants. Entry and edit use the fixed "YYYY-MM-DD HH:mm" format;
// the zone is supplied out-of-band from session state.
package duedate

import (
	"errors"
	"fmt"
	"time"
)

const (
	entryLayout   = "2006-01-02 15:04"
	displayLayout = "2006-01-02 15:04:05"
)

// ErrInvalidDate reports input that does not denote a real local time in
// the requested zone.
var ErrInvalidDate = errors.New("invalid date")

// ToAbsolute parses a "YYYY-MM-DD HH:mm" string authored in zone and
// returns the instant in UTC. Malformed strings, unknown zones and local
// times that do not exist (the DST spring-forward gap) are rejected
// rather than coerced to a nearby instant.
func ToAbsolute(local, zone string) (time.Time, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: unknown timezone %q", ErrInvalidDate, zone)
	}

	t, err := time.ParseInLocation(entryLayout, local, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: expected format YYYY-MM-DD HH:mm", ErrInvalidDate)
	}

	// ParseInLocation normalizes wall times inside a DST gap instead of
	// failing; a round-trip that changes the text means the requested
	// local time never existed. The same check rejects unpadded fields.
	if t.Format(entryLayout) != local {
		return time.Time{}, fmt.Errorf("%w: %q does not exist in %s", ErrInvalidDate, local, zone)
	}

	return t.UTC(), nil
}

// ToLocalString formats an instant for editing in the given zone, minutes
// precision, matching the entry format.
func ToLocalString(t time.Time, zone string) string {
	return t.In(locationOrUTC(zone)).Format(entryLayout)
}

// ToDisplayString formats an instant for read-only rows, with seconds.
func ToDisplayString(t time.Time, zone string) string {
	return t.In(locationOrUTC(zone)).Format(displayLayout)
}

// RelativeDescription produces a time-remaining or time-elapsed phrase
// such as "in 3 hours" or "2 days ago" relative to now. Callers pass a
// fresh time.Now() on every render; nothing here is cached.
func RelativeDescription(t, now time.Time) string {
	d := t.Sub(now)
	elapsed := d < 0
	if elapsed {
		d = -d
	}

	var phrase string
	switch {
	case d < time.Minute:
		phrase = "moments"
	case d < time.Hour:
		phrase = plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		phrase = plural(int(d.Hours()), "hour")
	default:
		phrase = plural(int(d.Hours()/24), "day")
	}

	if elapsed {
		return phrase + " ago"
	}
	return "in " + phrase
}

func locationOrUTC(zone string) *time.Location {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

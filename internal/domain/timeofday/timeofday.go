// Package timeofday converts user input and the current instant into the
// canonical "HH:MM" form used to store and match reminders. All values live in
// one fixed zone; there is no date component.
package timeofday

import (
	"fmt"
	"regexp"
	"time"

	appErrors "remindme/internal/pkg/errors"
)

// Layout is the canonical time-of-day layout.
const Layout = "15:04"

const minutesPerDay = 24 * 60

// DefaultZone is the zone used when none is configured (WITA, UTC+8, no DST).
const DefaultZone = "Asia/Makassar"

var pattern = regexp.MustCompile(`^\d{2}:\d{2}$`)

// Resolver resolves wall-clock times in a single fixed zone.
type Resolver struct {
	loc *time.Location
	now func() time.Time
}

// NewResolver returns a Resolver for loc using the system clock.
func NewResolver(loc *time.Location) *Resolver {
	return NewResolverWithClock(loc, time.Now)
}

// NewResolverWithClock returns a Resolver reading the current instant from now.
func NewResolverWithClock(loc *time.Location, now func() time.Time) *Resolver {
	if loc == nil {
		loc = time.UTC
	}
	return &Resolver{loc: loc, now: now}
}

// LoadLocation resolves a zone name. When the tz database has no entry for
// DefaultZone a fixed UTC+8 zone is used instead.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultZone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		if name == DefaultZone {
			return time.FixedZone("WITA", 8*60*60), nil
		}
		return nil, fmt.Errorf("unknown timezone %q: %w", name, err)
	}
	return loc, nil
}

// Location returns the resolver's zone.
func (r *Resolver) Location() *time.Location {
	return r.loc
}

// ZoneName returns the abbreviation of the zone at the current instant, e.g. "WITA".
func (r *Resolver) ZoneName() string {
	name, _ := r.Instant().Zone()
	return name
}

// Normalize validates raw as "HH:MM" in the resolver's zone and returns it in
// canonical zero-padded form.
func (r *Resolver) Normalize(raw string) (string, error) {
	if !pattern.MatchString(raw) {
		return "", fmt.Errorf("%w: %q", appErrors.ErrInvalidTimeFormat, raw)
	}
	t, err := time.ParseInLocation(Layout, raw, r.loc)
	if err != nil {
		return "", fmt.Errorf("%w: %q", appErrors.ErrInvalidTimeFormat, raw)
	}
	return t.Format(Layout), nil
}

// Instant returns the current instant in the resolver's zone.
func (r *Resolver) Instant() time.Time {
	return r.now().In(r.loc)
}

// NowAsTimeOfDay returns the current wall-clock minute as "HH:MM".
func (r *Resolver) NowAsTimeOfDay() string {
	return r.Minute(r.now())
}

// Minute formats t as "HH:MM" in the resolver's zone, dropping seconds.
func (r *Resolver) Minute(t time.Time) string {
	return t.In(r.loc).Format(Layout)
}

// Advance adds hours to a time of day, wrapping at midnight. Only the time of
// day is tracked, so Advance(t, h) == Advance(t, h%24).
func Advance(t string, hours int) (string, error) {
	if hours < 0 {
		return "", fmt.Errorf("cannot advance %q by negative hours %d", t, hours)
	}
	if !pattern.MatchString(t) {
		return "", fmt.Errorf("%w: %q", appErrors.ErrInvalidTimeFormat, t)
	}
	parsed, err := time.Parse(Layout, t)
	if err != nil {
		return "", fmt.Errorf("%w: %q", appErrors.ErrInvalidTimeFormat, t)
	}

	minutes := parsed.Hour()*60 + parsed.Minute()
	minutes = (minutes + (hours%24)*60) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60), nil
}

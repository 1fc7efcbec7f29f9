package gate

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is a point on a 24-hour clock in the gate's timezone.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses an "HH:MM" string. The whole string must be
// consumed: trailing garbage and extra fields are rejected.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return TimeOfDay{}, fmt.Errorf("time of day %q: want HH:MM", s)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("parse time of day %q: %w", s, err)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("parse time of day %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("time of day %q out of range", s)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

func (t TimeOfDay) totalMinutes() int { return t.Hour*60 + t.Minute }

// Gate decides whether an already-detected signal may be surfaced as a
// notification. Upstream evaluation runs far more often than users should be
// interrupted; the gate concentrates the throttling policy in one place.
type Gate struct {
	windows       []TimeOfDay
	windowMinutes int
	loc           *time.Location
}

// New creates a Gate that allows notifications for windowMinutes after each
// scheduled time, interpreted in loc.
func New(windows []TimeOfDay, windowMinutes int, loc *time.Location) *Gate {
	return &Gate{windows: windows, windowMinutes: windowMinutes, loc: loc}
}

// ShouldNotify reports whether a notification is allowed at now.
//
// The weekend block is checked first and is never bypassed by force: an
// expedited run must still honor market-closed days. Force then skips the
// time-window check only. The window's upper edge is inclusive
// (scheduled+windowMinutes still passes).
func (g *Gate) ShouldNotify(now time.Time, force bool) bool {
	local := now.In(g.loc)

	wd := local.Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return false
	}

	if force {
		return true
	}

	current := local.Hour()*60 + local.Minute()
	for _, w := range g.windows {
		start := w.totalMinutes()
		if current >= start && current <= start+g.windowMinutes {
			return true
		}
	}
	return false
}

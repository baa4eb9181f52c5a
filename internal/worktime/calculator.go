package worktime

import (
	"math"
	"time"
)

// Interval is a clock-in/clock-out pair in local wall-clock time.
type Interval struct {
	Begin time.Time
	End   time.Time
}

// LaborMinutes returns the billable minutes of the interval.
func (iv Interval) LaborMinutes() int {
	return ComputeLaborMinutes(iv.Begin, iv.End)
}

// ComputeLaborMinutes converts a raw clock-in/clock-out interval into
// billable man-time minutes by removing the overlap with the fixed daily
// rest periods of begin's calendar day.
//
// Absent (zero) bounds and intervals with end <= begin yield 0. The result is
// never negative.
func ComputeLaborMinutes(begin, end time.Time) int {
	if !validInterval(begin, end) {
		return 0
	}

	raw := roundMinutes(end.Sub(begin))

	// Work logged entirely inside the lunch hour keeps its full duration.
	if inLunch(begin, end) {
		return raw
	}

	rests := RestPeriodsFor(begin)
	if _, ok := containingRest(rests, begin, end); ok {
		return 0
	}

	var restMin int
	for _, p := range rests {
		restMin += OverlapMinutes(begin, end, p.Start, p.End)
	}

	labor := raw - restMin
	if labor < 0 {
		return 0
	}
	return labor
}

func validInterval(begin, end time.Time) bool {
	return !begin.IsZero() && !end.IsZero() && end.After(begin)
}

func inLunch(begin, end time.Time) bool {
	lunchStart, lunchEnd := lunchWindow(begin)
	return !begin.Before(lunchStart) && !end.After(lunchEnd)
}

// containingRest returns the first period that holds all of [begin, end].
func containingRest(rests []RestPeriod, begin, end time.Time) (RestPeriod, bool) {
	for _, p := range rests {
		if p.Contains(begin, end) {
			return p, true
		}
	}
	return RestPeriod{}, false
}

// ComputeLaborMinutesMillis is ComputeLaborMinutes for millisecond epoch
// values as posted by the mobile forms. Zero means "not set".
func ComputeLaborMinutesMillis(beginMs, endMs int64) int {
	return ComputeLaborMinutes(FromMillis(beginMs), FromMillis(endMs))
}

// FromMillis converts a millisecond epoch value into local time. Zero maps to
// the zero time.
func FromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).Local()
}

// OverlapMinutes returns the overlap of [aStart, aEnd] and [bStart, bEnd] in
// whole minutes, rounded to nearest. Disjoint intervals give 0.
func OverlapMinutes(aStart, aEnd, bStart, bEnd time.Time) int {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if !end.After(start) {
		return 0
	}
	m := roundMinutes(end.Sub(start))
	if m < 0 {
		return 0
	}
	return m
}

// roundMinutes rounds half away from zero, matching the mobile client.
func roundMinutes(d time.Duration) int {
	return int(math.Round(d.Minutes()))
}

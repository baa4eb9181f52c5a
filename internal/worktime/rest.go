package worktime

import "time"

// Rest period names.
const (
	RestLunch   = "lunch"
	RestEvening = "evening"
	RestNight   = "night"
)

// RestPeriod is a window during which time does not count as labor.
// Start is always before End.
type RestPeriod struct {
	Name  string
	Start time.Time
	End   time.Time
}

// Minutes returns the length of the period.
func (p RestPeriod) Minutes() int {
	return roundMinutes(p.End.Sub(p.Start))
}

// Contains reports whether [begin, end] lies entirely inside the period,
// bounds inclusive.
func (p RestPeriod) Contains(begin, end time.Time) bool {
	return !begin.Before(p.Start) && !end.After(p.End)
}

// RestPeriodsFor returns the lunch, evening and night-shift rest windows for
// the calendar day of begin, in begin's location.
//
// The night window normally runs from 23:30 on begin's day to 00:30 on the
// next day. When begin is exactly 00:00:00 it is the break that precedes the
// shift instead: 23:30 on the previous day to 00:30 on begin's day.
func RestPeriodsFor(begin time.Time) []RestPeriod {
	lunchStart, lunchEnd := lunchWindow(begin)

	var night RestPeriod
	if isMidnight(begin) {
		night = RestPeriod{
			Name:  RestNight,
			Start: at(begin, -1, 23, 30),
			End:   at(begin, 0, 0, 30),
		}
	} else {
		night = RestPeriod{
			Name:  RestNight,
			Start: at(begin, 0, 23, 30),
			End:   at(begin, 1, 0, 30),
		}
	}

	return []RestPeriod{
		{Name: RestLunch, Start: lunchStart, End: lunchEnd},
		{Name: RestEvening, Start: at(begin, 0, 17, 30), End: at(begin, 0, 18, 0)},
		night,
	}
}

func lunchWindow(begin time.Time) (time.Time, time.Time) {
	return at(begin, 0, 12, 0), at(begin, 0, 13, 30)
}

// isMidnight ignores sub-second precision.
func isMidnight(t time.Time) bool {
	return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0
}

// at returns hour:min:00 on ref's calendar day shifted by dayOffset days.
func at(ref time.Time, dayOffset, hour, min int) time.Time {
	y, m, d := ref.Date()
	return time.Date(y, m, d+dayOffset, hour, min, 0, 0, ref.Location())
}

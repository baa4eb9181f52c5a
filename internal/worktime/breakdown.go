package worktime

import "time"

// Breakdown explains how a labor figure was reached. It is what the calc
// command prints; ComputeLaborMinutes stays the source of truth.
type Breakdown struct {
	RawMin    int
	LaborMin  int
	LunchOnly bool
	// Contained names the rest period that swallowed the whole interval.
	Contained string
	Overlaps  []PeriodOverlap
}

// PeriodOverlap is the overlap of the interval with one rest period.
type PeriodOverlap struct {
	Period     RestPeriod
	OverlapMin int
}

// Explain returns the breakdown for [begin, end].
func Explain(begin, end time.Time) Breakdown {
	b := Breakdown{LaborMin: ComputeLaborMinutes(begin, end)}
	if !validInterval(begin, end) {
		return b
	}
	b.RawMin = roundMinutes(end.Sub(begin))

	if inLunch(begin, end) {
		b.LunchOnly = true
		return b
	}

	rests := RestPeriodsFor(begin)
	if p, ok := containingRest(rests, begin, end); ok {
		b.Contained = p.Name
	}
	for _, p := range rests {
		b.Overlaps = append(b.Overlaps, PeriodOverlap{
			Period:     p,
			OverlapMin: OverlapMinutes(begin, end, p.Start, p.End),
		})
	}
	return b
}

// RestMin is the total rest overlap.
func (b Breakdown) RestMin() int {
	var total int
	for _, o := range b.Overlaps {
		total += o.OverlapMin
	}
	return total
}

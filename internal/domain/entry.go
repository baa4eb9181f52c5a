package domain

import (
	"fmt"
	"time"

	"github.com/alexanderramin/shopfloor/internal/worktime"
)

// WorkTimeEntry is one man-time record captured on the shop floor. It is
// kept locally until the backend accepts it.
type WorkTimeEntry struct {
	ID     string
	Kind   EntryKind
	Status EntryStatus

	// Process context
	CraftCode   string
	CraftName   string
	MachineCode string
	MouldCode   string
	PartCode    string
	OrderType   string
	OrderID     string
	PlineCode   string
	Operator    string

	// Clock
	BeginAt  time.Time
	EndAt    time.Time
	LaborMin int

	Note        string
	Attempts    int
	LastError   string
	SubmittedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Recompute derives LaborMin from the clock interval.
func (e *WorkTimeEntry) Recompute() {
	e.LaborMin = worktime.ComputeLaborMinutes(e.BeginAt, e.EndAt)
}

// Validate checks the fields every backend form requires. A zero labor figure
// is valid; an inverted or missing interval is not.
func (e *WorkTimeEntry) Validate() error {
	if !ValidEntryKinds[string(e.Kind)] {
		return fmt.Errorf("invalid entry kind %q", e.Kind)
	}
	if e.BeginAt.IsZero() || e.EndAt.IsZero() {
		return fmt.Errorf("begin and end time are required")
	}
	if !e.EndAt.After(e.BeginAt) {
		return fmt.Errorf("end time %s must be after begin time %s",
			worktime.FormatDateTime(e.EndAt, ""), worktime.FormatDateTime(e.BeginAt, ""))
	}
	if e.CraftCode == "" {
		return fmt.Errorf("craft is required")
	}
	if e.Kind == KindQiandiao && e.OrderID == "" {
		return fmt.Errorf("qiandiao feedback requires an order")
	}
	return nil
}

// Submittable reports whether the entry still needs to reach the backend.
func (e *WorkTimeEntry) Submittable() bool {
	return e.Status == EntryPending || e.Status == EntryFailed
}

// MarkSubmitted records a successful submission.
func (e *WorkTimeEntry) MarkSubmitted(now time.Time) error {
	if e.Status == EntrySubmitted {
		return fmt.Errorf("entry %s already submitted", e.ID)
	}
	e.Status = EntrySubmitted
	e.Attempts++
	e.LastError = ""
	e.SubmittedAt = &now
	e.UpdatedAt = now
	return nil
}

// MarkFailed records a rejected submission so it can be retried.
func (e *WorkTimeEntry) MarkFailed(cause error, now time.Time) {
	e.Status = EntryFailed
	e.Attempts++
	if cause != nil {
		e.LastError = cause.Error()
	}
	e.UpdatedAt = now
}

// Day returns the calendar day of BeginAt as YYYY-MM-DD.
func (e *WorkTimeEntry) Day() string {
	return worktime.FormatDateTime(e.BeginAt, "YYYY-MM-DD")
}

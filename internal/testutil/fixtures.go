package testutil

import (
	"time"

	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/google/uuid"
)

// Zone is the fixed shop-floor zone used by fixtures.
var Zone = time.FixedZone("CST", 8*3600)

// At returns 2025-03-10 plus dayOffset days at h:m in Zone.
func At(dayOffset, h, m int) time.Time {
	return time.Date(2025, 3, 10+dayOffset, h, m, 0, 0, Zone)
}

// Entry options
type EntryOption func(*domain.WorkTimeEntry)

func WithKind(k domain.EntryKind) EntryOption {
	return func(e *domain.WorkTimeEntry) {
		e.Kind = k
	}
}

func WithStatus(s domain.EntryStatus) EntryOption {
	return func(e *domain.WorkTimeEntry) {
		e.Status = s
	}
}

// WithInterval sets the clock and recomputes labor minutes.
func WithInterval(begin, end time.Time) EntryOption {
	return func(e *domain.WorkTimeEntry) {
		e.BeginAt = begin
		e.EndAt = end
		e.Recompute()
	}
}

func WithCraft(code, name string) EntryOption {
	return func(e *domain.WorkTimeEntry) {
		e.CraftCode = code
		e.CraftName = name
	}
}

func WithOrder(orderType, orderID string) EntryOption {
	return func(e *domain.WorkTimeEntry) {
		e.OrderType = orderType
		e.OrderID = orderID
	}
}

func WithMachine(code string) EntryOption {
	return func(e *domain.WorkTimeEntry) {
		e.MachineCode = code
	}
}

func WithMould(mould, part string) EntryOption {
	return func(e *domain.WorkTimeEntry) {
		e.MouldCode = mould
		e.PartCode = part
	}
}

func WithNote(note string) EntryOption {
	return func(e *domain.WorkTimeEntry) {
		e.Note = note
	}
}

// NewTestEntry returns a valid pending auxiliary entry for 08:00-11:00 on the
// fixture day (180 labor minutes).
func NewTestEntry(opts ...EntryOption) *domain.WorkTimeEntry {
	now := time.Now().UTC().Truncate(time.Second)
	e := &domain.WorkTimeEntry{
		ID:        uuid.New().String(),
		Kind:      domain.KindAuxiliary,
		Status:    domain.EntryPending,
		CraftCode: "C01",
		CraftName: "Grinding",
		PlineCode: "PL1",
		Operator:  "tester",
		BeginAt:   At(0, 8, 0),
		EndAt:     At(0, 11, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}
	e.Recompute()
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Quality report options
type ReportOption func(*domain.QualityReport)

func WithReportStatus(s domain.ReportStatus) ReportOption {
	return func(r *domain.QualityReport) {
		r.Status = s
	}
}

func WithImages(paths ...string) ReportOption {
	return func(r *domain.QualityReport) {
		r.Images = paths
	}
}

// NewTestReport returns a draft report that passes Validate.
func NewTestReport(orderNo string, opts ...ReportOption) *domain.QualityReport {
	now := time.Now().UTC().Truncate(time.Second)
	r := &domain.QualityReport{
		ID:          uuid.New().String(),
		OrderNo:     orderNo,
		MouldCode:   "M-100",
		ReasonCode:  "R1",
		DeptID:      "103",
		Description: "flash on parting line",
		Status:      domain.ReportDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

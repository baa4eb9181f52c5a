package domain

import (
	"fmt"
	"time"
)

// QualityReport is a quality-exception ("快反") report raised against a mould.
type QualityReport struct {
	ID              string
	OrderNo         string
	MouldCode       string
	ReasonCode      string
	DeptID          string
	NeedTechSupport bool
	Description     string
	Images          []string
	Remedy          string
	Status          ReportStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// GenerateOrderNo builds an exception order number: "YC", the day as
// yyyymmdd, then a four-digit daily sequence.
func GenerateOrderNo(day time.Time, seq int) string {
	return fmt.Sprintf("YC%s%04d", day.Format("20060102"), seq)
}

// Validate checks the fields required before a report can be submitted.
func (r *QualityReport) Validate() error {
	if r.OrderNo == "" {
		return fmt.Errorf("order number is required")
	}
	if r.MouldCode == "" {
		return fmt.Errorf("mould is required")
	}
	if r.ReasonCode == "" {
		return fmt.Errorf("reason is required")
	}
	if r.DeptID == "" {
		return fmt.Errorf("responsible department is required")
	}
	if r.Description == "" {
		return fmt.Errorf("description is required")
	}
	return nil
}

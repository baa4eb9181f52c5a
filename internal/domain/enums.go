package domain

// EntryKind identifies which backend form an entry is reported through.
type EntryKind string

const (
	// KindAuxiliary is auxiliary man-time (saveMesOtherBackList).
	KindAuxiliary EntryKind = "auxiliary"
	// KindWorkPiece is work-piece man-time (workPieceTimeFeedback).
	KindWorkPiece EntryKind = "workpiece"
	// KindQiandiao is tooling-change feedback against a parts order.
	KindQiandiao EntryKind = "qiandiao"
)

// ValidEntryKinds is the canonical set of accepted entry kind strings.
var ValidEntryKinds = map[string]bool{
	"auxiliary": true, "workpiece": true, "qiandiao": true,
}

type EntryStatus string

const (
	EntryPending   EntryStatus = "pending"
	EntrySubmitted EntryStatus = "submitted"
	EntryFailed    EntryStatus = "failed"
)

type ReportStatus string

const (
	ReportDraft     ReportStatus = "draft"
	ReportSubmitted ReportStatus = "submitted"
)

// Shift-change flag values used by the wait-assign order query.
const (
	ShiftChangeNo  = "0"
	ShiftChangeYes = "1"
)

package mes

import (
	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/alexanderramin/shopfloor/internal/worktime"
)

// wireTimePattern is how begin/end times travel to the backend.
const wireTimePattern = "YYYY-MM-DD HH:mm:ss"

// BackRecord is one man-time feedback row as the unitBack endpoints
// expect it.
type BackRecord struct {
	ID             string `json:"id,omitempty"`
	CraftCode      string `json:"craftCode"`
	CraftName      string `json:"craftName,omitempty"`
	MachineCode    string `json:"machineCode,omitempty"`
	MouldCode      string `json:"moldCode,omitempty"`
	ImportPartCode string `json:"importPartCode,omitempty"`
	OrderType      string `json:"orderType,omitempty"`
	PlineCode      string `json:"plineCode,omitempty"`
	Operator       string `json:"operatorUserName,omitempty"`
	BeginDate      string `json:"beginDate"`
	EndDate        string `json:"endDate"`
	ActManTime     int    `json:"actManTime"`
	Remark         string `json:"remark,omitempty"`
}

// NewBackRecord converts a local entry. For qiandiao entries ID carries the
// parts order id.
func NewBackRecord(e *domain.WorkTimeEntry) BackRecord {
	rec := BackRecord{
		CraftCode:      e.CraftCode,
		CraftName:      e.CraftName,
		MachineCode:    e.MachineCode,
		MouldCode:      e.MouldCode,
		ImportPartCode: e.PartCode,
		OrderType:      e.OrderType,
		PlineCode:      e.PlineCode,
		Operator:       e.Operator,
		BeginDate:      worktime.FormatDateTime(e.BeginAt, wireTimePattern),
		EndDate:        worktime.FormatDateTime(e.EndAt, wireTimePattern),
		ActManTime:     e.LaborMin,
		Remark:         e.Note,
	}
	if e.Kind == domain.KindQiandiao {
		rec.ID = e.OrderID
	}
	return rec
}

// QualityPayload is the body of POST /quality/submit.
type QualityPayload struct {
	OrderNo         string   `json:"orderNo"`
	MoldCode        string   `json:"moldCode"`
	ReasonCode      string   `json:"reason"`
	DeptID          string   `json:"responsibleDept"`
	NeedTechSupport bool     `json:"needTechSupport"`
	Description     string   `json:"description"`
	Images          []string `json:"images"`
	Remedy          string   `json:"remedy,omitempty"`
}

func NewQualityPayload(r *domain.QualityReport) QualityPayload {
	images := r.Images
	if images == nil {
		images = []string{}
	}
	return QualityPayload{
		OrderNo:         r.OrderNo,
		MoldCode:        r.MouldCode,
		ReasonCode:      r.ReasonCode,
		DeptID:          r.DeptID,
		NeedTechSupport: r.NeedTechSupport,
		Description:     r.Description,
		Images:          images,
		Remedy:          r.Remedy,
	}
}

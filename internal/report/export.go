// Package report exports recorded man-time to an Excel workbook.
package report

import (
	"io"
	"sort"

	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/alexanderramin/shopfloor/internal/worktime"
)

// Sheet names.
const (
	EntriesSheet = "Entries"
	DailySheet   = "Daily"
)

var entryColumns = []string{
	"Day", "Kind", "Status", "Craft", "Machine", "Mould", "Part", "Order",
	"Begin", "End", "Labor (min)", "Note",
}

var dailyColumns = []string{"Day", "Kind", "Entries", "Labor (min)", "Labor (h)"}

// DayTotal is the labor of one kind on one day.
type DayTotal struct {
	Day      string
	Kind     domain.EntryKind
	Entries  int
	LaborMin int
}

// DailyTotals groups entries by day and kind, ordered by day then kind.
func DailyTotals(entries []*domain.WorkTimeEntry) []DayTotal {
	type key struct {
		day  string
		kind domain.EntryKind
	}
	sums := make(map[key]*DayTotal)
	for _, e := range entries {
		k := key{day: e.Day(), kind: e.Kind}
		t, ok := sums[k]
		if !ok {
			t = &DayTotal{Day: k.day, Kind: k.kind}
			sums[k] = t
		}
		t.Entries++
		t.LaborMin += e.LaborMin
	}

	out := make([]DayTotal, 0, len(sums))
	for _, t := range sums {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Day != out[j].Day {
			return out[i].Day < out[j].Day
		}
		return out[i].Kind < out[j].Kind
	})
	return out
}

// WriteEntries writes an xlsx workbook with one row per entry and a daily
// summary sheet.
func WriteEntries(w io.Writer, entries []*domain.WorkTimeEntry) error {
	sw := newSheetWriter()
	defer sw.close()

	if err := sw.addSheet(EntriesSheet); err != nil {
		return err
	}
	if err := sw.writeHeader(entryColumns); err != nil {
		return err
	}
	for _, e := range entries {
		row := []any{
			e.Day(),
			string(e.Kind),
			string(e.Status),
			domain.CodeNameText(e.CraftCode, e.CraftName),
			e.MachineCode,
			e.MouldCode,
			e.PartCode,
			e.OrderID,
			worktime.FormatDateTime(e.BeginAt, ""),
			worktime.FormatDateTime(e.EndAt, ""),
			e.LaborMin,
			e.Note,
		}
		if err := sw.writeRow(row); err != nil {
			return err
		}
	}

	if err := sw.addSheet(DailySheet); err != nil {
		return err
	}
	if err := sw.writeHeader(dailyColumns); err != nil {
		return err
	}
	for _, t := range DailyTotals(entries) {
		hours := float64(t.LaborMin) / 60
		if err := sw.writeRow([]any{t.Day, string(t.Kind), t.Entries, t.LaborMin, hours}); err != nil {
			return err
		}
	}

	return sw.save(w)
}

package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/alexanderramin/shopfloor/internal/repository"
	"github.com/alexanderramin/shopfloor/internal/worktime"
)

// FormatBreakdown renders the labor figure for an interval and, with rests
// set, the overlap with each rest period.
func FormatBreakdown(b worktime.Breakdown, rests bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %d min (%s)\n", Bold("Labor:"), b.LaborMin, FormatMinutes(b.LaborMin))
	fmt.Fprintf(&sb, "%s %d min\n", Dim("Elapsed:"), b.RawMin)
	if rest := b.RestMin(); rest > 0 && !b.LunchOnly {
		fmt.Fprintf(&sb, "%s %d min\n", Dim("Rest:"), rest)
	}

	switch {
	case b.LunchOnly:
		sb.WriteString(StyleYellow.Render("Inside the lunch window: elapsed time counts in full.") + "\n")
	case b.Contained != "":
		sb.WriteString(StyleRed.Render(fmt.Sprintf("Inside the %s break: no labor time.", b.Contained)) + "\n")
	}

	if !rests || len(b.Overlaps) == 0 {
		return sb.String()
	}

	sb.WriteString("\n")
	rows := make([][]string, 0, len(b.Overlaps))
	for _, o := range b.Overlaps {
		rows = append(rows, []string{
			o.Period.Name,
			worktime.FormatDateTime(o.Period.Start, ""),
			worktime.FormatDateTime(o.Period.End, ""),
			fmt.Sprintf("%d", o.OverlapMin),
		})
	}
	sb.WriteString(Table{
		Headers: []string{"REST", "FROM", "TO", "OVERLAP (MIN)"},
		Rows:    rows,
		Right:   []int{3},
	}.Render())
	return sb.String()
}

// FormatSummary renders per-day labor totals followed by a grand total.
func FormatSummary(rows []repository.DailyLabor) string {
	if len(rows) == 0 {
		return "No entries in range.\n"
	}
	table := make([][]string, 0, len(rows))
	var total int
	for _, r := range rows {
		total += r.LaborMin
		table = append(table, []string{
			r.Day,
			string(r.Kind),
			fmt.Sprintf("%d", r.Entries),
			FormatMinutes(r.LaborMin),
		})
	}
	out := Table{
		Headers: []string{"DAY", "KIND", "ENTRIES", "LABOR"},
		Rows:    table,
		Right:   []int{2, 3},
	}.Render()
	return out + fmt.Sprintf("\n%s %s\n", Bold("Total:"), FormatMinutes(total))
}

// EntryActivity is when the entry last moved: its submission time once sent,
// otherwise when it was recorded.
func EntryActivity(e *domain.WorkTimeEntry, now time.Time) string {
	if e.SubmittedAt != nil {
		return "sent " + HumanTimestampFrom(*e.SubmittedAt, now)
	}
	return HumanTimestampFrom(e.CreatedAt, now)
}

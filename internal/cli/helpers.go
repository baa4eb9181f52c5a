package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/alexanderramin/shopfloor/internal/repository"
	"github.com/alexanderramin/shopfloor/internal/worktime"
)

// parseClock reads a --begin/--end value. A bare "HH:mm" is taken on the
// day of now.
func parseClock(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation("15:04", s, now.Location()); err == nil {
		y, m, d := now.Date()
		return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, now.Location()), nil
	}
	return worktime.ParseDateTime(s, now.Location())
}

// parseInterval parses both ends of an interval. A bare HH:mm end is taken
// on begin's day, or the day after when it would fall before begin.
func parseInterval(begin, end string, now time.Time) (time.Time, time.Time, error) {
	b, err := parseClock(begin, now)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("--begin: %w", err)
	}
	e, err := parseClock(end, now)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("--end: %w", err)
	}
	if isBareClock(end) {
		y, m, d := b.Date()
		e = time.Date(y, m, d, e.Hour(), e.Minute(), 0, 0, b.Location())
		if e.Before(b) {
			e = e.AddDate(0, 0, 1)
		}
	}
	return b, e, nil
}

func isBareClock(s string) bool {
	_, err := time.Parse("15:04", strings.TrimSpace(s))
	return err == nil
}

// parseDay parses YYYY-MM-DD at local midnight of now's zone.
func parseDay(s string, now time.Time) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", s)
	}
	return t, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func parseKind(s string) (domain.EntryKind, error) {
	if !domain.ValidEntryKinds[s] {
		return "", fmt.Errorf("invalid kind %q: use auxiliary, workpiece or qiandiao", s)
	}
	return domain.EntryKind(s), nil
}

// resolveEntryID accepts a full entry ID or a unique prefix of one.
func resolveEntryID(ctx context.Context, app *App, input string) (string, error) {
	if _, err := app.WorkTime.GetByID(ctx, input); err == nil {
		return input, nil
	}
	entries, err := app.WorkTime.List(ctx, repository.EntryFilter{})
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	return matchPrefix("entry", input, ids)
}

// resolveReportID accepts a report ID, a unique ID prefix or an order number.
func resolveReportID(ctx context.Context, app *App, input string) (string, error) {
	reports, err := app.Quality.List(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(reports))
	for _, r := range reports {
		if r.ID == input || r.OrderNo == input {
			return r.ID, nil
		}
		ids = append(ids, r.ID)
	}
	return matchPrefix("report", input, ids)
}

func matchPrefix(what, input string, ids []string) (string, error) {
	var match string
	for _, id := range ids {
		if !strings.HasPrefix(id, input) {
			continue
		}
		if match != "" {
			return "", fmt.Errorf("%s prefix %q is ambiguous", what, input)
		}
		match = id
	}
	if match == "" || input == "" {
		return "", fmt.Errorf("%s %q not found", what, input)
	}
	return match, nil
}

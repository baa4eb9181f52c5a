package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/shopfloor/internal/db"
	"github.com/alexanderramin/shopfloor/internal/domain"
)

// entryColumns is the canonical SELECT column list for worktime_entries.
const entryColumns = `id, kind, status, craft_code, craft_name, machine_code, mould_code,
		part_code, order_type, order_id, pline_code, operator, begin_at, end_at,
		labor_min, note, attempts, last_error, submitted_at, created_at, updated_at`

// SQLiteEntryRepo implements EntryRepo using a SQLite database.
type SQLiteEntryRepo struct {
	db db.DBTX
}

// NewSQLiteEntryRepo creates a new SQLiteEntryRepo.
func NewSQLiteEntryRepo(conn db.DBTX) *SQLiteEntryRepo {
	return &SQLiteEntryRepo{db: conn}
}

func (r *SQLiteEntryRepo) Create(ctx context.Context, e *domain.WorkTimeEntry) error {
	query := `INSERT INTO worktime_entries (` + entryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		string(e.Kind),
		string(e.Status),
		e.CraftCode,
		e.CraftName,
		e.MachineCode,
		e.MouldCode,
		e.PartCode,
		e.OrderType,
		e.OrderID,
		e.PlineCode,
		e.Operator,
		e.BeginAt.Format(time.RFC3339),
		e.EndAt.Format(time.RFC3339),
		e.LaborMin,
		e.Note,
		e.Attempts,
		e.LastError,
		nullableTimeToString(e.SubmittedAt, time.RFC3339),
		e.CreatedAt.Format(time.RFC3339),
		e.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting worktime entry: %w", err)
	}
	return nil
}

func (r *SQLiteEntryRepo) GetByID(ctx context.Context, id string) (*domain.WorkTimeEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM worktime_entries WHERE id = ?`
	return r.scanEntry(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteEntryRepo) List(ctx context.Context, f EntryFilter) ([]*domain.WorkTimeEntry, error) {
	var where []string
	var args []any
	if f.Kind != "" {
		where = append(where, "kind = ?")
		args = append(args, string(f.Kind))
	}
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(f.Status))
	}
	if !f.Since.IsZero() {
		where = append(where, "julianday(begin_at) >= julianday(?)")
		args = append(args, f.Since.Format(time.RFC3339))
	}
	if !f.Until.IsZero() {
		where = append(where, "julianday(begin_at) < julianday(?)")
		args = append(args, f.Until.Format(time.RFC3339))
	}

	query := `SELECT ` + entryColumns + ` FROM worktime_entries`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY julianday(begin_at) DESC, created_at DESC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing worktime entries: %w", err)
	}
	defer rows.Close()
	return r.scanEntries(rows)
}

// ListSubmittable returns pending and failed entries of a kind, oldest first.
func (r *SQLiteEntryRepo) ListSubmittable(ctx context.Context, kind domain.EntryKind) ([]*domain.WorkTimeEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM worktime_entries
		WHERE kind = ? AND status IN ('pending','failed')
		ORDER BY julianday(begin_at), created_at`
	rows, err := r.db.QueryContext(ctx, query, string(kind))
	if err != nil {
		return nil, fmt.Errorf("listing submittable entries: %w", err)
	}
	defer rows.Close()
	return r.scanEntries(rows)
}

// SumByDay totals labor minutes per calendar day (of begin_at) and kind.
// begin_at keeps the offset it was recorded with, so the day is the local
// one while the bound is compared as an instant.
func (r *SQLiteEntryRepo) SumByDay(ctx context.Context, since time.Time) ([]DailyLabor, error) {
	query := `SELECT substr(begin_at, 1, 10) AS day, kind, COUNT(*), COALESCE(SUM(labor_min), 0)
		FROM worktime_entries
		WHERE julianday(begin_at) >= julianday(?)
		GROUP BY day, kind
		ORDER BY day, kind`
	rows, err := r.db.QueryContext(ctx, query, since.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("summing labor by day: %w", err)
	}
	defer rows.Close()

	var out []DailyLabor
	for rows.Next() {
		var d DailyLabor
		var kind string
		if err := rows.Scan(&d.Day, &kind, &d.Entries, &d.LaborMin); err != nil {
			return nil, fmt.Errorf("scanning daily labor row: %w", err)
		}
		d.Kind = domain.EntryKind(kind)
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating daily labor: %w", err)
	}
	return out, nil
}

func (r *SQLiteEntryRepo) Update(ctx context.Context, e *domain.WorkTimeEntry) error {
	query := `UPDATE worktime_entries SET kind = ?, status = ?, craft_code = ?, craft_name = ?,
		machine_code = ?, mould_code = ?, part_code = ?, order_type = ?, order_id = ?,
		pline_code = ?, operator = ?, begin_at = ?, end_at = ?, labor_min = ?, note = ?,
		attempts = ?, last_error = ?, submitted_at = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		string(e.Kind),
		string(e.Status),
		e.CraftCode,
		e.CraftName,
		e.MachineCode,
		e.MouldCode,
		e.PartCode,
		e.OrderType,
		e.OrderID,
		e.PlineCode,
		e.Operator,
		e.BeginAt.Format(time.RFC3339),
		e.EndAt.Format(time.RFC3339),
		e.LaborMin,
		e.Note,
		e.Attempts,
		e.LastError,
		nullableTimeToString(e.SubmittedAt, time.RFC3339),
		e.UpdatedAt.Format(time.RFC3339),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating worktime entry: %w", err)
	}
	return requireAffected(res, "worktime entry")
}

func (r *SQLiteEntryRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM worktime_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting worktime entry: %w", err)
	}
	return requireAffected(res, "worktime entry")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteEntryRepo) scanEntry(row *sql.Row) (*domain.WorkTimeEntry, error) {
	e, err := r.scanInto(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("worktime entry: %w", ErrNotFound)
		}
		return nil, err
	}
	return e, nil
}

func (r *SQLiteEntryRepo) scanEntries(rows *sql.Rows) ([]*domain.WorkTimeEntry, error) {
	var entries []*domain.WorkTimeEntry
	for rows.Next() {
		e, err := r.scanInto(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating worktime entries: %w", err)
	}
	return entries, nil
}

func (r *SQLiteEntryRepo) scanInto(s rowScanner) (*domain.WorkTimeEntry, error) {
	var e domain.WorkTimeEntry
	var kind, status, beginStr, endStr, createdStr, updatedStr string
	var submitted sql.NullString

	err := s.Scan(
		&e.ID, &kind, &status, &e.CraftCode, &e.CraftName, &e.MachineCode, &e.MouldCode,
		&e.PartCode, &e.OrderType, &e.OrderID, &e.PlineCode, &e.Operator, &beginStr, &endStr,
		&e.LaborMin, &e.Note, &e.Attempts, &e.LastError, &submitted, &createdStr, &updatedStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning worktime entry: %w", err)
	}

	e.Kind = domain.EntryKind(kind)
	e.Status = domain.EntryStatus(status)
	e.SubmittedAt = parseNullableTime(submitted, time.RFC3339)

	var parseErr error
	if e.BeginAt, parseErr = time.Parse(time.RFC3339, beginStr); parseErr != nil {
		return nil, fmt.Errorf("parsing begin_at: %w", parseErr)
	}
	if e.EndAt, parseErr = time.Parse(time.RFC3339, endStr); parseErr != nil {
		return nil, fmt.Errorf("parsing end_at: %w", parseErr)
	}
	if e.CreatedAt, parseErr = time.Parse(time.RFC3339, createdStr); parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	if e.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedStr); parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &e, nil
}

// requireAffected turns a zero-row UPDATE or DELETE into ErrNotFound.
func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}

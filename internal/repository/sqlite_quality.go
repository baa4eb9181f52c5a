package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/shopfloor/internal/db"
	"github.com/alexanderramin/shopfloor/internal/domain"
)

const qualityColumns = `id, order_no, mould_code, reason_code, dept_id, need_tech_support,
		description, images, remedy, status, created_at, updated_at`

// SQLiteQualityRepo implements QualityRepo using a SQLite database.
type SQLiteQualityRepo struct {
	db db.DBTX
}

// NewSQLiteQualityRepo creates a new SQLiteQualityRepo.
func NewSQLiteQualityRepo(conn db.DBTX) *SQLiteQualityRepo {
	return &SQLiteQualityRepo{db: conn}
}

func (r *SQLiteQualityRepo) Create(ctx context.Context, q *domain.QualityReport) error {
	query := `INSERT INTO quality_reports (` + qualityColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		q.ID,
		q.OrderNo,
		q.MouldCode,
		q.ReasonCode,
		q.DeptID,
		boolToInt(q.NeedTechSupport),
		q.Description,
		encodeStrings(q.Images),
		q.Remedy,
		string(q.Status),
		q.CreatedAt.Format(time.RFC3339),
		q.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting quality report: %w", err)
	}
	return nil
}

func (r *SQLiteQualityRepo) GetByID(ctx context.Context, id string) (*domain.QualityReport, error) {
	query := `SELECT ` + qualityColumns + ` FROM quality_reports WHERE id = ?`
	q, err := r.scanInto(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("quality report: %w", ErrNotFound)
	}
	return q, err
}

func (r *SQLiteQualityRepo) List(ctx context.Context) ([]*domain.QualityReport, error) {
	query := `SELECT ` + qualityColumns + ` FROM quality_reports ORDER BY created_at DESC, order_no DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing quality reports: %w", err)
	}
	defer rows.Close()

	var reports []*domain.QualityReport
	for rows.Next() {
		q, err := r.scanInto(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating quality reports: %w", err)
	}
	return reports, nil
}

func (r *SQLiteQualityRepo) Update(ctx context.Context, q *domain.QualityReport) error {
	query := `UPDATE quality_reports SET mould_code = ?, reason_code = ?, dept_id = ?,
		need_tech_support = ?, description = ?, images = ?, remedy = ?, status = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		q.MouldCode,
		q.ReasonCode,
		q.DeptID,
		boolToInt(q.NeedTechSupport),
		q.Description,
		encodeStrings(q.Images),
		q.Remedy,
		string(q.Status),
		q.UpdatedAt.Format(time.RFC3339),
		q.ID,
	)
	if err != nil {
		return fmt.Errorf("updating quality report: %w", err)
	}
	return requireAffected(res, "quality report")
}

// NextSequence allocates the next order-number sequence for a day
// (YYYYMMDD). The first call for a day returns 1.
func (r *SQLiteQualityRepo) NextSequence(ctx context.Context, day string) (int, error) {
	seedQuery := `INSERT OR IGNORE INTO report_sequences (day, next_seq) VALUES (?, 1)`
	if _, err := r.db.ExecContext(ctx, seedQuery, day); err != nil {
		return 0, fmt.Errorf("seeding report sequence for %s: %w", day, err)
	}

	var next int
	allocQuery := `UPDATE report_sequences
		SET next_seq = next_seq + 1
		WHERE day = ?
		RETURNING next_seq - 1`
	if err := r.db.QueryRowContext(ctx, allocQuery, day).Scan(&next); err != nil {
		return 0, fmt.Errorf("allocating report sequence for %s: %w", day, err)
	}
	return next, nil
}

func (r *SQLiteQualityRepo) scanInto(s rowScanner) (*domain.QualityReport, error) {
	var q domain.QualityReport
	var needTech int
	var images, status, createdStr, updatedStr string

	err := s.Scan(&q.ID, &q.OrderNo, &q.MouldCode, &q.ReasonCode, &q.DeptID, &needTech,
		&q.Description, &images, &q.Remedy, &status, &createdStr, &updatedStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning quality report: %w", err)
	}

	q.NeedTechSupport = intToBool(needTech)
	q.Images = decodeStrings(images)
	q.Status = domain.ReportStatus(status)
	q.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
	q.UpdatedAt, _ = time.Parse(time.RFC3339, updatedStr)
	return &q, nil
}

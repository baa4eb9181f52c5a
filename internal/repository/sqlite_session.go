package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/shopfloor/internal/db"
	"github.com/alexanderramin/shopfloor/internal/domain"
)

// SQLiteSessionRepo implements SessionRepo over the single-row
// session_state table.
type SQLiteSessionRepo struct {
	db db.DBTX
}

// NewSQLiteSessionRepo creates a new SQLiteSessionRepo.
func NewSQLiteSessionRepo(conn db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: conn}
}

func (r *SQLiteSessionRepo) Get(ctx context.Context) (*domain.Session, error) {
	query := `SELECT token, username, encrypted_password, remember_me
		FROM session_state WHERE id = 'default'`
	var s domain.Session
	var remember int
	err := r.db.QueryRowContext(ctx, query).Scan(&s.Token, &s.Username, &s.EncryptedPassword, &remember)
	if err != nil {
		return nil, fmt.Errorf("reading session state: %w", err)
	}
	s.RememberMe = intToBool(remember)
	return &s, nil
}

func (r *SQLiteSessionRepo) SaveToken(ctx context.Context, token string) error {
	return r.exec(ctx, "saving token",
		`UPDATE session_state SET token = ?, updated_at = ? WHERE id = 'default'`, token, nowUTC())
}

func (r *SQLiteSessionRepo) ClearToken(ctx context.Context) error {
	return r.exec(ctx, "clearing token",
		`UPDATE session_state SET token = '', updated_at = ? WHERE id = 'default'`, nowUTC())
}

// SaveRemembered stores the username and the RSA-encrypted password and sets
// the remember-me flag.
func (r *SQLiteSessionRepo) SaveRemembered(ctx context.Context, username, encryptedPassword string) error {
	return r.exec(ctx, "saving remembered login",
		`UPDATE session_state SET username = ?, encrypted_password = ?, remember_me = 1, updated_at = ?
		WHERE id = 'default'`, username, encryptedPassword, nowUTC())
}

func (r *SQLiteSessionRepo) ClearRemembered(ctx context.Context) error {
	return r.exec(ctx, "clearing remembered login",
		`UPDATE session_state SET username = '', encrypted_password = '', remember_me = 0, updated_at = ?
		WHERE id = 'default'`, nowUTC())
}

func (r *SQLiteSessionRepo) ClearAll(ctx context.Context) error {
	return r.exec(ctx, "clearing session",
		`UPDATE session_state SET token = '', username = '', encrypted_password = '', remember_me = 0,
		updated_at = ? WHERE id = 'default'`, nowUTC())
}

func (r *SQLiteSessionRepo) exec(ctx context.Context, what, query string, args ...any) error {
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	return nil
}

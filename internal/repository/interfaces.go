package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/shopfloor/internal/domain"
)

// ErrNotFound is returned when a lookup by ID matches no row.
var ErrNotFound = errors.New("not found")

// EntryFilter narrows EntryRepo.List. Zero values match everything.
type EntryFilter struct {
	Kind   domain.EntryKind
	Status domain.EntryStatus
	Since  time.Time
	Until  time.Time
	Limit  int
}

// DailyLabor is the labor total of one kind on one calendar day.
type DailyLabor struct {
	Day      string
	Kind     domain.EntryKind
	Entries  int
	LaborMin int
}

type EntryRepo interface {
	Create(ctx context.Context, e *domain.WorkTimeEntry) error
	GetByID(ctx context.Context, id string) (*domain.WorkTimeEntry, error)
	List(ctx context.Context, f EntryFilter) ([]*domain.WorkTimeEntry, error)
	ListSubmittable(ctx context.Context, kind domain.EntryKind) ([]*domain.WorkTimeEntry, error)
	SumByDay(ctx context.Context, since time.Time) ([]DailyLabor, error)
	Update(ctx context.Context, e *domain.WorkTimeEntry) error
	Delete(ctx context.Context, id string) error
}

type QualityRepo interface {
	Create(ctx context.Context, r *domain.QualityReport) error
	GetByID(ctx context.Context, id string) (*domain.QualityReport, error)
	List(ctx context.Context) ([]*domain.QualityReport, error)
	Update(ctx context.Context, r *domain.QualityReport) error
	NextSequence(ctx context.Context, day string) (int, error)
}

type SessionRepo interface {
	Get(ctx context.Context) (*domain.Session, error)
	SaveToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
	SaveRemembered(ctx context.Context, username, encryptedPassword string) error
	ClearRemembered(ctx context.Context) error
	ClearAll(ctx context.Context) error
}

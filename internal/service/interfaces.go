package service

import (
	"context"
	"io"
	"time"

	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/alexanderramin/shopfloor/internal/mes"
	"github.com/alexanderramin/shopfloor/internal/repository"
	"github.com/alexanderramin/shopfloor/internal/worktime"
)

type AuthService interface {
	Login(ctx context.Context, username, password string, remember bool) (*domain.UserInfo, error)
	LoginRemembered(ctx context.Context) (*domain.UserInfo, error)
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) (*domain.UserInfo, error)
	RememberedLogin(ctx context.Context) (*domain.RememberedLogin, error)
}

type WorkTimeService interface {
	Compute(ctx context.Context, begin, end time.Time) worktime.Breakdown
	Record(ctx context.Context, e *domain.WorkTimeEntry) error
	GetByID(ctx context.Context, id string) (*domain.WorkTimeEntry, error)
	List(ctx context.Context, f repository.EntryFilter) ([]*domain.WorkTimeEntry, error)
	Delete(ctx context.Context, id string) error
	SubmitPending(ctx context.Context, kind domain.EntryKind) (*SubmitResult, error)
}

// SubmitResult summarises one batch submission.
type SubmitResult struct {
	Kind      domain.EntryKind
	Submitted int
	Failed    int
	LaborMin  int
	Entries   []*domain.WorkTimeEntry
}

type QiandiaoService interface {
	CurrentUser(ctx context.Context) (*domain.QianTiaoUser, error)
	Orders(ctx context.Context, q domain.OrderQuery) (*domain.OrderPage, error)
	Order(ctx context.Context, id string) (*domain.QiandiaoOrder, error)
	Submit(ctx context.Context, orderID string, e *domain.WorkTimeEntry) (*domain.WorkTimeEntry, error)
}

type QualityService interface {
	NewReport(ctx context.Context, r *domain.QualityReport) (*domain.QualityReport, error)
	GetByID(ctx context.Context, id string) (*domain.QualityReport, error)
	List(ctx context.Context) ([]*domain.QualityReport, error)
	Submit(ctx context.Context, id string) (*domain.QualityReport, error)
}

// CraftQuery selects the craft list: by big type, by production line, or
// the full list when both are empty.
type CraftQuery struct {
	BigType   string
	PlineCode string
}

type LookupService interface {
	Crafts(ctx context.Context, q CraftQuery) ([]domain.Option, error)
	Machines(ctx context.Context) ([]domain.Option, error)
	Moulds(ctx context.Context, q mes.MouldQuery) ([]domain.Option, error)
	Parts(ctx context.Context, mouldCode string) ([]domain.Option, error)
	Dicts(ctx context.Context, dictType string) ([]domain.Option, error)
}

type ReportService interface {
	Summary(ctx context.Context, since time.Time) ([]repository.DailyLabor, error)
	Export(ctx context.Context, w io.Writer, f repository.EntryFilter) (int, error)
}

package service

import (
	"context"
	"io"
	"time"

	"github.com/alexanderramin/shopfloor/internal/db"
	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/alexanderramin/shopfloor/internal/report"
	"github.com/alexanderramin/shopfloor/internal/repository"
)

type reportService struct {
	entries  repository.EntryRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewReportService(entries repository.EntryRepo, uow db.UnitOfWork, observers ...UseCaseObserver) ReportService {
	return &reportService{entries: entries, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

// Summary totals labor minutes per day and kind for entries beginning at or
// after since.
func (s *reportService) Summary(ctx context.Context, since time.Time) ([]repository.DailyLabor, error) {
	return s.entries.SumByDay(ctx, since)
}

// Export writes the entries matching f as an xlsx workbook and returns how
// many were written.
func (s *reportService) Export(ctx context.Context, w io.Writer, f repository.EntryFilter) (n int, err error) {
	defer observe(ctx, s.observer, "export", time.Now(), nil, &err)

	var entries []*domain.WorkTimeEntry
	err = s.uow.WithinReadTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		entries, err = repository.NewSQLiteEntryRepo(tx).List(ctx, f)
		return err
	})
	if err != nil {
		return 0, err
	}
	if err := report.WriteEntries(w, entries); err != nil {
		return 0, err
	}
	return len(entries), nil
}

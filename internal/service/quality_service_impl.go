package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/shopfloor/internal/db"
	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/alexanderramin/shopfloor/internal/mes"
	"github.com/alexanderramin/shopfloor/internal/metrics"
	"github.com/alexanderramin/shopfloor/internal/repository"
)

const qualityKind = "quality"

type qualityService struct {
	reports  repository.QualityRepo
	sessions repository.SessionRepo
	client   mes.Client
	uow      db.UnitOfWork
	now      func() time.Time
	observer UseCaseObserver
}

func NewQualityService(
	reports repository.QualityRepo,
	sessions repository.SessionRepo,
	client mes.Client,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) QualityService {
	return &qualityService{
		reports:  reports,
		sessions: sessions,
		client:   client,
		uow:      uow,
		now:      time.Now,
		observer: useCaseObserverOrNoop(observers),
	}
}

// NewReport assigns the next order number of the day and stores r as a
// draft. The sequence and the insert share a transaction so a rejected
// report does not use up a number.
func (s *qualityService) NewReport(ctx context.Context, r *domain.QualityReport) (_ *domain.QualityReport, err error) {
	defer observe(ctx, s.observer, "quality-new", time.Now(), nil, &err)

	now := s.now()
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	r.Status = domain.ReportDraft
	r.CreatedAt = now.UTC()
	r.UpdatedAt = now.UTC()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txReports := repository.NewSQLiteQualityRepo(tx)
		seq, err := txReports.NextSequence(ctx, now.Format("2006-01-02"))
		if err != nil {
			return err
		}
		r.OrderNo = domain.GenerateOrderNo(now, seq)
		if err := r.Validate(); err != nil {
			return err
		}
		return txReports.Create(ctx, r)
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *qualityService) GetByID(ctx context.Context, id string) (*domain.QualityReport, error) {
	return s.reports.GetByID(ctx, id)
}

func (s *qualityService) List(ctx context.Context) ([]*domain.QualityReport, error) {
	return s.reports.List(ctx)
}

func (s *qualityService) Submit(ctx context.Context, id string) (_ *domain.QualityReport, err error) {
	defer observe(ctx, s.observer, "quality-submit", time.Now(), map[string]any{"report_id": id}, &err)

	if err := requireToken(ctx, s.sessions); err != nil {
		return nil, err
	}
	r, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status == domain.ReportSubmitted {
		return nil, fmt.Errorf("report %s already submitted", r.OrderNo)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := s.client.SubmitQualityReport(ctx, mes.NewQualityPayload(r)); err != nil {
		metrics.AddSubmissions(qualityKind, string(domain.EntryFailed), 1)
		return nil, fmt.Errorf("submitting report %s: %w", r.OrderNo, err)
	}

	r.Status = domain.ReportSubmitted
	r.UpdatedAt = s.now().UTC()
	if err := s.reports.Update(ctx, r); err != nil {
		return nil, err
	}
	metrics.AddSubmissions(qualityKind, string(domain.EntrySubmitted), 1)
	return r, nil
}

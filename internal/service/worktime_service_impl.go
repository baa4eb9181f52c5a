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
	"github.com/alexanderramin/shopfloor/internal/worktime"
)

type workTimeService struct {
	entries  repository.EntryRepo
	sessions repository.SessionRepo
	client   mes.Client
	uow      db.UnitOfWork
	throttle *throttle
	observer UseCaseObserver
}

func NewWorkTimeService(
	entries repository.EntryRepo,
	sessions repository.SessionRepo,
	client mes.Client,
	uow db.UnitOfWork,
	throttleWindow time.Duration,
	observers ...UseCaseObserver,
) WorkTimeService {
	return &workTimeService{
		entries:  entries,
		sessions: sessions,
		client:   client,
		uow:      uow,
		throttle: newThrottle(throttleWindow),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *workTimeService) Compute(_ context.Context, begin, end time.Time) worktime.Breakdown {
	b := worktime.Explain(begin, end)
	metrics.ObserveLabor(b.LaborMin)
	return b
}

// Record computes the labor minutes and stores the entry as pending.
func (s *workTimeService) Record(ctx context.Context, e *domain.WorkTimeEntry) (err error) {
	defer observe(ctx, s.observer, "record-entry", time.Now(), map[string]any{"kind": string(e.Kind)}, &err)

	if err := prepareEntry(e); err != nil {
		return err
	}
	if err := s.entries.Create(ctx, e); err != nil {
		return err
	}
	metrics.IncEntryRecorded(string(e.Kind))
	metrics.ObserveLabor(e.LaborMin)
	return nil
}

// prepareEntry fills ID, status and timestamps, recomputes the labor
// minutes and validates.
func prepareEntry(e *domain.WorkTimeEntry) error {
	if e.BeginAt.IsZero() || e.EndAt.IsZero() || !e.EndAt.After(e.BeginAt) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidInterval,
			worktime.FormatDateTime(e.BeginAt, ""), worktime.FormatDateTime(e.EndAt, ""))
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Status == "" {
		e.Status = domain.EntryPending
	}
	e.Recompute()
	if err := e.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	return nil
}

func (s *workTimeService) GetByID(ctx context.Context, id string) (*domain.WorkTimeEntry, error) {
	return s.entries.GetByID(ctx, id)
}

func (s *workTimeService) List(ctx context.Context, f repository.EntryFilter) ([]*domain.WorkTimeEntry, error) {
	return s.entries.List(ctx, f)
}

// Delete removes an entry that has not reached the backend yet.
func (s *workTimeService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-entry", time.Now(), nil, &err)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEntries := repository.NewSQLiteEntryRepo(tx)
		e, err := txEntries.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if e.Status == domain.EntrySubmitted {
			return fmt.Errorf("entry %s was already submitted and cannot be removed", id)
		}
		return txEntries.Delete(ctx, id)
	})
}

// SubmitPending posts every pending or failed entry of kind in one batch.
// Qiandiao entries are posted one by one since that endpoint takes a single
// record. Entries are marked submitted on success and failed otherwise.
func (s *workTimeService) SubmitPending(ctx context.Context, kind domain.EntryKind) (res *SubmitResult, err error) {
	fields := map[string]any{"kind": string(kind)}
	defer observe(ctx, s.observer, "submit-pending", time.Now(), fields, &err)

	if !domain.ValidEntryKinds[string(kind)] {
		return nil, fmt.Errorf("invalid entry kind %q", kind)
	}
	if !s.throttle.allow() {
		return nil, ErrThrottled
	}
	if err := requireToken(ctx, s.sessions); err != nil {
		return nil, err
	}

	pending, err := s.entries.ListSubmittable(ctx, kind)
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		return nil, ErrEmptyBatch
	}
	fields["entries"] = len(pending)

	outcomes := s.post(ctx, kind, pending)
	if err := s.markAll(ctx, pending, outcomes); err != nil {
		return nil, err
	}

	res = &SubmitResult{Kind: kind, Entries: pending}
	var firstErr error
	for i, e := range pending {
		if outcomes[i] != nil {
			res.Failed++
			if firstErr == nil {
				firstErr = outcomes[i]
			}
			continue
		}
		res.Submitted++
		res.LaborMin += e.LaborMin
	}
	metrics.AddSubmissions(string(kind), string(domain.EntrySubmitted), res.Submitted)
	metrics.AddSubmissions(string(kind), string(domain.EntryFailed), res.Failed)
	fields["failed"] = res.Failed

	if firstErr != nil {
		return res, fmt.Errorf("%d of %d %s entries failed: %w", res.Failed, len(pending), kind, firstErr)
	}
	return res, nil
}

// post returns one outcome per entry.
func (s *workTimeService) post(ctx context.Context, kind domain.EntryKind, entries []*domain.WorkTimeEntry) []error {
	recs := make([]mes.BackRecord, 0, len(entries))
	for _, e := range entries {
		recs = append(recs, mes.NewBackRecord(e))
	}
	outcomes := make([]error, len(entries))

	var batchErr error
	switch kind {
	case domain.KindAuxiliary:
		batchErr = s.client.SaveOtherBackList(ctx, recs)
	case domain.KindWorkPiece:
		batchErr = s.client.WorkPieceTimeFeedback(ctx, recs)
	default:
		for i, rec := range recs {
			outcomes[i] = s.client.SubmitQiandiaoFeedback(ctx, rec)
		}
		return outcomes
	}
	for i := range outcomes {
		outcomes[i] = batchErr
	}
	return outcomes
}

// markAll records the outcomes on the entries in a single transaction.
func (s *workTimeService) markAll(ctx context.Context, entries []*domain.WorkTimeEntry, outcomes []error) error {
	now := time.Now().UTC()
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEntries := repository.NewSQLiteEntryRepo(tx)
		for i, e := range entries {
			if err := markOutcome(e, outcomes[i], now); err != nil {
				return err
			}
			if err := txEntries.Update(ctx, e); err != nil {
				return err
			}
		}
		return nil
	})
}

func markOutcome(e *domain.WorkTimeEntry, postErr error, now time.Time) error {
	if postErr != nil {
		e.MarkFailed(postErr, now)
		return nil
	}
	return e.MarkSubmitted(now)
}

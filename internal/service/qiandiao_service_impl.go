package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/shopfloor/internal/db"
	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/alexanderramin/shopfloor/internal/mes"
	"github.com/alexanderramin/shopfloor/internal/metrics"
	"github.com/alexanderramin/shopfloor/internal/repository"
)

const defaultOrderPageSize = 10

type qiandiaoService struct {
	sessions repository.SessionRepo
	client   mes.Client
	uow      db.UnitOfWork
	throttle *throttle
	observer UseCaseObserver
}

func NewQiandiaoService(
	sessions repository.SessionRepo,
	client mes.Client,
	uow db.UnitOfWork,
	throttleWindow time.Duration,
	observers ...UseCaseObserver,
) QiandiaoService {
	return &qiandiaoService{
		sessions: sessions,
		client:   client,
		uow:      uow,
		throttle: newThrottle(throttleWindow),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *qiandiaoService) CurrentUser(ctx context.Context) (*domain.QianTiaoUser, error) {
	if err := requireToken(ctx, s.sessions); err != nil {
		return nil, err
	}
	return s.client.QianTiaoUserInfo(ctx)
}

func (s *qiandiaoService) Orders(ctx context.Context, q domain.OrderQuery) (page *domain.OrderPage, err error) {
	defer observe(ctx, s.observer, "qiandiao-orders", time.Now(), nil, &err)

	if err := requireToken(ctx, s.sessions); err != nil {
		return nil, err
	}
	if q.PageNum < 1 {
		q.PageNum = 1
	}
	if q.PageSize < 1 {
		q.PageSize = defaultOrderPageSize
	}
	return s.client.WaitAssignOrders(ctx, q)
}

func (s *qiandiaoService) Order(ctx context.Context, id string) (*domain.QiandiaoOrder, error) {
	if err := requireToken(ctx, s.sessions); err != nil {
		return nil, err
	}
	return s.client.WaitAssignOrder(ctx, id)
}

// Submit completes e from the order, stores it, posts the feedback and
// records the outcome. The stored entry is returned even when the post
// fails so it can be retried with SubmitPending.
func (s *qiandiaoService) Submit(ctx context.Context, orderID string, e *domain.WorkTimeEntry) (_ *domain.WorkTimeEntry, err error) {
	defer observe(ctx, s.observer, "qiandiao-submit", time.Now(), map[string]any{"order_id": orderID}, &err)

	if !s.throttle.allow() {
		return nil, ErrThrottled
	}
	if err := requireToken(ctx, s.sessions); err != nil {
		return nil, err
	}
	order, err := s.client.WaitAssignOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("loading order %s: %w", orderID, err)
	}
	applyOrder(e, order)
	if err := prepareEntry(e); err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteEntryRepo(tx).Create(ctx, e)
	})
	if err != nil {
		return nil, err
	}
	metrics.IncEntryRecorded(string(e.Kind))
	metrics.ObserveLabor(e.LaborMin)

	postErr := s.client.SubmitQiandiaoFeedback(ctx, mes.NewBackRecord(e))
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := markOutcome(e, postErr, time.Now().UTC()); err != nil {
			return err
		}
		return repository.NewSQLiteEntryRepo(tx).Update(ctx, e)
	})
	if err != nil {
		return nil, err
	}

	metrics.AddSubmissions(string(e.Kind), string(e.Status), 1)
	if postErr != nil {
		return e, fmt.Errorf("submitting feedback for order %s: %w", orderID, postErr)
	}
	return e, nil
}

// applyOrder copies the order's process context into the entry where the
// caller left it blank.
func applyOrder(e *domain.WorkTimeEntry, o *domain.QiandiaoOrder) {
	e.Kind = domain.KindQiandiao
	e.OrderID = o.ID
	e.CraftCode = domain.CoalesceStr(e.CraftCode, o.CraftCode)
	e.CraftName = domain.CoalesceStr(e.CraftName, o.CraftName)
	e.MouldCode = domain.CoalesceStr(e.MouldCode, o.MoldCode)
	e.PartCode = domain.CoalesceStr(e.PartCode, o.ImportPartCode)
	e.PlineCode = domain.CoalesceStr(e.PlineCode, o.PlineCode)
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/alexanderramin/shopfloor/internal/repository"
	"github.com/alexanderramin/shopfloor/internal/testutil"
)

func newQiandiaoFixture(t *testing.T) (*serviceFixture, QiandiaoService) {
	t.Helper()
	fx := newServiceFixture(t).loggedIn(t)
	fx.mes.orders["O-7"] = &domain.QiandiaoOrder{
		ID:             "O-7",
		MoldCode:       "M-100",
		ImportPartCode: "P-1",
		CraftCode:      "QT01",
		CraftName:      "Fitting",
		PlineCode:      "PL2",
	}
	return fx, NewQiandiaoService(fx.sessions, fx.mes, testutil.NewTestUoW(fx.db), 0)
}

func TestQiandiaoSubmit_FillsFromOrderAndMarksSubmitted(t *testing.T) {
	fx, svc := newQiandiaoFixture(t)
	ctx := context.Background()

	e := &domain.WorkTimeEntry{
		Operator: "zhang",
		BeginAt:  testutil.At(0, 11, 30),
		EndAt:    testutil.At(0, 14, 0),
	}
	got, err := svc.Submit(ctx, "O-7", e)
	require.NoError(t, err)
	assert.Equal(t, domain.KindQiandiao, got.Kind)
	assert.Equal(t, "QT01", got.CraftCode)
	assert.Equal(t, "M-100", got.MouldCode)
	assert.Equal(t, "P-1", got.PartCode)
	assert.Equal(t, 60, got.LaborMin)
	assert.Equal(t, domain.EntrySubmitted, got.Status)

	require.Len(t, fx.mes.qiandiao, 1)
	rec := fx.mes.qiandiao[0]
	assert.Equal(t, "O-7", rec.ID)
	assert.Equal(t, 60, rec.ActManTime)
	assert.Equal(t, "PL2", rec.PlineCode)

	stored, err := fx.entries.GetByID(ctx, got.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EntrySubmitted, stored.Status)
}

func TestQiandiaoSubmit_CallerFieldsWin(t *testing.T) {
	_, svc := newQiandiaoFixture(t)

	e := testutil.NewTestEntry(testutil.WithCraft("QT09", "Polishing"))
	e.ID = ""
	got, err := svc.Submit(context.Background(), "O-7", e)
	require.NoError(t, err)
	assert.Equal(t, "QT09", got.CraftCode)
	assert.Equal(t, "O-7", got.OrderID)
}

func TestQiandiaoSubmit_PostFailureKeepsEntry(t *testing.T) {
	fx, svc := newQiandiaoFixture(t)
	ctx := context.Background()
	fx.mes.qiandiaoErrs["O-7"] = errBoom

	e := &domain.WorkTimeEntry{BeginAt: testutil.At(0, 8, 0), EndAt: testutil.At(0, 9, 0)}
	got, err := svc.Submit(ctx, "O-7", e)
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
	require.NotNil(t, got)

	stored, err := fx.entries.GetByID(ctx, got.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EntryFailed, stored.Status)
	assert.Equal(t, "boom", stored.LastError)
}

func TestQiandiaoSubmit_UnknownOrderStoresNothing(t *testing.T) {
	fx, svc := newQiandiaoFixture(t)
	ctx := context.Background()

	e := &domain.WorkTimeEntry{BeginAt: testutil.At(0, 8, 0), EndAt: testutil.At(0, 9, 0)}
	_, err := svc.Submit(ctx, "O-404", e)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order not found")

	all, err := fx.entries.List(ctx, repository.EntryFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestQiandiaoSubmit_InvalidIntervalStoresNothing(t *testing.T) {
	fx, svc := newQiandiaoFixture(t)
	ctx := context.Background()

	e := &domain.WorkTimeEntry{BeginAt: testutil.At(0, 9, 0), EndAt: testutil.At(0, 8, 0)}
	_, err := svc.Submit(ctx, "O-7", e)
	assert.ErrorIs(t, err, ErrInvalidInterval)
	assert.Empty(t, fx.mes.qiandiao)
}

func TestQiandiaoOrders_DefaultsPaging(t *testing.T) {
	fx, svc := newQiandiaoFixture(t)

	page, err := svc.Orders(context.Background(), domain.OrderQuery{MoldCode: "M-100"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)

	require.Len(t, fx.mes.orderQueries, 1)
	q := fx.mes.orderQueries[0]
	assert.Equal(t, 1, q.PageNum)
	assert.Equal(t, defaultOrderPageSize, q.PageSize)
	assert.Equal(t, "M-100", q.MoldCode)
}

func TestQiandiao_RequiresLogin(t *testing.T) {
	fx := newServiceFixture(t)
	svc := NewQiandiaoService(fx.sessions, fx.mes, testutil.NewTestUoW(fx.db), 0)
	ctx := context.Background()

	_, err := svc.Orders(ctx, domain.OrderQuery{})
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	_, err = svc.CurrentUser(ctx)
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	_, err = svc.Submit(ctx, "O-7", &domain.WorkTimeEntry{})
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestQiandiaoCurrentUser(t *testing.T) {
	_, svc := newQiandiaoFixture(t)
	u, err := svc.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Mould Shop-Line 1-Zhang", u.Label())
}

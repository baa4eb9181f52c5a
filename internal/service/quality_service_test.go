package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/alexanderramin/shopfloor/internal/testutil"
)

func newQualitySvc(fx *serviceFixture, now time.Time) QualityService {
	svc := NewQualityService(fx.reports, fx.sessions, fx.mes, testutil.NewTestUoW(fx.db))
	svc.(*qualityService).now = func() time.Time { return now }
	return svc
}

func draftReport() *domain.QualityReport {
	return &domain.QualityReport{
		MouldCode:       "M-100",
		ReasonCode:      "R1",
		DeptID:          "103",
		NeedTechSupport: true,
		Description:     "crack near gate",
		Images:          []string{"https://img.example/1.jpg"},
	}
}

func TestNewReport_NumbersPerDay(t *testing.T) {
	fx := newServiceFixture(t)
	ctx := context.Background()
	day1 := time.Date(2025, 3, 10, 9, 0, 0, 0, testutil.Zone)

	svc := newQualitySvc(fx, day1)
	r1, err := svc.NewReport(ctx, draftReport())
	require.NoError(t, err)
	r2, err := svc.NewReport(ctx, draftReport())
	require.NoError(t, err)
	assert.Equal(t, "YC202503100001", r1.OrderNo)
	assert.Equal(t, "YC202503100002", r2.OrderNo)
	assert.Equal(t, domain.ReportDraft, r1.Status)

	r3, err := newQualitySvc(fx, day1.AddDate(0, 0, 1)).NewReport(ctx, draftReport())
	require.NoError(t, err)
	assert.Equal(t, "YC202503110001", r3.OrderNo)
}

func TestNewReport_RejectedReportKeepsSequence(t *testing.T) {
	fx := newServiceFixture(t)
	ctx := context.Background()
	svc := newQualitySvc(fx, time.Date(2025, 3, 10, 9, 0, 0, 0, testutil.Zone))

	bad := draftReport()
	bad.MouldCode = ""
	_, err := svc.NewReport(ctx, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mould")

	r, err := svc.NewReport(ctx, draftReport())
	require.NoError(t, err)
	assert.Equal(t, "YC202503100001", r.OrderNo)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestQualitySubmit(t *testing.T) {
	fx := newServiceFixture(t).loggedIn(t)
	ctx := context.Background()
	svc := newQualitySvc(fx, time.Date(2025, 3, 10, 9, 0, 0, 0, testutil.Zone))

	r, err := svc.NewReport(ctx, draftReport())
	require.NoError(t, err)

	got, err := svc.Submit(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReportSubmitted, got.Status)

	require.Len(t, fx.mes.quality, 1)
	p := fx.mes.quality[0]
	assert.Equal(t, r.OrderNo, p.OrderNo)
	assert.Equal(t, "M-100", p.MoldCode)
	assert.True(t, p.NeedTechSupport)
	assert.Equal(t, []string{"https://img.example/1.jpg"}, p.Images)

	stored, err := svc.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReportSubmitted, stored.Status)

	_, err = svc.Submit(ctx, r.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already submitted")
	assert.Len(t, fx.mes.quality, 1)
}

func TestQualitySubmit_BackendFailureKeepsDraft(t *testing.T) {
	fx := newServiceFixture(t).loggedIn(t)
	ctx := context.Background()
	svc := newQualitySvc(fx, time.Date(2025, 3, 10, 9, 0, 0, 0, testutil.Zone))
	fx.mes.qualityErr = errBoom

	r, err := svc.NewReport(ctx, draftReport())
	require.NoError(t, err)
	_, err = svc.Submit(ctx, r.ID)
	assert.ErrorIs(t, err, errBoom)

	stored, err := svc.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReportDraft, stored.Status)
}

func TestQualitySubmit_RequiresLogin(t *testing.T) {
	fx := newServiceFixture(t)
	svc := newQualitySvc(fx, time.Now())
	_, err := svc.Submit(context.Background(), "any")
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/alexanderramin/shopfloor/internal/mes"
	"github.com/alexanderramin/shopfloor/internal/repository"
	"github.com/alexanderramin/shopfloor/internal/testutil"
)

// fakeMES records what the services send. Methods it does not override
// panic through the nil embedded Client.
type fakeMES struct {
	mes.Client

	mu sync.Mutex

	token      string
	loginErr   error
	logins     []string
	info       *domain.UserInfo
	logoutErr  error
	logouts    int
	postErr    error
	auxBatches [][]mes.BackRecord
	wpBatches  [][]mes.BackRecord
	qiandiao   []mes.BackRecord
	// qiandiaoErrs fails individual qiandiao posts by order ID.
	qiandiaoErrs map[string]error
	orders       map[string]*domain.QiandiaoOrder
	orderQueries []domain.OrderQuery
	quality      []mes.QualityPayload
	qualityErr   error
	calls        []string
}

func newFakeMES() *fakeMES {
	return &fakeMES{
		token:        "tok-1",
		info:         &domain.UserInfo{UserName: "zhang", NickName: "Zhang", Roles: []string{domain.DefaultRole}},
		qiandiaoErrs: map[string]error{},
		orders:       map[string]*domain.QiandiaoOrder{},
	}
}

func (f *fakeMES) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeMES) LoginMobile(_ context.Context, _ string, encryptedPassword string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logins = append(f.logins, encryptedPassword)
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return f.token, nil
}

func (f *fakeMES) GetInfo(context.Context) (*domain.UserInfo, error) {
	return f.info, nil
}

func (f *fakeMES) Logout(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logouts++
	return f.logoutErr
}

func (f *fakeMES) CraftsByBigType(_ context.Context, bigType string) ([]domain.Option, error) {
	f.record("big:" + bigType)
	return []domain.Option{{Value: "C01", Text: "C01(Grinding)"}}, nil
}

func (f *fakeMES) CraftsByPline(_ context.Context, plineCode string) ([]domain.Option, error) {
	f.record("pline:" + plineCode)
	return nil, nil
}

func (f *fakeMES) CraftList(context.Context) ([]domain.Option, error) {
	f.record("list")
	return nil, nil
}

func (f *fakeMES) Machines(_ context.Context, sysOrgCode string) ([]domain.Option, error) {
	f.record("machines:" + sysOrgCode)
	return []domain.Option{{Value: "MC1", Text: "MC1(Press)"}}, nil
}

func (f *fakeMES) Moulds(_ context.Context, q mes.MouldQuery) ([]domain.Option, error) {
	f.record("moulds:" + q.PlineCode + ":" + q.Keyword)
	return nil, nil
}

func (f *fakeMES) PartCodes(_ context.Context, mouldCode string) ([]domain.Option, error) {
	f.record("parts:" + mouldCode)
	return nil, nil
}

func (f *fakeMES) Dicts(_ context.Context, dictType string) ([]domain.Option, error) {
	f.record("dicts:" + dictType)
	return nil, nil
}

func (f *fakeMES) SaveOtherBackList(_ context.Context, recs []mes.BackRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.auxBatches = append(f.auxBatches, recs)
	return f.postErr
}

func (f *fakeMES) WorkPieceTimeFeedback(_ context.Context, recs []mes.BackRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.wpBatches = append(f.wpBatches, recs)
	return f.postErr
}

func (f *fakeMES) SubmitQiandiaoFeedback(_ context.Context, rec mes.BackRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.qiandiao = append(f.qiandiao, rec)
	if err := f.qiandiaoErrs[rec.ID]; err != nil {
		return err
	}
	return f.postErr
}

func (f *fakeMES) WaitAssignOrders(_ context.Context, q domain.OrderQuery) (*domain.OrderPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orderQueries = append(f.orderQueries, q)
	page := &domain.OrderPage{}
	for _, o := range f.orders {
		page.Rows = append(page.Rows, *o)
	}
	page.Total = len(page.Rows)
	return page, nil
}

func (f *fakeMES) WaitAssignOrder(_ context.Context, id string) (*domain.QiandiaoOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return nil, &mes.APIError{Code: 500, Msg: "order not found"}
	}
	cp := *o
	return &cp, nil
}

func (f *fakeMES) QianTiaoUserInfo(context.Context) (*domain.QianTiaoUser, error) {
	return &domain.QianTiaoUser{DeptName: "Mould Shop", PlineName: "Line 1", OperatorNickName: "Zhang"}, nil
}

func (f *fakeMES) SubmitQualityReport(_ context.Context, p mes.QualityPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.quality = append(f.quality, p)
	return f.qualityErr
}

// serviceFixture bundles an in-memory database with its repositories.
type serviceFixture struct {
	db       *sql.DB
	entries  *repository.SQLiteEntryRepo
	reports  *repository.SQLiteQualityRepo
	sessions *repository.SQLiteSessionRepo
	mes      *fakeMES
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &serviceFixture{
		db:       database,
		entries:  repository.NewSQLiteEntryRepo(database),
		reports:  repository.NewSQLiteQualityRepo(database),
		sessions: repository.NewSQLiteSessionRepo(database),
		mes:      newFakeMES(),
	}
}

// loggedIn stores a token as a successful login would.
func (fx *serviceFixture) loggedIn(t *testing.T) *serviceFixture {
	t.Helper()
	require.NoError(t, fx.sessions.SaveToken(context.Background(), "tok-1"))
	return fx
}

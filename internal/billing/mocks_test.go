package billing

import (
	"context"
	"time"

	"github.com/Kaizen-Gym/Managment-System--Backend/internal/db"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/email"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/journal"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/member"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/plan"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// fakeTx runs fn directly. Rollback is the caller seeing fn's error.
type fakeTx struct {
	calls int
}

func (f *fakeTx) WithTx(ctx context.Context, fn func(q db.Querier) error) error {
	f.calls++
	return fn(nil)
}

type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) WithTx(q db.Querier) member.Repository { return m }

func (m *MockMemberRepository) NextID(ctx context.Context, gymID int64) (string, error) {
	args := m.Called(ctx, gymID)
	return args.String(0), args.Error(1)
}

func (m *MockMemberRepository) Create(ctx context.Context, mem *member.Member) error {
	return m.Called(ctx, mem).Error(0)
}

func (m *MockMemberRepository) GetByNumber(ctx context.Context, gymID int64, number string) (*member.Member, error) {
	args := m.Called(ctx, gymID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockMemberRepository) GetByNumberForUpdate(ctx context.Context, gymID int64, number string) (*member.Member, error) {
	args := m.Called(ctx, gymID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockMemberRepository) Exists(ctx context.Context, gymID int64, number, email string) (bool, error) {
	args := m.Called(ctx, gymID, number, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockMemberRepository) Update(ctx context.Context, mem *member.Member) error {
	return m.Called(ctx, mem).Error(0)
}

func (m *MockMemberRepository) List(ctx context.Context, gymID int64, limit, offset int) ([]member.Member, int, error) {
	args := m.Called(ctx, gymID, limit, offset)
	return args.Get(0).([]member.Member), args.Int(1), args.Error(2)
}

func (m *MockMemberRepository) Delete(ctx context.Context, gymID int64, number string) error {
	return m.Called(ctx, gymID, number).Error(0)
}

func (m *MockMemberRepository) ListLapsed(ctx context.Context, gymID int64, now time.Time) ([]member.Member, error) {
	args := m.Called(ctx, gymID, now)
	return args.Get(0).([]member.Member), args.Error(1)
}

func (m *MockMemberRepository) MarkExpired(ctx context.Context, gymID int64, id string, now time.Time) (bool, error) {
	args := m.Called(ctx, gymID, id, now)
	return args.Bool(0), args.Error(1)
}

type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) WithTx(q db.Querier) plan.Repository { return m }

func (m *MockPlanRepository) Create(ctx context.Context, p *plan.Plan) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPlanRepository) GetByID(ctx context.Context, gymID, id int64) (*plan.Plan, error) {
	args := m.Called(ctx, gymID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*plan.Plan), args.Error(1)
}

func (m *MockPlanRepository) GetByName(ctx context.Context, gymID int64, name string) (*plan.Plan, error) {
	args := m.Called(ctx, gymID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*plan.Plan), args.Error(1)
}

func (m *MockPlanRepository) List(ctx context.Context, gymID int64) ([]plan.Plan, error) {
	args := m.Called(ctx, gymID)
	return args.Get(0).([]plan.Plan), args.Error(1)
}

func (m *MockPlanRepository) Update(ctx context.Context, p *plan.Plan) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPlanRepository) Delete(ctx context.Context, gymID, id int64) error {
	return m.Called(ctx, gymID, id).Error(0)
}

func (m *MockPlanRepository) NameTaken(ctx context.Context, gymID int64, name string, excludeID int64) (bool, error) {
	args := m.Called(ctx, gymID, name, excludeID)
	return args.Bool(0), args.Error(1)
}

type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) WithTx(q db.Querier) journal.Repository { return m }

func (m *MockJournalRepository) Append(ctx context.Context, r *journal.Record) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockJournalRepository) Latest(ctx context.Context, gymID int64, number string) (*journal.Record, error) {
	args := m.Called(ctx, gymID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*journal.Record), args.Error(1)
}

func (m *MockJournalRepository) SetAmount(ctx context.Context, gymID, id int64, amount decimal.Decimal) error {
	return m.Called(ctx, gymID, id, amount).Error(0)
}

func (m *MockJournalRepository) Get(ctx context.Context, gymID, id int64) (*journal.Record, error) {
	args := m.Called(ctx, gymID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*journal.Record), args.Error(1)
}

func (m *MockJournalRepository) List(ctx context.Context, gymID int64, limit, offset int) ([]journal.Record, int, error) {
	args := m.Called(ctx, gymID, limit, offset)
	return args.Get(0).([]journal.Record), args.Int(1), args.Error(2)
}

func (m *MockJournalRepository) ListByMember(ctx context.Context, gymID int64, number string) ([]journal.Record, error) {
	args := m.Called(ctx, gymID, number)
	return args.Get(0).([]journal.Record), args.Error(1)
}

func (m *MockJournalRepository) Update(ctx context.Context, r *journal.Record) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockJournalRepository) Delete(ctx context.Context, gymID, id int64) error {
	return m.Called(ctx, gymID, id).Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendPaymentReceipt(ctx context.Context, r email.Receipt) error {
	return m.Called(ctx, r).Error(0)
}

type MockService struct {
	mock.Mock
}

func (m *MockService) Signup(ctx context.Context, gymID int64, req SignupRequest) (*Result, error) {
	args := m.Called(ctx, gymID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Result), args.Error(1)
}

func (m *MockService) Renew(ctx context.Context, gymID int64, req RenewRequest) (*Result, error) {
	args := m.Called(ctx, gymID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Result), args.Error(1)
}

func (m *MockService) PayDue(ctx context.Context, gymID int64, req PayDueRequest) (*PayDueResult, error) {
	args := m.Called(ctx, gymID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PayDueResult), args.Error(1)
}

func (m *MockService) UpdateMember(ctx context.Context, gymID int64, number string, req UpdateMemberRequest) (*member.Member, error) {
	args := m.Called(ctx, gymID, number, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockService) Transfer(ctx context.Context, gymID int64, req TransferRequest) (*TransferResult, error) {
	args := m.Called(ctx, gymID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*TransferResult), args.Error(1)
}

func (m *MockService) AddComplimentaryDays(ctx context.Context, gymID int64, req ComplimentaryDaysRequest) (*member.Member, error) {
	args := m.Called(ctx, gymID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

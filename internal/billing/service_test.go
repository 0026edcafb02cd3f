package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Kaizen-Gym/Managment-System--Backend/internal/apperror"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/email"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/journal"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/member"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/metrics"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/plan"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const gymID = int64(1)

var day0 = time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	tx       *fakeTx
	members  *MockMemberRepository
	plans    *MockPlanRepository
	records  *MockJournalRepository
	notifier *MockNotifier
}

func newFixture() *fixture {
	return &fixture{
		tx:       &fakeTx{},
		members:  new(MockMemberRepository),
		plans:    new(MockPlanRepository),
		records:  new(MockJournalRepository),
		notifier: new(MockNotifier),
	}
}

func (f *fixture) service(now time.Time) Service {
	return NewService(f.tx, f.plans, f.members, f.records, f.notifier, WithClock(func() time.Time { return now }))
}

func monthly() *plan.Plan {
	return &plan.Plan{ID: 3, GymID: gymID, Name: "Monthly", DurationMonths: 1, Price: decimal.NewFromInt(50)}
}

func dec(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func str(s string) *string { return &s }

func activeMember(number string, end time.Time) *member.Member {
	return &member.Member{
		GymID:            gymID,
		ID:               "KN" + number[len(number)-1:],
		Name:             "Member " + number,
		Number:           number,
		MembershipType:   "Monthly",
		MembershipAmount: decimal.NewFromInt(50),
		DurationMonths:   1,
		TotalPaid:        decimal.NewFromInt(50),
		TotalDue:         decimal.Zero,
		PaymentStatus:    member.PaymentPaid,
		PaymentMode:      member.PaymentCash,
		StartDate:        end.AddDate(0, -1, 0),
		EndDate:          end,
		Status:           member.StatusActive,
	}
}

func signupRequest() SignupRequest {
	return SignupRequest{
		Name:             "Asha",
		Number:           "9800000001",
		Gender:           "female",
		Age:              29,
		Email:            "asha@example.com",
		MembershipType:   "Monthly",
		MembershipAmount: dec(50),
		PaymentStatus:    "Paid",
		PaymentMode:      "cash",
	}
}

func TestSignup(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.members.On("Exists", mock.Anything, gymID, "9800000001", "asha@example.com").Return(false, nil)
	f.plans.On("GetByName", mock.Anything, gymID, "Monthly").Return(monthly(), nil)
	f.members.On("NextID", mock.Anything, gymID).Return("KN1", nil)
	f.members.On("Create", mock.Anything, mock.AnythingOfType("*member.Member")).Return(nil)
	f.records.On("Append", mock.Anything, mock.MatchedBy(func(r *journal.Record) bool {
		return r.PaymentType == journal.TypeRenewal && !r.IsDuePayment
	})).Return(nil)
	f.notifier.On("SendPaymentReceipt", mock.Anything, mock.MatchedBy(func(r email.Receipt) bool {
		return r.Email == "asha@example.com" && r.Amount.Equal(decimal.NewFromInt(50))
	})).Return(nil)

	res, err := f.service(day0).Signup(ctx, gymID, signupRequest())
	require.NoError(t, err)

	m := res.Member
	assert.Equal(t, "KN1", m.ID)
	assert.Equal(t, day0.AddDate(0, 1, 0), m.EndDate)
	assert.Equal(t, member.StatusActive, m.Status)
	assert.Equal(t, member.PaymentPaid, m.PaymentStatus)
	assert.Equal(t, member.PaymentCash, m.PaymentMode)
	assert.True(t, decimal.NewFromInt(50).Equal(m.TotalPaid))
	require.NotNil(t, m.PlanID)
	assert.Equal(t, int64(3), *m.PlanID)
	assert.Equal(t, 1, f.tx.calls)
	f.records.AssertNumberOfCalls(t, "Append", 1)
	f.notifier.AssertExpectations(t)
}

func TestSignupWithDue(t *testing.T) {
	f := newFixture()
	req := signupRequest()
	req.Email = ""
	req.PaymentStatus = ""
	req.MembershipDueAmount = decimal.NewFromInt(20)

	f.members.On("Exists", mock.Anything, gymID, req.Number, "").Return(false, nil)
	f.plans.On("GetByName", mock.Anything, gymID, "Monthly").Return(monthly(), nil)
	f.members.On("NextID", mock.Anything, gymID).Return("KN2", nil)
	f.members.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.records.On("Append", mock.Anything, mock.Anything).Return(nil)

	res, err := f.service(day0).Signup(context.Background(), gymID, req)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(30).Equal(res.Member.TotalPaid))
	assert.True(t, decimal.NewFromInt(20).Equal(res.Record.DueAmount))
	assert.Equal(t, member.PaymentPending, res.Member.PaymentStatus)
	f.notifier.AssertNotCalled(t, "SendPaymentReceipt", mock.Anything, mock.Anything)
}

func TestSignupBackdatedIsExpired(t *testing.T) {
	f := newFixture()
	req := signupRequest()
	req.Email = ""
	past := day0.AddDate(0, -3, 0)
	req.PaymentDate = &past

	f.members.On("Exists", mock.Anything, gymID, req.Number, "").Return(false, nil)
	f.plans.On("GetByName", mock.Anything, gymID, "Monthly").Return(monthly(), nil)
	f.members.On("NextID", mock.Anything, gymID).Return("KN3", nil)
	f.members.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.records.On("Append", mock.Anything, mock.Anything).Return(nil)

	res, err := f.service(day0).Signup(context.Background(), gymID, req)
	require.NoError(t, err)

	assert.Equal(t, past, res.Member.StartDate)
	assert.Equal(t, member.StatusExpired, res.Member.Status)
}

func TestSignupExisting(t *testing.T) {
	f := newFixture()
	f.members.On("Exists", mock.Anything, gymID, "9800000001", "asha@example.com").Return(true, nil)

	_, err := f.service(day0).Signup(context.Background(), gymID, signupRequest())

	assert.ErrorIs(t, err, member.ErrMemberExists)
	f.members.AssertNotCalled(t, "NextID", mock.Anything, mock.Anything)
	f.records.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestSignupUnknownPlan(t *testing.T) {
	f := newFixture()
	f.members.On("Exists", mock.Anything, gymID, mock.Anything, mock.Anything).Return(false, nil)
	f.plans.On("GetByName", mock.Anything, gymID, "Monthly").Return(nil, plan.ErrPlanNotFound)

	_, err := f.service(day0).Signup(context.Background(), gymID, signupRequest())

	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	f.members.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSignupRejectsBadInput(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *SignupRequest)
		want   error
	}{
		{"paid with due", func(r *SignupRequest) { r.MembershipDueAmount = decimal.NewFromInt(10) }, ErrPaidWithDue},
		{"failed status", func(r *SignupRequest) { r.PaymentStatus = "Failed" }, ErrInvalidPaymentStatus},
		{"unknown mode", func(r *SignupRequest) { r.PaymentMode = "cheque" }, ErrInvalidPaymentMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := signupRequest()
			tt.modify(&req)

			_, err := f.service(day0).Signup(context.Background(), gymID, req)

			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, 0, f.tx.calls)
		})
	}
}

func TestSignupMissingFields(t *testing.T) {
	f := newFixture()
	req := signupRequest()
	req.Name = ""
	req.MembershipAmount = nil

	_, err := f.service(day0).Signup(context.Background(), gymID, req)

	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.Equal(t, 0, f.tx.calls)
}

func TestSignupDueExceedsAmount(t *testing.T) {
	f := newFixture()
	req := signupRequest()
	req.Email = ""
	req.PaymentStatus = ""
	req.MembershipDueAmount = decimal.NewFromInt(60)

	f.members.On("Exists", mock.Anything, gymID, req.Number, "").Return(false, nil)
	f.plans.On("GetByName", mock.Anything, gymID, "Monthly").Return(monthly(), nil)
	f.members.On("NextID", mock.Anything, gymID).Return("KN4", nil)

	_, err := f.service(day0).Signup(context.Background(), gymID, req)

	assert.ErrorIs(t, err, member.ErrDueExceedsAmount)
	f.members.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRenewAfterExpiry(t *testing.T) {
	f := newFixture()
	now := day0.AddDate(0, 0, 40)
	m := activeMember("9800000001", day0.AddDate(0, 1, 0))
	m.Email = ""

	f.members.On("GetByNumberForUpdate", mock.Anything, gymID, "9800000001").Return(m, nil)
	f.plans.On("GetByName", mock.Anything, gymID, "Monthly").Return(monthly(), nil)
	f.members.On("Update", mock.Anything, m).Return(nil)
	f.records.On("Append", mock.Anything, mock.Anything).Return(nil)

	res, err := f.service(now).Renew(context.Background(), gymID, RenewRequest{
		Number:           "9800000001",
		MembershipType:   "Monthly",
		MembershipAmount: dec(50),
		PaymentMode:      "Card",
	})
	require.NoError(t, err)

	assert.Equal(t, now.AddDate(0, 1, 0), res.Member.EndDate)
	assert.Equal(t, now, res.Member.StartDate)
	assert.Equal(t, member.StatusActive, res.Member.Status)
	assert.True(t, decimal.NewFromInt(100).Equal(res.Member.TotalPaid))
	assert.Equal(t, res.Member.EndDate, res.Record.EndDate)
}

func TestRenewBeforeExpiryExtendsFromEndDate(t *testing.T) {
	f := newFixture()
	end := day0.AddDate(0, 0, 12)
	m := activeMember("9800000001", end)
	m.Email = ""

	f.members.On("GetByNumberForUpdate", mock.Anything, gymID, "9800000001").Return(m, nil)
	f.plans.On("GetByName", mock.Anything, gymID, "Monthly").Return(monthly(), nil)
	f.members.On("Update", mock.Anything, m).Return(nil)
	f.records.On("Append", mock.Anything, mock.Anything).Return(nil)

	res, err := f.service(day0).Renew(context.Background(), gymID, RenewRequest{
		Number:              "9800000001",
		MembershipType:      "Monthly",
		MembershipAmount:    dec(50),
		MembershipDueAmount: decimal.NewFromInt(15),
		PaymentMode:         "Online",
	})
	require.NoError(t, err)

	assert.Equal(t, end.AddDate(0, 1, 0), res.Member.EndDate)
	assert.True(t, decimal.NewFromInt(15).Equal(res.Member.TotalDue))
	assert.Equal(t, member.PaymentPending, res.Member.PaymentStatus)
	assert.True(t, decimal.NewFromInt(85).Equal(res.Member.TotalPaid))
}

func TestRenewMissingMember(t *testing.T) {
	f := newFixture()
	f.members.On("GetByNumberForUpdate", mock.Anything, gymID, "9800000009").Return(nil, member.ErrMemberNotFound)

	_, err := f.service(day0).Renew(context.Background(), gymID, RenewRequest{
		Number:           "9800000009",
		MembershipType:   "Monthly",
		MembershipAmount: dec(50),
		PaymentMode:      "Cash",
	})

	assert.ErrorIs(t, err, member.ErrMemberNotFound)
	f.records.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestPayDue(t *testing.T) {
	f := newFixture()
	m := activeMember("9800000001", day0.AddDate(0, 0, 20))
	m.Email = ""
	m.TotalPaid = decimal.NewFromInt(20)
	m.TotalDue = decimal.NewFromInt(30)
	m.PaymentStatus = member.PaymentPending

	f.members.On("GetByNumberForUpdate", mock.Anything, gymID, "9800000001").Return(m, nil)
	f.members.On("Update", mock.Anything, m).Return(nil)
	f.records.On("Append", mock.Anything, mock.MatchedBy(func(r *journal.Record) bool {
		return r.IsDuePayment && r.PaymentType == journal.TypeDuePayment &&
			r.DueAmount.IsZero() && r.Amount.Equal(decimal.NewFromInt(30))
	})).Return(nil)

	res, err := f.service(day0).PayDue(context.Background(), gymID, PayDueRequest{
		Number:      "9800000001",
		AmountPaid:  dec(30),
		PaymentMode: "cash",
	})
	require.NoError(t, err)

	assert.True(t, res.RemainingDue.IsZero())
	assert.True(t, res.Member.TotalDue.IsZero())
	assert.Equal(t, member.PaymentPaid, res.Member.PaymentStatus)
	assert.True(t, decimal.NewFromInt(50).Equal(res.Member.TotalPaid))
	require.NotNil(t, res.Member.LastDuePaymentDate)
	assert.Equal(t, day0, *res.Member.LastDuePaymentDate)
	f.records.AssertExpectations(t)
}

func TestPayDueRejects(t *testing.T) {
	tests := []struct {
		name   string
		due    int64
		amount int64
		want   error
	}{
		{"no due", 0, 10, member.ErrNoDue},
		{"overpayment", 30, 40, member.ErrOverpayment},
		{"zero amount", 30, 0, member.ErrNonPositivePayment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			m := activeMember("9800000001", day0.AddDate(0, 0, 20))
			m.TotalDue = decimal.NewFromInt(tt.due)

			f.members.On("GetByNumberForUpdate", mock.Anything, gymID, "9800000001").Return(m, nil)

			_, err := f.service(day0).PayDue(context.Background(), gymID, PayDueRequest{
				Number:      "9800000001",
				AmountPaid:  dec(tt.amount),
				PaymentMode: "Cash",
			})

			assert.ErrorIs(t, err, tt.want)
			f.members.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			f.records.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
		})
	}
}

func TestUpdateMemberPlanChange(t *testing.T) {
	f := newFixture()
	m := activeMember("9800000001", day0.AddDate(0, 1, 0))
	m.StartDate = day0

	quarterly := &plan.Plan{ID: 4, GymID: gymID, Name: "Quarterly", DurationMonths: 3, Price: decimal.NewFromInt(140)}

	f.members.On("GetByNumberForUpdate", mock.Anything, gymID, "9800000001").Return(m, nil)
	f.plans.On("GetByName", mock.Anything, gymID, "Quarterly").Return(quarterly, nil)
	f.members.On("Update", mock.Anything, m).Return(nil)
	f.records.On("Latest", mock.Anything, gymID, "9800000001").Return(&journal.Record{ID: 11}, nil)
	f.records.On("SetAmount", mock.Anything, gymID, int64(11), decimal.NewFromInt(140)).Return(nil)

	got, err := f.service(day0).UpdateMember(context.Background(), gymID, "9800000001", UpdateMemberRequest{
		MembershipType: str("Quarterly"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Quarterly", got.MembershipType)
	assert.Equal(t, 3, got.DurationMonths)
	assert.Equal(t, day0.AddDate(0, 3, 0), got.EndDate)
	assert.True(t, decimal.NewFromInt(140).Equal(got.MembershipAmount))
	assert.True(t, decimal.NewFromInt(140).Equal(got.TotalPaid))
	require.NotNil(t, got.PlanID)
	assert.Equal(t, int64(4), *got.PlanID)
	f.records.AssertExpectations(t)
	f.records.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestUpdateMemberFieldsOnly(t *testing.T) {
	f := newFixture()
	m := activeMember("9800000001", day0.AddDate(0, 1, 0))
	end := m.EndDate

	f.members.On("GetByNumberForUpdate", mock.Anything, gymID, "9800000001").Return(m, nil)
	f.members.On("Update", mock.Anything, m).Return(nil)

	got, err := f.service(day0).UpdateMember(context.Background(), gymID, "9800000001", UpdateMemberRequest{
		Name:           str("Asha K"),
		MembershipType: str("Monthly"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Asha K", got.Name)
	assert.Equal(t, end, got.EndDate)
	f.plans.AssertNotCalled(t, "GetByName", mock.Anything, mock.Anything, mock.Anything)
	f.records.AssertNotCalled(t, "Latest", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateMemberPaidClearsDue(t *testing.T) {
	f := newFixture()
	m := activeMember("9800000001", day0.AddDate(0, 1, 0))
	m.TotalDue = decimal.NewFromInt(25)
	m.PaymentStatus = member.PaymentPending

	f.members.On("GetByNumberForUpdate", mock.Anything, gymID, "9800000001").Return(m, nil)
	f.members.On("Update", mock.Anything, m).Return(nil)

	got, err := f.service(day0).UpdateMember(context.Background(), gymID, "9800000001", UpdateMemberRequest{
		PaymentStatus: str("paid"),
	})
	require.NoError(t, err)

	assert.True(t, got.TotalDue.IsZero())
	assert.Equal(t, member.PaymentPaid, got.PaymentStatus)
}

func TestUpdateMemberAmountBelowCollected(t *testing.T) {
	f := newFixture()
	m := activeMember("9800000001", day0.AddDate(0, 1, 0))
	m.MembershipAmount = decimal.NewFromInt(100)
	m.TotalPaid = decimal.Zero
	m.TotalDue = decimal.NewFromInt(100)
	m.PaymentStatus = member.PaymentPending

	f.members.On("GetByNumberForUpdate", mock.Anything, gymID, "9800000001").Return(m, nil)

	_, err := f.service(day0).UpdateMember(context.Background(), gymID, "9800000001", UpdateMemberRequest{
		MembershipAmount: dec(80),
	})

	assert.ErrorIs(t, err, member.ErrAmountBelowPaid)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	f.members.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.records.AssertNotCalled(t, "SetAmount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateMemberNegativeDue(t *testing.T) {
	f := newFixture()
	m := activeMember("9800000001", day0.AddDate(0, 1, 0))

	f.members.On("GetByNumberForUpdate", mock.Anything, gymID, "9800000001").Return(m, nil)

	_, err := f.service(day0).UpdateMember(context.Background(), gymID, "9800000001", UpdateMemberRequest{
		MembershipDueAmount: dec(-5),
	})

	assert.ErrorIs(t, err, member.ErrNegativeDue)
	f.members.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestTransfer(t *testing.T) {
	f := newFixture()
	source := activeMember("9800000002", day0.AddDate(0, 0, 10))
	target := activeMember("9800000001", day0.AddDate(0, 0, 5))

	var locked []string
	record := func(args mock.Arguments) { locked = append(locked, args.String(2)) }
	f.members.On("GetByNumberForUpdate", mock.Anything, gymID, "9800000002").Run(record).Return(source, nil)
	f.members.On("GetByNumberForUpdate", mock.Anything, gymID, "9800000001").Run(record).Return(target, nil)
	f.members.On("Update", mock.Anything, mock.Anything).Return(nil)

	res, err := f.service(day0).Transfer(context.Background(), gymID, TransferRequest{
		SourceNumber: "9800000002",
		TargetNumber: "9800000001",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"9800000001", "9800000002"}, locked)
	assert.Equal(t, day0, res.Source.EndDate)
	assert.Equal(t, member.StatusInactive, res.Source.Status)
	assert.Equal(t, day0.AddDate(0, 0, 15), res.Target.EndDate)
	assert.Equal(t, 10, res.DaysTransferred)
	f.members.AssertNumberOfCalls(t, "Update", 2)
	f.records.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestTransferTargetWriteFails(t *testing.T) {
	f := newFixture()
	source := activeMember("9800000002", day0.AddDate(0, 0, 10))
	target := activeMember("9800000001", day0.AddDate(0, 0, 5))
	writeErr := errors.New("connection reset")

	f.members.On("GetByNumberForUpdate", mock.Anything, gymID, "9800000002").Return(source, nil)
	f.members.On("GetByNumberForUpdate", mock.Anything, gymID, "9800000001").Return(target, nil)
	f.members.On("Update", mock.Anything, source).Return(nil).Once()
	f.members.On("Update", mock.Anything, target).Return(writeErr).Once()

	before := testutil.ToFloat64(metrics.DaysTransferredTotal)
	res, err := f.service(day0).Transfer(context.Background(), gymID, TransferRequest{
		SourceNumber: "9800000002",
		TargetNumber: "9800000001",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, writeErr)
	assert.Nil(t, res)
	assert.Equal(t, 1, f.tx.calls)
	assert.Equal(t, before, testutil.ToFloat64(metrics.DaysTransferredTotal))
	f.members.AssertNumberOfCalls(t, "Update", 2)
}

func TestTransferRejects(t *testing.T) {
	f := newFixture()
	source := activeMember("9800000002", day0.Add(12*time.Hour))
	target := activeMember("9800000001", day0.AddDate(0, 0, 5))

	f.members.On("GetByNumberForUpdate", mock.Anything, gymID, "9800000002").Return(source, nil)
	f.members.On("GetByNumberForUpdate", mock.Anything, gymID, "9800000001").Return(target, nil)

	_, err := f.service(day0).Transfer(context.Background(), gymID, TransferRequest{
		SourceNumber: "9800000002",
		TargetNumber: "9800000001",
	})

	assert.ErrorIs(t, err, member.ErrNoDaysToTransfer)
	f.members.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestTransferSameMember(t *testing.T) {
	f := newFixture()

	_, err := f.service(day0).Transfer(context.Background(), gymID, TransferRequest{
		SourceNumber: "9800000001",
		TargetNumber: "9800000001",
	})

	assert.ErrorIs(t, err, member.ErrSameMember)
	assert.Equal(t, 0, f.tx.calls)
}

func TestTransferExpiredTarget(t *testing.T) {
	f := newFixture()
	source := activeMember("9800000001", day0.AddDate(0, 0, 10))
	target := activeMember("9800000002", day0.AddDate(0, 0, -2))
	target.Status = member.StatusExpired

	f.members.On("GetByNumberForUpdate", mock.Anything, gymID, "9800000001").Return(source, nil)
	f.members.On("GetByNumberForUpdate", mock.Anything, gymID, "9800000002").Return(target, nil)

	_, err := f.service(day0).Transfer(context.Background(), gymID, TransferRequest{
		SourceNumber: "9800000001",
		TargetNumber: "9800000002",
	})

	assert.ErrorIs(t, err, member.ErrNotActive)
	assert.Equal(t, apperror.KindInvariant, apperror.KindOf(err))
}

func TestAddComplimentaryDays(t *testing.T) {
	f := newFixture()
	end := day0.AddDate(0, 0, -3)
	m := activeMember("9800000001", end)
	m.Status = member.StatusExpired

	f.members.On("GetByNumberForUpdate", mock.Anything, gymID, "9800000001").Return(m, nil)
	f.members.On("Update", mock.Anything, m).Return(nil)

	got, err := f.service(day0).AddComplimentaryDays(context.Background(), gymID, ComplimentaryDaysRequest{
		Number: "9800000001",
		Days:   7,
	})
	require.NoError(t, err)

	assert.Equal(t, end.AddDate(0, 0, 7), got.EndDate)
	assert.Equal(t, member.StatusActive, got.Status)
	f.records.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestAddComplimentaryDaysInvalid(t *testing.T) {
	f := newFixture()

	_, err := f.service(day0).AddComplimentaryDays(context.Background(), gymID, ComplimentaryDaysRequest{
		Number: "9800000001",
		Days:   0,
	})

	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.Equal(t, 0, f.tx.calls)
}

// A member who signs up with a due, renews twice and settles has paid the
// sum of everything collected.
func TestTotalPaidAcrossOperations(t *testing.T) {
	f := newFixture()
	req := signupRequest()
	req.Email = ""
	req.PaymentStatus = ""
	req.MembershipDueAmount = decimal.NewFromInt(10)

	var stored *member.Member
	f.members.On("Exists", mock.Anything, gymID, mock.Anything, mock.Anything).Return(false, nil)
	f.plans.On("GetByName", mock.Anything, gymID, "Monthly").Return(monthly(), nil)
	f.members.On("NextID", mock.Anything, gymID).Return("KN1", nil)
	f.members.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*member.Member)
	}).Return(nil)
	f.members.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.records.On("Append", mock.Anything, mock.Anything).Return(nil)

	ctx := context.Background()
	_, err := f.service(day0).Signup(ctx, gymID, req)
	require.NoError(t, err)
	require.NotNil(t, stored)
	f.members.On("GetByNumberForUpdate", mock.Anything, gymID, req.Number).Return(stored, nil)

	_, err = f.service(day0.AddDate(0, 0, 5)).PayDue(ctx, gymID, PayDueRequest{Number: req.Number, AmountPaid: dec(10), PaymentMode: "Cash"})
	require.NoError(t, err)

	_, err = f.service(day0.AddDate(0, 1, 0)).Renew(ctx, gymID, RenewRequest{
		Number: req.Number, MembershipType: "Monthly", MembershipAmount: dec(50),
		MembershipDueAmount: decimal.NewFromInt(5), PaymentMode: "Card",
	})
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(95).Equal(stored.TotalPaid), "total paid %s", stored.TotalPaid)
	assert.Equal(t, member.PaymentPending, stored.PaymentStatus)
	f.records.AssertNumberOfCalls(t, "Append", 3)
}

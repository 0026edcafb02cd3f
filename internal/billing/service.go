package billing

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Kaizen-Gym/Managment-System--Backend/internal/api"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/apperror"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/db"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/email"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/journal"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/logger"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/member"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/metrics"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/plan"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	opSignup        = "signup"
	opRenew         = "renew"
	opPayDue        = "pay_due"
	opUpdate        = "update_member"
	opTransfer      = "transfer"
	opComplimentary = "complimentary_days"
)

var (
	ErrInvalidPaymentMode   = apperror.Validation("membership_payment_mode must be one of: Cash Card Online")
	ErrInvalidPaymentStatus = apperror.Validation("membership_payment_status must be one of: Pending Paid")
	ErrPaidWithDue          = apperror.Validation("membership_payment_status cannot be Paid while an amount is due")
)

// Notifier delivers payment receipts. Delivery is best effort and happens
// after the transaction has committed.
type Notifier interface {
	SendPaymentReceipt(ctx context.Context, r email.Receipt) error
}

type Service interface {
	Signup(ctx context.Context, gymID int64, req SignupRequest) (*Result, error)
	Renew(ctx context.Context, gymID int64, req RenewRequest) (*Result, error)
	PayDue(ctx context.Context, gymID int64, req PayDueRequest) (*PayDueResult, error)
	UpdateMember(ctx context.Context, gymID int64, number string, req UpdateMemberRequest) (*member.Member, error)
	Transfer(ctx context.Context, gymID int64, req TransferRequest) (*TransferResult, error)
	AddComplimentaryDays(ctx context.Context, gymID int64, req ComplimentaryDaysRequest) (*member.Member, error)
}

type Option func(*service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

type service struct {
	tx       db.TxManager
	plans    plan.Repository
	members  member.Repository
	records  journal.Repository
	notifier Notifier
	tracer   trace.Tracer
	now      func() time.Time
}

func NewService(
	tx db.TxManager,
	plans plan.Repository,
	members member.Repository,
	records journal.Repository,
	notifier Notifier,
	opts ...Option,
) Service {
	s := &service{
		tx:       tx,
		plans:    plans,
		members:  members,
		records:  records,
		notifier: notifier,
		tracer:   otel.Tracer("kaizen/billing"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) start(ctx context.Context, op string, gymID int64, number string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "billing."+op,
		trace.WithAttributes(
			attribute.Int64("gym.id", gymID),
			attribute.String("member.number", number),
		),
	)
}

func finish(span trace.Span, op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = apperror.KindOf(err).String()
		span.RecordError(err)
		span.SetStatus(codes.Error, apperror.PublicMessage(err))
	}
	metrics.RecordBilling(op, outcome)
	span.End()
}

func paymentMode(s string) (member.PaymentMode, error) {
	mode, ok := member.NormalizePaymentMode(s)
	if !ok {
		return "", ErrInvalidPaymentMode
	}
	return mode, nil
}

// checkPaymentStatus accepts an empty, Pending or Paid status. The stored
// status is always derived from the due amount, so a Paid claim with an
// outstanding due is rejected rather than silently overridden.
func checkPaymentStatus(status string, due decimal.Decimal) error {
	switch {
	case status == "", strings.EqualFold(status, string(member.PaymentPending)):
		return nil
	case strings.EqualFold(status, string(member.PaymentPaid)):
		if due.IsPositive() {
			return ErrPaidWithDue
		}
		return nil
	default:
		return ErrInvalidPaymentStatus
	}
}

func termsOf(p *plan.Plan, amount decimal.Decimal) member.Terms {
	id := p.ID
	return member.Terms{
		PlanID:         &id,
		Name:           p.Name,
		Amount:         amount,
		DurationMonths: p.DurationMonths,
	}
}

func (s *service) Signup(ctx context.Context, gymID int64, req SignupRequest) (res *Result, err error) {
	ctx, span := s.start(ctx, opSignup, gymID, req.Number)
	defer func() { finish(span, opSignup, err) }()

	if err := api.ValidateStruct(req); err != nil {
		return nil, err
	}
	mode, err := paymentMode(req.PaymentMode)
	if err != nil {
		return nil, err
	}
	due := req.MembershipDueAmount
	if err := checkPaymentStatus(req.PaymentStatus, due); err != nil {
		return nil, err
	}

	now := s.now()
	paymentDate := time.Time{}
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}

	err = s.tx.WithTx(ctx, func(q db.Querier) error {
		members := s.members.WithTx(q)

		exists, err := members.Exists(ctx, gymID, req.Number, req.Email)
		if err != nil {
			return err
		}
		if exists {
			return member.ErrMemberExists
		}

		p, err := s.plans.WithTx(q).GetByName(ctx, gymID, req.MembershipType)
		if err != nil {
			return err
		}

		id, err := members.NextID(ctx, gymID)
		if err != nil {
			return err
		}

		m, err := member.New(member.NewParams{
			GymID:       gymID,
			ID:          id,
			Name:        req.Name,
			Gender:      req.Gender,
			Age:         req.Age,
			Email:       req.Email,
			Number:      req.Number,
			Terms:       termsOf(p, *req.MembershipAmount),
			Due:         due,
			PaymentMode: mode,
			PaymentDate: paymentDate,
		}, now)
		if err != nil {
			return err
		}
		if err := members.Create(ctx, m); err != nil {
			return err
		}

		rec := journal.RenewalOf(m, now)
		if err := s.records.WithTx(q).Append(ctx, rec); err != nil {
			return err
		}

		res = &Result{Member: m, Record: rec}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordCollected(opSignup, res.Member.TotalPaid.InexactFloat64())
	s.sendReceipt(ctx, res.Member, "Signup", res.Member.TotalPaid)
	logger.Info("member signed up",
		"gym_id", gymID,
		"member_id", res.Member.ID,
		"membership_type", res.Member.MembershipType,
		"status", res.Member.Status,
	)
	return res, nil
}

func (s *service) Renew(ctx context.Context, gymID int64, req RenewRequest) (res *Result, err error) {
	ctx, span := s.start(ctx, opRenew, gymID, req.Number)
	defer func() { finish(span, opRenew, err) }()

	if err := api.ValidateStruct(req); err != nil {
		return nil, err
	}
	mode, err := paymentMode(req.PaymentMode)
	if err != nil {
		return nil, err
	}
	due := req.MembershipDueAmount
	if err := checkPaymentStatus(req.PaymentStatus, due); err != nil {
		return nil, err
	}

	now := s.now()
	amount := *req.MembershipAmount

	err = s.tx.WithTx(ctx, func(q db.Querier) error {
		members := s.members.WithTx(q)

		m, err := members.GetByNumberForUpdate(ctx, gymID, req.Number)
		if err != nil {
			return err
		}

		p, err := s.plans.WithTx(q).GetByName(ctx, gymID, req.MembershipType)
		if err != nil {
			return err
		}

		if err := m.Renew(termsOf(p, amount), due, mode, now); err != nil {
			return err
		}
		if err := members.Update(ctx, m); err != nil {
			return err
		}

		rec := journal.RenewalOf(m, now)
		if err := s.records.WithTx(q).Append(ctx, rec); err != nil {
			return err
		}

		res = &Result{Member: m, Record: rec}
		return nil
	})
	if err != nil {
		return nil, err
	}

	paid := amount.Sub(due)
	metrics.RecordCollected(opRenew, paid.InexactFloat64())
	s.sendReceipt(ctx, res.Member, "Renewal", paid)
	logger.Info("membership renewed",
		"gym_id", gymID,
		"member_id", res.Member.ID,
		"end_date", res.Member.EndDate,
	)
	return res, nil
}

func (s *service) PayDue(ctx context.Context, gymID int64, req PayDueRequest) (res *PayDueResult, err error) {
	ctx, span := s.start(ctx, opPayDue, gymID, req.Number)
	defer func() { finish(span, opPayDue, err) }()

	if err := api.ValidateStruct(req); err != nil {
		return nil, err
	}
	mode, err := paymentMode(req.PaymentMode)
	if err != nil {
		return nil, err
	}

	now := s.now()
	amount := *req.AmountPaid

	err = s.tx.WithTx(ctx, func(q db.Querier) error {
		members := s.members.WithTx(q)

		m, err := members.GetByNumberForUpdate(ctx, gymID, req.Number)
		if err != nil {
			return err
		}

		remaining, err := m.PayDue(amount, mode, now)
		if err != nil {
			return err
		}
		if err := members.Update(ctx, m); err != nil {
			return err
		}

		rec := journal.DuePaymentOf(m, amount, now)
		if err := s.records.WithTx(q).Append(ctx, rec); err != nil {
			return err
		}

		res = &PayDueResult{Member: m, Record: rec, RemainingDue: remaining}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordCollected(opPayDue, amount.InexactFloat64())
	s.sendReceipt(ctx, res.Member, "Due Payment", amount)
	logger.Info("due payment received",
		"gym_id", gymID,
		"member_id", res.Member.ID,
		"amount", amount.String(),
		"remaining", res.RemainingDue.String(),
	)
	return res, nil
}

func (s *service) UpdateMember(ctx context.Context, gymID int64, number string, req UpdateMemberRequest) (m *member.Member, err error) {
	ctx, span := s.start(ctx, opUpdate, gymID, number)
	defer func() { finish(span, opUpdate, err) }()

	if err := api.ValidateStruct(req); err != nil {
		return nil, err
	}
	if req.PaymentStatus != nil {
		if err := checkPaymentStatus(*req.PaymentStatus, decimal.Zero); err != nil {
			return nil, err
		}
	}

	now := s.now()
	err = s.tx.WithTx(ctx, func(q db.Querier) error {
		members := s.members.WithTx(q)

		current, err := members.GetByNumberForUpdate(ctx, gymID, number)
		if err != nil {
			return err
		}

		change := member.Change{
			Name:          req.Name,
			Gender:        req.Gender,
			Age:           req.Age,
			Email:         req.Email,
			Amount:        req.MembershipAmount,
			Due:           req.MembershipDueAmount,
			PaymentStatus: req.PaymentStatus,
			StartDate:     req.StartDate,
		}
		if req.MembershipType != nil && *req.MembershipType != current.MembershipType {
			p, err := s.plans.WithTx(q).GetByName(ctx, gymID, *req.MembershipType)
			if err != nil {
				return err
			}
			terms := termsOf(p, p.Price)
			change.Terms = &terms
		}

		amountChanged, err := current.Apply(change, now)
		if err != nil {
			return err
		}
		if err := members.Update(ctx, current); err != nil {
			return err
		}

		if amountChanged {
			if err := s.correctLatest(ctx, s.records.WithTx(q), current); err != nil {
				return err
			}
		}

		m = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("member updated", "gym_id", gymID, "member_id", m.ID)
	return m, nil
}

// correctLatest rewrites the amount of the member's most recent journal
// record after a membership amount change. No new record is written.
func (s *service) correctLatest(ctx context.Context, records journal.Repository, m *member.Member) error {
	latest, err := records.Latest(ctx, m.GymID, m.Number)
	if errors.Is(err, journal.ErrRecordNotFound) {
		logger.Warn("no renewal record to correct", "gym_id", m.GymID, "member_id", m.ID)
		return nil
	}
	if err != nil {
		return err
	}
	return records.SetAmount(ctx, m.GymID, latest.ID, m.MembershipAmount)
}

func (s *service) Transfer(ctx context.Context, gymID int64, req TransferRequest) (res *TransferResult, err error) {
	ctx, span := s.start(ctx, opTransfer, gymID, req.SourceNumber)
	defer func() { finish(span, opTransfer, err) }()

	if err := api.ValidateStruct(req); err != nil {
		return nil, err
	}
	if req.SourceNumber == req.TargetNumber {
		return nil, member.ErrSameMember
	}

	now := s.now()
	err = s.tx.WithTx(ctx, func(q db.Querier) error {
		members := s.members.WithTx(q)

		// Rows are locked in ascending number order so two opposite
		// transfers cannot deadlock.
		locked := make(map[string]*member.Member, 2)
		for _, number := range ordered(req.SourceNumber, req.TargetNumber) {
			m, err := members.GetByNumberForUpdate(ctx, gymID, number)
			if err != nil {
				return err
			}
			locked[number] = m
		}
		source, target := locked[req.SourceNumber], locked[req.TargetNumber]

		moved, err := member.Transfer(source, target, now)
		if err != nil {
			return err
		}
		if err := members.Update(ctx, source); err != nil {
			return err
		}
		if err := members.Update(ctx, target); err != nil {
			return err
		}

		res = &TransferResult{
			Source:          source,
			Target:          target,
			DaysTransferred: int(moved / (24 * time.Hour)),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("transfer.days", res.DaysTransferred))
	metrics.RecordTransfer(res.DaysTransferred)
	logger.Info("membership days transferred",
		"gym_id", gymID,
		"source_id", res.Source.ID,
		"target_id", res.Target.ID,
		"days", res.DaysTransferred,
	)
	return res, nil
}

func ordered(a, b string) [2]string {
	if b < a {
		return [2]string{b, a}
	}
	return [2]string{a, b}
}

func (s *service) AddComplimentaryDays(ctx context.Context, gymID int64, req ComplimentaryDaysRequest) (m *member.Member, err error) {
	ctx, span := s.start(ctx, opComplimentary, gymID, req.Number)
	defer func() { finish(span, opComplimentary, err) }()

	if err := api.ValidateStruct(req); err != nil {
		return nil, err
	}

	now := s.now()
	err = s.tx.WithTx(ctx, func(q db.Querier) error {
		members := s.members.WithTx(q)

		current, err := members.GetByNumberForUpdate(ctx, gymID, req.Number)
		if err != nil {
			return err
		}
		if err := current.AddComplimentaryDays(req.Days, now); err != nil {
			return err
		}
		if err := members.Update(ctx, current); err != nil {
			return err
		}

		m = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordComplimentaryDays(req.Days)
	logger.Info("complimentary days added",
		"gym_id", gymID,
		"member_id", m.ID,
		"days", req.Days,
		"end_date", m.EndDate,
	)
	return m, nil
}

func (s *service) sendReceipt(ctx context.Context, m *member.Member, operation string, amount decimal.Decimal) {
	if s.notifier == nil || m.Email == "" {
		return
	}
	err := s.notifier.SendPaymentReceipt(ctx, email.Receipt{
		Email:          m.Email,
		Name:           m.Name,
		Operation:      operation,
		MembershipType: m.MembershipType,
		Amount:         amount,
		Due:            m.TotalDue,
		EndDate:        m.EndDate,
	})
	if err != nil {
		logger.Warn("failed to queue payment receipt", "member_id", m.ID, "error", err)
	}
}

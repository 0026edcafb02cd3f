package member

import (
	"strings"
	"time"

	"github.com/Kaizen-Gym/Managment-System--Backend/internal/apperror"

	"github.com/shopspring/decimal"
)

var (
	ErrMemberNotFound     = apperror.NotFound("member not found")
	ErrMemberExists       = apperror.Conflict("member already exists")
	ErrNegativeAmount     = apperror.Validation("membership_amount must not be negative")
	ErrNegativeDue        = apperror.Validation("membership_due_amount must not be negative")
	ErrDueExceedsAmount   = apperror.Validation("membership_due_amount must not exceed membership_amount")
	ErrInvalidDuration    = apperror.Validation("plan duration must be a positive number of months")
	ErrNonPositivePayment = apperror.Validation("amount_paid must be greater than zero")
	ErrInvalidDays        = apperror.Validation("days must be a positive integer")
	ErrSameMember         = apperror.Validation("source and target must be different members")
	ErrNoDue              = apperror.Invariant("member has no outstanding due amount")
	ErrOverpayment        = apperror.Invariant("amount paid exceeds the outstanding due amount")
	ErrNotActive          = apperror.Invariant("member has no active membership")
	ErrNoDaysToTransfer   = apperror.Invariant("member has no days to transfer")
	ErrAmountBelowPaid    = apperror.Validation("membership_amount cannot be lowered below the amount already collected")
)

const day = 24 * time.Hour

// AddMonths adds calendar months with time.AddDate normalization, so
// Jan 31 + 1 month is Mar 3 (Mar 2 in a leap year).
func AddMonths(t time.Time, months int) time.Time {
	return t.AddDate(0, months, 0)
}

// PaymentStatusFor derives the payment status from the outstanding due.
func PaymentStatusFor(due decimal.Decimal) PaymentStatus {
	if due.IsPositive() {
		return PaymentPending
	}
	return PaymentPaid
}

// StatusFor is Expired when end is in the past, Active otherwise.
func StatusFor(end, now time.Time) Status {
	if end.Before(now) {
		return StatusExpired
	}
	return StatusActive
}

// RenewalBase is the date a renewal extends from: the current expiry when it
// is still ahead, today otherwise.
func RenewalBase(end, now time.Time) time.Time {
	if end.After(now) {
		return end
	}
	return now
}

// NormalizePaymentMode accepts any casing of Cash, Card or Online.
func NormalizePaymentMode(s string) (PaymentMode, bool) {
	for _, m := range []PaymentMode{PaymentCash, PaymentCard, PaymentOnline} {
		if strings.EqualFold(s, string(m)) {
			return m, true
		}
	}
	return "", false
}

func checkTerms(t Terms, due decimal.Decimal) error {
	if t.DurationMonths <= 0 {
		return ErrInvalidDuration
	}
	if t.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if due.IsNegative() {
		return ErrNegativeDue
	}
	if due.GreaterThan(t.Amount) {
		return ErrDueExceedsAmount
	}
	return nil
}

type NewParams struct {
	GymID       int64
	ID          string
	Name        string
	Gender      string
	Age         int
	Email       string
	Number      string
	Terms       Terms
	Due         decimal.Decimal
	PaymentMode PaymentMode
	PaymentDate time.Time
}

// New builds a member for signup. Back-dated signups whose term is already
// over start out Expired.
func New(p NewParams, now time.Time) (*Member, error) {
	if err := checkTerms(p.Terms, p.Due); err != nil {
		return nil, err
	}

	start := p.PaymentDate
	if start.IsZero() {
		start = now
	}
	end := AddMonths(start, p.Terms.DurationMonths)

	return &Member{
		GymID:            p.GymID,
		ID:               p.ID,
		Name:             p.Name,
		Gender:           p.Gender,
		Age:              p.Age,
		Email:            p.Email,
		Number:           p.Number,
		PlanID:           p.Terms.PlanID,
		MembershipType:   p.Terms.Name,
		MembershipAmount: p.Terms.Amount,
		DurationMonths:   p.Terms.DurationMonths,
		TotalPaid:        p.Terms.Amount.Sub(p.Due),
		TotalDue:         p.Due,
		PaymentStatus:    PaymentStatusFor(p.Due),
		PaymentMode:      p.PaymentMode,
		PaymentDate:      start,
		StartDate:        start,
		EndDate:          end,
		Status:           StatusFor(end, now),
	}, nil
}

// Renew extends the membership from RenewalBase by the plan's duration.
// The new due replaces the old one.
func (m *Member) Renew(t Terms, due decimal.Decimal, mode PaymentMode, now time.Time) error {
	if err := checkTerms(t, due); err != nil {
		return err
	}

	base := RenewalBase(m.EndDate, now)

	m.PlanID = t.PlanID
	m.MembershipType = t.Name
	m.MembershipAmount = t.Amount
	m.DurationMonths = t.DurationMonths
	m.StartDate = base
	m.EndDate = AddMonths(base, t.DurationMonths)
	m.Status = StatusActive
	m.TotalDue = due
	m.TotalPaid = m.TotalPaid.Add(t.Amount.Sub(due))
	m.PaymentStatus = PaymentStatusFor(due)
	m.PaymentMode = mode
	m.PaymentDate = now
	return nil
}

// PayDue settles part or all of the outstanding due and returns what is left.
func (m *Member) PayDue(amount decimal.Decimal, mode PaymentMode, now time.Time) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, ErrNonPositivePayment
	}
	if !m.TotalDue.IsPositive() {
		return decimal.Zero, ErrNoDue
	}
	if amount.GreaterThan(m.TotalDue) {
		return decimal.Zero, ErrOverpayment
	}

	remaining := m.TotalDue.Sub(amount)
	m.TotalDue = remaining
	m.TotalPaid = m.TotalPaid.Add(amount)
	m.PaymentStatus = PaymentStatusFor(remaining)
	m.PaymentMode = mode
	m.LastDuePaymentDate = &now
	m.LastDuePaymentAmount = amount
	return remaining, nil
}

// Change is a partial update of a member. Nil fields are left alone.
type Change struct {
	Name          *string
	Gender        *string
	Age           *int
	Email         *string
	Terms         *Terms
	Amount        *decimal.Decimal
	Due           *decimal.Decimal
	PaymentStatus *string
	StartDate     *time.Time
}

// Apply performs a field update or plan change. A new plan resets the amount
// and duration and recomputes the end date from the (possibly new) start
// date. An explicit Amount wins over the plan price. It reports whether the
// membership amount changed, in which case totalPaid has been adjusted by the
// difference.
func (m *Member) Apply(c Change, now time.Time) (bool, error) {
	if c.Amount != nil && c.Amount.IsNegative() {
		return false, ErrNegativeAmount
	}
	if c.Due != nil && c.Due.IsNegative() {
		return false, ErrNegativeDue
	}
	if c.Terms != nil && c.Terms.DurationMonths <= 0 {
		return false, ErrInvalidDuration
	}

	oldAmount := m.MembershipAmount
	newAmount := oldAmount
	if c.Terms != nil {
		newAmount = c.Terms.Amount
	}
	if c.Amount != nil {
		newAmount = *c.Amount
	}
	// totalPaid moves by the amount difference and must stay non-negative.
	if m.TotalPaid.Add(newAmount.Sub(oldAmount)).IsNegative() {
		return false, ErrAmountBelowPaid
	}

	if c.Name != nil {
		m.Name = *c.Name
	}
	if c.Gender != nil {
		m.Gender = *c.Gender
	}
	if c.Age != nil {
		m.Age = *c.Age
	}
	if c.Email != nil {
		m.Email = *c.Email
	}
	if c.StartDate != nil {
		m.StartDate = *c.StartDate
	}

	if c.Terms != nil {
		m.PlanID = c.Terms.PlanID
		m.MembershipType = c.Terms.Name
		m.DurationMonths = c.Terms.DurationMonths
		m.EndDate = AddMonths(m.StartDate, c.Terms.DurationMonths)
		m.Status = StatusFor(m.EndDate, now)
	}

	amountChanged := !newAmount.Equal(oldAmount)
	if amountChanged {
		m.MembershipAmount = newAmount
		m.TotalPaid = m.TotalPaid.Add(newAmount.Sub(oldAmount))
	}

	switch {
	case c.PaymentStatus != nil && strings.EqualFold(*c.PaymentStatus, string(PaymentPaid)):
		m.TotalDue = decimal.Zero
	case c.Due != nil:
		m.TotalDue = *c.Due
	}
	m.PaymentStatus = PaymentStatusFor(m.TotalDue)

	return amountChanged, nil
}

// Transfer moves the whole remaining term of source onto target. Both must be
// Active and source must have at least one full day left. Source ends now and
// becomes Inactive.
func Transfer(source, target *Member, now time.Time) (time.Duration, error) {
	if source.GymID != target.GymID || source.ID == target.ID {
		return 0, ErrSameMember
	}
	if source.Status != StatusActive {
		return 0, ErrNotActive.With("%s has no active membership", source.Name)
	}
	if target.Status != StatusActive {
		return 0, ErrNotActive.With("%s has no active membership", target.Name)
	}

	remaining := source.EndDate.Sub(now)
	if remaining < day {
		return 0, ErrNoDaysToTransfer.With("%s has no days to transfer", source.Name)
	}

	source.EndDate = source.EndDate.Add(-remaining)
	if !source.EndDate.After(now) {
		source.Status = StatusInactive
	}
	target.EndDate = target.EndDate.Add(remaining)
	return remaining, nil
}

// AddComplimentaryDays extends the term by whole days and reactivates the
// membership. No payment is involved.
func (m *Member) AddComplimentaryDays(days int, now time.Time) error {
	if days <= 0 {
		return ErrInvalidDays
	}

	base := m.EndDate
	if base.IsZero() {
		base = now
	}
	m.EndDate = base.AddDate(0, 0, days)
	m.Status = StatusActive
	return nil
}

// DaysRemaining is the whole number of days left before the term ends.
func (m *Member) DaysRemaining(now time.Time) int {
	if !m.EndDate.After(now) {
		return 0
	}
	return int(m.EndDate.Sub(now) / day)
}

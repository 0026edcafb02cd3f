package journal

import (
	"time"

	"github.com/Kaizen-Gym/Managment-System--Backend/internal/api"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/member"

	"github.com/shopspring/decimal"
)

type PaymentType string

const (
	TypeRenewal    PaymentType = "Membership Renewal"
	TypeDuePayment PaymentType = "Due Payment"
)

// Record is one billing event. Records are written by billing operations and
// only change through an admin correction.
type Record struct {
	ID             int64                `db:"id" json:"id"`
	GymID          int64                `db:"gym_id" json:"gym_id"`
	MemberNumber   string               `db:"member_number" json:"number"`
	MemberName     string               `db:"member_name" json:"name"`
	MembershipType string               `db:"membership_type" json:"membership_type"`
	Amount         decimal.Decimal      `db:"amount" json:"membership_amount" swaggertype:"string"`
	DueAmount      decimal.Decimal      `db:"due_amount" json:"membership_due_amount" swaggertype:"string"`
	PaymentStatus  member.PaymentStatus `db:"payment_status" json:"membership_payment_status"`
	PaymentMode    member.PaymentMode   `db:"payment_mode" json:"membership_payment_mode"`
	EndDate        time.Time            `db:"end_date" json:"membership_end_date"`
	IsDuePayment   bool                 `db:"is_due_payment" json:"is_due_payment"`
	PaymentType    PaymentType          `db:"payment_type" json:"payment_type"`
	PaymentDate    time.Time            `db:"payment_date" json:"payment_date"`
	CreatedAt      time.Time            `db:"created_at" json:"created_at"`
}

// RenewalOf records a signup or renewal from the member's new state.
func RenewalOf(m *member.Member, now time.Time) *Record {
	return &Record{
		GymID:          m.GymID,
		MemberNumber:   m.Number,
		MemberName:     m.Name,
		MembershipType: m.MembershipType,
		Amount:         m.MembershipAmount,
		DueAmount:      m.TotalDue,
		PaymentStatus:  m.PaymentStatus,
		PaymentMode:    m.PaymentMode,
		EndDate:        m.EndDate,
		PaymentType:    TypeRenewal,
		PaymentDate:    now,
	}
}

// DuePaymentOf records a due payment of amount, after it was applied to m.
func DuePaymentOf(m *member.Member, amount decimal.Decimal, now time.Time) *Record {
	return &Record{
		GymID:          m.GymID,
		MemberNumber:   m.Number,
		MemberName:     m.Name,
		MembershipType: m.MembershipType,
		Amount:         amount,
		DueAmount:      m.TotalDue,
		PaymentStatus:  m.PaymentStatus,
		PaymentMode:    m.PaymentMode,
		EndDate:        m.EndDate,
		IsDuePayment:   true,
		PaymentType:    TypeDuePayment,
		PaymentDate:    now,
	}
}

type CorrectionRequest struct {
	MembershipType *string          `json:"membership_type" validate:"omitempty,min=1"`
	Amount         *decimal.Decimal `json:"membership_amount" swaggertype:"string"`
	DueAmount      *decimal.Decimal `json:"membership_due_amount" swaggertype:"string"`
	PaymentStatus  *string          `json:"membership_payment_status" validate:"omitempty,oneof=Pending Paid Failed"`
	PaymentMode    *string          `json:"membership_payment_mode" validate:"omitempty,oneof=Cash Card Online"`
}

type ListResponse struct {
	Records    []Record     `json:"renewals"`
	Pagination api.PageMeta `json:"pagination"`
}

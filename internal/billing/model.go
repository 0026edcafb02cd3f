package billing

import (
	"time"

	"github.com/Kaizen-Gym/Managment-System--Backend/internal/journal"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/member"

	"github.com/shopspring/decimal"
)

type SignupRequest struct {
	Name                string           `json:"name" validate:"required,max=100"`
	Number              string           `json:"number" validate:"required,max=20"`
	Gender              string           `json:"gender" validate:"required"`
	Age                 int              `json:"age" validate:"required,gt=0,lte=120"`
	Email               string           `json:"email" validate:"omitempty,email"`
	MembershipType      string           `json:"membership_type" validate:"required"`
	MembershipAmount    *decimal.Decimal `json:"membership_amount" validate:"required" swaggertype:"string" example:"1500.00"`
	MembershipDueAmount decimal.Decimal  `json:"membership_due_amount" swaggertype:"string" example:"0"`
	PaymentStatus       string           `json:"membership_payment_status"`
	PaymentMode         string           `json:"membership_payment_mode" validate:"required"`
	PaymentDate         *time.Time       `json:"payment_date"`
}

type RenewRequest struct {
	Number              string           `json:"number" validate:"required"`
	MembershipType      string           `json:"membership_type" validate:"required"`
	MembershipAmount    *decimal.Decimal `json:"membership_amount" validate:"required" swaggertype:"string" example:"1500.00"`
	MembershipDueAmount decimal.Decimal  `json:"membership_due_amount" swaggertype:"string" example:"0"`
	PaymentStatus       string           `json:"membership_payment_status"`
	PaymentMode         string           `json:"membership_payment_mode" validate:"required"`
}

type PayDueRequest struct {
	Number      string           `json:"number" validate:"required"`
	AmountPaid  *decimal.Decimal `json:"amount_paid" validate:"required" swaggertype:"string" example:"500.00"`
	PaymentMode string           `json:"membership_payment_mode" validate:"required"`
}

// UpdateMemberRequest is a partial update. Absent fields are left alone.
type UpdateMemberRequest struct {
	Name                *string          `json:"name" validate:"omitempty,min=1,max=100"`
	Gender              *string          `json:"gender" validate:"omitempty,min=1"`
	Age                 *int             `json:"age" validate:"omitempty,gt=0,lte=120"`
	Email               *string          `json:"email" validate:"omitempty,email"`
	MembershipType      *string          `json:"membership_type" validate:"omitempty,min=1"`
	MembershipAmount    *decimal.Decimal `json:"membership_amount" swaggertype:"string"`
	MembershipDueAmount *decimal.Decimal `json:"membership_due_amount" swaggertype:"string"`
	PaymentStatus       *string          `json:"membership_payment_status"`
	StartDate           *time.Time       `json:"start_date"`
}

type TransferRequest struct {
	SourceNumber string `json:"source_number" validate:"required"`
	TargetNumber string `json:"target_number" validate:"required"`
}

type ComplimentaryDaysRequest struct {
	Number string `json:"number" validate:"required"`
	Days   int    `json:"days" validate:"required,gt=0"`
}

// Result is a member after a billing operation together with the journal
// record it produced.
type Result struct {
	Member *member.Member  `json:"member"`
	Record *journal.Record `json:"renewal"`
}

type PayDueResult struct {
	Member       *member.Member  `json:"member"`
	Record       *journal.Record `json:"renewal"`
	RemainingDue decimal.Decimal `json:"remaining_due" swaggertype:"string"`
}

type TransferResult struct {
	Source          *member.Member `json:"source"`
	Target          *member.Member `json:"target"`
	DaysTransferred int            `json:"days_transferred"`
}

package member

import (
	"time"

	"github.com/Kaizen-Gym/Managment-System--Backend/internal/api"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
	StatusExpired  Status = "Expired"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
	PaymentFailed  PaymentStatus = "Failed"
)

type PaymentMode string

const (
	PaymentCash   PaymentMode = "Cash"
	PaymentCard   PaymentMode = "Card"
	PaymentOnline PaymentMode = "Online"
)

// Member is the ledger row: the current membership and billing state of one
// person in one gym. ID is the human-readable KN<seq> identifier.
type Member struct {
	GymID  int64  `db:"gym_id" json:"gym_id"`
	ID     string `db:"id" json:"id"`
	Name   string `db:"name" json:"name"`
	Gender string `db:"gender" json:"gender"`
	Age    int    `db:"age" json:"age"`
	Email  string `db:"email" json:"email,omitempty"`
	Number string `db:"number" json:"number"`

	PlanID           *int64          `db:"plan_id" json:"plan_id,omitempty"`
	MembershipType   string          `db:"membership_type" json:"membership_type"`
	MembershipAmount decimal.Decimal `db:"membership_amount" json:"membership_amount" swaggertype:"string"`
	DurationMonths   int             `db:"duration_months" json:"membership_duration"`

	TotalPaid     decimal.Decimal `db:"total_paid" json:"total_paid" swaggertype:"string"`
	TotalDue      decimal.Decimal `db:"total_due" json:"total_due" swaggertype:"string"`
	PaymentStatus PaymentStatus   `db:"payment_status" json:"payment_status"`
	PaymentMode   PaymentMode     `db:"payment_mode" json:"payment_mode"`
	PaymentDate   time.Time       `db:"payment_date" json:"payment_date"`

	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
	Status    Status    `db:"status" json:"status"`

	LastDuePaymentDate   *time.Time      `db:"last_due_payment_date" json:"last_due_payment_date,omitempty"`
	LastDuePaymentAmount decimal.Decimal `db:"last_due_payment_amount" json:"last_due_payment_amount" swaggertype:"string"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Terms is the plan snapshot a member holds.
type Terms struct {
	PlanID         *int64
	Name           string
	Amount         decimal.Decimal
	DurationMonths int
}

type ListResponse struct {
	Members    []Member     `json:"members"`
	Pagination api.PageMeta `json:"pagination"`
}

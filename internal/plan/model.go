package plan

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Plan is a gym's catalog entry. Members copy its name, price and duration
// when they sign up or renew, so editing a plan never rewrites history.
type Plan struct {
	ID             int64           `db:"id" json:"id"`
	GymID          int64           `db:"gym_id" json:"gym_id"`
	Name           string          `db:"name" json:"name"`
	DurationMonths int             `db:"duration_months" json:"duration_months"`
	Price          decimal.Decimal `db:"price" json:"price" swaggertype:"string" example:"1500.00"`
	Description    string          `db:"description" json:"description"`
	Features       pq.StringArray  `db:"features" json:"features" swaggertype:"array,string"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}

type CreatePlanRequest struct {
	Name           string           `json:"name" validate:"required,max=100"`
	DurationMonths int              `json:"duration_months" validate:"required,gt=0"`
	Price          *decimal.Decimal `json:"price" validate:"required" swaggertype:"string"`
	Description    string           `json:"description" validate:"required"`
	Features       []string         `json:"features"`
}

type UpdatePlanRequest struct {
	Name           *string          `json:"name" validate:"omitempty,max=100"`
	DurationMonths *int             `json:"duration_months" validate:"omitempty,gt=0"`
	Price          *decimal.Decimal `json:"price" swaggertype:"string"`
	Description    *string          `json:"description"`
	Features       []string         `json:"features"`
}

package journal

import (
	"context"

	"github.com/Kaizen-Gym/Managment-System--Backend/internal/db"

	"github.com/shopspring/decimal"
)

type Repository interface {
	WithTx(q db.Querier) Repository
	Append(ctx context.Context, r *Record) error
	Latest(ctx context.Context, gymID int64, number string) (*Record, error)
	SetAmount(ctx context.Context, gymID, id int64, amount decimal.Decimal) error
	Get(ctx context.Context, gymID, id int64) (*Record, error)
	List(ctx context.Context, gymID int64, limit, offset int) ([]Record, int, error)
	ListByMember(ctx context.Context, gymID int64, number string) ([]Record, error)
	Update(ctx context.Context, r *Record) error
	Delete(ctx context.Context, gymID, id int64) error
}

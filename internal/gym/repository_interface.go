package gym

import (
	"context"

	"github.com/Kaizen-Gym/Managment-System--Backend/internal/db"
)

type Repository interface {
	WithTx(q db.Querier) Repository
	Create(ctx context.Context, name, address string) (*Gym, error)
	GetByID(ctx context.Context, id int64) (*Gym, error)
	ListIDs(ctx context.Context) ([]int64, error)
}

package plan

import (
	"context"

	"github.com/Kaizen-Gym/Managment-System--Backend/internal/db"
)

type Repository interface {
	WithTx(q db.Querier) Repository
	Create(ctx context.Context, p *Plan) error
	GetByID(ctx context.Context, gymID, id int64) (*Plan, error)
	GetByName(ctx context.Context, gymID int64, name string) (*Plan, error)
	List(ctx context.Context, gymID int64) ([]Plan, error)
	Update(ctx context.Context, p *Plan) error
	Delete(ctx context.Context, gymID, id int64) error
	NameTaken(ctx context.Context, gymID int64, name string, excludeID int64) (bool, error)
}

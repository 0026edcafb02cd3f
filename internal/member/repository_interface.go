package member

import (
	"context"
	"time"

	"github.com/Kaizen-Gym/Managment-System--Backend/internal/db"
)

type Repository interface {
	WithTx(q db.Querier) Repository
	NextID(ctx context.Context, gymID int64) (string, error)
	Create(ctx context.Context, m *Member) error
	GetByNumber(ctx context.Context, gymID int64, number string) (*Member, error)
	GetByNumberForUpdate(ctx context.Context, gymID int64, number string) (*Member, error)
	Exists(ctx context.Context, gymID int64, number, email string) (bool, error)
	Update(ctx context.Context, m *Member) error
	List(ctx context.Context, gymID int64, limit, offset int) ([]Member, int, error)
	Delete(ctx context.Context, gymID int64, number string) error
	ListLapsed(ctx context.Context, gymID int64, now time.Time) ([]Member, error)
	MarkExpired(ctx context.Context, gymID int64, id string, now time.Time) (bool, error)
}

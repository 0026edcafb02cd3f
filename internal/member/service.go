package member

import (
	"context"

	"github.com/Kaizen-Gym/Managment-System--Backend/internal/logger"
)

// Service exposes the read side of the ledger and admin deletes. Billing
// mutations live in the billing package.
type Service interface {
	List(ctx context.Context, gymID int64, limit, offset int) ([]Member, int, error)
	Get(ctx context.Context, gymID int64, number string) (*Member, error)
	Delete(ctx context.Context, gymID int64, number string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, gymID int64, limit, offset int) ([]Member, int, error) {
	return s.repo.List(ctx, gymID, limit, offset)
}

func (s *service) Get(ctx context.Context, gymID int64, number string) (*Member, error) {
	return s.repo.GetByNumber(ctx, gymID, number)
}

// Delete removes the member. Journal entries are kept for revenue history.
func (s *service) Delete(ctx context.Context, gymID int64, number string) error {
	if err := s.repo.Delete(ctx, gymID, number); err != nil {
		return err
	}
	logger.Info("member deleted", "gym_id", gymID, "number", number)
	return nil
}

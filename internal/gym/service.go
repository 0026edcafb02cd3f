package gym

import (
	"context"

	"github.com/Kaizen-Gym/Managment-System--Backend/internal/api"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/apperror"
)

var ErrGymNotFound = apperror.NotFound("gym not found")

type Service interface {
	Create(ctx context.Context, req CreateGymRequest) (*Gym, error)
	Get(ctx context.Context, id int64) (*Gym, error)
	ListIDs(ctx context.Context) ([]int64, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateGymRequest) (*Gym, error) {
	if err := api.ValidateStruct(req); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, req.Name, req.Address)
}

func (s *service) Get(ctx context.Context, id int64) (*Gym, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListIDs(ctx context.Context) ([]int64, error) {
	return s.repo.ListIDs(ctx)
}

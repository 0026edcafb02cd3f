package plan

import (
	"context"
	"strings"

	"github.com/Kaizen-Gym/Managment-System--Backend/internal/api"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/apperror"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/logger"
)

var (
	ErrPlanNotFound    = apperror.NotFound("plan not found")
	ErrPlanExists      = apperror.Conflict("a plan with this name already exists")
	ErrInvalidDuration = apperror.Validation("duration_months must be a positive integer")
	ErrNegativePrice   = apperror.Validation("price must not be negative")
	ErrEmptyField      = apperror.Validation("name and description must not be empty")
)

type Service interface {
	Create(ctx context.Context, gymID int64, req CreatePlanRequest) (*Plan, error)
	Get(ctx context.Context, gymID, id int64) (*Plan, error)
	FindByName(ctx context.Context, gymID int64, name string) (*Plan, error)
	List(ctx context.Context, gymID int64) ([]Plan, error)
	Update(ctx context.Context, gymID, id int64, req UpdatePlanRequest) (*Plan, error)
	Delete(ctx context.Context, gymID, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, gymID int64, req CreatePlanRequest) (*Plan, error) {
	if err := api.ValidateStruct(req); err != nil {
		return nil, err
	}

	p := &Plan{
		GymID:          gymID,
		Name:           strings.TrimSpace(req.Name),
		DurationMonths: req.DurationMonths,
		Price:          *req.Price,
		Description:    strings.TrimSpace(req.Description),
		Features:       req.Features,
	}
	if err := validate(p); err != nil {
		return nil, err
	}

	taken, err := s.repo.NameTaken(ctx, gymID, p.Name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrPlanExists
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	logger.Info("plan created", "gym_id", gymID, "plan_id", p.ID, "name", p.Name)
	return p, nil
}

func (s *service) Get(ctx context.Context, gymID, id int64) (*Plan, error) {
	return s.repo.GetByID(ctx, gymID, id)
}

func (s *service) FindByName(ctx context.Context, gymID int64, name string) (*Plan, error) {
	return s.repo.GetByName(ctx, gymID, name)
}

func (s *service) List(ctx context.Context, gymID int64) ([]Plan, error) {
	return s.repo.List(ctx, gymID)
}

func (s *service) Update(ctx context.Context, gymID, id int64, req UpdatePlanRequest) (*Plan, error) {
	if err := api.ValidateStruct(req); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(ctx, gymID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.DurationMonths != nil {
		p.DurationMonths = *req.DurationMonths
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Description != nil {
		p.Description = strings.TrimSpace(*req.Description)
	}
	if req.Features != nil {
		p.Features = req.Features
	}
	if err := validate(p); err != nil {
		return nil, err
	}

	taken, err := s.repo.NameTaken(ctx, gymID, p.Name, p.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrPlanExists
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes the catalog entry. Members referencing it keep their snapshot.
func (s *service) Delete(ctx context.Context, gymID, id int64) error {
	if err := s.repo.Delete(ctx, gymID, id); err != nil {
		return err
	}
	logger.Info("plan deleted", "gym_id", gymID, "plan_id", id)
	return nil
}

func validate(p *Plan) error {
	if p.Name == "" || p.Description == "" {
		return ErrEmptyField
	}
	if p.DurationMonths <= 0 {
		return ErrInvalidDuration
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}

package journal

import (
	"context"

	"github.com/Kaizen-Gym/Managment-System--Backend/internal/api"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/apperror"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/logger"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/member"
)

var (
	ErrRecordNotFound  = apperror.NotFound("renewal record not found")
	ErrNegativeAmounts = apperror.Validation("amounts must not be negative")
)

type Service interface {
	List(ctx context.Context, gymID int64, limit, offset int) ([]Record, int, error)
	ListByMember(ctx context.Context, gymID int64, number string) ([]Record, error)
	Correct(ctx context.Context, gymID, id int64, req CorrectionRequest) (*Record, error)
	Delete(ctx context.Context, gymID, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, gymID int64, limit, offset int) ([]Record, int, error) {
	return s.repo.List(ctx, gymID, limit, offset)
}

func (s *service) ListByMember(ctx context.Context, gymID int64, number string) ([]Record, error) {
	return s.repo.ListByMember(ctx, gymID, number)
}

// Correct is the administrative edit of a record. It does not touch the
// member ledger.
func (s *service) Correct(ctx context.Context, gymID, id int64, req CorrectionRequest) (*Record, error) {
	if err := api.ValidateStruct(req); err != nil {
		return nil, err
	}
	if (req.Amount != nil && req.Amount.IsNegative()) || (req.DueAmount != nil && req.DueAmount.IsNegative()) {
		return nil, ErrNegativeAmounts
	}

	rec, err := s.repo.Get(ctx, gymID, id)
	if err != nil {
		return nil, err
	}

	if req.MembershipType != nil {
		rec.MembershipType = *req.MembershipType
	}
	if req.Amount != nil {
		rec.Amount = *req.Amount
	}
	if req.DueAmount != nil {
		rec.DueAmount = *req.DueAmount
	}
	if req.PaymentStatus != nil {
		rec.PaymentStatus = member.PaymentStatus(*req.PaymentStatus)
	}
	if req.PaymentMode != nil {
		rec.PaymentMode = member.PaymentMode(*req.PaymentMode)
	}

	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}

	logger.Info("renewal record corrected", "gym_id", gymID, "record_id", id)
	return rec, nil
}

func (s *service) Delete(ctx context.Context, gymID, id int64) error {
	if err := s.repo.Delete(ctx, gymID, id); err != nil {
		return err
	}
	logger.Warn("renewal record deleted", "gym_id", gymID, "record_id", id)
	return nil
}

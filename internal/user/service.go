package user

import (
	"context"
	"errors"

	"github.com/Kaizen-Gym/Managment-System--Backend/internal/api"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/apperror"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/auth"
)

var (
	ErrUserNotFound       = apperror.NotFound("user not found")
	ErrEmailExists        = apperror.Conflict("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, *User, error)
	GetByID(ctx context.Context, userID int64) (*User, error)
	CreateStaff(ctx context.Context, req CreateStaffRequest) (*User, error)
	HasUsers(ctx context.Context) (bool, error)
}

type service struct {
	repo          Repository
	accessSecret  string
	refreshSecret string
}

func NewService(repo Repository, accessSecret, refreshSecret string) Service {
	return &service{
		repo:          repo,
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
	}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*User, string, string, error) {
	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, "", "", ErrInvalidCredentials
		}
		return nil, "", "", err
	}

	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		return nil, "", "", ErrInvalidCredentials
	}

	accessToken, refreshToken, err := auth.GenerateTokens(u.Identity(), s.accessSecret, s.refreshSecret)
	if err != nil {
		return nil, "", "", err
	}

	return u, accessToken, refreshToken, nil
}

// Refresh re-reads the user so role or gym changes apply to the new token.
func (s *service) Refresh(ctx context.Context, refreshToken string) (string, *User, error) {
	_, claims, err := auth.RefreshAccessToken(refreshToken, s.refreshSecret, s.accessSecret)
	if err != nil {
		return "", nil, err
	}

	u, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		return "", nil, err
	}

	accessToken, err := auth.GenerateAccessToken(u.Identity(), s.accessSecret)
	if err != nil {
		return "", nil, err
	}

	return accessToken, u, nil
}

func (s *service) GetByID(ctx context.Context, userID int64) (*User, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *service) CreateStaff(ctx context.Context, req CreateStaffRequest) (*User, error) {
	if err := api.ValidateStruct(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, req.GymID, req.Name, req.Email, hash, string(req.Role))
}

func (s *service) HasUsers(ctx context.Context) (bool, error) {
	n, err := s.repo.Count(ctx)
	return n > 0, err
}

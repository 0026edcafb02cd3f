package user

import (
	"context"
	"errors"
	"testing"

	"github.com/Kaizen-Gym/Managment-System--Backend/internal/apperror"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	accessSecret  = "access-secret"
	refreshSecret = "refresh-secret"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, gymID int64, name, email, passwordHash, role string) (*User, error) {
	args := m.Called(ctx, gymID, name, email, passwordHash, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func staffUser(t *testing.T, password string) *User {
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &User{ID: 3, GymID: 1, Name: "Front Desk", Email: "desk@kaizen.gym", PasswordHash: hash, Role: auth.RoleStaff}
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		setupMock func(*MockRepository)
		password  string
		expectErr error
	}{
		{
			name: "valid credentials",
			setupMock: func(m *MockRepository) {
				m.On("FindByEmail", ctx, "desk@kaizen.gym").Return(staffUser(t, "hunter22"), nil)
			},
			password: "hunter22",
		},
		{
			name: "wrong password",
			setupMock: func(m *MockRepository) {
				m.On("FindByEmail", ctx, "desk@kaizen.gym").Return(staffUser(t, "hunter22"), nil)
			},
			password:  "nope",
			expectErr: ErrInvalidCredentials,
		},
		{
			name: "unknown email",
			setupMock: func(m *MockRepository) {
				m.On("FindByEmail", ctx, "desk@kaizen.gym").Return(nil, ErrUserNotFound)
			},
			password:  "hunter22",
			expectErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			tt.setupMock(repo)
			svc := NewService(repo, accessSecret, refreshSecret)

			u, access, refresh, err := svc.Login(ctx, LoginRequest{Email: "desk@kaizen.gym", Password: tt.password})
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(3), u.ID)

			claims, err := auth.ValidateToken(access, accessSecret)
			require.NoError(t, err)
			assert.Equal(t, int64(1), claims.GymID)
			assert.Equal(t, auth.RoleStaff, claims.Role)

			_, err = auth.ValidateToken(refresh, refreshSecret)
			assert.NoError(t, err)
		})
	}
}

func TestService_Refresh(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	u := staffUser(t, "hunter22")
	repo.On("FindByID", ctx, u.ID).Return(u, nil)
	svc := NewService(repo, accessSecret, refreshSecret)

	_, refresh, err := auth.GenerateTokens(u.Identity(), accessSecret, refreshSecret)
	require.NoError(t, err)

	access, got, err := svc.Refresh(ctx, refresh)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = auth.ValidateToken(access, accessSecret)
	assert.NoError(t, err)
}

func TestService_CreateStaff(t *testing.T) {
	ctx := context.Background()

	t.Run("creates account", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("EmailExists", ctx, "owner@kaizen.gym").Return(false, nil)
		repo.On("Create", ctx, int64(1), "Owner", "owner@kaizen.gym", mock.AnythingOfType("string"), "admin").
			Return(&User{ID: 1, GymID: 1, Role: auth.RoleAdmin}, nil)
		svc := NewService(repo, accessSecret, refreshSecret)

		u, err := svc.CreateStaff(ctx, CreateStaffRequest{
			GymID: 1, Name: "Owner", Email: "owner@kaizen.gym", Password: "longenough", Role: auth.RoleAdmin,
		})
		require.NoError(t, err)
		assert.Equal(t, auth.RoleAdmin, u.Role)
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("EmailExists", ctx, "owner@kaizen.gym").Return(true, nil)
		svc := NewService(repo, accessSecret, refreshSecret)

		_, err := svc.CreateStaff(ctx, CreateStaffRequest{
			GymID: 1, Name: "Owner", Email: "owner@kaizen.gym", Password: "longenough", Role: auth.RoleStaff,
		})
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		svc := NewService(new(MockRepository), accessSecret, refreshSecret)

		_, err := svc.CreateStaff(ctx, CreateStaffRequest{
			GymID: 1, Name: "Owner", Email: "owner@kaizen.gym", Password: "longenough", Role: "trainer",
		})
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})
}

func TestService_HasUsers(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("Count", ctx).Return(0, errors.New("db down"))
	svc := NewService(repo, accessSecret, refreshSecret)

	ok, err := svc.HasUsers(ctx)
	assert.Error(t, err)
	assert.False(t, ok)
}

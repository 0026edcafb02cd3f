package user

import "context"

type Repository interface {
	Create(ctx context.Context, gymID int64, name, email, passwordHash string, role string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context) (int, error)
}

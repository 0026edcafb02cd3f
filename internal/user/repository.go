package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Kaizen-Gym/Managment-System--Backend/internal/db"
)

type repository struct {
	q db.Querier
}

func NewRepository(q db.Querier) Repository {
	return &repository{q: q}
}

const userColumns = `id, gym_id, name, email, password_hash, role, created_at`

func (r *repository) Create(ctx context.Context, gymID int64, name, email, passwordHash, role string) (*User, error) {
	query := `
		INSERT INTO users (gym_id, name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns

	var u User
	err := r.q.GetContext(ctx, &u, query, gymID, name, email, passwordHash, role)
	if db.IsUniqueViolation(err) {
		return nil, ErrEmailExists
	}
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &u, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *repository) FindByID(ctx context.Context, id int64) (*User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *repository) findOne(ctx context.Context, query string, arg interface{}) (*User, error) {
	var u User
	err := r.q.GetContext(ctx, &u, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	return db.Exists(ctx, r.q, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

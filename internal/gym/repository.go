package gym

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

func (r *repository) WithTx(q db.Querier) Repository {
	return &repository{q: q}
}

func (r *repository) Create(ctx context.Context, name, address string) (*Gym, error) {
	query := `
		INSERT INTO gyms (name, address)
		VALUES ($1, $2)
		RETURNING id, name, address, created_at
	`

	var g Gym
	if err := r.q.GetContext(ctx, &g, query, name, address); err != nil {
		return nil, fmt.Errorf("insert gym: %w", err)
	}
	return &g, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Gym, error) {
	query := `
		SELECT id, name, address, created_at
		FROM gyms
		WHERE id = $1
	`

	var g Gym
	err := r.q.GetContext(ctx, &g, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGymNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get gym: %w", err)
	}
	return &g, nil
}

func (r *repository) ListIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := r.q.SelectContext(ctx, &ids, `SELECT id FROM gyms ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list gym ids: %w", err)
	}
	return ids, nil
}

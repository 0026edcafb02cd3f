package plan

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Kaizen-Gym/Managment-System--Backend/internal/db"
)

const planColumns = `id, gym_id, name, duration_months, price, description, features, created_at, updated_at`

type repository struct {
	q db.Querier
}

func NewRepository(q db.Querier) Repository {
	return &repository{q: q}
}

func (r *repository) WithTx(q db.Querier) Repository {
	return &repository{q: q}
}

func (r *repository) Create(ctx context.Context, p *Plan) error {
	query := `
		INSERT INTO plans (gym_id, name, duration_months, price, description, features)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRowxContext(ctx, query,
		p.GymID, p.Name, p.DurationMonths, p.Price, p.Description, p.Features,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if db.IsUniqueViolation(err) {
		return ErrPlanExists
	}
	if err != nil {
		return fmt.Errorf("insert plan: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, gymID, id int64) (*Plan, error) {
	return r.getOne(ctx, `SELECT `+planColumns+` FROM plans WHERE gym_id = $1 AND id = $2`, gymID, id)
}

func (r *repository) GetByName(ctx context.Context, gymID int64, name string) (*Plan, error) {
	return r.getOne(ctx, `SELECT `+planColumns+` FROM plans WHERE gym_id = $1 AND name = $2`, gymID, name)
}

func (r *repository) getOne(ctx context.Context, query string, args ...interface{}) (*Plan, error) {
	var p Plan
	err := r.q.GetContext(ctx, &p, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context, gymID int64) ([]Plan, error) {
	plans := []Plan{}
	err := r.q.SelectContext(ctx, &plans,
		`SELECT `+planColumns+` FROM plans WHERE gym_id = $1 ORDER BY duration_months, name`, gymID)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	return plans, nil
}

func (r *repository) Update(ctx context.Context, p *Plan) error {
	query := `
		UPDATE plans
		SET name = $3, duration_months = $4, price = $5, description = $6, features = $7, updated_at = NOW()
		WHERE gym_id = $1 AND id = $2
		RETURNING updated_at
	`

	err := r.q.QueryRowxContext(ctx, query,
		p.GymID, p.ID, p.Name, p.DurationMonths, p.Price, p.Description, p.Features,
	).Scan(&p.UpdatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return ErrPlanNotFound
	case db.IsUniqueViolation(err):
		return ErrPlanExists
	case err != nil:
		return fmt.Errorf("update plan: %w", err)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, gymID, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM plans WHERE gym_id = $1 AND id = $2`, gymID, id)
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	if n == 0 {
		return ErrPlanNotFound
	}
	return nil
}

func (r *repository) NameTaken(ctx context.Context, gymID int64, name string, excludeID int64) (bool, error) {
	return db.Exists(ctx, r.q,
		`SELECT EXISTS(SELECT 1 FROM plans WHERE gym_id = $1 AND name = $2 AND id <> $3)`,
		gymID, name, excludeID)
}

package member

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Kaizen-Gym/Managment-System--Backend/internal/db"
)

const memberColumns = `gym_id, id, name, gender, age, email, number,
	plan_id, membership_type, membership_amount, duration_months,
	total_paid, total_due, payment_status, payment_mode, payment_date,
	start_date, end_date, status, last_due_payment_date, last_due_payment_amount,
	created_at, updated_at`

type repository struct {
	q db.Querier
}

func NewRepository(q db.Querier) Repository {
	return &repository{q: q}
}

func (r *repository) WithTx(q db.Querier) Repository {
	return &repository{q: q}
}

// NextID hands out the next KN<seq> identifier for the gym.
func (r *repository) NextID(ctx context.Context, gymID int64) (string, error) {
	query := `
		INSERT INTO member_counters (gym_id, seq)
		VALUES ($1, 1)
		ON CONFLICT (gym_id) DO UPDATE SET seq = member_counters.seq + 1
		RETURNING seq
	`

	var seq int64
	if err := r.q.GetContext(ctx, &seq, query, gymID); err != nil {
		return "", fmt.Errorf("next member id: %w", err)
	}
	return fmt.Sprintf("KN%d", seq), nil
}

func (r *repository) Create(ctx context.Context, m *Member) error {
	query := `
		INSERT INTO members (
			gym_id, id, name, gender, age, email, number,
			plan_id, membership_type, membership_amount, duration_months,
			total_paid, total_due, payment_status, payment_mode, payment_date,
			start_date, end_date, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING created_at, updated_at
	`

	err := r.q.QueryRowxContext(ctx, query,
		m.GymID, m.ID, m.Name, m.Gender, m.Age, m.Email, m.Number,
		m.PlanID, m.MembershipType, m.MembershipAmount, m.DurationMonths,
		m.TotalPaid, m.TotalDue, m.PaymentStatus, m.PaymentMode, m.PaymentDate,
		m.StartDate, m.EndDate, m.Status,
	).Scan(&m.CreatedAt, &m.UpdatedAt)
	if db.IsUniqueViolation(err) {
		return ErrMemberExists
	}
	if err != nil {
		return fmt.Errorf("insert member: %w", err)
	}
	return nil
}

func (r *repository) GetByNumber(ctx context.Context, gymID int64, number string) (*Member, error) {
	return r.getOne(ctx, `SELECT `+memberColumns+` FROM members WHERE gym_id = $1 AND number = $2`, gymID, number)
}

// GetByNumberForUpdate locks the row until the surrounding transaction ends.
func (r *repository) GetByNumberForUpdate(ctx context.Context, gymID int64, number string) (*Member, error) {
	return r.getOne(ctx, `SELECT `+memberColumns+` FROM members WHERE gym_id = $1 AND number = $2 FOR UPDATE`, gymID, number)
}

func (r *repository) getOne(ctx context.Context, query string, args ...interface{}) (*Member, error) {
	var m Member
	err := r.q.GetContext(ctx, &m, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}
	return &m, nil
}

// Exists matches on number alone, or on email when one is given.
func (r *repository) Exists(ctx context.Context, gymID int64, number, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM members WHERE gym_id = $1 AND (number = $2 OR ($3 <> '' AND email = $3)))`
	ok, err := db.Exists(ctx, r.q, query, gymID, number, email)
	if err != nil {
		return false, fmt.Errorf("member exists: %w", err)
	}
	return ok, nil
}

func (r *repository) Update(ctx context.Context, m *Member) error {
	query := `
		UPDATE members SET
			name = $3, gender = $4, age = $5, email = $6,
			plan_id = $7, membership_type = $8, membership_amount = $9, duration_months = $10,
			total_paid = $11, total_due = $12, payment_status = $13, payment_mode = $14, payment_date = $15,
			start_date = $16, end_date = $17, status = $18,
			last_due_payment_date = $19, last_due_payment_amount = $20,
			updated_at = NOW()
		WHERE gym_id = $1 AND id = $2
		RETURNING updated_at
	`

	err := r.q.QueryRowxContext(ctx, query,
		m.GymID, m.ID, m.Name, m.Gender, m.Age, m.Email,
		m.PlanID, m.MembershipType, m.MembershipAmount, m.DurationMonths,
		m.TotalPaid, m.TotalDue, m.PaymentStatus, m.PaymentMode, m.PaymentDate,
		m.StartDate, m.EndDate, m.Status,
		m.LastDuePaymentDate, m.LastDuePaymentAmount,
	).Scan(&m.UpdatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return ErrMemberNotFound
	case db.IsUniqueViolation(err):
		return ErrMemberExists
	case err != nil:
		return fmt.Errorf("update member: %w", err)
	}
	return nil
}

func (r *repository) List(ctx context.Context, gymID int64, limit, offset int) ([]Member, int, error) {
	var total int
	if err := r.q.GetContext(ctx, &total, `SELECT COUNT(*) FROM members WHERE gym_id = $1`, gymID); err != nil {
		return nil, 0, fmt.Errorf("count members: %w", err)
	}

	members := []Member{}
	err := r.q.SelectContext(ctx, &members,
		`SELECT `+memberColumns+` FROM members WHERE gym_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		gymID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list members: %w", err)
	}
	return members, total, nil
}

func (r *repository) Delete(ctx context.Context, gymID int64, number string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM members WHERE gym_id = $1 AND number = $2`, gymID, number)
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	if n == 0 {
		return ErrMemberNotFound
	}
	return nil
}

// ListLapsed returns Active members whose term ended before now.
func (r *repository) ListLapsed(ctx context.Context, gymID int64, now time.Time) ([]Member, error) {
	members := []Member{}
	err := r.q.SelectContext(ctx, &members,
		`SELECT `+memberColumns+` FROM members WHERE gym_id = $1 AND status = 'Active' AND end_date < $2 ORDER BY end_date`,
		gymID, now)
	if err != nil {
		return nil, fmt.Errorf("list lapsed members: %w", err)
	}
	return members, nil
}

// MarkExpired flips one member from Active to Expired. It is a no-op, and
// reports false, when the member was renewed or already expired meanwhile.
func (r *repository) MarkExpired(ctx context.Context, gymID int64, id string, now time.Time) (bool, error) {
	res, err := r.q.ExecContext(ctx, `
		UPDATE members
		SET status = 'Expired', updated_at = NOW()
		WHERE gym_id = $1 AND id = $2 AND status = 'Active' AND end_date < $3
	`, gymID, id, now)
	if err != nil {
		return false, fmt.Errorf("expire member %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("expire member %s: %w", id, err)
	}
	return n > 0, nil
}

package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Kaizen-Gym/Managment-System--Backend/internal/db"

	"github.com/shopspring/decimal"
)

const recordColumns = `id, gym_id, member_number, member_name, membership_type, amount, due_amount,
	payment_status, payment_mode, end_date, is_due_payment, payment_type, payment_date, created_at`

type repository struct {
	q db.Querier
}

func NewRepository(q db.Querier) Repository {
	return &repository{q: q}
}

func (r *repository) WithTx(q db.Querier) Repository {
	return &repository{q: q}
}

func (r *repository) Append(ctx context.Context, rec *Record) error {
	query := `
		INSERT INTO renewal_records (
			gym_id, member_number, member_name, membership_type, amount, due_amount,
			payment_status, payment_mode, end_date, is_due_payment, payment_type, payment_date
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at
	`

	err := r.q.QueryRowxContext(ctx, query,
		rec.GymID, rec.MemberNumber, rec.MemberName, rec.MembershipType, rec.Amount, rec.DueAmount,
		rec.PaymentStatus, rec.PaymentMode, rec.EndDate, rec.IsDuePayment, rec.PaymentType, rec.PaymentDate,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("append renewal record: %w", err)
	}
	return nil
}

// Latest returns the member's most recent record.
func (r *repository) Latest(ctx context.Context, gymID int64, number string) (*Record, error) {
	return r.getOne(ctx,
		`SELECT `+recordColumns+` FROM renewal_records WHERE gym_id = $1 AND member_number = $2 ORDER BY created_at DESC, id DESC LIMIT 1`,
		gymID, number)
}

func (r *repository) Get(ctx context.Context, gymID, id int64) (*Record, error) {
	return r.getOne(ctx, `SELECT `+recordColumns+` FROM renewal_records WHERE gym_id = $1 AND id = $2`, gymID, id)
}

func (r *repository) getOne(ctx context.Context, query string, args ...interface{}) (*Record, error) {
	var rec Record
	err := r.q.GetContext(ctx, &rec, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get renewal record: %w", err)
	}
	return &rec, nil
}

func (r *repository) SetAmount(ctx context.Context, gymID, id int64, amount decimal.Decimal) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE renewal_records SET amount = $3 WHERE gym_id = $1 AND id = $2`, gymID, id, amount)
	if err != nil {
		return fmt.Errorf("set renewal amount: %w", err)
	}
	return requireOne(res)
}

func (r *repository) List(ctx context.Context, gymID int64, limit, offset int) ([]Record, int, error) {
	var total int
	if err := r.q.GetContext(ctx, &total, `SELECT COUNT(*) FROM renewal_records WHERE gym_id = $1`, gymID); err != nil {
		return nil, 0, fmt.Errorf("count renewal records: %w", err)
	}

	records := []Record{}
	err := r.q.SelectContext(ctx, &records,
		`SELECT `+recordColumns+` FROM renewal_records WHERE gym_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`,
		gymID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list renewal records: %w", err)
	}
	return records, total, nil
}

func (r *repository) ListByMember(ctx context.Context, gymID int64, number string) ([]Record, error) {
	records := []Record{}
	err := r.q.SelectContext(ctx, &records,
		`SELECT `+recordColumns+` FROM renewal_records WHERE gym_id = $1 AND member_number = $2 ORDER BY created_at DESC, id DESC`,
		gymID, number)
	if err != nil {
		return nil, fmt.Errorf("list member renewal records: %w", err)
	}
	return records, nil
}

func (r *repository) Update(ctx context.Context, rec *Record) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE renewal_records
		SET membership_type = $3, amount = $4, due_amount = $5, payment_status = $6, payment_mode = $7
		WHERE gym_id = $1 AND id = $2
	`, rec.GymID, rec.ID, rec.MembershipType, rec.Amount, rec.DueAmount, rec.PaymentStatus, rec.PaymentMode)
	if err != nil {
		return fmt.Errorf("update renewal record: %w", err)
	}
	return requireOne(res)
}

func (r *repository) Delete(ctx context.Context, gymID, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM renewal_records WHERE gym_id = $1 AND id = $2`, gymID, id)
	if err != nil {
		return fmt.Errorf("delete renewal record: %w", err)
	}
	return requireOne(res)
}

func requireOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRecordNotFound
	}
	return nil
}

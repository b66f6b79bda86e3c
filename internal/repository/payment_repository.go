package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Payment struct {
	ID           string
	MemberID     string
	LegacyPassID string
	Amount       decimal.Decimal
	Currency     string
	Method       *string
	ContactEmail string
	Status       string
	VerifiedBy   *string
	VerifiedAt   *time.Time
	Notes        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) error
	FindByID(ctx context.Context, id string) (*Payment, error)
	FindByLegacyPass(ctx context.Context, legacyPassID string) (*Payment, error)
	FindByMember(ctx context.Context, memberID string) ([]*Payment, error)
	FindByStatus(ctx context.Context, status string) ([]*Payment, error)
	SetMethod(ctx context.Context, id, method, contactEmail string) error
	MarkVerified(ctx context.Context, id, adminEmail string, notes *string) error
	MarkFailed(ctx context.Context, id string, notes *string) error
}

type pgPaymentRepository struct {
	pool *pgxpool.Pool
}

func NewPaymentRepository(pool *pgxpool.Pool) PaymentRepository {
	return &pgPaymentRepository{pool: pool}
}

const paymentColumns = `id, member_id, legacy_pass_id, amount, currency, payment_method,
		contact_email, status, verified_by, verified_at, notes, created_at, updated_at`

func scanPayment(row pgx.Row) (*Payment, error) {
	p := &Payment{}
	err := row.Scan(
		&p.ID, &p.MemberID, &p.LegacyPassID, &p.Amount, &p.Currency, &p.Method,
		&p.ContactEmail, &p.Status, &p.VerifiedBy, &p.VerifiedAt, &p.Notes,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *pgPaymentRepository) Create(ctx context.Context, payment *Payment) error {
	query := `
		INSERT INTO payments (member_id, legacy_pass_id, amount, currency, contact_email, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query,
		payment.MemberID, payment.LegacyPassID, payment.Amount, payment.Currency,
		payment.ContactEmail, payment.Status,
	).Scan(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt)
}

func (r *pgPaymentRepository) FindByID(ctx context.Context, id string) (*Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	return scanPayment(r.pool.QueryRow(ctx, query, id))
}

func (r *pgPaymentRepository) FindByLegacyPass(ctx context.Context, legacyPassID string) (*Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE legacy_pass_id = $1`
	return scanPayment(r.pool.QueryRow(ctx, query, legacyPassID))
}

func (r *pgPaymentRepository) FindByMember(ctx context.Context, memberID string) ([]*Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE member_id = $1 ORDER BY created_at DESC`
	return r.queryPayments(ctx, query, memberID)
}

func (r *pgPaymentRepository) FindByStatus(ctx context.Context, status string) ([]*Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE status = $1 ORDER BY created_at`
	return r.queryPayments(ctx, query, status)
}

func (r *pgPaymentRepository) queryPayments(ctx context.Context, query string, args ...any) ([]*Payment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*Payment
	for rows.Next() {
		p := &Payment{}
		if err := rows.Scan(
			&p.ID, &p.MemberID, &p.LegacyPassID, &p.Amount, &p.Currency, &p.Method,
			&p.ContactEmail, &p.Status, &p.VerifiedBy, &p.VerifiedAt, &p.Notes,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *pgPaymentRepository) SetMethod(ctx context.Context, id, method, contactEmail string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE payments SET payment_method = $2, contact_email = $3, updated_at = now() WHERE id = $1`,
		id, method, contactEmail)
	return err
}

func (r *pgPaymentRepository) MarkVerified(ctx context.Context, id, adminEmail string, notes *string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE payments
		SET status = 'verified', verified_by = $2, verified_at = now(),
		    notes = COALESCE($3, notes), updated_at = now()
		WHERE id = $1
	`, id, adminEmail, notes)
	return err
}

func (r *pgPaymentRepository) MarkFailed(ctx context.Context, id string, notes *string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE payments SET status = 'failed', notes = COALESCE($2, notes), updated_at = now() WHERE id = $1`,
		id, notes)
	return err
}

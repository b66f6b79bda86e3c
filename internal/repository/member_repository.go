package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Member struct {
	ID               string
	Email            string
	FullName         string
	PhoneNumber      *string
	MembershipTier   string
	MembershipNumber *string
	Role             string // member, admin
	PasswordHash     *string
	IsActive         bool
	HasLoggedIn      bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type MemberRepository interface {
	Create(ctx context.Context, member *Member) error
	FindByID(ctx context.Context, id string) (*Member, error)
	FindByEmail(ctx context.Context, email string) (*Member, error)
	FindAll(ctx context.Context, includeInactive bool, limit, offset int) ([]*Member, error)
	Update(ctx context.Context, member *Member) error
	SetActive(ctx context.Context, id string, active bool) error
	MarkLoggedIn(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	DeleteCascade(ctx context.Context, id string) error
}

type pgMemberRepository struct {
	pool *pgxpool.Pool
}

func NewMemberRepository(pool *pgxpool.Pool) MemberRepository {
	return &pgMemberRepository{pool: pool}
}

const memberColumns = `id, email, full_name, phone_number, membership_tier, membership_number,
		role, password_hash, is_active, has_logged_in, created_at, updated_at`

func scanMember(row pgx.Row) (*Member, error) {
	m := &Member{}
	err := row.Scan(
		&m.ID, &m.Email, &m.FullName, &m.PhoneNumber, &m.MembershipTier,
		&m.MembershipNumber, &m.Role, &m.PasswordHash, &m.IsActive,
		&m.HasLoggedIn, &m.CreatedAt, &m.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *pgMemberRepository) Create(ctx context.Context, member *Member) error {
	query := `
		INSERT INTO members (email, full_name, phone_number, membership_tier, membership_number, role, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, is_active, has_logged_in, created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query,
		member.Email, member.FullName, member.PhoneNumber, member.MembershipTier,
		member.MembershipNumber, member.Role, member.PasswordHash,
	).Scan(&member.ID, &member.IsActive, &member.HasLoggedIn, &member.CreatedAt, &member.UpdatedAt)
}

func (r *pgMemberRepository) FindByID(ctx context.Context, id string) (*Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`
	return scanMember(r.pool.QueryRow(ctx, query, id))
}

func (r *pgMemberRepository) FindByEmail(ctx context.Context, email string) (*Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE lower(email) = lower($1)`
	return scanMember(r.pool.QueryRow(ctx, query, email))
}

func (r *pgMemberRepository) FindAll(ctx context.Context, includeInactive bool, limit, offset int) ([]*Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members`
	if !includeInactive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*Member
	for rows.Next() {
		m := &Member{}
		if err := rows.Scan(
			&m.ID, &m.Email, &m.FullName, &m.PhoneNumber, &m.MembershipTier,
			&m.MembershipNumber, &m.Role, &m.PasswordHash, &m.IsActive,
			&m.HasLoggedIn, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *pgMemberRepository) Update(ctx context.Context, member *Member) error {
	query := `
		UPDATE members
		SET email = $2, full_name = $3, phone_number = $4, membership_tier = $5,
		    membership_number = $6, role = $7, is_active = $8, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`
	return r.pool.QueryRow(ctx, query,
		member.ID, member.Email, member.FullName, member.PhoneNumber,
		member.MembershipTier, member.MembershipNumber, member.Role, member.IsActive,
	).Scan(&member.UpdatedAt)
}

func (r *pgMemberRepository) SetActive(ctx context.Context, id string, active bool) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE members SET is_active = $2, updated_at = now() WHERE id = $1`, id, active)
	return err
}

func (r *pgMemberRepository) MarkLoggedIn(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE members SET has_logged_in = TRUE, updated_at = now() WHERE id = $1`, id)
	return err
}

func (r *pgMemberRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM members WHERE is_active = TRUE`).Scan(&count)
	return count, err
}

// DeleteCascade removes a member and every dependent record inside one
// transaction. Dependents are deleted child-first; FK constraints would
// otherwise reject the member delete.
func (r *pgMemberRepository) DeleteCascade(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	statements := []string{
		`DELETE FROM payments WHERE member_id = $1`,
		`DELETE FROM memories WHERE member_id = $1`,
		`DELETE FROM legacy_passes WHERE member_id = $1`,
		`DELETE FROM rsvps WHERE member_id = $1`,
		`DELETE FROM members WHERE id = $1`,
	}
	for _, stmt := range statements {
		if _, err := tx.Exec(ctx, stmt, id); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

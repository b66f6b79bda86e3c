package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RSVP struct {
	ID              string
	MemberID        string
	EventID         string
	Status          string
	ResponseMessage *string
	RespondedAt     *time.Time
	CreatedAt       time.Time
}

type RSVPRepository interface {
	Create(ctx context.Context, rsvp *RSVP) error
	FindByID(ctx context.Context, id string) (*RSVP, error)
	FindByMemberAndEvent(ctx context.Context, memberID, eventID string) (*RSVP, error)
	FindByEvent(ctx context.Context, eventID string) ([]*RSVP, error)
	UpdateStatus(ctx context.Context, id, status string, message *string) error
	CountByStatus(ctx context.Context, eventID string) (map[string]int, error)
}

type pgRSVPRepository struct {
	pool *pgxpool.Pool
}

func NewRSVPRepository(pool *pgxpool.Pool) RSVPRepository {
	return &pgRSVPRepository{pool: pool}
}

const rsvpColumns = `id, member_id, event_id, status, response_message, responded_at, created_at`

func scanRSVP(row pgx.Row) (*RSVP, error) {
	r := &RSVP{}
	err := row.Scan(
		&r.ID, &r.MemberID, &r.EventID, &r.Status, &r.ResponseMessage,
		&r.RespondedAt, &r.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *pgRSVPRepository) Create(ctx context.Context, rsvp *RSVP) error {
	query := `
		INSERT INTO rsvps (member_id, event_id, status, response_message, responded_at)
		VALUES ($1, $2, $3, $4, now())
		RETURNING id, responded_at, created_at
	`
	return r.pool.QueryRow(ctx, query,
		rsvp.MemberID, rsvp.EventID, rsvp.Status, rsvp.ResponseMessage,
	).Scan(&rsvp.ID, &rsvp.RespondedAt, &rsvp.CreatedAt)
}

func (r *pgRSVPRepository) FindByID(ctx context.Context, id string) (*RSVP, error) {
	query := `SELECT ` + rsvpColumns + ` FROM rsvps WHERE id = $1`
	return scanRSVP(r.pool.QueryRow(ctx, query, id))
}

func (r *pgRSVPRepository) FindByMemberAndEvent(ctx context.Context, memberID, eventID string) (*RSVP, error) {
	query := `SELECT ` + rsvpColumns + ` FROM rsvps WHERE member_id = $1 AND event_id = $2`
	return scanRSVP(r.pool.QueryRow(ctx, query, memberID, eventID))
}

func (r *pgRSVPRepository) FindByEvent(ctx context.Context, eventID string) ([]*RSVP, error) {
	query := `SELECT ` + rsvpColumns + ` FROM rsvps WHERE event_id = $1 ORDER BY responded_at DESC NULLS LAST`
	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rsvps []*RSVP
	for rows.Next() {
		rv := &RSVP{}
		if err := rows.Scan(
			&rv.ID, &rv.MemberID, &rv.EventID, &rv.Status, &rv.ResponseMessage,
			&rv.RespondedAt, &rv.CreatedAt,
		); err != nil {
			return nil, err
		}
		rsvps = append(rsvps, rv)
	}
	return rsvps, rows.Err()
}

func (r *pgRSVPRepository) UpdateStatus(ctx context.Context, id, status string, message *string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE rsvps SET status = $2, response_message = COALESCE($3, response_message), responded_at = now() WHERE id = $1`,
		id, status, message)
	return err
}

func (r *pgRSVPRepository) CountByStatus(ctx context.Context, eventID string) (map[string]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT status, COUNT(*) FROM rsvps WHERE event_id = $1 GROUP BY status`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

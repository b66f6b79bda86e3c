package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Event struct {
	ID                  string
	Title               string
	Subtitle            *string
	Description         string
	EventDate           time.Time
	EventTime           string // e.g. "7:00 PM EST"
	VenueName           string
	VenueAddress        string
	DressCode           *string
	Theme               *string
	Schedule            json.RawMessage
	Amenities           json.RawMessage
	SpecialInstructions *string
	IsActive            bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	FindByID(ctx context.Context, id string) (*Event, error)
	FindActive(ctx context.Context) (*Event, error)
	FindAll(ctx context.Context, includeInactive bool) ([]*Event, error)
	Update(ctx context.Context, event *Event) error
	SetActive(ctx context.Context, id string, active bool) error
}

type pgEventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &pgEventRepository{pool: pool}
}

const eventColumns = `id, title, subtitle, description, event_date, event_time, venue_name,
		venue_address, dress_code, theme, schedule, amenities, special_instructions,
		is_active, created_at, updated_at`

func scanEvent(row pgx.Row) (*Event, error) {
	e := &Event{}
	err := row.Scan(
		&e.ID, &e.Title, &e.Subtitle, &e.Description, &e.EventDate, &e.EventTime,
		&e.VenueName, &e.VenueAddress, &e.DressCode, &e.Theme, &e.Schedule,
		&e.Amenities, &e.SpecialInstructions, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *pgEventRepository) Create(ctx context.Context, event *Event) error {
	query := `
		INSERT INTO events (title, subtitle, description, event_date, event_time, venue_name,
			venue_address, dress_code, theme, schedule, amenities, special_instructions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, is_active, created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query,
		event.Title, event.Subtitle, event.Description, event.EventDate, event.EventTime,
		event.VenueName, event.VenueAddress, event.DressCode, event.Theme,
		event.Schedule, event.Amenities, event.SpecialInstructions,
	).Scan(&event.ID, &event.IsActive, &event.CreatedAt, &event.UpdatedAt)
}

func (r *pgEventRepository) FindByID(ctx context.Context, id string) (*Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	return scanEvent(r.pool.QueryRow(ctx, query, id))
}

// FindActive returns the current event. One event is active at a time by
// convention; ties break toward the most recently created.
func (r *pgEventRepository) FindActive(ctx context.Context) (*Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE is_active = TRUE ORDER BY created_at DESC LIMIT 1`
	return scanEvent(r.pool.QueryRow(ctx, query))
}

func (r *pgEventRepository) FindAll(ctx context.Context, includeInactive bool) ([]*Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events`
	if !includeInactive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY event_date DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		e := &Event{}
		if err := rows.Scan(
			&e.ID, &e.Title, &e.Subtitle, &e.Description, &e.EventDate, &e.EventTime,
			&e.VenueName, &e.VenueAddress, &e.DressCode, &e.Theme, &e.Schedule,
			&e.Amenities, &e.SpecialInstructions, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *pgEventRepository) Update(ctx context.Context, event *Event) error {
	query := `
		UPDATE events
		SET title = $2, subtitle = $3, description = $4, event_date = $5, event_time = $6,
		    venue_name = $7, venue_address = $8, dress_code = $9, theme = $10,
		    schedule = $11, amenities = $12, special_instructions = $13, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`
	return r.pool.QueryRow(ctx, query,
		event.ID, event.Title, event.Subtitle, event.Description, event.EventDate,
		event.EventTime, event.VenueName, event.VenueAddress, event.DressCode,
		event.Theme, event.Schedule, event.Amenities, event.SpecialInstructions,
	).Scan(&event.UpdatedAt)
}

func (r *pgEventRepository) SetActive(ctx context.Context, id string, active bool) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE events SET is_active = $2, updated_at = now() WHERE id = $1`, id, active)
	return err
}

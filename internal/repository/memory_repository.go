package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Memory struct {
	ID                 string
	MemberID           string
	EventID            string
	PhotoGalleryURL    *string
	ThankYouVideoURL   *string
	CertificatePDFPath *string
	BadgeNumber        *int
	BadgeImagePath     *string
	CreatedAt          time.Time
}

type MemoryRepository interface {
	Create(ctx context.Context, memory *Memory) error
	FindByID(ctx context.Context, id string) (*Memory, error)
	FindByMemberAndEvent(ctx context.Context, memberID, eventID string) (*Memory, error)
	FindByMember(ctx context.Context, memberID string) ([]*Memory, error)
	FindByEvent(ctx context.Context, eventID string) ([]*Memory, error)
	Update(ctx context.Context, memory *Memory) error
	Delete(ctx context.Context, id string) error
}

type pgMemoryRepository struct {
	pool *pgxpool.Pool
}

func NewMemoryRepository(pool *pgxpool.Pool) MemoryRepository {
	return &pgMemoryRepository{pool: pool}
}

const memoryColumns = `id, member_id, event_id, photo_gallery_url, thank_you_video_url,
		certificate_pdf_path, badge_number, badge_image_path, created_at`

func scanMemory(row pgx.Row) (*Memory, error) {
	m := &Memory{}
	err := row.Scan(
		&m.ID, &m.MemberID, &m.EventID, &m.PhotoGalleryURL, &m.ThankYouVideoURL,
		&m.CertificatePDFPath, &m.BadgeNumber, &m.BadgeImagePath, &m.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *pgMemoryRepository) Create(ctx context.Context, memory *Memory) error {
	query := `
		INSERT INTO memories (member_id, event_id, photo_gallery_url, thank_you_video_url,
			certificate_pdf_path, badge_number, badge_image_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	return r.pool.QueryRow(ctx, query,
		memory.MemberID, memory.EventID, memory.PhotoGalleryURL, memory.ThankYouVideoURL,
		memory.CertificatePDFPath, memory.BadgeNumber, memory.BadgeImagePath,
	).Scan(&memory.ID, &memory.CreatedAt)
}

func (r *pgMemoryRepository) FindByID(ctx context.Context, id string) (*Memory, error) {
	query := `SELECT ` + memoryColumns + ` FROM memories WHERE id = $1`
	return scanMemory(r.pool.QueryRow(ctx, query, id))
}

func (r *pgMemoryRepository) FindByMemberAndEvent(ctx context.Context, memberID, eventID string) (*Memory, error) {
	query := `SELECT ` + memoryColumns + ` FROM memories WHERE member_id = $1 AND event_id = $2`
	return scanMemory(r.pool.QueryRow(ctx, query, memberID, eventID))
}

func (r *pgMemoryRepository) FindByMember(ctx context.Context, memberID string) ([]*Memory, error) {
	query := `SELECT ` + memoryColumns + ` FROM memories WHERE member_id = $1 ORDER BY created_at DESC`
	return r.queryMemories(ctx, query, memberID)
}

func (r *pgMemoryRepository) FindByEvent(ctx context.Context, eventID string) ([]*Memory, error) {
	query := `SELECT ` + memoryColumns + ` FROM memories WHERE event_id = $1 ORDER BY badge_number NULLS LAST`
	return r.queryMemories(ctx, query, eventID)
}

func (r *pgMemoryRepository) queryMemories(ctx context.Context, query string, args ...any) ([]*Memory, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memories []*Memory
	for rows.Next() {
		m := &Memory{}
		if err := rows.Scan(
			&m.ID, &m.MemberID, &m.EventID, &m.PhotoGalleryURL, &m.ThankYouVideoURL,
			&m.CertificatePDFPath, &m.BadgeNumber, &m.BadgeImagePath, &m.CreatedAt,
		); err != nil {
			return nil, err
		}
		memories = append(memories, m)
	}
	return memories, rows.Err()
}

func (r *pgMemoryRepository) Update(ctx context.Context, memory *Memory) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE memories
		SET photo_gallery_url = $2, thank_you_video_url = $3, certificate_pdf_path = $4,
		    badge_number = $5, badge_image_path = $6
		WHERE id = $1
	`, memory.ID, memory.PhotoGalleryURL, memory.ThankYouVideoURL,
		memory.CertificatePDFPath, memory.BadgeNumber, memory.BadgeImagePath)
	return err
}

func (r *pgMemoryRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM memories WHERE id = $1`, id)
	return err
}

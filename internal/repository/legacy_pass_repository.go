package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LegacyPass struct {
	ID              string
	MemberID        string
	EventID         string
	PassNumber      string
	Token           string
	AccessLevel     string
	GiftTier        string
	SeatingCategory *string
	QRCodeData      *string
	QRImagePath     *string
	FrontImagePath  *string
	BackImagePath   *string
	BlurredFront    *string
	BlurredBack     *string
	PDFPath         *string
	IsActive        bool
	CreatedAt       time.Time
}

type LegacyPassRepository interface {
	Create(ctx context.Context, pass *LegacyPass) error
	FindByID(ctx context.Context, id string) (*LegacyPass, error)
	FindByToken(ctx context.Context, token string) (*LegacyPass, error)
	FindByMemberAndEvent(ctx context.Context, memberID, eventID string) (*LegacyPass, error)
	FindByMember(ctx context.Context, memberID string) ([]*LegacyPass, error)
	FindByEvent(ctx context.Context, eventID string) ([]*LegacyPass, error)
	FindMissingAssets(ctx context.Context) ([]*LegacyPass, error)
	UpdateAssets(ctx context.Context, pass *LegacyPass) error
	SetActive(ctx context.Context, id string, active bool) error
	NextPassNumber(ctx context.Context) (int64, error)
}

type pgLegacyPassRepository struct {
	pool *pgxpool.Pool
}

func NewLegacyPassRepository(pool *pgxpool.Pool) LegacyPassRepository {
	return &pgLegacyPassRepository{pool: pool}
}

const passColumns = `id, member_id, event_id, pass_number, token, access_level, gift_tier,
		seating_category, qr_code_data, qr_image_path, front_image_path, back_image_path,
		blurred_front_path, blurred_back_path, pdf_path, is_active, created_at`

func scanLegacyPass(row pgx.Row) (*LegacyPass, error) {
	p := &LegacyPass{}
	err := row.Scan(
		&p.ID, &p.MemberID, &p.EventID, &p.PassNumber, &p.Token, &p.AccessLevel,
		&p.GiftTier, &p.SeatingCategory, &p.QRCodeData, &p.QRImagePath,
		&p.FrontImagePath, &p.BackImagePath, &p.BlurredFront, &p.BlurredBack,
		&p.PDFPath, &p.IsActive, &p.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *pgLegacyPassRepository) Create(ctx context.Context, pass *LegacyPass) error {
	query := `
		INSERT INTO legacy_passes (member_id, event_id, pass_number, token, access_level,
			gift_tier, seating_category)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, is_active, created_at
	`
	return r.pool.QueryRow(ctx, query,
		pass.MemberID, pass.EventID, pass.PassNumber, pass.Token, pass.AccessLevel,
		pass.GiftTier, pass.SeatingCategory,
	).Scan(&pass.ID, &pass.IsActive, &pass.CreatedAt)
}

func (r *pgLegacyPassRepository) FindByID(ctx context.Context, id string) (*LegacyPass, error) {
	query := `SELECT ` + passColumns + ` FROM legacy_passes WHERE id = $1`
	return scanLegacyPass(r.pool.QueryRow(ctx, query, id))
}

func (r *pgLegacyPassRepository) FindByToken(ctx context.Context, token string) (*LegacyPass, error) {
	query := `SELECT ` + passColumns + ` FROM legacy_passes WHERE token = $1`
	return scanLegacyPass(r.pool.QueryRow(ctx, query, token))
}

func (r *pgLegacyPassRepository) FindByMemberAndEvent(ctx context.Context, memberID, eventID string) (*LegacyPass, error) {
	query := `SELECT ` + passColumns + ` FROM legacy_passes WHERE member_id = $1 AND event_id = $2`
	return scanLegacyPass(r.pool.QueryRow(ctx, query, memberID, eventID))
}

func (r *pgLegacyPassRepository) FindByMember(ctx context.Context, memberID string) ([]*LegacyPass, error) {
	query := `SELECT ` + passColumns + ` FROM legacy_passes WHERE member_id = $1 ORDER BY created_at DESC`
	return r.queryPasses(ctx, query, memberID)
}

func (r *pgLegacyPassRepository) FindByEvent(ctx context.Context, eventID string) ([]*LegacyPass, error) {
	query := `SELECT ` + passColumns + ` FROM legacy_passes WHERE event_id = $1 ORDER BY pass_number`
	return r.queryPasses(ctx, query, eventID)
}

// FindMissingAssets returns active passes with at least one generated asset
// path unset, for the nightly regeneration sweep.
func (r *pgLegacyPassRepository) FindMissingAssets(ctx context.Context) ([]*LegacyPass, error) {
	query := `SELECT ` + passColumns + ` FROM legacy_passes
		WHERE is_active
		  AND (qr_image_path IS NULL OR front_image_path IS NULL OR back_image_path IS NULL
		       OR blurred_front_path IS NULL OR blurred_back_path IS NULL OR pdf_path IS NULL)
		ORDER BY created_at`
	return r.queryPasses(ctx, query)
}

func (r *pgLegacyPassRepository) queryPasses(ctx context.Context, query string, args ...any) ([]*LegacyPass, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var passes []*LegacyPass
	for rows.Next() {
		p := &LegacyPass{}
		if err := rows.Scan(
			&p.ID, &p.MemberID, &p.EventID, &p.PassNumber, &p.Token, &p.AccessLevel,
			&p.GiftTier, &p.SeatingCategory, &p.QRCodeData, &p.QRImagePath,
			&p.FrontImagePath, &p.BackImagePath, &p.BlurredFront, &p.BlurredBack,
			&p.PDFPath, &p.IsActive, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		passes = append(passes, p)
	}
	return passes, rows.Err()
}

func (r *pgLegacyPassRepository) UpdateAssets(ctx context.Context, pass *LegacyPass) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE legacy_passes
		SET qr_code_data = $2, qr_image_path = $3, front_image_path = $4,
		    back_image_path = $5, blurred_front_path = $6, blurred_back_path = $7,
		    pdf_path = $8
		WHERE id = $1
	`, pass.ID, pass.QRCodeData, pass.QRImagePath, pass.FrontImagePath,
		pass.BackImagePath, pass.BlurredFront, pass.BlurredBack, pass.PDFPath)
	return err
}

func (r *pgLegacyPassRepository) SetActive(ctx context.Context, id string, active bool) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE legacy_passes SET is_active = $2 WHERE id = $1`, id, active)
	return err
}

// NextPassNumber pulls the next value from the shared sequence so pass
// numbers stay unique across concurrent RSVPs.
func (r *pgLegacyPassRepository) NextPassNumber(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT nextval('pass_number_seq')`).Scan(&n)
	return n, err
}

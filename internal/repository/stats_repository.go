package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// DashboardStats backs the admin dashboard summary.
type DashboardStats struct {
	TotalMembers     int             `db:"total_members" json:"total_members"`
	ActiveMembers    int             `db:"active_members" json:"active_members"`
	TotalRSVPs       int             `db:"total_rsvps" json:"total_rsvps"`
	AcceptedRSVPs    int             `db:"accepted_rsvps" json:"accepted_rsvps"`
	DeclinedRSVPs    int             `db:"declined_rsvps" json:"declined_rsvps"`
	PassesIssued     int             `db:"passes_issued" json:"passes_issued"`
	PassesUnlocked   int             `db:"passes_unlocked" json:"passes_unlocked"`
	PendingPayments  int             `db:"pending_payments" json:"pending_payments"`
	VerifiedPayments int             `db:"verified_payments" json:"verified_payments"`
	VerifiedRevenue  decimal.Decimal `db:"verified_revenue" json:"verified_revenue"`
}

// TierBreakdownRow is one membership tier's RSVP split.
type TierBreakdownRow struct {
	MembershipTier string `db:"membership_tier" json:"membership_tier"`
	Members        int    `db:"members" json:"members"`
	Accepted       int    `db:"accepted" json:"accepted"`
	Declined       int    `db:"declined" json:"declined"`
}

type StatsRepository interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
	TierBreakdown(ctx context.Context, eventID string) ([]TierBreakdownRow, error)
}

type sqlxStatsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) StatsRepository {
	return &sqlxStatsRepository{db: db}
}

func (r *sqlxStatsRepository) Dashboard(ctx context.Context) (*DashboardStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM members WHERE role = 'member') AS total_members,
			(SELECT COUNT(*) FROM members WHERE role = 'member' AND is_active) AS active_members,
			(SELECT COUNT(*) FROM rsvps) AS total_rsvps,
			(SELECT COUNT(*) FROM rsvps WHERE status = 'accepted') AS accepted_rsvps,
			(SELECT COUNT(*) FROM rsvps WHERE status = 'declined') AS declined_rsvps,
			(SELECT COUNT(*) FROM legacy_passes WHERE is_active) AS passes_issued,
			(SELECT COUNT(DISTINCT p.legacy_pass_id) FROM payments p WHERE p.status = 'verified') AS passes_unlocked,
			(SELECT COUNT(*) FROM payments WHERE status = 'pending') AS pending_payments,
			(SELECT COUNT(*) FROM payments WHERE status = 'verified') AS verified_payments,
			(SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status = 'verified') AS verified_revenue
	`
	stats := &DashboardStats{}
	if err := r.db.GetContext(ctx, stats, query); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *sqlxStatsRepository) TierBreakdown(ctx context.Context, eventID string) ([]TierBreakdownRow, error) {
	query := `
		SELECT m.membership_tier,
		       COUNT(DISTINCT m.id) AS members,
		       COUNT(*) FILTER (WHERE r.status = 'accepted') AS accepted,
		       COUNT(*) FILTER (WHERE r.status = 'declined') AS declined
		FROM members m
		LEFT JOIN rsvps r ON r.member_id = m.id AND r.event_id = $1
		WHERE m.role = 'member'
		GROUP BY m.membership_tier
		ORDER BY m.membership_tier
	`
	var rows []TierBreakdownRow
	if err := r.db.SelectContext(ctx, &rows, query, eventID); err != nil {
		return nil, err
	}
	return rows, nil
}

package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	// Core repositories (pgxpool)
	MemberRepo     MemberRepository
	EventRepo      EventRepository
	RSVPRepo       RSVPRepository
	LegacyPassRepo LegacyPassRepository
	PaymentRepo    PaymentRepository
	MemoryRepo     MemoryRepository

	// Aggregation queries (sqlx)
	StatsRepo StatsRepository
}

func NewRepositories(pool *pgxpool.Pool, db *sqlx.DB) *Repositories {
	return &Repositories{
		MemberRepo:     NewMemberRepository(pool),
		EventRepo:      NewEventRepository(pool),
		RSVPRepo:       NewRSVPRepository(pool),
		LegacyPassRepo: NewLegacyPassRepository(pool),
		PaymentRepo:    NewPaymentRepository(pool),
		MemoryRepo:     NewMemoryRepository(pool),

		StatsRepo: NewStatsRepository(db),
	}
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505). Duplicate RSVPs, emails and tokens are caught
// here at insert time rather than with a check-then-act lookup.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

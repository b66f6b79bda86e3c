package service

import (
	"context"

	"github.com/paige-inner-circle/legacy-backend/internal/repository"
)

// RSVPSummary is the per-status response count for an event.
type RSVPSummary struct {
	Accepted int `json:"accepted"`
	Declined int `json:"declined"`
	Total    int `json:"total"`
}

type StatsService interface {
	Dashboard(ctx context.Context) (*repository.DashboardStats, error)
	TierBreakdown(ctx context.Context, eventID string) ([]repository.TierBreakdownRow, error)
	RSVPSummary(ctx context.Context, eventID string) (*RSVPSummary, error)
}

type statsService struct {
	stats repository.StatsRepository
	rsvps repository.RSVPRepository
}

func NewStatsService(stats repository.StatsRepository, rsvps repository.RSVPRepository) StatsService {
	return &statsService{stats: stats, rsvps: rsvps}
}

func (s *statsService) Dashboard(ctx context.Context) (*repository.DashboardStats, error) {
	return s.stats.Dashboard(ctx)
}

func (s *statsService) TierBreakdown(ctx context.Context, eventID string) ([]repository.TierBreakdownRow, error) {
	return s.stats.TierBreakdown(ctx, eventID)
}

func (s *statsService) RSVPSummary(ctx context.Context, eventID string) (*RSVPSummary, error) {
	counts, err := s.rsvps.CountByStatus(ctx, eventID)
	if err != nil {
		return nil, err
	}
	summary := &RSVPSummary{
		Accepted: counts["accepted"],
		Declined: counts["declined"],
	}
	for _, n := range counts {
		summary.Total += n
	}
	return summary, nil
}

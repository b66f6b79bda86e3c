package service

import (
	"context"
	"log"
	"time"

	"github.com/paige-inner-circle/legacy-backend/internal/db"
	"github.com/paige-inner-circle/legacy-backend/internal/repository"
)

const (
	teaserCacheKey = "event:current:teaser"
	teaserCacheTTL = 5 * time.Minute
)

// EventTeaser is the public pre-login view of the current event. No venue
// address; that stays behind authentication.
type EventTeaser struct {
	Title     string  `json:"title"`
	Subtitle  *string `json:"subtitle"`
	EventDate string  `json:"event_date"`
	EventTime string  `json:"event_time"`
	VenueName string  `json:"venue_name"`
	DressCode *string `json:"dress_code"`
	Theme     *string `json:"theme"`
	Message   string  `json:"message"`
}

type EventService interface {
	Current(ctx context.Context) (*repository.Event, error)
	CurrentTeaser(ctx context.Context) (*EventTeaser, error)
	GetByID(ctx context.Context, id string) (*repository.Event, error)
	List(ctx context.Context, includeInactive bool) ([]*repository.Event, error)
	Create(ctx context.Context, event *repository.Event) error
	Update(ctx context.Context, event *repository.Event) error
	SetActive(ctx context.Context, id string, active bool) error
}

type eventService struct {
	eventRepo repository.EventRepository
	redis     *db.RedisDB
}

func NewEventService(eventRepo repository.EventRepository, redis *db.RedisDB) EventService {
	return &eventService{eventRepo: eventRepo, redis: redis}
}

func (s *eventService) Current(ctx context.Context) (*repository.Event, error) {
	event, err := s.eventRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrNoActiveEvent
	}
	return event, nil
}

// CurrentTeaser serves the public landing-page view, cached in Redis when
// available. Cache trouble falls through to the database.
func (s *eventService) CurrentTeaser(ctx context.Context) (*EventTeaser, error) {
	if s.redis != nil {
		var cached EventTeaser
		if err := s.redis.GetCache(ctx, teaserCacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	event, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}

	teaser := &EventTeaser{
		Title:     event.Title,
		Subtitle:  event.Subtitle,
		EventDate: event.EventDate.Format(eventDateLayout),
		EventTime: event.EventTime,
		VenueName: event.VenueName,
		DressCode: event.DressCode,
		Theme:     event.Theme,
		Message:   "An evening reserved for the Inner Circle. Request access with your invitation email.",
	}

	if s.redis != nil {
		if err := s.redis.SetCache(ctx, teaserCacheKey, teaser, teaserCacheTTL); err != nil {
			log.Printf("[Event] ⚠️ Teaser cache write failed: %v", err)
		}
	}
	return teaser, nil
}

func (s *eventService) GetByID(ctx context.Context, id string) (*repository.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrNotFound
	}
	return event, nil
}

func (s *eventService) List(ctx context.Context, includeInactive bool) ([]*repository.Event, error) {
	return s.eventRepo.FindAll(ctx, includeInactive)
}

func (s *eventService) Create(ctx context.Context, event *repository.Event) error {
	if event.Title == "" || event.VenueName == "" {
		return ErrInvalidInput
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return err
	}
	s.invalidateTeaser(ctx)
	return nil
}

func (s *eventService) Update(ctx context.Context, event *repository.Event) error {
	existing, err := s.eventRepo.FindByID(ctx, event.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return err
	}
	s.invalidateTeaser(ctx)
	return nil
}

func (s *eventService) SetActive(ctx context.Context, id string, active bool) error {
	existing, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	if err := s.eventRepo.SetActive(ctx, id, active); err != nil {
		return err
	}
	s.invalidateTeaser(ctx)
	return nil
}

func (s *eventService) invalidateTeaser(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.InvalidateCache(ctx, teaserCacheKey); err != nil {
		log.Printf("[Event] ⚠️ Teaser cache invalidation failed: %v", err)
	}
}

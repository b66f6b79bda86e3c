package service

import (
	"context"
	"log"

	"github.com/paige-inner-circle/legacy-backend/internal/repository"
	"github.com/paige-inner-circle/legacy-backend/internal/socket"
	"github.com/paige-inner-circle/legacy-backend/internal/types"
)

// PublishRequest carries the shared gallery and video links that get
// attached to every attendee's memory record.
type PublishRequest struct {
	PhotoGalleryURL  *string `json:"photo_gallery_url"`
	ThankYouVideoURL *string `json:"thank_you_video_url"`
}

// PublishResult summarizes a bulk publish run.
type PublishResult struct {
	EventID       string `json:"event_id"`
	AttendeeCount int    `json:"attendee_count"`
	Created       int    `json:"memories_created"`
	Skipped       int    `json:"memories_skipped"`
}

type MemoryService interface {
	// PublishForEvent creates a memory record for every member who accepted
	// the event invitation, assigning sequential attendee badge numbers.
	// Members that already have a memory for the event are skipped.
	PublishForEvent(ctx context.Context, eventID string, req *PublishRequest) (*PublishResult, error)

	// MyMemories lists all memory records belonging to a member.
	MyMemories(ctx context.Context, memberID string) ([]*repository.Memory, error)

	// EventMemory returns a member's memory for a specific event. The member
	// must have an accepted RSVP for the event.
	EventMemory(ctx context.Context, memberID, eventID string) (*repository.Memory, error)

	// Update replaces the mutable fields of an existing memory record.
	Update(ctx context.Context, memoryID string, req *PublishRequest) (*repository.Memory, error)

	// AllForEvent lists every memory published for an event.
	AllForEvent(ctx context.Context, eventID string) ([]*repository.Memory, error)

	// Delete removes a memory record.
	Delete(ctx context.Context, memoryID string) error
}

type memoryService struct {
	memories    repository.MemoryRepository
	rsvps       repository.RSVPRepository
	events      repository.EventRepository
	broadcaster *socket.Broadcaster
}

func NewMemoryService(
	memories repository.MemoryRepository,
	rsvps repository.RSVPRepository,
	events repository.EventRepository,
	broadcaster *socket.Broadcaster,
) MemoryService {
	return &memoryService{
		memories:    memories,
		rsvps:       rsvps,
		events:      events,
		broadcaster: broadcaster,
	}
}

func (s *memoryService) PublishForEvent(ctx context.Context, eventID string, req *PublishRequest) (*PublishResult, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrNotFound
	}

	rsvps, err := s.rsvps.FindByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	result := &PublishResult{EventID: eventID}
	badgeCounter := 1
	for _, r := range rsvps {
		if r.Status != types.RSVPAccepted {
			continue
		}
		result.AttendeeCount++

		existing, err := s.memories.FindByMemberAndEvent(ctx, r.MemberID, eventID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			result.Skipped++
			badgeCounter++
			continue
		}

		badge := badgeCounter
		memory := &repository.Memory{
			MemberID:         r.MemberID,
			EventID:          eventID,
			PhotoGalleryURL:  req.PhotoGalleryURL,
			ThankYouVideoURL: req.ThankYouVideoURL,
			BadgeNumber:      &badge,
		}
		if err := s.memories.Create(ctx, memory); err != nil {
			if repository.IsUniqueViolation(err) {
				result.Skipped++
				badgeCounter++
				continue
			}
			return nil, err
		}
		result.Created++
		badgeCounter++
	}

	log.Printf("🎞️  [Memories] Published for event %s: %d created, %d skipped", eventID, result.Created, result.Skipped)
	s.broadcaster.MemoriesPublished(eventID, result.Created)
	return result, nil
}

func (s *memoryService) MyMemories(ctx context.Context, memberID string) ([]*repository.Memory, error) {
	return s.memories.FindByMember(ctx, memberID)
}

func (s *memoryService) EventMemory(ctx context.Context, memberID, eventID string) (*repository.Memory, error) {
	rsvp, err := s.rsvps.FindByMemberAndEvent(ctx, memberID, eventID)
	if err != nil {
		return nil, err
	}
	if rsvp == nil || rsvp.Status != types.RSVPAccepted {
		return nil, ErrForbidden
	}

	memory, err := s.memories.FindByMemberAndEvent(ctx, memberID, eventID)
	if err != nil {
		return nil, err
	}
	if memory == nil {
		return nil, ErrNotFound
	}
	return memory, nil
}

func (s *memoryService) Update(ctx context.Context, memoryID string, req *PublishRequest) (*repository.Memory, error) {
	memory, err := s.memories.FindByID(ctx, memoryID)
	if err != nil {
		return nil, err
	}
	if memory == nil {
		return nil, ErrNotFound
	}

	if req.PhotoGalleryURL != nil {
		memory.PhotoGalleryURL = req.PhotoGalleryURL
	}
	if req.ThankYouVideoURL != nil {
		memory.ThankYouVideoURL = req.ThankYouVideoURL
	}
	if err := s.memories.Update(ctx, memory); err != nil {
		return nil, err
	}
	return memory, nil
}

func (s *memoryService) AllForEvent(ctx context.Context, eventID string) ([]*repository.Memory, error) {
	return s.memories.FindByEvent(ctx, eventID)
}

func (s *memoryService) Delete(ctx context.Context, memoryID string) error {
	memory, err := s.memories.FindByID(ctx, memoryID)
	if err != nil {
		return err
	}
	if memory == nil {
		return ErrNotFound
	}
	return s.memories.Delete(ctx, memoryID)
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paige-inner-circle/legacy-backend/internal/repository"
	"github.com/paige-inner-circle/legacy-backend/internal/types"
)

type memoryFixture struct {
	svc      MemoryService
	memories *fakeMemoryRepo
	rsvps    *fakeRSVPRepo
	events   *fakeEventRepo
	event    *repository.Event
}

func newMemoryFixture(t *testing.T) *memoryFixture {
	t.Helper()
	f := &memoryFixture{
		memories: newFakeMemoryRepo(),
		rsvps:    newFakeRSVPRepo(),
		events:   newFakeEventRepo(),
	}
	f.event = &repository.Event{Title: "The Inner Circle Gala"}
	require.NoError(t, f.events.Create(context.Background(), f.event))
	f.svc = NewMemoryService(f.memories, f.rsvps, f.events, nil)
	return f
}

func (f *memoryFixture) addRSVP(t *testing.T, memberID, status string) {
	t.Helper()
	require.NoError(t, f.rsvps.Create(context.Background(), &repository.RSVP{
		MemberID: memberID,
		EventID:  f.event.ID,
		Status:   status,
	}))
}

func TestPublishForEventCreatesBadgedMemories(t *testing.T) {
	f := newMemoryFixture(t)
	f.addRSVP(t, "member-1", types.RSVPAccepted)
	f.addRSVP(t, "member-2", types.RSVPAccepted)
	f.addRSVP(t, "member-3", types.RSVPDeclined)

	gallery := "https://photos.example.com/gala"
	result, err := f.svc.PublishForEvent(context.Background(), f.event.ID, &PublishRequest{
		PhotoGalleryURL: &gallery,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.AttendeeCount)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 0, result.Skipped)

	// Declined members get nothing
	memory, err := f.memories.FindByMemberAndEvent(context.Background(), "member-3", f.event.ID)
	require.NoError(t, err)
	assert.Nil(t, memory)

	// Attendees got badges and the shared gallery link
	memory, err = f.memories.FindByMemberAndEvent(context.Background(), "member-1", f.event.ID)
	require.NoError(t, err)
	require.NotNil(t, memory)
	require.NotNil(t, memory.BadgeNumber)
	require.NotNil(t, memory.PhotoGalleryURL)
	assert.Equal(t, gallery, *memory.PhotoGalleryURL)
}

func TestPublishForEventSkipsExisting(t *testing.T) {
	f := newMemoryFixture(t)
	f.addRSVP(t, "member-1", types.RSVPAccepted)

	_, err := f.svc.PublishForEvent(context.Background(), f.event.ID, &PublishRequest{})
	require.NoError(t, err)

	result, err := f.svc.PublishForEvent(context.Background(), f.event.ID, &PublishRequest{})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 1, result.Skipped)
}

func TestPublishForEventUnknownEvent(t *testing.T) {
	f := newMemoryFixture(t)

	_, err := f.svc.PublishForEvent(context.Background(), "missing", &PublishRequest{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEventMemoryRequiresAttendance(t *testing.T) {
	f := newMemoryFixture(t)
	f.addRSVP(t, "member-1", types.RSVPAccepted)
	f.addRSVP(t, "member-2", types.RSVPDeclined)

	// Attended but memories not published yet
	_, err := f.svc.EventMemory(context.Background(), "member-1", f.event.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, errPublish := f.svc.PublishForEvent(context.Background(), f.event.ID, &PublishRequest{})
	require.NoError(t, errPublish)

	memory, err := f.svc.EventMemory(context.Background(), "member-1", f.event.ID)
	require.NoError(t, err)
	assert.Equal(t, f.event.ID, memory.EventID)

	// Declined member never gets in
	_, err = f.svc.EventMemory(context.Background(), "member-2", f.event.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	// Someone who never responded is also out
	_, err = f.svc.EventMemory(context.Background(), "stranger", f.event.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestMemoryUpdate(t *testing.T) {
	f := newMemoryFixture(t)
	f.addRSVP(t, "member-1", types.RSVPAccepted)
	_, err := f.svc.PublishForEvent(context.Background(), f.event.ID, &PublishRequest{})
	require.NoError(t, err)

	existing, err := f.memories.FindByMemberAndEvent(context.Background(), "member-1", f.event.ID)
	require.NoError(t, err)

	video := "https://video.example.com/thanks"
	updated, err := f.svc.Update(context.Background(), existing.ID, &PublishRequest{ThankYouVideoURL: &video})
	require.NoError(t, err)
	require.NotNil(t, updated.ThankYouVideoURL)
	assert.Equal(t, video, *updated.ThankYouVideoURL)

	_, err = f.svc.Update(context.Background(), "missing", &PublishRequest{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryDelete(t *testing.T) {
	f := newMemoryFixture(t)
	f.addRSVP(t, "member-1", types.RSVPAccepted)
	_, err := f.svc.PublishForEvent(context.Background(), f.event.ID, &PublishRequest{})
	require.NoError(t, err)

	existing, err := f.memories.FindByMemberAndEvent(context.Background(), "member-1", f.event.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(context.Background(), existing.ID))

	gone, err := f.memories.FindByID(context.Background(), existing.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	assert.ErrorIs(t, f.svc.Delete(context.Background(), existing.ID), ErrNotFound)
}

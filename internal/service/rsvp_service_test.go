package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paige-inner-circle/legacy-backend/internal/config"
	"github.com/paige-inner-circle/legacy-backend/internal/passgen"
	"github.com/paige-inner-circle/legacy-backend/internal/repository"
	"github.com/paige-inner-circle/legacy-backend/internal/types"
)

type rsvpFixture struct {
	svc      RSVPService
	members  *fakeMemberRepo
	events   *fakeEventRepo
	rsvps    *fakeRSVPRepo
	passes   *fakePassRepo
	payments *fakePaymentRepo
	event    *repository.Event
}

func newRSVPFixture(t *testing.T) *rsvpFixture {
	t.Helper()
	cfg := &config.Config{
		PassPrice:    1000.00,
		PassCurrency: "USD",
		FrontendURL:  "http://localhost:5173",
		StaticDir:    t.TempDir(),
		FontDir:      t.TempDir(),
	}

	f := &rsvpFixture{
		members:  newFakeMemberRepo(),
		events:   newFakeEventRepo(),
		rsvps:    newFakeRSVPRepo(),
		passes:   newFakePassRepo(),
		payments: newFakePaymentRepo(),
	}

	f.event = &repository.Event{
		Title:     "The Inner Circle Gala",
		EventDate: time.Date(2026, time.December, 12, 0, 0, 0, 0, time.UTC),
		EventTime: "7:00 PM EST",
		VenueName: "The Grand Meridian",
	}
	require.NoError(t, f.events.Create(context.Background(), f.event))

	assets := NewAssetService(cfg, f.passes, passgen.NewGenerator(cfg.StaticDir, cfg.FontDir))
	f.svc = NewRSVPService(cfg, f.rsvps, f.events, f.members, f.passes, f.payments,
		NewGiftService(), assets, nil, nil)
	return f
}

func (f *rsvpFixture) addMember(t *testing.T, tier string) *repository.Member {
	t.Helper()
	member := &repository.Member{
		Email:          tier + "@example.com",
		FullName:       "Test Member",
		MembershipTier: tier,
		Role:           types.RoleMember,
		IsActive:       true,
	}
	require.NoError(t, f.members.Create(context.Background(), member))
	return member
}

func TestRespondAcceptIssuesPass(t *testing.T) {
	f := newRSVPFixture(t)
	member := f.addMember(t, types.TierVIP)

	outcome, err := f.svc.Respond(context.Background(), member.ID, RSVPRequest{Status: "accepted"})
	require.NoError(t, err)

	assert.Equal(t, "accepted", outcome.RSVP.Status)
	assert.Equal(t, "INNER-CIRCLE-#001", outcome.PassNumber)
	assert.Equal(t, types.GiftPremium, outcome.GiftTier)
	assert.Equal(t, types.AccessPlatinum, outcome.AccessLevel)
	assert.True(t, outcome.PaymentRequired)
	assert.Equal(t, "1000.00", outcome.PaymentAmount.StringFixed(2))
	assert.True(t, outcome.PassPreviewAvailable)
	assert.NotEmpty(t, outcome.LegacyToken)

	// Pass persisted with seating from the membership tier
	pass, err := f.passes.FindByToken(context.Background(), outcome.LegacyToken)
	require.NoError(t, err)
	require.NotNil(t, pass)
	require.NotNil(t, pass.SeatingCategory)
	assert.Equal(t, "VIP", *pass.SeatingCategory)

	// Pending payment created against the pass
	payment, err := f.payments.FindByLegacyPass(context.Background(), pass.ID)
	require.NoError(t, err)
	require.NotNil(t, payment)
	assert.Equal(t, types.PaymentPending, payment.Status)
	assert.Equal(t, "USD", payment.Currency)
}

func TestRespondAcceptFoundingMember(t *testing.T) {
	f := newRSVPFixture(t)
	member := f.addMember(t, types.TierFoundingMember)

	outcome, err := f.svc.Respond(context.Background(), member.ID, RSVPRequest{Status: "accepted"})
	require.NoError(t, err)

	assert.Equal(t, types.GiftElite, outcome.GiftTier)
	assert.Equal(t, types.AccessDiamond, outcome.AccessLevel)
}

func TestRespondSequencesPassNumbers(t *testing.T) {
	f := newRSVPFixture(t)
	first := f.addMember(t, types.TierInnerCircle)
	second := f.addMember(t, types.TierVIP)

	out1, err := f.svc.Respond(context.Background(), first.ID, RSVPRequest{Status: "accepted"})
	require.NoError(t, err)
	out2, err := f.svc.Respond(context.Background(), second.ID, RSVPRequest{Status: "accepted"})
	require.NoError(t, err)

	assert.Equal(t, "INNER-CIRCLE-#001", out1.PassNumber)
	assert.Equal(t, "INNER-CIRCLE-#002", out2.PassNumber)
}

func TestRespondDecline(t *testing.T) {
	f := newRSVPFixture(t)
	member := f.addMember(t, types.TierInnerCircle)

	outcome, err := f.svc.Respond(context.Background(), member.ID, RSVPRequest{Status: "declined"})
	require.NoError(t, err)

	assert.Equal(t, "declined", outcome.RSVP.Status)
	assert.True(t, outcome.FutureAccess)
	assert.NotEmpty(t, outcome.AppreciationMessage)
	assert.Empty(t, outcome.LegacyToken)
	assert.False(t, outcome.PaymentRequired)
}

func TestRespondDuplicateIsConflict(t *testing.T) {
	f := newRSVPFixture(t)
	member := f.addMember(t, types.TierVIP)

	_, err := f.svc.Respond(context.Background(), member.ID, RSVPRequest{Status: "accepted"})
	require.NoError(t, err)

	_, err = f.svc.Respond(context.Background(), member.ID, RSVPRequest{Status: "declined"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRespondInvalidStatus(t *testing.T) {
	f := newRSVPFixture(t)
	member := f.addMember(t, types.TierVIP)

	_, err := f.svc.Respond(context.Background(), member.ID, RSVPRequest{Status: "maybe"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRespondNoActiveEvent(t *testing.T) {
	f := newRSVPFixture(t)
	member := f.addMember(t, types.TierVIP)
	require.NoError(t, f.events.SetActive(context.Background(), f.event.ID, false))

	_, err := f.svc.Respond(context.Background(), member.ID, RSVPRequest{Status: "accepted"})
	assert.ErrorIs(t, err, ErrNoActiveEvent)
}

func TestStatusBeforeAndAfterResponse(t *testing.T) {
	f := newRSVPFixture(t)
	member := f.addMember(t, types.TierVIP)

	status, err := f.svc.Status(context.Background(), member.ID, "")
	require.NoError(t, err)
	assert.False(t, status.HasRSVP)

	_, err = f.svc.Respond(context.Background(), member.ID, RSVPRequest{Status: "accepted"})
	require.NoError(t, err)

	status, err = f.svc.Status(context.Background(), member.ID, "")
	require.NoError(t, err)
	require.True(t, status.HasRSVP)
	assert.Equal(t, "accepted", *status.Status)
}

func TestListForEvent(t *testing.T) {
	f := newRSVPFixture(t)
	vip := f.addMember(t, types.TierVIP)
	founding := f.addMember(t, types.TierFoundingMember)

	_, err := f.svc.Respond(context.Background(), vip.ID, RSVPRequest{Status: types.RSVPAccepted})
	require.NoError(t, err)
	_, err = f.svc.Respond(context.Background(), founding.ID, RSVPRequest{Status: types.RSVPDeclined})
	require.NoError(t, err)

	rsvps, err := f.svc.ListForEvent(context.Background(), f.event.ID)
	require.NoError(t, err)
	assert.Len(t, rsvps, 2)

	_, err = f.svc.ListForEvent(context.Background(), "missing-event")
	assert.ErrorIs(t, err, ErrNotFound)
}

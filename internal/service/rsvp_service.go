package service

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paige-inner-circle/legacy-backend/internal/config"
	"github.com/paige-inner-circle/legacy-backend/internal/email"
	"github.com/paige-inner-circle/legacy-backend/internal/repository"
	"github.com/paige-inner-circle/legacy-backend/internal/socket"
	"github.com/paige-inner-circle/legacy-backend/internal/types"
)

// RSVPRequest is a member's response to the invitation.
type RSVPRequest struct {
	EventID         string
	Status          string
	ResponseMessage *string
}

// RSVPOutcome is everything the response surface needs after an RSVP.
// Accept-only fields stay zero on decline.
type RSVPOutcome struct {
	Message string
	RSVP    *repository.RSVP

	// Accepted
	LegacyToken          string
	PassNumber           string
	GiftTier             string
	AccessLevel          string
	PaymentRequired      bool
	PaymentAmount        decimal.Decimal
	NextSteps            string
	PassPreviewAvailable bool
	Generation           *GenerationReport

	// Declined
	AppreciationMessage string
	FutureAccess        bool
}

// RSVPStatus reports whether and how a member has responded.
type RSVPStatus struct {
	HasRSVP bool             `json:"has_rsvp"`
	Status  *string          `json:"status"`
	RSVP    *repository.RSVP `json:"rsvp"`
}

type RSVPService interface {
	Respond(ctx context.Context, memberID string, req RSVPRequest) (*RSVPOutcome, error)
	Status(ctx context.Context, memberID, eventID string) (*RSVPStatus, error)
	ListForEvent(ctx context.Context, eventID string) ([]*repository.RSVP, error)
}

type rsvpService struct {
	cfg         *config.Config
	rsvpRepo    repository.RSVPRepository
	eventRepo   repository.EventRepository
	memberRepo  repository.MemberRepository
	passRepo    repository.LegacyPassRepository
	paymentRepo repository.PaymentRepository
	gifts       GiftService
	assets      *AssetService
	emailSvc    *email.Service
	broadcaster *socket.Broadcaster
}

func NewRSVPService(
	cfg *config.Config,
	rsvpRepo repository.RSVPRepository,
	eventRepo repository.EventRepository,
	memberRepo repository.MemberRepository,
	passRepo repository.LegacyPassRepository,
	paymentRepo repository.PaymentRepository,
	gifts GiftService,
	assets *AssetService,
	emailSvc *email.Service,
	broadcaster *socket.Broadcaster,
) RSVPService {
	return &rsvpService{
		cfg:         cfg,
		rsvpRepo:    rsvpRepo,
		eventRepo:   eventRepo,
		memberRepo:  memberRepo,
		passRepo:    passRepo,
		paymentRepo: paymentRepo,
		gifts:       gifts,
		assets:      assets,
		emailSvc:    emailSvc,
		broadcaster: broadcaster,
	}
}

// Respond records the RSVP and, on acceptance, issues the full pass:
// sequence number, token, tier assignments, pending payment and the asset
// pipeline. Asset or email trouble degrades the outcome instead of failing
// it; a duplicate response is ErrConflict.
func (s *rsvpService) Respond(ctx context.Context, memberID string, req RSVPRequest) (*RSVPOutcome, error) {
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if !types.IsValidRSVPStatus(status) {
		return nil, ErrInvalidInput
	}

	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotFound
	}

	event, err := s.resolveEvent(ctx, req.EventID)
	if err != nil {
		return nil, err
	}

	rsvp := &repository.RSVP{
		MemberID:        member.ID,
		EventID:         event.ID,
		Status:          status,
		ResponseMessage: req.ResponseMessage,
	}
	if err := s.rsvpRepo.Create(ctx, rsvp); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}

	s.broadcaster.RSVPReceived(member.FullName, status, event.ID)

	if status == types.RSVPDeclined {
		if s.emailSvc != nil {
			if err := s.emailSvc.SendDeclineThankYou(member.Email, email.DeclineData{
				MemberName: member.FullName,
				EventName:  event.Title,
			}); err != nil {
				log.Printf("[RSVP] ⚠️ Decline email failed for %s: %v", member.Email, err)
			}
		}
		return &RSVPOutcome{
			Message:             "While I'm saddened you won't be able to join us, I completely understand. You'll remain in my thoughts throughout the evening.",
			RSVP:                rsvp,
			AppreciationMessage: "Thank you for being part of my Inner Circle. You'll have priority access to all future exclusive events.",
			FutureAccess:        true,
		}, nil
	}

	return s.acceptInvitation(ctx, member, event, rsvp)
}

func (s *rsvpService) acceptInvitation(ctx context.Context, member *repository.Member, event *repository.Event, rsvp *repository.RSVP) (*RSVPOutcome, error) {
	seq, err := s.passRepo.NextPassNumber(ctx)
	if err != nil {
		return nil, err
	}
	passNumber := types.FormatPassNumber(seq)

	seating := types.SeatingForTier(member.MembershipTier)
	pass := &repository.LegacyPass{
		MemberID:        member.ID,
		EventID:         event.ID,
		PassNumber:      passNumber,
		Token:           uuid.New().String(),
		AccessLevel:     types.AccessLevelForTier(member.MembershipTier),
		GiftTier:        s.gifts.AssignGiftTier(member.MembershipTier),
		SeatingCategory: &seating,
	}
	if err := s.passRepo.Create(ctx, pass); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}

	amount := decimal.NewFromFloat(s.cfg.PassPrice)
	payment := &repository.Payment{
		MemberID:     member.ID,
		LegacyPassID: pass.ID,
		Amount:       amount,
		Currency:     s.cfg.PassCurrency,
		ContactEmail: member.Email,
		Status:       types.PaymentPending,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	report := s.assets.GenerateAll(ctx, pass, member, event)
	s.broadcaster.PassGenerated(passNumber, member.FullName, report.Degraded())

	if s.emailSvc != nil {
		if err := s.emailSvc.SendRSVPConfirmation(member.Email, email.RSVPConfirmationData{
			MemberName:        member.FullName,
			EventName:         event.Title,
			EventDate:         event.EventDate.Format(eventDateLayout),
			VenueName:         event.VenueName,
			PassNumberPreview: FormatPassNumberPreview(passNumber),
			PaymentURL:        s.cfg.FrontendURL + "/payment/" + pass.Token,
			Amount:            formatAmount(amount, s.cfg.PassCurrency),
		}); err != nil {
			log.Printf("[RSVP] ⚠️ Confirmation email failed for %s: %v", member.Email, err)
		}
	}

	return &RSVPOutcome{
		Message:              "I can't wait to share this moment with you. - Paige",
		RSVP:                 rsvp,
		LegacyToken:          pass.Token,
		PassNumber:           passNumber,
		GiftTier:             pass.GiftTier,
		AccessLevel:          pass.AccessLevel,
		PaymentRequired:      true,
		PaymentAmount:        amount,
		NextSteps:            "Complete your $1,000 investment to unlock full access to your Legacy Pass and all exclusive benefits.",
		PassPreviewAvailable: true,
		Generation:           report,
	}, nil
}

// Status looks up the member's RSVP, defaulting to the active event.
func (s *rsvpService) Status(ctx context.Context, memberID, eventID string) (*RSVPStatus, error) {
	if eventID == "" {
		event, err := s.eventRepo.FindActive(ctx)
		if err != nil {
			return nil, err
		}
		if event == nil {
			return &RSVPStatus{HasRSVP: false}, nil
		}
		eventID = event.ID
	}

	rsvp, err := s.rsvpRepo.FindByMemberAndEvent(ctx, memberID, eventID)
	if err != nil {
		return nil, err
	}
	if rsvp == nil {
		return &RSVPStatus{HasRSVP: false}, nil
	}
	return &RSVPStatus{HasRSVP: true, Status: &rsvp.Status, RSVP: rsvp}, nil
}

func (s *rsvpService) ListForEvent(ctx context.Context, eventID string) ([]*repository.RSVP, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrNotFound
	}
	return s.rsvpRepo.FindByEvent(ctx, eventID)
}

func (s *rsvpService) resolveEvent(ctx context.Context, eventID string) (*repository.Event, error) {
	if eventID == "" {
		event, err := s.eventRepo.FindActive(ctx)
		if err != nil {
			return nil, err
		}
		if event == nil {
			return nil, ErrNoActiveEvent
		}
		return event, nil
	}

	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil || !event.IsActive {
		return nil, ErrNotFound
	}
	return event, nil
}

func formatAmount(amount decimal.Decimal, currency string) string {
	if currency == "USD" {
		return "$" + amount.StringFixed(2)
	}
	return amount.StringFixed(2) + " " + currency
}

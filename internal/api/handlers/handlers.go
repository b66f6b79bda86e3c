package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paige-inner-circle/legacy-backend/internal/repository"
	"github.com/paige-inner-circle/legacy-backend/internal/service"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	Auth    *AuthHandler
	Event   *EventHandler
	RSVP    *RSVPHandler
	Pass    *PassHandler
	Payment *PaymentHandler
	Gift    *GiftHandler
	Memory  *MemoryHandler
	Admin   *AdminHandler
}

// NewHandlers creates all handlers
func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:    &AuthHandler{authService: services.Auth, memberService: services.Member},
		Event:   &EventHandler{eventService: services.Event},
		RSVP:    &RSVPHandler{rsvpService: services.RSVP},
		Pass: &PassHandler{
			tokenService:  services.Token,
			giftService:   services.Gift,
			assetService:  services.Asset,
			memberService: services.Member,
			eventService:  services.Event,
		},
		Payment: &PaymentHandler{paymentService: services.Payment, memberService: services.Member},
		Gift: &GiftHandler{
			giftService:   services.Gift,
			tokenService:  services.Token,
			memberService: services.Member,
		},
		Memory:  &MemoryHandler{memoryService: services.Memory},
		Admin:   &AdminHandler{memberService: services.Member, statsService: services.Stats},
	}
}

// respondError maps service errors to HTTP responses so handlers don't
// repeat the same switch everywhere.
func respondError(c *gin.Context, err error) {
	var paymentErr *service.PaymentRequiredError
	switch {
	case errors.As(err, &paymentErr):
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error":  "Payment required to unlock your Legacy Pass",
			"reason": paymentErr.Reason,
		})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, service.ErrNoActiveEvent):
		c.JSON(http.StatusNotFound, gin.H{"error": "No active event"})
	case errors.Is(err, service.ErrInvalidToken):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pass token"})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Already exists"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, service.ErrInactiveAccount):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account is deactivated"})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}

// ============================================
// Response Mappers
// ============================================

type MemberResponse struct {
	ID               string  `json:"id"`
	Email            string  `json:"email"`
	FullName         string  `json:"full_name"`
	PhoneNumber      *string `json:"phone_number,omitempty"`
	MembershipTier   string  `json:"membership_tier"`
	MembershipNumber *string `json:"membership_number,omitempty"`
	Role             string  `json:"role"`
	IsActive         bool    `json:"is_active"`
	HasLoggedIn      bool    `json:"has_logged_in"`
}

func toMemberResponse(m *repository.Member) MemberResponse {
	return MemberResponse{
		ID:               m.ID,
		Email:            m.Email,
		FullName:         m.FullName,
		PhoneNumber:      m.PhoneNumber,
		MembershipTier:   m.MembershipTier,
		MembershipNumber: m.MembershipNumber,
		Role:             m.Role,
		IsActive:         m.IsActive,
		HasLoggedIn:      m.HasLoggedIn,
	}
}

type PassResponse struct {
	ID              string  `json:"id"`
	PassNumber      string  `json:"pass_number"`
	Token           string  `json:"legacy_token"`
	AccessLevel     string  `json:"access_level"`
	GiftTier        string  `json:"gift_tier"`
	SeatingCategory *string `json:"seating_category,omitempty"`
	QRImageURL      *string `json:"qr_image_url,omitempty"`
	FrontImageURL   *string `json:"front_image_url,omitempty"`
	BackImageURL    *string `json:"back_image_url,omitempty"`
	PDFURL          *string `json:"pdf_url,omitempty"`
	IsActive        bool    `json:"is_active"`
}

func toPassResponse(p *repository.LegacyPass) PassResponse {
	return PassResponse{
		ID:              p.ID,
		PassNumber:      p.PassNumber,
		Token:           p.Token,
		AccessLevel:     p.AccessLevel,
		GiftTier:        p.GiftTier,
		SeatingCategory: p.SeatingCategory,
		QRImageURL:      staticURL(p.QRImagePath),
		FrontImageURL:   staticURL(p.FrontImagePath),
		BackImageURL:    staticURL(p.BackImagePath),
		PDFURL:          staticURL(p.PDFPath),
		IsActive:        p.IsActive,
	}
}

type PaymentResponse struct {
	ID            string  `json:"id"`
	MemberID      string  `json:"member_id"`
	LegacyPassID  string  `json:"legacy_pass_id"`
	Amount        string  `json:"amount"`
	Currency      string  `json:"currency"`
	PaymentMethod *string `json:"payment_method,omitempty"`
	ContactEmail  string  `json:"contact_email,omitempty"`
	Status        string  `json:"status"`
	VerifiedBy    *string `json:"verified_by,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

func toPaymentResponse(p *repository.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		MemberID:      p.MemberID,
		LegacyPassID:  p.LegacyPassID,
		Amount:        p.Amount.StringFixed(2),
		Currency:      p.Currency,
		PaymentMethod: p.Method,
		ContactEmail:  p.ContactEmail,
		Status:        p.Status,
		VerifiedBy:    p.VerifiedBy,
		Notes:         p.Notes,
	}
}

// staticURL converts a stored file path like "static/qr_codes/x.png" into
// the URL the router serves it from.
func staticURL(path *string) *string {
	if path == nil || *path == "" {
		return nil
	}
	url := "/" + *path
	return &url
}

package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/paige-inner-circle/legacy-backend/internal/repository"
	"github.com/paige-inner-circle/legacy-backend/internal/types"
)

// TokenAccessInfo describes what a pass token currently unlocks.
type TokenAccessInfo struct {
	Token             string `json:"token"`
	PassNumber        string `json:"pass_number"`
	AccessLevel       string `json:"access_level"`
	GiftTier          string `json:"gift_tier"`
	HasPayment        bool   `json:"has_payment"`
	PaymentVerified   bool   `json:"payment_verified"`
	CanAccessFullPass bool   `json:"can_access_full_pass"`
	PaymentStatus     string `json:"payment_status"`
}

// TokenService resolves pass tokens and enforces the payment gate.
type TokenService interface {
	GenerateToken() string
	ValidateToken(ctx context.Context, token string) (*repository.LegacyPass, error)
	GetPassByToken(ctx context.Context, token string, requirePayment bool) (*repository.LegacyPass, error)
	PaymentStatus(ctx context.Context, token string) (bool, *repository.Payment, error)
	AccessInfo(ctx context.Context, token string) (*TokenAccessInfo, error)
	Deactivate(ctx context.Context, token string) error
	Reactivate(ctx context.Context, token string) error
}

type tokenService struct {
	passRepo    repository.LegacyPassRepository
	paymentRepo repository.PaymentRepository
}

func NewTokenService(passRepo repository.LegacyPassRepository, paymentRepo repository.PaymentRepository) TokenService {
	return &tokenService{passRepo: passRepo, paymentRepo: paymentRepo}
}

// GenerateToken returns a fresh pass token. Uniqueness is enforced by the
// database index on legacy_passes.token.
func (s *tokenService) GenerateToken() string {
	return uuid.New().String()
}

// ValidateToken resolves a token to its active pass. Malformed tokens are
// ErrInvalidToken, unknown or deactivated ones ErrNotFound.
func (s *tokenService) ValidateToken(ctx context.Context, token string) (*repository.LegacyPass, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(token))
	if err != nil {
		return nil, ErrInvalidToken
	}

	pass, err := s.passRepo.FindByToken(ctx, parsed.String())
	if err != nil {
		return nil, err
	}
	if pass == nil || !pass.IsActive {
		return nil, ErrNotFound
	}
	return pass, nil
}

// PaymentStatus reports whether the token's payment has been verified.
func (s *tokenService) PaymentStatus(ctx context.Context, token string) (bool, *repository.Payment, error) {
	pass, err := s.ValidateToken(ctx, token)
	if err != nil {
		return false, nil, err
	}

	payment, err := s.paymentRepo.FindByLegacyPass(ctx, pass.ID)
	if err != nil {
		return false, nil, err
	}
	if payment == nil {
		return false, nil, nil
	}
	return payment.Status == types.PaymentVerified, payment, nil
}

// GetPassByToken resolves a token, optionally requiring a verified payment.
// When the gate is closed the error is a *PaymentRequiredError carrying the
// reason.
func (s *tokenService) GetPassByToken(ctx context.Context, token string, requirePayment bool) (*repository.LegacyPass, error) {
	pass, err := s.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if requirePayment {
		verified, payment, err := s.PaymentStatus(ctx, token)
		if err != nil {
			return nil, err
		}
		if !verified {
			reason := "no_payment"
			if payment != nil {
				reason = payment.Status
			}
			return nil, &PaymentRequiredError{Reason: reason}
		}
	}
	return pass, nil
}

func (s *tokenService) AccessInfo(ctx context.Context, token string) (*TokenAccessInfo, error) {
	pass, err := s.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}

	verified, payment, err := s.PaymentStatus(ctx, token)
	if err != nil {
		return nil, err
	}

	paymentStatus := "no_payment"
	if payment != nil {
		paymentStatus = payment.Status
	}

	return &TokenAccessInfo{
		Token:             pass.Token,
		PassNumber:        pass.PassNumber,
		AccessLevel:       pass.AccessLevel,
		GiftTier:          pass.GiftTier,
		HasPayment:        payment != nil,
		PaymentVerified:   verified,
		CanAccessFullPass: verified,
		PaymentStatus:     paymentStatus,
	}, nil
}

func (s *tokenService) Deactivate(ctx context.Context, token string) error {
	pass, err := s.ValidateToken(ctx, token)
	if err != nil {
		return err
	}
	return s.passRepo.SetActive(ctx, pass.ID, false)
}

// Reactivate restores a previously deactivated pass, so it looks up the
// token without the is_active filter.
func (s *tokenService) Reactivate(ctx context.Context, token string) error {
	parsed, err := uuid.Parse(strings.TrimSpace(token))
	if err != nil {
		return ErrInvalidToken
	}

	pass, err := s.passRepo.FindByToken(ctx, parsed.String())
	if err != nil {
		return err
	}
	if pass == nil {
		return ErrNotFound
	}
	return s.passRepo.SetActive(ctx, pass.ID, true)
}

// FormatPassNumberPreview obscures the numeric portion of a pass number
// for the pre-payment teaser, e.g. "INNER-CIRCLE-#007" -> "INNER-CIRCLE-#***".
func FormatPassNumberPreview(passNumber string) string {
	parts := strings.Split(passNumber, "#")
	if len(parts) == 2 {
		return parts[0] + "#***"
	}
	return "***"
}

package service

import (
	"context"
	"log"
	"time"

	"github.com/paige-inner-circle/legacy-backend/internal/config"
	"github.com/paige-inner-circle/legacy-backend/internal/email"
	"github.com/paige-inner-circle/legacy-backend/internal/repository"
	"github.com/paige-inner-circle/legacy-backend/internal/socket"
	"github.com/paige-inner-circle/legacy-backend/internal/types"
)

// PaymentMethod describes one accepted payment channel.
type PaymentMethod struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	ProcessingTime string `json:"processing_time"`
	Icon           string `json:"icon"`
}

// PaymentMethods is the concierge payment menu.
var PaymentMethods = []PaymentMethod{
	{ID: "bank_transfer", Name: "Bank Transfer", Description: "Direct bank transfer (ACH or wire)", ProcessingTime: "1-3 business days", Icon: "🏦"},
	{ID: "credit_card", Name: "Credit/Debit Card", Description: "Visa, Mastercard, American Express", ProcessingTime: "Instant verification", Icon: "💳"},
	{ID: "paypal", Name: "PayPal", Description: "Secure PayPal payment", ProcessingTime: "Instant verification", Icon: "💰"},
	{ID: "cryptocurrency", Name: "Cryptocurrency", Description: "Bitcoin, Ethereum, USDC", ProcessingTime: "1-2 hours for confirmation", Icon: "₿"},
	{ID: "wire_transfer", Name: "Wire Transfer", Description: "International wire transfer", ProcessingTime: "2-5 business days", Icon: "🌐"},
	{ID: "other", Name: "Other", Description: "Zelle, Venmo, or alternative methods", ProcessingTime: "Varies", Icon: "📱"},
}

// PaymentStatusInfo is the member-facing view of a payment.
type PaymentStatusInfo struct {
	PaymentID         string     `json:"payment_id"`
	Status            string     `json:"status"`
	IsVerified        bool       `json:"is_verified"`
	VerifiedAt        *time.Time `json:"verified_at"`
	CanAccessFullPass bool       `json:"can_access_full_pass"`
	Message           string     `json:"message"`
}

// ContactRequest is the member's payment contact submission.
type ContactRequest struct {
	LegacyToken   string
	ContactEmail  string
	PaymentMethod string
}

type PaymentService interface {
	Methods() []PaymentMethod
	SubmitContact(ctx context.Context, req ContactRequest) error
	StatusByToken(ctx context.Context, token string) (*PaymentStatusInfo, error)
	Verify(ctx context.Context, paymentID, adminEmail string, notes *string) (*repository.Payment, error)
	MarkFailed(ctx context.Context, paymentID string, notes *string) (*repository.Payment, error)
	Pending(ctx context.Context) ([]*repository.Payment, error)
	All(ctx context.Context, status string) ([]*repository.Payment, error)
}

type paymentService struct {
	cfg         *config.Config
	paymentRepo repository.PaymentRepository
	passRepo    repository.LegacyPassRepository
	memberRepo  repository.MemberRepository
	emailSvc    *email.Service
	broadcaster *socket.Broadcaster
}

func NewPaymentService(
	cfg *config.Config,
	paymentRepo repository.PaymentRepository,
	passRepo repository.LegacyPassRepository,
	memberRepo repository.MemberRepository,
	emailSvc *email.Service,
	broadcaster *socket.Broadcaster,
) PaymentService {
	return &paymentService{
		cfg:         cfg,
		paymentRepo: paymentRepo,
		passRepo:    passRepo,
		memberRepo:  memberRepo,
		emailSvc:    emailSvc,
		broadcaster: broadcaster,
	}
}

func (s *paymentService) Methods() []PaymentMethod {
	return PaymentMethods
}

// SubmitContact records the member's chosen payment method and contact
// email, then notifies both sides. Already-verified payments are ErrConflict.
func (s *paymentService) SubmitContact(ctx context.Context, req ContactRequest) error {
	if req.ContactEmail == "" || req.PaymentMethod == "" {
		return ErrInvalidInput
	}

	pass, payment, err := s.resolveByToken(ctx, req.LegacyToken)
	if err != nil {
		return err
	}
	if payment.Status == types.PaymentVerified {
		return ErrConflict
	}

	if err := s.paymentRepo.SetMethod(ctx, payment.ID, req.PaymentMethod, req.ContactEmail); err != nil {
		return err
	}

	member, err := s.memberRepo.FindByID(ctx, payment.MemberID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrNotFound
	}

	s.broadcaster.PaymentSubmitted(payment.ID, member.FullName,
		formatAmount(payment.Amount, payment.Currency))

	if s.emailSvc != nil {
		if err := s.emailSvc.SendPaymentInstructions(req.ContactEmail, email.PaymentInstructionsData{
			MemberName:   member.FullName,
			Amount:       formatAmount(payment.Amount, payment.Currency),
			ContactEmail: req.ContactEmail,
			PaymentURL:   s.cfg.FrontendURL + "/payment/" + pass.Token,
		}); err != nil {
			log.Printf("[Payment] ⚠️ Instructions email failed for %s: %v", req.ContactEmail, err)
		}

		if err := s.emailSvc.SendAdminPaymentRequest(s.cfg.AdminEmail, email.AdminPaymentRequestData{
			MemberName:   member.FullName,
			MemberEmail:  member.Email,
			PassNumber:   pass.PassNumber,
			Amount:       formatAmount(payment.Amount, payment.Currency),
			Method:       req.PaymentMethod,
			DashboardURL: s.cfg.FrontendURL + "/admin/payments",
		}); err != nil {
			log.Printf("[Payment] ⚠️ Admin notification failed: %v", err)
		}
	}
	return nil
}

func (s *paymentService) StatusByToken(ctx context.Context, token string) (*PaymentStatusInfo, error) {
	_, payment, err := s.resolveByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	messages := map[string]string{
		types.PaymentPending:  "Your payment request is being processed. You'll receive an update within 24 hours.",
		types.PaymentVerified: "Payment confirmed! You now have full access to your Legacy Pass.",
		types.PaymentFailed:   "Payment verification encountered an issue. Our team will contact you shortly.",
	}
	message, ok := messages[payment.Status]
	if !ok {
		message = "Payment status unknown."
	}

	verified := payment.Status == types.PaymentVerified
	return &PaymentStatusInfo{
		PaymentID:         payment.ID,
		Status:            payment.Status,
		IsVerified:        verified,
		VerifiedAt:        payment.VerifiedAt,
		CanAccessFullPass: verified,
		Message:           message,
	}, nil
}

// Verify marks a payment verified and unlocks the member's full pass.
// Verifying twice is ErrConflict.
func (s *paymentService) Verify(ctx context.Context, paymentID, adminEmail string, notes *string) (*repository.Payment, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrNotFound
	}
	// Both verified and failed are terminal; only a pending payment moves.
	if payment.Status != types.PaymentPending {
		return nil, ErrConflict
	}

	if err := s.paymentRepo.MarkVerified(ctx, payment.ID, adminEmail, notes); err != nil {
		return nil, err
	}

	pass, err := s.passRepo.FindByID(ctx, payment.LegacyPassID)
	if err != nil {
		return nil, err
	}
	member, err := s.memberRepo.FindByID(ctx, payment.MemberID)
	if err != nil {
		return nil, err
	}

	if pass != nil {
		s.broadcaster.PaymentVerified(payment.ID, pass.PassNumber)
	}

	if s.emailSvc != nil && member != nil && pass != nil {
		if err := s.emailSvc.SendPaymentVerified(member.Email, email.PaymentVerifiedData{
			MemberName: member.FullName,
			PassNumber: pass.PassNumber,
			PassURL:    s.cfg.FrontendURL + "/pass/" + pass.Token,
		}); err != nil {
			log.Printf("[Payment] ⚠️ Verified email failed for %s: %v", member.Email, err)
		}
	}

	return s.paymentRepo.FindByID(ctx, payment.ID)
}

func (s *paymentService) MarkFailed(ctx context.Context, paymentID string, notes *string) (*repository.Payment, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrNotFound
	}
	if payment.Status != types.PaymentPending {
		return nil, ErrConflict
	}

	if err := s.paymentRepo.MarkFailed(ctx, payment.ID, notes); err != nil {
		return nil, err
	}

	if pass, err := s.passRepo.FindByID(ctx, payment.LegacyPassID); err == nil && pass != nil {
		s.broadcaster.PaymentFailed(payment.ID, pass.PassNumber)
	}
	return s.paymentRepo.FindByID(ctx, payment.ID)
}

func (s *paymentService) Pending(ctx context.Context) ([]*repository.Payment, error) {
	return s.paymentRepo.FindByStatus(ctx, types.PaymentPending)
}

// All lists payments, optionally filtered by status.
func (s *paymentService) All(ctx context.Context, status string) ([]*repository.Payment, error) {
	if status != "" {
		if !types.IsValidPaymentStatus(status) {
			return nil, ErrInvalidInput
		}
		return s.paymentRepo.FindByStatus(ctx, status)
	}

	// No status filter: union of all three states keeps the query simple
	all := []*repository.Payment{}
	for _, st := range types.ValidPaymentStatuses {
		payments, err := s.paymentRepo.FindByStatus(ctx, st)
		if err != nil {
			return nil, err
		}
		all = append(all, payments...)
	}
	return all, nil
}

func (s *paymentService) resolveByToken(ctx context.Context, token string) (*repository.LegacyPass, *repository.Payment, error) {
	tokenSvc := NewTokenService(s.passRepo, s.paymentRepo)
	pass, err := tokenSvc.ValidateToken(ctx, token)
	if err != nil {
		return nil, nil, err
	}

	payment, err := s.paymentRepo.FindByLegacyPass(ctx, pass.ID)
	if err != nil {
		return nil, nil, err
	}
	if payment == nil {
		return nil, nil, ErrNotFound
	}
	return pass, payment, nil
}

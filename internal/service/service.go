package service

import (
	"errors"
	"fmt"

	"github.com/paige-inner-circle/legacy-backend/internal/config"
	"github.com/paige-inner-circle/legacy-backend/internal/db"
	"github.com/paige-inner-circle/legacy-backend/internal/email"
	"github.com/paige-inner-circle/legacy-backend/internal/passgen"
	"github.com/paige-inner-circle/legacy-backend/internal/repository"
	"github.com/paige-inner-circle/legacy-backend/internal/socket"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveAccount    = errors.New("account is deactivated")
	ErrInvalidToken       = errors.New("invalid token")
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("resource already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrNoActiveEvent      = errors.New("no active event")
)

// PaymentRequiredError gates full-pass access behind a verified payment.
// Reason is one of "pending", "failed" or "no_payment".
type PaymentRequiredError struct {
	Reason string
}

func (e *PaymentRequiredError) Error() string {
	return fmt.Sprintf("payment required: %s", e.Reason)
}

// ============================================
// Services Container
// ============================================

type Services struct {
	Auth    AuthService
	Member  MemberService
	Event   EventService
	RSVP    RSVPService
	Token   TokenService
	Gift    GiftService
	Payment PaymentService
	Memory  MemoryService
	Stats   StatsService
	Asset   *AssetService

	Broadcaster *socket.Broadcaster
}

// ServiceDeps contains all dependencies needed to create services
type ServiceDeps struct {
	Config      *config.Config
	Repos       *repository.Repositories
	Redis       *db.RedisDB
	EmailSvc    *email.Service
	Broadcaster *socket.Broadcaster
}

func NewServices(deps *ServiceDeps) *Services {
	// Asset pipeline is shared by RSVP, payment and the cron sweep
	assetService := NewAssetService(
		deps.Config,
		deps.Repos.LegacyPassRepo,
		passgen.NewGenerator(deps.Config.StaticDir, deps.Config.FontDir),
	)

	giftService := NewGiftService()

	return &Services{
		Auth:   NewAuthService(deps.Config, deps.Repos.MemberRepo),
		Member: NewMemberService(deps.Repos.MemberRepo),
		Event:  NewEventService(deps.Repos.EventRepo, deps.Redis),
		RSVP: NewRSVPService(
			deps.Config,
			deps.Repos.RSVPRepo,
			deps.Repos.EventRepo,
			deps.Repos.MemberRepo,
			deps.Repos.LegacyPassRepo,
			deps.Repos.PaymentRepo,
			giftService,
			assetService,
			deps.EmailSvc,
			deps.Broadcaster,
		),
		Token: NewTokenService(deps.Repos.LegacyPassRepo, deps.Repos.PaymentRepo),
		Gift:  giftService,
		Payment: NewPaymentService(
			deps.Config,
			deps.Repos.PaymentRepo,
			deps.Repos.LegacyPassRepo,
			deps.Repos.MemberRepo,
			deps.EmailSvc,
			deps.Broadcaster,
		),
		Memory: NewMemoryService(
			deps.Repos.MemoryRepo,
			deps.Repos.RSVPRepo,
			deps.Repos.EventRepo,
			deps.Broadcaster,
		),
		Stats:       NewStatsService(deps.Repos.StatsRepo, deps.Repos.RSVPRepo),
		Asset:       assetService,
		Broadcaster: deps.Broadcaster,
	}
}

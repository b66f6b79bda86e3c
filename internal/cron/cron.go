package cron

import (
	"context"
	"log"
	"time"

	"github.com/paige-inner-circle/legacy-backend/internal/repository"
	"github.com/paige-inner-circle/legacy-backend/internal/service"
	"github.com/robfig/cron/v3"
)

// Scheduler handles scheduled tasks
type Scheduler struct {
	cron        *cron.Cron
	services    *service.Services
	passRepo    repository.LegacyPassRepository
	memberRepo  repository.MemberRepository
	eventRepo   repository.EventRepository
	paymentRepo repository.PaymentRepository
}

// NewScheduler creates a new scheduler
func NewScheduler(services *service.Services, repos *repository.Repositories) *Scheduler {
	return &Scheduler{
		cron:        cron.New(),
		services:    services,
		passRepo:    repos.LegacyPassRepo,
		memberRepo:  repos.MemberRepo,
		eventRepo:   repos.EventRepo,
		paymentRepo: repos.PaymentRepo,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	// Run every night at 3 AM - regenerate missing pass assets
	s.cron.AddFunc("0 3 * * *", func() {
		log.Println("[Cron] Running missing asset sweep...")
		s.regenerateMissingAssets()
	})

	// Run every hour - pending payment reminder for the admin log
	s.cron.AddFunc("0 * * * *", func() {
		log.Println("[Cron] Running pending payment check...")
		s.reportPendingPayments()
	})

	s.cron.Start()
	log.Println("✅ [Cron] Scheduler started")
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("🛑 [Cron] Scheduler stopped")
}

// regenerateMissingAssets retries the asset pipeline for passes whose QR,
// card images or PDF never made it to disk.
func (s *Scheduler) regenerateMissingAssets() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	passes, err := s.passRepo.FindMissingAssets(ctx)
	if err != nil {
		log.Printf("❌ [Cron] Failed to list passes with missing assets: %v", err)
		return
	}
	if len(passes) == 0 {
		return
	}

	log.Printf("[Cron] %d passes with missing assets", len(passes))
	repaired := 0
	for _, pass := range passes {
		member, err := s.memberRepo.FindByID(ctx, pass.MemberID)
		if err != nil || member == nil {
			log.Printf("⚠️ [Cron] Skipping pass %s: member lookup failed", pass.PassNumber)
			continue
		}
		event, err := s.eventRepo.FindByID(ctx, pass.EventID)
		if err != nil || event == nil {
			log.Printf("⚠️ [Cron] Skipping pass %s: event lookup failed", pass.PassNumber)
			continue
		}

		report := s.services.Asset.GenerateAll(ctx, pass, member, event)
		if report.Degraded() {
			log.Printf("⚠️ [Cron] Pass %s still degraded after retry", pass.PassNumber)
			continue
		}
		repaired++
	}
	log.Printf("✅ [Cron] Asset sweep complete: %d/%d repaired", repaired, len(passes))
}

// reportPendingPayments logs how many payments are waiting on verification.
func (s *Scheduler) reportPendingPayments() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pending, err := s.paymentRepo.FindByStatus(ctx, "pending")
	if err != nil {
		log.Printf("❌ [Cron] Failed to list pending payments: %v", err)
		return
	}
	if len(pending) > 0 {
		log.Printf("💳 [Cron] %d payments awaiting verification", len(pending))
	}
}

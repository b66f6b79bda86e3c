// internal/seed/seed.go
package seed

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/paige-inner-circle/legacy-backend/internal/repository"
	"github.com/paige-inner-circle/legacy-backend/internal/types"
	"golang.org/x/crypto/bcrypt"
)

func SeedData(repos *repository.Repositories) {
	ctx := context.Background()

	// Check if data already exists
	members, _ := repos.MemberRepo.FindAll(ctx, true, 1, 0)
	if len(members) > 0 {
		log.Println("[Seed] Data already exists, skipping...")
		return
	}

	log.Println("[Seed] 🌱 Creating initial data...")

	// ============================================
	// ADMIN
	// ============================================
	password, _ := bcrypt.GenerateFromPassword([]byte("change-me-now"), bcrypt.DefaultCost)
	passwordHash := string(password)

	admin := &repository.Member{
		Email:          "paige@paigeinnercircle.com",
		FullName:       "Paige",
		MembershipTier: types.TierFoundingMember,
		Role:           types.RoleAdmin,
		PasswordHash:   &passwordHash,
		IsActive:       true,
	}
	repos.MemberRepo.Create(ctx, admin)

	// ============================================
	// MEMBERS (one per tier)
	// ============================================
	seedMembers := []struct {
		email  string
		name   string
		tier   string
		number string
	}{
		{"marcus.webb@example.com", "Marcus Webb", types.TierFoundingMember, "FM-001"},
		{"elena.vasquez@example.com", "Elena Vasquez", types.TierVIP, "VIP-014"},
		{"james.okafor@example.com", "James Okafor", types.TierInnerCircle, "IC-042"},
		{"sofia.lindqvist@example.com", "Sofia Lindqvist", types.TierInnerCircle, "IC-077"},
	}
	for _, m := range seedMembers {
		number := m.number
		repos.MemberRepo.Create(ctx, &repository.Member{
			Email:            m.email,
			FullName:         m.name,
			MembershipTier:   m.tier,
			MembershipNumber: &number,
			Role:             types.RoleMember,
			IsActive:         true,
		})
	}
	log.Printf("✅ Created admin + %d members", len(seedMembers))

	// ============================================
	// ACTIVE EVENT
	// ============================================
	subtitle := "An Evening of Legacy"
	dressCode := "Black Tie"
	theme := "Gold & Midnight"
	instructions := "Arrive by 6:30 PM for the private reception. Photography is handled by our team."
	schedule, _ := json.Marshal([]map[string]string{
		{"time": "7:00 PM", "item": "Champagne Reception"},
		{"time": "8:00 PM", "item": "Dinner & Address"},
		{"time": "10:00 PM", "item": "Legacy Ceremony"},
		{"time": "11:00 PM", "item": "Farewell Toast"},
	})
	amenities, _ := json.Marshal([]string{
		"Private chauffeur service",
		"Five-course tasting menu",
		"Commemorative gift suite",
		"Professional portrait session",
	})

	event := &repository.Event{
		Title:               "The Inner Circle Gala",
		Subtitle:            &subtitle,
		Description:         "A once-in-a-lifetime evening celebrating the members who built the Inner Circle.",
		EventDate:           time.Date(2026, time.December, 12, 0, 0, 0, 0, time.UTC),
		EventTime:           "7:00 PM EST",
		VenueName:           "The Grand Meridian",
		VenueAddress:        "480 Park Avenue, New York, NY",
		DressCode:           &dressCode,
		Theme:               &theme,
		Schedule:            schedule,
		Amenities:           amenities,
		SpecialInstructions: &instructions,
		IsActive:            true,
	}
	repos.EventRepo.Create(ctx, event)
	log.Printf("✅ Created active event: %s", event.Title)

	log.Println("[Seed] 🌱 Done")
}

package service

import (
	"fmt"
	"strings"

	"github.com/paige-inner-circle/legacy-backend/internal/types"
)

// GiftTierDetails is the full gift manifest for one tier.
type GiftTierDetails struct {
	WelcomeGift   []string `json:"welcome_gift"`
	EventGifts    []string `json:"event_gifts"`
	FarewellGift  []string `json:"farewell_gift"`
	RaffleEntries int      `json:"raffle_entries"`
	SpecialPerks  []string `json:"special_perks,omitempty"`
}

// GiftPreview is the mystery-style teaser shown before payment.
type GiftPreview struct {
	Tier             string         `json:"tier"`
	TotalItems       int            `json:"total_items"`
	Categories       map[string]int `json:"categories"`
	RaffleEntries    int            `json:"raffle_entries"`
	TeaserItems      []string       `json:"teaser_items"`
	MysteryMessage   string         `json:"mystery_message"`
	SpecialHighlight string         `json:"special_highlight,omitempty"`
}

// GiftTierComparison summarizes one tier for the comparison table.
type GiftTierComparison struct {
	Name            string `json:"name"`
	WelcomeItems    int    `json:"welcome_items"`
	EventItems      int    `json:"event_items"`
	FarewellItems   int    `json:"farewell_items"`
	TotalItems      int    `json:"total_items"`
	RaffleEntries   int    `json:"raffle_entries"`
	HasSpecialPerks bool   `json:"has_special_perks"`
}

type GiftService interface {
	AssignGiftTier(membershipTier string) string
	Details(giftTier string) GiftTierDetails
	FlatList(giftTier string) []string
	Preview(giftTier string) GiftPreview
	Categories(giftTier string) map[string][]string
	Compare() map[string]GiftTierComparison
	Highlights(giftTier string, limit int) []string
	IsValidTier(tier string) bool
}

type giftService struct{}

func NewGiftService() GiftService {
	return &giftService{}
}

var giftsByTier = map[string]GiftTierDetails{
	types.GiftStandard: {
		WelcomeGift: []string{
			"Personalized welcome card with Paige's signature",
			"Luxury gift bag with branded items",
			"Commemorative photo frame",
		},
		EventGifts: []string{
			"Premium party favors",
			"Exclusive merchandise",
			"Signature cocktail recipe card",
			"Event photo package (digital)",
		},
		FarewellGift: []string{
			"Thank you note from Paige",
			"Digital photo album access",
			"Certificate of attendance",
		},
		RaffleEntries: 2,
	},
	types.GiftPremium: {
		WelcomeGift: []string{
			"Luxury welcome package with Paige's signature",
			"Designer gift bag with premium items",
			"Custom crystal photo frame",
			"Artisan chocolates",
		},
		EventGifts: []string{
			"Premium party favors",
			"Exclusive limited-edition merchandise",
			"Signature cocktail recipe card (printed)",
			"Professional event photo package (print + digital)",
			"Personalized champagne flute",
			"Access to VIP lounge",
		},
		FarewellGift: []string{
			"Handwritten thank you note from Paige",
			"Premium digital photo album",
			"Certificate of attendance (framed)",
			"Exclusive discount code for future events",
		},
		RaffleEntries: 5,
	},
	types.GiftElite: {
		WelcomeGift: []string{
			"Ultra-luxury welcome package with personal video message from Paige",
			"Designer gift bag with exclusive premium items",
			"Custom engraved crystal photo frame",
			"Artisan chocolates and gourmet treats",
			"Luxury scented candle",
		},
		EventGifts: []string{
			"Premium party favors (double portion)",
			"Exclusive limited-edition merchandise (signed)",
			"Signature cocktail recipe card (leather-bound)",
			"Professional event photo package (premium print + digital)",
			"Personalized engraved champagne flute set",
			"VIP lounge access with concierge service",
			"Backstage/private moment with Paige",
			"Commemorative event medallion",
		},
		FarewellGift: []string{
			"Handwritten thank you letter from Paige (framed)",
			"Premium digital photo album + professional photo book",
			"Certificate of founding membership (museum quality frame)",
			"Lifetime VIP status for all future events",
			"Exclusive merchandise not available to others",
			"Personal Paige hotline for future event RSVP",
		},
		RaffleEntries: 10,
		SpecialPerks: []string{
			"Priority seating at all future events",
			"Annual exclusive gift delivery",
			"Access to private Inner Circle community",
		},
	},
}

// AssignGiftTier maps a membership tier to its gift tier. Unknown tiers
// fall back to standard.
func (s *giftService) AssignGiftTier(membershipTier string) string {
	switch strings.ToLower(membershipTier) {
	case types.TierFoundingMember:
		return types.GiftElite
	case types.TierVIP:
		return types.GiftPremium
	default:
		return types.GiftStandard
	}
}

func (s *giftService) Details(giftTier string) GiftTierDetails {
	if details, ok := giftsByTier[strings.ToLower(giftTier)]; ok {
		return details
	}
	return giftsByTier[types.GiftStandard]
}

// FlatList flattens the full manifest into a single list, including the
// raffle entry line and any elite perks.
func (s *giftService) FlatList(giftTier string) []string {
	details := s.Details(giftTier)

	list := []string{}
	list = append(list, details.WelcomeGift...)
	list = append(list, details.EventGifts...)
	list = append(list, details.FarewellGift...)
	if details.RaffleEntries > 0 {
		list = append(list, fmt.Sprintf("%d exclusive raffle entries", details.RaffleEntries))
	}
	list = append(list, details.SpecialPerks...)
	return list
}

func (s *giftService) Preview(giftTier string) GiftPreview {
	details := s.Details(giftTier)
	tier := strings.ToLower(giftTier)
	if !s.IsValidTier(tier) {
		tier = types.GiftStandard
	}

	preview := GiftPreview{
		Tier:       strings.ToUpper(tier),
		TotalItems: len(details.WelcomeGift) + len(details.EventGifts) + len(details.FarewellGift),
		Categories: map[string]int{
			"welcome":  len(details.WelcomeGift),
			"event":    len(details.EventGifts),
			"farewell": len(details.FarewellGift),
		},
		RaffleEntries: details.RaffleEntries,
		TeaserItems: []string{
			"Personalized welcome package from Paige",
			"Exclusive event merchandise",
			"Premium party favors",
			"Commemorative keepsakes",
			"...and more surprises!",
		},
		MysteryMessage: "✨ The complete gift experience will be revealed after payment verification",
	}

	switch tier {
	case types.GiftElite:
		preview.SpecialHighlight = "🌟 Includes exclusive founding member perks and lifetime VIP status"
	case types.GiftPremium:
		preview.SpecialHighlight = "💎 Includes VIP lounge access and personalized items"
	}
	return preview
}

func (s *giftService) Categories(giftTier string) map[string][]string {
	details := s.Details(giftTier)
	perks := details.SpecialPerks
	if perks == nil {
		perks = []string{}
	}
	return map[string][]string{
		"Welcome Package":          details.WelcomeGift,
		"Event Gifts & Amenities":  details.EventGifts,
		"Farewell & Commemorative": details.FarewellGift,
		"Special Perks":            perks,
	}
}

func (s *giftService) Compare() map[string]GiftTierComparison {
	comparison := map[string]GiftTierComparison{}
	for _, tier := range types.ValidGiftTiers {
		details := giftsByTier[tier]
		comparison[tier] = GiftTierComparison{
			Name:            strings.ToUpper(tier[:1]) + tier[1:],
			WelcomeItems:    len(details.WelcomeGift),
			EventItems:      len(details.EventGifts),
			FarewellItems:   len(details.FarewellGift),
			TotalItems:      len(details.WelcomeGift) + len(details.EventGifts) + len(details.FarewellGift),
			RaffleEntries:   details.RaffleEntries,
			HasSpecialPerks: len(details.SpecialPerks) > 0,
		}
	}
	return comparison
}

func (s *giftService) Highlights(giftTier string, limit int) []string {
	all := s.FlatList(giftTier)
	if limit > 0 && len(all) > limit {
		return all[:limit]
	}
	return all
}

func (s *giftService) IsValidTier(tier string) bool {
	_, ok := giftsByTier[strings.ToLower(tier)]
	return ok
}

package types

import "fmt"

// Membership tier values
const (
	TierInnerCircle    = "inner_circle"
	TierVIP            = "vip"
	TierFoundingMember = "founding_member"
	TierAdmin          = "admin"
)

// Gift tier values
const (
	GiftStandard = "standard"
	GiftPremium  = "premium"
	GiftElite    = "elite"
)

// Access level values (cosmetic label shown on the pass)
const (
	AccessGold     = "gold"
	AccessPlatinum = "platinum"
	AccessDiamond  = "diamond"
)

// RSVP status values
const (
	RSVPAccepted = "accepted"
	RSVPDeclined = "declined"
)

// Payment status values
const (
	PaymentPending  = "pending"
	PaymentVerified = "verified"
	PaymentFailed   = "failed"
)

// Member roles
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// Seating categories
const (
	SeatingVIP     = "VIP"
	SeatingPremium = "Premium"
)

// Valid values for validation
var ValidMembershipTiers = []string{
	TierInnerCircle, TierVIP, TierFoundingMember, TierAdmin,
}

var ValidGiftTiers = []string{
	GiftStandard, GiftPremium, GiftElite,
}

var ValidRSVPStatuses = []string{
	RSVPAccepted, RSVPDeclined,
}

var ValidPaymentStatuses = []string{
	PaymentPending, PaymentVerified, PaymentFailed,
}

// Helper functions for validation
func IsValidMembershipTier(tier string) bool {
	for _, t := range ValidMembershipTiers {
		if t == tier {
			return true
		}
	}
	return false
}

func IsValidGiftTier(tier string) bool {
	for _, t := range ValidGiftTiers {
		if t == tier {
			return true
		}
	}
	return false
}

func IsValidRSVPStatus(status string) bool {
	for _, s := range ValidRSVPStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func IsValidPaymentStatus(status string) bool {
	for _, s := range ValidPaymentStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// AccessLevelForTier maps a membership tier to the cosmetic access level
// frozen onto the pass at creation time. Unknown tiers default to gold.
func AccessLevelForTier(tier string) string {
	switch tier {
	case TierFoundingMember:
		return AccessDiamond
	case TierVIP:
		return AccessPlatinum
	default:
		return AccessGold
	}
}

// SeatingForTier maps a membership tier to a seating category.
func SeatingForTier(tier string) string {
	if tier == TierInnerCircle {
		return SeatingPremium
	}
	return SeatingVIP
}

// FormatPassNumber renders a sequence value as a display pass number,
// e.g. 7 -> "INNER-CIRCLE-#007". Three digits minimum; the number keeps
// growing past 999.
func FormatPassNumber(seq int64) string {
	return fmt.Sprintf("INNER-CIRCLE-#%03d", seq)
}

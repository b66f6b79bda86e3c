package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paige-inner-circle/legacy-backend/internal/types"
)

func TestAssignGiftTier(t *testing.T) {
	svc := NewGiftService()

	assert.Equal(t, types.GiftElite, svc.AssignGiftTier(types.TierFoundingMember))
	assert.Equal(t, types.GiftPremium, svc.AssignGiftTier(types.TierVIP))
	assert.Equal(t, types.GiftStandard, svc.AssignGiftTier(types.TierInnerCircle))
	assert.Equal(t, types.GiftStandard, svc.AssignGiftTier("something-else"))
	assert.Equal(t, types.GiftPremium, svc.AssignGiftTier("VIP"))
}

func TestGiftDetailsRaffleEntries(t *testing.T) {
	svc := NewGiftService()

	assert.Equal(t, 2, svc.Details(types.GiftStandard).RaffleEntries)
	assert.Equal(t, 5, svc.Details(types.GiftPremium).RaffleEntries)
	assert.Equal(t, 10, svc.Details(types.GiftElite).RaffleEntries)

	// Unknown tiers fall back to standard
	assert.Equal(t, 2, svc.Details("mystery").RaffleEntries)
}

func TestGiftFlatListIncludesRaffleAndPerks(t *testing.T) {
	svc := NewGiftService()

	elite := svc.FlatList(types.GiftElite)
	assert.Contains(t, elite, "10 exclusive raffle entries")
	assert.Contains(t, elite, "Access to private Inner Circle community")

	standard := svc.FlatList(types.GiftStandard)
	assert.Contains(t, standard, "2 exclusive raffle entries")
	details := svc.Details(types.GiftStandard)
	assert.Len(t, standard, len(details.WelcomeGift)+len(details.EventGifts)+len(details.FarewellGift)+1)
}

func TestGiftPreviewStaysMysterious(t *testing.T) {
	svc := NewGiftService()

	preview := svc.Preview(types.GiftElite)
	assert.Equal(t, "ELITE", preview.Tier)
	assert.NotEmpty(t, preview.MysteryMessage)
	assert.NotEmpty(t, preview.SpecialHighlight)

	// Teaser never leaks actual manifest items
	details := svc.Details(types.GiftElite)
	for _, item := range preview.TeaserItems {
		assert.NotContains(t, details.WelcomeGift, item)
	}

	// Standard tier has no highlight
	assert.Empty(t, svc.Preview(types.GiftStandard).SpecialHighlight)
}

func TestGiftCompare(t *testing.T) {
	svc := NewGiftService()

	comparison := svc.Compare()
	require.Len(t, comparison, 3)

	elite := comparison[types.GiftElite]
	assert.Equal(t, "Elite", elite.Name)
	assert.True(t, elite.HasSpecialPerks)
	assert.Equal(t, 10, elite.RaffleEntries)

	standard := comparison[types.GiftStandard]
	assert.False(t, standard.HasSpecialPerks)
	assert.Greater(t, elite.TotalItems, standard.TotalItems)
}

func TestGiftHighlightsLimit(t *testing.T) {
	svc := NewGiftService()

	highlights := svc.Highlights(types.GiftElite, 3)
	assert.Len(t, highlights, 3)

	all := svc.Highlights(types.GiftElite, 0)
	assert.Equal(t, svc.FlatList(types.GiftElite), all)
}

func TestIsValidTier(t *testing.T) {
	svc := NewGiftService()

	assert.True(t, svc.IsValidTier("elite"))
	assert.True(t, svc.IsValidTier("ELITE"))
	assert.False(t, svc.IsValidTier("diamond"))
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/paige-inner-circle/legacy-backend/internal/api/middleware"
	"github.com/paige-inner-circle/legacy-backend/internal/repository"
	"github.com/paige-inner-circle/legacy-backend/internal/service"
)

// ============================================
// Gift Handler
// ============================================

type GiftHandler struct {
	giftService   service.GiftService
	tokenService  service.TokenService
	memberService service.MemberService
}

// Preview returns the teaser view of a gift tier. Public.
func (h *GiftHandler) Preview(c *gin.Context) {
	tier := c.Param("tier")
	if !h.giftService.IsValidTier(tier) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown gift tier"})
		return
	}
	c.JSON(http.StatusOK, h.giftService.Preview(tier))
}

// Categories returns the gift items of a tier grouped by category. Public
// teaser counts only come from Preview; this is the full breakdown and is
// kept behind the payment gate via FullList.
func (h *GiftHandler) Categories(c *gin.Context) {
	tier := c.Param("tier")
	if !h.giftService.IsValidTier(tier) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown gift tier"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"tier":       tier,
		"categories": h.giftService.Categories(tier),
	})
}

// Compare summarizes all tiers side by side. Public.
func (h *GiftHandler) Compare(c *gin.Context) {
	c.JSON(http.StatusOK, h.giftService.Compare())
}

// Highlights returns the top gift items of a tier, capped by ?limit=.
// Public.
func (h *GiftHandler) Highlights(c *gin.Context) {
	tier := c.Param("tier")
	if !h.giftService.IsValidTier(tier) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown gift tier"})
		return
	}

	limit := 3
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"tier":       tier,
		"highlights": h.giftService.Highlights(tier, limit),
	})
}

// MyTier returns the gift tier the authenticated member's membership maps to.
func (h *GiftHandler) MyTier(c *gin.Context) {
	member, ok := h.currentMember(c)
	if !ok {
		return
	}

	tier := h.giftService.AssignGiftTier(member.MembershipTier)
	c.JSON(http.StatusOK, gin.H{
		"membership_tier": member.MembershipTier,
		"gift_tier":       tier,
	})
}

// MyPreview returns the teaser for the authenticated member's gift tier.
func (h *GiftHandler) MyPreview(c *gin.Context) {
	member, ok := h.currentMember(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.giftService.Preview(h.giftService.AssignGiftTier(member.MembershipTier)))
}

func (h *GiftHandler) currentMember(c *gin.Context) (*repository.Member, bool) {
	memberID, ok := middleware.RequireMemberID(c)
	if !ok {
		return nil, false
	}
	member, err := h.memberService.Get(c.Request.Context(), memberID)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return member, true
}

// FullList reveals the complete gift package for a pass. Requires a
// verified payment on the pass token.
func (h *GiftHandler) FullList(c *gin.Context) {
	pass, err := h.tokenService.GetPassByToken(c.Request.Context(), c.Param("token"), true)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tier":   pass.GiftTier,
		"detail": h.giftService.Details(pass.GiftTier),
		"items":  h.giftService.FlatList(pass.GiftTier),
	})
}

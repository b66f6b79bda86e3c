package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/paige-inner-circle/legacy-backend/internal/service"
)

// ============================================
// Admin Handler
// ============================================

type AdminHandler struct {
	memberService service.MemberService
	statsService  service.StatsService
}

type createMemberRequest struct {
	Email            string  `json:"email" binding:"required,email"`
	FullName         string  `json:"full_name" binding:"required"`
	PhoneNumber      *string `json:"phone_number"`
	MembershipTier   string  `json:"membership_tier"`
	MembershipNumber *string `json:"membership_number"`
	Role             string  `json:"role"`
	Password         string  `json:"password"`
}

// Dashboard returns the headline numbers for the admin overview.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.statsService.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// TierBreakdown splits RSVP responses by membership tier for an event.
func (h *AdminHandler) TierBreakdown(c *gin.Context) {
	rows, err := h.statsService.TierBreakdown(c.Request.Context(), c.Param("eventId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tiers": rows})
}

// RSVPSummary returns accepted and declined counts for an event.
func (h *AdminHandler) RSVPSummary(c *gin.Context) {
	summary, err := h.statsService.RSVPSummary(c.Request.Context(), c.Param("eventId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ListMembers pages through the member roster.
func (h *AdminHandler) ListMembers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	includeInactive := c.Query("include_inactive") == "true"

	members, err := h.memberService.List(c.Request.Context(), includeInactive, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]MemberResponse, len(members))
	for i, m := range members {
		response[i] = toMemberResponse(m)
	}
	c.JSON(http.StatusOK, response)
}

// GetMember fetches one member by ID.
func (h *AdminHandler) GetMember(c *gin.Context) {
	member, err := h.memberService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMemberResponse(member))
}

// CreateMember adds a member (or another admin) to the roster.
func (h *AdminHandler) CreateMember(c *gin.Context) {
	var req createMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := h.memberService.Create(c.Request.Context(), service.CreateMemberRequest{
		Email:            req.Email,
		FullName:         req.FullName,
		PhoneNumber:      req.PhoneNumber,
		MembershipTier:   req.MembershipTier,
		MembershipNumber: req.MembershipNumber,
		Role:             req.Role,
		Password:         req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toMemberResponse(member))
}

// UpdateMember edits a member's profile fields.
func (h *AdminHandler) UpdateMember(c *gin.Context) {
	member, err := h.memberService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req struct {
		FullName       *string `json:"full_name"`
		PhoneNumber    *string `json:"phone_number"`
		MembershipTier *string `json:"membership_tier"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.FullName != nil {
		member.FullName = *req.FullName
	}
	if req.PhoneNumber != nil {
		member.PhoneNumber = req.PhoneNumber
	}
	if req.MembershipTier != nil {
		member.MembershipTier = *req.MembershipTier
	}

	if err := h.memberService.Update(c.Request.Context(), member); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMemberResponse(member))
}

// SetMemberActive toggles a member's access.
func (h *AdminHandler) SetMemberActive(c *gin.Context) {
	var req struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.memberService.SetActive(c.Request.Context(), c.Param("id"), *req.IsActive); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member updated"})
}

// DeleteMember removes a member and all of their records.
func (h *AdminHandler) DeleteMember(c *gin.Context) {
	if err := h.memberService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member deleted"})
}

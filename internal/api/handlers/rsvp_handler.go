package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paige-inner-circle/legacy-backend/internal/api/middleware"
	"github.com/paige-inner-circle/legacy-backend/internal/service"
)

// ============================================
// RSVP Handler
// ============================================

type RSVPHandler struct {
	rsvpService service.RSVPService
}

type rsvpRequest struct {
	EventID         string  `json:"event_id"`
	Status          string  `json:"status" binding:"required"`
	ResponseMessage *string `json:"response_message"`
}

// Respond records the member's answer to the invitation. Accepting issues
// a Legacy Pass on the spot.
func (h *RSVPHandler) Respond(c *gin.Context) {
	memberID, ok := middleware.RequireMemberID(c)
	if !ok {
		return
	}

	var req rsvpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := h.rsvpService.Respond(c.Request.Context(), memberID, service.RSVPRequest{
		EventID:         req.EventID,
		Status:          req.Status,
		ResponseMessage: req.ResponseMessage,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if outcome.RSVP.Status == "declined" {
		c.JSON(http.StatusOK, gin.H{
			"message":              outcome.Message,
			"status":               outcome.RSVP.Status,
			"appreciation_message": outcome.AppreciationMessage,
			"future_access":        outcome.FutureAccess,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":                outcome.Message,
		"status":                 outcome.RSVP.Status,
		"legacy_token":           outcome.LegacyToken,
		"pass_number":            outcome.PassNumber,
		"gift_tier":              outcome.GiftTier,
		"access_level":           outcome.AccessLevel,
		"payment_required":       outcome.PaymentRequired,
		"payment_amount":         outcome.PaymentAmount.StringFixed(2),
		"next_steps":             outcome.NextSteps,
		"pass_preview_available": outcome.PassPreviewAvailable,
		"generation":             outcome.Generation,
	})
}

// Status reports whether the member has already responded to the current
// event (or to ?event_id= when given).
func (h *RSVPHandler) Status(c *gin.Context) {
	memberID, ok := middleware.RequireMemberID(c)
	if !ok {
		return
	}

	status, err := h.rsvpService.Status(c.Request.Context(), memberID, c.Query("event_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// ListForEvent returns every RSVP recorded for an event. Admin only.
func (h *RSVPHandler) ListForEvent(c *gin.Context) {
	rsvps, err := h.rsvpService.ListForEvent(c.Request.Context(), c.Param("eventId"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]gin.H, len(rsvps))
	for i, rv := range rsvps {
		response[i] = gin.H{
			"id":               rv.ID,
			"member_id":        rv.MemberID,
			"event_id":         rv.EventID,
			"status":           rv.Status,
			"response_message": rv.ResponseMessage,
			"responded_at":     rv.RespondedAt,
		}
	}
	c.JSON(http.StatusOK, gin.H{"rsvps": response, "count": len(response)})
}

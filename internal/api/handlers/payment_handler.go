package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paige-inner-circle/legacy-backend/internal/api/middleware"
	"github.com/paige-inner-circle/legacy-backend/internal/repository"
	"github.com/paige-inner-circle/legacy-backend/internal/service"
)

// ============================================
// Payment Handler
// ============================================

type PaymentHandler struct {
	paymentService service.PaymentService
	memberService  service.MemberService
}

type contactRequest struct {
	LegacyToken   string `json:"legacy_token" binding:"required"`
	ContactEmail  string `json:"contact_email" binding:"required,email"`
	PaymentMethod string `json:"payment_method" binding:"required"`
}

type reviewRequest struct {
	Notes *string `json:"notes"`
}

// Methods lists the accepted payment channels. Public.
func (h *PaymentHandler) Methods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"methods": h.paymentService.Methods()})
}

// SubmitContact records the member's chosen payment method and contact
// email, and notifies the concierge team.
func (h *PaymentHandler) SubmitContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.paymentService.SubmitContact(c.Request.Context(), service.ContactRequest{
		LegacyToken:   req.LegacyToken,
		ContactEmail:  req.ContactEmail,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment details received. You'll be contacted with payment instructions shortly.",
	})
}

// Status reports where a pass's payment stands.
func (h *PaymentHandler) Status(c *gin.Context) {
	info, err := h.paymentService.StatusByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// Verify marks a payment as received and unlocks the pass. Admin only.
func (h *PaymentHandler) Verify(c *gin.Context) {
	memberID, ok := middleware.RequireMemberID(c)
	if !ok {
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	admin, err := h.memberService.Get(c.Request.Context(), memberID)
	if err != nil {
		respondError(c, err)
		return
	}

	payment, err := h.paymentService.Verify(c.Request.Context(), c.Param("id"), admin.Email, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment verified",
		"payment": toPaymentResponse(payment),
	})
}

// MarkFailed records a failed payment attempt. Admin only.
func (h *PaymentHandler) MarkFailed(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.paymentService.MarkFailed(c.Request.Context(), c.Param("id"), req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment marked as failed",
		"payment": toPaymentResponse(payment),
	})
}

// Pending lists payments awaiting verification. Admin only.
func (h *PaymentHandler) Pending(c *gin.Context) {
	payments, err := h.paymentService.Pending(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentResponses(payments))
}

// List returns payments, optionally filtered by ?status=. Admin only.
func (h *PaymentHandler) List(c *gin.Context) {
	payments, err := h.paymentService.All(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentResponses(payments))
}

func toPaymentResponses(payments []*repository.Payment) []PaymentResponse {
	response := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		response[i] = toPaymentResponse(p)
	}
	return response
}

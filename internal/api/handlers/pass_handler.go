package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paige-inner-circle/legacy-backend/internal/service"
)

// ============================================
// Legacy Pass Handler
// ============================================

type PassHandler struct {
	tokenService  service.TokenService
	giftService   service.GiftService
	assetService  *service.AssetService
	memberService service.MemberService
	eventService  service.EventService
}

// Preview serves the pre-payment view: blurred card images, a masked pass
// number and a teaser of the gift package. No payment needed.
func (h *PassHandler) Preview(c *gin.Context) {
	pass, err := h.tokenService.GetPassByToken(c.Request.Context(), c.Param("token"), false)
	if err != nil {
		respondError(c, err)
		return
	}

	member, err := h.memberService.Get(c.Request.Context(), pass.MemberID)
	if err != nil {
		respondError(c, err)
		return
	}

	access, err := h.tokenService.AccessInfo(c.Request.Context(), pass.Token)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pass_number_preview": service.FormatPassNumberPreview(pass.PassNumber),
		"member_name":         member.FullName,
		"access_level":        pass.AccessLevel,
		"front_image_url":     staticURL(pass.BlurredFront),
		"back_image_url":      staticURL(pass.BlurredBack),
		"gift_preview":        h.giftService.Preview(pass.GiftTier),
		"payment_status":      access.PaymentStatus,
		"can_access_full":     access.CanAccessFullPass,
		"message":             "Complete your payment to unlock the full Legacy Pass",
	})
}

// Status reports what the token currently unlocks without serving any
// asset. The token is the only credential needed.
func (h *PassHandler) Status(c *gin.Context) {
	access, err := h.tokenService.AccessInfo(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, access)
}

// Get serves the full pass. Requires a verified payment.
func (h *PassHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	pass, err := h.tokenService.GetPassByToken(ctx, c.Param("token"), true)
	if err != nil {
		respondError(c, err)
		return
	}

	member, err := h.memberService.Get(ctx, pass.MemberID)
	if err != nil {
		respondError(c, err)
		return
	}
	event, err := h.eventService.GetByID(ctx, pass.EventID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pass":        toPassResponse(pass),
		"member_name": member.FullName,
		"event":       toEventResponse(event),
		"gifts":       h.giftService.FlatList(pass.GiftTier),
		"gift_detail": h.giftService.Details(pass.GiftTier),
	})
}

// DownloadPDF streams the printable pass, rebuilding the document from the
// stored card images when it is missing. Requires a verified payment.
func (h *PassHandler) DownloadPDF(c *gin.Context) {
	ctx := c.Request.Context()
	pass, err := h.tokenService.GetPassByToken(ctx, c.Param("token"), true)
	if err != nil {
		respondError(c, err)
		return
	}

	if pass.PDFPath == nil {
		member, err := h.memberService.Get(ctx, pass.MemberID)
		if err != nil {
			respondError(c, err)
			return
		}

		pdfPath, err := h.assetService.RegeneratePDF(ctx, pass, member.FullName)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pass PDF unavailable"})
			return
		}
		pass.PDFPath = &pdfPath
	}

	c.FileAttachment(*pass.PDFPath, "legacy-pass-"+pass.PassNumber+".pdf")
}

// RegeneratePDF rebuilds the PDF from the stored card images. Admin only.
func (h *PassHandler) RegeneratePDF(c *gin.Context) {
	ctx := c.Request.Context()
	pass, err := h.tokenService.ValidateToken(ctx, c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}

	member, err := h.memberService.Get(ctx, pass.MemberID)
	if err != nil {
		respondError(c, err)
		return
	}

	pdfPath, err := h.assetService.RegeneratePDF(ctx, pass, member.FullName)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "PDF regenerated",
		"pdf_url": staticURL(&pdfPath),
	})
}

// Wallet returns the mobile wallet payload. Requires a verified payment.
func (h *PassHandler) Wallet(c *gin.Context) {
	ctx := c.Request.Context()
	pass, err := h.tokenService.GetPassByToken(ctx, c.Param("token"), true)
	if err != nil {
		respondError(c, err)
		return
	}

	member, err := h.memberService.Get(ctx, pass.MemberID)
	if err != nil {
		respondError(c, err)
		return
	}
	event, err := h.eventService.GetByID(ctx, pass.EventID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.assetService.WalletData(pass, member.FullName, event))
}

// Verify is the door-staff check: pass validity, seat and payment state.
// The token scanned off the card is the only credential.
func (h *PassHandler) Verify(c *gin.Context) {
	ctx := c.Request.Context()
	access, err := h.tokenService.AccessInfo(ctx, c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}

	pass, err := h.tokenService.ValidateToken(ctx, c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	member, err := h.memberService.Get(ctx, pass.MemberID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":            access.PaymentVerified,
		"pass_number":      pass.PassNumber,
		"member_name":      member.FullName,
		"membership_tier":  member.MembershipTier,
		"access_level":     pass.AccessLevel,
		"seating_category": pass.SeatingCategory,
		"payment_status":   access.PaymentStatus,
	})
}

// Deactivate disables a pass token. Admin only.
func (h *PassHandler) Deactivate(c *gin.Context) {
	if err := h.tokenService.Deactivate(c.Request.Context(), c.Param("token")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Pass deactivated"})
}

// Reactivate re-enables a previously deactivated pass token. Admin only.
func (h *PassHandler) Reactivate(c *gin.Context) {
	if err := h.tokenService.Reactivate(c.Request.Context(), c.Param("token")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Pass reactivated"})
}

// VerificationQR renders a QR pointing at the door-staff verification page.
// Admin only.
func (h *PassHandler) VerificationQR(c *gin.Context) {
	pass, err := h.tokenService.ValidateToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}

	path, err := h.assetService.VerificationQR(pass.Token)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"qr_url": staticURL(&path)})
}

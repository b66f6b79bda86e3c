package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paige-inner-circle/legacy-backend/internal/api/middleware"
	"github.com/paige-inner-circle/legacy-backend/internal/service"
)

// ============================================
// Auth Handler
// ============================================

type AuthHandler struct {
	authService   service.AuthService
	memberService service.MemberService
}

type requestAccessRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type adminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RequestAccess exchanges an invitation email for a bearer token.
func (h *AuthHandler) RequestAccess(c *gin.Context) {
	var req requestAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authService.RequestAccess(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": result.AccessToken,
		"token_type":   result.TokenType,
		"member":       toMemberResponse(result.Member),
	})
}

// AdminLogin authenticates an admin with email and password.
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authService.AdminLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": result.AccessToken,
		"token_type":   result.TokenType,
		"member":       toMemberResponse(result.Member),
	})
}

// Status reports whether the caller holds a valid token. Works without
// auth; pairs with OptionalAuthMiddleware.
func (h *AuthHandler) Status(c *gin.Context) {
	memberID := middleware.GetMemberID(c)
	if memberID == "" {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"member_id":     memberID,
		"role":          middleware.GetRole(c),
	})
}

// Logout acknowledges a client-side token discard. Access tokens are
// stateless, so there is nothing to revoke server-side.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me returns the authenticated member's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	memberID, ok := middleware.RequireMemberID(c)
	if !ok {
		return
	}

	member, err := h.memberService.Get(c.Request.Context(), memberID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toMemberResponse(member))
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paige-inner-circle/legacy-backend/internal/api/middleware"
	"github.com/paige-inner-circle/legacy-backend/internal/repository"
	"github.com/paige-inner-circle/legacy-backend/internal/service"
)

// ============================================
// Memory Handler
// ============================================

type MemoryHandler struct {
	memoryService service.MemoryService
}

type memoryResponse struct {
	ID                 string  `json:"id"`
	EventID            string  `json:"event_id"`
	PhotoGalleryURL    *string `json:"photo_gallery_url,omitempty"`
	ThankYouVideoURL   *string `json:"thank_you_video_url,omitempty"`
	CertificatePDFPath *string `json:"certificate_pdf_url,omitempty"`
	BadgeNumber        *int    `json:"badge_number,omitempty"`
	BadgeImageURL      *string `json:"badge_image_url,omitempty"`
}

func toMemoryResponse(m *repository.Memory) memoryResponse {
	return memoryResponse{
		ID:                 m.ID,
		EventID:            m.EventID,
		PhotoGalleryURL:    m.PhotoGalleryURL,
		ThankYouVideoURL:   m.ThankYouVideoURL,
		CertificatePDFPath: staticURL(m.CertificatePDFPath),
		BadgeNumber:        m.BadgeNumber,
		BadgeImageURL:      staticURL(m.BadgeImagePath),
	}
}

// Mine lists the authenticated member's memories across all events.
func (h *MemoryHandler) Mine(c *gin.Context) {
	memberID, ok := middleware.RequireMemberID(c)
	if !ok {
		return
	}

	memories, err := h.memoryService.MyMemories(c.Request.Context(), memberID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]memoryResponse, len(memories))
	for i, m := range memories {
		response[i] = toMemoryResponse(m)
	}
	c.JSON(http.StatusOK, response)
}

// ForEvent returns the member's memory for one event. Attendance required.
func (h *MemoryHandler) ForEvent(c *gin.Context) {
	memberID, ok := middleware.RequireMemberID(c)
	if !ok {
		return
	}

	memory, err := h.memoryService.EventMemory(c.Request.Context(), memberID, c.Param("eventId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMemoryResponse(memory))
}

// Publish creates memory records for every attendee of an event. Admin only.
func (h *MemoryHandler) Publish(c *gin.Context) {
	var req service.PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.memoryService.PublishForEvent(c.Request.Context(), c.Param("eventId"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// Update edits a single memory record. Admin only.
func (h *MemoryHandler) Update(c *gin.Context) {
	var req service.PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	memory, err := h.memoryService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMemoryResponse(memory))
}

// Delete removes a single memory record. Admin only.
func (h *MemoryHandler) Delete(c *gin.Context) {
	if err := h.memoryService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Memory deleted"})
}

// ListForEvent returns every memory published for an event. Admin only.
func (h *MemoryHandler) ListForEvent(c *gin.Context) {
	memories, err := h.memoryService.AllForEvent(c.Request.Context(), c.Param("eventId"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]memoryResponse, len(memories))
	for i, m := range memories {
		response[i] = toMemoryResponse(m)
	}
	c.JSON(http.StatusOK, response)
}

package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/paige-inner-circle/legacy-backend/internal/repository"
	"github.com/paige-inner-circle/legacy-backend/internal/service"
)

// ============================================
// Event Handler
// ============================================

type EventHandler struct {
	eventService service.EventService
}

type eventRequest struct {
	Title               string          `json:"title" binding:"required"`
	Subtitle            *string         `json:"subtitle"`
	Description         string          `json:"description" binding:"required"`
	EventDate           time.Time       `json:"event_date" binding:"required"`
	EventTime           string          `json:"event_time" binding:"required"`
	VenueName           string          `json:"venue_name" binding:"required"`
	VenueAddress        string          `json:"venue_address" binding:"required"`
	DressCode           *string         `json:"dress_code"`
	Theme               *string         `json:"theme"`
	Schedule            json.RawMessage `json:"schedule"`
	Amenities           json.RawMessage `json:"amenities"`
	SpecialInstructions *string         `json:"special_instructions"`
}

type eventResponse struct {
	ID                  string          `json:"id"`
	Title               string          `json:"title"`
	Subtitle            *string         `json:"subtitle,omitempty"`
	Description         string          `json:"description"`
	EventDate           time.Time       `json:"event_date"`
	EventTime           string          `json:"event_time"`
	VenueName           string          `json:"venue_name"`
	VenueAddress        string          `json:"venue_address"`
	DressCode           *string         `json:"dress_code,omitempty"`
	Theme               *string         `json:"theme,omitempty"`
	Schedule            json.RawMessage `json:"schedule,omitempty"`
	Amenities           json.RawMessage `json:"amenities,omitempty"`
	SpecialInstructions *string         `json:"special_instructions,omitempty"`
	IsActive            bool            `json:"is_active"`
}

func toEventResponse(e *repository.Event) eventResponse {
	return eventResponse{
		ID:                  e.ID,
		Title:               e.Title,
		Subtitle:            e.Subtitle,
		Description:         e.Description,
		EventDate:           e.EventDate,
		EventTime:           e.EventTime,
		VenueName:           e.VenueName,
		VenueAddress:        e.VenueAddress,
		DressCode:           e.DressCode,
		Theme:               e.Theme,
		Schedule:            e.Schedule,
		Amenities:           e.Amenities,
		SpecialInstructions: e.SpecialInstructions,
		IsActive:            e.IsActive,
	}
}

// Teaser is the public, unauthenticated glimpse of the current event.
func (h *EventHandler) Teaser(c *gin.Context) {
	teaser, err := h.eventService.CurrentTeaser(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, teaser)
}

// Current returns the full active event for authenticated members.
func (h *EventHandler) Current(c *gin.Context) {
	event, err := h.eventService.Current(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toEventResponse(event))
}

func (h *EventHandler) Get(c *gin.Context) {
	event, err := h.eventService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toEventResponse(event))
}

// Schedule returns just the event's schedule block.
func (h *EventHandler) Schedule(c *gin.Context) {
	event, err := h.eventService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"event_id": event.ID,
		"schedule": event.Schedule,
	})
}

// Amenities returns just the event's amenities block.
func (h *EventHandler) Amenities(c *gin.Context) {
	event, err := h.eventService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"event_id":  event.ID,
		"amenities": event.Amenities,
	})
}

// List returns all events, including inactive ones. Admin only.
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.eventService.List(c.Request.Context(), true)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]eventResponse, len(events))
	for i, e := range events {
		response[i] = toEventResponse(e)
	}
	c.JSON(http.StatusOK, response)
}

func (h *EventHandler) Create(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event := &repository.Event{
		Title:               req.Title,
		Subtitle:            req.Subtitle,
		Description:         req.Description,
		EventDate:           req.EventDate,
		EventTime:           req.EventTime,
		VenueName:           req.VenueName,
		VenueAddress:        req.VenueAddress,
		DressCode:           req.DressCode,
		Theme:               req.Theme,
		Schedule:            req.Schedule,
		Amenities:           req.Amenities,
		SpecialInstructions: req.SpecialInstructions,
	}
	if err := h.eventService.Create(c.Request.Context(), event); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toEventResponse(event))
}

func (h *EventHandler) Update(c *gin.Context) {
	event, err := h.eventService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event.Title = req.Title
	event.Subtitle = req.Subtitle
	event.Description = req.Description
	event.EventDate = req.EventDate
	event.EventTime = req.EventTime
	event.VenueName = req.VenueName
	event.VenueAddress = req.VenueAddress
	event.DressCode = req.DressCode
	event.Theme = req.Theme
	event.Schedule = req.Schedule
	event.Amenities = req.Amenities
	event.SpecialInstructions = req.SpecialInstructions

	if err := h.eventService.Update(c.Request.Context(), event); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toEventResponse(event))
}

func (h *EventHandler) SetActive(c *gin.Context) {
	var req struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.eventService.SetActive(c.Request.Context(), c.Param("id"), *req.IsActive); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event updated"})
}

package handler

import (
	"context"
	"net/http"
	"time"

	"fandomhub/internal/microservices/http-api/dto"
	"fandomhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	eventService service.EventService
}

func NewEventHandler(eventService service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

func (h *EventHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/fandoms/:id/events", h.Create)
	rg.GET("/fandoms/:id/events", h.ListByFandom)
}

// Create announces an event and notifies the fandom
// POST /api/fandoms/:id/events
func (h *EventHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	fandomID, ok := parseIDParam(c, "id", "fandom")
	if !ok {
		return
	}

	var req dto.CreateEventDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	event, err := h.eventService.Create(ctx, userID, fandomID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (h *EventHandler) ListByFandom(c *gin.Context) {
	fandomID, ok := parseIDParam(c, "id", "fandom")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	events, err := h.eventService.ListByFandom(ctx, fandomID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

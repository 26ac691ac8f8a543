package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"fandomhub/internal/microservices/http-api/dto"
	"fandomhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationService service.NotificationService
	viewedService       service.ViewedStateService
}

func NewNotificationHandler(notificationService service.NotificationService, viewedService service.ViewedStateService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		viewedService:       viewedService,
	}
}

func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	notifications := rg.Group("/notifications")
	{
		notifications.GET("", h.List)
		notifications.GET("/unviewed-count", h.UnviewedCount)
		notifications.GET("/:id", h.GetByID)

		notifications.POST("/viewed", h.batch(service.OpMarkViewed))
		notifications.POST("/unviewed", h.batch(service.OpUnmarkViewed))
		notifications.POST("/hidden", h.batch(service.OpHide))
		notifications.POST("/unhidden", h.batch(service.OpUnhide))

		notifications.PUT("/:id/:op", h.ApplyOne)
	}
}

// List returns the caller's notifications with their viewed state
// GET /api/notifications?is_hidden=true|false
func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var isHidden *bool
	if raw, present := c.GetQuery("is_hidden"); present {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "is_hidden must be true or false"})
			return
		}
		isHidden = &v
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	notifications, err := h.notificationService.GetNotificationsWithViewed(ctx, userID, isHidden)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) GetByID(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "notification")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	notification, found, err := h.notificationService.GetNotificationWithViewed(ctx, userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		return
	}
	c.JSON(http.StatusOK, notification)
}

func (h *NotificationHandler) UnviewedCount(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	count, err := h.notificationService.CountUnviewed(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UnviewedCountResponse{Count: count})
}

// batch returns a handler applying op to every id in the body.
// 200 when every id succeeded, 207 when some failed.
func (h *NotificationHandler) batch(op service.ViewedOp) gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID, ok := requireUser(c)
		if !ok {
			return
		}

		var req dto.BatchStateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		targetID := req.UserID
		if targetID == "" {
			targetID = actorID
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := h.viewedService.Apply(ctx, op, actorID, targetID, req.NotificationIDs)
		if err != nil {
			respondError(c, err)
			return
		}

		status := http.StatusOK
		if len(result.Failed) > 0 {
			status = http.StatusMultiStatus
		}
		c.JSON(status, result)
	}
}

// ApplyOne changes the viewed state of a single notification
// PUT /api/notifications/:id/viewed|unviewed|hidden|unhidden
func (h *NotificationHandler) ApplyOne(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "notification")
	if !ok {
		return
	}
	op, valid := service.ParseViewedOp(c.Param("op"))
	if !valid {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown operation"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.viewedService.ApplyOne(ctx, op, userID, userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

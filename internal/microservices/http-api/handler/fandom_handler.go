package handler

import (
	"context"
	"net/http"
	"time"

	"fandomhub/internal/microservices/http-api/dto"
	"fandomhub/internal/microservices/http-api/middleware"
	"fandomhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// FandomHandler serves fandoms and memberships
type FandomHandler struct {
	fandomService       service.FandomService
	subscriptionService service.SubscriptionService
}

func NewFandomHandler(fandomService service.FandomService, subscriptionService service.SubscriptionService) *FandomHandler {
	return &FandomHandler{
		fandomService:       fandomService,
		subscriptionService: subscriptionService,
	}
}

func (h *FandomHandler) RegisterRoutes(rg *gin.RouterGroup) {
	fandoms := rg.Group("/fandoms")
	{
		fandoms.POST("", h.Create)
		fandoms.GET("/:id", h.GetByID)
		fandoms.DELETE("/:id", h.Delete)
		fandoms.POST("/:id/subscribe", h.Subscribe)
		fandoms.DELETE("/:id/subscribe", h.Unsubscribe)
		fandoms.GET("/:id/members", h.Members)
	}
	rg.GET("/subscriptions/me", h.ListMine)
}

func (h *FandomHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.CreateFandomDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	fandom, err := h.fandomService.Create(ctx, userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fandom)
}

func (h *FandomHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "fandom")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	fandom, err := h.fandomService.GetByID(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fandom)
}

// Delete removes a fandom (creator or admin)
// DELETE /api/fandoms/:id
func (h *FandomHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "fandom")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.fandomService.Delete(ctx, id, userID, middleware.GetRole(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FandomHandler) Subscribe(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "fandom")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.subscriptionService.Subscribe(ctx, userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "subscribed", "fandom_id": id})
}

func (h *FandomHandler) Unsubscribe(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "fandom")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.subscriptionService.Unsubscribe(ctx, userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FandomHandler) Members(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "fandom")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	members, err := h.subscriptionService.Members(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

// ListMine returns the caller's fandom memberships
// GET /api/subscriptions/me
func (h *FandomHandler) ListMine(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	subs, err := h.subscriptionService.ListMine(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscriptions": subs})
}

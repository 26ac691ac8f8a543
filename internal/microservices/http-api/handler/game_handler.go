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

type GameHandler struct {
	gameService   service.GameService
	fandomService service.FandomService
}

func NewGameHandler(gameService service.GameService, fandomService service.FandomService) *GameHandler {
	return &GameHandler{
		gameService:   gameService,
		fandomService: fandomService,
	}
}

func (h *GameHandler) RegisterRoutes(rg *gin.RouterGroup) {
	games := rg.Group("/games")
	{
		games.GET("", h.List)
		games.GET("/:id", h.GetByID)
		games.GET("/:id/fandoms", h.ListFandoms)
		games.POST("", middleware.RequireAdmin(), h.Create)
	}
}

// List returns games, optionally filtered by ?q=
// GET /api/games?q=&page=1&page_size=20
func (h *GameHandler) List(c *gin.Context) {
	page, pageSize := pagination(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	games, err := h.gameService.List(ctx, c.Query("q"), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, games)
}

func (h *GameHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "game")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	game, err := h.gameService.GetByID(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, game)
}

func (h *GameHandler) ListFandoms(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "game")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	fandoms, err := h.fandomService.ListByGame(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fandoms": fandoms})
}

// Create adds a game to the catalogue (admin only)
// POST /api/games
func (h *GameHandler) Create(c *gin.Context) {
	var req dto.CreateGameDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	game, err := h.gameService.Create(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, game)
}

package handler

import (
	"context"
	"net/http"
	"time"

	"fandomhub/internal/microservices/http-api/dto"
	"fandomhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// PostHandler serves posts and their reactions
type PostHandler struct {
	postService     service.PostService
	reactionService service.ReactionService
}

func NewPostHandler(postService service.PostService, reactionService service.ReactionService) *PostHandler {
	return &PostHandler{
		postService:     postService,
		reactionService: reactionService,
	}
}

func (h *PostHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/fandoms/:id/posts", h.Create)
	rg.GET("/fandoms/:id/posts", h.ListByFandom)

	posts := rg.Group("/posts")
	{
		posts.GET("/:id", h.GetByID)
		posts.DELETE("/:id", h.Delete)
		posts.PUT("/:id/reaction", h.SetReaction)
		posts.DELETE("/:id/reaction", h.RemoveReaction)
		posts.GET("/:id/reactions", h.Reactions)
	}
}

// Create writes a post and notifies the fandom
// POST /api/fandoms/:id/posts
func (h *PostHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	fandomID, ok := parseIDParam(c, "id", "fandom")
	if !ok {
		return
	}

	var req dto.CreatePostDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	post, err := h.postService.Create(ctx, userID, fandomID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// ListByFandom returns a fandom's posts newest first
// GET /api/fandoms/:id/posts?page=1&page_size=20
func (h *PostHandler) ListByFandom(c *gin.Context) {
	fandomID, ok := parseIDParam(c, "id", "fandom")
	if !ok {
		return
	}
	page, pageSize := pagination(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	posts, err := h.postService.ListByFandom(ctx, fandomID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "post")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	post, err := h.postService.GetByID(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "post")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.postService.Delete(ctx, id, userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetReaction likes or dislikes a post
// PUT /api/posts/:id/reaction
func (h *PostHandler) SetReaction(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "post")
	if !ok {
		return
	}

	var req dto.SetReactionDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	summary, err := h.reactionService.Set(ctx, userID, id, req.Kind)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *PostHandler) RemoveReaction(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "post")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.reactionService.Remove(ctx, userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PostHandler) Reactions(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "post")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	summary, err := h.reactionService.Summary(ctx, userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

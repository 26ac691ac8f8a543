package handler

import (
	"context"
	"net/http"
	"time"

	"fandomhub/internal/microservices/http-api/dto"
	"fandomhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// RegisterRoutes registers comment-related routes
func (h *CommentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/posts/:id/comments", h.ListByPost)
	rg.POST("/posts/:id/comments", h.Create)

	comments := rg.Group("/comments")
	{
		comments.PUT("/:id", h.Update)
		comments.DELETE("/:id", h.Delete)
	}
}

// Create creates a new comment on a post
// POST /api/posts/:id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	postID, ok := parseIDParam(c, "id", "post")
	if !ok {
		return
	}

	var req dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	comment, err := h.commentService.CreateComment(ctx, userID, postID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// Update updates an existing comment
// PUT /api/comments/:id
func (h *CommentHandler) Update(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	commentID, ok := parseIDParam(c, "id", "comment")
	if !ok {
		return
	}

	var req dto.UpdateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	comment, err := h.commentService.UpdateComment(ctx, commentID, userID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// Delete deletes a comment
// DELETE /api/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	commentID, ok := parseIDParam(c, "id", "comment")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.commentService.DeleteComment(ctx, commentID, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}

// ListByPost retrieves all comments for a post with pagination
// GET /api/posts/:id/comments?page=1&page_size=20
func (h *CommentHandler) ListByPost(c *gin.Context) {
	postID, ok := parseIDParam(c, "id", "post")
	if !ok {
		return
	}
	page, pageSize := pagination(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	comments, err := h.commentService.GetPostComments(ctx, postID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

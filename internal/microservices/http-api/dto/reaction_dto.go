package dto

// SetReactionDTO for liking or disliking a post
type SetReactionDTO struct {
	Kind string `json:"kind" binding:"required,oneof=like dislike"`
}

// ReactionSummaryResponse carries counts plus the caller's own reaction, if any
type ReactionSummaryResponse struct {
	PostID   int64  `json:"post_id"`
	Likes    int64  `json:"likes"`
	Dislikes int64  `json:"dislikes"`
	Mine     string `json:"mine,omitempty"`
}

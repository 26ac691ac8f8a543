package models

import "time"

const (
	ReactionLike    = "like"
	ReactionDislike = "dislike"
)

type Reaction struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_reaction_post_user"`
	PostID    int64     `json:"post_id" gorm:"not null;index;uniqueIndex:idx_reaction_post_user"`
	Kind      string    `json:"kind" gorm:"not null;check:kind IN ('like','dislike')"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User User  `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Post *Post `json:"post,omitempty" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE;"`
}

func (Reaction) TableName() string {
	return "reactions"
}

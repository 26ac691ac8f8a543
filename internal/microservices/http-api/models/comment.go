package models

import "time"

// Comment is a reply on a fandom post. Comments do not produce notifications.
type Comment struct {
	ID        int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	PostID    int64      `json:"post_id" gorm:"not null;index:idx_comments_post_created,priority:1"`
	UserID    string     `json:"user_id" gorm:"type:uuid;not null;index"`
	Content   string     `json:"content" gorm:"type:text;not null"`
	EditedAt  *time.Time `json:"edited_at,omitempty"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime;index:idx_comments_post_created,priority:2"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	User User  `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Post *Post `json:"post,omitempty" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE;"`
}

func (Comment) TableName() string {
	return "comments"
}

// Edit replaces the body and stamps the edit time.
func (c *Comment) Edit(content string, at time.Time) {
	c.Content = content
	edited := at.UTC()
	c.EditedAt = &edited
}

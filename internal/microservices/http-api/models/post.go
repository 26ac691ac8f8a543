package models

import "time"

type Post struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	FandomID  int64     `json:"fandom_id" gorm:"not null;index"`
	AuthorID  string    `json:"author_id" gorm:"type:uuid;not null;index"`
	Title     string    `json:"title" gorm:"not null"`
	Content   string    `json:"content" gorm:"not null;type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	Author User    `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
	Fandom *Fandom `json:"fandom,omitempty" gorm:"foreignKey:FandomID;constraint:OnDelete:CASCADE;"`
}

func (Post) TableName() string {
	return "posts"
}

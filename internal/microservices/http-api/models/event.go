package models

import "time"

// Event is a scheduled fandom happening (stream, tournament, meetup)
type Event struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	FandomID    int64     `json:"fandom_id" gorm:"not null;index"`
	CreatorID   string    `json:"creator_id" gorm:"type:uuid;not null"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	StartsAt    time.Time `json:"starts_at" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	Fandom *Fandom `json:"fandom,omitempty" gorm:"foreignKey:FandomID;constraint:OnDelete:CASCADE;"`
}

func (Event) TableName() string {
	return "events"
}

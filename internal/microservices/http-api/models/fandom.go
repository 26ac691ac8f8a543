package models

import "time"

type Fandom struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	GameID      int64     `json:"game_id" gorm:"not null;index"`
	Name        string    `json:"name" gorm:"not null;uniqueIndex"`
	Description string    `json:"description" gorm:"type:text"`
	CreatorID   string    `json:"creator_id" gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	Game *Game `json:"game,omitempty" gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE;"`
}

func (Fandom) TableName() string {
	return "fandoms"
}

package models

import "time"

// FandomSubscription is a user's membership in a fandom
type FandomSubscription struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       string    `gorm:"type:uuid;not null;uniqueIndex:idx_subscription_user_fandom" json:"user_id"`
	FandomID     int64     `gorm:"not null;index;uniqueIndex:idx_subscription_user_fandom" json:"fandom_id"`
	SubscribedAt time.Time `gorm:"autoCreateTime" json:"subscribed_at"`

	// Associations
	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"user,omitempty"`
	Fandom *Fandom `gorm:"foreignKey:FandomID;constraint:OnDelete:CASCADE;" json:"fandom,omitempty"`
}

func (FandomSubscription) TableName() string {
	return "fandom_subscriptions"
}

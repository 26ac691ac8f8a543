package models

import "time"

const (
	NotificationNewPost  = "NewPost"
	NotificationNewEvent = "NewEvent"
)

// IsValidNotificationType reports whether t is one of the known notification types
func IsValidNotificationType(t string) bool {
	switch t {
	case NotificationNewPost, NotificationNewEvent:
		return true
	}
	return false
}

// Notification is written once per triggering action and never updated.
// Rows go away only through the fandom cascade, so NotifierID carries no
// foreign key and survives the notifier's account.
type Notification struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FandomID   int64     `gorm:"not null;index" json:"fandom_id"`
	NotifierID string    `gorm:"type:uuid;not null" json:"notifier_id"`
	Type       string    `gorm:"not null" json:"type"`
	CreatedAt  time.Time `gorm:"not null;index" json:"created_at"`

	// Associations
	Fandom *Fandom `gorm:"foreignKey:FandomID;constraint:OnDelete:CASCADE;" json:"fandom,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}

// NotificationViewed is the per-user overlay on a notification.
// A missing row means unseen and not hidden; (notification_id, user_id) is unique.
type NotificationViewed struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	NotificationID int64     `gorm:"not null;uniqueIndex:idx_viewed_notification_user" json:"notification_id"`
	UserID         string    `gorm:"type:uuid;not null;uniqueIndex:idx_viewed_notification_user;index" json:"user_id"`
	ViewedAt       time.Time `gorm:"not null" json:"viewed_at"`
	IsHidden       bool      `gorm:"not null;default:false" json:"is_hidden"`

	// Associations
	Notification *Notification `gorm:"foreignKey:NotificationID;constraint:OnDelete:CASCADE;" json:"-"`
	User         *User         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"-"`
}

func (NotificationViewed) TableName() string {
	return "notification_viewed"
}

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a community member. Membership in fandoms lives in FandomSubscription.
type User struct {
	ID        string     `json:"id" gorm:"primaryKey;type:uuid"`
	Username  string     `json:"username" gorm:"size:50;not null;uniqueIndex"`
	Email     string     `json:"email" gorm:"size:255;not null;uniqueIndex"`
	Password  string     `json:"-" gorm:"column:password_hash;not null"`
	Role      string     `json:"role" gorm:"size:16;not null;default:'user'"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// BeforeSave assigns a UUID to new rows and stores the email lowercased.
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

package entity

import (
	"time"
)

const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// User is the identity record. Username and email are globally unique and
// double as relay room names, so they are never rewritten after creation.
type User struct {
	ID            string `gorm:"primaryKey"`
	Username      string `gorm:"uniqueIndex;not null"`
	Email         string `gorm:"uniqueIndex;not null"`
	PasswordHash  string `gorm:"not null"`
	Avatar        string
	Role          string `gorm:"not null;default:user"`
	IsActive      bool   `gorm:"not null;default:true"`
	LastActive    time.Time
	EmailVerified bool      `gorm:"not null;default:false"`
	ProfileSetup  bool      `gorm:"not null;default:false"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

type UserFilter struct {
	Email    *string
	Username *string
}

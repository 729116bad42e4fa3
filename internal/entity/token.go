package entity

import (
	"time"
)

// MaxValidRefreshTokens caps concurrently valid refresh tokens per user.
// Issuing one past the cap revokes the oldest still-valid token.
const MaxValidRefreshTokens = 5

type RefreshToken struct {
	ID        int64     `gorm:"primaryKey"`
	Token     string    `gorm:"uniqueIndex;not null"`
	UserID    string    `gorm:"index;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	IsRevoked bool      `gorm:"not null;default:false"`
	UserAgent string
	IP        string
	Device    string
	LastUsed  time.Time
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (t *RefreshToken) IsValid(now time.Time) bool {
	return !t.IsRevoked && t.ExpiresAt.After(now)
}

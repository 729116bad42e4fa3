package entity

import (
	"time"
)

const (
	FriendStatusPending  = "pending"
	FriendStatusAccepted = "accepted"
	FriendStatusDeclined = "declined"
	FriendStatusBlocked  = "blocked"
)

// Friend links two users. The pair is unique regardless of direction; the
// reverse duplicate is rejected at the service layer before insert.
type Friend struct {
	ID        int64     `gorm:"primaryKey"`
	Requester string    `gorm:"uniqueIndex:idx_friend_pair;not null"`
	Recipient string    `gorm:"uniqueIndex:idx_friend_pair;not null"`
	Status    string    `gorm:"not null;default:pending"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

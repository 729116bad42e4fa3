package types

import "time"

// Presence is the cached online state kept in Redis under presence:<userId>.
type Presence struct {
	UserID   string    `json:"userId"`
	IsOnline bool      `json:"isOnline"`
	LastSeen time.Time `json:"lastSeen"`
}

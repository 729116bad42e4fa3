package user_dto

import "time"

type UserResponse struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	Avatar        string    `json:"avatar,omitempty"`
	Role          string    `json:"role"`
	IsActive      bool      `json:"is_active"`
	EmailVerified bool      `json:"email_verified"`
	ProfileSetup  bool      `json:"profile_setup"`
	LastActive    time.Time `json:"last_active"`
	CreatedAt     time.Time `json:"created_at"`
}

type PresenceResponse struct {
	UserID   string    `json:"user_id"`
	IsOnline bool      `json:"is_online"`
	LastSeen time.Time `json:"last_seen"`
}

type ConversationResponse struct {
	ChatID      string `json:"chat_id"`
	PartnerID   string `json:"partner_id"`
	UnreadCount int64  `json:"unread_count"`
}

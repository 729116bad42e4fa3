package message_dto

import "time"

type MessageResponse struct {
	ID          string    `json:"id"`
	ChatID      string    `json:"chat_id"`
	SenderID    string    `json:"sender_id"`
	Content     string    `json:"content"`
	MessageType string    `json:"message_type"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}

type MarkReadResponse struct {
	ChatID       string `json:"chat_id"`
	MessagesRead int64  `json:"messages_read"`
}

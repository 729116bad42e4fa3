package message_dto

import "time"

// WSMessage is the receiveMessage frame. Socket frames carry camelCase keys;
// the snake_case MessageResponse stays on the REST surface.
type WSMessage struct {
	ID          string    `json:"id"`
	ChatID      string    `json:"chatId"`
	SenderID    string    `json:"senderId"`
	Content     string    `json:"content"`
	MessageType string    `json:"messageType"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"createdAt"`
}

func ToWSMessage(m *MessageResponse) WSMessage {
	return WSMessage{
		ID:          m.ID,
		ChatID:      m.ChatID,
		SenderID:    m.SenderID,
		Content:     m.Content,
		MessageType: m.MessageType,
		Read:        m.Read,
		CreatedAt:   m.CreatedAt,
	}
}

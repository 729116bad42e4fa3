package message_dto

type SendMessageRequest struct {
	ChatID      string `json:"chat_id" validate:"required"`
	Content     string `json:"content" validate:"required,max=4000"`
	MessageType string `json:"message_type" validate:"omitempty,oneof=text image video file"`
}

type GetConversationRequest struct {
	Limit  int64   `json:"limit" validate:"omitempty,min=1,max=100"`
	Before *string `json:"before,omitempty"`
}

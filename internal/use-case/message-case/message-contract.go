package message_service

import (
	"context"

	"github.com/Mandalorian7773/Collabie/internal/dtos/message_dto"
	app_error "github.com/Mandalorian7773/Collabie/internal/errors"
)

type MessageServiceContract interface {
	Send(ctx context.Context, req message_dto.SendMessageRequest, senderId string) (*message_dto.MessageResponse, *app_error.AppError)
	GetConversation(ctx context.Context, chatId string, limit int64, before *string) ([]*message_dto.MessageResponse, *app_error.AppError)
	MarkRead(ctx context.Context, chatId, readerId string) (*message_dto.MarkReadResponse, *app_error.AppError)
	Delete(ctx context.Context, messageId, userId string) *app_error.AppError
}

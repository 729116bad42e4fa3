package message_service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Mandalorian7773/Collabie/internal/dtos/message_dto"
	"github.com/Mandalorian7773/Collabie/internal/entity"
	app_error "github.com/Mandalorian7773/Collabie/internal/errors"
	message_repo "github.com/Mandalorian7773/Collabie/internal/repo/message"
	"github.com/Mandalorian7773/Collabie/state"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const defaultConversationLimit = 50

type MessageService struct {
	AppState    *state.AppState
	MessageRepo message_repo.MessageRepoContract
}

func NewMessageService(appState *state.AppState) MessageServiceContract {
	return &MessageService{
		AppState:    appState,
		MessageRepo: message_repo.NewMessageRepo(appState),
	}
}

// ChatIDFor builds the canonical conversation key for two users: ids sorted
// lexicographically, joined with ":". Both sides of a DM compute the same
// key.
func ChatIDFor(userA, userB string) string {
	if userA > userB {
		userA, userB = userB, userA
	}
	return userA + ":" + userB
}

func toMessageResponse(message *entity.Message) *message_dto.MessageResponse {
	return &message_dto.MessageResponse{
		ID:          message.ID.Hex(),
		ChatID:      message.ChatID,
		SenderID:    message.SenderID,
		Content:     message.Content,
		MessageType: message.MessageType,
		Read:        message.Read,
		CreatedAt:   message.CreatedAt,
	}
}

func (s *MessageService) Send(ctx context.Context, req message_dto.SendMessageRequest, senderId string) (*message_dto.MessageResponse, *app_error.AppError) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, app_error.NewAppError(http.StatusBadRequest, "message content is empty", "content")
	}

	messageType := req.MessageType
	if messageType == "" {
		messageType = entity.MessageTypeText
	}

	message, err := s.MessageRepo.Insert(ctx, entity.Message{
		ChatID:      req.ChatID,
		SenderID:    senderId,
		Content:     content,
		MessageType: messageType,
		Read:        false,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		return nil, err
	}

	return toMessageResponse(message), nil
}

func (s *MessageService) GetConversation(ctx context.Context, chatId string, limit int64, before *string) ([]*message_dto.MessageResponse, *app_error.AppError) {
	if limit <= 0 || limit > 100 {
		limit = defaultConversationLimit
	}

	var beforeId *bson.ObjectID
	if before != nil && *before != "" {
		parsed, err := bson.ObjectIDFromHex(*before)
		if err != nil {
			return nil, app_error.NewAppError(http.StatusBadRequest, "invalid cursor", "before")
		}
		beforeId = &parsed
	}

	messages, err := s.MessageRepo.GetConversation(ctx, chatId, limit, beforeId)
	if err != nil {
		return nil, err
	}

	responses := make([]*message_dto.MessageResponse, 0, len(messages))
	for _, message := range messages {
		responses = append(responses, toMessageResponse(message))
	}
	return responses, nil
}

func (s *MessageService) MarkRead(ctx context.Context, chatId, readerId string) (*message_dto.MarkReadResponse, *app_error.AppError) {
	modified, err := s.MessageRepo.MarkConversationRead(ctx, chatId, readerId)
	if err != nil {
		return nil, err
	}
	return &message_dto.MarkReadResponse{
		ChatID:       chatId,
		MessagesRead: modified,
	}, nil
}

func (s *MessageService) Delete(ctx context.Context, messageId, userId string) *app_error.AppError {
	id, parseErr := bson.ObjectIDFromHex(messageId)
	if parseErr != nil {
		return app_error.NewAppError(http.StatusBadRequest, "invalid message id", "message-id")
	}

	message, err := s.MessageRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if message.SenderID != userId {
		return app_error.NewAppError(http.StatusForbidden, "only the sender can delete a message", "message-id")
	}

	return s.MessageRepo.Delete(ctx, id)
}

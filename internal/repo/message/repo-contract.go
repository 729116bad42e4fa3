package message_repo

import (
	"context"

	"github.com/Mandalorian7773/Collabie/internal/entity"
	app_error "github.com/Mandalorian7773/Collabie/internal/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type MessageRepoContract interface {
	Insert(ctx context.Context, message entity.Message) (*entity.Message, *app_error.AppError)
	FindByID(ctx context.Context, id bson.ObjectID) (*entity.Message, *app_error.AppError)
	// GetConversation returns messages for a chat id, newest first. When
	// before is non-nil only messages older than it are returned.
	GetConversation(ctx context.Context, chatId string, limit int64, before *bson.ObjectID) ([]*entity.Message, *app_error.AppError)
	// MarkConversationRead flips read on every unread message in the chat
	// that was NOT sent by readerId. Returns the number of modified docs.
	MarkConversationRead(ctx context.Context, chatId, readerId string) (int64, *app_error.AppError)
	CountUnread(ctx context.Context, chatId, readerId string) (int64, *app_error.AppError)
	Delete(ctx context.Context, id bson.ObjectID) *app_error.AppError
	// ConversationPartners lists the distinct chat ids the user appears in.
	ConversationPartners(ctx context.Context, userId string) ([]string, *app_error.AppError)
}

package message_repo

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"time"

	"github.com/Mandalorian7773/Collabie/internal/entity"
	app_error "github.com/Mandalorian7773/Collabie/internal/errors"
	"github.com/Mandalorian7773/Collabie/state"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const collectionName = "messages"

type MessageRepo struct {
	AppState *state.AppState
}

func NewMessageRepo(appState *state.AppState) MessageRepoContract {
	return &MessageRepo{
		AppState: appState,
	}
}

func (r *MessageRepo) collection() *mongo.Collection {
	return r.AppState.MongoDatabase().Collection(collectionName)
}

func (r *MessageRepo) Insert(ctx context.Context, message entity.Message) (*entity.Message, *app_error.AppError) {
	if message.ID.IsZero() {
		message.ID = bson.NewObjectID()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	if _, err := r.collection().InsertOne(ctx, message); err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to store message", "db-insert")
	}

	return &message, nil
}

func (r *MessageRepo) FindByID(ctx context.Context, id bson.ObjectID) (*entity.Message, *app_error.AppError) {
	var message entity.Message

	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&message)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, app_error.NewAppError(http.StatusNotFound, "message not found", "message-id")
		}
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to fetch message", "db-error")
	}

	return &message, nil
}

func (r *MessageRepo) GetConversation(ctx context.Context, chatId string, limit int64, before *bson.ObjectID) ([]*entity.Message, *app_error.AppError) {
	filter := bson.M{"chatId": chatId}
	if before != nil {
		filter["_id"] = bson.M{"$lt": *before}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection().Find(ctx, filter, opts)
	if err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to fetch conversation", "db-error")
	}
	defer cursor.Close(ctx)

	var messages []*entity.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to decode conversation", "db-decode")
	}

	return messages, nil
}

func (r *MessageRepo) MarkConversationRead(ctx context.Context, chatId, readerId string) (int64, *app_error.AppError) {
	result, err := r.collection().UpdateMany(ctx,
		bson.M{
			"chatId":   chatId,
			"senderId": bson.M{"$ne": readerId},
			"read":     false,
		},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return 0, app_error.NewAppError(http.StatusInternalServerError, "failed to mark conversation read", "db-update")
	}

	return result.ModifiedCount, nil
}

func (r *MessageRepo) CountUnread(ctx context.Context, chatId, readerId string) (int64, *app_error.AppError) {
	count, err := r.collection().CountDocuments(ctx, bson.M{
		"chatId":   chatId,
		"senderId": bson.M{"$ne": readerId},
		"read":     false,
	})
	if err != nil {
		return 0, app_error.NewAppError(http.StatusInternalServerError, "failed to count unread messages", "db-count")
	}

	return count, nil
}

func (r *MessageRepo) Delete(ctx context.Context, id bson.ObjectID) *app_error.AppError {
	result, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return app_error.NewAppError(http.StatusInternalServerError, "failed to delete message", "db-delete")
	}
	if result.DeletedCount == 0 {
		return app_error.NewAppError(http.StatusNotFound, "message not found", "message-id")
	}
	return nil
}

// chatKeyPattern anchors the user id to either side of the "a:b" pair key,
// so "alice" never matches "malice:bob".
func chatKeyPattern(userId string) string {
	return "(^|:)" + regexp.QuoteMeta(userId) + "(:|$)"
}

func (r *MessageRepo) ConversationPartners(ctx context.Context, userId string) ([]string, *app_error.AppError) {
	res := r.collection().Distinct(ctx, "chatId", bson.M{
		"chatId": bson.Regex{Pattern: chatKeyPattern(userId)},
	})
	if res.Err() != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to list conversations", "db-distinct")
	}

	var chatIds []string
	if err := res.Decode(&chatIds); err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to decode conversations", "db-decode")
	}

	return chatIds, nil
}

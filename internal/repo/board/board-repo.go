package board_repo

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Mandalorian7773/Collabie/internal/entity"
	app_error "github.com/Mandalorian7773/Collabie/internal/errors"
	"github.com/Mandalorian7773/Collabie/state"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const collectionName = "boards"

type BoardRepo struct {
	AppState *state.AppState
}

func NewBoardRepo(appState *state.AppState) BoardRepoContract {
	return &BoardRepo{
		AppState: appState,
	}
}

func (r *BoardRepo) collection() *mongo.Collection {
	return r.AppState.MongoDatabase().Collection(collectionName)
}

func (r *BoardRepo) Create(ctx context.Context, board entity.Board) (*entity.Board, *app_error.AppError) {
	existing, appErr := r.FindByChannel(ctx, board.ChannelID)
	if appErr != nil && appErr.Code != http.StatusNotFound {
		return nil, appErr
	}
	if existing != nil {
		return nil, app_error.NewAppError(http.StatusConflict, "channel already has a board", "channel-id")
	}

	if board.ID.IsZero() {
		board.ID = bson.NewObjectID()
	}
	now := time.Now()
	board.CreatedAt = now
	board.UpdatedAt = now

	if _, err := r.collection().InsertOne(ctx, board); err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to create board", "db-insert")
	}

	return &board, nil
}

func (r *BoardRepo) FindByID(ctx context.Context, id bson.ObjectID) (*entity.Board, *app_error.AppError) {
	var board entity.Board

	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&board)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, app_error.NewAppError(http.StatusNotFound, "board not found", "board-id")
		}
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to fetch board", "db-error")
	}

	return &board, nil
}

func (r *BoardRepo) FindByChannel(ctx context.Context, channelId bson.ObjectID) (*entity.Board, *app_error.AppError) {
	var board entity.Board

	err := r.collection().FindOne(ctx, bson.M{"channelId": channelId}).Decode(&board)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, app_error.NewAppError(http.StatusNotFound, "board not found for channel", "channel-id")
		}
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to fetch board", "db-error")
	}

	return &board, nil
}

func (r *BoardRepo) Save(ctx context.Context, board *entity.Board) *app_error.AppError {
	board.UpdatedAt = time.Now()

	result, err := r.collection().ReplaceOne(ctx, bson.M{"_id": board.ID}, board)
	if err != nil {
		return app_error.NewAppError(http.StatusInternalServerError, "failed to save board", "db-replace")
	}
	if result.MatchedCount == 0 {
		return app_error.NewAppError(http.StatusNotFound, "board not found", "board-id")
	}
	return nil
}

func (r *BoardRepo) Delete(ctx context.Context, id bson.ObjectID) *app_error.AppError {
	result, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return app_error.NewAppError(http.StatusInternalServerError, "failed to delete board", "db-delete")
	}
	if result.DeletedCount == 0 {
		return app_error.NewAppError(http.StatusNotFound, "board not found", "board-id")
	}
	return nil
}

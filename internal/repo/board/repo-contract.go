package board_repo

import (
	"context"

	"github.com/Mandalorian7773/Collabie/internal/entity"
	app_error "github.com/Mandalorian7773/Collabie/internal/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type BoardRepoContract interface {
	// Create inserts a board for a channel. At most one board per channel;
	// a second insert returns a conflict.
	Create(ctx context.Context, board entity.Board) (*entity.Board, *app_error.AppError)
	FindByID(ctx context.Context, id bson.ObjectID) (*entity.Board, *app_error.AppError)
	FindByChannel(ctx context.Context, channelId bson.ObjectID) (*entity.Board, *app_error.AppError)
	// Save persists the full board document after in-memory mutation.
	Save(ctx context.Context, board *entity.Board) *app_error.AppError
	Delete(ctx context.Context, id bson.ObjectID) *app_error.AppError
}

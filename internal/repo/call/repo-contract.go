package call_repo

import (
	"context"

	"github.com/Mandalorian7773/Collabie/internal/entity"
	app_error "github.com/Mandalorian7773/Collabie/internal/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// CallRepoContract is the single mutation path for call membership. Both the
// realtime layer and the HTTP layer go through AddParticipant and
// RemoveParticipant, which are atomic conditional updates, so concurrent
// joins and leaves cannot produce duplicate entries or resurrect an ended
// call.
type CallRepoContract interface {
	Create(ctx context.Context, call entity.Call) (*entity.Call, *app_error.AppError)
	FindByID(ctx context.Context, id bson.ObjectID) (*entity.Call, *app_error.AppError)
	FindActiveByRoom(ctx context.Context, roomId string) ([]*entity.Call, *app_error.AppError)
	FindActiveByUser(ctx context.Context, userId string) ([]*entity.Call, *app_error.AppError)
	// AddParticipant adds the user to an active call with set semantics.
	// Returns the updated call, or a conflict error when the call is not
	// active.
	AddParticipant(ctx context.Context, id bson.ObjectID, userId string) (*entity.Call, *app_error.AppError)
	// RemoveParticipant pulls the user out and ends the call when the
	// participant set becomes empty. Returns the call after the update.
	RemoveParticipant(ctx context.Context, id bson.ObjectID, userId string) (*entity.Call, *app_error.AppError)
	End(ctx context.Context, id bson.ObjectID, status string) (*entity.Call, *app_error.AppError)
	// EndStaleCalls ends active calls whose startedAt is older than the
	// cutoff. Returns the number of calls ended.
	EndStaleCalls(ctx context.Context, olderThanHours int) (int64, *app_error.AppError)
}

package call_repo

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
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const collectionName = "calls"

type CallRepo struct {
	AppState *state.AppState
}

func NewCallRepo(appState *state.AppState) CallRepoContract {
	return &CallRepo{
		AppState: appState,
	}
}

func (r *CallRepo) collection() *mongo.Collection {
	return r.AppState.MongoDatabase().Collection(collectionName)
}

func (r *CallRepo) Create(ctx context.Context, call entity.Call) (*entity.Call, *app_error.AppError) {
	if call.ID.IsZero() {
		call.ID = bson.NewObjectID()
	}
	if call.StartedAt.IsZero() {
		call.StartedAt = time.Now()
	}
	if call.Status == "" {
		call.Status = entity.CallStatusActive
	}
	if call.Participants == nil {
		call.Participants = []string{call.CreatedBy}
	}

	if _, err := r.collection().InsertOne(ctx, call); err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to create call", "db-insert")
	}

	return &call, nil
}

func (r *CallRepo) FindByID(ctx context.Context, id bson.ObjectID) (*entity.Call, *app_error.AppError) {
	var call entity.Call

	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&call)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, app_error.NewAppError(http.StatusNotFound, "call not found", "call-id")
		}
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to fetch call", "db-error")
	}

	return &call, nil
}

func (r *CallRepo) FindActiveByRoom(ctx context.Context, roomId string) ([]*entity.Call, *app_error.AppError) {
	return r.findActive(ctx, bson.M{"roomId": roomId, "status": entity.CallStatusActive})
}

func (r *CallRepo) FindActiveByUser(ctx context.Context, userId string) ([]*entity.Call, *app_error.AppError) {
	return r.findActive(ctx, bson.M{"participants": userId, "status": entity.CallStatusActive})
}

func (r *CallRepo) findActive(ctx context.Context, filter bson.M) ([]*entity.Call, *app_error.AppError) {
	cursor, err := r.collection().Find(ctx, filter)
	if err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to fetch active calls", "db-error")
	}
	defer cursor.Close(ctx)

	var calls []*entity.Call
	if err := cursor.All(ctx, &calls); err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to decode active calls", "db-decode")
	}

	return calls, nil
}

func (r *CallRepo) AddParticipant(ctx context.Context, id bson.ObjectID, userId string) (*entity.Call, *app_error.AppError) {
	var call entity.Call

	// $addToSet under a status filter: a join on an ended call matches
	// nothing instead of half-applying.
	err := r.collection().FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": entity.CallStatusActive},
		bson.M{"$addToSet": bson.M{"participants": userId}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&call)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, app_error.NewAppError(http.StatusConflict, "call is not active", "call-status")
		}
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to join call", "db-update")
	}

	return &call, nil
}

func (r *CallRepo) RemoveParticipant(ctx context.Context, id bson.ObjectID, userId string) (*entity.Call, *app_error.AppError) {
	var call entity.Call

	err := r.collection().FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": entity.CallStatusActive},
		bson.M{"$pull": bson.M{"participants": userId}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&call)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, app_error.NewAppError(http.StatusConflict, "call is not active", "call-status")
		}
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to leave call", "db-update")
	}

	if len(call.Participants) == 0 {
		// Conditional on emptiness so a concurrent join between the pull
		// and this update keeps the call alive.
		now := time.Now()
		err := r.collection().FindOneAndUpdate(ctx,
			bson.M{"_id": id, "status": entity.CallStatusActive, "participants": bson.M{"$size": 0}},
			bson.M{"$set": bson.M{"status": entity.CallStatusEnded, "endedAt": now}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&call)
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to end empty call", "db-update")
		}
	}

	return &call, nil
}

func (r *CallRepo) End(ctx context.Context, id bson.ObjectID, status string) (*entity.Call, *app_error.AppError) {
	var call entity.Call

	now := time.Now()
	err := r.collection().FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": entity.CallStatusActive},
		bson.M{"$set": bson.M{"status": status, "endedAt": now, "participants": []string{}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&call)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, app_error.NewAppError(http.StatusConflict, "call already ended", "call-status")
		}
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to end call", "db-update")
	}

	return &call, nil
}

func (r *CallRepo) EndStaleCalls(ctx context.Context, olderThanHours int) (int64, *app_error.AppError) {
	cutoff := time.Now().Add(-time.Duration(olderThanHours) * time.Hour)

	result, err := r.collection().UpdateMany(ctx,
		bson.M{"status": entity.CallStatusActive, "startedAt": bson.M{"$lt": cutoff}},
		bson.M{"$set": bson.M{"status": entity.CallStatusEnded, "endedAt": time.Now(), "participants": []string{}}},
	)
	if err != nil {
		return 0, app_error.NewAppError(http.StatusInternalServerError, "failed to sweep stale calls", "db-update")
	}

	return result.ModifiedCount, nil
}

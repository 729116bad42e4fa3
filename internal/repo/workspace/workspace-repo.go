package workspace_repo

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

const (
	workspaceCollection = "workspaces"
	channelCollection   = "channels"
)

type WorkspaceRepo struct {
	AppState *state.AppState
}

func NewWorkspaceRepo(appState *state.AppState) WorkspaceRepoContract {
	return &WorkspaceRepo{
		AppState: appState,
	}
}

func (r *WorkspaceRepo) workspaces() *mongo.Collection {
	return r.AppState.MongoDatabase().Collection(workspaceCollection)
}

func (r *WorkspaceRepo) channels() *mongo.Collection {
	return r.AppState.MongoDatabase().Collection(channelCollection)
}

func (r *WorkspaceRepo) Create(ctx context.Context, workspace entity.Workspace) (*entity.Workspace, *app_error.AppError) {
	if workspace.ID.IsZero() {
		workspace.ID = bson.NewObjectID()
	}
	now := time.Now()
	workspace.CreatedAt = now
	workspace.UpdatedAt = now

	if _, err := r.workspaces().InsertOne(ctx, workspace); err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to create workspace", "db-insert")
	}

	return &workspace, nil
}

func (r *WorkspaceRepo) FindByID(ctx context.Context, id bson.ObjectID) (*entity.Workspace, *app_error.AppError) {
	var workspace entity.Workspace

	err := r.workspaces().FindOne(ctx, bson.M{"_id": id}).Decode(&workspace)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, app_error.NewAppError(http.StatusNotFound, "workspace not found", "workspace-id")
		}
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to fetch workspace", "db-error")
	}

	return &workspace, nil
}

func (r *WorkspaceRepo) FindByUser(ctx context.Context, userId string) ([]*entity.Workspace, *app_error.AppError) {
	cursor, err := r.workspaces().Find(ctx, bson.M{"members.userId": userId})
	if err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to fetch workspaces", "db-error")
	}
	defer cursor.Close(ctx)

	var workspaces []*entity.Workspace
	if err := cursor.All(ctx, &workspaces); err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to decode workspaces", "db-decode")
	}

	return workspaces, nil
}

func (r *WorkspaceRepo) FindByInviteCode(ctx context.Context, code string) (*entity.Workspace, *app_error.AppError) {
	var workspace entity.Workspace

	err := r.workspaces().FindOne(ctx, bson.M{"inviteCode": code}).Decode(&workspace)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, app_error.NewAppError(http.StatusNotFound, "invalid invite code", "invite-code")
		}
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to fetch workspace", "db-error")
	}

	return &workspace, nil
}

func (r *WorkspaceRepo) AddMember(ctx context.Context, id bson.ObjectID, member entity.WorkspaceMember) (*entity.Workspace, *app_error.AppError) {
	var workspace entity.Workspace

	// Guarded push: the filter excludes workspaces that already carry the
	// user, so a racing double-join inserts the member once.
	err := r.workspaces().FindOneAndUpdate(ctx,
		bson.M{"_id": id, "members.userId": bson.M{"$ne": member.UserID}},
		bson.M{
			"$push": bson.M{"members": member},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&workspace)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Already a member or workspace gone. Disambiguate with a read.
			return r.FindByID(ctx, id)
		}
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to add member", "db-update")
	}

	return &workspace, nil
}

func (r *WorkspaceRepo) RemoveMember(ctx context.Context, id bson.ObjectID, userId string) (*entity.Workspace, *app_error.AppError) {
	var workspace entity.Workspace

	err := r.workspaces().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{
			"$pull": bson.M{"members": bson.M{"userId": userId}},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&workspace)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, app_error.NewAppError(http.StatusNotFound, "workspace not found", "workspace-id")
		}
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to remove member", "db-update")
	}

	return &workspace, nil
}

func (r *WorkspaceRepo) UpdateMemberRole(ctx context.Context, id bson.ObjectID, userId, role string) (*entity.Workspace, *app_error.AppError) {
	var workspace entity.Workspace

	err := r.workspaces().FindOneAndUpdate(ctx,
		bson.M{"_id": id, "members.userId": userId},
		bson.M{
			"$set": bson.M{"members.$.role": role, "updatedAt": time.Now()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&workspace)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, app_error.NewAppError(http.StatusNotFound, "member not found in workspace", "member-id")
		}
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to update member role", "db-update")
	}

	return &workspace, nil
}

func (r *WorkspaceRepo) SetInviteCode(ctx context.Context, id bson.ObjectID, code string) (*entity.Workspace, *app_error.AppError) {
	var workspace entity.Workspace

	err := r.workspaces().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"inviteCode": code, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&workspace)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, app_error.NewAppError(http.StatusNotFound, "workspace not found", "workspace-id")
		}
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to set invite code", "db-update")
	}

	return &workspace, nil
}

func (r *WorkspaceRepo) Delete(ctx context.Context, id bson.ObjectID) *app_error.AppError {
	if _, err := r.channels().DeleteMany(ctx, bson.M{"workspaceId": id}); err != nil {
		return app_error.NewAppError(http.StatusInternalServerError, "failed to delete workspace channels", "db-delete")
	}

	result, err := r.workspaces().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return app_error.NewAppError(http.StatusInternalServerError, "failed to delete workspace", "db-delete")
	}
	if result.DeletedCount == 0 {
		return app_error.NewAppError(http.StatusNotFound, "workspace not found", "workspace-id")
	}
	return nil
}

func (r *WorkspaceRepo) CreateChannel(ctx context.Context, channel entity.Channel) (*entity.Channel, *app_error.AppError) {
	if channel.ID.IsZero() {
		channel.ID = bson.NewObjectID()
	}
	channel.CreatedAt = time.Now()

	if _, err := r.channels().InsertOne(ctx, channel); err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to create channel", "db-insert")
	}

	if _, err := r.workspaces().UpdateOne(ctx,
		bson.M{"_id": channel.WorkspaceID},
		bson.M{"$addToSet": bson.M{"channels": channel.ID}},
	); err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to attach channel to workspace", "db-update")
	}

	return &channel, nil
}

func (r *WorkspaceRepo) FindChannelByID(ctx context.Context, id bson.ObjectID) (*entity.Channel, *app_error.AppError) {
	var channel entity.Channel

	err := r.channels().FindOne(ctx, bson.M{"_id": id}).Decode(&channel)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, app_error.NewAppError(http.StatusNotFound, "channel not found", "channel-id")
		}
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to fetch channel", "db-error")
	}

	return &channel, nil
}

func (r *WorkspaceRepo) FindChannelsByWorkspace(ctx context.Context, workspaceId bson.ObjectID) ([]*entity.Channel, *app_error.AppError) {
	cursor, err := r.channels().Find(ctx, bson.M{"workspaceId": workspaceId})
	if err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to fetch channels", "db-error")
	}
	defer cursor.Close(ctx)

	var channels []*entity.Channel
	if err := cursor.All(ctx, &channels); err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to decode channels", "db-decode")
	}

	return channels, nil
}

func (r *WorkspaceRepo) DeleteChannel(ctx context.Context, id bson.ObjectID) *app_error.AppError {
	var channel entity.Channel
	err := r.channels().FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&channel)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return app_error.NewAppError(http.StatusNotFound, "channel not found", "channel-id")
		}
		return app_error.NewAppError(http.StatusInternalServerError, "failed to delete channel", "db-delete")
	}

	if _, err := r.workspaces().UpdateOne(ctx,
		bson.M{"_id": channel.WorkspaceID},
		bson.M{"$pull": bson.M{"channels": id}},
	); err != nil {
		return app_error.NewAppError(http.StatusInternalServerError, "failed to detach channel from workspace", "db-update")
	}

	return nil
}

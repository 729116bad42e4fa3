package workspace_repo

import (
	"context"

	"github.com/Mandalorian7773/Collabie/internal/entity"
	app_error "github.com/Mandalorian7773/Collabie/internal/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type WorkspaceRepoContract interface {
	Create(ctx context.Context, workspace entity.Workspace) (*entity.Workspace, *app_error.AppError)
	FindByID(ctx context.Context, id bson.ObjectID) (*entity.Workspace, *app_error.AppError)
	FindByUser(ctx context.Context, userId string) ([]*entity.Workspace, *app_error.AppError)
	FindByInviteCode(ctx context.Context, code string) (*entity.Workspace, *app_error.AppError)
	// AddMember pushes the member only when the user is not present yet.
	// Returns the workspace after the update; joining twice is a no-op.
	AddMember(ctx context.Context, id bson.ObjectID, member entity.WorkspaceMember) (*entity.Workspace, *app_error.AppError)
	RemoveMember(ctx context.Context, id bson.ObjectID, userId string) (*entity.Workspace, *app_error.AppError)
	UpdateMemberRole(ctx context.Context, id bson.ObjectID, userId, role string) (*entity.Workspace, *app_error.AppError)
	SetInviteCode(ctx context.Context, id bson.ObjectID, code string) (*entity.Workspace, *app_error.AppError)
	Delete(ctx context.Context, id bson.ObjectID) *app_error.AppError

	CreateChannel(ctx context.Context, channel entity.Channel) (*entity.Channel, *app_error.AppError)
	FindChannelByID(ctx context.Context, id bson.ObjectID) (*entity.Channel, *app_error.AppError)
	FindChannelsByWorkspace(ctx context.Context, workspaceId bson.ObjectID) ([]*entity.Channel, *app_error.AppError)
	DeleteChannel(ctx context.Context, id bson.ObjectID) *app_error.AppError
}

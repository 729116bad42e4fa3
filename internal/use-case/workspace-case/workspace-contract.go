package workspace_service

import (
	"context"

	"github.com/Mandalorian7773/Collabie/internal/dtos/workspace_dto"
	app_error "github.com/Mandalorian7773/Collabie/internal/errors"
)

type WorkspaceServiceContract interface {
	Create(ctx context.Context, req workspace_dto.CreateWorkspaceRequest, userId string) (*workspace_dto.WorkspaceResponse, *app_error.AppError)
	Get(ctx context.Context, workspaceId, userId string) (*workspace_dto.WorkspaceResponse, *app_error.AppError)
	ListForUser(ctx context.Context, userId string) ([]*workspace_dto.WorkspaceResponse, *app_error.AppError)
	GetByInviteCode(ctx context.Context, code string) (*workspace_dto.WorkspaceResponse, *app_error.AppError)
	GenerateInviteCode(ctx context.Context, workspaceId, userId string) (*workspace_dto.InviteCodeResponse, *app_error.AppError)
	Join(ctx context.Context, req workspace_dto.JoinWorkspaceRequest, userId string) (*workspace_dto.WorkspaceResponse, *app_error.AppError)
	UpdateMemberRole(ctx context.Context, workspaceId string, req workspace_dto.UpdateMemberRoleRequest, userId string) (*workspace_dto.WorkspaceResponse, *app_error.AppError)
	Leave(ctx context.Context, workspaceId, userId string) *app_error.AppError
	CreateChannel(ctx context.Context, workspaceId string, req workspace_dto.CreateChannelRequest, userId string) (*workspace_dto.ChannelResponse, *app_error.AppError)
	ListChannels(ctx context.Context, workspaceId, userId string) ([]*workspace_dto.ChannelResponse, *app_error.AppError)
	DeleteChannel(ctx context.Context, workspaceId, channelId, userId string) *app_error.AppError
}

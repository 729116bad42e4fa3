package workspace_service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/Mandalorian7773/Collabie/internal/dtos/workspace_dto"
	"github.com/Mandalorian7773/Collabie/internal/entity"
	app_error "github.com/Mandalorian7773/Collabie/internal/errors"
	workspace_repo "github.com/Mandalorian7773/Collabie/internal/repo/workspace"
	"github.com/Mandalorian7773/Collabie/state"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type WorkspaceService struct {
	AppState      *state.AppState
	WorkspaceRepo workspace_repo.WorkspaceRepoContract
}

func NewWorkspaceService(appState *state.AppState) WorkspaceServiceContract {
	return &WorkspaceService{
		AppState:      appState,
		WorkspaceRepo: workspace_repo.NewWorkspaceRepo(appState),
	}
}

func ToWorkspaceResponse(workspace *entity.Workspace) *workspace_dto.WorkspaceResponse {
	members := make([]workspace_dto.MemberResponse, 0, len(workspace.Members))
	for _, member := range workspace.Members {
		members = append(members, workspace_dto.MemberResponse{
			UserID: member.UserID,
			Role:   member.Role,
		})
	}

	channels := make([]string, 0, len(workspace.Channels))
	for _, channelId := range workspace.Channels {
		channels = append(channels, channelId.Hex())
	}

	return &workspace_dto.WorkspaceResponse{
		ID:         workspace.ID.Hex(),
		Name:       workspace.Name,
		Owner:      workspace.Owner,
		Members:    members,
		Channels:   channels,
		InviteCode: workspace.InviteCode,
		CreatedAt:  workspace.CreatedAt,
		UpdatedAt:  workspace.UpdatedAt,
	}
}

func toChannelResponse(channel *entity.Channel) *workspace_dto.ChannelResponse {
	return &workspace_dto.ChannelResponse{
		ID:          channel.ID.Hex(),
		WorkspaceID: channel.WorkspaceID.Hex(),
		Name:        channel.Name,
		Type:        channel.Type,
		CreatedAt:   channel.CreatedAt,
	}
}

func parseWorkspaceID(workspaceId string) (bson.ObjectID, *app_error.AppError) {
	id, err := bson.ObjectIDFromHex(workspaceId)
	if err != nil {
		return bson.ObjectID{}, app_error.NewAppError(http.StatusBadRequest, "invalid workspace id", "workspace-id")
	}
	return id, nil
}

func generateInviteCode() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func (s *WorkspaceService) Create(ctx context.Context, req workspace_dto.CreateWorkspaceRequest, userId string) (*workspace_dto.WorkspaceResponse, *app_error.AppError) {
	code, genErr := generateInviteCode()
	if genErr != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to generate invite code", "invite-code")
	}

	workspace, err := s.WorkspaceRepo.Create(ctx, entity.Workspace{
		Name:  req.Name,
		Owner: userId,
		Members: []entity.WorkspaceMember{
			{UserID: userId, Role: entity.WorkspaceRoleOwner},
		},
		Channels:   []bson.ObjectID{},
		InviteCode: code,
	})
	if err != nil {
		return nil, err
	}

	return ToWorkspaceResponse(workspace), nil
}

func (s *WorkspaceService) Get(ctx context.Context, workspaceId, userId string) (*workspace_dto.WorkspaceResponse, *app_error.AppError) {
	workspace, err := s.loadMemberWorkspace(ctx, workspaceId, userId)
	if err != nil {
		return nil, err
	}
	return ToWorkspaceResponse(workspace), nil
}

func (s *WorkspaceService) ListForUser(ctx context.Context, userId string) ([]*workspace_dto.WorkspaceResponse, *app_error.AppError) {
	workspaces, err := s.WorkspaceRepo.FindByUser(ctx, userId)
	if err != nil {
		return nil, err
	}

	responses := make([]*workspace_dto.WorkspaceResponse, 0, len(workspaces))
	for _, workspace := range workspaces {
		responses = append(responses, ToWorkspaceResponse(workspace))
	}
	return responses, nil
}

func (s *WorkspaceService) GetByInviteCode(ctx context.Context, code string) (*workspace_dto.WorkspaceResponse, *app_error.AppError) {
	workspace, err := s.WorkspaceRepo.FindByInviteCode(ctx, code)
	if err != nil {
		return nil, err
	}

	// Preview for non-members: hide the code itself.
	response := ToWorkspaceResponse(workspace)
	response.InviteCode = ""
	return response, nil
}

func (s *WorkspaceService) GenerateInviteCode(ctx context.Context, workspaceId, userId string) (*workspace_dto.InviteCodeResponse, *app_error.AppError) {
	workspace, err := s.loadManagedWorkspace(ctx, workspaceId, userId)
	if err != nil {
		return nil, err
	}

	code, genErr := generateInviteCode()
	if genErr != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to generate invite code", "invite-code")
	}

	updated, err := s.WorkspaceRepo.SetInviteCode(ctx, workspace.ID, code)
	if err != nil {
		return nil, err
	}

	return &workspace_dto.InviteCodeResponse{
		WorkspaceID: updated.ID.Hex(),
		InviteCode:  updated.InviteCode,
	}, nil
}

func (s *WorkspaceService) Join(ctx context.Context, req workspace_dto.JoinWorkspaceRequest, userId string) (*workspace_dto.WorkspaceResponse, *app_error.AppError) {
	workspace, err := s.WorkspaceRepo.FindByInviteCode(ctx, req.InviteCode)
	if err != nil {
		return nil, err
	}

	updated, err := s.WorkspaceRepo.AddMember(ctx, workspace.ID, entity.WorkspaceMember{
		UserID: userId,
		Role:   entity.WorkspaceRoleMember,
	})
	if err != nil {
		return nil, err
	}

	return ToWorkspaceResponse(updated), nil
}

func (s *WorkspaceService) UpdateMemberRole(ctx context.Context, workspaceId string, req workspace_dto.UpdateMemberRoleRequest, userId string) (*workspace_dto.WorkspaceResponse, *app_error.AppError) {
	workspace, err := s.loadManagedWorkspace(ctx, workspaceId, userId)
	if err != nil {
		return nil, err
	}

	if req.UserID == workspace.Owner {
		return nil, app_error.NewAppError(http.StatusForbidden, "cannot change the owner role", "user-id")
	}
	if !workspace.HasMember(req.UserID) {
		return nil, app_error.NewAppError(http.StatusNotFound, "user is not a member", "user-id")
	}

	updated, err := s.WorkspaceRepo.UpdateMemberRole(ctx, workspace.ID, req.UserID, req.Role)
	if err != nil {
		return nil, err
	}

	return ToWorkspaceResponse(updated), nil
}

func (s *WorkspaceService) Leave(ctx context.Context, workspaceId, userId string) *app_error.AppError {
	workspace, err := s.loadMemberWorkspace(ctx, workspaceId, userId)
	if err != nil {
		return err
	}

	if workspace.Owner == userId {
		// Owner leaving dissolves the workspace.
		return s.WorkspaceRepo.Delete(ctx, workspace.ID)
	}

	_, err = s.WorkspaceRepo.RemoveMember(ctx, workspace.ID, userId)
	return err
}

func (s *WorkspaceService) CreateChannel(ctx context.Context, workspaceId string, req workspace_dto.CreateChannelRequest, userId string) (*workspace_dto.ChannelResponse, *app_error.AppError) {
	workspace, err := s.loadManagedWorkspace(ctx, workspaceId, userId)
	if err != nil {
		return nil, err
	}

	if !entity.ValidChannelType(req.Type) {
		return nil, app_error.NewAppError(http.StatusBadRequest, "invalid channel type", "channel-type")
	}

	channel, err := s.WorkspaceRepo.CreateChannel(ctx, entity.Channel{
		Name:        req.Name,
		Type:        req.Type,
		WorkspaceID: workspace.ID,
	})
	if err != nil {
		return nil, err
	}

	return toChannelResponse(channel), nil
}

func (s *WorkspaceService) ListChannels(ctx context.Context, workspaceId, userId string) ([]*workspace_dto.ChannelResponse, *app_error.AppError) {
	workspace, err := s.loadMemberWorkspace(ctx, workspaceId, userId)
	if err != nil {
		return nil, err
	}

	channels, err := s.WorkspaceRepo.FindChannelsByWorkspace(ctx, workspace.ID)
	if err != nil {
		return nil, err
	}

	responses := make([]*workspace_dto.ChannelResponse, 0, len(channels))
	for _, channel := range channels {
		responses = append(responses, toChannelResponse(channel))
	}
	return responses, nil
}

func (s *WorkspaceService) DeleteChannel(ctx context.Context, workspaceId, channelId, userId string) *app_error.AppError {
	workspace, err := s.loadManagedWorkspace(ctx, workspaceId, userId)
	if err != nil {
		return err
	}

	id, parseErr := bson.ObjectIDFromHex(channelId)
	if parseErr != nil {
		return app_error.NewAppError(http.StatusBadRequest, "invalid channel id", "channel-id")
	}

	channel, err := s.WorkspaceRepo.FindChannelByID(ctx, id)
	if err != nil {
		return err
	}
	if channel.WorkspaceID != workspace.ID {
		return app_error.NewAppError(http.StatusNotFound, "channel not found in workspace", "channel-id")
	}

	return s.WorkspaceRepo.DeleteChannel(ctx, id)
}

func (s *WorkspaceService) loadMemberWorkspace(ctx context.Context, workspaceId, userId string) (*entity.Workspace, *app_error.AppError) {
	id, appErr := parseWorkspaceID(workspaceId)
	if appErr != nil {
		return nil, appErr
	}

	workspace, err := s.WorkspaceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !workspace.HasMember(userId) {
		return nil, app_error.NewAppError(http.StatusForbidden, "not a member of this workspace", "workspace-id")
	}
	return workspace, nil
}

func (s *WorkspaceService) loadManagedWorkspace(ctx context.Context, workspaceId, userId string) (*entity.Workspace, *app_error.AppError) {
	workspace, err := s.loadMemberWorkspace(ctx, workspaceId, userId)
	if err != nil {
		return nil, err
	}
	if !workspace.CanManage(userId) {
		return nil, app_error.NewAppError(http.StatusForbidden, "insufficient workspace role", "workspace-role")
	}
	return workspace, nil
}

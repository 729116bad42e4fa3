package workspace_service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Mandalorian7773/Collabie/internal/dtos/workspace_dto"
	"github.com/Mandalorian7773/Collabie/internal/entity"
	app_error "github.com/Mandalorian7773/Collabie/internal/errors"
)

type fakeWorkspaceRepo struct {
	workspaces map[bson.ObjectID]*entity.Workspace
	channels   map[bson.ObjectID]*entity.Channel
}

func newFakeWorkspaceRepo() *fakeWorkspaceRepo {
	return &fakeWorkspaceRepo{
		workspaces: make(map[bson.ObjectID]*entity.Workspace),
		channels:   make(map[bson.ObjectID]*entity.Channel),
	}
}

func (f *fakeWorkspaceRepo) Create(ctx context.Context, workspace entity.Workspace) (*entity.Workspace, *app_error.AppError) {
	now := time.Now()
	workspace.ID = bson.NewObjectID()
	workspace.CreatedAt = now
	workspace.UpdatedAt = now
	f.workspaces[workspace.ID] = &workspace
	return &workspace, nil
}

func (f *fakeWorkspaceRepo) FindByID(ctx context.Context, id bson.ObjectID) (*entity.Workspace, *app_error.AppError) {
	workspace, ok := f.workspaces[id]
	if !ok {
		return nil, app_error.NewAppError(http.StatusNotFound, "workspace not found", "workspace-id")
	}
	return workspace, nil
}

func (f *fakeWorkspaceRepo) FindByUser(ctx context.Context, userId string) ([]*entity.Workspace, *app_error.AppError) {
	var out []*entity.Workspace
	for _, workspace := range f.workspaces {
		if workspace.HasMember(userId) {
			out = append(out, workspace)
		}
	}
	return out, nil
}

func (f *fakeWorkspaceRepo) FindByInviteCode(ctx context.Context, code string) (*entity.Workspace, *app_error.AppError) {
	for _, workspace := range f.workspaces {
		if workspace.InviteCode == code {
			return workspace, nil
		}
	}
	return nil, app_error.NewAppError(http.StatusNotFound, "invite code not found", "invite-code")
}

func (f *fakeWorkspaceRepo) AddMember(ctx context.Context, id bson.ObjectID, member entity.WorkspaceMember) (*entity.Workspace, *app_error.AppError) {
	workspace, err := f.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !workspace.HasMember(member.UserID) {
		workspace.Members = append(workspace.Members, member)
	}
	return workspace, nil
}

func (f *fakeWorkspaceRepo) RemoveMember(ctx context.Context, id bson.ObjectID, userId string) (*entity.Workspace, *app_error.AppError) {
	workspace, err := f.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	for i, member := range workspace.Members {
		if member.UserID == userId {
			workspace.Members = append(workspace.Members[:i], workspace.Members[i+1:]...)
			break
		}
	}
	return workspace, nil
}

func (f *fakeWorkspaceRepo) UpdateMemberRole(ctx context.Context, id bson.ObjectID, userId, role string) (*entity.Workspace, *app_error.AppError) {
	workspace, err := f.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	for i := range workspace.Members {
		if workspace.Members[i].UserID == userId {
			workspace.Members[i].Role = role
		}
	}
	return workspace, nil
}

func (f *fakeWorkspaceRepo) SetInviteCode(ctx context.Context, id bson.ObjectID, code string) (*entity.Workspace, *app_error.AppError) {
	workspace, err := f.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	workspace.InviteCode = code
	return workspace, nil
}

func (f *fakeWorkspaceRepo) Delete(ctx context.Context, id bson.ObjectID) *app_error.AppError {
	delete(f.workspaces, id)
	return nil
}

func (f *fakeWorkspaceRepo) CreateChannel(ctx context.Context, channel entity.Channel) (*entity.Channel, *app_error.AppError) {
	channel.ID = bson.NewObjectID()
	channel.CreatedAt = time.Now()
	f.channels[channel.ID] = &channel
	return &channel, nil
}

func (f *fakeWorkspaceRepo) FindChannelByID(ctx context.Context, id bson.ObjectID) (*entity.Channel, *app_error.AppError) {
	channel, ok := f.channels[id]
	if !ok {
		return nil, app_error.NewAppError(http.StatusNotFound, "channel not found", "channel-id")
	}
	return channel, nil
}

func (f *fakeWorkspaceRepo) FindChannelsByWorkspace(ctx context.Context, workspaceId bson.ObjectID) ([]*entity.Channel, *app_error.AppError) {
	var out []*entity.Channel
	for _, channel := range f.channels {
		if channel.WorkspaceID == workspaceId {
			out = append(out, channel)
		}
	}
	return out, nil
}

func (f *fakeWorkspaceRepo) DeleteChannel(ctx context.Context, id bson.ObjectID) *app_error.AppError {
	delete(f.channels, id)
	return nil
}

func newTestService() *WorkspaceService {
	return &WorkspaceService{WorkspaceRepo: newFakeWorkspaceRepo()}
}

func TestCreate_OwnerSeededAsMember(t *testing.T) {
	service := newTestService()

	workspace, err := service.Create(context.Background(), workspace_dto.CreateWorkspaceRequest{Name: "eng"}, "alice")

	require.Nil(t, err)
	assert.Equal(t, "alice", workspace.Owner)
	require.Len(t, workspace.Members, 1)
	assert.Equal(t, entity.WorkspaceRoleOwner, workspace.Members[0].Role)
	assert.Len(t, workspace.InviteCode, 8)
}

func TestGet_RequiresMembership(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	workspace, err := service.Create(ctx, workspace_dto.CreateWorkspaceRequest{Name: "eng"}, "alice")
	require.Nil(t, err)

	_, err = service.Get(ctx, workspace.ID, "outsider")
	require.NotNil(t, err)
	assert.Equal(t, http.StatusForbidden, err.Code)

	_, err = service.Get(ctx, "not-an-id", "alice")
	require.NotNil(t, err)
	assert.Equal(t, http.StatusBadRequest, err.Code)
}

func TestJoin_ByInviteCode(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	created, err := service.Create(ctx, workspace_dto.CreateWorkspaceRequest{Name: "eng"}, "alice")
	require.Nil(t, err)

	joined, err := service.Join(ctx, workspace_dto.JoinWorkspaceRequest{InviteCode: created.InviteCode}, "bob")
	require.Nil(t, err)
	require.Len(t, joined.Members, 2)

	// Joining twice does not duplicate the member.
	joined, err = service.Join(ctx, workspace_dto.JoinWorkspaceRequest{InviteCode: created.InviteCode}, "bob")
	require.Nil(t, err)
	assert.Len(t, joined.Members, 2)

	_, err = service.Join(ctx, workspace_dto.JoinWorkspaceRequest{InviteCode: "bogus"}, "carol")
	require.NotNil(t, err)
	assert.Equal(t, http.StatusNotFound, err.Code)
}

func TestGetByInviteCode_HidesCode(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	created, err := service.Create(ctx, workspace_dto.CreateWorkspaceRequest{Name: "eng"}, "alice")
	require.Nil(t, err)

	preview, err := service.GetByInviteCode(ctx, created.InviteCode)
	require.Nil(t, err)
	assert.Empty(t, preview.InviteCode)
	assert.Equal(t, created.ID, preview.ID)
}

func TestGenerateInviteCode_RotatesCode(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	created, err := service.Create(ctx, workspace_dto.CreateWorkspaceRequest{Name: "eng"}, "alice")
	require.Nil(t, err)

	rotated, err := service.GenerateInviteCode(ctx, created.ID, "alice")
	require.Nil(t, err)
	assert.NotEqual(t, created.InviteCode, rotated.InviteCode)

	// Members without a managing role cannot rotate.
	_, err = service.Join(ctx, workspace_dto.JoinWorkspaceRequest{InviteCode: rotated.InviteCode}, "bob")
	require.Nil(t, err)
	_, err = service.GenerateInviteCode(ctx, created.ID, "bob")
	require.NotNil(t, err)
	assert.Equal(t, http.StatusForbidden, err.Code)
}

func TestUpdateMemberRole_Rules(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	created, err := service.Create(ctx, workspace_dto.CreateWorkspaceRequest{Name: "eng"}, "alice")
	require.Nil(t, err)
	_, err = service.Join(ctx, workspace_dto.JoinWorkspaceRequest{InviteCode: created.InviteCode}, "bob")
	require.Nil(t, err)

	// Owner role is immutable.
	_, err = service.UpdateMemberRole(ctx, created.ID, workspace_dto.UpdateMemberRoleRequest{UserID: "alice", Role: entity.WorkspaceRoleMember}, "alice")
	require.NotNil(t, err)
	assert.Equal(t, http.StatusForbidden, err.Code)

	// Non-members cannot be promoted.
	_, err = service.UpdateMemberRole(ctx, created.ID, workspace_dto.UpdateMemberRoleRequest{UserID: "ghost", Role: entity.WorkspaceRoleAdmin}, "alice")
	require.NotNil(t, err)
	assert.Equal(t, http.StatusNotFound, err.Code)

	updated, err := service.UpdateMemberRole(ctx, created.ID, workspace_dto.UpdateMemberRoleRequest{UserID: "bob", Role: entity.WorkspaceRoleAdmin}, "alice")
	require.Nil(t, err)
	for _, member := range updated.Members {
		if member.UserID == "bob" {
			assert.Equal(t, entity.WorkspaceRoleAdmin, member.Role)
		}
	}

	// Freshly promoted admin can manage too.
	_, err = service.GenerateInviteCode(ctx, created.ID, "bob")
	assert.Nil(t, err)
}

func TestLeave_OwnerDissolvesWorkspace(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	created, err := service.Create(ctx, workspace_dto.CreateWorkspaceRequest{Name: "eng"}, "alice")
	require.Nil(t, err)
	_, err = service.Join(ctx, workspace_dto.JoinWorkspaceRequest{InviteCode: created.InviteCode}, "bob")
	require.Nil(t, err)

	// Regular member leaving only removes them.
	require.Nil(t, service.Leave(ctx, created.ID, "bob"))
	got, err := service.Get(ctx, created.ID, "alice")
	require.Nil(t, err)
	assert.Len(t, got.Members, 1)

	// Owner leaving deletes the workspace.
	require.Nil(t, service.Leave(ctx, created.ID, "alice"))
	_, err = service.Get(ctx, created.ID, "alice")
	require.NotNil(t, err)
	assert.Equal(t, http.StatusNotFound, err.Code)
}

func TestCreateChannel_TypeValidated(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	created, err := service.Create(ctx, workspace_dto.CreateWorkspaceRequest{Name: "eng"}, "alice")
	require.Nil(t, err)

	channel, err := service.CreateChannel(ctx, created.ID, workspace_dto.CreateChannelRequest{Name: "general", Type: entity.ChannelTypeText}, "alice")
	require.Nil(t, err)
	assert.Equal(t, entity.ChannelTypeText, channel.Type)

	_, err = service.CreateChannel(ctx, created.ID, workspace_dto.CreateChannelRequest{Name: "weird", Type: "stream"}, "alice")
	require.NotNil(t, err)
	assert.Equal(t, http.StatusBadRequest, err.Code)
}

func TestDeleteChannel_ScopedToWorkspace(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	first, err := service.Create(ctx, workspace_dto.CreateWorkspaceRequest{Name: "eng"}, "alice")
	require.Nil(t, err)
	second, err := service.Create(ctx, workspace_dto.CreateWorkspaceRequest{Name: "ops"}, "alice")
	require.Nil(t, err)

	channel, err := service.CreateChannel(ctx, first.ID, workspace_dto.CreateChannelRequest{Name: "general", Type: entity.ChannelTypeText}, "alice")
	require.Nil(t, err)

	// Channel belongs to the first workspace only.
	delErr := service.DeleteChannel(ctx, second.ID, channel.ID, "alice")
	require.NotNil(t, delErr)
	assert.Equal(t, http.StatusNotFound, delErr.Code)

	assert.Nil(t, service.DeleteChannel(ctx, first.ID, channel.ID, "alice"))
}

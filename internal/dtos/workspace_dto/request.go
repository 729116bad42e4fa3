package workspace_dto

type CreateWorkspaceRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

type JoinWorkspaceRequest struct {
	InviteCode string `json:"invite_code" validate:"required,len=8"`
}

type UpdateMemberRoleRequest struct {
	UserID string `json:"user_id" validate:"required,uuid4"`
	Role   string `json:"role" validate:"required,oneof=admin member"`
}

type CreateChannelRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
	Type string `json:"type" validate:"required,oneof=text board voice"`
}

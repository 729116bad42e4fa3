package workspace_dto

import "time"

type WorkspaceResponse struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Owner      string           `json:"owner"`
	Members    []MemberResponse `json:"members"`
	Channels   []string         `json:"channels"`
	InviteCode string           `json:"invite_code,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

type MemberResponse struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

type ChannelResponse struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspace_id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"created_at"`
}

type InviteCodeResponse struct {
	WorkspaceID string `json:"workspace_id"`
	InviteCode  string `json:"invite_code"`
}

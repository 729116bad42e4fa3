package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	WorkspaceRoleOwner  = "owner"
	WorkspaceRoleAdmin  = "admin"
	WorkspaceRoleMember = "member"

	ChannelTypeText  = "text"
	ChannelTypeBoard = "board"
	ChannelTypeVoice = "voice"
)

type WorkspaceMember struct {
	UserID string `bson:"userId" json:"userId"`
	Role   string `bson:"role" json:"role"`
}

// Workspace groups channels and members. The owner is always present in the
// member list with the owner role; repos enforce this on create.
type Workspace struct {
	ID         bson.ObjectID     `bson:"_id,omitempty" json:"id"`
	Name       string            `bson:"name" json:"name"`
	Owner      string            `bson:"owner" json:"owner"`
	Members    []WorkspaceMember `bson:"members" json:"members"`
	Channels   []bson.ObjectID   `bson:"channels" json:"channels"`
	InviteCode string            `bson:"inviteCode" json:"inviteCode"`
	CreatedAt  time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time         `bson:"updatedAt" json:"updatedAt"`
}

func (w *Workspace) MemberRole(userID string) (string, bool) {
	for _, m := range w.Members {
		if m.UserID == userID {
			return m.Role, true
		}
	}
	return "", false
}

func (w *Workspace) HasMember(userID string) bool {
	_, ok := w.MemberRole(userID)
	return ok
}

// CanManage reports whether userID may mutate workspace structure
// (channels, roles, invites).
func (w *Workspace) CanManage(userID string) bool {
	role, ok := w.MemberRole(userID)
	return ok && (role == WorkspaceRoleOwner || role == WorkspaceRoleAdmin)
}

type Channel struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string        `bson:"name" json:"name"`
	Type        string        `bson:"type" json:"type"`
	WorkspaceID bson.ObjectID `bson:"workspaceId" json:"workspaceId"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt" json:"updatedAt"`
}

func ValidChannelType(t string) bool {
	return t == ChannelTypeText || t == ChannelTypeBoard || t == ChannelTypeVoice
}

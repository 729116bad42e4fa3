package user_service

import (
	"context"
	"strings"

	"github.com/Mandalorian7773/Collabie/internal/dtos/user_dto"
	"github.com/Mandalorian7773/Collabie/internal/entity"
	app_error "github.com/Mandalorian7773/Collabie/internal/errors"
	message_repo "github.com/Mandalorian7773/Collabie/internal/repo/message"
	presence_repo "github.com/Mandalorian7773/Collabie/internal/repo/presence"
	user_repo "github.com/Mandalorian7773/Collabie/internal/repo/user"
	"github.com/Mandalorian7773/Collabie/state"
)

const searchLimit = 20

type UserService struct {
	AppState     *state.AppState
	UserRepo     user_repo.UserRepoContract
	PresenceRepo presence_repo.PresenceRepoContract
	MessageRepo  message_repo.MessageRepoContract
}

func NewUserService(appState *state.AppState) UserServiceContract {
	return &UserService{
		AppState:     appState,
		UserRepo:     user_repo.NewUserRepo(appState),
		PresenceRepo: presence_repo.NewPresenceRepo(appState),
		MessageRepo:  message_repo.NewMessageRepo(appState),
	}
}

func toUserResponse(user *entity.User) *user_dto.UserResponse {
	return &user_dto.UserResponse{
		ID:            user.ID,
		Username:      user.Username,
		Email:         user.Email,
		Avatar:        user.Avatar,
		Role:          user.Role,
		IsActive:      user.IsActive,
		EmailVerified: user.EmailVerified,
		ProfileSetup:  user.ProfileSetup,
		LastActive:    user.LastActive,
		CreatedAt:     user.CreatedAt,
	}
}

func (s *UserService) GetProfile(ctx context.Context, userId string) (*user_dto.UserResponse, *app_error.AppError) {
	user, err := s.UserRepo.FindByID(ctx, userId)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *UserService) UpdateProfile(ctx context.Context, req user_dto.UpdateProfileRequest, userId string) (*user_dto.UserResponse, *app_error.AppError) {
	user, err := s.UserRepo.UpdateProfile(ctx, userId, req.Avatar, req.ProfileSetup)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *UserService) Search(ctx context.Context, query string) ([]*user_dto.UserResponse, *app_error.AppError) {
	users, err := s.UserRepo.Search(ctx, strings.TrimSpace(query), searchLimit)
	if err != nil {
		return nil, err
	}

	responses := make([]*user_dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, toUserResponse(user))
	}
	return responses, nil
}

func (s *UserService) ListActive(ctx context.Context) ([]*user_dto.UserResponse, *app_error.AppError) {
	users, err := s.UserRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*user_dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, toUserResponse(user))
	}
	return responses, nil
}

func (s *UserService) GetPresence(ctx context.Context, userId string) (*user_dto.PresenceResponse, *app_error.AppError) {
	presence, err := s.PresenceRepo.Get(ctx, userId)
	if err != nil {
		return nil, err
	}
	return &user_dto.PresenceResponse{
		UserID:   presence.UserID,
		IsOnline: presence.IsOnline,
		LastSeen: presence.LastSeen,
	}, nil
}

func (s *UserService) Conversations(ctx context.Context, userId string) ([]*user_dto.ConversationResponse, *app_error.AppError) {
	chatIds, err := s.MessageRepo.ConversationPartners(ctx, userId)
	if err != nil {
		return nil, err
	}

	responses := make([]*user_dto.ConversationResponse, 0, len(chatIds))
	for _, chatId := range chatIds {
		unread, err := s.MessageRepo.CountUnread(ctx, chatId, userId)
		if err != nil {
			return nil, err
		}
		responses = append(responses, &user_dto.ConversationResponse{
			ChatID:      chatId,
			PartnerID:   partnerFromChatID(chatId, userId),
			UnreadCount: unread,
		})
	}
	return responses, nil
}

func (s *UserService) Deactivate(ctx context.Context, userId string) *app_error.AppError {
	return s.UserRepo.Deactivate(ctx, userId)
}

// partnerFromChatID extracts the other participant from a direct chat id of
// the form "<userA>:<userB>" with the ids sorted lexicographically.
func partnerFromChatID(chatId, userId string) string {
	parts := strings.Split(chatId, ":")
	if len(parts) != 2 {
		return ""
	}
	if parts[0] == userId {
		return parts[1]
	}
	return parts[0]
}

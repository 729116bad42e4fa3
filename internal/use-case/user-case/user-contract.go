package user_service

import (
	"context"

	"github.com/Mandalorian7773/Collabie/internal/dtos/user_dto"
	app_error "github.com/Mandalorian7773/Collabie/internal/errors"
)

type UserServiceContract interface {
	GetProfile(ctx context.Context, userId string) (*user_dto.UserResponse, *app_error.AppError)
	UpdateProfile(ctx context.Context, req user_dto.UpdateProfileRequest, userId string) (*user_dto.UserResponse, *app_error.AppError)
	Search(ctx context.Context, query string) ([]*user_dto.UserResponse, *app_error.AppError)
	ListActive(ctx context.Context) ([]*user_dto.UserResponse, *app_error.AppError)
	GetPresence(ctx context.Context, userId string) (*user_dto.PresenceResponse, *app_error.AppError)
	Conversations(ctx context.Context, userId string) ([]*user_dto.ConversationResponse, *app_error.AppError)
	Deactivate(ctx context.Context, userId string) *app_error.AppError
}

package auth_service

import (
	"context"

	"github.com/Mandalorian7773/Collabie/internal/dtos/auth_dto"
	app_error "github.com/Mandalorian7773/Collabie/internal/errors"
	"github.com/Mandalorian7773/Collabie/internal/utils/types"
)

type AuthServiceContract interface {
	Register(ctx context.Context, req auth_dto.RegisterRequest) (*auth_dto.AuthResponse, *app_error.AppError)
	VerifyEmail(ctx context.Context, req auth_dto.VerifyEmailRequest, userId string) (bool, *app_error.AppError)
	Login(ctx context.Context, req auth_dto.LoginRequest, device types.DeviceInfo) (*auth_dto.AuthResponse, *app_error.AppError)
	Refresh(ctx context.Context, req auth_dto.RefreshRequest, device types.DeviceInfo) (*auth_dto.TokenPairResponse, *app_error.AppError)
	Logout(ctx context.Context, req auth_dto.LogoutRequest) *app_error.AppError
	LogoutAll(ctx context.Context, userId string) (*auth_dto.LogoutAllResponse, *app_error.AppError)
	ChangePassword(ctx context.Context, req auth_dto.ChangePasswordRequest, userId string) *app_error.AppError
}

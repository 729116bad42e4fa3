package user_repo

import (
	"context"
	"time"

	"github.com/Mandalorian7773/Collabie/internal/entity"
	app_error "github.com/Mandalorian7773/Collabie/internal/errors"
)

type UserRepoContract interface {
	CountUser(ctx context.Context, filter entity.UserFilter) (int64, *app_error.AppError)
	SaveUser(ctx context.Context, model entity.User) *app_error.AppError
	FindByID(ctx context.Context, userId string) (*entity.User, *app_error.AppError)
	FindByEmailOrUsername(ctx context.Context, identifier string) (*entity.User, *app_error.AppError)
	ListActive(ctx context.Context) ([]*entity.User, *app_error.AppError)
	Search(ctx context.Context, query string, limit int) ([]*entity.User, *app_error.AppError)
	TouchLastActive(ctx context.Context, userId string, at time.Time) *app_error.AppError
	UpdateProfile(ctx context.Context, userId string, avatar *string, profileSetup *bool) (*entity.User, *app_error.AppError)
	UpdatePassword(ctx context.Context, userId, passwordHash string) *app_error.AppError
	MarkEmailVerified(ctx context.Context, userId string) *app_error.AppError
	Deactivate(ctx context.Context, userId string) *app_error.AppError
}

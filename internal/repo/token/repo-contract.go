package token_repo

import (
	"context"

	"github.com/Mandalorian7773/Collabie/internal/entity"
	app_error "github.com/Mandalorian7773/Collabie/internal/errors"
)

type TokenRepoContract interface {
	Save(ctx context.Context, token entity.RefreshToken) *app_error.AppError
	FindValid(ctx context.Context, tokenString string) (*entity.RefreshToken, *app_error.AppError)
	CountValid(ctx context.Context, userId string) (int64, *app_error.AppError)
	RevokeOldestValid(ctx context.Context, userId string) *app_error.AppError
	Revoke(ctx context.Context, tokenString string) *app_error.AppError
	RevokeAllForUser(ctx context.Context, userId string) (int64, *app_error.AppError)
	MarkUsed(ctx context.Context, tokenString string) *app_error.AppError
	DeleteExpired(ctx context.Context) (int64, *app_error.AppError)
}

package token_repo

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Mandalorian7773/Collabie/internal/entity"
	app_error "github.com/Mandalorian7773/Collabie/internal/errors"
	"github.com/Mandalorian7773/Collabie/state"
	"gorm.io/gorm"
)

type TokenRepo struct {
	AppState *state.AppState
}

func NewTokenRepo(appState *state.AppState) TokenRepoContract {
	return &TokenRepo{
		AppState: appState,
	}
}

func (r *TokenRepo) Save(ctx context.Context, token entity.RefreshToken) *app_error.AppError {
	if err := r.AppState.DB.WithContext(ctx).Create(&token).Error; err != nil {
		return app_error.NewAppError(http.StatusInternalServerError, "failed to persist refresh token", "db-create")
	}
	return nil
}

func (r *TokenRepo) FindValid(ctx context.Context, tokenString string) (*entity.RefreshToken, *app_error.AppError) {
	var token entity.RefreshToken

	if err := r.AppState.DB.WithContext(ctx).
		Where("token = ? AND is_revoked = ? AND expires_at > ?", tokenString, false, time.Now()).
		First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NewAppError(http.StatusUnauthorized, "invalid or expired refresh token", "refresh-token")
		}
		return nil, app_error.NewAppError(http.StatusInternalServerError, "unexpected error occur when fetch refresh token", "db-error")
	}

	return &token, nil
}

func (r *TokenRepo) CountValid(ctx context.Context, userId string) (int64, *app_error.AppError) {
	var count int64

	if err := r.AppState.DB.WithContext(ctx).Model(&entity.RefreshToken{}).
		Where("user_id = ? AND is_revoked = ? AND expires_at > ?", userId, false, time.Now()).
		Count(&count).Error; err != nil {
		return 0, app_error.NewAppError(http.StatusInternalServerError, "unexpected server error", "db-count")
	}

	return count, nil
}

// RevokeOldestValid flips is_revoked on the oldest still-valid token for the
// user. Used to keep the per-user valid-token count at the cap.
func (r *TokenRepo) RevokeOldestValid(ctx context.Context, userId string) *app_error.AppError {
	var oldest entity.RefreshToken

	if err := r.AppState.DB.WithContext(ctx).
		Where("user_id = ? AND is_revoked = ? AND expires_at > ?", userId, false, time.Now()).
		Order("created_at ASC").
		First(&oldest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return app_error.NewAppError(http.StatusInternalServerError, "failed to fetch oldest refresh token", "db-error")
	}

	if err := r.AppState.DB.WithContext(ctx).Model(&entity.RefreshToken{}).
		Where("id = ?", oldest.ID).
		Update("is_revoked", true).Error; err != nil {
		return app_error.NewAppError(http.StatusInternalServerError, "failed to revoke oldest refresh token", "db-update")
	}

	return nil
}

func (r *TokenRepo) Revoke(ctx context.Context, tokenString string) *app_error.AppError {
	if err := r.AppState.DB.WithContext(ctx).Model(&entity.RefreshToken{}).
		Where("token = ? AND is_revoked = ?", tokenString, false).
		Update("is_revoked", true).Error; err != nil {
		return app_error.NewAppError(http.StatusInternalServerError, "failed to revoke refresh token", "db-update")
	}
	return nil
}

func (r *TokenRepo) RevokeAllForUser(ctx context.Context, userId string) (int64, *app_error.AppError) {
	result := r.AppState.DB.WithContext(ctx).Model(&entity.RefreshToken{}).
		Where("user_id = ? AND is_revoked = ?", userId, false).
		Update("is_revoked", true)
	if result.Error != nil {
		return 0, app_error.NewAppError(http.StatusInternalServerError, "failed to revoke user refresh tokens", "db-update")
	}
	return result.RowsAffected, nil
}

func (r *TokenRepo) MarkUsed(ctx context.Context, tokenString string) *app_error.AppError {
	if err := r.AppState.DB.WithContext(ctx).Model(&entity.RefreshToken{}).
		Where("token = ?", tokenString).
		Update("last_used", time.Now()).Error; err != nil {
		return app_error.NewAppError(http.StatusInternalServerError, "failed to update refresh token usage", "db-update")
	}
	return nil
}

func (r *TokenRepo) DeleteExpired(ctx context.Context) (int64, *app_error.AppError) {
	result := r.AppState.DB.WithContext(ctx).
		Where("expires_at <= ? OR is_revoked = ?", time.Now(), true).
		Delete(&entity.RefreshToken{})
	if result.Error != nil {
		return 0, app_error.NewAppError(http.StatusInternalServerError, "failed to clean up refresh tokens", "db-delete")
	}
	return result.RowsAffected, nil
}

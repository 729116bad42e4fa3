package user_repo

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

type UserRepo struct {
	AppState *state.AppState
}

func NewUserRepo(appState *state.AppState) UserRepoContract {
	return &UserRepo{
		AppState: appState,
	}
}

func (r *UserRepo) CountUser(ctx context.Context, filter entity.UserFilter) (int64, *app_error.AppError) {
	var count int64

	query := r.AppState.DB.WithContext(ctx).Model(&entity.User{})

	if filter.Email != nil && filter.Username != nil {
		query = query.Where("email = ? OR username = ?", filter.Email, filter.Username)
	} else if filter.Email != nil {
		query = query.Where("email = ?", filter.Email)
	} else if filter.Username != nil {
		query = query.Where("username = ?", filter.Username)
	}

	if err := query.Count(&count).Error; err != nil {
		return 0, app_error.NewAppError(http.StatusInternalServerError, "unexpected server error", "db-count")
	}
	return count, nil
}

func (r *UserRepo) SaveUser(ctx context.Context, model entity.User) *app_error.AppError {
	if err := r.AppState.DB.WithContext(ctx).Create(&model).Error; err != nil {
		return app_error.NewAppError(http.StatusInternalServerError, "unexpected error occur when trying to create user", "db-create")
	}

	return nil
}

func (r *UserRepo) FindByID(ctx context.Context, userId string) (*entity.User, *app_error.AppError) {
	var user entity.User

	if err := r.AppState.DB.WithContext(ctx).Where("id = ?", userId).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NewAppError(http.StatusNotFound, "cannot find user", "user-id")
		}
		return nil, app_error.NewAppError(http.StatusInternalServerError, "unexpected error occur when fetch user", "db-error")
	}

	return &user, nil
}

func (r *UserRepo) FindByEmailOrUsername(ctx context.Context, identifier string) (*entity.User, *app_error.AppError) {
	var user entity.User

	if err := r.AppState.DB.WithContext(ctx).Where("username = ? OR email = ?", identifier, identifier).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NewAppError(http.StatusNotFound, "cannot find user", "user-credential")
		}
		return nil, app_error.NewAppError(http.StatusInternalServerError, "unexpected error occur when fetch user", "db-error")
	}

	return &user, nil
}

func (r *UserRepo) ListActive(ctx context.Context) ([]*entity.User, *app_error.AppError) {
	var users []*entity.User

	if err := r.AppState.DB.WithContext(ctx).Where("is_active = ?", true).Order("last_active DESC").Find(&users).Error; err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to list users", "db-error")
	}

	return users, nil
}

func (r *UserRepo) Search(ctx context.Context, query string, limit int) ([]*entity.User, *app_error.AppError) {
	var users []*entity.User

	pattern := "%" + query + "%"
	if err := r.AppState.DB.WithContext(ctx).
		Where("is_active = ? AND (username ILIKE ? OR email ILIKE ?)", true, pattern, pattern).
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to search users", "db-error")
	}

	return users, nil
}

func (r *UserRepo) TouchLastActive(ctx context.Context, userId string, at time.Time) *app_error.AppError {
	if err := r.AppState.DB.WithContext(ctx).Model(&entity.User{}).
		Where("id = ?", userId).
		Update("last_active", at).Error; err != nil {
		return app_error.NewAppError(http.StatusInternalServerError, "failed to update last active", "db-update")
	}
	return nil
}

func (r *UserRepo) UpdateProfile(ctx context.Context, userId string, avatar *string, profileSetup *bool) (*entity.User, *app_error.AppError) {
	updates := map[string]any{}
	if avatar != nil {
		updates["avatar"] = *avatar
	}
	if profileSetup != nil {
		updates["profile_setup"] = *profileSetup
	}

	if len(updates) > 0 {
		if err := r.AppState.DB.WithContext(ctx).Model(&entity.User{}).
			Where("id = ?", userId).
			Updates(updates).Error; err != nil {
			return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to update profile", "db-update")
		}
	}

	return r.FindByID(ctx, userId)
}

func (r *UserRepo) UpdatePassword(ctx context.Context, userId, passwordHash string) *app_error.AppError {
	if err := r.AppState.DB.WithContext(ctx).Model(&entity.User{}).
		Where("id = ?", userId).
		Update("password_hash", passwordHash).Error; err != nil {
		return app_error.NewAppError(http.StatusInternalServerError, "failed to update password", "db-update")
	}
	return nil
}

func (r *UserRepo) MarkEmailVerified(ctx context.Context, userId string) *app_error.AppError {
	if err := r.AppState.DB.WithContext(ctx).Model(&entity.User{}).
		Where("id = ?", userId).
		Update("email_verified", true).Error; err != nil {
		return app_error.NewAppError(http.StatusInternalServerError, "failed to mark email verified", "db-update")
	}
	return nil
}

func (r *UserRepo) Deactivate(ctx context.Context, userId string) *app_error.AppError {
	if err := r.AppState.DB.WithContext(ctx).Model(&entity.User{}).
		Where("id = ?", userId).
		Update("is_active", false).Error; err != nil {
		return app_error.NewAppError(http.StatusInternalServerError, "failed to deactivate user", "db-update")
	}
	return nil
}

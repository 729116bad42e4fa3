package friend_repo

import (
	"context"
	"errors"
	"net/http"

	"github.com/Mandalorian7773/Collabie/internal/entity"
	app_error "github.com/Mandalorian7773/Collabie/internal/errors"
	"github.com/Mandalorian7773/Collabie/state"
	"gorm.io/gorm"
)

type FriendRepo struct {
	AppState *state.AppState
}

func NewFriendRepo(appState *state.AppState) FriendRepoContract {
	return &FriendRepo{
		AppState: appState,
	}
}

func (r *FriendRepo) Save(ctx context.Context, friend entity.Friend) (*entity.Friend, *app_error.AppError) {
	if err := r.AppState.DB.WithContext(ctx).Create(&friend).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, app_error.NewAppError(http.StatusConflict, "relationship already exists", "friend-pair")
		}
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to create friend request", "db-create")
	}
	return &friend, nil
}

func (r *FriendRepo) FindByID(ctx context.Context, id int64) (*entity.Friend, *app_error.AppError) {
	var friend entity.Friend

	if err := r.AppState.DB.WithContext(ctx).Where("id = ?", id).First(&friend).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NewAppError(http.StatusNotFound, "friend request not found", "not-found")
		}
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to fetch friend request", "db-error")
	}

	return &friend, nil
}

func (r *FriendRepo) FindPair(ctx context.Context, userA, userB string) (*entity.Friend, *app_error.AppError) {
	var friend entity.Friend

	err := r.AppState.DB.WithContext(ctx).
		Where("(requester = ? AND recipient = ?) OR (requester = ? AND recipient = ?)", userA, userB, userB, userA).
		First(&friend).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to query relationship", "db-error")
	}

	return &friend, nil
}

func (r *FriendRepo) UpdateStatus(ctx context.Context, id int64, status string) *app_error.AppError {
	if err := r.AppState.DB.WithContext(ctx).Model(&entity.Friend{}).
		Where("id = ?", id).
		Update("status", status).Error; err != nil {
		return app_error.NewAppError(http.StatusInternalServerError, "failed to update relationship status", "db-update")
	}
	return nil
}

func (r *FriendRepo) Delete(ctx context.Context, id int64) *app_error.AppError {
	if err := r.AppState.DB.WithContext(ctx).Where("id = ?", id).Delete(&entity.Friend{}).Error; err != nil {
		return app_error.NewAppError(http.StatusInternalServerError, "failed to delete relationship", "db-delete")
	}
	return nil
}

func (r *FriendRepo) GetFriends(ctx context.Context, userId string) ([]*entity.Friend, *app_error.AppError) {
	var friends []*entity.Friend

	if err := r.AppState.DB.WithContext(ctx).
		Where("(requester = ? OR recipient = ?) AND status = ?", userId, userId, entity.FriendStatusAccepted).
		Find(&friends).Error; err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to fetch friends", "db-error")
	}

	return friends, nil
}

func (r *FriendRepo) GetPendingRequests(ctx context.Context, userId string) ([]*entity.Friend, *app_error.AppError) {
	var friends []*entity.Friend

	if err := r.AppState.DB.WithContext(ctx).
		Where("recipient = ? AND status = ?", userId, entity.FriendStatusPending).
		Order("created_at DESC").
		Find(&friends).Error; err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to fetch pending requests", "db-error")
	}

	return friends, nil
}

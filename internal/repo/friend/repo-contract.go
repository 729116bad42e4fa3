package friend_repo

import (
	"context"

	"github.com/Mandalorian7773/Collabie/internal/entity"
	app_error "github.com/Mandalorian7773/Collabie/internal/errors"
)

type FriendRepoContract interface {
	Save(ctx context.Context, friend entity.Friend) (*entity.Friend, *app_error.AppError)
	FindByID(ctx context.Context, id int64) (*entity.Friend, *app_error.AppError)
	// FindPair looks up the relationship between two users in either
	// direction.
	FindPair(ctx context.Context, userA, userB string) (*entity.Friend, *app_error.AppError)
	UpdateStatus(ctx context.Context, id int64, status string) *app_error.AppError
	Delete(ctx context.Context, id int64) *app_error.AppError
	GetFriends(ctx context.Context, userId string) ([]*entity.Friend, *app_error.AppError)
	GetPendingRequests(ctx context.Context, userId string) ([]*entity.Friend, *app_error.AppError)
}

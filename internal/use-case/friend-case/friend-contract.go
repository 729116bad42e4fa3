package friend_service

import (
	"context"

	"github.com/Mandalorian7773/Collabie/internal/dtos/friend_dto"
	app_error "github.com/Mandalorian7773/Collabie/internal/errors"
)

type FriendServiceContract interface {
	SendRequest(ctx context.Context, req friend_dto.SendRequestRequest, requesterId string) (*friend_dto.FriendResponse, *app_error.AppError)
	Accept(ctx context.Context, requestId int64, userId string) (*friend_dto.FriendResponse, *app_error.AppError)
	Decline(ctx context.Context, requestId int64, userId string) *app_error.AppError
	Unfriend(ctx context.Context, friendId string, userId string) *app_error.AppError
	ListFriends(ctx context.Context, userId string) ([]*friend_dto.FriendResponse, *app_error.AppError)
	ListPending(ctx context.Context, userId string) ([]*friend_dto.FriendResponse, *app_error.AppError)
}

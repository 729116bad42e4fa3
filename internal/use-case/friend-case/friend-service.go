package friend_service

import (
	"context"
	"net/http"

	"github.com/Mandalorian7773/Collabie/internal/dtos/friend_dto"
	"github.com/Mandalorian7773/Collabie/internal/entity"
	app_error "github.com/Mandalorian7773/Collabie/internal/errors"
	friend_repo "github.com/Mandalorian7773/Collabie/internal/repo/friend"
	user_repo "github.com/Mandalorian7773/Collabie/internal/repo/user"
	"github.com/Mandalorian7773/Collabie/state"
)

type FriendService struct {
	AppState   *state.AppState
	FriendRepo friend_repo.FriendRepoContract
	UserRepo   user_repo.UserRepoContract
}

func NewFriendService(appState *state.AppState) FriendServiceContract {
	return &FriendService{
		AppState:   appState,
		FriendRepo: friend_repo.NewFriendRepo(appState),
		UserRepo:   user_repo.NewUserRepo(appState),
	}
}

func toFriendResponse(friend *entity.Friend) *friend_dto.FriendResponse {
	return &friend_dto.FriendResponse{
		ID:        friend.ID,
		Requester: friend.Requester,
		Recipient: friend.Recipient,
		Status:    friend.Status,
		CreatedAt: friend.CreatedAt,
		UpdatedAt: friend.UpdatedAt,
	}
}

func (s *FriendService) SendRequest(ctx context.Context, req friend_dto.SendRequestRequest, requesterId string) (*friend_dto.FriendResponse, *app_error.AppError) {
	if req.RecipientID == requesterId {
		return nil, app_error.NewAppError(http.StatusBadRequest, "cannot send a friend request to yourself", "recipient-id")
	}

	if _, err := s.UserRepo.FindByID(ctx, req.RecipientID); err != nil {
		return nil, err
	}

	// One relationship per pair, regardless of direction.
	existing, err := s.FriendRepo.FindPair(ctx, requesterId, req.RecipientID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		switch existing.Status {
		case entity.FriendStatusAccepted:
			return nil, app_error.NewAppError(http.StatusConflict, "already friends", "friend-pair")
		case entity.FriendStatusPending:
			return nil, app_error.NewAppError(http.StatusConflict, "friend request already pending", "friend-pair")
		default:
			return nil, app_error.NewAppError(http.StatusConflict, "relationship already exists", "friend-pair")
		}
	}

	friend, err := s.FriendRepo.Save(ctx, entity.Friend{
		Requester: requesterId,
		Recipient: req.RecipientID,
		Status:    entity.FriendStatusPending,
	})
	if err != nil {
		return nil, err
	}

	return toFriendResponse(friend), nil
}

func (s *FriendService) Accept(ctx context.Context, requestId int64, userId string) (*friend_dto.FriendResponse, *app_error.AppError) {
	friend, err := s.resolvePending(ctx, requestId, userId)
	if err != nil {
		return nil, err
	}

	if err := s.FriendRepo.UpdateStatus(ctx, friend.ID, entity.FriendStatusAccepted); err != nil {
		return nil, err
	}

	friend.Status = entity.FriendStatusAccepted
	return toFriendResponse(friend), nil
}

func (s *FriendService) Decline(ctx context.Context, requestId int64, userId string) *app_error.AppError {
	friend, err := s.resolvePending(ctx, requestId, userId)
	if err != nil {
		return err
	}
	return s.FriendRepo.Delete(ctx, friend.ID)
}

// resolvePending loads a pending request and checks the caller is the
// recipient. Only the recipient can accept or decline.
func (s *FriendService) resolvePending(ctx context.Context, requestId int64, userId string) (*entity.Friend, *app_error.AppError) {
	friend, err := s.FriendRepo.FindByID(ctx, requestId)
	if err != nil {
		return nil, err
	}
	if friend.Recipient != userId {
		return nil, app_error.NewAppError(http.StatusForbidden, "only the recipient can act on a friend request", "request-id")
	}
	if friend.Status != entity.FriendStatusPending {
		return nil, app_error.NewAppError(http.StatusConflict, "friend request is not pending", "request-status")
	}
	return friend, nil
}

func (s *FriendService) Unfriend(ctx context.Context, friendId string, userId string) *app_error.AppError {
	friend, err := s.FriendRepo.FindPair(ctx, userId, friendId)
	if err != nil {
		return err
	}
	if friend == nil || friend.Status != entity.FriendStatusAccepted {
		return app_error.NewAppError(http.StatusNotFound, "no friendship to remove", "friend-pair")
	}
	return s.FriendRepo.Delete(ctx, friend.ID)
}

func (s *FriendService) ListFriends(ctx context.Context, userId string) ([]*friend_dto.FriendResponse, *app_error.AppError) {
	friends, err := s.FriendRepo.GetFriends(ctx, userId)
	if err != nil {
		return nil, err
	}

	responses := make([]*friend_dto.FriendResponse, 0, len(friends))
	for _, friend := range friends {
		responses = append(responses, toFriendResponse(friend))
	}
	return responses, nil
}

func (s *FriendService) ListPending(ctx context.Context, userId string) ([]*friend_dto.FriendResponse, *app_error.AppError) {
	friends, err := s.FriendRepo.GetPendingRequests(ctx, userId)
	if err != nil {
		return nil, err
	}

	responses := make([]*friend_dto.FriendResponse, 0, len(friends))
	for _, friend := range friends {
		responses = append(responses, toFriendResponse(friend))
	}
	return responses, nil
}

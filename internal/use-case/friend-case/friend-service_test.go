package friend_service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mandalorian7773/Collabie/internal/dtos/friend_dto"
	"github.com/Mandalorian7773/Collabie/internal/entity"
	app_error "github.com/Mandalorian7773/Collabie/internal/errors"
)

type fakeFriendRepo struct {
	friends map[int64]*entity.Friend
	nextID  int64
}

func newFakeFriendRepo() *fakeFriendRepo {
	return &fakeFriendRepo{friends: make(map[int64]*entity.Friend)}
}

func (f *fakeFriendRepo) Save(ctx context.Context, friend entity.Friend) (*entity.Friend, *app_error.AppError) {
	for _, existing := range f.friends {
		if (existing.Requester == friend.Requester && existing.Recipient == friend.Recipient) ||
			(existing.Requester == friend.Recipient && existing.Recipient == friend.Requester) {
			return nil, app_error.NewAppError(http.StatusConflict, "relationship already exists", "friend-pair")
		}
	}
	f.nextID++
	friend.ID = f.nextID
	friend.CreatedAt = time.Now()
	f.friends[friend.ID] = &friend
	return &friend, nil
}

func (f *fakeFriendRepo) FindByID(ctx context.Context, id int64) (*entity.Friend, *app_error.AppError) {
	friend, ok := f.friends[id]
	if !ok {
		return nil, app_error.NewAppError(http.StatusNotFound, "friend request not found", "request-id")
	}
	return friend, nil
}

func (f *fakeFriendRepo) FindPair(ctx context.Context, userA, userB string) (*entity.Friend, *app_error.AppError) {
	for _, friend := range f.friends {
		if (friend.Requester == userA && friend.Recipient == userB) ||
			(friend.Requester == userB && friend.Recipient == userA) {
			return friend, nil
		}
	}
	return nil, nil
}

func (f *fakeFriendRepo) UpdateStatus(ctx context.Context, id int64, status string) *app_error.AppError {
	friend, ok := f.friends[id]
	if !ok {
		return app_error.NewAppError(http.StatusNotFound, "friend request not found", "request-id")
	}
	friend.Status = status
	return nil
}

func (f *fakeFriendRepo) Delete(ctx context.Context, id int64) *app_error.AppError {
	delete(f.friends, id)
	return nil
}

func (f *fakeFriendRepo) GetFriends(ctx context.Context, userId string) ([]*entity.Friend, *app_error.AppError) {
	var out []*entity.Friend
	for _, friend := range f.friends {
		if friend.Status != entity.FriendStatusAccepted {
			continue
		}
		if friend.Requester == userId || friend.Recipient == userId {
			out = append(out, friend)
		}
	}
	return out, nil
}

func (f *fakeFriendRepo) GetPendingRequests(ctx context.Context, userId string) ([]*entity.Friend, *app_error.AppError) {
	var out []*entity.Friend
	for _, friend := range f.friends {
		if friend.Status == entity.FriendStatusPending && friend.Recipient == userId {
			out = append(out, friend)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	known map[string]bool
}

func (f *fakeUserRepo) FindByID(ctx context.Context, userId string) (*entity.User, *app_error.AppError) {
	if !f.known[userId] {
		return nil, app_error.NewAppError(http.StatusNotFound, "user not found", "user")
	}
	return &entity.User{ID: userId, IsActive: true}, nil
}

func (f *fakeUserRepo) CountUser(ctx context.Context, filter entity.UserFilter) (int64, *app_error.AppError) {
	return 0, nil
}

func (f *fakeUserRepo) SaveUser(ctx context.Context, model entity.User) *app_error.AppError {
	return nil
}

func (f *fakeUserRepo) FindByEmailOrUsername(ctx context.Context, identifier string) (*entity.User, *app_error.AppError) {
	return nil, app_error.NewAppError(http.StatusNotFound, "user not found", "user")
}

func (f *fakeUserRepo) ListActive(ctx context.Context) ([]*entity.User, *app_error.AppError) {
	return nil, nil
}

func (f *fakeUserRepo) Search(ctx context.Context, query string, limit int) ([]*entity.User, *app_error.AppError) {
	return nil, nil
}

func (f *fakeUserRepo) TouchLastActive(ctx context.Context, userId string, at time.Time) *app_error.AppError {
	return nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, userId string, avatar *string, profileSetup *bool) (*entity.User, *app_error.AppError) {
	return nil, nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, userId, passwordHash string) *app_error.AppError {
	return nil
}

func (f *fakeUserRepo) MarkEmailVerified(ctx context.Context, userId string) *app_error.AppError {
	return nil
}

func (f *fakeUserRepo) Deactivate(ctx context.Context, userId string) *app_error.AppError {
	return nil
}

func newTestService() (*FriendService, *fakeFriendRepo) {
	friends := newFakeFriendRepo()
	service := &FriendService{
		FriendRepo: friends,
		UserRepo:   &fakeUserRepo{known: map[string]bool{"alice": true, "bob": true, "carol": true}},
	}
	return service, friends
}

func TestSendRequest_Self(t *testing.T) {
	service, _ := newTestService()

	_, err := service.SendRequest(context.Background(), friend_dto.SendRequestRequest{RecipientID: "alice"}, "alice")

	require.NotNil(t, err)
	assert.Equal(t, http.StatusBadRequest, err.Code)
}

func TestSendRequest_UnknownRecipient(t *testing.T) {
	service, _ := newTestService()

	_, err := service.SendRequest(context.Background(), friend_dto.SendRequestRequest{RecipientID: "nobody"}, "alice")

	require.NotNil(t, err)
	assert.Equal(t, http.StatusNotFound, err.Code)
}

func TestSendRequest_PairUniqueEitherDirection(t *testing.T) {
	service, _ := newTestService()

	_, err := service.SendRequest(context.Background(), friend_dto.SendRequestRequest{RecipientID: "bob"}, "alice")
	require.Nil(t, err)

	// Same direction
	_, err = service.SendRequest(context.Background(), friend_dto.SendRequestRequest{RecipientID: "bob"}, "alice")
	require.NotNil(t, err)
	assert.Equal(t, http.StatusConflict, err.Code)

	// Reverse direction
	_, err = service.SendRequest(context.Background(), friend_dto.SendRequestRequest{RecipientID: "alice"}, "bob")
	require.NotNil(t, err)
	assert.Equal(t, http.StatusConflict, err.Code)
}

func TestAccept_OnlyRecipient(t *testing.T) {
	service, _ := newTestService()

	sent, err := service.SendRequest(context.Background(), friend_dto.SendRequestRequest{RecipientID: "bob"}, "alice")
	require.Nil(t, err)

	_, err = service.Accept(context.Background(), sent.ID, "alice")
	require.NotNil(t, err)
	assert.Equal(t, http.StatusForbidden, err.Code)

	accepted, err := service.Accept(context.Background(), sent.ID, "bob")
	require.Nil(t, err)
	assert.Equal(t, entity.FriendStatusAccepted, accepted.Status)
}

func TestAccept_NotPending(t *testing.T) {
	service, _ := newTestService()

	sent, err := service.SendRequest(context.Background(), friend_dto.SendRequestRequest{RecipientID: "bob"}, "alice")
	require.Nil(t, err)

	_, err = service.Accept(context.Background(), sent.ID, "bob")
	require.Nil(t, err)

	_, err = service.Accept(context.Background(), sent.ID, "bob")
	require.NotNil(t, err)
	assert.Equal(t, http.StatusConflict, err.Code)
}

func TestDecline_RemovesRequest(t *testing.T) {
	service, friends := newTestService()

	sent, err := service.SendRequest(context.Background(), friend_dto.SendRequestRequest{RecipientID: "bob"}, "alice")
	require.Nil(t, err)

	err = service.Decline(context.Background(), sent.ID, "bob")
	require.Nil(t, err)
	assert.Empty(t, friends.friends)

	// Declined pair can be re-requested.
	_, err = service.SendRequest(context.Background(), friend_dto.SendRequestRequest{RecipientID: "alice"}, "bob")
	assert.Nil(t, err)
}

func TestUnfriend_RequiresAcceptedPair(t *testing.T) {
	service, _ := newTestService()

	err := service.Unfriend(context.Background(), "bob", "alice")
	require.NotNil(t, err)
	assert.Equal(t, http.StatusNotFound, err.Code)

	sent, sErr := service.SendRequest(context.Background(), friend_dto.SendRequestRequest{RecipientID: "bob"}, "alice")
	require.Nil(t, sErr)

	// Pending is not enough.
	err = service.Unfriend(context.Background(), "bob", "alice")
	require.NotNil(t, err)

	_, aErr := service.Accept(context.Background(), sent.ID, "bob")
	require.Nil(t, aErr)

	err = service.Unfriend(context.Background(), "bob", "alice")
	assert.Nil(t, err)
}

func TestListPending_RecipientOnly(t *testing.T) {
	service, _ := newTestService()

	_, err := service.SendRequest(context.Background(), friend_dto.SendRequestRequest{RecipientID: "bob"}, "alice")
	require.Nil(t, err)
	_, err = service.SendRequest(context.Background(), friend_dto.SendRequestRequest{RecipientID: "bob"}, "carol")
	require.Nil(t, err)

	pending, lErr := service.ListPending(context.Background(), "bob")
	require.Nil(t, lErr)
	assert.Len(t, pending, 2)

	pending, lErr = service.ListPending(context.Background(), "alice")
	require.Nil(t, lErr)
	assert.Empty(t, pending)
}

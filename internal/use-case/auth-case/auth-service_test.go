package auth_service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mandalorian7773/Collabie/internal/dtos/auth_dto"
	"github.com/Mandalorian7773/Collabie/internal/entity"
	app_error "github.com/Mandalorian7773/Collabie/internal/errors"
	"github.com/Mandalorian7773/Collabie/internal/queue"
	"github.com/Mandalorian7773/Collabie/internal/utils"
	"github.com/Mandalorian7773/Collabie/internal/utils/types"
	"github.com/Mandalorian7773/Collabie/state"
)

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (f *fakeUserRepo) CountUser(ctx context.Context, filter entity.UserFilter) (int64, *app_error.AppError) {
	var count int64
	for _, u := range f.users {
		if filter.Email != nil && u.Email == *filter.Email {
			count++
			continue
		}
		if filter.Username != nil && u.Username == *filter.Username {
			count++
		}
	}
	return count, nil
}

func (f *fakeUserRepo) SaveUser(ctx context.Context, model entity.User) *app_error.AppError {
	f.users[model.ID] = &model
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, userId string) (*entity.User, *app_error.AppError) {
	user, ok := f.users[userId]
	if !ok {
		return nil, app_error.NewAppError(http.StatusNotFound, "user not found", "user")
	}
	return user, nil
}

func (f *fakeUserRepo) FindByEmailOrUsername(ctx context.Context, identifier string) (*entity.User, *app_error.AppError) {
	for _, u := range f.users {
		if u.Email == identifier || u.Username == identifier {
			return u, nil
		}
	}
	return nil, app_error.NewAppError(http.StatusNotFound, "user not found", "user")
}

func (f *fakeUserRepo) ListActive(ctx context.Context) ([]*entity.User, *app_error.AppError) {
	return nil, nil
}

func (f *fakeUserRepo) Search(ctx context.Context, query string, limit int) ([]*entity.User, *app_error.AppError) {
	return nil, nil
}

func (f *fakeUserRepo) TouchLastActive(ctx context.Context, userId string, at time.Time) *app_error.AppError {
	if u, ok := f.users[userId]; ok {
		u.LastActive = at
	}
	return nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, userId string, avatar *string, profileSetup *bool) (*entity.User, *app_error.AppError) {
	return f.FindByID(ctx, userId)
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, userId, passwordHash string) *app_error.AppError {
	if u, ok := f.users[userId]; ok {
		u.PasswordHash = passwordHash
	}
	return nil
}

func (f *fakeUserRepo) MarkEmailVerified(ctx context.Context, userId string) *app_error.AppError {
	if u, ok := f.users[userId]; ok {
		u.EmailVerified = true
	}
	return nil
}

func (f *fakeUserRepo) Deactivate(ctx context.Context, userId string) *app_error.AppError {
	if u, ok := f.users[userId]; ok {
		u.IsActive = false
	}
	return nil
}

type fakeTokenRepo struct {
	tokens []*entity.RefreshToken
	nextID int64
}

func (f *fakeTokenRepo) Save(ctx context.Context, token entity.RefreshToken) *app_error.AppError {
	f.nextID++
	token.ID = f.nextID
	f.tokens = append(f.tokens, &token)
	return nil
}

func (f *fakeTokenRepo) FindValid(ctx context.Context, tokenString string) (*entity.RefreshToken, *app_error.AppError) {
	for _, t := range f.tokens {
		if t.Token == tokenString && t.IsValid(time.Now()) {
			return t, nil
		}
	}
	return nil, app_error.NewAppError(http.StatusUnauthorized, "invalid refresh token", "refresh_token")
}

func (f *fakeTokenRepo) CountValid(ctx context.Context, userId string) (int64, *app_error.AppError) {
	var count int64
	for _, t := range f.tokens {
		if t.UserID == userId && t.IsValid(time.Now()) {
			count++
		}
	}
	return count, nil
}

func (f *fakeTokenRepo) RevokeOldestValid(ctx context.Context, userId string) *app_error.AppError {
	var oldest *entity.RefreshToken
	for _, t := range f.tokens {
		if t.UserID != userId || !t.IsValid(time.Now()) {
			continue
		}
		if oldest == nil || t.CreatedAt.Before(oldest.CreatedAt) || (t.CreatedAt.Equal(oldest.CreatedAt) && t.ID < oldest.ID) {
			oldest = t
		}
	}
	if oldest != nil {
		oldest.IsRevoked = true
	}
	return nil
}

func (f *fakeTokenRepo) Revoke(ctx context.Context, tokenString string) *app_error.AppError {
	for _, t := range f.tokens {
		if t.Token == tokenString {
			t.IsRevoked = true
			return nil
		}
	}
	return app_error.NewAppError(http.StatusNotFound, "token not found", "refresh_token")
}

func (f *fakeTokenRepo) RevokeAllForUser(ctx context.Context, userId string) (int64, *app_error.AppError) {
	var revoked int64
	for _, t := range f.tokens {
		if t.UserID == userId && !t.IsRevoked {
			t.IsRevoked = true
			revoked++
		}
	}
	return revoked, nil
}

func (f *fakeTokenRepo) MarkUsed(ctx context.Context, tokenString string) *app_error.AppError {
	for _, t := range f.tokens {
		if t.Token == tokenString {
			t.LastUsed = time.Now()
		}
	}
	return nil
}

func (f *fakeTokenRepo) DeleteExpired(ctx context.Context) (int64, *app_error.AppError) {
	return 0, nil
}

type fakeProducer struct {
	jobs []queue.Job
}

func (f *fakeProducer) Enqueue(ctx context.Context, job queue.Job) error {
	f.jobs = append(f.jobs, job)
	return nil
}

func newTestService(t *testing.T) (*AuthService, *fakeUserRepo, *fakeTokenRepo, *fakeProducer) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	users := newFakeUserRepo()
	tokens := &fakeTokenRepo{}
	producer := &fakeProducer{}

	service := &AuthService{
		AppState: &state.AppState{
			JwtSecret: &state.JwtSecret{Private: key, Public: &key.PublicKey},
		},
		UserRepo:  users,
		TokenRepo: tokens,
		Producer:  producer,
	}
	return service, users, tokens, producer
}

func seedUser(t *testing.T, users *fakeUserRepo, password string) *entity.User {
	t.Helper()

	hashed, err := utils.GenerateHash(password)
	require.NoError(t, err)

	user := &entity.User{
		ID:           "user-1",
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: hashed,
		Role:         entity.RoleUser,
		IsActive:     true,
	}
	users.users[user.ID] = user
	return user
}

func TestRegister_EnqueuesVerificationJob(t *testing.T) {
	service, _, _, producer := newTestService(t)

	resp, err := service.Register(context.Background(), auth_dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cretpass",
	})

	require.Nil(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.False(t, resp.EmailVerified)

	require.Len(t, producer.jobs, 1)
	assert.Equal(t, queue.JobSendVerificationOTP, producer.jobs[0].Type)
}

func TestRegister_DuplicateRejected(t *testing.T) {
	service, users, _, _ := newTestService(t)
	seedUser(t, users, "s3cretpass")

	_, err := service.Register(context.Background(), auth_dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cretpass",
	})

	require.NotNil(t, err)
	assert.Equal(t, http.StatusConflict, err.Code)
}

func TestLogin_Success(t *testing.T) {
	service, users, tokens, _ := newTestService(t)
	seedUser(t, users, "s3cretpass")

	resp, err := service.Login(context.Background(), auth_dto.LoginRequest{
		Identifier: "alice",
		Password:   "s3cretpass",
	}, types.DeviceInfo{Device: "desktop"})

	require.Nil(t, err)
	require.NotNil(t, resp.AccessToken)
	require.NotNil(t, resp.RefreshToken)

	claims, parseErr := utils.ParseAndVerifySign(*resp.AccessToken, service.AppState.JwtSecret.Public)
	require.NoError(t, parseErr)
	assert.Equal(t, "user-1", claims.Sub)

	require.Len(t, tokens.tokens, 1)
	assert.Equal(t, "desktop", tokens.tokens[0].Device)
}

func TestLogin_WrongPassword(t *testing.T) {
	service, users, _, _ := newTestService(t)
	seedUser(t, users, "s3cretpass")

	_, err := service.Login(context.Background(), auth_dto.LoginRequest{
		Identifier: "alice",
		Password:   "wrong",
	}, types.DeviceInfo{})

	require.NotNil(t, err)
	assert.Equal(t, http.StatusUnauthorized, err.Code)
	assert.Equal(t, "invalid credentials", err.Message)
}

func TestLogin_UnknownUserSameError(t *testing.T) {
	service, _, _, _ := newTestService(t)

	_, err := service.Login(context.Background(), auth_dto.LoginRequest{
		Identifier: "nobody",
		Password:   "whatever",
	}, types.DeviceInfo{})

	require.NotNil(t, err)
	assert.Equal(t, http.StatusUnauthorized, err.Code)
	assert.Equal(t, "invalid credentials", err.Message)
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	service, users, _, _ := newTestService(t)
	user := seedUser(t, users, "s3cretpass")
	user.IsActive = false

	_, err := service.Login(context.Background(), auth_dto.LoginRequest{
		Identifier: "alice",
		Password:   "s3cretpass",
	}, types.DeviceInfo{})

	require.NotNil(t, err)
	assert.Equal(t, http.StatusForbidden, err.Code)
}

func TestLogin_SessionCapRevokesOldest(t *testing.T) {
	service, users, tokens, _ := newTestService(t)
	seedUser(t, users, "s3cretpass")

	for i := 0; i < entity.MaxValidRefreshTokens+2; i++ {
		_, err := service.Login(context.Background(), auth_dto.LoginRequest{
			Identifier: "alice",
			Password:   "s3cretpass",
		}, types.DeviceInfo{})
		require.Nil(t, err)
	}

	count, cErr := tokens.CountValid(context.Background(), "user-1")
	require.Nil(t, cErr)
	assert.Equal(t, int64(entity.MaxValidRefreshTokens), count, "valid sessions must stay capped")

	// The oldest tokens were the ones revoked.
	assert.True(t, tokens.tokens[0].IsRevoked)
	assert.True(t, tokens.tokens[1].IsRevoked)
	assert.False(t, tokens.tokens[len(tokens.tokens)-1].IsRevoked)
}

func TestRefresh_RotatesToken(t *testing.T) {
	service, users, tokens, _ := newTestService(t)
	seedUser(t, users, "s3cretpass")

	login, err := service.Login(context.Background(), auth_dto.LoginRequest{
		Identifier: "alice",
		Password:   "s3cretpass",
	}, types.DeviceInfo{})
	require.Nil(t, err)

	pair, err := service.Refresh(context.Background(), auth_dto.RefreshRequest{
		RefreshToken: *login.RefreshToken,
	}, types.DeviceInfo{})
	require.Nil(t, err)
	assert.NotEqual(t, *login.RefreshToken, pair.RefreshToken)

	// The spent token cannot be replayed.
	_, err = service.Refresh(context.Background(), auth_dto.RefreshRequest{
		RefreshToken: *login.RefreshToken,
	}, types.DeviceInfo{})
	require.NotNil(t, err)
	assert.Equal(t, http.StatusUnauthorized, err.Code)

	// The rotated token still works.
	_, err = service.Refresh(context.Background(), auth_dto.RefreshRequest{
		RefreshToken: pair.RefreshToken,
	}, types.DeviceInfo{})
	assert.Nil(t, err)

	count, cErr := tokens.CountValid(context.Background(), "user-1")
	require.Nil(t, cErr)
	assert.Equal(t, int64(1), count, "rotation should never grow the session count")
}

func TestLogoutAll_RevokesEverySession(t *testing.T) {
	service, users, tokens, _ := newTestService(t)
	seedUser(t, users, "s3cretpass")

	for i := 0; i < 3; i++ {
		_, err := service.Login(context.Background(), auth_dto.LoginRequest{
			Identifier: "alice",
			Password:   "s3cretpass",
		}, types.DeviceInfo{})
		require.Nil(t, err)
	}

	resp, err := service.LogoutAll(context.Background(), "user-1")
	require.Nil(t, err)
	assert.Equal(t, int64(3), resp.RevokedSessions)

	count, cErr := tokens.CountValid(context.Background(), "user-1")
	require.Nil(t, cErr)
	assert.Equal(t, int64(0), count)
}

func TestChangePassword_RevokesSessions(t *testing.T) {
	service, users, tokens, _ := newTestService(t)
	seedUser(t, users, "s3cretpass")

	_, err := service.Login(context.Background(), auth_dto.LoginRequest{
		Identifier: "alice",
		Password:   "s3cretpass",
	}, types.DeviceInfo{})
	require.Nil(t, err)

	err = service.ChangePassword(context.Background(), auth_dto.ChangePasswordRequest{
		CurrentPassword: "s3cretpass",
		NewPassword:     "newpassword1",
	}, "user-1")
	require.Nil(t, err)

	count, cErr := tokens.CountValid(context.Background(), "user-1")
	require.Nil(t, cErr)
	assert.Equal(t, int64(0), count)

	// Login only works with the new password now.
	_, err = service.Login(context.Background(), auth_dto.LoginRequest{
		Identifier: "alice",
		Password:   "s3cretpass",
	}, types.DeviceInfo{})
	require.NotNil(t, err)

	_, err = service.Login(context.Background(), auth_dto.LoginRequest{
		Identifier: "alice",
		Password:   "newpassword1",
	}, types.DeviceInfo{})
	assert.Nil(t, err)
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	service, users, _, _ := newTestService(t)
	seedUser(t, users, "s3cretpass")

	err := service.ChangePassword(context.Background(), auth_dto.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "newpassword1",
	}, "user-1")

	require.NotNil(t, err)
	assert.Equal(t, http.StatusUnauthorized, err.Code)
}

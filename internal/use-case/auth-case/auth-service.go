package auth_service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/Mandalorian7773/Collabie/internal/dtos/auth_dto"
	"github.com/Mandalorian7773/Collabie/internal/entity"
	app_error "github.com/Mandalorian7773/Collabie/internal/errors"
	"github.com/Mandalorian7773/Collabie/internal/queue"
	token_repo "github.com/Mandalorian7773/Collabie/internal/repo/token"
	user_repo "github.com/Mandalorian7773/Collabie/internal/repo/user"
	"github.com/Mandalorian7773/Collabie/internal/utils"
	"github.com/Mandalorian7773/Collabie/internal/utils/types"
	"github.com/Mandalorian7773/Collabie/state"
)

const RefreshTokenTTL = 7 * 24 * time.Hour

type AuthService struct {
	AppState  *state.AppState
	UserRepo  user_repo.UserRepoContract
	TokenRepo token_repo.TokenRepoContract
	Producer  queue.Producer
}

func NewAuthService(appState *state.AppState, producer queue.Producer) AuthServiceContract {
	return &AuthService{
		AppState:  appState,
		UserRepo:  user_repo.NewUserRepo(appState),
		TokenRepo: token_repo.NewTokenRepo(appState),
		Producer:  producer,
	}
}

func (s *AuthService) Register(ctx context.Context, req auth_dto.RegisterRequest) (*auth_dto.AuthResponse, *app_error.AppError) {
	filter := entity.UserFilter{
		Email:    &req.Email,
		Username: &req.Username,
	}
	count, err := s.UserRepo.CountUser(ctx, filter)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, app_error.NewAppError(http.StatusConflict, "username or email already registered", "credential-registered")
	}

	hashed, hashErr := utils.GenerateHash(req.Password)
	if hashErr != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, hashErr.Error(), "password")
	}

	now := time.Now()
	user := entity.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashed,
		Role:         entity.RoleUser,
		IsActive:     true,
		LastActive:   now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.UserRepo.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	job := queue.Job{
		ID:   uuid.New().String(),
		Type: queue.JobSendVerificationOTP,
		Payload: queue.MustMarshal(queue.OTPPayload{
			UserID: user.ID,
			Email:  user.Email,
		}),
		Priority:  1,
		MaxRetry:  3,
		CreatedAt: now.Unix(),
		ExpireAt:  now.Add(10 * time.Minute).Unix(),
	}
	if qErr := s.Producer.Enqueue(ctx, job); qErr != nil {
		// Registration succeeded; the user can request a new OTP later.
		log.Warn().Err(qErr).Str("user_id", user.ID).Msg("failed to enqueue verification otp job")
	}

	return &auth_dto.AuthResponse{
		ID:            user.ID,
		Username:      user.Username,
		Email:         user.Email,
		Role:          user.Role,
		EmailVerified: user.EmailVerified,
		CreatedAt:     user.CreatedAt,
	}, nil
}

func (s *AuthService) VerifyEmail(ctx context.Context, req auth_dto.VerifyEmailRequest, userId string) (bool, *app_error.AppError) {
	key := fmt.Sprintf("otp:%s", userId)
	otp, err := s.AppState.Redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, app_error.NewAppError(http.StatusNotFound, "otp is expired or not found", "redis-otp")
	} else if err != nil {
		return false, app_error.NewAppError(http.StatusInternalServerError, "unexpected error occured when redis get otp", "redis-otp")
	}

	if otp != req.OTP {
		return false, app_error.NewAppError(http.StatusBadRequest, "otp mismatch", "otp-mismatch")
	}

	s.AppState.Redis.Del(ctx, key)

	if rErr := s.UserRepo.MarkEmailVerified(ctx, userId); rErr != nil {
		return false, rErr
	}

	return true, nil
}

func (s *AuthService) Login(ctx context.Context, req auth_dto.LoginRequest, device types.DeviceInfo) (*auth_dto.AuthResponse, *app_error.AppError) {
	user, err := s.UserRepo.FindByEmailOrUsername(ctx, req.Identifier)
	if err != nil {
		if err.Code == http.StatusNotFound {
			return nil, app_error.NewAppError(http.StatusUnauthorized, "invalid credentials", "credentials")
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, app_error.NewAppError(http.StatusForbidden, "account is deactivated", "account-status")
	}

	ok, vErr := utils.VerifyHash(user.PasswordHash, req.Password)
	if vErr != nil || !ok {
		return nil, app_error.NewAppError(http.StatusUnauthorized, "invalid credentials", "credentials")
	}

	accessToken, signErr := utils.IssueAccessToken(user.ID, user.Username, user.Role, s.AppState.JwtSecret.Private)
	if signErr != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to sign access token", "jwt-sign")
	}

	refreshToken, err := s.issueRefreshToken(ctx, user.ID, device)
	if err != nil {
		return nil, err
	}

	if tErr := s.UserRepo.TouchLastActive(ctx, user.ID, time.Now()); tErr != nil {
		log.Warn().Str("user_id", user.ID).Msg("failed to touch last active on login")
	}

	return &auth_dto.AuthResponse{
		ID:            user.ID,
		Username:      user.Username,
		Email:         user.Email,
		Role:          user.Role,
		EmailVerified: user.EmailVerified,
		AccessToken:   &accessToken,
		RefreshToken:  &refreshToken,
		CreatedAt:     user.CreatedAt,
	}, nil
}

func (s *AuthService) Refresh(ctx context.Context, req auth_dto.RefreshRequest, device types.DeviceInfo) (*auth_dto.TokenPairResponse, *app_error.AppError) {
	stored, err := s.TokenRepo.FindValid(ctx, req.RefreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.UserRepo.FindByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, app_error.NewAppError(http.StatusForbidden, "account is deactivated", "account-status")
	}

	// Rotation: the presented token is spent before the replacement is
	// issued, so a replayed token fails FindValid next time.
	if err := s.TokenRepo.Revoke(ctx, req.RefreshToken); err != nil {
		return nil, err
	}

	accessToken, signErr := utils.IssueAccessToken(user.ID, user.Username, user.Role, s.AppState.JwtSecret.Private)
	if signErr != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to sign access token", "jwt-sign")
	}

	refreshToken, err := s.issueRefreshToken(ctx, user.ID, device)
	if err != nil {
		return nil, err
	}

	if mErr := s.TokenRepo.MarkUsed(ctx, req.RefreshToken); mErr != nil {
		log.Warn().Str("user_id", user.ID).Msg("failed to record refresh token usage")
	}

	return &auth_dto.TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *AuthService) Logout(ctx context.Context, req auth_dto.LogoutRequest) *app_error.AppError {
	return s.TokenRepo.Revoke(ctx, req.RefreshToken)
}

func (s *AuthService) LogoutAll(ctx context.Context, userId string) (*auth_dto.LogoutAllResponse, *app_error.AppError) {
	revoked, err := s.TokenRepo.RevokeAllForUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	return &auth_dto.LogoutAllResponse{RevokedSessions: revoked}, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, req auth_dto.ChangePasswordRequest, userId string) *app_error.AppError {
	user, err := s.UserRepo.FindByID(ctx, userId)
	if err != nil {
		return err
	}

	ok, vErr := utils.VerifyHash(user.PasswordHash, req.CurrentPassword)
	if vErr != nil || !ok {
		return app_error.NewAppError(http.StatusUnauthorized, "current password mismatch", "current-password")
	}

	hashed, hashErr := utils.GenerateHash(req.NewPassword)
	if hashErr != nil {
		return app_error.NewAppError(http.StatusInternalServerError, hashErr.Error(), "password")
	}

	if err := s.UserRepo.UpdatePassword(ctx, userId, hashed); err != nil {
		return err
	}

	// Every existing session is invalidated after a password change.
	if _, err := s.TokenRepo.RevokeAllForUser(ctx, userId); err != nil {
		return err
	}

	return nil
}

// issueRefreshToken persists a new opaque token, revoking the oldest valid
// one first when the user already holds entity.MaxValidRefreshTokens.
func (s *AuthService) issueRefreshToken(ctx context.Context, userId string, device types.DeviceInfo) (string, *app_error.AppError) {
	count, err := s.TokenRepo.CountValid(ctx, userId)
	if err != nil {
		return "", err
	}
	if count >= entity.MaxValidRefreshTokens {
		if err := s.TokenRepo.RevokeOldestValid(ctx, userId); err != nil {
			return "", err
		}
	}

	tokenString, genErr := utils.GenerateRefreshToken()
	if genErr != nil {
		return "", app_error.NewAppError(http.StatusInternalServerError, "failed to generate refresh token", "token-gen")
	}

	now := time.Now()
	token := entity.RefreshToken{
		Token:     tokenString,
		UserID:    userId,
		ExpiresAt: now.Add(RefreshTokenTTL),
		UserAgent: device.UserAgent,
		IP:        device.IP,
		Device:    device.Device,
		LastUsed:  now,
		CreatedAt: now,
	}

	if err := s.TokenRepo.Save(ctx, token); err != nil {
		return "", err
	}

	return tokenString, nil
}

package presence_repo

import (
	"context"
	"net/http"
	"time"

	app_error "github.com/Mandalorian7773/Collabie/internal/errors"
	"github.com/Mandalorian7773/Collabie/internal/utils"
	"github.com/Mandalorian7773/Collabie/internal/utils/types"
	"github.com/Mandalorian7773/Collabie/state"
)

const (
	onlineSetKey   = "presence:online"
	presencePrefix = "presence:user:"

	// Stale-entry guard for crashed connections that never sent a clean
	// offline update.
	presenceTTL = 24 * time.Hour
)

type PresenceRepo struct {
	AppState *state.AppState
}

func NewPresenceRepo(appState *state.AppState) PresenceRepoContract {
	return &PresenceRepo{
		AppState: appState,
	}
}

func (r *PresenceRepo) SetOnline(ctx context.Context, userId string) *app_error.AppError {
	presence := types.Presence{
		UserID:   userId,
		IsOnline: true,
		LastSeen: time.Now(),
	}

	if err := utils.SetCacheData(ctx, r.AppState.Redis, presencePrefix+userId, &presence, presenceTTL); err != nil {
		return app_error.NewAppError(http.StatusInternalServerError, "failed to store presence", "redis-set")
	}
	if err := r.AppState.Redis.SAdd(ctx, onlineSetKey, userId).Err(); err != nil {
		return app_error.NewAppError(http.StatusInternalServerError, "failed to track online user", "redis-sadd")
	}
	return nil
}

func (r *PresenceRepo) SetOffline(ctx context.Context, userId string) *app_error.AppError {
	presence := types.Presence{
		UserID:   userId,
		IsOnline: false,
		LastSeen: time.Now(),
	}

	if err := utils.SetCacheData(ctx, r.AppState.Redis, presencePrefix+userId, &presence, presenceTTL); err != nil {
		return app_error.NewAppError(http.StatusInternalServerError, "failed to store presence", "redis-set")
	}
	if err := r.AppState.Redis.SRem(ctx, onlineSetKey, userId).Err(); err != nil {
		return app_error.NewAppError(http.StatusInternalServerError, "failed to untrack online user", "redis-srem")
	}
	return nil
}

func (r *PresenceRepo) Get(ctx context.Context, userId string) (*types.Presence, *app_error.AppError) {
	presence, appErr := utils.GetCacheData[types.Presence](ctx, r.AppState.Redis, presencePrefix+userId)
	if appErr != nil {
		return nil, appErr
	}
	if presence == nil {
		return &types.Presence{UserID: userId, IsOnline: false}, nil
	}
	return presence, nil
}

func (r *PresenceRepo) ListOnline(ctx context.Context) ([]string, *app_error.AppError) {
	members, err := r.AppState.Redis.SMembers(ctx, onlineSetKey).Result()
	if err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to list online users", "redis-smembers")
	}
	return members, nil
}

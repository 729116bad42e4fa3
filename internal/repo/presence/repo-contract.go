package presence_repo

import (
	"context"

	app_error "github.com/Mandalorian7773/Collabie/internal/errors"
	"github.com/Mandalorian7773/Collabie/internal/utils/types"
)

type PresenceRepoContract interface {
	SetOnline(ctx context.Context, userId string) *app_error.AppError
	SetOffline(ctx context.Context, userId string) *app_error.AppError
	Get(ctx context.Context, userId string) (*types.Presence, *app_error.AppError)
	ListOnline(ctx context.Context) ([]string, *app_error.AppError)
}

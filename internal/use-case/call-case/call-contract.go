package call_service

import (
	"context"

	"github.com/Mandalorian7773/Collabie/internal/dtos/call_dto"
	app_error "github.com/Mandalorian7773/Collabie/internal/errors"
)

type CallServiceContract interface {
	Start(ctx context.Context, req call_dto.StartCallRequest, userId string) (*call_dto.CallResponse, *app_error.AppError)
	End(ctx context.Context, callId, status, userId string) (*call_dto.CallResponse, *app_error.AppError)
	Join(ctx context.Context, callId, userId string) (*call_dto.CallResponse, *app_error.AppError)
	Leave(ctx context.Context, callId, userId string) (*call_dto.CallResponse, *app_error.AppError)
	Get(ctx context.Context, callId string) (*call_dto.CallResponse, *app_error.AppError)
	ActiveByRoom(ctx context.Context, roomId string) ([]*call_dto.CallResponse, *app_error.AppError)
	ActiveByUser(ctx context.Context, userId string) ([]*call_dto.CallResponse, *app_error.AppError)
}

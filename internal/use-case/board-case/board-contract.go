package board_service

import (
	"context"

	"github.com/Mandalorian7773/Collabie/internal/dtos/board_dto"
	app_error "github.com/Mandalorian7773/Collabie/internal/errors"
)

type BoardServiceContract interface {
	Create(ctx context.Context, channelId string, req board_dto.CreateBoardRequest, userId string) (*board_dto.BoardResponse, *app_error.AppError)
	GetByChannel(ctx context.Context, channelId, userId string) (*board_dto.BoardResponse, *app_error.AppError)
	CreateList(ctx context.Context, boardId string, req board_dto.CreateListRequest, userId string) (*board_dto.BoardResponse, *app_error.AppError)
	AddTask(ctx context.Context, boardId string, req board_dto.AddTaskRequest, userId string) (*board_dto.BoardResponse, *app_error.AppError)
	UpdateTask(ctx context.Context, boardId, taskId string, req board_dto.UpdateTaskRequest, userId string) (*board_dto.BoardResponse, *app_error.AppError)
	MoveTask(ctx context.Context, boardId, taskId string, req board_dto.MoveTaskRequest, userId string) (*board_dto.BoardResponse, *app_error.AppError)
	AddComment(ctx context.Context, boardId, taskId string, req board_dto.AddCommentRequest, userId string) (*board_dto.BoardResponse, *app_error.AppError)
}

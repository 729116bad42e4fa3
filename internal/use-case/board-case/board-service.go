package board_service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Mandalorian7773/Collabie/internal/dtos/board_dto"
	"github.com/Mandalorian7773/Collabie/internal/entity"
	app_error "github.com/Mandalorian7773/Collabie/internal/errors"
	board_repo "github.com/Mandalorian7773/Collabie/internal/repo/board"
	workspace_repo "github.com/Mandalorian7773/Collabie/internal/repo/workspace"
	"github.com/Mandalorian7773/Collabie/state"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type BoardService struct {
	AppState      *state.AppState
	BoardRepo     board_repo.BoardRepoContract
	WorkspaceRepo workspace_repo.WorkspaceRepoContract
}

func NewBoardService(appState *state.AppState) BoardServiceContract {
	return &BoardService{
		AppState:      appState,
		BoardRepo:     board_repo.NewBoardRepo(appState),
		WorkspaceRepo: workspace_repo.NewWorkspaceRepo(appState),
	}
}

func ToBoardResponse(board *entity.Board) *board_dto.BoardResponse {
	lists := make([]board_dto.ListResponse, 0, len(board.Lists))
	for _, list := range board.Lists {
		tasks := make([]board_dto.TaskResponse, 0, len(list.Tasks))
		for _, task := range list.Tasks {
			comments := make([]board_dto.CommentResponse, 0, len(task.Comments))
			for _, comment := range task.Comments {
				comments = append(comments, board_dto.CommentResponse{
					UserID:    comment.UserID,
					Text:      comment.Text,
					CreatedAt: comment.CreatedAt,
				})
			}
			tasks = append(tasks, board_dto.TaskResponse{
				ID:          task.ID.Hex(),
				Title:       task.Title,
				Description: task.Description,
				AssignedTo:  task.AssignedTo,
				Priority:    task.Priority,
				DueDate:     task.DueDate,
				Comments:    comments,
				CreatedAt:   task.CreatedAt,
				UpdatedAt:   task.UpdatedAt,
			})
		}
		lists = append(lists, board_dto.ListResponse{
			ID:    list.ID.Hex(),
			Title: list.Title,
			Tasks: tasks,
		})
	}

	return &board_dto.BoardResponse{
		ID:        board.ID.Hex(),
		ChannelID: board.ChannelID.Hex(),
		Title:     board.Title,
		Lists:     lists,
		CreatedAt: board.CreatedAt,
		UpdatedAt: board.UpdatedAt,
	}
}

func (s *BoardService) Create(ctx context.Context, channelId string, req board_dto.CreateBoardRequest, userId string) (*board_dto.BoardResponse, *app_error.AppError) {
	channelObjId, _, err := s.loadBoardChannel(ctx, channelId, userId)
	if err != nil {
		return nil, err
	}

	board, err := s.BoardRepo.Create(ctx, entity.Board{
		ChannelID: channelObjId,
		Title:     req.Title,
		Lists:     []entity.BoardList{},
	})
	if err != nil {
		return nil, err
	}

	return ToBoardResponse(board), nil
}

func (s *BoardService) GetByChannel(ctx context.Context, channelId, userId string) (*board_dto.BoardResponse, *app_error.AppError) {
	channelObjId, _, err := s.loadBoardChannel(ctx, channelId, userId)
	if err != nil {
		return nil, err
	}

	board, err := s.BoardRepo.FindByChannel(ctx, channelObjId)
	if err != nil {
		return nil, err
	}

	return ToBoardResponse(board), nil
}

func (s *BoardService) CreateList(ctx context.Context, boardId string, req board_dto.CreateListRequest, userId string) (*board_dto.BoardResponse, *app_error.AppError) {
	return s.mutate(ctx, boardId, userId, func(board *entity.Board) error {
		board.CreateList(req.Title)
		return nil
	})
}

func (s *BoardService) AddTask(ctx context.Context, boardId string, req board_dto.AddTaskRequest, userId string) (*board_dto.BoardResponse, *app_error.AppError) {
	listId, parseErr := bson.ObjectIDFromHex(req.ListID)
	if parseErr != nil {
		return nil, app_error.NewAppError(http.StatusBadRequest, "invalid list id", "list-id")
	}

	var dueDate *time.Time
	if req.DueDate != nil && *req.DueDate != "" {
		parsed, err := time.Parse(time.RFC3339, *req.DueDate)
		if err != nil {
			return nil, app_error.NewAppError(http.StatusBadRequest, "invalid due date, expected RFC3339", "due-date")
		}
		dueDate = &parsed
	}

	task := entity.Task{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     dueDate,
	}
	if req.AssignedTo != nil {
		task.AssignedTo = *req.AssignedTo
	}

	return s.mutate(ctx, boardId, userId, func(board *entity.Board) error {
		_, err := board.AddTask(listId, task)
		return err
	})
}

func (s *BoardService) UpdateTask(ctx context.Context, boardId, taskId string, req board_dto.UpdateTaskRequest, userId string) (*board_dto.BoardResponse, *app_error.AppError) {
	taskObjId, parseErr := bson.ObjectIDFromHex(taskId)
	if parseErr != nil {
		return nil, app_error.NewAppError(http.StatusBadRequest, "invalid task id", "task-id")
	}

	var dueDate *time.Time
	if req.DueDate != nil && *req.DueDate != "" {
		parsed, err := time.Parse(time.RFC3339, *req.DueDate)
		if err != nil {
			return nil, app_error.NewAppError(http.StatusBadRequest, "invalid due date, expected RFC3339", "due-date")
		}
		dueDate = &parsed
	}

	return s.mutate(ctx, boardId, userId, func(board *entity.Board) error {
		_, err := board.UpdateTask(taskObjId, func(task *entity.Task) {
			if req.Title != nil {
				task.Title = *req.Title
			}
			if req.Description != nil {
				task.Description = *req.Description
			}
			if req.AssignedTo != nil {
				task.AssignedTo = *req.AssignedTo
			}
			if req.Priority != nil {
				task.Priority = *req.Priority
			}
			if dueDate != nil {
				task.DueDate = dueDate
			}
		})
		return err
	})
}

func (s *BoardService) MoveTask(ctx context.Context, boardId, taskId string, req board_dto.MoveTaskRequest, userId string) (*board_dto.BoardResponse, *app_error.AppError) {
	taskObjId, parseErr := bson.ObjectIDFromHex(taskId)
	if parseErr != nil {
		return nil, app_error.NewAppError(http.StatusBadRequest, "invalid task id", "task-id")
	}
	listObjId, parseErr := bson.ObjectIDFromHex(req.ToListID)
	if parseErr != nil {
		return nil, app_error.NewAppError(http.StatusBadRequest, "invalid list id", "to-list-id")
	}

	return s.mutate(ctx, boardId, userId, func(board *entity.Board) error {
		return board.MoveTask(taskObjId, listObjId)
	})
}

func (s *BoardService) AddComment(ctx context.Context, boardId, taskId string, req board_dto.AddCommentRequest, userId string) (*board_dto.BoardResponse, *app_error.AppError) {
	taskObjId, parseErr := bson.ObjectIDFromHex(taskId)
	if parseErr != nil {
		return nil, app_error.NewAppError(http.StatusBadRequest, "invalid task id", "task-id")
	}

	return s.mutate(ctx, boardId, userId, func(board *entity.Board) error {
		_, err := board.AddComment(taskObjId, userId, req.Text)
		return err
	})
}

// mutate loads the board, checks workspace membership, applies the in-memory
// change, and saves the full document.
func (s *BoardService) mutate(ctx context.Context, boardId, userId string, apply func(*entity.Board) error) (*board_dto.BoardResponse, *app_error.AppError) {
	id, parseErr := bson.ObjectIDFromHex(boardId)
	if parseErr != nil {
		return nil, app_error.NewAppError(http.StatusBadRequest, "invalid board id", "board-id")
	}

	board, err := s.BoardRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	channel, err := s.WorkspaceRepo.FindChannelByID(ctx, board.ChannelID)
	if err != nil {
		return nil, err
	}
	if err := s.checkWorkspaceMembership(ctx, channel.WorkspaceID, userId); err != nil {
		return nil, err
	}

	if applyErr := apply(board); applyErr != nil {
		switch {
		case errors.Is(applyErr, entity.ErrListNotFound):
			return nil, app_error.NewAppError(http.StatusNotFound, "list not found", "list-id")
		case errors.Is(applyErr, entity.ErrTaskNotFound):
			return nil, app_error.NewAppError(http.StatusNotFound, "task not found", "task-id")
		default:
			return nil, app_error.NewAppError(http.StatusInternalServerError, applyErr.Error(), "board-mutation")
		}
	}

	if err := s.BoardRepo.Save(ctx, board); err != nil {
		return nil, err
	}

	return ToBoardResponse(board), nil
}

// loadBoardChannel resolves a channel id, checks it is a board channel, and
// checks the caller belongs to the owning workspace.
func (s *BoardService) loadBoardChannel(ctx context.Context, channelId, userId string) (bson.ObjectID, *entity.Channel, *app_error.AppError) {
	id, parseErr := bson.ObjectIDFromHex(channelId)
	if parseErr != nil {
		return bson.ObjectID{}, nil, app_error.NewAppError(http.StatusBadRequest, "invalid channel id", "channel-id")
	}

	channel, err := s.WorkspaceRepo.FindChannelByID(ctx, id)
	if err != nil {
		return bson.ObjectID{}, nil, err
	}
	if channel.Type != entity.ChannelTypeBoard {
		return bson.ObjectID{}, nil, app_error.NewAppError(http.StatusBadRequest, "channel does not host a board", "channel-type")
	}

	if err := s.checkWorkspaceMembership(ctx, channel.WorkspaceID, userId); err != nil {
		return bson.ObjectID{}, nil, err
	}

	return id, channel, nil
}

func (s *BoardService) checkWorkspaceMembership(ctx context.Context, workspaceId bson.ObjectID, userId string) *app_error.AppError {
	workspace, err := s.WorkspaceRepo.FindByID(ctx, workspaceId)
	if err != nil {
		return err
	}
	if !workspace.HasMember(userId) {
		return app_error.NewAppError(http.StatusForbidden, "not a member of this workspace", "workspace-id")
	}
	return nil
}

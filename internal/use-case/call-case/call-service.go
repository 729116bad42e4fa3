package call_service

import (
	"context"
	"net/http"
	"time"

	"github.com/Mandalorian7773/Collabie/internal/dtos/call_dto"
	"github.com/Mandalorian7773/Collabie/internal/entity"
	app_error "github.com/Mandalorian7773/Collabie/internal/errors"
	call_repo "github.com/Mandalorian7773/Collabie/internal/repo/call"
	"github.com/Mandalorian7773/Collabie/state"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type CallService struct {
	AppState *state.AppState
	CallRepo call_repo.CallRepoContract
}

func NewCallService(appState *state.AppState) CallServiceContract {
	return &CallService{
		AppState: appState,
		CallRepo: call_repo.NewCallRepo(appState),
	}
}

func ToCallResponse(call *entity.Call) *call_dto.CallResponse {
	return &call_dto.CallResponse{
		ID:           call.ID.Hex(),
		RoomID:       call.RoomID,
		Type:         call.Type,
		Participants: call.Participants,
		CreatedBy:    call.CreatedBy,
		Status:       call.Status,
		StartedAt:    call.StartedAt,
		EndedAt:      call.EndedAt,
		Duration:     call.Duration().Seconds(),
		Settings: call_dto.CallSettings{
			VideoEnabled:         call.Settings.VideoEnabled,
			AudioEnabled:         call.Settings.AudioEnabled,
			ScreenSharingEnabled: call.Settings.ScreenSharingEnabled,
		},
	}
}

func parseCallID(callId string) (bson.ObjectID, *app_error.AppError) {
	id, err := bson.ObjectIDFromHex(callId)
	if err != nil {
		return bson.ObjectID{}, app_error.NewAppError(http.StatusBadRequest, "invalid call id", "call-id")
	}
	return id, nil
}

func (s *CallService) Start(ctx context.Context, req call_dto.StartCallRequest, userId string) (*call_dto.CallResponse, *app_error.AppError) {
	call, err := s.CallRepo.Create(ctx, entity.Call{
		RoomID:       req.RoomID,
		Type:         req.Type,
		Participants: []string{userId},
		CreatedBy:    userId,
		Status:       entity.CallStatusActive,
		StartedAt:    time.Now(),
		Settings: entity.CallSettings{
			VideoEnabled:         req.Type == entity.CallTypeVideo,
			AudioEnabled:         true,
			ScreenSharingEnabled: false,
		},
	})
	if err != nil {
		return nil, err
	}
	return ToCallResponse(call), nil
}

func (s *CallService) End(ctx context.Context, callId, status, userId string) (*call_dto.CallResponse, *app_error.AppError) {
	id, appErr := parseCallID(callId)
	if appErr != nil {
		return nil, appErr
	}

	call, err := s.CallRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Only the creator or a current participant may end the call.
	if call.CreatedBy != userId && !call.HasParticipant(userId) {
		return nil, app_error.NewAppError(http.StatusForbidden, "not a participant of this call", "call-id")
	}

	if status == "" {
		status = entity.CallStatusEnded
	}

	ended, err := s.CallRepo.End(ctx, id, status)
	if err != nil {
		return nil, err
	}
	return ToCallResponse(ended), nil
}

func (s *CallService) Join(ctx context.Context, callId, userId string) (*call_dto.CallResponse, *app_error.AppError) {
	id, appErr := parseCallID(callId)
	if appErr != nil {
		return nil, appErr
	}

	call, err := s.CallRepo.AddParticipant(ctx, id, userId)
	if err != nil {
		return nil, err
	}
	return ToCallResponse(call), nil
}

func (s *CallService) Leave(ctx context.Context, callId, userId string) (*call_dto.CallResponse, *app_error.AppError) {
	id, appErr := parseCallID(callId)
	if appErr != nil {
		return nil, appErr
	}

	call, err := s.CallRepo.RemoveParticipant(ctx, id, userId)
	if err != nil {
		return nil, err
	}
	return ToCallResponse(call), nil
}

func (s *CallService) Get(ctx context.Context, callId string) (*call_dto.CallResponse, *app_error.AppError) {
	id, appErr := parseCallID(callId)
	if appErr != nil {
		return nil, appErr
	}

	call, err := s.CallRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToCallResponse(call), nil
}

func (s *CallService) ActiveByRoom(ctx context.Context, roomId string) ([]*call_dto.CallResponse, *app_error.AppError) {
	calls, err := s.CallRepo.FindActiveByRoom(ctx, roomId)
	if err != nil {
		return nil, err
	}
	return toCallResponses(calls), nil
}

func (s *CallService) ActiveByUser(ctx context.Context, userId string) ([]*call_dto.CallResponse, *app_error.AppError) {
	calls, err := s.CallRepo.FindActiveByUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	return toCallResponses(calls), nil
}

func toCallResponses(calls []*entity.Call) []*call_dto.CallResponse {
	responses := make([]*call_dto.CallResponse, 0, len(calls))
	for _, call := range calls {
		responses = append(responses, ToCallResponse(call))
	}
	return responses
}

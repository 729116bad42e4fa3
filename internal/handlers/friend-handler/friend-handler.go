package friend_handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"github.com/Mandalorian7773/Collabie/internal/dtos/friend_dto"
	app_error "github.com/Mandalorian7773/Collabie/internal/errors"
	"github.com/Mandalorian7773/Collabie/internal/handlers"
	"github.com/Mandalorian7773/Collabie/internal/middleware"
	friend_service "github.com/Mandalorian7773/Collabie/internal/use-case/friend-case"
	"github.com/Mandalorian7773/Collabie/state"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type FriendHandler struct {
	State    *state.AppState
	Validate *validator.Validate
	Service  friend_service.FriendServiceContract
}

func NewFriendHandler(state *state.AppState) *FriendHandler {
	return &FriendHandler{
		State:    state,
		Validate: validator.New(),
		Service:  friend_service.NewFriendService(state),
	}
}

func requestIdParam(r *http.Request) (int64, *app_error.AppError) {
	raw := chi.URLParam(r, "requestId")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, app_error.NewAppError(http.StatusBadRequest, "Invalid request id", "requestId")
	}
	return id, nil
}

func (h *FriendHandler) SendRequest(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	claims, appErr := middleware.ClaimsFromContext(r.Context())
	if appErr != nil {
		return appErr
	}

	var req friend_dto.SendRequestRequest
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, "Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, fmt.Sprintf("Invalid fields: %v", err), "validation")
	}

	resp, err := h.Service.SendRequest(r.Context(), req, claims.Sub)
	if err != nil {
		return err
	}

	handlers.WriteData(w, http.StatusCreated, handlers.CreateResponse("friend request sent", *resp, handlers.RequestID(r)))
	return nil
}

func (h *FriendHandler) Accept(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	claims, appErr := middleware.ClaimsFromContext(r.Context())
	if appErr != nil {
		return appErr
	}

	id, appErr := requestIdParam(r)
	if appErr != nil {
		return appErr
	}

	resp, err := h.Service.Accept(r.Context(), id, claims.Sub)
	if err != nil {
		return err
	}

	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("friend request accepted", *resp, handlers.RequestID(r)))
	return nil
}

func (h *FriendHandler) Decline(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	claims, appErr := middleware.ClaimsFromContext(r.Context())
	if appErr != nil {
		return appErr
	}

	id, appErr := requestIdParam(r)
	if appErr != nil {
		return appErr
	}

	if err := h.Service.Decline(r.Context(), id, claims.Sub); err != nil {
		return err
	}

	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("friend request declined", true, handlers.RequestID(r)))
	return nil
}

func (h *FriendHandler) Unfriend(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	claims, appErr := middleware.ClaimsFromContext(r.Context())
	if appErr != nil {
		return appErr
	}

	friendId := chi.URLParam(r, "friendId")

	if err := h.Service.Unfriend(r.Context(), friendId, claims.Sub); err != nil {
		return err
	}

	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("unfriended", true, handlers.RequestID(r)))
	return nil
}

func (h *FriendHandler) ListFriends(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	claims, appErr := middleware.ClaimsFromContext(r.Context())
	if appErr != nil {
		return appErr
	}

	resp, err := h.Service.ListFriends(r.Context(), claims.Sub)
	if err != nil {
		return err
	}

	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("friends", resp, handlers.RequestID(r)))
	return nil
}

func (h *FriendHandler) ListPending(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	claims, appErr := middleware.ClaimsFromContext(r.Context())
	if appErr != nil {
		return appErr
	}

	resp, err := h.Service.ListPending(r.Context(), claims.Sub)
	if err != nil {
		return err
	}

	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("pending requests", resp, handlers.RequestID(r)))
	return nil
}

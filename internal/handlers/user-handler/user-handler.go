package user_handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"github.com/Mandalorian7773/Collabie/internal/dtos/user_dto"
	app_error "github.com/Mandalorian7773/Collabie/internal/errors"
	"github.com/Mandalorian7773/Collabie/internal/handlers"
	"github.com/Mandalorian7773/Collabie/internal/middleware"
	user_service "github.com/Mandalorian7773/Collabie/internal/use-case/user-case"
	"github.com/Mandalorian7773/Collabie/state"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type UserHandler struct {
	State    *state.AppState
	Validate *validator.Validate
	Service  user_service.UserServiceContract
}

func NewUserHandler(state *state.AppState) *UserHandler {
	return &UserHandler{
		State:    state,
		Validate: validator.New(),
		Service:  user_service.NewUserService(state),
	}
}

func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	claims, appErr := middleware.ClaimsFromContext(r.Context())
	if appErr != nil {
		return appErr
	}

	resp, err := h.Service.GetProfile(r.Context(), claims.Sub)
	if err != nil {
		return err
	}

	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("profile", *resp, handlers.RequestID(r)))
	return nil
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	userId := chi.URLParam(r, "userId")

	resp, err := h.Service.GetProfile(r.Context(), userId)
	if err != nil {
		return err
	}

	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("profile", *resp, handlers.RequestID(r)))
	return nil
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	claims, appErr := middleware.ClaimsFromContext(r.Context())
	if appErr != nil {
		return appErr
	}

	var req user_dto.UpdateProfileRequest
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, "Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, fmt.Sprintf("Invalid fields: %v", err), "validation")
	}

	resp, err := h.Service.UpdateProfile(r.Context(), req, claims.Sub)
	if err != nil {
		return err
	}

	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("profile updated", *resp, handlers.RequestID(r)))
	return nil
}

func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	query := r.URL.Query().Get("q")
	if query == "" {
		return app_error.NewAppError(http.StatusBadRequest, "Missing search query", "q")
	}

	resp, err := h.Service.Search(r.Context(), query)
	if err != nil {
		return err
	}

	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("search results", resp, handlers.RequestID(r)))
	return nil
}

func (h *UserHandler) ListActive(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	resp, err := h.Service.ListActive(r.Context())
	if err != nil {
		return err
	}

	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("active users", resp, handlers.RequestID(r)))
	return nil
}

func (h *UserHandler) GetPresence(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	userId := chi.URLParam(r, "userId")

	resp, err := h.Service.GetPresence(r.Context(), userId)
	if err != nil {
		return err
	}

	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("presence", *resp, handlers.RequestID(r)))
	return nil
}

func (h *UserHandler) Conversations(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	claims, appErr := middleware.ClaimsFromContext(r.Context())
	if appErr != nil {
		return appErr
	}

	resp, err := h.Service.Conversations(r.Context(), claims.Sub)
	if err != nil {
		return err
	}

	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("conversations", resp, handlers.RequestID(r)))
	return nil
}

func (h *UserHandler) Deactivate(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	claims, appErr := middleware.ClaimsFromContext(r.Context())
	if appErr != nil {
		return appErr
	}

	if err := h.Service.Deactivate(r.Context(), claims.Sub); err != nil {
		return err
	}

	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("account deactivated", true, handlers.RequestID(r)))
	return nil
}

package call_handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"github.com/Mandalorian7773/Collabie/internal/dtos/call_dto"
	app_error "github.com/Mandalorian7773/Collabie/internal/errors"
	"github.com/Mandalorian7773/Collabie/internal/handlers"
	"github.com/Mandalorian7773/Collabie/internal/middleware"
	call_service "github.com/Mandalorian7773/Collabie/internal/use-case/call-case"
	"github.com/Mandalorian7773/Collabie/state"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type CallHandler struct {
	State    *state.AppState
	Validate *validator.Validate
	Service  call_service.CallServiceContract
}

func NewCallHandler(state *state.AppState) *CallHandler {
	return &CallHandler{
		State:    state,
		Validate: validator.New(),
		Service:  call_service.NewCallService(state),
	}
}

func (h *CallHandler) Start(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	claims, appErr := middleware.ClaimsFromContext(r.Context())
	if appErr != nil {
		return appErr
	}

	var req call_dto.StartCallRequest
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, "Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, fmt.Sprintf("Invalid fields: %v", err), "validation")
	}

	resp, err := h.Service.Start(r.Context(), req, claims.Sub)
	if err != nil {
		return err
	}

	handlers.WriteData(w, http.StatusCreated, handlers.CreateResponse("call started", *resp, handlers.RequestID(r)))
	return nil
}

func (h *CallHandler) End(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	claims, appErr := middleware.ClaimsFromContext(r.Context())
	if appErr != nil {
		return appErr
	}

	callId := chi.URLParam(r, "callId")

	var req call_dto.EndCallRequest
	defer r.Body.Close()

	// Body optional; status defaults to ended.
	_ = json.NewDecoder(r.Body).Decode(&req)

	resp, err := h.Service.End(r.Context(), callId, req.Status, claims.Sub)
	if err != nil {
		return err
	}

	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("call ended", *resp, handlers.RequestID(r)))
	return nil
}

func (h *CallHandler) Join(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	claims, appErr := middleware.ClaimsFromContext(r.Context())
	if appErr != nil {
		return appErr
	}

	callId := chi.URLParam(r, "callId")

	resp, err := h.Service.Join(r.Context(), callId, claims.Sub)
	if err != nil {
		return err
	}

	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("joined call", *resp, handlers.RequestID(r)))
	return nil
}

func (h *CallHandler) Leave(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	claims, appErr := middleware.ClaimsFromContext(r.Context())
	if appErr != nil {
		return appErr
	}

	callId := chi.URLParam(r, "callId")

	resp, err := h.Service.Leave(r.Context(), callId, claims.Sub)
	if err != nil {
		return err
	}

	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("left call", *resp, handlers.RequestID(r)))
	return nil
}

func (h *CallHandler) Get(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	callId := chi.URLParam(r, "callId")

	resp, err := h.Service.Get(r.Context(), callId)
	if err != nil {
		return err
	}

	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("call", *resp, handlers.RequestID(r)))
	return nil
}

func (h *CallHandler) ActiveByRoom(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	roomId := chi.URLParam(r, "roomId")

	resp, err := h.Service.ActiveByRoom(r.Context(), roomId)
	if err != nil {
		return err
	}

	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("active calls", resp, handlers.RequestID(r)))
	return nil
}

func (h *CallHandler) ActiveMine(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	claims, appErr := middleware.ClaimsFromContext(r.Context())
	if appErr != nil {
		return appErr
	}

	resp, err := h.Service.ActiveByUser(r.Context(), claims.Sub)
	if err != nil {
		return err
	}

	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("active calls", resp, handlers.RequestID(r)))
	return nil
}

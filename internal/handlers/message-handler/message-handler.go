package message_handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"github.com/Mandalorian7773/Collabie/internal/dtos/message_dto"
	app_error "github.com/Mandalorian7773/Collabie/internal/errors"
	"github.com/Mandalorian7773/Collabie/internal/handlers"
	"github.com/Mandalorian7773/Collabie/internal/middleware"
	message_service "github.com/Mandalorian7773/Collabie/internal/use-case/message-case"
	"github.com/Mandalorian7773/Collabie/state"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type MessageHandler struct {
	State    *state.AppState
	Validate *validator.Validate
	Service  message_service.MessageServiceContract
}

func NewMessageHandler(state *state.AppState) *MessageHandler {
	return &MessageHandler{
		State:    state,
		Validate: validator.New(),
		Service:  message_service.NewMessageService(state),
	}
}

func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	claims, appErr := middleware.ClaimsFromContext(r.Context())
	if appErr != nil {
		return appErr
	}

	var req message_dto.SendMessageRequest
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, "Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, fmt.Sprintf("Invalid fields: %v", err), "validation")
	}

	resp, err := h.Service.Send(r.Context(), req, claims.Sub)
	if err != nil {
		return err
	}

	handlers.WriteData(w, http.StatusCreated, handlers.CreateResponse("message sent", *resp, handlers.RequestID(r)))
	return nil
}

// GetConversation pages backwards through a chat. The partner id comes from
// the path; the canonical chat id is derived server side.
func (h *MessageHandler) GetConversation(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	claims, appErr := middleware.ClaimsFromContext(r.Context())
	if appErr != nil {
		return appErr
	}

	partnerId := chi.URLParam(r, "partnerId")
	chatId := message_service.ChatIDFor(claims.Sub, partnerId)

	var limit int64 = 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			return app_error.NewAppError(http.StatusBadRequest, "Invalid limit", "limit")
		}
		limit = parsed
	}

	var before *string
	if raw := r.URL.Query().Get("before"); raw != "" {
		before = &raw
	}

	resp, err := h.Service.GetConversation(r.Context(), chatId, limit, before)
	if err != nil {
		return err
	}

	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("messages", resp, handlers.RequestID(r)))
	return nil
}

func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	claims, appErr := middleware.ClaimsFromContext(r.Context())
	if appErr != nil {
		return appErr
	}

	partnerId := chi.URLParam(r, "partnerId")
	chatId := message_service.ChatIDFor(claims.Sub, partnerId)

	resp, err := h.Service.MarkRead(r.Context(), chatId, claims.Sub)
	if err != nil {
		return err
	}

	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("messages marked read", *resp, handlers.RequestID(r)))
	return nil
}

func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	claims, appErr := middleware.ClaimsFromContext(r.Context())
	if appErr != nil {
		return appErr
	}

	messageId := chi.URLParam(r, "messageId")

	if err := h.Service.Delete(r.Context(), messageId, claims.Sub); err != nil {
		return err
	}

	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("message deleted", true, handlers.RequestID(r)))
	return nil
}

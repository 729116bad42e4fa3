package hub_handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"

	app_error "github.com/Mandalorian7773/Collabie/internal/errors"
	"github.com/Mandalorian7773/Collabie/internal/handlers"
	"github.com/Mandalorian7773/Collabie/internal/relay"
	"github.com/Mandalorian7773/Collabie/internal/worker"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// HubHandler exposes relay and job-queue health for operators.
type HubHandler struct {
	Hub  *relay.Hub
	Pool *worker.WorkerPool
}

func NewHubHandler(hub *relay.Hub, pool *worker.WorkerPool) *HubHandler {
	return &HubHandler{
		Hub:  hub,
		Pool: pool,
	}
}

func (h *HubHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (h *HubHandler) HandleGetStats(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	stats := h.Hub.Stats()
	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("relay stats", stats, handlers.RequestID(r)))
	return nil
}

func (h *HubHandler) HandleGetRoomUsers(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	roomId := chi.URLParam(r, "roomId")

	users := h.Hub.RoomUsers(roomId)
	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("room users", users, handlers.RequestID(r)))
	return nil
}

func (h *HubHandler) HandleGetUserStatus(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	userId := chi.URLParam(r, "userId")

	online := h.Hub.IsUserOnline(userId)
	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("user status", map[string]any{
		"user_id": userId,
		"online":  online,
	}, handlers.RequestID(r)))
	return nil
}

func (h *HubHandler) HandleGetDLQStats(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	stats, err := h.Pool.GetDLQStats(r.Context())
	if err != nil {
		return app_error.NewAppError(http.StatusInternalServerError, "failed to load DLQ stats", "dlq")
	}

	handlers.WriteData(w, http.StatusOK, handlers.CreateResponse("dlq stats", stats, handlers.RequestID(r)))
	return nil
}

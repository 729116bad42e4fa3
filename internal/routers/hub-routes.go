package routers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Mandalorian7773/Collabie/internal/handlers"
	hub_handler "github.com/Mandalorian7773/Collabie/internal/handlers/hub-handler"
	"github.com/Mandalorian7773/Collabie/internal/relay"
	"github.com/Mandalorian7773/Collabie/internal/worker"
)

func HubRouter(r chi.Router, hub *relay.Hub, pool *worker.WorkerPool, auth func(http.Handler) http.Handler) {
	hubHandler := hub_handler.NewHubHandler(hub, pool)

	r.Get("/api/v1/health", hubHandler.HandleHealth)

	r.Route("/api/v1/relay", func(r chi.Router) {
		r.Use(auth)

		r.Get("/stats", handlers.WrapHandler(hubHandler.HandleGetStats))
		r.Get("/rooms/{roomId}/users", handlers.WrapHandler(hubHandler.HandleGetRoomUsers))
		r.Get("/users/{userId}/status", handlers.WrapHandler(hubHandler.HandleGetUserStatus))
		r.Get("/dlq/stats", handlers.WrapHandler(hubHandler.HandleGetDLQStats))
	})
}

package routers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Mandalorian7773/Collabie/internal/handlers"
	message_handler "github.com/Mandalorian7773/Collabie/internal/handlers/message-handler"
	"github.com/Mandalorian7773/Collabie/state"
)

func MessageRouter(r chi.Router, state *state.AppState, auth func(http.Handler) http.Handler) {
	messageHandler := message_handler.NewMessageHandler(state)

	r.Route("/api/v1/messages", func(r chi.Router) {
		r.Use(auth)

		r.Post("/", handlers.WrapHandler(messageHandler.Send))
		r.Get("/{partnerId}", handlers.WrapHandler(messageHandler.GetConversation))
		r.Post("/{partnerId}/read", handlers.WrapHandler(messageHandler.MarkRead))
		r.Delete("/{messageId}", handlers.WrapHandler(messageHandler.Delete))
	})
}

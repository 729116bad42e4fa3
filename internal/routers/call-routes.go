package routers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Mandalorian7773/Collabie/internal/handlers"
	call_handler "github.com/Mandalorian7773/Collabie/internal/handlers/call-handler"
	"github.com/Mandalorian7773/Collabie/state"
)

func CallRouter(r chi.Router, state *state.AppState, auth func(http.Handler) http.Handler) {
	callHandler := call_handler.NewCallHandler(state)

	r.Route("/api/v1/calls", func(r chi.Router) {
		r.Use(auth)

		r.Post("/", handlers.WrapHandler(callHandler.Start))
		r.Get("/active", handlers.WrapHandler(callHandler.ActiveMine))
		r.Get("/rooms/{roomId}/active", handlers.WrapHandler(callHandler.ActiveByRoom))
		r.Get("/{callId}", handlers.WrapHandler(callHandler.Get))
		r.Post("/{callId}/end", handlers.WrapHandler(callHandler.End))
		r.Post("/{callId}/join", handlers.WrapHandler(callHandler.Join))
		r.Post("/{callId}/leave", handlers.WrapHandler(callHandler.Leave))
	})
}

package routers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Mandalorian7773/Collabie/internal/handlers"
	friend_handler "github.com/Mandalorian7773/Collabie/internal/handlers/friend-handler"
	"github.com/Mandalorian7773/Collabie/state"
)

func FriendRouter(r chi.Router, state *state.AppState, auth func(http.Handler) http.Handler) {
	friendHandler := friend_handler.NewFriendHandler(state)

	r.Route("/api/v1/friends", func(r chi.Router) {
		r.Use(auth)

		r.Get("/", handlers.WrapHandler(friendHandler.ListFriends))
		r.Delete("/{friendId}", handlers.WrapHandler(friendHandler.Unfriend))

		r.Route("/requests", func(r chi.Router) {
			r.Post("/", handlers.WrapHandler(friendHandler.SendRequest))
			r.Get("/", handlers.WrapHandler(friendHandler.ListPending))
			r.Post("/{requestId}/accept", handlers.WrapHandler(friendHandler.Accept))
			r.Post("/{requestId}/decline", handlers.WrapHandler(friendHandler.Decline))
		})
	})
}

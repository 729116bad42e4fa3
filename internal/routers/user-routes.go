package routers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Mandalorian7773/Collabie/internal/handlers"
	user_handler "github.com/Mandalorian7773/Collabie/internal/handlers/user-handler"
	"github.com/Mandalorian7773/Collabie/state"
)

func UserRouter(r chi.Router, state *state.AppState, auth func(http.Handler) http.Handler) {
	userHandler := user_handler.NewUserHandler(state)

	r.Route("/api/v1/users", func(r chi.Router) {
		r.Use(auth)

		r.Get("/me", handlers.WrapHandler(userHandler.GetMe))
		r.Patch("/me", handlers.WrapHandler(userHandler.UpdateProfile))
		r.Delete("/me", handlers.WrapHandler(userHandler.Deactivate))
		r.Get("/me/conversations", handlers.WrapHandler(userHandler.Conversations))
		r.Get("/search", handlers.WrapHandler(userHandler.Search))
		r.Get("/active", handlers.WrapHandler(userHandler.ListActive))
		r.Get("/{userId}", handlers.WrapHandler(userHandler.GetUser))
		r.Get("/{userId}/presence", handlers.WrapHandler(userHandler.GetPresence))
	})
}

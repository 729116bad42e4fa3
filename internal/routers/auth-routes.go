package routers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Mandalorian7773/Collabie/internal/handlers"
	auth_handler "github.com/Mandalorian7773/Collabie/internal/handlers/auth-handler"
	"github.com/Mandalorian7773/Collabie/state"
)

func AuthRouter(r chi.Router, state *state.AppState, auth func(http.Handler) http.Handler) {
	authHandler := auth_handler.NewAuthHandler(state)

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", handlers.WrapHandler(authHandler.Register))
		r.Post("/verify/{userId}", handlers.WrapHandler(authHandler.VerifyEmail))
		r.Post("/login", handlers.WrapHandler(authHandler.Login))
		r.Post("/refresh", handlers.WrapHandler(authHandler.Refresh))
		r.Post("/logout", handlers.WrapHandler(authHandler.Logout))

		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Post("/logout-all", handlers.WrapHandler(authHandler.LogoutAll))
			r.Post("/change-password", handlers.WrapHandler(authHandler.ChangePassword))
		})
	})
}

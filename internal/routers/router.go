package routers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	graphql_api "github.com/Mandalorian7773/Collabie/internal/graphql"
	"github.com/Mandalorian7773/Collabie/internal/metrics"
	"github.com/Mandalorian7773/Collabie/internal/middleware"
	"github.com/Mandalorian7773/Collabie/internal/relay"
	"github.com/Mandalorian7773/Collabie/internal/worker"
	"github.com/Mandalorian7773/Collabie/state"
)

func NewRouter(appState *state.AppState, hub *relay.Hub, pool *worker.WorkerPool, relayHandler http.Handler) (http.Handler, error) {
	r := chi.NewRouter()
	r.Use(middleware.WithRequestId)
	r.Use(middleware.WithDeviceInfo)
	r.Use(metrics.HTTPMiddleware)

	limiter := middleware.NewRateLimiter(rate.Every(time.Second/20), 40, 2*time.Minute)
	r.Use(limiter.Middleware)

	auth := middleware.JWTAuth(appState.JwtSecret.Public)

	AuthRouter(r, appState, auth)
	UserRouter(r, appState, auth)
	FriendRouter(r, appState, auth)
	MessageRouter(r, appState, auth)
	CallRouter(r, appState, auth)
	HubRouter(r, hub, pool, auth)

	gqlHandler, err := graphql_api.NewHandler(graphql_api.NewResolver(appState))
	if err != nil {
		return nil, err
	}
	r.With(auth).Handle("/api/graphql", gqlHandler)

	r.Handle("/ws", relayHandler)
	r.Handle("/metrics", promhttp.Handler())

	return r, nil
}

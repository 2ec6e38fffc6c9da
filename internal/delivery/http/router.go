package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"together/internal/delivery/http/controllers"
	h "together/internal/delivery/http/helpers"
	"together/internal/delivery/http/middleware"
	"together/internal/domain"
)

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

// RouterConfig holds everything NewRouter needs besides the controllers.
type RouterConfig struct {
	Logger             *slog.Logger
	Verifier           domain.TokenVerifier
	AllowedOrigins     []string
	RateLimitPerMinute int
	Health             HealthCheck
}

// Controllers groups the HTTP controllers mounted by NewRouter.
type Controllers struct {
	Events     *controllers.EventController
	Requests   *controllers.RequestController
	Favorites  *controllers.FavoriteController
	References *controllers.ReferenceController
	Equipment  *controllers.EquipmentController
}

// NewRouter initializes the HTTP router with all application routes and wraps it in the
// middleware chain: request id, recover, logging, CORS, rate limit, metrics.
func NewRouter(cfg RouterConfig, c Controllers) http.Handler {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(cfg.Verifier, cfg.Logger)
	optional := middleware.OptionalAuth(cfg.Verifier, cfg.Logger)

	// Events
	mux.HandleFunc("POST /events", auth(c.Events.CreateEvent))
	mux.HandleFunc("GET /events", optional(c.Events.ListEvents))
	mux.HandleFunc("GET /events/map", c.Events.ListEventsForMap)
	mux.HandleFunc("GET /events/mine", auth(c.Events.ListMyEvents))
	mux.HandleFunc("GET /events/{eventID}", optional(c.Events.GetEvent))
	mux.HandleFunc("PUT /events/{eventID}", auth(c.Events.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", auth(c.Events.DeleteEvent))
	mux.HandleFunc("GET /users/{userID}/events", c.Events.ListUserEvents)

	// Join requests
	mux.HandleFunc("POST /events/{eventID}/requests", auth(c.Requests.CreateRequest))
	mux.HandleFunc("GET /events/{eventID}/requests", auth(c.Requests.ListEventRequests))
	mux.HandleFunc("GET /requests/mine", auth(c.Requests.ListMyRequests))
	mux.HandleFunc("POST /requests/{requestID}/decision", auth(c.Requests.Decide))

	// Favorites
	mux.HandleFunc("POST /events/{eventID}/favorite", auth(c.Favorites.ToggleFavorite))
	mux.HandleFunc("GET /favorites", auth(c.Favorites.ListFavorites))

	// Reference data
	mux.HandleFunc("GET /sports", c.References.ListSports)
	mux.HandleFunc("GET /experience-levels", c.References.ListExperienceLevels)
	mux.HandleFunc("GET /equipment", c.Equipment.ListEquipment)

	// Equipment owned by the caller
	mux.HandleFunc("GET /equipment/mine", auth(c.Equipment.ListUserEquipment))
	mux.HandleFunc("POST /equipment/mine", auth(c.Equipment.AddUserEquipment))

	// Ops
	mux.HandleFunc("GET /healthz", healthz(cfg.Health))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	var handler http.Handler = middleware.Metrics(mux)
	if cfg.RateLimitPerMinute > 0 {
		handler = httprate.Limit(
			cfg.RateLimitPerMinute,
			time.Minute,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
				h.WriteJSONError(w, http.StatusTooManyRequests, h.ErrCodeTooManyReqs, "rate limit exceeded")
			}),
		)(handler)
	}
	handler = middleware.CORS(cfg.AllowedOrigins, handler)
	handler = middleware.LoggingMiddleware(cfg.Logger, handler)
	handler = middleware.Recover(cfg.Logger, handler)
	return middleware.RequestID(handler)
}

func healthz(check HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				h.WriteJSONError(w, http.StatusServiceUnavailable, "unavailable", "database unreachable")
				return
			}
		}
		h.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

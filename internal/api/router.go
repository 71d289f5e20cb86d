package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/samandr77/microservices/challenge/docs" // swagger docs
	"github.com/samandr77/microservices/challenge/pkg/config"
)

// NewRouter serves the public API. It carries no internal routes.
func NewRouter(h *Handler, mw *Middleware, throttle config.ThrottleConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.Recover, mw.WithIP, mw.Log, mw.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "Origin", "Accept", "X-Request-Id", "X-Service-Name"},
		ExposedHeaders:   []string{"Retry-After", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/api/health", h.Health)

	r.Group(func(r chi.Router) {
		r.Use(httprate.Limit(
			throttle.RequestLimit,
			throttle.RequestWindow,
			httprate.WithKeyFuncs(ipKey),
			httprate.WithLimitHandler(limitExceeded),
		))

		r.Post("/api/challenge/send", h.SendChallenge)
		r.Post("/api/challenge/check", h.CheckChallenge)
	})

	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	return r
}

// NewInternalRouter serves operator routes. It must only be bound to a listener
// that is unreachable from the public network.
func NewInternalRouter(h *Handler, mw *Middleware, metricsHandler http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.Recover, mw.WithIP, mw.Log)

	r.Get("/internal/health", h.Health)
	r.Post("/internal/api/challenge/unlock", h.Unlock)
	r.Handle("/metrics", metricsHandler)

	return r
}

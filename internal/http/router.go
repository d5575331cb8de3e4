package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yevhenkap/tixjar/internal/observability"
)

func SetupRouter(h *Handlers, logger observability.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(LoggerMiddleware(logger))

	r.Get("/", h.Health)
	r.Get("/success", h.Success)
	r.Post("/monobank", h.MonobankWebhook)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}

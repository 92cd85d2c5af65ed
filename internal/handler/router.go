// Package handler описывает HTTP API калькулятора.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/cloud-ru/estate-loan-calculator/internal/logging"
	"github.com/cloud-ru/estate-loan-calculator/internal/store"
	"github.com/cloud-ru/estate-loan-calculator/internal/tools"
	"github.com/cloud-ru/estate-loan-calculator/internal/tracing"
)

// NewRouter создает HTTP-роутер со всеми маршрутами и middleware
func NewRouter(reg tools.Registry, st store.Store, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.Middleware(logger))
	r.Use(tracing.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	r.Get("/healthz", healthzHandler())
	r.Get("/readyz", readyzHandler(st, logger))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/loan/schedule", scheduleHandler(reg, st, logger))
		r.Post("/loan/compare", compareHandler(reg, logger))
		r.Get("/loan/schedules/{id}", getScheduleHandler(st, logger))
		r.Get("/loan/schedules/{id}/csv", scheduleCSVHandler(st, logger))

		r.Get("/tools", listToolsHandler(reg))
		r.Post("/tools/{name}", callToolHandler(reg, logger))

		r.Get("/stats", statsHandler(reg))
	})

	return r
}

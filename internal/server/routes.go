package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"querysearch/internal/handlers"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(dispatcher handlers.Dispatcher, status handlers.StatusProvider) {
	queryHandler := handlers.NewQueryHandler(dispatcher, s.Cfg)
	probeHandler := handlers.NewProbeHandler(status)

	// Probes and metrics
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Search page: GET renders the form, POST with the submit flag runs the query
	s.App.Get("/", queryHandler.Index)
	s.App.Post("/", queryHandler.Submit)

	// Legacy form target
	s.App.Get("/Query.php", queryHandler.Index)
	s.App.Post("/Query.php", queryHandler.Submit)
}

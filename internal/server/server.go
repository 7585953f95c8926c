// Package server exposes the study service as a JSON HTTP API.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/at-ishikawa/momentum/internal/inference"
	"github.com/at-ishikawa/momentum/internal/study"
	"github.com/at-ishikawa/momentum/internal/tracker"
)

type Server struct {
	service        *study.Service
	buddy          inference.Client
	today          func() tracker.Date
	allowedOrigins []string
	metrics        *metrics
}

// NewServer serves service. today returns the calendar date requests are processed for.
func NewServer(service *study.Service, buddy inference.Client, today func() tracker.Date, allowedOrigins []string) *Server {
	return &Server{
		service:        service,
		buddy:          buddy,
		today:          today,
		allowedOrigins: allowedOrigins,
		metrics:        newMetrics(),
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.loggingMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/profile", s.handleCreateProfile)
		r.Get("/profile", s.handleGetProfile)
		r.Get("/dashboard", s.handleDashboard)
		r.Put("/tasks/{index}", s.handleUpdateTask)
		r.Post("/finalize", s.handleFinalize)
		r.Get("/stats/weekly", s.handleWeeklyStats)
		r.Get("/stats/progress", s.handleProgress)
		r.Get("/history", s.handleHistory)
		r.Get("/badges", s.handleBadges)
		r.Post("/buddy", s.handleBuddy)
	})
	return r
}

// Handler wraps Routes with CORS for the allowed origins and serves HTTP/2 without TLS.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         3600,
	})
	return c.Handler(h2c.NewHandler(s.Routes(), &http2.Server{}))
}

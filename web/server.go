/* server.go
 * Contains the router for the HTTP api and the JSON response helpers
 */

package web

import (
	"encoding/json"
	"net/http"

	"bracket-pool/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// NewServer creates a server for the given configuration
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Server{
		api:           cfg.API,
		log:           logger.WithField("component", "web"),
		validate:      validator.New(),
		webhookSecret: cfg.WebhookSecret,
	}
}

// Router builds the chi router with every route and middleware
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(requestIDMiddleware(s.log))
	r.Use(metrics.Middleware(routePattern))
	r.Use(s.loggingMiddleware)

	r.Get("/healthz", s.HealthzHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/leaderboard", s.LeaderboardHandler)
		r.Get("/master-bracket", s.MasterBracketHandler)
		r.Get("/bracket-teams", s.TeamsHandler)
		r.Get("/info", s.InfoHandler)
		r.Get("/scoreboard", s.ScoreboardHandler)
		r.Route("/entries/{userID}", func(r chi.Router) {
			r.Get("/", s.GetEntryHandler)
			r.Put("/", s.SetEntryHandler)
			r.Get("/end-rounds", s.EndRoundsHandler)
		})
	})

	r.Post("/webhooks/refresh", s.RefreshWebhookHandler)
	return r
}

// routePattern returns the matched chi route so metrics are labelled by route rather than by user id
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		return rctx.RoutePattern()
	}
	return ""
}

// respondJSON sends a JSON response with the given status code and payload
func (s *Server) respondJSON(w http.ResponseWriter, r *http.Request, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logFromRequest(r, s.log).WithError(err).Error("failed to encode response")
	}
}

// respondError sends a JSON error response
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.respondJSON(w, r, status, ErrorResponse{Error: message})
}

// Package server exposes the sizing calculator over a small JSON API.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/eddiefleurent/schrute_sizer/internal/guidance"
	"github.com/eddiefleurent/schrute_sizer/internal/models"
	"github.com/eddiefleurent/schrute_sizer/internal/report"
	"github.com/eddiefleurent/schrute_sizer/internal/sizing"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Config holds the HTTP server settings.
type Config struct {
	Port      int
	AuthToken string
	// Target band forwarded to request validation.
	MinGoalPct float64
	MaxGoalPct float64
}

// Server wires the calculator and advisor behind a chi router.
type Server struct {
	router    *chi.Mux
	server    *http.Server
	calc      *sizing.Calculator
	advisor   *guidance.Advisor
	logger    *logrus.Logger
	port      int
	authToken string
	minGoal   float64
	maxGoal   float64
}

// PlanResponse is the API payload for one evaluated request.
type PlanResponse struct {
	ID       string             `json:"id"`
	Plan     models.Plan        `json:"plan"`
	Guidance []guidance.Verdict `json:"guidance"`
	CopyText string             `json:"copy_text"`
}

// NewServer builds the API server around an existing calculator and advisor.
func NewServer(cfg Config, calc *sizing.Calculator, advisor *guidance.Advisor, logger *logrus.Logger) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		calc:      calc,
		advisor:   advisor,
		logger:    logger,
		port:      cfg.Port,
		authToken: cfg.AuthToken,
		minGoal:   cfg.MinGoalPct,
		maxGoal:   cfg.MaxGoalPct,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(15 * time.Second))

	if s.authToken != "" {
		s.router.Use(s.authMiddleware)
	}

	s.router.Post("/api/plan", s.handlePlan)
	s.router.Get("/health", s.handleHealth)
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		token := r.Header.Get("X-Auth-Token")
		if token == "" {
			token = r.URL.Query().Get("token")
		}

		if token != s.authToken {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Start runs the HTTP server until Shutdown or a listener error.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Infof("Starting size checker API on port %d", s.port)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	var req models.Request
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if err := req.Validate(s.minGoal, s.maxGoal); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	plan := s.calc.Evaluate(req)
	resp := PlanResponse{
		ID:       uuid.New().String(),
		Plan:     plan,
		Guidance: s.advisor.Review(plan),
		CopyText: report.CopyLine(plan),
	}

	s.logger.WithFields(logrus.Fields{
		"id":        resp.ID,
		"slot":      req.Slot.String(),
		"contracts": plan.Contracts,
		"net_gain":  plan.AcctGainTPNet,
	}).Info("plan computed")

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.WithError(err).Error("Failed to encode plan response")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(health); err != nil {
		s.logger.WithError(err).Error("Failed to encode health response")
	}
}

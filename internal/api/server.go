// Package api exposes the assessment engine, account management and
// appointment booking over HTTP.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/healthassist-server/internal/auth"
	"github.com/healthassist-server/internal/chat"
	"github.com/healthassist-server/internal/domain"
	"github.com/healthassist-server/internal/history"
	"github.com/healthassist-server/internal/middleware"
	"github.com/healthassist-server/internal/repository"
	"github.com/healthassist-server/internal/service"
	"github.com/healthassist-server/pkg/directory"
)

// Deps bundles everything the server needs. Users and Appointments are nil
// when running on the sqlite driver; the account routes then answer 503.
type Deps struct {
	Config       *domain.Config
	Logger       *logrus.Logger
	Assessor     *service.HealthAssessor
	History      history.Store
	Users        *repository.UserRepository
	Appointments *repository.AppointmentRepository
	Tokens       *auth.TokenManager
	Directory    *directory.Client
	Chat         *chat.Responder
}

// Server represents the HTTP server
type Server struct {
	deps   Deps
	router *gin.Engine
	server *http.Server
}

// NewServer creates a new HTTP server instance
func NewServer(deps Deps) *Server {
	if deps.Config.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS())
	if deps.Config.RateLimit.Enabled {
		router.Use(middleware.NewRateLimiter(&deps.Config.RateLimit).Handler())
	}

	s := &Server{
		deps:   deps,
		router: router,
	}
	s.setupRoutes()
	return s
}

// Router returns the underlying handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the HTTP server until the context is cancelled, then shuts
// down gracefully.
func (s *Server) Start(ctx context.Context) error {
	cfg := s.deps.Config.Server
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.deps.Logger.WithField("addr", addr).Info("HTTP server listening")
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return s.server.Shutdown(shutdownCtx)
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/ws/chat", s.handleChat)

	v1 := s.router.Group("/api/v1")
	// The websocket session stays outside the group: a per-request
	// deadline makes no sense for a long-lived chat connection.
	if timeout := s.deps.Config.Server.RequestTimeout; timeout > 0 {
		v1.Use(middleware.RequestTimeout(timeout))
	}
	{
		assess := v1.Group("/assess")
		assess.Use(middleware.OptionalAuth(s.deps.Tokens))
		{
			assess.POST("/risk", s.handleAssessRisk)
			assess.POST("/symptoms", s.handleAnalyzeSymptoms)
			assess.POST("/safety", s.handleCheckSafety)
			assess.POST("/lab", s.handleParseLabReport)
			assess.POST("/mental", s.handleScreenMentalHealth)
		}

		v1.GET("/mental/questions", s.handleScreeningQuestions)
		v1.GET("/treatments", s.handleTreatmentConditions)
		v1.GET("/treatments/:condition", s.handleTreatmentPlan)
		v1.GET("/hospitals", s.handleHospitalSearch)

		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/signup", s.handleSignup)
			authGroup.POST("/login", s.handleLogin)
		}

		protected := v1.Group("")
		protected.Use(middleware.RequireAuth(s.deps.Tokens))
		{
			protected.GET("/auth/me", s.handleMe)

			protected.GET("/history", s.handleListHistory)
			protected.GET("/history/export", s.handleExportHistory)
			protected.DELETE("/history/:id", s.handleDeleteHistory)

			protected.POST("/appointments", s.handleCreateAppointment)
			protected.GET("/appointments", s.handleListAppointments)
			protected.PATCH("/appointments/:id", s.handleUpdateAppointment)
			protected.DELETE("/appointments/:id", s.handleDeleteAppointment)
		}
	}
}

// handleHealth handles health check requests
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now(),
		"version":   "1.0.0",
	})
}

// Package server provides the HTTP server and routing for the strategy
// engine.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/aristath/daebak/internal/backup"
	"github.com/aristath/daebak/internal/database"
	"github.com/aristath/daebak/internal/events"
	historyhandlers "github.com/aristath/daebak/internal/modules/history/handlers"
	scoringhandlers "github.com/aristath/daebak/internal/modules/scoring/api/handlers"
	strategyhandlers "github.com/aristath/daebak/internal/modules/strategy/handlers"
)

// Config holds server configuration
type Config struct {
	Log              zerolog.Logger
	Port             int
	DevMode          bool
	DrawsDB          *database.DB
	ResultsDB        *database.DB
	EventBus         *events.Bus
	HistoryHandlers  *historyhandlers.Handler
	ScoringHandlers  *scoringhandlers.Handlers
	StrategyHandlers *strategyhandlers.Handler
	BackupService    *backup.Service
	StartupTime      time.Time
}

// Server represents the HTTP server
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger
	cfg    Config
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router: chi.NewRouter(),
		log:    cfg.Log.With().Str("component", "server").Logger(),
		cfg:    cfg,
	}

	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if !cfg.DevMode {
		s.router.Use(middleware.Compress(5))
	}

	s.setupRoutes()

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	if s.cfg.HistoryHandlers != nil {
		s.cfg.HistoryHandlers.RegisterRoutes(s.router)
	}
	if s.cfg.ScoringHandlers != nil {
		s.cfg.ScoringHandlers.RegisterRoutes(s.router)
	}
	if s.cfg.StrategyHandlers != nil {
		s.cfg.StrategyHandlers.RegisterRoutes(s.router)
	}

	systemHandlers := NewSystemHandlers(s.cfg, s.log)
	s.router.Get("/api/system/health", systemHandlers.HandleHealth)
	s.router.Post("/api/system/backup", systemHandlers.HandleTriggerBackup)

	if s.cfg.EventBus != nil {
		wsHandler := NewEventsStreamHandler(s.cfg.EventBus, s.log)
		s.router.Get("/api/ws", wsHandler.ServeHTTP)
	}
}

// Router exposes the mux for tests.
func (s *Server) Router() *chi.Mux { return s.router }

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.cfg.Port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

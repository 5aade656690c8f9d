// Package server provides the HTTP server implementation for the API.
// It handles routing, middleware configuration, and server lifecycle
// management, including graceful shutdown.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/uservault/backend/internal/auth"
	"github.com/uservault/backend/internal/config"
	"github.com/uservault/backend/internal/database"
	"github.com/uservault/backend/internal/handlers"
	"github.com/uservault/backend/internal/repository"
	"github.com/uservault/backend/internal/service"
	"github.com/uservault/backend/internal/uploads"
	"github.com/uservault/backend/migrations"
	"github.com/uservault/backend/scripts"
)

// Handlers contains all HTTP handlers for the application.
type Handlers struct {
	// AuthHandler manages registration, login, and token refresh
	AuthHandler *handlers.AuthHandler

	// UserHandler manages self-service profile endpoints
	UserHandler *handlers.UserHandler

	// AdminHandler manages the dashboard user-management endpoints
	AdminHandler *handlers.AdminHandler
}

// Server represents the API server. It encapsulates all server components
// and handles lifecycle management from initialization to graceful shutdown.
type Server struct {
	// Config contains application configuration
	Config *config.AppConfig

	// Db provides database access
	Db *database.Pool

	// Handlers contains all HTTP request handlers
	Handlers *Handlers

	// router handles HTTP routing
	router chi.Router

	// jwtService issues and validates tokens
	jwtService *auth.JWTService

	// userRepo is shared by the services and the auth middleware
	userRepo repository.UserRepository

	// uploadStore persists profile images
	uploadStore *uploads.Store

	// httpServer is the underlying HTTP server
	httpServer *http.Server
}

// NewServer creates a new server instance with all required components.
// Initialization follows dependency order: database (with migrations and
// seeding), auth providers, repositories, services, handlers, routes.
func NewServer(cfg *config.AppConfig) (*Server, error) {
	s := &Server{
		Config: cfg,
	}

	if err := s.setupDatabase(); err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	if err := s.setupUploads(); err != nil {
		return nil, fmt.Errorf("failed to set up uploads: %w", err)
	}

	s.setupHandlers()
	s.SetupRoutes()

	s.httpServer = &http.Server{
		Addr:         cfg.Server.ServerAddress(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s, nil
}

// setupDatabase connects to the database, runs migrations, and seeds the
// bootstrap admin account.
func (s *Server) setupDatabase() error {
	db, err := database.Connect(s.Config)
	if err != nil {
		return err
	}

	s.Db = db

	migrator := migrations.NewMigrator(db)
	if err := migrator.RunMigrations(context.Background()); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	seeder := scripts.NewSeeder(db, &s.Config.Seed)
	if err := seeder.SeedDatabase(context.Background()); err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	return nil
}

// setupUploads prepares the on-disk store for profile images.
func (s *Server) setupUploads() error {
	store, err := uploads.NewStore(&s.Config.Uploads)
	if err != nil {
		return err
	}

	s.uploadStore = store
	return nil
}

// setupHandlers wires repositories, services, and handlers.
func (s *Server) setupHandlers() {
	s.jwtService = auth.NewJWTService(&s.Config.JWT)
	s.userRepo = repository.NewUserRepository(s.Db)

	authService := service.NewAuthService(s.userRepo, s.jwtService)
	userService := service.NewUserService(s.userRepo)
	adminService := service.NewAdminService(s.userRepo)

	s.Handlers = &Handlers{
		AuthHandler:  handlers.NewAuthHandler(authService),
		UserHandler:  handlers.NewUserHandler(userService, s.uploadStore),
		AdminHandler: handlers.NewAdminHandler(adminService),
	}
}

// Start starts the HTTP server and blocks until the server errors or a
// shutdown signal arrives. On SIGINT or SIGTERM the server is shut down
// gracefully within the configured timeout.
func (s *Server) Start() error {
	serverErrors := make(chan error, 1)

	go func() {
		log.Info().
			Str("address", s.Config.Server.ServerAddress()).
			Msg("Starting server")

		serverErrors <- s.httpServer.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info().
			Str("signal", sig.String()).
			Msg("Shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), s.Config.Server.ShutdownTimeout)
		defer cancel()

		if err := s.Shutdown(ctx); err != nil {
			if closeErr := s.httpServer.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the server, waiting for in-flight
// requests before closing the database connection.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	log.Info().Msg("Server stopped gracefully")

	s.Db.Close()
	log.Info().Msg("Database connection closed")

	return nil
}

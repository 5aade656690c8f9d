package server

import (
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/uservault/backend/internal/auth"
	"github.com/uservault/backend/internal/constants"
	"github.com/uservault/backend/internal/middleware"
	"github.com/uservault/backend/internal/models"
	"github.com/uservault/backend/internal/utils"
)

// SetupRoutes configures the routes for the application.
//
// The configured routes include:
// - Health check and version endpoints (unprotected)
// - User authentication and self-service profile endpoints
// - Admin authentication and user-management endpoints
// - Static serving of uploaded profile images
//
// Route protection is handled through the auth middleware, which verifies
// the bearer token and re-fetches the principal on every request.
func (s *Server) SetupRoutes() {
	r := chi.NewRouter()

	// Base middleware
	r.Use(middleware.CORS(&s.Config.CORS))
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery())
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.SecurityHeaders())
	if s.Config.Logging.RequestLog {
		r.Use(middleware.RequestLogger())
	}

	jwtProvider := auth.NewJWTAuthProvider(s.jwtService)

	// Health check and version routes (unprotected)
	r.Group(func(r chi.Router) {
		r.Get(constants.HealthPath, func(w http.ResponseWriter, r *http.Request) {
			if err := s.Db.HealthCheck(r.Context()); err != nil {
				log.Error().Err(err).Msg("Health check failed")
				utils.Error(w, http.StatusServiceUnavailable, "Service is not healthy", nil)
				return
			}

			utils.OK(w, "Service is healthy", map[string]string{
				"status":  "healthy",
				"version": s.Config.App.Version,
			})
		})

		r.Get("/version", func(w http.ResponseWriter, r *http.Request) {
			utils.OK(w, "Version information", map[string]string{
				"version":     s.Config.App.Version,
				"environment": s.Config.App.Environment,
			})
		})
	})

	// API routes
	r.Route(constants.APIBasePath, func(r chi.Router) {
		// User-facing routes
		r.Route("/users", func(r chi.Router) {
			// Public endpoints
			r.Group(func(r chi.Router) {
				r.Post("/register", s.Handlers.AuthHandler.Register)
				r.Post("/login", s.Handlers.AuthHandler.Login(models.RoleUser))
				r.Post("/refresh-token", s.Handlers.AuthHandler.Refresh(models.RoleUser))
			})

			// Protected profile endpoints
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAuth(s.userRepo, jwtProvider))

				r.Get("/profile", s.Handlers.UserHandler.GetProfile)
				r.Put("/profile", s.Handlers.UserHandler.UpdateProfile)
				r.Post("/profile/image", s.Handlers.UserHandler.UploadProfileImage)
			})
		})

		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			// Public endpoints, scoped to admin credentials
			r.Group(func(r chi.Router) {
				r.Post("/login", s.Handlers.AuthHandler.Login(models.RoleAdmin))
				r.Post("/refresh-token", s.Handlers.AuthHandler.Refresh(models.RoleAdmin))
			})

			// Protected management endpoints
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAdmin(s.userRepo, jwtProvider))

				r.Route("/users", func(r chi.Router) {
					r.Get("/", s.Handlers.AdminHandler.ListUsers)
					r.Post("/", s.Handlers.AdminHandler.AddUser)
					r.Get("/{userID}", s.Handlers.AdminHandler.GetUser)
					r.Put("/{userID}", s.Handlers.AdminHandler.EditUser)
					r.Delete("/{userID}", s.Handlers.AdminHandler.DeleteUser)
				})
			})
		})
	})

	// Uploaded profile images are served as static files
	s.mountUploads(r)

	s.router = r
}

// mountUploads serves the upload directory under the configured base URL.
// Directory listings are refused.
func (s *Server) mountUploads(r chi.Router) {
	if s.uploadStore == nil {
		return
	}

	baseURL := strings.TrimSuffix(s.Config.Uploads.BaseURL, "/")
	fileServer := http.StripPrefix(baseURL, http.FileServer(neuteredFileSystem{http.Dir(s.uploadStore.Dir())}))

	r.Get(baseURL+"/*", func(w http.ResponseWriter, r *http.Request) {
		fileServer.ServeHTTP(w, r)
	})
}

// neuteredFileSystem wraps http.FileSystem to refuse directory listings.
type neuteredFileSystem struct {
	fs http.FileSystem
}

func (nfs neuteredFileSystem) Open(path string) (http.File, error) {
	f, err := nfs.fs.Open(path)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, os.ErrNotExist
	}

	return f, nil
}

// GetRouter returns the configured router. It is primarily used by tests.
func (s *Server) GetRouter() chi.Router {
	return s.router
}

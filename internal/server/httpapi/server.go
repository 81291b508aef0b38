// Package httpapi serves the roomsync HTTP contract with Fiber.
package httpapi

import (
	"context"
	"time"

	"github.com/dmitrijs2005/roomsync/internal/logging"
	"github.com/dmitrijs2005/roomsync/internal/server/auth"
	"github.com/dmitrijs2005/roomsync/internal/server/users"
	"github.com/gofiber/fiber/v2"
)

type Server struct {
	app     *fiber.App
	address string
	users   *users.Service
	tokens  *auth.Tokens
	anonKey string
	logger  logging.Logger
}

func NewServer(address, anonKey string, us *users.Service, tokens *auth.Tokens, l logging.Logger) *Server {
	s := &Server{
		address: address,
		users:   us,
		tokens:  tokens,
		anonKey: anonKey,
		logger:  l.With("module", "http_server"),
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "roomsync-devserver",
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
		DisableStartupMessage: true,
		UnescapePath:          true,
		ErrorHandler:          s.errorHandler,
	})
	s.routes()
	return s
}

// App exposes the Fiber application, mainly for app.Test in tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) routes() {
	s.app.Use(requestID(), s.accessLog())

	s.app.Get("/health", s.health)

	a := s.app.Group("/auth")
	a.Post("/signup", s.requireAnonKey(), s.signUp)
	a.Post("/signin", s.requireAnonKey(), s.signIn)
	a.Get("/session", s.session)
	a.Post("/signout", s.requireUser(), s.signOut)

	u := s.app.Group("/user", s.requireUser())
	u.Post("/complete-profile", s.completeProfile)
	u.Put("/profile", s.updateProfile)
	u.Get("/profile-full", s.profile)

	f := s.app.Group("/favorites", s.requireUser())
	f.Get("/", s.favorites)
	f.Post("/:roomId", s.addFavorite)
	f.Delete("/:roomId", s.removeFavorite)

	v := s.app.Group("/viewed", s.requireUser())
	v.Get("/", s.viewed)
	v.Post("/:roomId", s.addViewed)
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown", "err", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	return s.app.Listen(s.address)
}

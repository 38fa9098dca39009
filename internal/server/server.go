// package server contains middleware & handlers for the film list web service
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/desertthunder/films/internal/lists"
	"github.com/desertthunder/films/internal/models"
	"github.com/desertthunder/films/internal/shared"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Handler groups related endpoints and registers them on a router.
type Handler interface {
	Mount(r chi.Router)
}

// Accounts is the account surface the server depends on.
type Accounts interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Available(ctx context.Context, username string) (bool, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}

// Server serves the film list API.
type Server struct {
	lists    lists.Service
	accounts Accounts
	tokens   *TokenIssuer
	limiter  *IPRateLimiter
	conf     shared.ServerConfig
	logger   *log.Logger
}

// New creates a Server from the list engine, account service and configuration.
func New(svc lists.Service, accts Accounts, conf *shared.Config, logger *log.Logger) (*Server, error) {
	if conf.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("%w: auth.jwt_secret is required", shared.ErrInvalidConfig)
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Server{
		lists:    svc,
		accounts: accts,
		tokens:   NewTokenIssuer(conf.Auth.JWTSecret, conf.Auth.TokenTTL.Duration),
		limiter:  NewIPRateLimiter(conf.Auth.LoginRate, conf.Auth.LoginBurst),
		conf:     conf.Server,
		logger:   shared.WithLogger(logger, "component", "server"),
	}, nil
}

// ListenAndServe serves on the configured address until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.conf.Addr(),
		Handler:           s.Router(),
		ReadTimeout:       s.conf.ReadTimeout.Duration,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      s.conf.WriteTimeout.Duration,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

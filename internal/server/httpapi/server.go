// Package httpapi exposes the auth and session-lifecycle services over
// HTTP/JSON. It validates request shape before any service call, attaches the
// authenticated user id to the request context, and maps service outcomes to
// the response envelopes the browsing client expects.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dkoloskov/wellspring/internal/logging"
	"github.com/dkoloskov/wellspring/internal/server/config"
	"github.com/dkoloskov/wellspring/internal/server/models"
	"github.com/dkoloskov/wellspring/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

// UserService is the slice of the auth service the HTTP surface needs.
type UserService interface {
	Register(ctx context.Context, email, password string) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// SessionService is the slice of the session lifecycle service the HTTP
// surface needs.
type SessionService interface {
	ListPublic(ctx context.Context) ([]*models.PublishedSession, error)
	ListOwn(ctx context.Context, userID string) ([]*models.Session, error)
	GetOwn(ctx context.Context, userID, sessionID string) (*models.Session, error)
	SaveDraft(ctx context.Context, userID string, in services.SaveDraftInput) (*models.Session, error)
	Publish(ctx context.Context, userID, sessionID string) (*models.Session, error)
	Delete(ctx context.Context, userID, sessionID string) error
}

// ContentService hands out upload locations for authored content JSON.
type ContentService interface {
	Enabled() bool
	GetPresignedPutURL(ctx context.Context) (key string, url string, err error)
}

type Server struct {
	addr        string
	logger      logging.Logger
	users       UserService
	sessions    SessionService
	content     ContentService
	jwtSecret   []byte
	corsOrigins []string
}

func NewServer(cfg *config.Config, l logging.Logger, us UserService, ss SessionService, cs ContentService) *Server {
	return &Server{
		addr:        cfg.EndpointAddr,
		logger:      l.With("module", "httpapi"),
		users:       us,
		sessions:    ss,
		content:     cs,
		jwtSecret:   []byte(cfg.SecretKey),
		corsOrigins: cfg.CORSAllowedOrigins,
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

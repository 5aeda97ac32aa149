package handlers

import (
	"net/http"

	"github.com/abrezinsky/totebet/internal/auth"
	"github.com/abrezinsky/totebet/internal/services"
)

// Handlers holds all HTTP handler dependencies
type Handlers struct {
	Tote    services.ToteServicer
	Auth    *auth.Auth
	Feed    http.HandlerFunc
	Metrics http.Handler
	Health  http.HandlerFunc
	Log     HTTPLogger
}

// HTTPLogger is an interface for loggers that support HTTP logging control
type HTTPLogger interface {
	IsHTTPLoggingEnabled() bool
}

// New creates a new Handlers instance with all dependencies.
// feed, metrics and health are optional; their routes are only mounted when set.
func New(
	tote services.ToteServicer,
	stewardAuth *auth.Auth,
	feed http.HandlerFunc,
	metrics http.Handler,
	health http.HandlerFunc,
	log HTTPLogger,
) *Handlers {
	return &Handlers{
		Tote:    tote,
		Auth:    stewardAuth,
		Feed:    feed,
		Metrics: metrics,
		Health:  health,
		Log:     log,
	}
}

// NoopHTTPLogger is a test logger that always returns false for HTTP logging
type NoopHTTPLogger struct{}

func (NoopHTTPLogger) IsHTTPLoggingEnabled() bool { return false }

// NewForTesting creates a Handlers instance with a known steward password
func NewForTesting(tote services.ToteServicer) *Handlers {
	return &Handlers{
		Tote: tote,
		Auth: auth.New("test-password"),
		Log:  NoopHTTPLogger{},
	}
}

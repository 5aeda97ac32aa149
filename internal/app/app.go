package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/abrezinsky/totebet/internal/auth"
	"github.com/abrezinsky/totebet/internal/cli"
	"github.com/abrezinsky/totebet/internal/config"
	"github.com/abrezinsky/totebet/internal/handlers"
	"github.com/abrezinsky/totebet/internal/logger"
	"github.com/abrezinsky/totebet/internal/metrics"
	"github.com/abrezinsky/totebet/internal/repository"
	"github.com/abrezinsky/totebet/internal/services"
	"github.com/abrezinsky/totebet/internal/tote"
	"github.com/abrezinsky/totebet/internal/websocket"
)

const shutdownTimeout = 5 * time.Second

// App holds all application dependencies for one race
type App struct {
	log      logger.Logger
	cfg      *config.Config
	repo     *repository.Repository
	race     *tote.Race
	tote     *services.ToteService
	hub      *websocket.Hub
	metrics  *metrics.Metrics
	handlers *handlers.Handlers
}

// New opens the journal, creates the race described by cfg and wires the
// betting service to its collaborators
func New(log logger.Logger, cfg *config.Config, stewardAuth *auth.Auth) (*App, error) {
	commissions, err := cfg.RaceCommissions()
	if err != nil {
		return nil, fmt.Errorf("race commissions: %w", err)
	}

	date := cfg.Race.Date
	if date == "" {
		date = time.Now().Format(time.DateOnly)
	}
	race, err := tote.NewRace(cfg.Race.Name, date, commissions)
	if err != nil {
		return nil, fmt.Errorf("create race: %w", err)
	}

	repo, err := repository.New(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	svc := services.NewToteService(log, repo, race, m)
	if err := svc.Open(context.Background()); err != nil {
		repo.Close()
		return nil, fmt.Errorf("open race: %w", err)
	}
	if cfg.Server.BaseURL != "" {
		svc.SetBaseURL(cfg.Server.BaseURL)
	}

	// Initialize WebSocket hub with DI
	hub := websocket.New(log, svc, m)
	hub.Start()
	svc.SetBroadcaster(hub)

	h := handlers.New(svc, stewardAuth, hub.ServeWs, m.Handler(), metrics.HealthHandler(svc.Ping), log)

	log.Info("Race open", "race_id", race.ID(), "name", race.Name(), "date", race.Date())

	return &App{
		log:      log,
		cfg:      cfg,
		repo:     repo,
		race:     race,
		tote:     svc,
		hub:      hub,
		metrics:  m,
		handlers: h,
	}, nil
}

// Router returns the configured HTTP router
func (a *App) Router() chi.Router {
	return a.handlers.Router()
}

// Tote returns the betting service for the race
func (a *App) Tote() services.ToteServicer {
	return a.tote
}

// Close releases the journal
func (a *App) Close() error {
	return a.repo.Close()
}

// RunCLI runs an interactive betting session until the result is entered
func (a *App) RunCLI(ctx context.Context, in io.Reader, out io.Writer) error {
	return cli.New(a.log, a.tote, out).Run(ctx, in)
}

// Run serves the HTTP API on addr until ctx is cancelled
func (a *App) Run(ctx context.Context, addr string) error {
	if a.cfg.Server.BaseURL == "" {
		baseURL := fmt.Sprintf("http://%s:%d", getPreferredIP(realNetworkProvider{}), a.cfg.Server.Port)
		a.tote.SetBaseURL(baseURL)
		a.log.Info("Default base URL set", "url", baseURL)
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		a.log.Info("Server starting", "addr", addr)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	a.log.Info("Server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/abrezinsky/totebet/internal/auth"
	"github.com/abrezinsky/totebet/internal/config"
	"github.com/abrezinsky/totebet/internal/logger"
)

func createTestApp(t *testing.T) *App {
	t.Helper()

	cfg := config.Default()
	cfg.Race.Date = "2026-10-19"
	app, err := New(logger.NewDiscard(), cfg, auth.New("test-password"))
	if err != nil {
		t.Fatalf("failed to create app: %v", err)
	}
	t.Cleanup(func() { app.Close() })
	return app
}

func TestNew_InitializesApp(t *testing.T) {
	app := createTestApp(t)

	if app.handlers == nil || app.repo == nil || app.tote == nil || app.hub == nil || app.metrics == nil {
		t.Fatal("expected all dependencies to be initialized")
	}
	if app.race.Name() != config.DefaultRaceName {
		t.Errorf("expected default race name, got %q", app.race.Name())
	}

	// The race is journaled on open
	if _, err := app.repo.GetRace(context.Background(), app.race.ID()); err != nil {
		t.Errorf("expected race in journal: %v", err)
	}
}

func TestNew_DefaultsDateToToday(t *testing.T) {
	cfg := config.Default()
	app, err := New(logger.NewDiscard(), cfg, auth.New("pw"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer app.Close()

	if app.race.Date() != time.Now().Format(time.DateOnly) {
		t.Errorf("expected today's date, got %q", app.race.Date())
	}
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"bad commission", func(c *config.Config) { c.Race.Commissions = map[string]string{"W": "2"} }, "race commissions"},
		{"unknown product", func(c *config.Config) { c.Race.Commissions = map[string]string{"Q": "0.1"} }, "race commissions"},
		{"bad db path", func(c *config.Config) { c.Database.Path = "/nonexistent/path/db.sqlite" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)

			_, err := New(logger.NewDiscard(), cfg, auth.New("pw"))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != "" && !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestApp_Router_ServesRequests(t *testing.T) {
	app := createTestApp(t)
	router := app.Router()

	body := bytes.NewBufferString(`{"product":"W","selections":["3"],"stake":"4"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/bets", body))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	for _, path := range []string{"/api/race", "/healthz", "/metrics"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, rec.Code)
		}
	}

	// Metrics reflect the accepted bet
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), `totebet_bets_placed_total{product="W"} 1`) {
		t.Errorf("expected bet counter in metrics output")
	}
}

func TestApp_RunCLI(t *testing.T) {
	app := createTestApp(t)

	var out bytes.Buffer
	err := app.RunCLI(context.Background(), strings.NewReader("Bet:W:1:5\nBet:W:2:5\nResult:1:2:3\n"), &out)
	if err != nil {
		t.Fatalf("RunCLI: %v", err)
	}

	if !strings.Contains(out.String(), "W:1:$0.85\n") {
		t.Errorf("unexpected output:\n%s", out.String())
	}

	// Dividends are journaled as well as printed
	records, err := app.repo.ListDividends(context.Background(), app.race.ID())
	if err != nil {
		t.Fatalf("ListDividends: %v", err)
	}
	if len(records) != 5 {
		t.Errorf("expected 5 journaled dividends, got %d", len(records))
	}
}

func TestApp_Run_ServesUntilCancelled(t *testing.T) {
	app := createTestApp(t)

	// Reserve a free port
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx, addr) }()

	var resp *http.Response
	for i := 0; i < 50; i++ {
		resp, err = http.Get("http://" + addr + "/api/race")
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("server never came up: %v", err)
	}
	var info map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&info)
	resp.Body.Close()
	if info["id"] != app.race.ID() {
		t.Errorf("unexpected race id %v", info["id"])
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected clean shutdown, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}

func TestApp_Run_BindError(t *testing.T) {
	app := createTestApp(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	// Address already in use
	if err := app.Run(context.Background(), ln.Addr().String()); err == nil {
		t.Error("expected bind error")
	}
}

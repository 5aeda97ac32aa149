package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/abrezinsky/totebet/internal/auth"
	"github.com/abrezinsky/totebet/internal/handlers"
	"github.com/abrezinsky/totebet/internal/logger"
	"github.com/abrezinsky/totebet/internal/repository/mock"
	"github.com/abrezinsky/totebet/internal/services"
	"github.com/abrezinsky/totebet/internal/testutil"
)

type testSetup struct {
	handlers   *handlers.Handlers
	router     chi.Router
	tote       *services.ToteService
	repo       *mock.Repository
	authCookie *http.Cookie
}

// newTestSetup builds handlers over an open race journaled to in-memory SQLite
func newTestSetup(t *testing.T) *testSetup {
	t.Helper()

	repo := mock.NewRepository(testutil.NewTestRepository(t))
	race := testutil.NewTestRace(t)
	svc := services.NewToteService(logger.NewDiscard(), repo, race, nil)
	if err := svc.Open(context.Background()); err != nil {
		t.Fatalf("failed to open race: %v", err)
	}

	h := handlers.NewForTesting(svc)

	// Login to get a session cookie for steward requests
	token, _ := h.Auth.Login("test-password")
	authCookie := &http.Cookie{Name: auth.CookieName, Value: token}

	return &testSetup{
		handlers:   h,
		router:     h.Router(),
		tote:       svc,
		repo:       repo,
		authCookie: authCookie,
	}
}

func (s *testSetup) do(t *testing.T, method, path string, body interface{}, authed bool) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.AddCookie(s.authCookie)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testSetup) placeBet(t *testing.T, product string, selections []string, stake string) handlers.BetResponse {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/api/bets", handlers.PlaceBetRequest{Product: product, Selections: selections, Stake: stake}, false)
	if rec.Code != http.StatusCreated {
		t.Fatalf("place bet: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp handlers.BetResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode bet: %v", err)
	}
	return resp
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handlers.APIError {
	t.Helper()

	var apiErr handlers.APIError
	if err := json.NewDecoder(rec.Body).Decode(&apiErr); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return apiErr
}

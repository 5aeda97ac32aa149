package handlers_test

import (
	"net/http"
	"testing"

	"github.com/abrezinsky/totebet/internal/auth"
	"github.com/abrezinsky/totebet/internal/handlers"
)

func TestHandleLogin_Success(t *testing.T) {
	setup := newTestSetup(t)

	rec := setup.do(t, http.MethodPost, "/api/admin/login", handlers.LoginRequest{Password: "test-password"}, false)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var session *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName {
			session = c
		}
	}
	if session == nil || session.Value == "" {
		t.Fatal("expected session cookie to be set")
	}
	if !setup.handlers.Auth.ValidateSession(session.Value) {
		t.Error("expected session cookie to be a valid session")
	}
}

func TestHandleLogin_WrongPassword(t *testing.T) {
	setup := newTestSetup(t)

	rec := setup.do(t, http.MethodPost, "/api/admin/login", handlers.LoginRequest{Password: "wrong"}, false)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("expected no cookie on failed login")
	}
	if apiErr := decodeError(t, rec); apiErr.Message != "Invalid password" {
		t.Errorf("unexpected message %q", apiErr.Message)
	}
}

func TestHandleLogin_EmptyBody(t *testing.T) {
	setup := newTestSetup(t)

	rec := setup.do(t, http.MethodPost, "/api/admin/login", nil, false)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleLogout(t *testing.T) {
	setup := newTestSetup(t)

	rec := setup.do(t, http.MethodPost, "/api/admin/logout", nil, true)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if setup.handlers.Auth.ValidateSession(setup.authCookie.Value) {
		t.Error("expected session to be invalidated")
	}

	// The old cookie no longer opens steward routes
	rec = setup.do(t, http.MethodGet, "/api/admin/bets", nil, true)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 after logout, got %d", rec.Code)
	}
}

func TestHandleLogout_WithoutSession(t *testing.T) {
	setup := newTestSetup(t)

	rec := setup.do(t, http.MethodPost, "/api/admin/logout", nil, false)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

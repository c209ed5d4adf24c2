package auth_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/studymatch/internal/app/system/auth"
	"go.uber.org/zap"
)

const testKey = "0123456789abcdef0123456789abcdef"

func newManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	sm, err := auth.NewSessionManager(testKey, "studymatch-session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	return sm
}

func TestNewSessionManager_RejectsShortKey(t *testing.T) {
	_, err := auth.NewSessionManager("short", "s", "", false, zap.NewNop())
	if err == nil {
		t.Fatal("expected error for short session key")
	}
}

func TestRequireSignedIn_Unauthorized(t *testing.T) {
	sm := newManager(t)

	handler := sm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	}))

	req := httptest.NewRequest("GET", "/api/user/me", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if !strings.Contains(rec.Body.String(), "unauthorized") {
		t.Errorf("body = %q, want JSON unauthorized message", rec.Body.String())
	}
}

func TestRequireSignedIn_PassesWithUser(t *testing.T) {
	sm := newManager(t)

	called := false
	handler := sm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		u, ok := auth.CurrentUser(r)
		if !ok || u.ID != "abc" {
			t.Errorf("CurrentUser = %+v, %v", u, ok)
		}
	}))

	req := auth.WithTestUser(httptest.NewRequest("GET", "/api/user/me", nil),
		&auth.SessionUser{ID: "abc", Name: "Test"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !called {
		t.Error("expected handler to run")
	}
}

func TestSignInSetsSessionCookie(t *testing.T) {
	sm := newManager(t)

	req := httptest.NewRequest("GET", "/auth/google/callback", nil)
	rec := httptest.NewRecorder()
	if err := sm.SignIn(rec, req, "user123"); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie to be set")
	}

	// Round-trip: the cookie should authenticate a follow-up request.
	req2 := httptest.NewRequest("GET", "/api/user/me", nil)
	for _, c := range cookies {
		req2.AddCookie(c)
	}

	var got *auth.SessionUser
	handler := sm.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.CurrentUser(r)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), req2)

	if got == nil || got.ID != "user123" {
		t.Errorf("loaded user = %+v, want ID user123", got)
	}
}

func TestSignOutClearsSession(t *testing.T) {
	sm := newManager(t)

	req := httptest.NewRequest("POST", "/logout", nil)
	rec := httptest.NewRecorder()
	if err := sm.SignOut(rec, req); err != nil {
		t.Fatalf("SignOut failed: %v", err)
	}

	for _, c := range rec.Result().Cookies() {
		if c.MaxAge >= 0 {
			t.Errorf("expected expired cookie, got MaxAge %d", c.MaxAge)
		}
	}
}

package testutil

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/dalemusser/studymatch/internal/app/system/auth"
	"github.com/dalemusser/studymatch/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// WithUser adds a user to the request context for testing authenticated
// handlers. This bypasses the session middleware.
func WithUser(r *http.Request, u models.User) *http.Request {
	sessionUser := &auth.SessionUser{
		ID:     u.ID.Hex(),
		Name:   u.Name,
		Email:  u.Email,
		Avatar: u.Avatar,
	}
	return auth.WithTestUser(r, sessionUser)
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string, body io.Reader) *http.Request {
	return httptest.NewRequest(method, target, body)
}

// NewAuthenticatedRequest creates an HTTP request with a user in context.
func NewAuthenticatedRequest(method, target string, body io.Reader, u models.User) *http.Request {
	return WithUser(httptest.NewRequest(method, target, body), u)
}

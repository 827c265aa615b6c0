// internal/testutil/http.go
package testutil

import (
	"context"
	"net/http"

	"github.com/filehaven/filehaven/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// WithToken attaches a credential token to the request, bypassing the
// auth middleware.
func WithToken(r *http.Request, token string) *http.Request {
	return r.WithContext(auth.WithToken(r.Context(), token))
}

package identity_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	uierrors "github.com/filehaven/filehaven/internal/app/features/errors"
	"github.com/filehaven/filehaven/internal/app/features/identity"
	"go.uber.org/zap"
)

func TestSyncRequiresWebhookToken(t *testing.T) {
	// Token checks and body validation run before the service is
	// touched, so no backing store is needed here.
	h := identity.NewHandler(nil, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop(), "hook-secret")

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"missing token", "", http.StatusForbidden},
		{"wrong token", "guess", http.StatusForbidden},
		{"correct token", "hook-secret", http.StatusBadRequest}, // passes the gate, fails on the body
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/identity/sync", strings.NewReader("{not json"))
			if tc.token != "" {
				req.Header.Set("X-Webhook-Token", tc.token)
			}
			rec := httptest.NewRecorder()
			h.Sync(rec, req)

			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestSyncOpenWhenUnconfigured(t *testing.T) {
	h := identity.NewHandler(nil, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop(), "")

	req := httptest.NewRequest(http.MethodPost, "/api/identity/sync", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.Sync(rec, req)

	// No configured secret means the gate is off; the malformed body
	// is what gets rejected.
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

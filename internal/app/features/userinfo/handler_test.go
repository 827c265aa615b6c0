package userinfo_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/filehaven/filehaven/internal/app/blob"
	uierrors "github.com/filehaven/filehaven/internal/app/features/errors"
	"github.com/filehaven/filehaven/internal/app/features/userinfo"
	"github.com/filehaven/filehaven/internal/app/service/library"
	"github.com/filehaven/filehaven/internal/app/system/metrics"
	"github.com/filehaven/filehaven/internal/testutil"
	"go.uber.org/zap"
)

func newHandler(t *testing.T) (*userinfo.Handler, *testutil.Fixtures) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	blobs, err := blob.NewLocal(t.TempDir(), "/api/files/blob")
	if err != nil {
		t.Fatalf("blob store: %v", err)
	}
	svc := library.New(db, blobs, metrics.New(), zap.NewNop())
	return userinfo.NewHandler(svc, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop()),
		testutil.NewFixtures(t, db)
}

type userInfoResponse struct {
	IsAuthenticated bool   `json:"isAuthenticated"`
	Name            string `json:"name"`
	Email           string `json:"email"`
}

func TestServeUserInfoAnonymous(t *testing.T) {
	h, _ := newHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	rec := httptest.NewRecorder()
	h.ServeUserInfo(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp userInfoResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.IsAuthenticated {
		t.Error("anonymous caller reported as authenticated")
	}
}

func TestServeUserInfoAuthenticated(t *testing.T) {
	h, fix := newHandler(t)
	ctx, cancel := testutil.TestContext()
	t.Cleanup(cancel)
	fix.CreateUser(ctx, "issuer|alice", "Alice Jones", testutil.Member("org-a"))

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req = testutil.WithToken(req, "issuer|alice")
	rec := httptest.NewRecorder()
	h.ServeUserInfo(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp userInfoResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !resp.IsAuthenticated || resp.Name != "Alice Jones" {
		t.Errorf("response = %+v", resp)
	}
}

func TestServeUserInfoUnknownCredential(t *testing.T) {
	h, _ := newHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req = testutil.WithToken(req, "issuer|nobody")
	rec := httptest.NewRecorder()
	h.ServeUserInfo(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp userInfoResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.IsAuthenticated {
		t.Error("unknown credential reported as authenticated")
	}
}

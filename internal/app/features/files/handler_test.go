package files_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/filehaven/filehaven/internal/app/blob"
	uierrors "github.com/filehaven/filehaven/internal/app/features/errors"
	"github.com/filehaven/filehaven/internal/app/features/files"
	"github.com/filehaven/filehaven/internal/app/service/library"
	"github.com/filehaven/filehaven/internal/app/system/auth"
	"github.com/filehaven/filehaven/internal/app/system/metrics"
	"github.com/filehaven/filehaven/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newValidationHandler() *files.Handler {
	// Validation failures short-circuit before the service is touched.
	return files.NewHandler(nil, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())
}

type serviceEnv struct {
	svc *library.Service
	fix *testutil.Fixtures
}

func newServiceEnv(t *testing.T, db *mongo.Database) *serviceEnv {
	t.Helper()

	blobs, err := blob.NewLocal(t.TempDir(), "/api/files/blob")
	if err != nil {
		t.Fatalf("blob store: %v", err)
	}
	return &serviceEnv{
		svc: library.New(db, blobs, metrics.New(), zap.NewNop()),
		fix: testutil.NewFixtures(t, db),
	}
}

func TestMalformedFileID(t *testing.T) {
	h := newValidationHandler()

	tests := []struct {
		name    string
		serve   http.HandlerFunc
		method  string
		urlPath string
	}{
		{"delete", h.Delete, http.MethodDelete, "/api/files/not-an-id"},
		{"restore", h.Restore, http.MethodPost, "/api/files/not-an-id/restore"},
		{"favorite", h.Favorite, http.MethodPost, "/api/files/not-an-id/favorite"},
		{"download", h.Download, http.MethodGet, "/api/files/not-an-id/download"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.urlPath, nil)
			req = testutil.WithChiURLParam(req, "id", "not-an-id")

			rec := httptest.NewRecorder()
			tc.serve(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestMalformedJSONBody(t *testing.T) {
	h := newValidationHandler()

	tests := []struct {
		name    string
		serve   http.HandlerFunc
		urlPath string
	}{
		{"upload-url", h.UploadURL, "/api/files/upload-url"},
		{"create", h.Create, "/api/files"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tc.urlPath, strings.NewReader("{not json"))

			rec := httptest.NewRecorder()
			tc.serve(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			var body map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("error body is not JSON: %v", err)
			}
			if body["error"] == "" {
				t.Error("error body missing message")
			}
		})
	}
}

func TestAccessErrorsHideResourceExistence(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	t.Cleanup(cancel)

	env := newServiceEnv(t, db)
	alice := env.fix.CreateUser(ctx, "issuer|alice", "Alice", testutil.Member("org-a"))
	env.fix.CreateUser(ctx, "issuer|bob", "Bob", testutil.Member("org-b"))
	file := env.fix.CreateFile(ctx, "org-a", alice.ID, "secret.pdf", "pdf")

	h := files.NewHandler(env.svc, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())

	// An outsider probing a real file and anyone probing a missing one
	// must not be able to tell org files apart by status code alone.
	req := httptest.NewRequest(http.MethodDelete, "/api/files/"+file.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", file.ID.Hex())
	req = testutil.WithToken(req, "issuer|bob")

	rec := httptest.NewRecorder()
	h.Delete(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("outsider delete status = %d, want 403", rec.Code)
	}

	// Same request with no credential at all gets the identical answer.
	anon := httptest.NewRequest(http.MethodDelete, "/api/files/"+file.ID.Hex(), nil)
	anon = testutil.WithChiURLParam(anon, "id", file.ID.Hex())

	rec2 := httptest.NewRecorder()
	h.Delete(rec2, anon)
	if rec2.Code != http.StatusForbidden {
		t.Errorf("anonymous delete status = %d, want 403", rec2.Code)
	}
	if rec.Body.String() != rec2.Body.String() {
		t.Errorf("denied bodies differ: %q vs %q", rec.Body.String(), rec2.Body.String())
	}
}

func TestRoutedUploadFlow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	t.Cleanup(cancel)

	env := newServiceEnv(t, db)
	env.fix.CreateUser(ctx, "issuer|alice", "Alice", testutil.Member("org-a"))

	h := files.NewHandler(env.svc, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())
	root := chi.NewRouter()
	root.Use(auth.Middleware)
	root.Mount("/api/files", files.Routes(h))
	srv := httptest.NewServer(root)
	t.Cleanup(srv.Close)

	do := func(method, path, body string) *http.Response {
		req, _ := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
		req.Header.Set("Authorization", "Bearer issuer|alice")
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("%s %s: %v", method, path, err)
		}
		return resp
	}

	// Reserve an upload target.
	resp := do(http.MethodPost, "/api/files/upload-url", `{"org_id":"org-a","name":"plan.pdf"}`)
	var target struct {
		BlobPath string `json:"blob_path"`
		URL      string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&target); err != nil {
		t.Fatalf("decoding upload target: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("upload-url status = %d, want 200", resp.StatusCode)
	}

	// PUT the bytes to the returned URL exactly as handed out.
	putResp := do(http.MethodPut, target.URL, "pdf bytes")
	putResp.Body.Close()
	if putResp.StatusCode != http.StatusCreated {
		t.Fatalf("PUT %s status = %d, want 201", target.URL, putResp.StatusCode)
	}

	// Register the file against the reserved key.
	createResp := do(http.MethodPost, "/api/files",
		`{"org_id":"org-a","name":"plan.pdf","kind":"pdf","blob_path":"`+target.BlobPath+`","blob_size":9}`)
	createResp.Body.Close()
	if createResp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", createResp.StatusCode)
	}

	// The bytes come back from the same URL.
	getResp := do(http.MethodGet, target.URL, "")
	defer getResp.Body.Close()
	if getResp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s status = %d, want 200", target.URL, getResp.StatusCode)
	}
	data, err := io.ReadAll(getResp.Body)
	if err != nil || string(data) != "pdf bytes" {
		t.Errorf("blob content = %q, %v", data, err)
	}
}

func TestRoutedCreateAndList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	t.Cleanup(cancel)

	env := newServiceEnv(t, db)
	env.fix.CreateUser(ctx, "issuer|alice", "Alice", testutil.Member("org-a"))

	h := files.NewHandler(env.svc, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())
	srv := httptest.NewServer(auth.Middleware(files.Routes(h)))
	t.Cleanup(srv.Close)

	create := func(body string) *http.Response {
		req, _ := http.NewRequest(http.MethodPost, srv.URL+"/", strings.NewReader(body))
		req.Header.Set("Authorization", "Bearer issuer|alice")
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("POST /: %v", err)
		}
		return resp
	}

	resp := create(`{"org_id":"org-a","name":"plan.pdf","kind":"pdf","blob_path":"org-a/p.pdf","blob_size":4}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/?org=org-a", nil)
	req.Header.Set("Authorization", "Bearer issuer|alice")
	listResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer listResp.Body.Close()

	var views []struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	}
	if err := json.NewDecoder(listResp.Body).Decode(&views); err != nil {
		t.Fatalf("decoding listing: %v", err)
	}
	if len(views) != 1 || views[0].Name != "plan.pdf" {
		t.Errorf("listing = %+v", views)
	}
	if views[0].URL == "" {
		t.Error("listing entry missing URL")
	}
}

package blob_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/filehaven/filehaven/internal/app/blob"
)

func TestLocalPutGetDelete(t *testing.T) {
	store, err := blob.NewLocal(t.TempDir(), "/api/files")
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	ctx := context.Background()

	key := "org-a/2026/08/abc123-report.pdf"
	if err := store.Put(ctx, key, strings.NewReader("pdf bytes"), &blob.PutOptions{ContentType: "application/pdf"}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	rc, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		t.Fatalf("reading blob: %v", err)
	}
	if string(data) != "pdf bytes" {
		t.Errorf("blob content = %q", data)
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, key); err == nil {
		t.Error("Get after Delete should fail")
	}

	// Deleting again is not an error.
	if err := store.Delete(ctx, key); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestLocalRejectsEscapingPaths(t *testing.T) {
	store, err := blob.NewLocal(t.TempDir(), "/api/files")
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}

	for _, key := range []string{"../outside", "a/../../outside"} {
		if _, err := store.GetFullPath(key); err == nil {
			t.Errorf("GetFullPath(%q) should fail", key)
		}
	}
}

func TestLocalURL(t *testing.T) {
	store, err := blob.NewLocal(t.TempDir(), "/api/files/")
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	if got := store.URL("org-a/x.txt"); got != "/api/files/org-a/x.txt" {
		t.Errorf("URL = %q", got)
	}
}

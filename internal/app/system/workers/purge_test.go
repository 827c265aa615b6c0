package workers_test

import (
	"strings"
	"testing"

	"github.com/filehaven/filehaven/internal/app/blob"
	"github.com/filehaven/filehaven/internal/app/service/library"
	"github.com/filehaven/filehaven/internal/app/system/metrics"
	"github.com/filehaven/filehaven/internal/app/system/workers"
	"github.com/filehaven/filehaven/internal/testutil"
	"go.uber.org/zap"
)

func TestStartRejectsBadSchedule(t *testing.T) {
	w := workers.NewPurgeWorker(nil, "every once in a while", zap.NewNop())
	if err := w.Start(); err == nil {
		t.Fatal("Start accepted a nonsense schedule")
	}
}

func TestRunOnceSweepsTrash(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	t.Cleanup(cancel)

	blobs, err := blob.NewLocal(t.TempDir(), "/api/files/blob")
	if err != nil {
		t.Fatalf("blob store: %v", err)
	}
	svc := library.New(db, blobs, metrics.New(), zap.NewNop())
	fix := testutil.NewFixtures(t, db)

	alice := fix.CreateUser(ctx, "issuer|alice", "Alice", testutil.Member("org-a"))
	file := fix.CreateFile(ctx, "org-a", alice.ID, "old.txt", "txt")
	if err := blobs.Put(ctx, file.BlobPath, strings.NewReader("bytes"), nil); err != nil {
		t.Fatalf("seeding blob: %v", err)
	}
	fix.TrashFile(ctx, file.ID)

	w := workers.NewPurgeWorker(svc, "@every 720h", zap.NewNop())
	stats, err := w.RunOnce(ctx)
	if err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if stats.Purged != 1 || stats.Failed != 0 {
		t.Errorf("stats = %+v", stats)
	}
}

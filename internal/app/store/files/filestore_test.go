package filestore_test

import (
	"errors"
	"testing"

	filestore "github.com/filehaven/filehaven/internal/app/store/files"
	"github.com/filehaven/filehaven/internal/domain/models"
	"github.com/filehaven/filehaven/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestCreateValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := filestore.New(db)
	owner := primitive.NewObjectID()

	tests := []struct {
		name string
		file models.File
	}{
		{"empty name", models.File{Kind: "pdf", OrgID: "org-a", UserID: owner, BlobPath: "org-a/x"}},
		{"bad kind", models.File{Name: "x", Kind: "exe", OrgID: "org-a", UserID: owner, BlobPath: "org-a/x"}},
		{"empty blob", models.File{Name: "x", Kind: "pdf", OrgID: "org-a", UserID: owner}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := store.Create(ctx, tc.file); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLifecycleActiveTrashActive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := filestore.New(db)
	owner := primitive.NewObjectID()

	created, err := store.Create(ctx, models.File{
		Name: "Budget.csv", Kind: "csv", OrgID: "org-a", UserID: owner,
		BlobPath: "org-a/2026/08/x-budget.csv",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.PendingDelete {
		t.Error("new file must start active")
	}

	// Trash it.
	if err := store.SetPendingDelete(ctx, created.ID, true); err != nil {
		t.Fatalf("SetPendingDelete: %v", err)
	}
	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.PendingDelete {
		t.Error("file should be pending delete")
	}

	// Trashing again is idempotent.
	if err := store.SetPendingDelete(ctx, created.ID, true); err != nil {
		t.Errorf("repeat SetPendingDelete: %v", err)
	}

	// Restore.
	if err := store.SetPendingDelete(ctx, created.ID, false); err != nil {
		t.Fatalf("restore: %v", err)
	}
	got, err = store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID after restore: %v", err)
	}
	if got.PendingDelete {
		t.Error("file should be active after restore")
	}
}

func TestSetPendingDeleteMissingFile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := filestore.New(db)
	err := store.SetPendingDelete(ctx, primitive.NewObjectID(), true)
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("got %v, want ErrNoDocuments", err)
	}
}

func TestListByOrgFiltering(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := filestore.New(db)
	fix := testutil.NewFixtures(t, db)
	owner := primitive.NewObjectID()

	report := fix.CreateFile(ctx, "org-a", owner, "Annual Report", "pdf")
	fix.CreateFile(ctx, "org-a", owner, "headshot", "image")
	trashed := fix.CreateFile(ctx, "org-a", owner, "old notes", "txt")
	fix.TrashFile(ctx, trashed.ID)
	fix.CreateFile(ctx, "org-b", owner, "other org", "pdf")

	t.Run("active only by default", func(t *testing.T) {
		list, err := store.ListByOrg(ctx, "org-a", filestore.Filter{})
		if err != nil {
			t.Fatalf("ListByOrg: %v", err)
		}
		if len(list) != 2 {
			t.Fatalf("got %d files, want 2", len(list))
		}
		for _, f := range list {
			if f.PendingDelete {
				t.Errorf("trashed file %q leaked into active list", f.Name)
			}
		}
	})

	t.Run("trash listing", func(t *testing.T) {
		list, err := store.ListByOrg(ctx, "org-a", filestore.Filter{PendingOnly: true})
		if err != nil {
			t.Fatalf("ListByOrg trash: %v", err)
		}
		if len(list) != 1 || list[0].ID != trashed.ID {
			t.Errorf("trash listing = %+v", list)
		}
	})

	t.Run("kind filter", func(t *testing.T) {
		list, err := store.ListByOrg(ctx, "org-a", filestore.Filter{Kind: "pdf"})
		if err != nil {
			t.Fatalf("ListByOrg kind: %v", err)
		}
		if len(list) != 1 || list[0].ID != report.ID {
			t.Errorf("kind listing = %+v", list)
		}
	})

	t.Run("case-folded text search", func(t *testing.T) {
		list, err := store.ListByOrg(ctx, "org-a", filestore.Filter{Text: "REPORT"})
		if err != nil {
			t.Fatalf("ListByOrg text: %v", err)
		}
		if len(list) != 1 || list[0].ID != report.ID {
			t.Errorf("text listing = %+v", list)
		}
	})

	t.Run("regex metacharacters are literal", func(t *testing.T) {
		list, err := store.ListByOrg(ctx, "org-a", filestore.Filter{Text: ".*"})
		if err != nil {
			t.Fatalf("ListByOrg metachars: %v", err)
		}
		if len(list) != 0 {
			t.Errorf("metacharacter search matched %d files", len(list))
		}
	})
}

func TestListPendingDeleteSpansOrgs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := filestore.New(db)
	fix := testutil.NewFixtures(t, db)
	owner := primitive.NewObjectID()

	a := fix.CreateFile(ctx, "org-a", owner, "a", "txt")
	b := fix.CreateFile(ctx, "org-b", owner, "b", "txt")
	fix.TrashFile(ctx, a.ID)
	fix.TrashFile(ctx, b.ID)
	fix.CreateFile(ctx, "org-a", owner, "keep", "txt")

	pending, err := store.ListPendingDelete(ctx)
	if err != nil {
		t.Fatalf("ListPendingDelete: %v", err)
	}
	if len(pending) != 2 {
		t.Errorf("got %d pending files, want 2", len(pending))
	}
}

func TestDeleteReportsCount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := filestore.New(db)
	fix := testutil.NewFixtures(t, db)

	f := fix.CreateFile(ctx, "org-a", primitive.NewObjectID(), "gone", "txt")

	n, err := store.Delete(ctx, f.ID)
	if err != nil || n != 1 {
		t.Fatalf("Delete = %d, %v", n, err)
	}
	n, err = store.Delete(ctx, f.ID)
	if err != nil || n != 0 {
		t.Errorf("second Delete = %d, %v; want 0, nil", n, err)
	}
}

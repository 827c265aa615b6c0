package access_test

import (
	"context"
	"errors"
	"testing"

	"github.com/filehaven/filehaven/internal/app/system/access"
	"github.com/filehaven/filehaven/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeResolver serves canned users keyed by token.
type fakeResolver struct {
	users map[string]*models.User
	err   error
}

func (f *fakeResolver) GetByToken(_ context.Context, token string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users[token], nil
}

func memberOf(orgID, role string) *models.User {
	return &models.User{
		ID:              primitive.NewObjectID(),
		TokenIdentifier: "issuer|user-123",
		FullName:        "Test User",
		Orgs:            []models.OrgMembership{{OrgID: orgID, Role: role}},
	}
}

func TestAuthorizeOrg(t *testing.T) {
	member := memberOf("org-a", models.RoleMember)
	resolver := &fakeResolver{users: map[string]*models.User{"tok-member": member}}
	gate := access.NewGate(resolver)
	ctx := context.Background()

	t.Run("member allowed", func(t *testing.T) {
		u, err := gate.AuthorizeOrg(ctx, "tok-member", "org-a")
		if err != nil {
			t.Fatalf("AuthorizeOrg: %v", err)
		}
		if u.ID != member.ID {
			t.Error("returned wrong user")
		}
	})

	t.Run("empty token denied", func(t *testing.T) {
		if _, err := gate.AuthorizeOrg(ctx, "", "org-a"); !errors.Is(err, access.ErrDenied) {
			t.Errorf("got %v, want ErrDenied", err)
		}
	})

	t.Run("unknown token denied", func(t *testing.T) {
		if _, err := gate.AuthorizeOrg(ctx, "tok-stranger", "org-a"); !errors.Is(err, access.ErrDenied) {
			t.Errorf("got %v, want ErrDenied", err)
		}
	})

	t.Run("non-member denied", func(t *testing.T) {
		if _, err := gate.AuthorizeOrg(ctx, "tok-member", "org-b"); !errors.Is(err, access.ErrDenied) {
			t.Errorf("got %v, want ErrDenied", err)
		}
	})

	t.Run("personal namespace allowed without membership", func(t *testing.T) {
		// The org id equals a substring of the token identifier, which
		// is how a user's personal space is addressed.
		if _, err := gate.AuthorizeOrg(ctx, "tok-member", "user-123"); err != nil {
			t.Errorf("personal namespace: %v", err)
		}
	})

	t.Run("resolver failure propagates", func(t *testing.T) {
		broken := access.NewGate(&fakeResolver{err: errors.New("db down")})
		if _, err := broken.AuthorizeOrg(ctx, "tok-member", "org-a"); err == nil || errors.Is(err, access.ErrDenied) {
			t.Errorf("got %v, want the storage error", err)
		}
	})
}

func TestAuthorizeFile(t *testing.T) {
	member := memberOf("org-a", models.RoleMember)
	gate := access.NewGate(&fakeResolver{users: map[string]*models.User{"tok-member": member}})
	ctx := context.Background()

	file := &models.File{ID: primitive.NewObjectID(), OrgID: "org-a", Name: "notes.txt"}

	if _, err := gate.AuthorizeFile(ctx, "tok-member", file); err != nil {
		t.Errorf("AuthorizeFile: %v", err)
	}
	if _, err := gate.AuthorizeFile(ctx, "tok-member", nil); !errors.Is(err, access.ErrNotFound) {
		t.Errorf("nil file: got %v, want ErrNotFound", err)
	}
	other := &models.File{OrgID: "org-b"}
	if _, err := gate.AuthorizeFile(ctx, "tok-member", other); !errors.Is(err, access.ErrDenied) {
		t.Errorf("foreign org: got %v, want ErrDenied", err)
	}
}

func TestCanMutateDeletion(t *testing.T) {
	uploader := memberOf("org-a", models.RoleMember)
	admin := memberOf("org-a", models.RoleAdmin)
	bystander := memberOf("org-a", models.RoleMember)

	file := &models.File{OrgID: "org-a", UserID: uploader.ID}

	tests := []struct {
		name string
		user *models.User
		want bool
	}{
		{"uploader", uploader, true},
		{"org admin", admin, true},
		{"other member", bystander, false},
		{"nil user", nil, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := access.CanMutateDeletion(tc.user, file); got != tc.want {
				t.Errorf("CanMutateDeletion = %v, want %v", got, tc.want)
			}
		})
	}
}

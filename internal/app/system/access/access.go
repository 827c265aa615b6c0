// internal/app/system/access/access.go
//
// Package access is the single authorization choke point. Every
// org-scoped and file-scoped operation passes through the Gate before
// touching data. A missing credential, an unknown credential, and a
// known user outside the org all produce the same ErrDenied, so
// callers cannot distinguish "not signed in" from "not allowed".
package access

import (
	"context"
	"errors"

	"github.com/filehaven/filehaven/internal/domain/models"
)

var (
	// ErrDenied covers both unauthenticated and unauthorized access.
	ErrDenied = errors.New("access denied")

	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("not found")
)

// TokenResolver resolves a credential token to a user record. A nil
// user with a nil error means the token is unknown.
type TokenResolver interface {
	GetByToken(ctx context.Context, token string) (*models.User, error)
}

// Gate authorizes operations against orgs and files.
type Gate struct {
	users TokenResolver
}

// NewGate constructs a Gate over the given resolver.
func NewGate(users TokenResolver) *Gate {
	return &Gate{users: users}
}

// AuthorizeOrg resolves token and verifies the user may act within
// orgID, either through an org membership or through the personal
// namespace rule (orgID appearing inside the token identifier).
func (g *Gate) AuthorizeOrg(ctx context.Context, token, orgID string) (*models.User, error) {
	if token == "" || orgID == "" {
		return nil, ErrDenied
	}
	u, err := g.users.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.HasOrgAccess(orgID) {
		return nil, ErrDenied
	}
	return u, nil
}

// AuthorizeFile verifies the user behind token may act on file, which
// means having access to the org the file belongs to.
func (g *Gate) AuthorizeFile(ctx context.Context, token string, file *models.File) (*models.User, error) {
	if file == nil {
		return nil, ErrNotFound
	}
	return g.AuthorizeOrg(ctx, token, file.OrgID)
}

// CanMutateDeletion reports whether u may soft-delete or restore file.
// Only the original uploader or an admin of the file's org qualifies.
func CanMutateDeletion(u *models.User, file *models.File) bool {
	if u == nil || file == nil {
		return false
	}
	return u.ID == file.UserID || u.IsOrgAdmin(file.OrgID)
}

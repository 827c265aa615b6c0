// internal/domain/models/user.go
package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Membership roles within an organization.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// OrgMembership records one organization a user belongs to, with the
// role they hold there. A user has at most one entry per org_id.
type OrgMembership struct {
	OrgID   string `bson:"org_id" json:"org_id"`
	OrgName string `bson:"org_name" json:"org_name"`
	Role    string `bson:"role" json:"role"` // admin | member
}

// User is a durable record for someone the identity provider has
// vouched for. The record is created on first successful resolution of
// a token identifier; the membership set is maintained by the identity
// sync endpoint and only read by the rest of the app.
type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TokenIdentifier string             `bson:"token_identifier" json:"-"`
	FullName        string             `bson:"full_name" json:"full_name"`
	FullNameCI      string             `bson:"full_name_ci" json:"-"` // lowercase, diacritics-stripped
	Email           string             `bson:"email" json:"email"`
	Image           string             `bson:"image,omitempty" json:"image,omitempty"`
	Orgs            []OrgMembership    `bson:"orgs" json:"orgs"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Membership returns the user's membership entry for orgID, if any.
func (u *User) Membership(orgID string) (OrgMembership, bool) {
	for _, m := range u.Orgs {
		if m.OrgID == orgID {
			return m, true
		}
	}
	return OrgMembership{}, false
}

// HasOrgAccess reports whether the user may act within orgID.
//
// Access is granted when the user holds a membership entry for the org
// (any role), or when orgID is contained in the user's stable token
// identifier. The containment rule is how a user's personal, org-less
// namespace is addressed: the personal scope's "org id" is the user's
// own identifier, so files can live outside any shared organization
// while flowing through the same access check.
func (u *User) HasOrgAccess(orgID string) bool {
	if _, ok := u.Membership(orgID); ok {
		return true
	}
	return strings.Contains(u.TokenIdentifier, orgID)
}

// IsOrgAdmin reports whether the user holds the admin role in orgID.
// Personal-namespace access never confers admin; deletion rights on
// personal files come from being the uploader.
func (u *User) IsOrgAdmin(orgID string) bool {
	m, ok := u.Membership(orgID)
	return ok && m.Role == RoleAdmin
}

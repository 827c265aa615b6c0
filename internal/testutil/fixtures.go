// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/filehaven/filehaven/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a user with the given token and memberships.
func (f *Fixtures) CreateUser(ctx context.Context, token, name string, orgs ...models.OrgMembership) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:              primitive.NewObjectID(),
		TokenIdentifier: token,
		FullName:        name,
		FullNameCI:      text.Fold(name),
		Email:           "",
		Orgs:            orgs,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("inserting test user: %v", err)
	}
	return u
}

// Member returns an OrgMembership with the member role.
func Member(orgID string) models.OrgMembership {
	return models.OrgMembership{OrgID: orgID, OrgName: "Org " + orgID, Role: models.RoleMember}
}

// Admin returns an OrgMembership with the admin role.
func Admin(orgID string) models.OrgMembership {
	return models.OrgMembership{OrgID: orgID, OrgName: "Org " + orgID, Role: models.RoleAdmin}
}

// CreateFile inserts an active file owned by userID in orgID.
func (f *Fixtures) CreateFile(ctx context.Context, orgID string, userID primitive.ObjectID, name, kind string) models.File {
	f.t.Helper()

	now := time.Now().UTC()
	file := models.File{
		ID:          primitive.NewObjectID(),
		Name:        name,
		NameCI:      text.Fold(name),
		Kind:        kind,
		OrgID:       orgID,
		UserID:      userID,
		BlobPath:    orgID + "/test/" + primitive.NewObjectID().Hex(),
		BlobSize:    42,
		ContentType: "application/octet-stream",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := f.db.Collection("files").InsertOne(ctx, file); err != nil {
		f.t.Fatalf("inserting test file: %v", err)
	}
	return file
}

// TrashFile flags an existing file as pending delete.
func (f *Fixtures) TrashFile(ctx context.Context, fileID primitive.ObjectID) {
	f.t.Helper()

	_, err := f.db.Collection("files").UpdateByID(ctx, fileID,
		map[string]any{"$set": map[string]any{"pending_delete": true}})
	if err != nil {
		f.t.Fatalf("flagging test file: %v", err)
	}
}

// CreateFavorite inserts a favorite mark for the triple.
func (f *Fixtures) CreateFavorite(ctx context.Context, userID primitive.ObjectID, orgID string, fileID primitive.ObjectID) models.Favorite {
	f.t.Helper()

	fav := models.Favorite{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		OrgID:     orgID,
		FileID:    fileID,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("favorites").InsertOne(ctx, fav); err != nil {
		f.t.Fatalf("inserting test favorite: %v", err)
	}
	return fav
}

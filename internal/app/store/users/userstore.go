package userstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/filehaven/filehaven/internal/app/system/normalize"
	"github.com/filehaven/filehaven/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateToken is returned when creating a user whose token
	// identifier is already registered.
	ErrDuplicateToken = errors.New("a user with this token identifier already exists")

	errEmptyToken = errors.New("token identifier must not be empty")
)

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByToken resolves a caller credential (token identifier) to a user.
// Returns (nil, nil) when no user is registered for the token: callers
// treat a missing identity as a denial, never as a failure.
func (s *Store) GetByToken(ctx context.Context, tokenIdentifier string) (*models.User, error) {
	if tokenIdentifier == "" {
		return nil, nil
	}
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"token_identifier": tokenIdentifier}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user record after normalizing fields.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	if u.TokenIdentifier == "" {
		return models.User{}, errEmptyToken
	}

	u.ID = primitive.NewObjectID()
	u.FullName = normalize.Name(u.FullName)
	u.FullNameCI = text.Fold(u.FullName)
	u.Email = normalize.Email(u.Email)
	if u.Orgs == nil {
		u.Orgs = []models.OrgMembership{}
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateToken
		}
		return models.User{}, err
	}
	return u, nil
}

// Upsert writes the user record for a token identifier, creating it on
// first sight. This is the identity-sync path: the external identity
// provider pushes name/email/membership changes and we mirror them.
func (s *Store) Upsert(ctx context.Context, u models.User) (*models.User, error) {
	if u.TokenIdentifier == "" {
		return nil, errEmptyToken
	}

	existing, err := s.GetByToken(ctx, u.TokenIdentifier)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		created, err := s.Create(ctx, u)
		if err != nil {
			// A concurrent sync may have won the insert; re-read.
			if errors.Is(err, ErrDuplicateToken) {
				return s.GetByToken(ctx, u.TokenIdentifier)
			}
			return nil, err
		}
		return &created, nil
	}

	set := bson.M{
		"full_name":    normalize.Name(u.FullName),
		"full_name_ci": text.Fold(normalize.Name(u.FullName)),
		"email":        normalize.Email(u.Email),
		"updated_at":   time.Now().UTC(),
	}
	if u.Image != "" {
		set["image"] = u.Image
	}
	if u.Orgs != nil {
		set["orgs"] = dedupeOrgs(u.Orgs)
	}
	if _, err := s.c.UpdateOne(ctx, bson.M{"_id": existing.ID}, bson.M{"$set": set}); err != nil {
		return nil, err
	}
	return s.GetByToken(ctx, u.TokenIdentifier)
}

// SetMemberships replaces the user's org membership set.
func (s *Store) SetMemberships(ctx context.Context, id primitive.ObjectID, orgs []models.OrgMembership) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"orgs":       dedupeOrgs(orgs),
		"updated_at": time.Now().UTC(),
	}})
	return err
}

// dedupeOrgs keeps the first entry per org_id, preserving the
// at-most-one-membership-per-org invariant regardless of what the
// identity provider sent.
func dedupeOrgs(orgs []models.OrgMembership) []models.OrgMembership {
	seen := make(map[string]struct{}, len(orgs))
	out := make([]models.OrgMembership, 0, len(orgs))
	for _, m := range orgs {
		if _, dup := seen[m.OrgID]; dup {
			continue
		}
		seen[m.OrgID] = struct{}{}
		out = append(out, m)
	}
	return out
}

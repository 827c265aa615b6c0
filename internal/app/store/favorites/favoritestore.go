// internal/app/store/favorites/favoritestore.go
package favoritestore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/filehaven/filehaven/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("favorites")}
}

// ErrDuplicateFavorite is returned when inserting a (user, org, file)
// triple that already exists. The unique index makes the race between
// two concurrent toggles fail loudly here instead of double-inserting;
// callers treat it as "already favorited".
var ErrDuplicateFavorite = errors.New("file is already favorited")

// Get looks up the favorite for the triple. Returns (nil, nil) when
// absent.
func (s *Store) Get(ctx context.Context, userID primitive.ObjectID, orgID string, fileID primitive.ObjectID) (*models.Favorite, error) {
	var fav models.Favorite
	err := s.c.FindOne(ctx, bson.M{
		"user_id": userID,
		"org_id":  orgID,
		"file_id": fileID,
	}).Decode(&fav)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &fav, nil
}

// Add inserts a favorite for the triple.
func (s *Store) Add(ctx context.Context, userID primitive.ObjectID, orgID string, fileID primitive.ObjectID) error {
	fav := models.Favorite{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		OrgID:     orgID,
		FileID:    fileID,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, fav); err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateFavorite
		}
		return err
	}
	return nil
}

// Remove deletes the favorite for the triple. Returns the number of
// documents deleted (0 or 1).
func (s *Store) Remove(ctx context.Context, userID primitive.ObjectID, orgID string, fileID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{
		"user_id": userID,
		"org_id":  orgID,
		"file_id": fileID,
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ListByUserOrg returns a user's favorites within one org.
func (s *Store) ListByUserOrg(ctx context.Context, userID primitive.ObjectID, orgID string) ([]models.Favorite, error) {
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID, "org_id": orgID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var favs []models.Favorite
	if err := cur.All(ctx, &favs); err != nil {
		return nil, err
	}
	return favs, nil
}

// DeleteByFile removes every favorite pointing at a file. Called by the
// purge sweep after the file record is gone so bookmarks don't outlive
// the file. Returns the number of documents deleted.
func (s *Store) DeleteByFile(ctx context.Context, fileID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"file_id": fileID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

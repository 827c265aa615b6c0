// internal/app/store/files/filestore.go
package filestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/filehaven/filehaven/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("files")}
}

var (
	errBadKind   = errors.New(`kind must be "image"|"csv"|"pdf"|"txt"|"doc"`)
	errEmptyName = errors.New("file name must not be empty")
	errEmptyBlob = errors.New("blob path must not be empty")
)

// Filter narrows a per-org listing. Zero value lists active files.
type Filter struct {
	Text        string // case-folded substring match on name
	Kind        string // exact kind match when set
	PendingOnly bool   // list the trash instead of active files
}

// Create inserts a new active file record.
func (s *Store) Create(ctx context.Context, f models.File) (models.File, error) {
	f.Name = strings.TrimSpace(f.Name)
	if f.Name == "" {
		return models.File{}, errEmptyName
	}
	if !models.IsValidFileKind(f.Kind) {
		return models.File{}, errBadKind
	}
	if f.BlobPath == "" {
		return models.File{}, errEmptyBlob
	}

	f.ID = primitive.NewObjectID()
	f.NameCI = text.Fold(f.Name)
	f.PendingDelete = false

	now := time.Now().UTC()
	f.CreatedAt = now
	f.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, f); err != nil {
		return models.File{}, err
	}
	return f, nil
}

// GetByID loads a file by ObjectID. Returns mongo.ErrNoDocuments when
// the record does not exist (including after a purge).
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.File, error) {
	var f models.File
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

// SetPendingDelete flips the soft-delete flag. The write is idempotent:
// re-flagging an already-pending file leaves it pending.
func (s *Store) SetPendingDelete(ctx context.Context, id primitive.ObjectID, pending bool) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"pending_delete": pending,
		"updated_at":     time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ListByOrg returns an org's files matching the filter, name order.
// Favorites filtering happens in the service layer, which holds the
// favorites collection; everything here is pushed into the query.
func (s *Store) ListByOrg(ctx context.Context, orgID string, filter Filter) ([]models.File, error) {
	query := bson.M{"org_id": orgID}

	if filter.PendingOnly {
		query["pending_delete"] = true
	} else {
		// pending_delete is written with omitempty, so active files may
		// lack the field entirely.
		query["pending_delete"] = bson.M{"$ne": true}
	}
	if filter.Kind != "" {
		query["kind"] = filter.Kind
	}
	if q := strings.TrimSpace(filter.Text); q != "" {
		query["name_ci"] = bson.M{"$regex": regexQuoteMeta(text.Fold(q))}
	}

	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var files []models.File
	if err := cur.All(ctx, &files); err != nil {
		return nil, err
	}
	return files, nil
}

// ListPendingDelete returns every file flagged for deletion, across all
// orgs. The purge sweeper is the only caller.
func (s *Store) ListPendingDelete(ctx context.Context) ([]models.File, error) {
	cur, err := s.c.Find(ctx, bson.M{"pending_delete": true})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var files []models.File
	if err := cur.All(ctx, &files); err != nil {
		return nil, err
	}
	return files, nil
}

// Delete removes the metadata record. Returns the number of documents
// deleted (0 or 1); a concurrent sweep may have removed it already.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// CountByOrg returns the number of active files in an org.
func (s *Store) CountByOrg(ctx context.Context, orgID string) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{
		"org_id":         orgID,
		"pending_delete": bson.M{"$ne": true},
	})
}

// regexQuoteMeta escapes regex metacharacters so user search text is
// matched literally.
func regexQuoteMeta(s string) string {
	const meta = `\.+*?()|[]{}^$`
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(meta, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

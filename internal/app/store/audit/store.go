// internal/app/store/audit/store.go
package audit

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Action kinds. One per mutating operation on a file.
const (
	ActionUploaded    = "uploaded"
	ActionDeleted     = "deleted"
	ActionDownloaded  = "downloaded"
	ActionFavorited   = "favorited"
	ActionUnfavorited = "unfavorited"
	ActionRestored    = "restored"
)

// ValidAction reports whether a is a recognized action kind.
func ValidAction(a string) bool {
	switch a {
	case ActionUploaded, ActionDeleted, ActionDownloaded,
		ActionFavorited, ActionUnfavorited, ActionRestored:
		return true
	}
	return false
}

// Entry is one immutable audit record. ActorName and FileName are
// snapshots taken at write time so history stays readable after the
// user is renamed or the file is purged.
type Entry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`

	Action    string             `bson:"action" json:"action"`
	ActorName string             `bson:"actor_name" json:"actor_name"`
	FileName  string             `bson:"file_name" json:"file_name"`
	OrgID     string             `bson:"org_id" json:"org_id"`
	FileID    primitive.ObjectID `bson:"file_id" json:"file_id"`
	Hash      string             `bson:"hash,omitempty" json:"hash,omitempty"`
}

var errBadAction = errors.New("unrecognized audit action")

// Store manages the append-only audit trail. There are deliberately no
// update or delete methods on this type.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("audit_log")}
}

// Append writes a new entry. ID and Timestamp are filled in when zero.
func (s *Store) Append(ctx context.Context, e Entry) error {
	if !ValidAction(e.Action) {
		return errBadAction
	}
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, e)
	return err
}

// ListByOrg returns an org's entries, most recent first.
func (s *Store) ListByOrg(ctx context.Context, orgID string, limit int64) ([]Entry, error) {
	if limit <= 0 {
		limit = 100
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit)

	cur, err := s.c.Find(ctx, bson.M{"org_id": orgID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var entries []Entry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ListByFile returns every entry referencing a file, oldest first.
func (s *Store) ListByFile(ctx context.Context, fileID primitive.ObjectID) ([]Entry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"file_id": fileID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var entries []Entry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// CountByOrg returns the number of entries recorded for an org.
func (s *Store) CountByOrg(ctx context.Context, orgID string) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"org_id": orgID})
}

// internal/domain/models/favorite.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Favorite is a per-user bookmark on a file, scoped to the org the
// file was favorited in. At most one record exists per
// (user_id, org_id, file_id); a unique index enforces the triple so a
// racing double-toggle collapses to one record instead of two.
type Favorite struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`
	OrgID  string             `bson:"org_id" json:"org_id"`
	FileID primitive.ObjectID `bson:"file_id" json:"file_id"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

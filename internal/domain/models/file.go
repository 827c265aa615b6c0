// internal/domain/models/file.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Recognized file kinds. The set is closed; anything else is rejected
// before a record is written.
const (
	KindImage = "image"
	KindCSV   = "csv"
	KindPDF   = "pdf"
	KindTxt   = "txt"
	KindDoc   = "doc"
)

// FileKinds lists the recognized kinds in display order.
var FileKinds = []string{KindImage, KindCSV, KindPDF, KindTxt, KindDoc}

// IsValidFileKind reports whether k is one of the recognized kinds.
func IsValidFileKind(k string) bool {
	switch k {
	case KindImage, KindCSV, KindPDF, KindTxt, KindDoc:
		return true
	}
	return false
}

// File is one uploaded file's metadata. The binary content lives in
// blob storage under BlobPath; this record owns its lifecycle.
//
// Lifecycle: active (PendingDelete false) ⇄ pending-delete, and
// pending-delete → purged. Purge removes both the blob and this
// record; nothing moves an active file straight to purged.
type File struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name   string             `bson:"name" json:"name"`
	NameCI string             `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	Kind   string             `bson:"kind" json:"kind"` // image | csv | pdf | txt | doc

	OrgID  string             `bson:"org_id" json:"org_id"`
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"` // uploader

	BlobPath    string `bson:"blob_path" json:"-"`
	BlobSize    int64  `bson:"blob_size,omitempty" json:"blob_size,omitempty"`
	ContentType string `bson:"content_type,omitempty" json:"content_type,omitempty"`

	PendingDelete bool `bson:"pending_delete,omitempty" json:"pending_delete,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

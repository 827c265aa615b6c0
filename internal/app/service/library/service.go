// internal/app/service/library/service.go
//
// Package library implements the file repository operations: upload,
// listing, trash, restore, favorites, downloads, and the purge sweep.
// Handlers stay thin; all authorization and audit logic lives here.
package library

import (
	"errors"

	"github.com/filehaven/filehaven/internal/app/blob"
	"github.com/filehaven/filehaven/internal/app/store/audit"
	favoritestore "github.com/filehaven/filehaven/internal/app/store/favorites"
	filestore "github.com/filehaven/filehaven/internal/app/store/files"
	userstore "github.com/filehaven/filehaven/internal/app/store/users"
	"github.com/filehaven/filehaven/internal/app/system/access"
	"github.com/filehaven/filehaven/internal/app/system/auditlog"
	"github.com/filehaven/filehaven/internal/app/system/metrics"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ErrValidation marks rejected input. Wrap with fmt.Errorf("%w: …").
var ErrValidation = errors.New("invalid input")

// Service owns the stores and cross-cutting pieces behind every file
// operation.
type Service struct {
	db      *mongo.Database
	users   *userstore.Store
	files   *filestore.Store
	favs    *favoritestore.Store
	entries *audit.Store
	gate    *access.Gate
	audit   *auditlog.Writer
	blobs   blob.Store
	met     *metrics.Metrics
	log     *zap.Logger
}

// New wires a Service over db and the blob backend.
func New(db *mongo.Database, blobs blob.Store, met *metrics.Metrics, log *zap.Logger) *Service {
	userStore := userstore.New(db)
	auditStore := audit.New(db)
	return &Service{
		db:      db,
		users:   userStore,
		files:   filestore.New(db),
		favs:    favoritestore.New(db),
		entries: auditStore,
		gate:    access.NewGate(userStore),
		audit:   auditlog.NewWriter(userStore, auditStore, log),
		blobs:   blobs,
		met:     met,
		log:     log,
	}
}

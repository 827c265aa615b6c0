// internal/app/service/library/fileops.go
package library

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/filehaven/filehaven/internal/app/blob"
	"github.com/filehaven/filehaven/internal/app/store/audit"
	"github.com/filehaven/filehaven/internal/app/system/access"
	"github.com/filehaven/filehaven/internal/app/system/inputval"
	"github.com/filehaven/filehaven/internal/app/system/txn"
	"github.com/filehaven/filehaven/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// UploadTarget tells a client where to send file bytes before
// registering the metadata record.
type UploadTarget struct {
	BlobPath string `json:"blob_path"`
	URL      string `json:"url"`
}

// GenerateUploadTarget reserves a unique blob key under the org's
// prefix. The caller PUTs the bytes to URL and then calls CreateFile
// with the returned BlobPath.
func (s *Service) GenerateUploadTarget(ctx context.Context, token, orgID, name string) (UploadTarget, error) {
	if _, err := s.gate.AuthorizeOrg(ctx, token, orgID); err != nil {
		if errors.Is(err, access.ErrDenied) {
			s.met.AccessDeniedTotal.WithLabelValues("upload_url").Inc()
		}
		return UploadTarget{}, err
	}

	clean, err := inputval.CleanFileName(name)
	if err != nil {
		return UploadTarget{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	now := time.Now().UTC()
	key := fmt.Sprintf("%s/%04d/%02d/%s-%s",
		orgID, now.Year(), now.Month(),
		uuid.New().String()[:8], sanitizeFilename(clean))
	return UploadTarget{BlobPath: key, URL: s.blobs.URL(key)}, nil
}

// StoreBlob streams r into the blob backend under an already reserved
// key. The org prefix baked into the key is the authorization scope,
// so a PUT to the exact URL GenerateUploadTarget handed out needs
// nothing beyond the caller's credential.
func (s *Service) StoreBlob(ctx context.Context, token, blobPath, contentType string, r io.Reader) error {
	orgID, _, ok := strings.Cut(blobPath, "/")
	if !ok || orgID == "" {
		return fmt.Errorf("%w: malformed blob path", ErrValidation)
	}
	if _, err := s.gate.AuthorizeOrg(ctx, token, orgID); err != nil {
		if errors.Is(err, access.ErrDenied) {
			s.met.AccessDeniedTotal.WithLabelValues("store_blob").Inc()
		}
		return err
	}
	return s.blobs.Put(ctx, blobPath, r, &blob.PutOptions{ContentType: contentType})
}

// OpenBlob streams a stored blob by key. The org prefix baked into the
// key is the authorization scope, mirroring StoreBlob, so listing URLs
// stay access-controlled without a second metadata lookup.
func (s *Service) OpenBlob(ctx context.Context, token, blobPath string) (io.ReadCloser, error) {
	orgID, _, ok := strings.Cut(blobPath, "/")
	if !ok || orgID == "" {
		return nil, fmt.Errorf("%w: malformed blob path", ErrValidation)
	}
	if _, err := s.gate.AuthorizeOrg(ctx, token, orgID); err != nil {
		if errors.Is(err, access.ErrDenied) {
			s.met.AccessDeniedTotal.WithLabelValues("open_blob").Inc()
		}
		return nil, err
	}
	return s.blobs.Get(ctx, blobPath)
}

// CreateFileInput is the metadata for registering an uploaded blob.
type CreateFileInput struct {
	OrgID       string
	Name        string
	Kind        string
	BlobPath    string
	BlobSize    int64
	ContentType string
	Checksum    string // hex sha-256 of the blob, optional
}

// CreateFile registers an uploaded blob as an active file and writes
// the upload audit entry. Both happen in one transaction where the
// deployment supports them; an audit failure aborts the create.
func (s *Service) CreateFile(ctx context.Context, token string, in CreateFileInput) (*models.File, error) {
	u, err := s.gate.AuthorizeOrg(ctx, token, in.OrgID)
	if err != nil {
		if errors.Is(err, access.ErrDenied) {
			s.met.AccessDeniedTotal.WithLabelValues("create_file").Inc()
		}
		return nil, err
	}

	clean, err := inputval.CleanFileName(in.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := inputval.CheckFileKind(in.Kind); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if in.BlobPath == "" {
		return nil, fmt.Errorf("%w: blob path is required", ErrValidation)
	}

	var created models.File
	err = txn.Run(ctx, s.db, s.log, func(ctx context.Context) error {
		created, err = s.files.Create(ctx, models.File{
			Name:        clean,
			Kind:        in.Kind,
			OrgID:       in.OrgID,
			UserID:      u.ID,
			BlobPath:    in.BlobPath,
			BlobSize:    in.BlobSize,
			ContentType: in.ContentType,
		})
		if err != nil {
			return err
		}
		return s.audit.Record(ctx, token, in.OrgID, created.ID, created.Name, audit.ActionUploaded, in.Checksum)
	})
	if err != nil {
		return nil, err
	}

	s.met.FilesUploadedTotal.WithLabelValues(created.Kind).Inc()
	s.met.AuditAppendsTotal.Inc()
	s.log.Info("file created",
		zap.String("file_id", created.ID.Hex()),
		zap.String("org_id", created.OrgID),
		zap.String("kind", created.Kind),
	)
	return &created, nil
}

// SoftDelete moves a file to the trash. Only the uploader or an org
// admin may do this; everyone else gets the uniform denial.
func (s *Service) SoftDelete(ctx context.Context, token string, fileID primitive.ObjectID) error {
	return s.setPendingDelete(ctx, token, fileID, true)
}

// Restore brings a trashed file back to active.
func (s *Service) Restore(ctx context.Context, token string, fileID primitive.ObjectID) error {
	return s.setPendingDelete(ctx, token, fileID, false)
}

func (s *Service) setPendingDelete(ctx context.Context, token string, fileID primitive.ObjectID, pending bool) error {
	file, err := s.loadFile(ctx, fileID)
	if err != nil {
		return err
	}
	u, err := s.gate.AuthorizeFile(ctx, token, file)
	if err != nil {
		if errors.Is(err, access.ErrDenied) {
			s.met.AccessDeniedTotal.WithLabelValues("mutate_deletion").Inc()
		}
		return err
	}
	if !access.CanMutateDeletion(u, file) {
		s.met.AccessDeniedTotal.WithLabelValues("mutate_deletion").Inc()
		return access.ErrDenied
	}

	action := audit.ActionDeleted
	if !pending {
		action = audit.ActionRestored
	}
	err = txn.Run(ctx, s.db, s.log, func(ctx context.Context) error {
		if err := s.files.SetPendingDelete(ctx, fileID, pending); err != nil {
			return err
		}
		return s.audit.Record(ctx, token, file.OrgID, file.ID, file.Name, action, "")
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return access.ErrNotFound
		}
		return err
	}

	s.met.AuditAppendsTotal.Inc()
	if pending {
		s.met.FilesDeletedTotal.WithLabelValues(file.Kind).Inc()
	} else {
		s.met.FilesRestoredTotal.WithLabelValues(file.Kind).Inc()
	}
	return nil
}

// Download authorizes access, records the download in the audit trail,
// and returns the file record plus a reader over its bytes. The caller
// closes the reader.
func (s *Service) Download(ctx context.Context, token string, fileID primitive.ObjectID) (*models.File, io.ReadCloser, error) {
	file, err := s.loadFile(ctx, fileID)
	if err != nil {
		return nil, nil, err
	}
	if _, err := s.gate.AuthorizeFile(ctx, token, file); err != nil {
		if errors.Is(err, access.ErrDenied) {
			s.met.AccessDeniedTotal.WithLabelValues("download").Inc()
		}
		return nil, nil, err
	}

	if err := s.audit.Record(ctx, token, file.OrgID, file.ID, file.Name, audit.ActionDownloaded, ""); err != nil {
		return nil, nil, err
	}
	s.met.AuditAppendsTotal.Inc()

	rc, err := s.blobs.Get(ctx, file.BlobPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening blob %s: %w", file.BlobPath, err)
	}
	s.met.DownloadsTotal.WithLabelValues(file.Kind).Inc()
	return file, rc, nil
}

func (s *Service) loadFile(ctx context.Context, fileID primitive.ObjectID) (*models.File, error) {
	file, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, access.ErrNotFound
		}
		return nil, err
	}
	return file, nil
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)

	out := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
			(c >= '0' && c <= '9') || c == '-' || c == '_' || c == '.' {
			out = append(out, c)
		} else {
			out = append(out, '_')
		}
	}
	if len(out) == 0 {
		return "file"
	}
	if len(out) > 100 {
		ext := filepath.Ext(string(out))
		if len(ext) > 0 && len(ext) < 10 {
			out = append(out[:100-len(ext)], ext...)
		} else {
			out = out[:100]
		}
	}
	return string(out)
}

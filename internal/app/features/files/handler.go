// internal/app/features/files/handler.go
package files

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	uierrors "github.com/filehaven/filehaven/internal/app/features/errors"
	"github.com/filehaven/filehaven/internal/app/service/library"
	"github.com/filehaven/filehaven/internal/app/system/auth"
	"github.com/filehaven/filehaven/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves the file API.
type Handler struct {
	Svc    *library.Service
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

// NewHandler constructs a files Handler.
func NewHandler(svc *library.Service, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Svc: svc, ErrLog: errLog, Log: logger}
}

func token(r *http.Request) string {
	t, _ := auth.TokenFrom(r.Context())
	return t
}

func fileID(r *http.Request) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
}

// UploadURL handles POST /api/files/upload-url.
func (h *Handler) UploadURL(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrgID string `json:"org_id"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		uierrors.BadRequest(w, "malformed JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	target, err := h.Svc.GenerateUploadTarget(ctx, token(r), req.OrgID, req.Name)
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	uierrors.JSON(w, http.StatusOK, target)
}

// PutBlob handles PUT /api/files/blob/* and stores the request body
// under the blob key from the path. The key carries its own org
// prefix, so the issued upload URL works as handed out.
func (h *Handler) PutBlob(w http.ResponseWriter, r *http.Request) {
	blobPath := chi.URLParam(r, "*")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Svc.StoreBlob(ctx, token(r), blobPath, r.Header.Get("Content-Type"), r.Body); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	uierrors.JSON(w, http.StatusCreated, map[string]string{"blob_path": blobPath})
}

// GetBlob handles GET /api/files/blob/* and streams the stored bytes
// back, authorization scoped by the key's org prefix.
func (h *Handler) GetBlob(w http.ResponseWriter, r *http.Request) {
	blobPath := chi.URLParam(r, "*")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	rc, err := h.Svc.OpenBlob(ctx, token(r), blobPath)
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := io.Copy(w, rc); err != nil {
		h.Log.Warn("streaming blob", zap.String("blob_path", blobPath), zap.Error(err))
	}
}

// Create handles POST /api/files.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrgID       string `json:"org_id"`
		Name        string `json:"name"`
		Kind        string `json:"kind"`
		BlobPath    string `json:"blob_path"`
		BlobSize    int64  `json:"blob_size"`
		ContentType string `json:"content_type"`
		Checksum    string `json:"checksum"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		uierrors.BadRequest(w, "malformed JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	file, err := h.Svc.CreateFile(ctx, token(r), library.CreateFileInput{
		OrgID:       req.OrgID,
		Name:        req.Name,
		Kind:        req.Kind,
		BlobPath:    req.BlobPath,
		BlobSize:    req.BlobSize,
		ContentType: req.ContentType,
		Checksum:    req.Checksum,
	})
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	uierrors.JSON(w, http.StatusCreated, file)
}

// List handles GET /api/files.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	q := r.URL.Query()
	views, err := h.Svc.List(ctx, token(r), q.Get("org"), library.Query{
		Text:          q.Get("q"),
		Kind:          q.Get("kind"),
		FavoritesOnly: q.Get("favorites") == "true",
		TrashOnly:     q.Get("trash") == "true",
	})
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	uierrors.JSON(w, http.StatusOK, views)
}

// Delete handles DELETE /api/files/{id} by moving the file to trash.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := fileID(r)
	if err != nil {
		uierrors.BadRequest(w, "malformed file id")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Svc.SoftDelete(ctx, token(r), id); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	uierrors.JSON(w, http.StatusOK, map[string]string{"status": "trashed"})
}

// Restore handles POST /api/files/{id}/restore.
func (h *Handler) Restore(w http.ResponseWriter, r *http.Request) {
	id, err := fileID(r)
	if err != nil {
		uierrors.BadRequest(w, "malformed file id")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Svc.Restore(ctx, token(r), id); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	uierrors.JSON(w, http.StatusOK, map[string]string{"status": "active"})
}

// Favorite handles POST /api/files/{id}/favorite and reports the new
// state of the caller's mark.
func (h *Handler) Favorite(w http.ResponseWriter, r *http.Request) {
	id, err := fileID(r)
	if err != nil {
		uierrors.BadRequest(w, "malformed file id")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	favorited, err := h.Svc.ToggleFavorite(ctx, token(r), id)
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	uierrors.JSON(w, http.StatusOK, map[string]bool{"favorited": favorited})
}

// Download handles GET /api/files/{id}/download and streams the blob.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := fileID(r)
	if err != nil {
		uierrors.BadRequest(w, "malformed file id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	file, rc, err := h.Svc.Download(ctx, token(r), id)
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	defer rc.Close()

	if file.ContentType != "" {
		w.Header().Set("Content-Type", file.ContentType)
	} else {
		w.Header().Set("Content-Type", "application/octet-stream")
	}
	if file.BlobSize > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(file.BlobSize, 10))
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))

	if _, err := io.Copy(w, rc); err != nil {
		// Headers are gone; all we can do is log.
		h.Log.Warn("streaming download", zap.String("file_id", file.ID.Hex()), zap.Error(err))
	}
}

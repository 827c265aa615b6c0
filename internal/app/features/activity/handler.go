// internal/app/features/activity/handler.go
//
// Package activity serves the org audit trail feed.
package activity

import (
	"context"
	"net/http"
	"strconv"

	uierrors "github.com/filehaven/filehaven/internal/app/features/errors"
	"github.com/filehaven/filehaven/internal/app/service/library"
	"github.com/filehaven/filehaven/internal/app/system/auth"
	"github.com/filehaven/filehaven/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler serves audit trail reads.
type Handler struct {
	Svc    *library.Service
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

// NewHandler constructs an activity Handler.
func NewHandler(svc *library.Service, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Svc: svc, ErrLog: errLog, Log: logger}
}

// Feed handles GET /api/audit?org=&limit=. Entries come back newest
// first; denial degrades to an empty feed.
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	tok, _ := auth.TokenFrom(r.Context())

	var limit int64
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			uierrors.BadRequest(w, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	entries, err := h.Svc.AuditTrail(ctx, tok, r.URL.Query().Get("org"), limit)
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	uierrors.JSON(w, http.StatusOK, entries)
}

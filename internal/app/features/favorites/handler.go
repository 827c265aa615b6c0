// internal/app/features/favorites/handler.go
package favorites

import (
	"context"
	"net/http"

	uierrors "github.com/filehaven/filehaven/internal/app/features/errors"
	"github.com/filehaven/filehaven/internal/app/service/library"
	"github.com/filehaven/filehaven/internal/app/system/auth"
	"github.com/filehaven/filehaven/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler serves the caller's favorite marks.
type Handler struct {
	Svc    *library.Service
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

// NewHandler constructs a favorites Handler.
func NewHandler(svc *library.Service, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Svc: svc, ErrLog: errLog, Log: logger}
}

// List handles GET /api/favorites?org=. A caller without org access
// gets an empty list.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	tok, _ := auth.TokenFrom(r.Context())

	favs, err := h.Svc.Favorites(ctx, tok, r.URL.Query().Get("org"))
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	uierrors.JSON(w, http.StatusOK, favs)
}

// internal/app/features/userinfo/handler.go
package userinfo

import (
	"context"
	"encoding/json"
	"net/http"

	uierrors "github.com/filehaven/filehaven/internal/app/features/errors"
	"github.com/filehaven/filehaven/internal/app/service/library"
	"github.com/filehaven/filehaven/internal/app/system/auth"
	"github.com/filehaven/filehaven/internal/app/system/timeouts"
	"github.com/filehaven/filehaven/internal/domain/models"
	"go.uber.org/zap"
)

// Handler serves the caller's own identity.
type Handler struct {
	Svc    *library.Service
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

// NewHandler creates a new userinfo handler.
func NewHandler(svc *library.Service, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Svc: svc, ErrLog: errLog, Log: logger}
}

// ServeUserInfo handles GET /api/me.
//
// Response format:
//
//	{ "isAuthenticated": bool, "name": "...", "email": "...", "orgs": [...] }
//
// A request without a resolvable credential gets isAuthenticated false
// and a 200, never an error, so clients can poll it freely.
func (h *Handler) ServeUserInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	tok, _ := auth.TokenFrom(r.Context())
	u, err := h.Svc.Me(ctx, tok)
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	if u == nil {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"isAuthenticated": false,
			"name":            "",
			"email":           "",
			"orgs":            []models.OrgMembership{},
		})
		return
	}

	orgs := u.Orgs
	if orgs == nil {
		orgs = []models.OrgMembership{}
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"isAuthenticated": true,
		"name":            u.FullName,
		"email":           u.Email,
		"orgs":            orgs,
	})
}

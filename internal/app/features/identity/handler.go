// internal/app/features/identity/handler.go
//
// Package identity receives user and membership updates from the
// external identity provider.
package identity

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"

	uierrors "github.com/filehaven/filehaven/internal/app/features/errors"
	"github.com/filehaven/filehaven/internal/app/service/library"
	"github.com/filehaven/filehaven/internal/app/system/timeouts"
	"github.com/filehaven/filehaven/internal/domain/models"
	"go.uber.org/zap"
)

// Handler serves identity sync.
type Handler struct {
	Svc    *library.Service
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger

	// WebhookToken, when set, must accompany every sync call in the
	// X-Webhook-Token header. Membership rewrites are org takeovers in
	// the wrong hands.
	WebhookToken string
}

// NewHandler constructs an identity Handler.
func NewHandler(svc *library.Service, errLog *uierrors.ErrorLogger, logger *zap.Logger, webhookToken string) *Handler {
	return &Handler{Svc: svc, ErrLog: errLog, Log: logger, WebhookToken: webhookToken}
}

type syncRequest struct {
	TokenIdentifier string `json:"token_identifier"`
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Image           string `json:"image"`
	Orgs            []struct {
		OrgID   string `json:"org_id"`
		OrgName string `json:"org_name"`
		Role    string `json:"role"`
	} `json:"orgs"`
}

// Sync handles POST /api/identity/sync.
func (h *Handler) Sync(w http.ResponseWriter, r *http.Request) {
	if h.WebhookToken != "" &&
		subtle.ConstantTimeCompare([]byte(r.Header.Get("X-Webhook-Token")), []byte(h.WebhookToken)) != 1 {
		h.Log.Warn("identity sync rejected: bad webhook token")
		uierrors.JSON(w, http.StatusForbidden, map[string]string{"error": "access denied"})
		return
	}

	var req syncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		uierrors.BadRequest(w, "malformed JSON body")
		return
	}

	in := library.IdentityInput{
		TokenIdentifier: req.TokenIdentifier,
		FullName:        req.FullName,
		Email:           req.Email,
		Image:           req.Image,
	}
	if req.Orgs != nil {
		in.Orgs = make([]models.OrgMembership, 0, len(req.Orgs))
		for _, o := range req.Orgs {
			in.Orgs = append(in.Orgs, models.OrgMembership{
				OrgID:   o.OrgID,
				OrgName: o.OrgName,
				Role:    o.Role,
			})
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Svc.SyncIdentity(ctx, in)
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	uierrors.JSON(w, http.StatusOK, u)
}

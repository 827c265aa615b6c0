// internal/app/system/auditlog/auditlog.go
//
// Package auditlog records who did what to which file. Every write
// re-resolves the actor from the credential token at recording time
// rather than trusting a name passed down from the handler, and a
// failure to resolve or append aborts the calling operation. Entries
// are append-only; the backing store exposes no update or delete.
package auditlog

import (
	"context"
	"fmt"

	"github.com/filehaven/filehaven/internal/app/store/audit"
	"github.com/filehaven/filehaven/internal/app/system/access"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Writer appends audit entries and mirrors them to the structured log.
type Writer struct {
	users   access.TokenResolver
	entries *audit.Store
	log     *zap.Logger
}

// NewWriter constructs a Writer.
func NewWriter(users access.TokenResolver, entries *audit.Store, log *zap.Logger) *Writer {
	return &Writer{users: users, entries: entries, log: log}
}

// Record appends an audit entry for action performed on the named file.
// The actor's display name is denormalized into the entry so the trail
// survives later profile changes. Returns an error when the token does
// not resolve to a user or the append fails; callers treat that as a
// failure of the whole operation.
func (w *Writer) Record(ctx context.Context, token, orgID string, fileID primitive.ObjectID, fileName, action, hash string) error {
	u, err := w.users.GetByToken(ctx, token)
	if err != nil {
		return fmt.Errorf("audit: resolving actor: %w", err)
	}
	if u == nil {
		return fmt.Errorf("audit: actor for token not found")
	}

	entry := audit.Entry{
		Action:    action,
		ActorName: u.FullName,
		FileName:  fileName,
		OrgID:     orgID,
		FileID:    fileID,
		Hash:      hash,
	}
	if err := w.entries.Append(ctx, entry); err != nil {
		return fmt.Errorf("audit: appending entry: %w", err)
	}

	w.log.Info("audit",
		zap.String("action", action),
		zap.String("actor", u.FullName),
		zap.String("org_id", orgID),
		zap.String("file_id", fileID.Hex()),
		zap.String("file_name", fileName),
	)
	return nil
}

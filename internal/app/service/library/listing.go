// internal/app/service/library/listing.go
package library

import (
	"context"
	"errors"

	"github.com/filehaven/filehaven/internal/app/store/audit"
	filestore "github.com/filehaven/filehaven/internal/app/store/files"
	"github.com/filehaven/filehaven/internal/app/system/access"
	"github.com/filehaven/filehaven/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Query narrows a file listing.
type Query struct {
	Text          string
	Kind          string
	FavoritesOnly bool
	TrashOnly     bool
}

// FileView is a file record decorated for API responses.
type FileView struct {
	models.File
	URL       string `json:"url"`
	Favorited bool   `json:"favorited"`
	IsOwner   bool   `json:"is_owner"`
}

// List returns the org's files visible to the caller. A caller without
// access gets an empty list, not an error, so probing for an org's
// existence reveals nothing.
func (s *Service) List(ctx context.Context, token, orgID string, q Query) ([]FileView, error) {
	u, err := s.gate.AuthorizeOrg(ctx, token, orgID)
	if err != nil {
		if errors.Is(err, access.ErrDenied) {
			s.met.AccessDeniedTotal.WithLabelValues("list").Inc()
			return []FileView{}, nil
		}
		return nil, err
	}

	list, err := s.files.ListByOrg(ctx, orgID, filestore.Filter{
		Text:        q.Text,
		Kind:        q.Kind,
		PendingOnly: q.TrashOnly,
	})
	if err != nil {
		return nil, err
	}

	favSet, err := s.favoriteSet(ctx, u.ID, orgID)
	if err != nil {
		return nil, err
	}

	views := make([]FileView, 0, len(list))
	for _, f := range list {
		if q.FavoritesOnly && !favSet[f.ID] {
			continue
		}
		views = append(views, FileView{
			File:      f,
			URL:       s.blobs.URL(f.BlobPath),
			Favorited: favSet[f.ID],
			IsOwner:   f.UserID == u.ID,
		})
	}
	return views, nil
}

// Favorites returns the caller's favorite records in the org, empty on
// denial like List.
func (s *Service) Favorites(ctx context.Context, token, orgID string) ([]models.Favorite, error) {
	u, err := s.gate.AuthorizeOrg(ctx, token, orgID)
	if err != nil {
		if errors.Is(err, access.ErrDenied) {
			s.met.AccessDeniedTotal.WithLabelValues("favorites").Inc()
			return []models.Favorite{}, nil
		}
		return nil, err
	}
	return s.favs.ListByUserOrg(ctx, u.ID, orgID)
}

// AuditTrail returns the org's most recent audit entries, newest
// first, empty on denial.
func (s *Service) AuditTrail(ctx context.Context, token, orgID string, limit int64) ([]audit.Entry, error) {
	if _, err := s.gate.AuthorizeOrg(ctx, token, orgID); err != nil {
		if errors.Is(err, access.ErrDenied) {
			s.met.AccessDeniedTotal.WithLabelValues("audit").Inc()
			return []audit.Entry{}, nil
		}
		return nil, err
	}
	return s.entries.ListByOrg(ctx, orgID, limit)
}

func (s *Service) favoriteSet(ctx context.Context, userID primitive.ObjectID, orgID string) (map[primitive.ObjectID]bool, error) {
	favs, err := s.favs.ListByUserOrg(ctx, userID, orgID)
	if err != nil {
		return nil, err
	}
	set := make(map[primitive.ObjectID]bool, len(favs))
	for _, f := range favs {
		set[f.FileID] = true
	}
	return set, nil
}

// internal/app/service/library/favorite.go
package library

import (
	"context"
	"errors"

	"github.com/filehaven/filehaven/internal/app/store/audit"
	favoritestore "github.com/filehaven/filehaven/internal/app/store/favorites"
	"github.com/filehaven/filehaven/internal/app/system/access"
	"github.com/filehaven/filehaven/internal/app/system/txn"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ToggleFavorite flips the caller's favorite mark on a file and
// reports the new state. The (user, org, file) triple is unique in the
// store; a duplicate insert from a concurrent toggle resolves to
// "favorited" rather than an error.
func (s *Service) ToggleFavorite(ctx context.Context, token string, fileID primitive.ObjectID) (bool, error) {
	file, err := s.loadFile(ctx, fileID)
	if err != nil {
		return false, err
	}
	u, err := s.gate.AuthorizeFile(ctx, token, file)
	if err != nil {
		if errors.Is(err, access.ErrDenied) {
			s.met.AccessDeniedTotal.WithLabelValues("favorite").Inc()
		}
		return false, err
	}

	existing, err := s.favs.Get(ctx, u.ID, file.OrgID, file.ID)
	if err != nil {
		return false, err
	}

	if existing != nil {
		err = txn.Run(ctx, s.db, s.log, func(ctx context.Context) error {
			if _, err := s.favs.Remove(ctx, u.ID, file.OrgID, file.ID); err != nil {
				return err
			}
			return s.audit.Record(ctx, token, file.OrgID, file.ID, file.Name, audit.ActionUnfavorited, "")
		})
		if err != nil {
			return false, err
		}
		s.met.AuditAppendsTotal.Inc()
		s.met.FavoritesToggleTotal.WithLabelValues("off").Inc()
		return false, nil
	}

	err = txn.Run(ctx, s.db, s.log, func(ctx context.Context) error {
		if err := s.favs.Add(ctx, u.ID, file.OrgID, file.ID); err != nil {
			if !errors.Is(err, favoritestore.ErrDuplicateFavorite) {
				return err
			}
			// Lost a race with another toggle; the mark exists, which
			// is what the caller asked for.
		}
		return s.audit.Record(ctx, token, file.OrgID, file.ID, file.Name, audit.ActionFavorited, "")
	})
	if err != nil {
		return false, err
	}
	s.met.AuditAppendsTotal.Inc()
	s.met.FavoritesToggleTotal.WithLabelValues("on").Inc()
	return true, nil
}

// internal/app/service/library/identity.go
package library

import (
	"context"
	"fmt"

	"github.com/filehaven/filehaven/internal/app/system/inputval"
	"github.com/filehaven/filehaven/internal/domain/models"
	"go.uber.org/zap"
)

// Me resolves the caller's own record. A missing or unknown token
// returns (nil, nil) so "who am I" never errors on anonymity.
func (s *Service) Me(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, nil
	}
	return s.users.GetByToken(ctx, token)
}

// IdentityInput mirrors what the identity provider knows about a user.
type IdentityInput struct {
	TokenIdentifier string
	FullName        string
	Email           string
	Image           string
	Orgs            []models.OrgMembership
}

// SyncIdentity upserts the user record for a provider identity and
// replaces its org memberships. Called from the provider webhook and
// on first sign-in, before any gated operation, so it takes no
// credential of its own.
func (s *Service) SyncIdentity(ctx context.Context, in IdentityInput) (*models.User, error) {
	if in.TokenIdentifier == "" {
		return nil, fmt.Errorf("%w: token identifier is required", ErrValidation)
	}
	if in.Email != "" && !inputval.IsValidEmail(in.Email) {
		return nil, fmt.Errorf("%w: malformed email", ErrValidation)
	}

	u, err := s.users.Upsert(ctx, models.User{
		TokenIdentifier: in.TokenIdentifier,
		FullName:        in.FullName,
		Email:           in.Email,
		Image:           in.Image,
	})
	if err != nil {
		return nil, err
	}

	if in.Orgs != nil {
		if err := s.users.SetMemberships(ctx, u.ID, in.Orgs); err != nil {
			return nil, err
		}
		u.Orgs = in.Orgs
	}

	s.log.Info("identity synced",
		zap.String("user_id", u.ID.Hex()),
		zap.Int("orgs", len(u.Orgs)),
	)
	return u, nil
}

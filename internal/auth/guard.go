package auth

import (
	"context"

	"github.com/flamingoair/flamingo-backend/internal/domain"
	"github.com/sirupsen/logrus"
)

// UserDirectory resolves a user id to a live user record.
type UserDirectory interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Guard turns a bearer token into a caller identity. Every failure mode
// surfaces as Unauthorized; the distinction lives only in the message so a
// deleted user's existence is never leaked to the caller.
type Guard struct {
	tokens *TokenService
	users  UserDirectory
	log    *logrus.Logger
}

func NewGuard(tokens *TokenService, users UserDirectory, log *logrus.Logger) *Guard {
	return &Guard{tokens: tokens, users: users, log: log}
}

func (g *Guard) Authenticate(ctx context.Context, token string) (*domain.Identity, error) {
	if token == "" {
		return nil, domain.NewUnauthorized("not authorized, no token provided")
	}

	userID, err := g.tokens.Verify(token)
	if err != nil {
		g.log.WithError(err).Debug("token verification failed")
		return nil, domain.NewUnauthorized("invalid or expired token")
	}

	user, err := g.users.GetByID(ctx, userID)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return nil, domain.NewUnauthorized("user no longer exists")
		}
		return nil, err
	}

	return &domain.Identity{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
	}, nil
}

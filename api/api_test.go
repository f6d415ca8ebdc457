package api

import (
	"context"

	"github.com/flamingoair/flamingo-backend/internal/domain"
	"github.com/gin-gonic/gin"
)

// stubGuard authenticates any request carrying "Bearer good-token" as the
// configured identity and rejects everything else.
type stubGuard struct {
	identity *domain.Identity
}

func (g *stubGuard) Authenticate(ctx context.Context, token string) (*domain.Identity, error) {
	if token == "good-token" && g.identity != nil {
		return g.identity, nil
	}
	return nil, domain.NewUnauthorized("invalid or expired token")
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	return router
}

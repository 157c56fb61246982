package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/electoral/internal/core/domain"
)

type AuthService interface {
	// Login authenticates a super administrator and returns an access token.
	Login(ctx context.Context, nationalID, password string) (string, *domain.Principal, error)
	// PresidentAccess resolves today's open station assigned to the president
	// and returns a token scoped to it.
	PresidentAccess(ctx context.Context, stationID uuid.UUID, nationalID string) (string, *domain.Principal, error)
	ValidateToken(token string) (*domain.Principal, error)
	EnsureAdmin(ctx context.Context, nationalID, password string) error
}

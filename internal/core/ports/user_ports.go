package ports

import (
	"context"

	"github.com/vncsmyrnk/electoral/internal/core/domain"
)

type UserRepository interface {
	GetByNationalID(ctx context.Context, nationalID string) (*domain.SystemUser, error)
	// Upsert creates the user or replaces names, role and hash of an existing one.
	Upsert(ctx context.Context, user *domain.SystemUser) error
}

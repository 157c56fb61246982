package ports

import (
	"context"

	"github.com/vncsmyrnk/electoral/internal/core/domain"
)

type ConfigRepository interface {
	// Entries returns every stored entry read as a single snapshot.
	Entries(ctx context.Context) ([]domain.ConfigEntry, error)
	// Update runs apply against the current key/values and persists the
	// returned changes, all under one lock so concurrent updates serialize.
	Update(ctx context.Context, apply func(current map[string]string) (map[string]string, error)) error
	// Replace overwrites every entry with values.
	Replace(ctx context.Context, values map[string]string) error
}

type ConfigService interface {
	Get(ctx context.Context) (domain.VotingConfig, error)
	Entries(ctx context.Context) ([]domain.ConfigEntry, error)
	Set(ctx context.Context, key, value string) (domain.VotingConfig, error)
	Update(ctx context.Context, changes map[string]string) (domain.VotingConfig, error)
	Reset(ctx context.Context) (domain.VotingConfig, error)
}

type WindowService interface {
	Status(ctx context.Context) (domain.WindowStatus, error)
	// Snapshot returns the configuration and its evaluation at one instant.
	Snapshot(ctx context.Context) (domain.VotingConfig, domain.WindowStatus, error)
	// Require returns domain.ErrWindowClosed, wrapped with the reason, when the
	// window is not active.
	Require(ctx context.Context) error
}

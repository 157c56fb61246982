package ports

import (
	"context"

	"github.com/vncsmyrnk/electoral/internal/core/domain"
)

type VoterRepository interface {
	// UpsertBatch inserts unseen national IDs and updates names and category of
	// known ones. Rows that fail to write are counted in Errors.
	UpsertBatch(ctx context.Context, records []domain.VoterRecord) (domain.UpsertResult, error)
	SetEnabled(ctx context.Context, nationalID string, enabled bool) error
	Toggle(ctx context.Context, nationalID string) (bool, error)
	FindByNationalID(ctx context.Context, nationalID string) (*domain.VoterStatus, error)
	List(ctx context.Context) ([]domain.VoterStatus, error)
	Count(ctx context.Context) (int, error)
	// ClearAll deletes every voter and vote in one transaction.
	ClearAll(ctx context.Context) (int, error)
}

type VoterService interface {
	BulkUpsert(ctx context.Context, records []domain.VoterRecord) (domain.UpsertResult, error)
	SetEnabled(ctx context.Context, nationalID string, enabled bool) error
	Toggle(ctx context.Context, nationalID string) (bool, error)
	FindByNationalID(ctx context.Context, nationalID string) (*domain.VoterStatus, error)
	List(ctx context.Context) ([]domain.VoterStatus, error)
	Count(ctx context.Context) (int, error)
	ClearAll(ctx context.Context) (int, error)
}

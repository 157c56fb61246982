package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vncsmyrnk/electoral/internal/core/domain"
	"github.com/vncsmyrnk/electoral/internal/core/ports"
	"github.com/vncsmyrnk/electoral/internal/metrics"
)

// upsertChunkSize bounds how many records reach the repository per call.
const upsertChunkSize = 100

type voterService struct {
	repo    ports.VoterRepository
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewVoterService(repo ports.VoterRepository, m *metrics.Metrics, logger *slog.Logger) ports.VoterService {
	return &voterService{
		repo:    repo,
		metrics: m,
		logger:  logger,
	}
}

// BulkUpsert normalizes and screens the records, then writes the accepted ones
// in chunks. A failing chunk aborts the import; counts gathered so far are
// returned alongside the error.
func (s *voterService) BulkUpsert(ctx context.Context, records []domain.VoterRecord) (domain.UpsertResult, error) {
	var result domain.UpsertResult

	accepted := make([]domain.VoterRecord, 0, len(records))
	for _, r := range records {
		r = r.Normalize()
		if !r.Complete() || !domain.ValidNationalID(r.NationalID) {
			result.Rejected++
			continue
		}
		accepted = append(accepted, r)
	}

	for start := 0; start < len(accepted); start += upsertChunkSize {
		end := min(start+upsertChunkSize, len(accepted))
		chunk, err := s.repo.UpsertBatch(ctx, accepted[start:end])
		result.Add(chunk)
		if err != nil {
			s.metrics.AddVotersImported(result.Inserted, result.Updated, result.Rejected, result.Errors)
			return result, fmt.Errorf("failed to upsert voters: %w", err)
		}
	}

	s.metrics.AddVotersImported(result.Inserted, result.Updated, result.Rejected, result.Errors)
	s.logger.Info("voter roll imported",
		"inserted", result.Inserted,
		"updated", result.Updated,
		"rejected", result.Rejected,
		"errors", result.Errors,
	)
	return result, nil
}

func (s *voterService) SetEnabled(ctx context.Context, nationalID string, enabled bool) error {
	if !domain.ValidNationalID(nationalID) {
		return domain.ErrInvalidNationalID
	}
	return s.repo.SetEnabled(ctx, nationalID, enabled)
}

func (s *voterService) Toggle(ctx context.Context, nationalID string) (bool, error) {
	if !domain.ValidNationalID(nationalID) {
		return false, domain.ErrInvalidNationalID
	}
	return s.repo.Toggle(ctx, nationalID)
}

func (s *voterService) FindByNationalID(ctx context.Context, nationalID string) (*domain.VoterStatus, error) {
	if !domain.ValidNationalID(nationalID) {
		return nil, domain.ErrInvalidNationalID
	}
	return s.repo.FindByNationalID(ctx, nationalID)
}

func (s *voterService) List(ctx context.Context) ([]domain.VoterStatus, error) {
	return s.repo.List(ctx)
}

func (s *voterService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *voterService) ClearAll(ctx context.Context) (int, error) {
	n, err := s.repo.ClearAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to clear voters: %w", err)
	}
	s.logger.Warn("voter roll cleared", "deleted", n)
	return n, nil
}

package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vncsmyrnk/electoral/internal/core/domain"
	"github.com/vncsmyrnk/electoral/internal/core/ports"
	"github.com/vncsmyrnk/electoral/internal/metrics"
)

type windowService struct {
	repo    ports.ConfigRepository
	clock   Clock
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewWindowService returns the single gate every voting and opening action
// goes through.
func NewWindowService(repo ports.ConfigRepository, clock Clock, m *metrics.Metrics, logger *slog.Logger) ports.WindowService {
	return &windowService{
		repo:    repo,
		clock:   clock,
		metrics: m,
		logger:  logger,
	}
}

func (s *windowService) Status(ctx context.Context) (domain.WindowStatus, error) {
	_, status, err := s.Snapshot(ctx)
	return status, err
}

func (s *windowService) Snapshot(ctx context.Context) (domain.VotingConfig, domain.WindowStatus, error) {
	cfg, err := loadVotingConfig(ctx, s.repo, s.logger)
	if err != nil {
		return domain.VotingConfig{}, domain.WindowStatus{}, err
	}

	status := domain.Evaluate(cfg, s.clock.Now())
	s.metrics.SetWindowActive(status.Active)
	return cfg, status, nil
}

func (s *windowService) Require(ctx context.Context) error {
	status, err := s.Status(ctx)
	if err != nil {
		return err
	}
	return windowError(status)
}

func windowError(status domain.WindowStatus) error {
	if status.Active {
		return nil
	}
	return fmt.Errorf("%w: %s", domain.ErrWindowClosed, status.Reason)
}

// loadVotingConfig reads one snapshot of the stored entries and parses it,
// replacing malformed values with their defaults.
func loadVotingConfig(ctx context.Context, repo ports.ConfigRepository, logger *slog.Logger) (domain.VotingConfig, error) {
	entries, err := repo.Entries(ctx)
	if err != nil {
		return domain.VotingConfig{}, fmt.Errorf("failed to read configuration: %w", err)
	}

	return domain.ParseConfigLenient(entryValues(entries), func(key, value string, err error) {
		logger.Warn("invalid configuration value, using default",
			"key", key,
			"value", value,
			"error", err,
		)
	}), nil
}

func entryValues(entries []domain.ConfigEntry) map[string]string {
	values := make(map[string]string, len(entries))
	for _, e := range entries {
		values[e.Key] = e.Value
	}
	return values
}

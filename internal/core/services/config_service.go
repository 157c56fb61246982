package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vncsmyrnk/electoral/internal/core/domain"
	"github.com/vncsmyrnk/electoral/internal/core/ports"
)

type configService struct {
	repo   ports.ConfigRepository
	logger *slog.Logger
}

func NewConfigService(repo ports.ConfigRepository, logger *slog.Logger) ports.ConfigService {
	return &configService{
		repo:   repo,
		logger: logger,
	}
}

func (s *configService) Get(ctx context.Context) (domain.VotingConfig, error) {
	return loadVotingConfig(ctx, s.repo, s.logger)
}

// Entries lists every known key in display order, with defaults for keys
// that were never stored.
func (s *configService) Entries(ctx context.Context) ([]domain.ConfigEntry, error) {
	stored, err := s.repo.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}

	byKey := make(map[string]domain.ConfigEntry, len(stored))
	for _, e := range stored {
		byKey[e.Key] = e
	}

	defaults := domain.DefaultConfigEntries()
	out := make([]domain.ConfigEntry, 0, len(domain.ConfigKeys))
	for _, key := range domain.ConfigKeys {
		e, ok := byKey[key]
		if !ok {
			e = domain.ConfigEntry{Key: key, Value: defaults[key]}
		}
		e.Description = domain.ConfigDescription(key)
		out = append(out, e)
	}
	return out, nil
}

func (s *configService) Set(ctx context.Context, key, value string) (domain.VotingConfig, error) {
	return s.Update(ctx, map[string]string{key: value})
}

// Update applies every change or none. The resulting snapshot must parse
// strictly, which also rejects an inverted date range.
func (s *configService) Update(ctx context.Context, changes map[string]string) (domain.VotingConfig, error) {
	if len(changes) == 0 {
		return domain.VotingConfig{}, fmt.Errorf("%w: no configuration changes", domain.ErrMissingField)
	}
	for key := range changes {
		if !domain.IsConfigKey(key) {
			return domain.VotingConfig{}, fmt.Errorf("%w: %s", domain.ErrUnknownConfigKey, key)
		}
	}

	var updated domain.VotingConfig
	err := s.repo.Update(ctx, func(current map[string]string) (map[string]string, error) {
		merged := domain.ParseConfigLenient(current, nil).Entries()
		for key, value := range changes {
			merged[key] = strings.TrimSpace(value)
		}

		cfg, err := domain.ParseConfig(merged)
		if err != nil {
			return nil, err
		}

		canonical := cfg.Entries()
		writes := make(map[string]string, len(changes))
		for key := range changes {
			writes[key] = canonical[key]
		}
		updated = cfg
		return writes, nil
	})
	if err != nil {
		return domain.VotingConfig{}, err
	}

	s.logger.Info("configuration updated", "keys", changedKeys(changes))
	return updated, nil
}

func (s *configService) Reset(ctx context.Context) (domain.VotingConfig, error) {
	if err := s.repo.Replace(ctx, domain.DefaultConfigEntries()); err != nil {
		return domain.VotingConfig{}, fmt.Errorf("failed to reset configuration: %w", err)
	}
	s.logger.Info("configuration reset to defaults")
	return domain.DefaultVotingConfig(), nil
}

func changedKeys(changes map[string]string) []string {
	keys := make([]string, 0, len(changes))
	for _, key := range domain.ConfigKeys {
		if _, ok := changes[key]; ok {
			keys = append(keys, key)
		}
	}
	return keys
}

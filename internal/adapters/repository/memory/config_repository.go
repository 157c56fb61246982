package memory

import (
	"context"

	"github.com/vncsmyrnk/electoral/internal/core/domain"
	"github.com/vncsmyrnk/electoral/internal/core/ports"
)

type configRepository struct {
	s *Store
}

func NewConfigRepository(s *Store) ports.ConfigRepository {
	return &configRepository{s: s}
}

func (r *configRepository) Entries(_ context.Context) ([]domain.ConfigEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]domain.ConfigEntry, 0, len(r.s.config))
	for _, key := range domain.ConfigKeys {
		if e, ok := r.s.config[key]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *configRepository) Update(_ context.Context, apply func(current map[string]string) (map[string]string, error)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current := make(map[string]string, len(r.s.config))
	for key, e := range r.s.config {
		current[key] = e.Value
	}

	changes, err := apply(current)
	if err != nil {
		return err
	}
	r.s.putConfig(changes)
	return nil
}

func (r *configRepository) Replace(_ context.Context, values map[string]string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.config = make(map[string]domain.ConfigEntry, len(values))
	r.s.putConfig(values)
	return nil
}

// SeedDefaults stores the default configuration if nothing is stored yet.
func (s *Store) SeedDefaults() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.config) == 0 {
		s.putConfig(domain.DefaultConfigEntries())
	}
}

func (s *Store) putConfig(values map[string]string) {
	now := s.now()
	for key, value := range values {
		s.config[key] = domain.ConfigEntry{
			Key:         key,
			Value:       value,
			Description: domain.ConfigDescription(key),
			UpdatedAt:   now,
		}
	}
}

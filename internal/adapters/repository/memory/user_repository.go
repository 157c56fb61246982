package memory

import (
	"context"

	"github.com/vncsmyrnk/electoral/internal/core/domain"
	"github.com/vncsmyrnk/electoral/internal/core/ports"
)

type userRepository struct {
	s *Store
}

func NewUserRepository(s *Store) ports.UserRepository {
	return &userRepository{s: s}
}

func (r *userRepository) GetByNationalID(_ context.Context, nationalID string) (*domain.SystemUser, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[nationalID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	c := *u
	return &c, nil
}

func (r *userRepository) Upsert(_ context.Context, user *domain.SystemUser) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if existing, ok := r.s.users[user.NationalID]; ok {
		user.ID = existing.ID
		user.CreatedAt = existing.CreatedAt
	}
	c := *user
	r.s.users[user.NationalID] = &c
	return nil
}

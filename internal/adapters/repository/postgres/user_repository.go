package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vncsmyrnk/electoral/internal/core/domain"
	"github.com/vncsmyrnk/electoral/internal/core/ports"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) ports.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByNationalID(ctx context.Context, nationalID string) (*domain.SystemUser, error) {
	query := `
		SELECT id, national_id, given_name, family_name, role, password_hash, created_at
		FROM system_users WHERE national_id = $1
	`
	user := &domain.SystemUser{}
	err := r.db.QueryRowContext(ctx, query, nationalID).Scan(
		&user.ID,
		&user.NationalID,
		&user.GivenName,
		&user.FamilyName,
		&user.Role,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (r *userRepository) Upsert(ctx context.Context, user *domain.SystemUser) error {
	query := `
		INSERT INTO system_users (id, national_id, given_name, family_name, role, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (national_id) DO UPDATE SET
			given_name = EXCLUDED.given_name,
			family_name = EXCLUDED.family_name,
			role = EXCLUDED.role,
			password_hash = EXCLUDED.password_hash
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		user.ID,
		user.NationalID,
		user.GivenName,
		user.FamilyName,
		string(user.Role),
		user.PasswordHash,
		user.CreatedAt,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vncsmyrnk/electoral/internal/core/domain"
	"github.com/vncsmyrnk/electoral/internal/core/ports"
)

type configRepository struct {
	db *sql.DB
}

func NewConfigRepository(db *sql.DB) ports.ConfigRepository {
	return &configRepository{
		db: db,
	}
}

const upsertConfigEntry = `
	INSERT INTO config_entries (key, value, description, updated_at)
	VALUES ($1, $2, $3, NOW())
	ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
`

// Entries is a single statement, so it always sees one committed snapshot.
func (r *configRepository) Entries(ctx context.Context) ([]domain.ConfigEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value, description, updated_at FROM config_entries ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}
	defer rows.Close()

	entries := []domain.ConfigEntry{}
	for rows.Next() {
		var e domain.ConfigEntry
		if err := rows.Scan(&e.Key, &e.Value, &e.Description, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan configuration entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}
	return entries, nil
}

func (r *configRepository) Update(ctx context.Context, apply func(current map[string]string) (map[string]string, error)) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := lockConfig(ctx, tx); err != nil {
			return err
		}

		rows, err := tx.QueryContext(ctx, `SELECT key, value FROM config_entries`)
		if err != nil {
			return fmt.Errorf("failed to read configuration: %w", err)
		}
		current := make(map[string]string)
		for rows.Next() {
			var key, value string
			if err := rows.Scan(&key, &value); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan configuration entry: %w", err)
			}
			current[key] = value
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed to read configuration: %w", err)
		}

		changes, err := apply(current)
		if err != nil {
			return err
		}
		return writeConfig(ctx, tx, changes)
	})
}

func (r *configRepository) Replace(ctx context.Context, values map[string]string) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := lockConfig(ctx, tx); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM config_entries`); err != nil {
			return fmt.Errorf("failed to clear configuration: %w", err)
		}
		return writeConfig(ctx, tx, values)
	})
}

// lockConfig serializes writers while leaving plain reads unblocked.
func lockConfig(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, `LOCK TABLE config_entries IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		return fmt.Errorf("failed to lock configuration: %w", err)
	}
	return nil
}

func writeConfig(ctx context.Context, tx *sql.Tx, values map[string]string) error {
	for key, value := range values {
		if _, err := tx.ExecContext(ctx, upsertConfigEntry, key, value, domain.ConfigDescription(key)); err != nil {
			return fmt.Errorf("failed to write configuration key %s: %w", key, err)
		}
	}
	return nil
}

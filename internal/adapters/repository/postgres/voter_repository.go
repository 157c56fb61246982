package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vncsmyrnk/electoral/internal/core/domain"
	"github.com/vncsmyrnk/electoral/internal/core/ports"
)

type voterRepository struct {
	db *sql.DB
}

func NewVoterRepository(db *sql.DB) ports.VoterRepository {
	return &voterRepository{
		db: db,
	}
}

const voterStatusSelect = `
	SELECT v.national_id, v.given_name, v.family_name, v.category, v.enabled,
	       v.created_at, v.updated_at, vo.cast_at, s.name, s.location
	FROM voters v
	LEFT JOIN votes vo ON vo.voter_national_id = v.national_id AND vo.status = 'valid'
	LEFT JOIN polling_stations s ON s.id = vo.station_id
`

// UpsertBatch writes the records in one transaction. Each row runs under its
// own savepoint so a failing row is counted and skipped.
func (r *voterRepository) UpsertBatch(ctx context.Context, records []domain.VoterRecord) (domain.UpsertResult, error) {
	query := `
		INSERT INTO voters (national_id, given_name, family_name, category)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (national_id) DO UPDATE SET
			given_name = EXCLUDED.given_name,
			family_name = EXCLUDED.family_name,
			category = EXCLUDED.category,
			updated_at = NOW()
		RETURNING (xmax = 0) AS inserted
	`

	var result domain.UpsertResult
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, rec := range records {
			if _, err := tx.ExecContext(ctx, "SAVEPOINT voter_row"); err != nil {
				return fmt.Errorf("failed to create savepoint: %w", err)
			}

			var inserted bool
			err := tx.QueryRowContext(ctx, query, rec.NationalID, rec.GivenName, rec.FamilyName, rec.Category).Scan(&inserted)
			if err != nil {
				if _, rbErr := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT voter_row"); rbErr != nil {
					return fmt.Errorf("failed to roll back voter row: %w", rbErr)
				}
				result.Errors++
				continue
			}

			if _, err := tx.ExecContext(ctx, "RELEASE SAVEPOINT voter_row"); err != nil {
				return fmt.Errorf("failed to release savepoint: %w", err)
			}
			if inserted {
				result.Inserted++
			} else {
				result.Updated++
			}
		}
		return nil
	})
	if err != nil {
		return domain.UpsertResult{}, err
	}
	return result, nil
}

func (r *voterRepository) SetEnabled(ctx context.Context, nationalID string, enabled bool) error {
	query := `UPDATE voters SET enabled = $2, updated_at = NOW() WHERE national_id = $1`
	res, err := r.db.ExecContext(ctx, query, nationalID, enabled)
	if err != nil {
		return fmt.Errorf("failed to update voter: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update voter: %w", err)
	}
	if n == 0 {
		return domain.ErrVoterNotFound
	}
	return nil
}

func (r *voterRepository) Toggle(ctx context.Context, nationalID string) (bool, error) {
	query := `UPDATE voters SET enabled = NOT enabled, updated_at = NOW() WHERE national_id = $1 RETURNING enabled`
	var enabled bool
	err := r.db.QueryRowContext(ctx, query, nationalID).Scan(&enabled)
	if errors.Is(err, sql.ErrNoRows) {
		return false, domain.ErrVoterNotFound
	}
	if err != nil {
		return false, fmt.Errorf("failed to toggle voter: %w", err)
	}
	return enabled, nil
}

func (r *voterRepository) FindByNationalID(ctx context.Context, nationalID string) (*domain.VoterStatus, error) {
	row := r.db.QueryRowContext(ctx, voterStatusSelect+` WHERE v.national_id = $1`, nationalID)
	status, err := scanVoterStatus(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrVoterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get voter: %w", err)
	}
	return status, nil
}

func (r *voterRepository) List(ctx context.Context) ([]domain.VoterStatus, error) {
	rows, err := r.db.QueryContext(ctx, voterStatusSelect+` ORDER BY v.family_name, v.given_name, v.national_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list voters: %w", err)
	}
	defer rows.Close()

	voters := []domain.VoterStatus{}
	for rows.Next() {
		status, err := scanVoterStatus(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan voter: %w", err)
		}
		voters = append(voters, *status)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list voters: %w", err)
	}
	return voters, nil
}

func (r *voterRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM voters`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count voters: %w", err)
	}
	return n, nil
}

func (r *voterRepository) ClearAll(ctx context.Context) (int, error) {
	var deleted int64
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM votes`); err != nil {
			return fmt.Errorf("failed to delete votes: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `UPDATE polling_stations SET votes = 0`); err != nil {
			return fmt.Errorf("failed to reset station counters: %w", err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM voters`)
		if err != nil {
			return fmt.Errorf("failed to delete voters: %w", err)
		}
		deleted, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}
	return int(deleted), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVoterStatus(row rowScanner) (*domain.VoterStatus, error) {
	var (
		status          domain.VoterStatus
		castAt          sql.NullTime
		stationName     sql.NullString
		stationLocation sql.NullString
	)
	err := row.Scan(
		&status.NationalID,
		&status.GivenName,
		&status.FamilyName,
		&status.Category,
		&status.Enabled,
		&status.CreatedAt,
		&status.UpdatedAt,
		&castAt,
		&stationName,
		&stationLocation,
	)
	if err != nil {
		return nil, err
	}

	if castAt.Valid {
		t := castAt.Time
		status.Voted = true
		status.VotedAt = &t
		status.StationName = stationName.String
		status.StationLocation = stationLocation.String
	}
	return &status, nil
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/electoral/internal/core/domain"
	"github.com/vncsmyrnk/electoral/internal/core/ports"
)

type stationRepository struct {
	db *sql.DB
}

func NewStationRepository(db *sql.DB) ports.StationRepository {
	return &stationRepository{
		db: db,
	}
}

const stationColumns = `
	id, name, location, president_national_id, president_name, is_open,
	opened_at, closed_at, votes, created_at, created_day
`

func (r *stationRepository) Create(ctx context.Context, station *domain.PollingStation) error {
	query := `
		INSERT INTO polling_stations (id, name, location, president_national_id, president_name, is_open, votes, created_at, created_day)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::date)
	`
	_, err := r.db.ExecContext(ctx, query,
		station.ID,
		station.Name,
		station.Location,
		station.PresidentNationalID,
		station.PresidentName,
		station.IsOpen,
		station.Votes,
		station.CreatedAt,
		station.CreatedDay.String(),
	)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateStation
	}
	if err != nil {
		return fmt.Errorf("failed to create station: %w", err)
	}
	return nil
}

func (r *stationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PollingStation, error) {
	query := `SELECT ` + stationColumns + ` FROM polling_stations WHERE id = $1`
	station, err := scanStation(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrStationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get station: %w", err)
	}
	return station, nil
}

func (r *stationRepository) ListByDay(ctx context.Context, day domain.Day) ([]*domain.PollingStation, error) {
	query := `SELECT ` + stationColumns + ` FROM polling_stations WHERE created_day = $1::date ORDER BY created_at, name`
	rows, err := r.db.QueryContext(ctx, query, day.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list stations: %w", err)
	}
	defer rows.Close()

	stations := []*domain.PollingStation{}
	for rows.Next() {
		station, err := scanStation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan station: %w", err)
		}
		stations = append(stations, station)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list stations: %w", err)
	}
	return stations, nil
}

// SetOpen only matches a station currently in the opposite state, so two
// concurrent toggles cannot both apply.
func (r *stationRepository) SetOpen(ctx context.Context, id uuid.UUID, open bool, at time.Time) (*domain.PollingStation, error) {
	query := `
		UPDATE polling_stations SET
			is_open = $2::boolean,
			opened_at = CASE WHEN $2::boolean THEN $3::timestamptz ELSE opened_at END,
			closed_at = CASE WHEN $2::boolean THEN closed_at ELSE $3::timestamptz END
		WHERE id = $1 AND is_open = NOT $2::boolean
		RETURNING ` + stationColumns
	station, err := scanStation(r.db.QueryRowContext(ctx, query, id, open, at))
	if errors.Is(err, sql.ErrNoRows) {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, domain.ErrStationStateChanged
	}
	if err != nil {
		return nil, fmt.Errorf("failed to toggle station: %w", err)
	}
	return station, nil
}

func (r *stationRepository) DeleteAll(ctx context.Context) (int, error) {
	var deleted int64
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM votes`); err != nil {
			return fmt.Errorf("failed to delete votes: %w", err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM polling_stations`)
		if err != nil {
			return fmt.Errorf("failed to delete stations: %w", err)
		}
		deleted, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}
	return int(deleted), nil
}

func scanStation(row rowScanner) (*domain.PollingStation, error) {
	var (
		station    domain.PollingStation
		openedAt   sql.NullTime
		closedAt   sql.NullTime
		createdDay time.Time
	)
	err := row.Scan(
		&station.ID,
		&station.Name,
		&station.Location,
		&station.PresidentNationalID,
		&station.PresidentName,
		&station.IsOpen,
		&openedAt,
		&closedAt,
		&station.Votes,
		&station.CreatedAt,
		&createdDay,
	)
	if err != nil {
		return nil, err
	}

	if openedAt.Valid {
		t := openedAt.Time
		station.OpenedAt = &t
	}
	if closedAt.Valid {
		t := closedAt.Time
		station.ClosedAt = &t
	}
	station.CreatedDay = domain.DayOf(createdDay)
	return &station, nil
}

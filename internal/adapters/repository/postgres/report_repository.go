package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vncsmyrnk/electoral/internal/core/domain"
	"github.com/vncsmyrnk/electoral/internal/core/ports"
)

type reportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) ports.ReportRepository {
	return &reportRepository{
		db: db,
	}
}

func (r *reportRepository) Totals(ctx context.Context) (domain.Totals, error) {
	query := `
		SELECT COUNT(*), COUNT(vo.id)
		FROM voters v
		LEFT JOIN votes vo ON vo.voter_national_id = v.national_id AND vo.status = 'valid'
		WHERE v.enabled
	`
	var t domain.Totals
	if err := r.db.QueryRowContext(ctx, query).Scan(&t.RegisteredVoters, &t.VotedVoters); err != nil {
		return domain.Totals{}, fmt.Errorf("failed to count voters: %w", err)
	}
	return t, nil
}

func (r *reportRepository) ByStation(ctx context.Context) ([]domain.StationTally, error) {
	query := `
		SELECT s.id, s.name, s.location, s.created_day, s.is_open, COUNT(vo.id)
		FROM polling_stations s
		LEFT JOIN votes vo ON vo.station_id = s.id AND vo.status = 'valid'
		GROUP BY s.id
		ORDER BY s.created_day DESC, s.location, s.name
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to tally stations: %w", err)
	}
	defer rows.Close()

	tallies := []domain.StationTally{}
	for rows.Next() {
		var (
			t   domain.StationTally
			day time.Time
		)
		if err := rows.Scan(&t.StationID, &t.Name, &t.Location, &day, &t.IsOpen, &t.Votes); err != nil {
			return nil, fmt.Errorf("failed to scan station tally: %w", err)
		}
		t.Day = domain.DayOf(day)
		tallies = append(tallies, t)
	}
	return tallies, rows.Err()
}

func (r *reportRepository) ByLocation(ctx context.Context) ([]domain.LocationTally, error) {
	query := `
		SELECT s.location, COUNT(*)
		FROM votes vo
		JOIN polling_stations s ON s.id = vo.station_id
		WHERE vo.status = 'valid'
		GROUP BY s.location
		ORDER BY s.location
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to tally locations: %w", err)
	}
	defer rows.Close()

	tallies := []domain.LocationTally{}
	for rows.Next() {
		var t domain.LocationTally
		if err := rows.Scan(&t.Location, &t.Votes); err != nil {
			return nil, fmt.Errorf("failed to scan location tally: %w", err)
		}
		tallies = append(tallies, t)
	}
	return tallies, rows.Err()
}

func (r *reportRepository) ByCategory(ctx context.Context) ([]domain.CategoryTally, error) {
	query := `
		SELECT v.category, COUNT(*), COUNT(vo.id)
		FROM voters v
		LEFT JOIN votes vo ON vo.voter_national_id = v.national_id AND vo.status = 'valid'
		WHERE v.enabled
		GROUP BY v.category
		ORDER BY v.category
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to tally categories: %w", err)
	}
	defer rows.Close()

	tallies := []domain.CategoryTally{}
	for rows.Next() {
		var t domain.CategoryTally
		if err := rows.Scan(&t.Category, &t.Registered, &t.Voted); err != nil {
			return nil, fmt.Errorf("failed to scan category tally: %w", err)
		}
		tallies = append(tallies, t)
	}
	return tallies, rows.Err()
}

func (r *reportRepository) ByHour(ctx context.Context, timezone string) ([]domain.HourTally, error) {
	query := `
		SELECT EXTRACT(HOUR FROM cast_at AT TIME ZONE $1)::int AS hour, COUNT(*)
		FROM votes
		WHERE status = 'valid'
		GROUP BY hour
		ORDER BY hour
	`
	rows, err := r.db.QueryContext(ctx, query, timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to tally hours: %w", err)
	}
	defer rows.Close()

	tallies := []domain.HourTally{}
	for rows.Next() {
		var t domain.HourTally
		if err := rows.Scan(&t.Hour, &t.Votes); err != nil {
			return nil, fmt.Errorf("failed to scan hour tally: %w", err)
		}
		tallies = append(tallies, t)
	}
	return tallies, rows.Err()
}

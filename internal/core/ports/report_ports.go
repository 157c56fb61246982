package ports

import (
	"context"

	"github.com/vncsmyrnk/electoral/internal/core/domain"
)

// ReportRepository exposes read-only aggregates. Only valid votes count and
// registered voters are the enabled ones.
type ReportRepository interface {
	Totals(ctx context.Context) (domain.Totals, error)
	ByStation(ctx context.Context) ([]domain.StationTally, error)
	// ByLocation groups votes by the location of the station they were cast at.
	ByLocation(ctx context.Context) ([]domain.LocationTally, error)
	ByCategory(ctx context.Context) ([]domain.CategoryTally, error)
	// ByHour counts votes per hour of day in the named IANA time zone.
	ByHour(ctx context.Context, timezone string) ([]domain.HourTally, error)
}

type ReportService interface {
	General(ctx context.Context) (*domain.GeneralReport, error)
	ByStation(ctx context.Context) ([]domain.StationTally, error)
	ByLocation(ctx context.Context) ([]domain.LocationTally, error)
	BySchedule(ctx context.Context) ([]domain.BucketTally, error)
	ByCategory(ctx context.Context) ([]domain.CategoryTally, error)
}

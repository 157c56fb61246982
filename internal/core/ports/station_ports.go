package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/electoral/internal/core/domain"
)

type StationRepository interface {
	// Create fails with domain.ErrDuplicateStation when a station with the same
	// case-insensitive name and location exists on station.CreatedDay.
	Create(ctx context.Context, station *domain.PollingStation) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PollingStation, error)
	ListByDay(ctx context.Context, day domain.Day) ([]*domain.PollingStation, error)
	// SetOpen moves a station from !open to open (or back) and stamps at.
	// It fails with domain.ErrStationStateChanged when the station is not in
	// the expected state.
	SetOpen(ctx context.Context, id uuid.UUID, open bool, at time.Time) (*domain.PollingStation, error)
	// DeleteAll deletes every station and the votes cast at them.
	DeleteAll(ctx context.Context) (int, error)
}

type CreateStationInput struct {
	Name                string `json:"name"`
	Location            string `json:"location"`
	PresidentNationalID string `json:"president_national_id"`
	PresidentName       string `json:"president_name"`
}

type StationService interface {
	Create(ctx context.Context, input CreateStationInput) (*domain.PollingStation, error)
	ToggleOpen(ctx context.Context, id uuid.UUID) (*domain.PollingStation, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.PollingStation, error)
	ListForDay(ctx context.Context, day domain.Day) ([]*domain.PollingStation, error)
	ListToday(ctx context.Context) ([]*domain.PollingStation, error)
	FindForPresident(ctx context.Context, id uuid.UUID, presidentNationalID string) (*domain.PollingStation, error)
	OpenAll(ctx context.Context) ([]*domain.PollingStation, error)
	CloseAll(ctx context.Context) ([]*domain.PollingStation, error)
	DeleteAll(ctx context.Context) (int, error)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/electoral/internal/core/domain"
	"github.com/vncsmyrnk/electoral/internal/core/ports"
	"github.com/vncsmyrnk/electoral/internal/metrics"
)

type stationService struct {
	repo    ports.StationRepository
	window  ports.WindowService
	clock   Clock
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewStationService(
	repo ports.StationRepository,
	window ports.WindowService,
	clock Clock,
	m *metrics.Metrics,
	logger *slog.Logger,
) ports.StationService {
	return &stationService{
		repo:    repo,
		window:  window,
		clock:   clock,
		metrics: m,
		logger:  logger,
	}
}

func (s *stationService) Create(ctx context.Context, input ports.CreateStationInput) (*domain.PollingStation, error) {
	name := strings.TrimSpace(input.Name)
	location := strings.TrimSpace(input.Location)
	president := strings.TrimSpace(input.PresidentNationalID)

	if name == "" || location == "" || president == "" {
		return nil, domain.ErrMissingField
	}
	if !domain.ValidNationalID(president) {
		return nil, domain.ErrInvalidPresidentID
	}
	if err := s.window.Require(ctx); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	station := &domain.PollingStation{
		ID:                  uuid.New(),
		Name:                name,
		Location:            location,
		PresidentNationalID: president,
		PresidentName:       strings.TrimSpace(input.PresidentName),
		CreatedAt:           now,
		CreatedDay:          domain.DayOf(now),
	}

	if err := s.repo.Create(ctx, station); err != nil {
		return nil, err
	}

	s.logger.Info("polling station created",
		"station_id", station.ID,
		"name", station.Name,
		"location", station.Location,
	)
	return station, nil
}

// ToggleOpen closes an open station unconditionally and opens a closed one
// only while the voting window is active. Stations of earlier days are kept
// for history only and report not found.
func (s *stationService) ToggleOpen(ctx context.Context, id uuid.UUID) (*domain.PollingStation, error) {
	station, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if station.CreatedDay != s.clock.Today() {
		return nil, domain.ErrStationNotFound
	}

	open := !station.IsOpen
	if open {
		if err := s.window.Require(ctx); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.SetOpen(ctx, id, open, s.clock.Now())
	if err != nil {
		return nil, err
	}

	s.metrics.IncrementStationToggles(open)
	s.logger.Info("polling station toggled", "station_id", id, "open", open)
	return updated, nil
}

func (s *stationService) Get(ctx context.Context, id uuid.UUID) (*domain.PollingStation, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *stationService) ListForDay(ctx context.Context, day domain.Day) ([]*domain.PollingStation, error) {
	return s.repo.ListByDay(ctx, day)
}

func (s *stationService) ListToday(ctx context.Context) ([]*domain.PollingStation, error) {
	return s.repo.ListByDay(ctx, s.clock.Today())
}

// FindForPresident resolves the station-access flow: the station must have
// been created today, be assigned to the president and be open.
func (s *stationService) FindForPresident(ctx context.Context, id uuid.UUID, presidentNationalID string) (*domain.PollingStation, error) {
	presidentNationalID = strings.TrimSpace(presidentNationalID)
	if !domain.ValidNationalID(presidentNationalID) {
		return nil, domain.ErrInvalidPresidentID
	}

	station, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if station.CreatedDay != s.clock.Today() || station.PresidentNationalID != presidentNationalID {
		return nil, domain.ErrStationNotFound
	}
	if !station.IsOpen {
		return nil, domain.ErrStationClosed
	}
	return station, nil
}

func (s *stationService) OpenAll(ctx context.Context) ([]*domain.PollingStation, error) {
	if err := s.window.Require(ctx); err != nil {
		return nil, err
	}
	return s.setAll(ctx, true)
}

func (s *stationService) CloseAll(ctx context.Context) ([]*domain.PollingStation, error) {
	return s.setAll(ctx, false)
}

// setAll moves every station of today to the requested state. Stations that
// another caller moved concurrently are already where they should be.
func (s *stationService) setAll(ctx context.Context, open bool) ([]*domain.PollingStation, error) {
	stations, err := s.repo.ListByDay(ctx, s.clock.Today())
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	changed := 0
	for i, station := range stations {
		if station.IsOpen == open {
			continue
		}
		updated, err := s.repo.SetOpen(ctx, station.ID, open, now)
		switch {
		case errors.Is(err, domain.ErrStationStateChanged):
			if updated, err = s.repo.GetByID(ctx, station.ID); err != nil {
				return nil, err
			}
		case err != nil:
			return nil, fmt.Errorf("failed to toggle station %s: %w", station.ID, err)
		default:
			changed++
			s.metrics.IncrementStationToggles(open)
		}
		stations[i] = updated
	}

	s.logger.Info("polling stations toggled in bulk", "open", open, "changed", changed)
	return stations, nil
}

func (s *stationService) DeleteAll(ctx context.Context) (int, error) {
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stations: %w", err)
	}
	s.logger.Warn("polling stations deleted", "deleted", n)
	return n, nil
}

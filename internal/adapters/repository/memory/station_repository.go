package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/electoral/internal/core/domain"
	"github.com/vncsmyrnk/electoral/internal/core/ports"
)

type stationRepository struct {
	s *Store
}

func NewStationRepository(s *Store) ports.StationRepository {
	return &stationRepository{s: s}
}

func (r *stationRepository) Create(_ context.Context, station *domain.PollingStation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := station.DuplicateKey()
	if _, ok := r.s.stationKeys[key]; ok {
		return domain.ErrDuplicateStation
	}
	r.s.stationKeys[key] = station.ID
	r.s.stations[station.ID] = copyStation(station)
	return nil
}

func (r *stationRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.PollingStation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	st, ok := r.s.stations[id]
	if !ok {
		return nil, domain.ErrStationNotFound
	}
	return copyStation(st), nil
}

func (r *stationRepository) ListByDay(_ context.Context, day domain.Day) ([]*domain.PollingStation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*domain.PollingStation, 0)
	for _, st := range r.s.stations {
		if st.CreatedDay == day {
			out = append(out, copyStation(st))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *stationRepository) SetOpen(_ context.Context, id uuid.UUID, open bool, at time.Time) (*domain.PollingStation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	st, ok := r.s.stations[id]
	if !ok {
		return nil, domain.ErrStationNotFound
	}
	if st.IsOpen == open {
		return nil, domain.ErrStationStateChanged
	}

	st.IsOpen = open
	if open {
		st.OpenedAt = &at
	} else {
		st.ClosedAt = &at
	}
	return copyStation(st), nil
}

func (r *stationRepository) DeleteAll(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n := len(r.s.stations)
	r.s.stations = make(map[uuid.UUID]*domain.PollingStation)
	r.s.stationKeys = make(map[string]uuid.UUID)
	r.s.votes = make(map[uuid.UUID]*domain.Vote)
	r.s.validVotes = make(map[string]uuid.UUID)
	return n, nil
}

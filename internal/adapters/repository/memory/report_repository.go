package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/vncsmyrnk/electoral/internal/core/domain"
	"github.com/vncsmyrnk/electoral/internal/core/ports"
)

type reportRepository struct {
	s *Store
}

func NewReportRepository(s *Store) ports.ReportRepository {
	return &reportRepository{s: s}
}

func (r *reportRepository) Totals(_ context.Context) (domain.Totals, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var t domain.Totals
	for _, v := range r.s.voters {
		if !v.Enabled {
			continue
		}
		t.RegisteredVoters++
		if _, ok := r.s.validVotes[v.NationalID]; ok {
			t.VotedVoters++
		}
	}
	return t, nil
}

func (r *reportRepository) ByStation(_ context.Context) ([]domain.StationTally, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	counts := r.s.validVotesBy(func(v *domain.Vote) string { return v.StationID.String() })
	out := make([]domain.StationTally, 0, len(r.s.stations))
	for _, st := range r.s.stations {
		out = append(out, domain.StationTally{
			StationID: st.ID.String(),
			Name:      st.Name,
			Location:  st.Location,
			Day:       st.CreatedDay,
			IsOpen:    st.IsOpen,
			Votes:     counts[st.ID.String()],
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Day != out[j].Day {
			return out[i].Day.After(out[j].Day)
		}
		if out[i].Location != out[j].Location {
			return out[i].Location < out[j].Location
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *reportRepository) ByLocation(_ context.Context) ([]domain.LocationTally, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	counts := r.s.validVotesBy(func(v *domain.Vote) string {
		if st, ok := r.s.stations[v.StationID]; ok {
			return st.Location
		}
		return ""
	})
	delete(counts, "")

	out := make([]domain.LocationTally, 0, len(counts))
	for location, n := range counts {
		out = append(out, domain.LocationTally{Location: location, Votes: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Location < out[j].Location })
	return out, nil
}

func (r *reportRepository) ByCategory(_ context.Context) ([]domain.CategoryTally, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	byCategory := make(map[string]*domain.CategoryTally)
	for _, v := range r.s.voters {
		if !v.Enabled {
			continue
		}
		t, ok := byCategory[v.Category]
		if !ok {
			t = &domain.CategoryTally{Category: v.Category}
			byCategory[v.Category] = t
		}
		t.Registered++
		if _, ok := r.s.validVotes[v.NationalID]; ok {
			t.Voted++
		}
	}

	out := make([]domain.CategoryTally, 0, len(byCategory))
	for _, t := range byCategory {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func (r *reportRepository) ByHour(_ context.Context, timezone string) ([]domain.HourTally, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load time zone %q: %w", timezone, err)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var hours [24]int
	for _, id := range r.s.validVotes {
		hours[r.s.votes[id].CastAt.In(loc).Hour()]++
	}

	var out []domain.HourTally
	for h, n := range hours {
		if n > 0 {
			out = append(out, domain.HourTally{Hour: h, Votes: n})
		}
	}
	return out, nil
}

// validVotesBy counts valid votes grouped by key. Callers hold s.mu.
func (s *Store) validVotesBy(key func(*domain.Vote) string) map[string]int {
	counts := make(map[string]int)
	for _, id := range s.validVotes {
		counts[key(s.votes[id])]++
	}
	return counts
}

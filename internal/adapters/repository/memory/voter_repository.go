package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/vncsmyrnk/electoral/internal/core/domain"
	"github.com/vncsmyrnk/electoral/internal/core/ports"
)

type voterRepository struct {
	s *Store
}

func NewVoterRepository(s *Store) ports.VoterRepository {
	return &voterRepository{s: s}
}

func (r *voterRepository) UpsertBatch(_ context.Context, records []domain.VoterRecord) (domain.UpsertResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var result domain.UpsertResult
	now := r.s.now()
	for _, rec := range records {
		if v, ok := r.s.voters[rec.NationalID]; ok {
			v.GivenName = rec.GivenName
			v.FamilyName = rec.FamilyName
			v.Category = rec.Category
			v.UpdatedAt = now
			result.Updated++
			continue
		}
		r.s.voters[rec.NationalID] = &domain.Voter{
			NationalID: rec.NationalID,
			GivenName:  rec.GivenName,
			FamilyName: rec.FamilyName,
			Category:   rec.Category,
			Enabled:    true,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		result.Inserted++
	}
	return result, nil
}

func (r *voterRepository) SetEnabled(_ context.Context, nationalID string, enabled bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	v, ok := r.s.voters[nationalID]
	if !ok {
		return domain.ErrVoterNotFound
	}
	v.Enabled = enabled
	v.UpdatedAt = r.s.now()
	return nil
}

func (r *voterRepository) Toggle(_ context.Context, nationalID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	v, ok := r.s.voters[nationalID]
	if !ok {
		return false, domain.ErrVoterNotFound
	}
	v.Enabled = !v.Enabled
	v.UpdatedAt = r.s.now()
	return v.Enabled, nil
}

func (r *voterRepository) FindByNationalID(_ context.Context, nationalID string) (*domain.VoterStatus, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	v, ok := r.s.voters[nationalID]
	if !ok {
		return nil, domain.ErrVoterNotFound
	}
	status := r.s.voterStatus(v)
	return &status, nil
}

func (r *voterRepository) List(_ context.Context) ([]domain.VoterStatus, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]domain.VoterStatus, 0, len(r.s.voters))
	for _, v := range r.s.voters {
		out = append(out, r.s.voterStatus(v))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FamilyName != out[j].FamilyName {
			return out[i].FamilyName < out[j].FamilyName
		}
		if out[i].GivenName != out[j].GivenName {
			return out[i].GivenName < out[j].GivenName
		}
		return out[i].NationalID < out[j].NationalID
	})
	return out, nil
}

func (r *voterRepository) Count(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.voters), nil
}

func (r *voterRepository) ClearAll(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n := len(r.s.voters)
	r.s.voters = make(map[string]*domain.Voter)
	r.s.votes = make(map[uuid.UUID]*domain.Vote)
	r.s.validVotes = make(map[string]uuid.UUID)
	for _, st := range r.s.stations {
		st.Votes = 0
	}
	return n, nil
}

// voterStatus joins v with its valid vote. Callers hold s.mu.
func (s *Store) voterStatus(v *domain.Voter) domain.VoterStatus {
	status := domain.VoterStatus{Voter: *v}
	id, ok := s.validVotes[v.NationalID]
	if !ok {
		return status
	}
	vote := s.votes[id]
	castAt := vote.CastAt
	status.Voted = true
	status.VotedAt = &castAt
	if st, ok := s.stations[vote.StationID]; ok {
		status.StationName = st.Name
		status.StationLocation = st.Location
	}
	return status
}

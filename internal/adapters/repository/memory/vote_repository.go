package memory

import (
	"context"

	"github.com/vncsmyrnk/electoral/internal/core/domain"
	"github.com/vncsmyrnk/electoral/internal/core/ports"
)

type voteRepository struct {
	s *Store
}

func NewVoteRepository(s *Store) ports.VoteRepository {
	return &voteRepository{s: s}
}

func (r *voteRepository) HasValidVote(_ context.Context, nationalID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	_, ok := r.s.validVotes[nationalID]
	return ok, nil
}

// Cast re-checks every write precondition under the store lock, so
// concurrent casts for one voter leave exactly one valid vote.
func (r *voteRepository) Cast(_ context.Context, vote *domain.Vote, maxVotesPerStation int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	voter, ok := r.s.voters[vote.VoterNationalID]
	if !ok {
		return domain.ErrVoterNotFound
	}
	if !voter.Enabled {
		return domain.ErrVoterDisabled
	}
	if vote.Status == domain.VoteValid {
		if _, ok := r.s.validVotes[vote.VoterNationalID]; ok {
			return domain.ErrAlreadyVoted
		}
	}

	st, ok := r.s.stations[vote.StationID]
	if !ok {
		return domain.ErrStationNotFound
	}
	if !st.IsOpen {
		return domain.ErrStationClosed
	}
	if maxVotesPerStation > 0 && st.Votes >= maxVotesPerStation {
		return domain.ErrStationFull
	}

	v := *vote
	r.s.votes[v.ID] = &v
	if v.Status == domain.VoteValid {
		r.s.validVotes[v.VoterNationalID] = v.ID
	}
	st.Votes++
	return nil
}

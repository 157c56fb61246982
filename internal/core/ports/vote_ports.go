package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/electoral/internal/core/domain"
)

type VoteRepository interface {
	HasValidVote(ctx context.Context, nationalID string) (bool, error)
	// Cast inserts the vote and increments the station counter atomically.
	// At most one valid vote per voter survives concurrent calls; losers get
	// domain.ErrAlreadyVoted. A station that closed or filled up in the
	// meantime yields domain.ErrStationClosed or domain.ErrStationFull.
	Cast(ctx context.Context, vote *domain.Vote, maxVotesPerStation int) error
}

type CastVoteInput struct {
	NationalID string
	StationID  uuid.UUID
}

type VoteService interface {
	CastVote(ctx context.Context, input CastVoteInput) (*domain.Vote, error)
}

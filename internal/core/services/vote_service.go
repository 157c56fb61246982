package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/electoral/internal/core/domain"
	"github.com/vncsmyrnk/electoral/internal/core/ports"
	"github.com/vncsmyrnk/electoral/internal/metrics"
)

type voteService struct {
	voterRepo   ports.VoterRepository
	voteRepo    ports.VoteRepository
	stationRepo ports.StationRepository
	window      ports.WindowService
	clock       Clock
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

func NewVoteService(
	voterRepo ports.VoterRepository,
	voteRepo ports.VoteRepository,
	stationRepo ports.StationRepository,
	window ports.WindowService,
	clock Clock,
	m *metrics.Metrics,
	logger *slog.Logger,
) ports.VoteService {
	return &voteService{
		voterRepo:   voterRepo,
		voteRepo:    voteRepo,
		stationRepo: stationRepo,
		window:      window,
		clock:       clock,
		metrics:     m,
		logger:      logger,
	}
}

// CastVote records one valid vote for the voter at the station. The checks
// below give early, readable rejections; the repository enforces the one
// valid vote per voter and the station state again when it writes.
func (s *voteService) CastVote(ctx context.Context, input ports.CastVoteInput) (*domain.Vote, error) {
	vote, err := s.castVote(ctx, input)
	if err != nil {
		s.reject(input, err)
		return nil, err
	}

	s.metrics.IncrementVotesCast()
	s.logger.Info("vote cast",
		"vote_id", vote.ID,
		"national_id", vote.VoterNationalID,
		"station_id", vote.StationID,
	)
	return vote, nil
}

func (s *voteService) castVote(ctx context.Context, input ports.CastVoteInput) (*domain.Vote, error) {
	cfg, status, err := s.window.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if err := windowError(status); err != nil {
		return nil, err
	}

	if !domain.ValidNationalID(input.NationalID) {
		return nil, domain.ErrInvalidNationalID
	}

	voter, err := s.voterRepo.FindByNationalID(ctx, input.NationalID)
	if err != nil {
		return nil, err
	}
	if !voter.Enabled {
		return nil, domain.ErrVoterDisabled
	}

	voted, err := s.voteRepo.HasValidVote(ctx, input.NationalID)
	if err != nil {
		return nil, err
	}
	if voted {
		return nil, domain.ErrAlreadyVoted
	}

	station, err := s.stationRepo.GetByID(ctx, input.StationID)
	if err != nil {
		return nil, err
	}
	if station.CreatedDay != s.clock.Today() {
		return nil, domain.ErrStationNotFound
	}
	if !station.IsOpen {
		return nil, domain.ErrStationClosed
	}
	if cfg.MaxVotesPerStation > 0 && station.Votes >= cfg.MaxVotesPerStation {
		return nil, domain.ErrStationFull
	}

	vote := &domain.Vote{
		ID:              uuid.New(),
		VoterNationalID: input.NationalID,
		StationID:       input.StationID,
		CastAt:          s.clock.Now(),
		Status:          domain.VoteValid,
	}
	if err := s.voteRepo.Cast(ctx, vote, cfg.MaxVotesPerStation); err != nil {
		return nil, err
	}
	return vote, nil
}

func (s *voteService) reject(input ports.CastVoteInput, err error) {
	reason := rejectionReason(err)
	s.metrics.IncrementVoteRejections(reason)

	attrs := []any{
		"national_id", input.NationalID,
		"station_id", input.StationID,
		"reason", reason,
		"error", err,
	}
	if reason == "internal" {
		s.logger.Error("vote failed", attrs...)
		return
	}
	s.logger.Info("vote rejected", attrs...)
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrWindowClosed):
		return "window_closed"
	case errors.Is(err, domain.ErrVoterNotFound):
		return "voter_not_found"
	case errors.Is(err, domain.ErrVoterDisabled):
		return "voter_disabled"
	case errors.Is(err, domain.ErrAlreadyVoted):
		return "already_voted"
	case errors.Is(err, domain.ErrStationNotFound):
		return "station_not_found"
	case errors.Is(err, domain.ErrStationClosed):
		return "station_closed"
	case errors.Is(err, domain.ErrStationFull):
		return "station_full"
	case errors.Is(err, domain.ErrValidation):
		return "invalid_input"
	default:
		return "internal"
	}
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/electoral/internal/core/domain"
	"github.com/vncsmyrnk/electoral/internal/core/ports"
)

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

func (r *voteRepository) HasValidVote(ctx context.Context, nationalID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM votes WHERE voter_national_id = $1 AND status = 'valid')`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, nationalID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check existing vote: %w", err)
	}
	return exists, nil
}

// Cast share-locks the voter row, bumps the station counter under its row
// lock and inserts the vote in the same transaction. The partial unique
// index on valid votes turns a concurrent second vote into a unique
// violation; a concurrent disable waits for the transaction to finish.
func (r *voteRepository) Cast(ctx context.Context, vote *domain.Vote, maxVotesPerStation int) error {
	lockVoter := `SELECT enabled FROM voters WHERE national_id = $1 FOR SHARE`
	increment := `
		UPDATE polling_stations SET votes = votes + 1
		WHERE id = $1 AND is_open AND ($2::int = 0 OR votes < $2::int)
	`
	insert := `
		INSERT INTO votes (id, voter_national_id, station_id, cast_at, status)
		VALUES ($1, $2, $3, $4, $5)
	`

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		var enabled bool
		err := tx.QueryRowContext(ctx, lockVoter, vote.VoterNationalID).Scan(&enabled)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return domain.ErrVoterNotFound
		case err != nil:
			return fmt.Errorf("failed to lock voter: %w", err)
		case !enabled:
			return domain.ErrVoterDisabled
		}

		res, err := tx.ExecContext(ctx, increment, vote.StationID, maxVotesPerStation)
		if err != nil {
			return fmt.Errorf("failed to update station counter: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to update station counter: %w", err)
		}
		if n == 0 {
			return stationRejection(ctx, tx, vote.StationID)
		}

		_, err = tx.ExecContext(ctx, insert, vote.ID, vote.VoterNationalID, vote.StationID, vote.CastAt, string(vote.Status))
		switch {
		case isUniqueViolation(err):
			return domain.ErrAlreadyVoted
		case isForeignKeyViolation(err):
			return domain.ErrVoterNotFound
		case err != nil:
			return fmt.Errorf("failed to save vote: %w", err)
		}
		return nil
	})
}

// stationRejection explains why the counter update matched no row.
func stationRejection(ctx context.Context, tx *sql.Tx, stationID uuid.UUID) error {
	var isOpen bool
	err := tx.QueryRowContext(ctx, `SELECT is_open FROM polling_stations WHERE id = $1`, stationID).Scan(&isOpen)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrStationNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get station: %w", err)
	}
	if !isOpen {
		return domain.ErrStationClosed
	}
	return domain.ErrStationFull
}

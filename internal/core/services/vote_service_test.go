package services

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/electoral/internal/core/domain"
)

func TestCastVote(t *testing.T) {
	env := newTestEnv(t)
	env.addVoter(t, "12345678", "Docente")
	st := env.openStation(t, "Mesa 1", "Sede")

	vote, err := env.cast("12345678", st.ID)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, vote.ID)
	assert.Equal(t, monday10, vote.CastAt)
	assert.Equal(t, domain.VoteValid, vote.Status)

	got, err := env.stations.Get(env.ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Votes)
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.VotesCast))
}

func TestCastVoteTwiceAnywhereIsRejected(t *testing.T) {
	env := newTestEnv(t)
	env.addVoter(t, "12345678", "Docente")
	first := env.openStation(t, "Mesa 1", "Sede")
	second := env.openStation(t, "Mesa 2", "Sede")

	_, err := env.cast("12345678", first.ID)
	require.NoError(t, err)

	_, err = env.cast("12345678", first.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyVoted)
	_, err = env.cast("12345678", second.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyVoted)

	assert.Equal(t, 2.0, testutil.ToFloat64(env.metrics.VoteRejections.WithLabelValues("already_voted")))
}

func TestConcurrentCastVoteSucceedsOnce(t *testing.T) {
	env := newTestEnv(t)
	env.addVoter(t, "12345678", "Docente")
	stations := []uuid.UUID{
		env.openStation(t, "Mesa 1", "Sede").ID,
		env.openStation(t, "Mesa 2", "Sede").ID,
	}

	const attempts = 25
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = env.cast("12345678", stations[i%len(stations)])
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrAlreadyVoted)
	}
	assert.Equal(t, 1, succeeded)

	total := 0
	for _, id := range stations {
		st, err := env.stations.Get(env.ctx, id)
		require.NoError(t, err)
		total += st.Votes
	}
	assert.Equal(t, 1, total)
}

func TestCastVoteDisabledVoterLeavesNoTrace(t *testing.T) {
	env := newTestEnv(t)
	env.addVoter(t, "12345678", "Docente")
	require.NoError(t, env.voters.SetEnabled(env.ctx, "12345678", false))
	st := env.openStation(t, "Mesa 1", "Sede")

	_, err := env.cast("12345678", st.ID)
	require.ErrorIs(t, err, domain.ErrVoterDisabled)

	voted, err := env.voteRepo.HasValidVote(env.ctx, "12345678")
	require.NoError(t, err)
	assert.False(t, voted)

	got, err := env.stations.Get(env.ctx, st.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Votes)
}

func TestCastVoteAtClosingMinute(t *testing.T) {
	env := newTestEnv(t)
	env.addVoter(t, "11111111", "Docente")
	env.addVoter(t, "22222222", "Docente")
	st := env.openStation(t, "Mesa 1", "Sede")

	env.now = time.Date(2024, 10, 14, 18, 0, 0, 0, time.UTC)
	_, err := env.cast("11111111", st.ID)
	require.NoError(t, err)

	env.now = env.now.Add(time.Minute)
	_, err = env.cast("22222222", st.ID)
	require.ErrorIs(t, err, domain.ErrWindowClosed)
	assert.Contains(t, err.Error(), domain.ReasonOutsideHours)
}

func TestCastVoteRejections(t *testing.T) {
	env := newTestEnv(t)
	env.addVoter(t, "11111111", "Docente")
	env.addVoter(t, "22222222", "Docente")
	env.addVoter(t, "33333333", "Docente")
	open := env.openStation(t, "Mesa 1", "Sede")
	closed, err := env.stations.Create(env.ctx, stationInput("Mesa 2", "Sede"))
	require.NoError(t, err)

	_, err = env.cast("1234", open.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidNationalID)

	_, err = env.cast("44444444", open.ID)
	assert.ErrorIs(t, err, domain.ErrVoterNotFound)

	_, err = env.cast("11111111", uuid.New())
	assert.ErrorIs(t, err, domain.ErrStationNotFound)

	_, err = env.cast("11111111", closed.ID)
	assert.ErrorIs(t, err, domain.ErrStationClosed)

	env.setConfig(t, map[string]string{domain.KeyMaxVotesPerStation: "1"})
	_, err = env.cast("11111111", open.ID)
	require.NoError(t, err)
	_, err = env.cast("22222222", open.ID)
	assert.ErrorIs(t, err, domain.ErrStationFull)

	env.setConfig(t, map[string]string{domain.KeyMaxVotesPerStation: "0"})
	_, err = env.cast("22222222", open.ID)
	assert.NoError(t, err)

	env.setConfig(t, map[string]string{domain.KeySystemStatus: domain.SystemStatusInactive})
	_, err = env.cast("33333333", open.ID)
	assert.ErrorIs(t, err, domain.ErrWindowClosed)
}

func TestCastVoteReportsClosedWindowFirst(t *testing.T) {
	env := newTestEnv(t)
	st := env.openStation(t, "Mesa 1", "Sede")

	env.now = time.Date(2024, 10, 14, 19, 0, 0, 0, time.UTC)
	_, err := env.cast("1234", st.ID)
	assert.ErrorIs(t, err, domain.ErrWindowClosed)
}

func TestRejectionReason(t *testing.T) {
	assert.Equal(t, "window_closed", rejectionReason(windowError(domain.WindowStatus{Reason: "x"})))
	assert.Equal(t, "invalid_input", rejectionReason(domain.ErrInvalidNationalID))
	assert.Equal(t, "internal", rejectionReason(assert.AnError))
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/electoral/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/electoral/internal/core/domain"
	"github.com/vncsmyrnk/electoral/internal/core/ports"
	"github.com/vncsmyrnk/electoral/internal/logger"
	"github.com/vncsmyrnk/electoral/internal/metrics"
)

// monday10 lies inside the default voting window.
var monday10 = time.Date(2024, 10, 14, 10, 0, 0, 0, time.UTC)

type testEnv struct {
	ctx     context.Context
	now     time.Time
	clock   Clock
	store   *memory.Store
	metrics *metrics.Metrics

	voterRepo   ports.VoterRepository
	stationRepo ports.StationRepository
	voteRepo    ports.VoteRepository
	configRepo  ports.ConfigRepository

	window   ports.WindowService
	config   ports.ConfigService
	voters   ports.VoterService
	stations ports.StationService
	votes    ports.VoteService
	reports  ports.ReportService
	auth     *AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{ctx: context.Background(), now: monday10}
	env.clock = NewClock(time.UTC, func() time.Time { return env.now })
	env.store = memory.NewStore(env.clock.Now)
	env.store.SeedDefaults()
	env.metrics = metrics.New(prometheus.NewRegistry())
	log := logger.Discard()

	env.voterRepo = memory.NewVoterRepository(env.store)
	env.stationRepo = memory.NewStationRepository(env.store)
	env.voteRepo = memory.NewVoteRepository(env.store)
	env.configRepo = memory.NewConfigRepository(env.store)

	env.window = NewWindowService(env.configRepo, env.clock, env.metrics, log)
	env.config = NewConfigService(env.configRepo, log)
	env.voters = NewVoterService(env.voterRepo, env.metrics, log)
	env.stations = NewStationService(env.stationRepo, env.window, env.clock, env.metrics, log)
	env.votes = NewVoteService(env.voterRepo, env.voteRepo, env.stationRepo, env.window, env.clock, env.metrics, log)
	env.reports = NewReportService(memory.NewReportRepository(env.store), env.clock)
	env.auth = NewAuthService(memory.NewUserRepository(env.store), env.stations, env.clock, "test-secret", time.Hour, log)
	return env
}

func (e *testEnv) setConfig(t *testing.T, changes map[string]string) {
	t.Helper()
	_, err := e.config.Update(e.ctx, changes)
	require.NoError(t, err)
}

func (e *testEnv) addVoter(t *testing.T, nationalID, category string) {
	t.Helper()
	_, err := e.voters.BulkUpsert(e.ctx, []domain.VoterRecord{{
		NationalID: nationalID,
		GivenName:  "Given " + nationalID,
		FamilyName: "Family " + nationalID,
		Category:   category,
	}})
	require.NoError(t, err)
}

func (e *testEnv) openStation(t *testing.T, name, location string) *domain.PollingStation {
	t.Helper()
	st, err := e.stations.Create(e.ctx, ports.CreateStationInput{
		Name:                name,
		Location:            location,
		PresidentNationalID: "99999999",
		PresidentName:       "Presidente",
	})
	require.NoError(t, err)
	st, err = e.stations.ToggleOpen(e.ctx, st.ID)
	require.NoError(t, err)
	require.True(t, st.IsOpen)
	return st
}

func (e *testEnv) cast(nationalID string, stationID uuid.UUID) (*domain.Vote, error) {
	return e.votes.CastVote(e.ctx, ports.CastVoteInput{NationalID: nationalID, StationID: stationID})
}

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
	"github.com/vncsmyrnk/electoral/internal/core/ports"
)

func stationInput(name, location string) ports.CreateStationInput {
	return ports.CreateStationInput{Name: name, Location: location, PresidentNationalID: "99999999"}
}

func TestCreateStation(t *testing.T) {
	env := newTestEnv(t)

	st, err := env.stations.Create(env.ctx, stationInput(" Table 1 ", "Hall A"))
	require.NoError(t, err)
	assert.Equal(t, "Table 1", st.Name)
	assert.False(t, st.IsOpen)
	assert.Zero(t, st.Votes)
	assert.Equal(t, domain.DayOf(monday10), st.CreatedDay)
}

func TestCreateStationDuplicateSameDayOnly(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.stations.Create(env.ctx, stationInput("Table 1", "Hall A"))
	require.NoError(t, err)

	_, err = env.stations.Create(env.ctx, stationInput("table 1", "hall a"))
	require.ErrorIs(t, err, domain.ErrDuplicateStation)
	assert.ErrorIs(t, err, domain.ErrConflict)

	env.now = monday10.AddDate(0, 0, 1)
	_, err = env.stations.Create(env.ctx, stationInput("Table 1", "Hall A"))
	assert.NoError(t, err)
}

func TestConcurrentCreateStationKeepsOnePerDay(t *testing.T) {
	env := newTestEnv(t)
	variants := [][2]string{
		{"Table 1", "Hall A"},
		{"table 1", "hall a"},
		{"TABLE 1", "HALL A"},
		{" Table 1 ", "hall A"},
	}

	const attempts = 20
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			v := variants[i%len(variants)]
			_, errs[i] = env.stations.Create(env.ctx, stationInput(v[0], v[1]))
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrDuplicateStation)
	}
	assert.Equal(t, 1, succeeded)

	today, err := env.stations.ListToday(env.ctx)
	require.NoError(t, err)
	assert.Len(t, today, 1)
}

func TestCreateStationValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.stations.Create(env.ctx, ports.CreateStationInput{Name: "Table 1", Location: "Hall A", PresidentNationalID: "1234567"})
	assert.ErrorIs(t, err, domain.ErrInvalidPresidentID)

	_, err = env.stations.Create(env.ctx, ports.CreateStationInput{Name: "Table 1", PresidentNationalID: "12345678"})
	assert.ErrorIs(t, err, domain.ErrMissingField)
}

func TestCreateStationRequiresWindow(t *testing.T) {
	env := newTestEnv(t)
	env.now = time.Date(2024, 10, 14, 19, 0, 0, 0, time.UTC)

	_, err := env.stations.Create(env.ctx, stationInput("Table 1", "Hall A"))
	require.ErrorIs(t, err, domain.ErrWindowClosed)
	assert.Contains(t, err.Error(), domain.ReasonOutsideHours)
}

func TestToggleOpenGatesOnlyOpening(t *testing.T) {
	env := newTestEnv(t)
	st := env.openStation(t, "Table 1", "Hall A")
	require.NotNil(t, st.OpenedAt)

	env.now = time.Date(2024, 10, 14, 18, 30, 0, 0, time.UTC)
	closed, err := env.stations.ToggleOpen(env.ctx, st.ID)
	require.NoError(t, err)
	assert.False(t, closed.IsOpen)
	require.NotNil(t, closed.ClosedAt)

	_, err = env.stations.ToggleOpen(env.ctx, st.ID)
	assert.ErrorIs(t, err, domain.ErrWindowClosed)

	_, err = env.stations.ToggleOpen(env.ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrStationNotFound)

	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.StationToggles.WithLabelValues("open")))
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.StationToggles.WithLabelValues("closed")))
}

func TestStationsOfEarlierDaysAreHistoryOnly(t *testing.T) {
	env := newTestEnv(t)
	env.addVoter(t, "12345678", "Docente")
	open := env.openStation(t, "Table 1", "Hall A")
	closed, err := env.stations.Create(env.ctx, stationInput("Table 2", "Hall A"))
	require.NoError(t, err)

	env.now = monday10.AddDate(0, 0, 1)

	_, err = env.stations.ToggleOpen(env.ctx, closed.ID)
	assert.ErrorIs(t, err, domain.ErrStationNotFound)
	_, err = env.stations.ToggleOpen(env.ctx, open.ID)
	assert.ErrorIs(t, err, domain.ErrStationNotFound)

	_, err = env.cast("12345678", open.ID)
	assert.ErrorIs(t, err, domain.ErrStationNotFound)

	got, err := env.stations.Get(env.ctx, open.ID)
	require.NoError(t, err)
	assert.True(t, got.IsOpen)
	assert.Zero(t, got.Votes)
}

func TestListToday(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.stations.Create(env.ctx, stationInput("Table 1", "Hall A"))
	require.NoError(t, err)

	env.now = monday10.AddDate(0, 0, 1)
	_, err = env.stations.Create(env.ctx, stationInput("Table 2", "Hall A"))
	require.NoError(t, err)

	today, err := env.stations.ListToday(env.ctx)
	require.NoError(t, err)
	require.Len(t, today, 1)
	assert.Equal(t, "Table 2", today[0].Name)

	monday, err := env.stations.ListForDay(env.ctx, domain.DayOf(monday10))
	require.NoError(t, err)
	require.Len(t, monday, 1)
	assert.Equal(t, "Table 1", monday[0].Name)
}

func TestFindForPresident(t *testing.T) {
	env := newTestEnv(t)
	st, err := env.stations.Create(env.ctx, stationInput("Table 1", "Hall A"))
	require.NoError(t, err)

	_, err = env.stations.FindForPresident(env.ctx, st.ID, "99999999")
	assert.ErrorIs(t, err, domain.ErrStationClosed)

	_, err = env.stations.ToggleOpen(env.ctx, st.ID)
	require.NoError(t, err)

	found, err := env.stations.FindForPresident(env.ctx, st.ID, "99999999")
	require.NoError(t, err)
	assert.Equal(t, st.ID, found.ID)

	_, err = env.stations.FindForPresident(env.ctx, st.ID, "11111111")
	assert.ErrorIs(t, err, domain.ErrStationNotFound)

	_, err = env.stations.FindForPresident(env.ctx, st.ID, "x")
	assert.ErrorIs(t, err, domain.ErrInvalidPresidentID)

	env.now = monday10.AddDate(0, 0, 1)
	_, err = env.stations.FindForPresident(env.ctx, st.ID, "99999999")
	assert.ErrorIs(t, err, domain.ErrStationNotFound)
}

func TestOpenAllAndCloseAll(t *testing.T) {
	env := newTestEnv(t)
	for _, name := range []string{"Table 1", "Table 2", "Table 3"} {
		_, err := env.stations.Create(env.ctx, stationInput(name, "Hall A"))
		require.NoError(t, err)
	}

	opened, err := env.stations.OpenAll(env.ctx)
	require.NoError(t, err)
	require.Len(t, opened, 3)
	for _, st := range opened {
		assert.True(t, st.IsOpen)
	}

	env.now = time.Date(2024, 10, 14, 20, 0, 0, 0, time.UTC)
	closed, err := env.stations.CloseAll(env.ctx)
	require.NoError(t, err)
	for _, st := range closed {
		assert.False(t, st.IsOpen)
	}

	_, err = env.stations.OpenAll(env.ctx)
	assert.ErrorIs(t, err, domain.ErrWindowClosed)
}

func TestDeleteAllStations(t *testing.T) {
	env := newTestEnv(t)
	env.addVoter(t, "12345678", "Docente")
	st := env.openStation(t, "Table 1", "Hall A")
	_, err := env.cast("12345678", st.ID)
	require.NoError(t, err)

	n, err := env.stations.DeleteAll(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = env.stations.Get(env.ctx, st.ID)
	assert.ErrorIs(t, err, domain.ErrStationNotFound)

	v, err := env.voters.FindByNationalID(env.ctx, "12345678")
	require.NoError(t, err)
	assert.False(t, v.Voted)
}

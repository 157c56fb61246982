package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/electoral/internal/core/domain"
	"github.com/vncsmyrnk/electoral/internal/logger"
)

func TestAdminLogin(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.auth.EnsureAdmin(env.ctx, "admin", "s3cret"))

	token, principal, err := env.auth.Login(env.ctx, "admin", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, domain.RoleSuperAdmin, principal.Role)

	validated, err := env.auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", validated.NationalID)
	assert.Equal(t, domain.RoleSuperAdmin, validated.Role)
	assert.Nil(t, validated.StationID)
}

func TestAdminLoginFailures(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.auth.EnsureAdmin(env.ctx, "admin", "s3cret"))

	_, _, err := env.auth.Login(env.ctx, "admin", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, err = env.auth.Login(env.ctx, "nobody", "s3cret")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	assert.ErrorIs(t, env.auth.EnsureAdmin(env.ctx, "", "x"), domain.ErrMissingField)
}

func TestEnsureAdminRotatesPassword(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.auth.EnsureAdmin(env.ctx, "admin", "old"))
	require.NoError(t, env.auth.EnsureAdmin(env.ctx, "admin", "new"))

	_, _, err := env.auth.Login(env.ctx, "admin", "old")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, _, err = env.auth.Login(env.ctx, "admin", "new")
	assert.NoError(t, err)
}

func TestPresidentAccess(t *testing.T) {
	env := newTestEnv(t)
	st := env.openStation(t, "Mesa 1", "Sede")

	token, principal, err := env.auth.PresidentAccess(env.ctx, st.ID, "99999999")
	require.NoError(t, err)
	require.NotNil(t, principal.StationID)
	assert.Equal(t, st.ID, *principal.StationID)

	validated, err := env.auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, domain.RolePresident, validated.Role)
	require.NotNil(t, validated.StationID)
	assert.Equal(t, st.ID, *validated.StationID)

	_, _, err = env.auth.PresidentAccess(env.ctx, uuid.New(), "99999999")
	assert.ErrorIs(t, err, domain.ErrStationNotFound)
}

func TestValidateTokenRejects(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.auth.EnsureAdmin(env.ctx, "admin", "s3cret"))
	token, _, err := env.auth.Login(env.ctx, "admin", "s3cret")
	require.NoError(t, err)

	other := NewAuthService(nil, nil, env.clock, "another-secret", time.Hour, logger.Discard())
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = env.auth.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	env.now = env.now.Add(2 * time.Hour)
	_, err = env.auth.ValidateToken(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

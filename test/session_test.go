package test

import (
	"context"
	"net/http"

	"github.com/2beens/healthtracker/internal/auth"
	"github.com/2beens/healthtracker/internal/session"
	testingpkg "github.com/2beens/healthtracker/pkg/testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestSessionStateIsKeptInRedis() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.redisDataCleanup(ctx))
	token := doLogin(ctx, t, s.httpClient).Token

	resp := doRequest(ctx, t, s.httpClient, http.MethodPost, "/session/person", token, map[string]string{"person": "Bia"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	resp = doRequest(ctx, t, s.httpClient, http.MethodPost, "/session/person", token, map[string]string{"person": "Nobody"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	// a second backend instance sees the same state
	redisCtx, rdb := testingpkg.GetRedisClientAndCtx(t, s.redisAddr, "")
	store := session.NewStore(rdb, auth.DefaultTTL)

	state, err := store.Get(redisCtx, token)
	require.NoError(t, err)
	assert.True(t, state.LoggedIn)
	assert.Equal(t, testUsername, state.Username)
	assert.Equal(t, "Bia", state.SelectedPerson)

	resp = doRequest(ctx, t, s.httpClient, http.MethodGet, "/a/logout", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	_, err = store.Get(redisCtx, token)
	assert.ErrorIs(t, err, session.ErrStateNotFound)
}

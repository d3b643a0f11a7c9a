package test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/2beens/healthtracker/internal/auth"
	"github.com/2beens/healthtracker/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestLogin() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.redisDataCleanup(ctx))

	cases := map[string]struct {
		creds              auth.Credentials
		expectedStatusCode int
		expectedBody       string
	}{
		"bad password": {
			creds:              auth.Credentials{Username: testUsername, Password: "bad-password"},
			expectedStatusCode: http.StatusUnauthorized,
			expectedBody:       "error, wrong credentials",
		},
		"bad username": {
			creds:              auth.Credentials{Username: "bad-username", Password: testPassword},
			expectedStatusCode: http.StatusUnauthorized,
			expectedBody:       "error, wrong credentials",
		},
		"empty password": {
			creds:              auth.Credentials{Username: testUsername},
			expectedStatusCode: http.StatusBadRequest,
			expectedBody:       "error, password empty",
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			resp := doRequest(ctx, t, s.httpClient, http.MethodPost, "/a/login", "", tc.creds)
			defer resp.Body.Close()
			require.Equal(t, tc.expectedStatusCode, resp.StatusCode)

			respBytes, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedBody, strings.TrimSpace(string(respBytes)))
		})
	}

	t.Run("good creds, then logout", func(t *testing.T) {
		loginResp := doLogin(ctx, t, s.httpClient)
		assert.Contains(t, loginResp.Features, session.FeatureAssistant)

		resp := doRequest(ctx, t, s.httpClient, http.MethodGet, "/session", loginResp.Token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var view session.View
		decodeBody(t, resp, &view)
		assert.Equal(t, testUsername, view.Username)

		resp = doRequest(ctx, t, s.httpClient, http.MethodGet, "/a/logout", loginResp.Token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.NoError(t, resp.Body.Close())

		resp = doRequest(ctx, t, s.httpClient, http.MethodGet, "/session", loginResp.Token, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.NoError(t, resp.Body.Close())
	})

	t.Run("rate limiting", func(t *testing.T) {
		// simulate login requests brute force attack
		require.NoError(t, s.redisDataCleanup(ctx))

		creds := auth.Credentials{Username: "test-user", Password: "test-pass"}
		for i := 1; i <= loginAllowedPerMin+5; i++ {
			resp := doRequest(ctx, t, s.httpClient, http.MethodPost, "/a/login", "", creds)
			if i <= loginAllowedPerMin {
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "iteration: %d", i)
			} else {
				assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode, "iteration: %d", i)
			}
			assert.NoError(t, resp.Body.Close())
		}

		require.NoError(t, s.redisDataCleanup(ctx))
	})
}

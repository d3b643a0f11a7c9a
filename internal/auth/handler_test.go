package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/2beens/healthtracker/internal/middleware"
	"github.com/2beens/healthtracker/internal/session"
	"github.com/2beens/healthtracker/internal/telemetry/metrics"

	"github.com/go-redis/redis_rate/v9"
	"github.com/go-redis/redismock/v8"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testSessionStore struct {
	saved   []session.State
	deleted []string
}

func (s *testSessionStore) Save(_ context.Context, state session.State) error {
	s.saved = append(s.saved, state)
	return nil
}

func (s *testSessionStore) Delete(_ context.Context, token string) error {
	s.deleted = append(s.deleted, token)
	return nil
}

type allowAllLimiter struct{}

func (allowAllLimiter) Allow(_ context.Context, _ string, limit redis_rate.Limit) (*redis_rate.Result, error) {
	return &redis_rate.Result{Limit: limit, Allowed: 1}, nil
}

func TestHandler_LoginLogout(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	defer rdb.Close()

	authService := NewAuthService(testUsers(t), time.Hour, rdb)
	authService.RandStringFunc = func(s int) (string, error) {
		return "tok-123", nil
	}
	store := &testSessionStore{}

	r := mux.NewRouter()
	NewHandler(authService, store).SetupRoutes(r, allowAllLimiter{}, metrics.NewTestManager(), 15)

	mock.Regexp().ExpectSet(sessionKeyPrefix+"tok-123", `\d+`, 0).SetVal("OK")
	mock.ExpectSAdd(tokensSetKey, "tok-123").SetVal(1)

	body := `{"username":"testuser","password":"testpass"}`
	req := httptest.NewRequest(http.MethodPost, "/a/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var loginResp struct {
		Token    string            `json:"token"`
		Features []session.Feature `json:"features"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &loginResp))
	assert.Equal(t, "tok-123", loginResp.Token)
	assert.Contains(t, loginResp.Features, session.FeatureAssistant)
	require.Len(t, store.saved, 1)
	assert.True(t, store.saved[0].LoggedIn)
	assert.Equal(t, "testuser", store.saved[0].Username)

	mock.ExpectGet(sessionKeyPrefix + "tok-123").SetVal(fmt.Sprintf("%d", time.Now().Unix()))
	mock.ExpectDel(sessionKeyPrefix + "tok-123").SetVal(1)
	mock.ExpectSRem(tokensSetKey, "tok-123").SetVal(1)

	req = httptest.NewRequest(http.MethodGet, "/a/logout", nil)
	req.Header.Set(middleware.AuthTokenHeader, "tok-123")
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "logged-out", rr.Body.String())
	assert.Equal(t, []string{"tok-123"}, store.deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_LoginFailures(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	defer rdb.Close()

	authService := NewAuthService(testUsers(t), time.Hour, rdb)
	store := &testSessionStore{}
	r := mux.NewRouter()
	NewHandler(authService, store).SetupRoutes(r, allowAllLimiter{}, nil, 15)

	testCases := []struct {
		name         string
		form         url.Values
		expectedCode int
	}{
		{
			name:         "EmptyUsername",
			form:         url.Values{"password": {"testpass"}},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "EmptyPassword",
			form:         url.Values{"username": {"testuser"}},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "WrongPassword",
			form:         url.Values{"username": {"testuser"}, "password": {"wrong"}},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "UnknownUser",
			form:         url.Values{"username": {"ghost"}, "password": {"testpass"}},
			expectedCode: http.StatusUnauthorized,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/a/login", strings.NewReader(tc.form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)
			assert.Equal(t, tc.expectedCode, rr.Code)
		})
	}

	// logout without token
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/a/logout", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	assert.Empty(t, store.saved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

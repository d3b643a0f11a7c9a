package test

import (
	"context"
	"io"
	"net/http"
	"os"

	"github.com/2beens/healthtracker/internal/assistant"
	"github.com/2beens/healthtracker/internal/healthstats/ranking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestPublicViews() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	resp := doRequest(ctx, t, s.httpClient, http.MethodGet, "/measurements/persons", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var persons []string
	decodeBody(t, resp, &persons)
	assert.Contains(t, persons, "Ana")
	assert.Contains(t, persons, "Bia")

	resp = doRequest(ctx, t, s.httpClient, http.MethodGet, "/ranking/rules", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rules ranking.ScoringRules
	decodeBody(t, resp, &rules)
	assert.InDelta(t, 0.075, rules.ExampleScore, 1e-9)

	// everything else needs a login
	for _, path := range []string{"/session", "/hub/categories", "/assistant/plan"} {
		resp = doRequest(ctx, t, s.httpClient, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		require.NoError(t, resp.Body.Close())
	}
	resp = doRequest(ctx, t, s.httpClient, http.MethodPost, "/mcp", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.NoError(t, resp.Body.Close())
}

func (s *IntegrationTestSuite) TestMeasurementsAndRanking() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.redisDataCleanup(ctx))

	fatLossRanking := func() ranking.Response {
		resp := doRequest(ctx, t, s.httpClient, http.MethodGet, "/ranking?window=all&metric=fat_loss", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var r ranking.Response
		decodeBody(t, resp, &r)
		return r
	}

	before := fatLossRanking()
	require.Len(t, before.Rows, 2)
	assert.Equal(t, "Ana", before.Rows[0].Person)

	token := doLogin(ctx, t, s.httpClient).Token

	newRow := map[string]any{
		"person":       "Bia",
		"date":         "2026-03-10",
		"weight_kg":    76.0,
		"body_fat_pct": 30.0,
		"muscle_pct":   27.0,
	}
	resp := doRequest(ctx, t, s.httpClient, http.MethodPost, "/measurements", "", newRow)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	resp = doRequest(ctx, t, s.httpClient, http.MethodPost, "/measurements", token, newRow)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	after := fatLossRanking()
	require.Len(t, after.Rows, 2)
	assert.Equal(t, "Bia", after.Rows[0].Person)

	sheet, err := os.ReadFile(s.sheetPath)
	require.NoError(t, err)
	assert.Contains(t, string(sheet), "Bia,2026-03-10,76")

	resp = doRequest(ctx, t, s.httpClient, http.MethodGet, "/ranking/score", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var scores []ranking.Score
	decodeBody(t, resp, &scores)
	require.Len(t, scores, 2)
	assert.Equal(t, "Bia", scores[0].Person)
	assert.Greater(t, scores[0].Score, scores[1].Score)
}

func (s *IntegrationTestSuite) TestAssistantPlanFlow() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.redisDataCleanup(ctx))
	token := doLogin(ctx, t, s.httpClient).Token

	resp := doRequest(ctx, t, s.httpClient, http.MethodGet, "/assistant/plan", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	resp = doRequest(ctx, t, s.httpClient, http.MethodPost, "/session/person", token, map[string]string{"person": "Ana"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	resp = doRequest(ctx, t, s.httpClient, http.MethodPost, "/assistant/chat", token, assistant.ChatRequest{
		Prompt: "monte um treino para esta semana",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var chat assistant.ChatResponse
	decodeBody(t, resp, &chat)
	assert.Equal(t, geminiStubReply, chat.Reply)
	assert.True(t, chat.HasPendingPlan)
	assert.Len(t, chat.Messages, 2)

	resp = doRequest(ctx, t, s.httpClient, http.MethodGet, "/assistant/plan", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	plan, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Contains(t, string(plan), "Plano Personalizado - Ana")
	assert.Contains(t, string(plan), geminiStubReply)

	resp = doRequest(ctx, t, s.httpClient, http.MethodPost, "/assistant/clear", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	resp = doRequest(ctx, t, s.httpClient, http.MethodGet, "/assistant/plan", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.NoError(t, resp.Body.Close())
}

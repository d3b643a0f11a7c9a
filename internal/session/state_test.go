package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_Transitions(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	anon := State{}
	assert.False(t, anon.LoggedIn)
	assert.Equal(t, []Feature{FeatureIndividual, FeatureRanking}, anon.Features())
	assert.False(t, anon.Allows(FeatureAssistant))

	logged := anon.Login("tok", "ana")
	assert.True(t, logged.LoggedIn)
	assert.Equal(t, "tok", logged.Token)
	assert.Equal(t, "ana", logged.Username)
	assert.True(t, logged.Allows(FeatureAssistant))
	assert.True(t, logged.Allows(FeatureHub))
	assert.Len(t, logged.Features(), 5)
	// receiver untouched
	assert.False(t, anon.LoggedIn)

	withChat := logged.
		SelectPerson("Ana").
		AppendMessage(RoleUser, "monte um treino", now).
		AppendMessage(RoleAssistant, "treino de pernas ...", now.Add(time.Second)).
		SetPendingPlan("treino de pernas ...")
	require.Len(t, withChat.Messages, 2)
	assert.Equal(t, RoleUser, withChat.Messages[0].Role)
	assert.Equal(t, "Ana", withChat.SelectedPerson)
	assert.True(t, withChat.HasPendingPlan())
	assert.Empty(t, logged.Messages)

	cleared := withChat.ClearChat()
	assert.Empty(t, cleared.Messages)
	assert.False(t, cleared.HasPendingPlan())
	assert.True(t, cleared.LoggedIn)
	assert.Equal(t, "Ana", cleared.SelectedPerson)
	assert.Len(t, withChat.Messages, 2)

	noPlan := withChat.SetPendingPlan("")
	assert.False(t, noPlan.HasPendingPlan())

	out := withChat.Logout()
	assert.Equal(t, State{}, out)
	assert.False(t, out.Allows(FeatureNutriVision))
}

func TestState_AppendMessageDoesNotShareBacking(t *testing.T) {
	now := time.Now()
	base := State{}.AppendMessage(RoleUser, "a", now)
	first := base.AppendMessage(RoleUser, "b", now)
	second := base.AppendMessage(RoleUser, "c", now)

	assert.Equal(t, "b", first.Messages[1].Content)
	assert.Equal(t, "c", second.Messages[1].Content)
	assert.Len(t, base.Messages, 1)
}

func TestState_FeaturesIsCopy(t *testing.T) {
	s := State{LoggedIn: true}
	f := s.Features()
	f[0] = "hacked"
	assert.Equal(t, FeatureIndividual, s.Features()[0])
}

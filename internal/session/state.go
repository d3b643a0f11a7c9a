package session

import (
	"slices"
	"time"
)

type Feature string

const (
	FeatureIndividual  Feature = "individual"
	FeatureRanking     Feature = "ranking"
	FeatureHub         Feature = "hub"
	FeatureAssistant   Feature = "assistant"
	FeatureNutriVision Feature = "nutri_vision"
)

var (
	publicFeatures = []Feature{FeatureIndividual, FeatureRanking}
	loggedFeatures = []Feature{FeatureIndividual, FeatureRanking, FeatureHub, FeatureAssistant, FeatureNutriVision}
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// State is the dashboard state of one client session.
// Transitions return a new State and never modify the receiver.
type State struct {
	Token          string    `json:"token"`
	Username       string    `json:"username"`
	LoggedIn       bool      `json:"logged_in"`
	SelectedPerson string    `json:"selected_person,omitempty"`
	Messages       []Message `json:"messages,omitempty"`
	PendingPlan    string    `json:"pending_plan,omitempty"`
}

func (s State) Login(token, username string) State {
	return State{
		Token:    token,
		Username: username,
		LoggedIn: true,
	}
}

// Logout drops everything, including chat history and the pending plan.
func (s State) Logout() State {
	return State{}
}

func (s State) ClearChat() State {
	s.Messages = nil
	s.PendingPlan = ""
	return s
}

func (s State) AppendMessage(role Role, content string, createdAt time.Time) State {
	messages := make([]Message, len(s.Messages), len(s.Messages)+1)
	copy(messages, s.Messages)
	s.Messages = append(messages, Message{
		Role:      role,
		Content:   content,
		CreatedAt: createdAt,
	})
	return s
}

// SetPendingPlan stores the last plan-like reply, an empty plan removes it.
func (s State) SetPendingPlan(plan string) State {
	s.PendingPlan = plan
	return s
}

func (s State) SelectPerson(person string) State {
	s.SelectedPerson = person
	return s
}

func (s State) HasPendingPlan() bool {
	return s.PendingPlan != ""
}

func (s State) Features() []Feature {
	if s.LoggedIn {
		return slices.Clone(loggedFeatures)
	}
	return slices.Clone(publicFeatures)
}

func (s State) Allows(f Feature) bool {
	return slices.Contains(s.Features(), f)
}

package session

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"

	"github.com/2beens/healthtracker/internal/middleware"
	"github.com/2beens/healthtracker/internal/telemetry/tracing"
	"github.com/2beens/healthtracker/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=handler.go -destination=handler_mock_test.go -package=session

type stateStore interface {
	GetOrNew(ctx context.Context, token string) (State, error)
	Save(ctx context.Context, state State) error
}

type personsLister interface {
	Persons() []string
}

type View struct {
	Username       string    `json:"username"`
	SelectedPerson string    `json:"selected_person"`
	Features       []Feature `json:"features"`
	Messages       []Message `json:"messages"`
	HasPendingPlan bool      `json:"has_pending_plan"`
}

func NewView(s State) View {
	messages := s.Messages
	if messages == nil {
		messages = []Message{}
	}
	return View{
		Username:       s.Username,
		SelectedPerson: s.SelectedPerson,
		Features:       s.Features(),
		Messages:       messages,
		HasPendingPlan: s.HasPendingPlan(),
	}
}

type Handler struct {
	store   stateStore
	persons personsLister
}

func NewHandler(store stateStore, persons personsLister) *Handler {
	return &Handler{
		store:   store,
		persons: persons,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/session", handler.handleGet).Methods("GET", "OPTIONS").Name("session")
	r.HandleFunc("/session/person", handler.handleSelectPerson).Methods("POST", "OPTIONS").Name("session-select-person")
}

func (handler *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "sessionHandler.get")
	defer span.End()

	state, err := handler.store.GetOrNew(ctx, r.Header.Get(middleware.AuthTokenHeader))
	if err != nil {
		log.Errorf("get session state: %s", err)
		http.Error(w, "session state unavailable", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, NewView(state), http.StatusOK)
}

func (handler *Handler) handleSelectPerson(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "sessionHandler.selectPerson")
	defer span.End()

	var req struct {
		Person string `json:"person"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Person == "" {
		http.Error(w, "error, person empty", http.StatusBadRequest)
		return
	}
	if !slices.Contains(handler.persons.Persons(), req.Person) {
		http.Error(w, "unknown person", http.StatusNotFound)
		return
	}

	state, err := handler.store.GetOrNew(ctx, r.Header.Get(middleware.AuthTokenHeader))
	if err != nil {
		log.Errorf("select person, get session state: %s", err)
		http.Error(w, "session state unavailable", http.StatusInternalServerError)
		return
	}

	state = state.SelectPerson(req.Person)
	if err := handler.store.Save(ctx, state); err != nil {
		log.Errorf("select person, save session state: %s", err)
		http.Error(w, "session state unavailable", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, NewView(state), http.StatusOK)
}

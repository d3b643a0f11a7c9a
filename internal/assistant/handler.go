package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/2beens/healthtracker/internal/healthstats/measurements"
	"github.com/2beens/healthtracker/internal/middleware"
	"github.com/2beens/healthtracker/internal/session"
	"github.com/2beens/healthtracker/internal/telemetry/metrics"
	"github.com/2beens/healthtracker/internal/telemetry/tracing"
	"github.com/2beens/healthtracker/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=handler.go -destination=handler_mock_test.go -package=assistant

const (
	maxMealImageSize = 10 << 20
	planFileName     = "plano_personalizado.txt"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

type stateStore interface {
	GetOrNew(ctx context.Context, token string) (session.State, error)
	Save(ctx context.Context, state session.State) error
}

type measurementsSource interface {
	All() []measurements.Measurement
}

type ChatRequest struct {
	Prompt string `json:"prompt"`
	// optional, the session's selected person otherwise
	Person string `json:"person,omitempty"`
}

type ChatResponse struct {
	Reply          string            `json:"reply"`
	HasPendingPlan bool              `json:"has_pending_plan"`
	Messages       []session.Message `json:"messages"`
}

type MealResponse struct {
	Person   string `json:"person"`
	Analysis string `json:"analysis"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type Handler struct {
	provider       Provider
	stateStore     stateStore
	source         measurementsSource
	metricsManager *metrics.Manager
	nowFunc        func() time.Time
}

func NewHandler(
	provider Provider,
	stateStore stateStore,
	source measurementsSource,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		provider:       provider,
		stateStore:     stateStore,
		source:         source,
		metricsManager: metricsManager,
		nowFunc:        time.Now,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/assistant/chat", handler.handleChat).Methods("POST", "OPTIONS").Name("assistant-chat")
	r.HandleFunc("/assistant/clear", handler.handleClear).Methods("POST", "OPTIONS").Name("assistant-clear")
	r.HandleFunc("/assistant/plan", handler.handlePlan).Methods("GET", "OPTIONS").Name("assistant-plan")
	r.HandleFunc("/assistant/meal", handler.handleMeal).Methods("POST", "OPTIONS").Name("assistant-meal")
}

func (handler *Handler) loadState(ctx context.Context, r *http.Request) (session.State, error) {
	return handler.stateStore.GetOrNew(ctx, r.Header.Get(middleware.AuthTokenHeader))
}

func (handler *Handler) latestOf(person string) (measurements.Measurement, bool) {
	if person == "" {
		return measurements.Measurement{}, false
	}
	return measurements.LatestOf(person, handler.source.All())
}

func (handler *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "assistantHandler.chat")
	defer span.End()

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	req.Prompt = strings.TrimSpace(req.Prompt)
	if req.Prompt == "" {
		http.Error(w, "error, prompt empty", http.StatusBadRequest)
		return
	}

	state, err := handler.loadState(ctx, r)
	if err != nil {
		log.Errorf("assistant chat, get session state: %s", err)
		http.Error(w, "session state unavailable", http.StatusInternalServerError)
		return
	}
	if req.Person != "" {
		state = state.SelectPerson(req.Person)
	}

	student, found := handler.latestOf(state.SelectedPerson)
	if !found {
		http.Error(w, "select a person with measurements first", http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.String("person", student.Person))

	handler.metricsManager.CounterAssistantPrompts.Inc()
	state = state.AppendMessage(session.RoleUser, req.Prompt, handler.nowFunc())

	reply, err := handler.generate(ctx, Request{
		SystemContext: StudentContext(student),
		Prompt:        req.Prompt,
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Errorf("assistant chat for [%s]: %s", student.Person, err)
		// the question stays in the history
		handler.saveState(ctx, state)
		pkg.WriteJSON(w, errorResponse{Error: "assistant error: " + err.Error()}, http.StatusBadGateway)
		return
	}

	state = state.AppendMessage(session.RoleAssistant, reply, handler.nowFunc())
	if IsPlan(reply) {
		state = state.SetPendingPlan(reply)
	} else {
		state = state.SetPendingPlan("")
	}
	handler.saveState(ctx, state)

	pkg.WriteJSON(w, ChatResponse{
		Reply:          reply,
		HasPendingPlan: state.HasPendingPlan(),
		Messages:       state.Messages,
	}, http.StatusOK)
}

func (handler *Handler) handleClear(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "assistantHandler.clear")
	defer span.End()

	state, err := handler.loadState(ctx, r)
	if err != nil {
		log.Errorf("assistant clear, get session state: %s", err)
		http.Error(w, "session state unavailable", http.StatusInternalServerError)
		return
	}

	state = state.ClearChat()
	if err := handler.stateStore.Save(ctx, state); err != nil {
		log.Errorf("assistant clear, save session state: %s", err)
		http.Error(w, "session state unavailable", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, "cleared")
}

func (handler *Handler) handlePlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "assistantHandler.plan")
	defer span.End()

	state, err := handler.loadState(ctx, r)
	if err != nil {
		log.Errorf("assistant plan, get session state: %s", err)
		http.Error(w, "session state unavailable", http.StatusInternalServerError)
		return
	}
	if !state.HasPendingPlan() {
		http.Error(w, "no plan generated yet", http.StatusNotFound)
		return
	}

	person := state.SelectedPerson
	if person == "" {
		person = "Aluno"
	}
	plan := fmt.Sprintf("Plano Personalizado - %s\n\n%s\n", person, state.PendingPlan)

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", planFileName))
	pkg.WriteTextResponseOK(w, plan)
}

func (handler *Handler) handleMeal(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "assistantHandler.meal")
	defer span.End()

	r.Body = http.MaxBytesReader(w, r.Body, maxMealImageSize+1024*1024)
	if err := r.ParseMultipartForm(maxMealImageSize); err != nil {
		http.Error(w, "invalid upload", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "error, image missing", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxMealImageSize+1))
	if err != nil {
		log.Errorf("meal upload read: %s", err)
		http.Error(w, "invalid upload", http.StatusBadRequest)
		return
	}
	if len(data) > maxMealImageSize {
		http.Error(w, "image too large", http.StatusRequestEntityTooLarge)
		return
	}
	mimeType := http.DetectContentType(data)
	if !allowedImageTypes[mimeType] {
		http.Error(w, "only jpg and png images are accepted", http.StatusUnsupportedMediaType)
		return
	}

	state, err := handler.loadState(ctx, r)
	if err != nil {
		log.Errorf("assistant meal, get session state: %s", err)
		http.Error(w, "session state unavailable", http.StatusInternalServerError)
		return
	}
	person := r.FormValue("person")
	if person == "" {
		person = state.SelectedPerson
	}
	student, found := handler.latestOf(person)
	if !found {
		http.Error(w, "select a person with measurements first", http.StatusBadRequest)
		return
	}

	handler.metricsManager.CounterAssistantPrompts.Inc()
	analysis, err := handler.generate(ctx, Request{
		SystemContext: MealContext(student, r.FormValue("note")),
		Prompt:        "Analise esta refeição.",
		Image:         &Image{MimeType: mimeType, Data: data},
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Errorf("assistant meal analysis for [%s]: %s", student.Person, err)
		pkg.WriteJSON(w, errorResponse{Error: "analysis error: " + err.Error()}, http.StatusBadGateway)
		return
	}

	pkg.WriteJSON(w, MealResponse{Person: student.Person, Analysis: analysis}, http.StatusOK)
}

func (handler *Handler) generate(ctx context.Context, req Request) (string, error) {
	fragments, err := handler.provider.Stream(ctx, req)
	if err != nil {
		return "", err
	}
	reply, err := Collect(ctx, fragments)
	if err != nil {
		if errors.Is(err, ErrEmptyReply) {
			return "", err
		}
		return "", fmt.Errorf("stream: %w", err)
	}
	return reply, nil
}

func (handler *Handler) saveState(ctx context.Context, state session.State) {
	if err := handler.stateStore.Save(ctx, state); err != nil {
		log.Errorf("assistant, save session state: %s", err)
	}
}

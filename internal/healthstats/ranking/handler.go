package ranking

import (
	"errors"
	"net/http"

	"github.com/2beens/healthtracker/internal/healthstats/evolution"
	"github.com/2beens/healthtracker/internal/healthstats/measurements"
	"github.com/2beens/healthtracker/internal/healthstats/timeline"
	"github.com/2beens/healthtracker/internal/telemetry/tracing"
	"github.com/2beens/healthtracker/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type measurementsSource interface {
	All() []measurements.Measurement
}

type Response struct {
	Window string `json:"window"`
	Metric Metric `json:"metric"`
	// earliest baseline date, empty when there are no rows
	Since string `json:"since,omitempty"`
	Rows  []Row  `json:"rows"`
}

// NewResponse ranks all measurements and adds the baseline caption date.
func NewResponse(all []measurements.Measurement, window evolution.Window, metric Metric) Response {
	rows := Rank(all, window, metric)
	resp := Response{
		Window: window.String(),
		Metric: metric,
		Rows:   rows,
	}
	if resp.Rows == nil {
		resp.Rows = []Row{}
	}
	if since, ok := EarliestBaseline(rows); ok {
		resp.Since = since.Format(measurements.DateLayout)
	}
	return resp
}

type PodiumEntry struct {
	Position int     `json:"position"`
	Row      Row     `json:"row"`
	Badge    float64 `json:"badge"`
}

type Handler struct {
	source       measurementsSource
	trailingDays int
}

func NewHandler(source measurementsSource, trailingDays int) *Handler {
	if trailingDays <= 0 {
		trailingDays = evolution.DefaultTrailingDays
	}
	return &Handler{
		source:       source,
		trailingDays: trailingDays,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/ranking", handler.handleRanking).Methods("GET", "OPTIONS").Name("ranking")
	r.HandleFunc("/ranking/podium", handler.handlePodium).Methods("GET", "OPTIONS").Name("ranking-podium")
	r.HandleFunc("/ranking/score", handler.handleScore).Methods("GET", "OPTIONS").Name("ranking-score")
	r.HandleFunc("/ranking/rules", handler.handleRules).Methods("GET", "OPTIONS").Name("ranking-rules")
	r.HandleFunc("/dashboard/{person}", handler.handleDashboard).Methods("GET", "OPTIONS").Name("dashboard")
}

func (handler *Handler) handleRanking(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "rankingHandler.ranking")
	defer span.End()

	window, err := evolution.ParseWindow(r.URL.Query().Get("window"), handler.trailingDays)
	if err != nil {
		http.Error(w, "error, invalid window", http.StatusBadRequest)
		return
	}
	metric, err := ParseMetric(r.URL.Query().Get("metric"))
	if err != nil {
		http.Error(w, "error, invalid metric", http.StatusBadRequest)
		return
	}

	pkg.WriteJSON(w, NewResponse(handler.source.All(), window, metric), http.StatusOK)
}

func (handler *Handler) handlePodium(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "rankingHandler.podium")
	defer span.End()

	window, err := evolution.ParseWindow(r.URL.Query().Get("window"), handler.trailingDays)
	if err != nil {
		http.Error(w, "error, invalid window", http.StatusBadRequest)
		return
	}

	top := Top(Rank(handler.source.All(), window, MuscleGain), PodiumSize)
	podium := make([]PodiumEntry, 0, len(top))
	for i, row := range top {
		gain, _ := row.Value(MuscleGain)
		podium = append(podium, PodiumEntry{
			Position: i + 1,
			Row:      row,
			Badge:    GainBadge(gain),
		})
	}

	pkg.WriteJSON(w, podium, http.StatusOK)
}

func (handler *Handler) handleScore(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "rankingHandler.score")
	defer span.End()

	scores := CompositeScores(handler.source.All())
	if scores == nil {
		scores = []Score{}
	}
	pkg.WriteJSON(w, scores, http.StatusOK)
}

func (handler *Handler) handleRules(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "rankingHandler.rules")
	defer span.End()

	pkg.WriteJSON(w, Rules(), http.StatusOK)
}

func (handler *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "rankingHandler.dashboard")
	defer span.End()

	person := mux.Vars(r)["person"]
	if person == "" {
		http.Error(w, "error, person empty", http.StatusBadRequest)
		return
	}

	d, err := Dashboard(handler.source.All(), person)
	if err != nil {
		if errors.Is(err, timeline.ErrEmptyTimeline) {
			http.Error(w, "no measurements for person", http.StatusNotFound)
			return
		}
		log.Errorf("dashboard for [%s]: %s", person, err)
		http.Error(w, "failed to build dashboard", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, d, http.StatusOK)
}

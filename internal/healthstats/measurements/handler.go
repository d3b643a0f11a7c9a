package measurements

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/2beens/healthtracker/internal/telemetry/tracing"
	"github.com/2beens/healthtracker/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=handler.go -destination=service_mock_test.go -package=measurements

type measurementsService interface {
	All() []Measurement
	Persons() []string
	Pending() int
	Defaults(person string) EntryDefaults
	AppendAndPersist(ctx context.Context, m Measurement) error
	Retry(ctx context.Context) error
}

type Handler struct {
	service measurementsService
	// ability to inject the clock, new entries without a date get today
	nowFunc func() time.Time
}

type persistResponse struct {
	Saved   bool   `json:"saved"`
	Pending int    `json:"pending"`
	Message string `json:"message,omitempty"`
}

const lockedMessage = "the measurement sheet is open in another program, close it and retry, your data is kept until then"

func NewHandler(service measurementsService) *Handler {
	return &Handler{
		service: service,
		nowFunc: time.Now,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/measurements", handler.handleList).Methods("GET", "OPTIONS").Name("list-measurements")
	r.HandleFunc("/measurements", handler.handleAdd).Methods("POST", "OPTIONS").Name("new-measurement")
	r.HandleFunc("/measurements/persons", handler.handlePersons).Methods("GET", "OPTIONS").Name("list-persons")
	r.HandleFunc("/measurements/person/{person}/defaults", handler.handleDefaults).Methods("GET", "OPTIONS").Name("entry-defaults")
	r.HandleFunc("/measurements/persist", handler.handlePersist).Methods("POST", "OPTIONS").Name("persist-measurements")
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "measurementsHandler.list")
	defer span.End()

	all := handler.service.All()
	if all == nil {
		all = []Measurement{}
	}
	pkg.WriteJSON(w, all, http.StatusOK)
}

func (handler *Handler) handlePersons(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "measurementsHandler.persons")
	defer span.End()

	persons := handler.service.Persons()
	if persons == nil {
		persons = []string{}
	}
	pkg.WriteJSON(w, persons, http.StatusOK)
}

func (handler *Handler) handleDefaults(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "measurementsHandler.defaults")
	defer span.End()

	person := strings.TrimSpace(mux.Vars(r)["person"])
	if person == "" {
		http.Error(w, "error, person empty", http.StatusBadRequest)
		return
	}

	pkg.WriteJSON(w, handler.service.Defaults(person), http.StatusOK)
}

func (handler *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "measurementsHandler.add")
	defer span.End()

	var m Measurement
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		log.Errorf("add measurement, unmarshal json: %s", err)
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, ErrMalformedDate) {
			http.Error(w, "error, malformed date", http.StatusBadRequest)
			return
		}
		http.Error(w, "error, invalid measurement", http.StatusBadRequest)
		return
	}

	if !m.HasDate() && m.RawDate == "" {
		now := handler.nowFunc().UTC()
		m.Date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	err := handler.service.AppendAndPersist(ctx, m)
	switch {
	case err == nil:
		log.Tracef("new measurement for [%s] saved", m.Person)
		pkg.WriteJSON(w, persistResponse{
			Saved:   true,
			Pending: handler.service.Pending(),
		}, http.StatusCreated)
	case errors.Is(err, ErrInvalidMeasurement):
		span.SetStatus(codes.Error, err.Error())
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrResourceLocked):
		span.SetStatus(codes.Error, "sheet-locked")
		pkg.WriteJSON(w, persistResponse{
			Saved:   false,
			Pending: handler.service.Pending(),
			Message: lockedMessage,
		}, http.StatusLocked)
	default:
		span.SetStatus(codes.Error, err.Error())
		log.Errorf("add measurement for [%s]: %s", m.Person, err)
		pkg.WriteJSON(w, persistResponse{
			Saved:   false,
			Pending: handler.service.Pending(),
			Message: "failed to save the measurement sheet, your data is kept until the next retry",
		}, http.StatusInternalServerError)
	}
}

func (handler *Handler) handlePersist(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "measurementsHandler.persist")
	defer span.End()

	err := handler.service.Retry(ctx)
	switch {
	case err == nil:
		pkg.WriteJSON(w, persistResponse{
			Saved:   true,
			Pending: handler.service.Pending(),
		}, http.StatusOK)
	case errors.Is(err, ErrResourceLocked):
		span.SetStatus(codes.Error, "sheet-locked")
		pkg.WriteJSON(w, persistResponse{
			Saved:   false,
			Pending: handler.service.Pending(),
			Message: lockedMessage,
		}, http.StatusLocked)
	default:
		span.SetStatus(codes.Error, err.Error())
		log.Errorf("retry persist measurements: %s", err)
		http.Error(w, "failed to persist", http.StatusInternalServerError)
	}
}

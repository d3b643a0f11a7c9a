package videohub

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/healthtracker/internal/telemetry/tracing"
	"github.com/2beens/healthtracker/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type linkValidator interface {
	Validate(ctx context.Context, library Library) Library
}

type CategoryInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active int    `json:"active"`
}

type VideosResponse struct {
	Category CategoryInfo `json:"category"`
	Day      string       `json:"day"`
	Videos   []string     `json:"videos"`
	Message  string       `json:"message,omitempty"`
}

const allDownMessage = "sorry, every video of this category is offline today"

type Handler struct {
	library   Library
	validator linkValidator
	nowFunc   func() time.Time
}

func NewHandler(library Library, validator linkValidator) *Handler {
	return &Handler{
		library:   library,
		validator: validator,
		nowFunc:   time.Now,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/hub/categories", handler.handleCategories).Methods("GET", "OPTIONS").Name("hub-categories")
	r.HandleFunc("/hub/videos", handler.handleVideos).Methods("GET", "OPTIONS").Name("hub-videos")
	r.HandleFunc("/hub/hydration", handler.handleHydration).Methods("GET", "OPTIONS").Name("hub-hydration")
}

func (handler *Handler) handleCategories(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "videoHubHandler.categories")
	defer span.End()

	validated := handler.validator.Validate(ctx, handler.library)
	categories := make([]CategoryInfo, 0, len(validated))
	for _, c := range validated {
		categories = append(categories, CategoryInfo{ID: c.ID, Name: c.Name, Active: len(c.Links)})
	}

	pkg.WriteJSON(w, categories, http.StatusOK)
}

func (handler *Handler) handleVideos(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "videoHubHandler.videos")
	defer span.End()

	if len(handler.library) == 0 {
		http.Error(w, "video library empty", http.StatusNotFound)
		return
	}

	categoryID := r.URL.Query().Get("category")
	if categoryID == "" {
		categoryID = handler.library[0].ID
	}
	span.SetAttributes(attribute.String("category", categoryID))

	validated := handler.validator.Validate(ctx, handler.library)
	category, found := validated.Category(categoryID)
	if !found {
		http.Error(w, "unknown category", http.StatusNotFound)
		return
	}

	today := handler.nowFunc()
	resp := VideosResponse{
		Category: CategoryInfo{ID: category.ID, Name: category.Name, Active: len(category.Links)},
		Day:      today.Format("2006-01-02"),
		Videos:   DailyPick(category.Links, category.Name, today),
	}
	if len(category.Links) == 0 {
		log.Warnf("video hub: no active links for category [%s]", category.ID)
		resp.Message = allDownMessage
	}

	pkg.WriteJSON(w, resp, http.StatusOK)
}

func (handler *Handler) handleHydration(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "videoHubHandler.hydration")
	defer span.End()

	weightStr := r.URL.Query().Get("weight")
	if weightStr == "" {
		http.Error(w, "error, weight empty", http.StatusBadRequest)
		return
	}
	weight, err := strconv.ParseFloat(weightStr, 64)
	if err != nil {
		http.Error(w, "error, weight NaN", http.StatusBadRequest)
		return
	}

	pkg.WriteJSON(w, HydrationGoal(weight), http.StatusOK)
}

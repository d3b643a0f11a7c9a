package misc

import (
	"context"
	"fmt"
	"net/http"

	"github.com/2beens/healthtracker/internal/middleware"
	"github.com/2beens/healthtracker/internal/session"
	"github.com/2beens/healthtracker/internal/telemetry/tracing"
	"github.com/2beens/healthtracker/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type loginChecker interface {
	IsLogged(ctx context.Context, token string) (bool, error)
}

type stateStore interface {
	GetOrNew(ctx context.Context, token string) (session.State, error)
}

type Handler struct {
	versionInfo  string
	loginChecker loginChecker
	stateStore   stateStore
}

func NewHandler(
	versionInfo string,
	loginChecker loginChecker,
	stateStore stateStore,
) *Handler {
	return &Handler{
		versionInfo:  versionInfo,
		loginChecker: loginChecker,
		stateStore:   stateStore,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/", handler.handleRoot).Methods("GET", "POST", "OPTIONS").Name("root")
	mainRouter.HandleFunc("/myip", handler.handleGetMyIp).Methods("GET").Name("myip")
	mainRouter.HandleFunc("/version", handler.handleGetVersionInfo).Methods("GET").Name("version")
	mainRouter.HandleFunc("/features", handler.handleGetFeatures).Methods("GET", "OPTIONS").Name("features")
}

func (handler *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
}

func (handler *Handler) handleGetMyIp(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.getMyIp")
	defer span.End()

	ip, err := pkg.ReadUserIP(r)
	if err != nil {
		span.SetStatus(codes.Error, fmt.Sprintf("failed to get user IP address: %s", err))
		log.Errorf("failed to get user IP address: %s", err)
		http.Error(w, "failed to get IP", http.StatusInternalServerError)
		return
	}

	span.SetAttributes(attribute.String("user.ip", ip))
	pkg.WriteTextResponseOK(w, ip)
}

func (handler *Handler) handleGetVersionInfo(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, handler.versionInfo)
}

type featuresResponse struct {
	LoggedIn bool              `json:"logged_in"`
	Features []session.Feature `json:"features"`
}

// handleGetFeatures lists the dashboard sections the caller may open.
// Anonymous or stale tokens get the public set.
func (handler *Handler) handleGetFeatures(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.features")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "GET, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	state := session.State{}
	if token := r.Header.Get(middleware.AuthTokenHeader); token != "" {
		isLogged, err := handler.loginChecker.IsLogged(ctx, token)
		if err != nil {
			log.Tracef("[features] login check: %s", err)
		}
		if isLogged {
			loggedState, err := handler.stateStore.GetOrNew(ctx, token)
			if err != nil {
				span.SetStatus(codes.Error, err.Error())
				log.Errorf("features, get session state: %s", err)
				http.Error(w, "session error", http.StatusInternalServerError)
				return
			}
			state = loggedState
		}
	}

	span.SetAttributes(attribute.Bool("logged_in", state.LoggedIn))
	pkg.WriteJSON(w, featuresResponse{
		LoggedIn: state.LoggedIn,
		Features: state.Features(),
	}, http.StatusOK)
}

package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/healthtracker/internal/assistant"
	"github.com/2beens/healthtracker/internal/auth"
	"github.com/2beens/healthtracker/internal/config"
	healthstatsmcp "github.com/2beens/healthtracker/internal/healthstats/mcp"
	"github.com/2beens/healthtracker/internal/healthstats/measurements"
	"github.com/2beens/healthtracker/internal/healthstats/ranking"
	"github.com/2beens/healthtracker/internal/middleware"
	"github.com/2beens/healthtracker/internal/misc"
	"github.com/2beens/healthtracker/internal/session"
	"github.com/2beens/healthtracker/internal/telemetry/metrics"
	"github.com/2beens/healthtracker/internal/telemetry/tracing"
	"github.com/2beens/healthtracker/internal/videohub"

	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	authCleanupInterval  = 8 * time.Hour
	persistRetryInterval = time.Minute
	maxRequestBodyBytes  = 12 << 20
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config *config.Config

	redisClient  *redis.Client
	loginChecker *auth.LoginChecker
	authService  *auth.Service
	sessionStore *session.Store

	measurementsService *measurements.Service
	assistantProvider   assistant.Provider
	videoChecker        *videohub.Checker

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	Users                   auth.Users
	RedisPassword           string
	GeminiApiKey            string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	store, err := measurements.NewFileStore(params.Config.MeasurementsPath)
	if err != nil {
		return nil, fmt.Errorf("measurements store: %w", err)
	}
	dataset := measurements.NewDataset(store)
	dataset.Load(ctx)
	log.Infof("measurements loaded: %d rows, %d persons", dataset.Len(), len(dataset.Persons()))

	promRegistry := metrics.SetupPrometheus(metrics.NewRowsGauge("backend", dataset.Len))
	metricsManager := metrics.NewManager("backend", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	if len(params.Users) == 0 {
		log.Warnln("no users configured, login will always fail")
	}
	authService := auth.NewAuthService(params.Users, auth.DefaultTTL, rdb)

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "healthtracker-backend", rdb)
	if err != nil {
		return nil, err
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	if params.GeminiApiKey == "" {
		log.Errorf("gemini api key not set, assistant requests will fail")
	}
	assistantProvider, err := assistant.NewGeminiProvider(
		ctx,
		params.Config.GeminiApiUrl,
		params.Config.GeminiModel,
		params.GeminiApiKey,
	)
	if err != nil {
		return nil, fmt.Errorf("assistant provider: %w", err)
	}

	s := &Server{
		config:      params.Config,
		versionInfo: params.VersionInfo,

		redisClient:  rdb,
		authService:  authService,
		loginChecker: auth.NewLoginChecker(auth.DefaultTTL, rdb),
		sessionStore: session.NewStore(rdb, auth.DefaultTTL),

		measurementsService: measurements.NewService(dataset, metricsManager),
		assistantProvider:   assistantProvider,
		videoChecker: videohub.NewChecker(
			videohub.DefaultOEmbedURL,
			params.Config.VideoCheckTimeout.Duration,
			tracedHttpClient,
			metricsManager,
		),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	return s, nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	miscHandler := misc.NewHandler(s.versionInfo, s.loginChecker, s.sessionStore)
	miscHandler.SetupRoutes(r)

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	authHandler := auth.NewHandler(s.authService, s.sessionStore)
	authHandler.SetupRoutes(r, reqRateLimiter, s.metricsManager, s.config.LoginRateLimitAllowedPerMin)

	measurementsHandler := measurements.NewHandler(s.measurementsService)
	measurementsHandler.SetupRoutes(r)

	rankingHandler := ranking.NewHandler(s.measurementsService, s.config.TrailingWindowDays)
	rankingHandler.SetupRoutes(r)

	sessionHandler := session.NewHandler(s.sessionStore, s.measurementsService)
	sessionHandler.SetupRoutes(r)

	assistantHandler := assistant.NewHandler(
		s.assistantProvider,
		s.sessionStore,
		s.measurementsService,
		s.metricsManager,
	)
	assistantHandler.SetupRoutes(r)

	hubHandler := videohub.NewHandler(videohub.DefaultLibrary(), s.videoChecker)
	hubHandler.SetupRoutes(r)

	mcpServer := healthstatsmcp.NewServer(s.measurementsService, s.config.TrailingWindowDays)
	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return mcpServer
	}, nil)
	r.PathPrefix("/mcp").Handler(mcpHandler).Name("mcp")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.loginChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins...))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest(maxRequestBodyBytes))

	return r, nil
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler: router,
		Addr:    ipAndPort,
		// assistant replies are streamed from the model and can take a while
		WriteTimeout: 2 * time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	go s.runPeriodic(ctx, authCleanupInterval, s.authService.ScanAndClean)
	go s.runPeriodic(ctx, persistRetryInterval, s.retryPendingMeasurements)

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) runPeriodic(ctx context.Context, interval time.Duration, job func(ctx context.Context)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			job(ctx)
		}
	}
}

// retryPendingMeasurements writes rows kept in memory while the sheet was locked.
func (s *Server) retryPendingMeasurements(ctx context.Context) {
	if s.measurementsService.Pending() == 0 {
		return
	}
	if err := s.measurementsService.Retry(ctx); err != nil {
		log.Warnf("retry persist of %d pending measurements: %s", s.measurementsService.Pending(), err)
		return
	}
	log.Infoln("pending measurements persisted")
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	// last chance for rows that never made it to the sheet
	if pending := s.measurementsService.Pending(); pending > 0 {
		if err := s.measurementsService.Retry(ctx); err != nil {
			log.Errorf("%d measurements not persisted on shutdown: %s", pending, err)
		}
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}

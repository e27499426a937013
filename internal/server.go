package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/multierr"

	"github.com/2beens/fitnessdash/internal/cache"
	"github.com/2beens/fitnessdash/internal/config"
	"github.com/2beens/fitnessdash/internal/dashboard"
	"github.com/2beens/fitnessdash/internal/mcp"
	"github.com/2beens/fitnessdash/internal/middleware"
	"github.com/2beens/fitnessdash/internal/spreadsheet"
	"github.com/2beens/fitnessdash/internal/telemetry/metrics"
	"github.com/2beens/fitnessdash/internal/telemetry/tracing"
	"github.com/2beens/fitnessdash/pkg"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config           *config.Config
	redisClient      *redis.Client
	loader           *dashboard.Loader
	dashboardHandler *dashboard.Handler
	mcpServer        *sdkmcp.Server

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	RedisPassword           string
	HoneycombTracingEnabled bool
	HoneycombAPIKey         string
	// GoogleAPIEndpoint points the Sheets and Drive clients at another host and skips
	// the service account token exchange. Used against fake APIs.
	GoogleAPIEndpoint string
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config
	if cfg == nil {
		return nil, errors.New("server needs a config")
	}

	promRegistry := metrics.SetupPrometheus(params.VersionInfo)
	metricsManager := metrics.NewManager("fitnessdash", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "fitnessdash", params.HoneycombAPIKey)
	if err != nil {
		return nil, err
	}

	s := &Server{
		config:         cfg,
		versionInfo:    params.VersionInfo,
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	// redis backs the shared cache and the refresh rate limiter
	if cfg.CacheBackend == config.CacheBackendRedis || cfg.RedisHost != "" {
		s.redisClient = newRedisClient(ctx, cfg.RedisHost, cfg.RedisPort, params.RedisPassword)
	}

	var store cache.Store
	switch cfg.CacheBackend {
	case config.CacheBackendRedis:
		store = cache.NewRedisStore(s.redisClient, cache.DefaultRedisPrefix)
	default:
		store = cache.NewMemoryStore(cfg.MemoryCacheBytes())
	}

	s.loader, err = dashboard.NewLoader(dashboard.LoaderParams{
		Source:          OpenSource(ctx, cfg, params.GoogleAPIEndpoint),
		Store:           store,
		RefreshInterval: cfg.RefreshDuration(),
		MetricsManager:  metricsManager,
	})
	if err != nil {
		return nil, fmt.Errorf("new loader: %w", err)
	}

	s.dashboardHandler, err = dashboard.NewHandler(dashboard.HandlerParams{
		Loader:           s.loader,
		MetricsManager:   metricsManager,
		ShowErrorDetails: cfg.ShowErrorDetails,
	})
	if err != nil {
		return nil, fmt.Errorf("new dashboard handler: %w", err)
	}

	if cfg.MCPEnabled {
		s.mcpServer = mcp.NewServer(s.loader, time.Now)
	}

	return s, nil
}

func newRedisClient(ctx context.Context, host, port, password string) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: password,
		DB:       0, // use default DB
	})
	rdb.AddHook(redisotel.NewTracingHook())

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	return rdb
}

// OpenSource never fails: a source that cannot be created is replaced by one that reports
// why, so the dashboard still starts and shows the problem.
func OpenSource(ctx context.Context, cfg *config.Config, googleAPIEndpoint string) spreadsheet.Source {
	params := spreadsheet.SourceParams{
		SheetName:  cfg.SheetName,
		Worksheet:  cfg.Worksheet,
		SourceFile: cfg.SourceFile,
		Endpoint:   googleAPIEndpoint,
	}
	name := fmt.Sprintf("google sheet '%s'", cfg.SheetName)

	if cfg.SourceFile == "" {
		credentials, err := spreadsheet.LoadCredentials(ctx, spreadsheet.CredentialsParams{
			SecretName: cfg.CredentialsSecret,
			ProjectID:  cfg.GCPProject,
			File:       cfg.CredentialsFile,
		})
		if err != nil {
			log.Errorf("load google credentials: %s", err)
			return spreadsheet.NewUnavailableSource(name, err)
		}
		params.CredentialsJSON = credentials
		if googleAPIEndpoint != "" {
			params.HTTPClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
		}
	}

	src, err := spreadsheet.Open(ctx, params)
	if err != nil {
		log.Errorf("open spreadsheet source: %s", err)
		return spreadsheet.NewUnavailableSource(name, err)
	}
	log.Debugf("using spreadsheet source: %s", src.Name())

	return src
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter().UseEncodedPath()
	r.Use(otelmux.Middleware("main-router"))

	var reqRateLimiter middleware.RequestRateLimiter
	if s.redisClient != nil {
		reqRateLimiter = redis_rate.NewLimiter(s.redisClient)
	} else {
		log.Debugln("no redis configured, refresh is not rate limited")
	}
	s.dashboardHandler.SetupRoutes(r, reqRateLimiter, s.metricsManager, s.config.RefreshRateLimitPerMin)

	if s.mcpServer != nil {
		r.Handle("/mcp", mcp.HTTPHandler(s.mcpServer)).Name("mcp")
	}

	r.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteResponse(w, pkg.ContentType.Text, s.versionInfo, http.StatusOK)
	}).Methods("GET").Name("version")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", s.dashboardHandler.HandleNotFound).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")
	r.NotFoundHandler = http.HandlerFunc(s.dashboardHandler.HandleNotFound)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}))
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

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() error {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	var err error
	if s.httpServer != nil {
		if shutdownErr := s.httpServer.Shutdown(ctx); shutdownErr != nil {
			err = multierr.Append(err, fmt.Errorf("shutdown http server: %w", shutdownErr))
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if shutdownErr := s.metricsHttpServer.Shutdown(ctx); shutdownErr != nil {
			err = multierr.Append(err, fmt.Errorf("shutdown metrics http server: %w", shutdownErr))
		}
		log.Warnln("metrics server shut down")
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if closeErr := s.redisClient.Close(); closeErr != nil {
			err = multierr.Append(err, fmt.Errorf("close redis client: %w", closeErr))
		}
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	return err
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

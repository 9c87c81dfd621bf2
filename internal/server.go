package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/2beens/devfolio/internal/blog"
	"github.com/2beens/devfolio/internal/blog/fallback"
	"github.com/2beens/devfolio/internal/config"
	"github.com/2beens/devfolio/internal/content"
	"github.com/2beens/devfolio/internal/db"
	"github.com/2beens/devfolio/internal/middleware"
	"github.com/2beens/devfolio/internal/pages"
	"github.com/2beens/devfolio/internal/telemetry/metrics"
	"github.com/2beens/devfolio/internal/telemetry/tracing"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config        *config.Config
	listPolicy    content.ListFallbackPolicy
	dbPool        *pgxpool.Pool // nil when the remote store is not configured
	fallbackStore *fallback.Store
	redisClient   *redis.Client

	// telemetry
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	RemoteURL               string
	RemoteKey               string
	RedisPassword           string
	HoneycombTracingEnabled bool
	VersionInfo             string
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	listPolicy, err := content.ParseListFallbackPolicy(params.Config.ListFallbackPolicy)
	if err != nil {
		return nil, fmt.Errorf("list fallback policy: %w", err)
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, tracing.ServiceName)
	if err != nil {
		return nil, err
	}

	var collectors []prometheus.Collector
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		URL:            params.RemoteURL,
		Key:            params.RemoteKey,
		MaxConns:       params.Config.DBMaxConns,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	switch {
	case errors.Is(err, db.ErrRemoteNotConfigured):
		log.Warnln("remote content store not configured, serving bundled content only")
		dbPool = nil
	case err != nil:
		otelShutdown()
		return nil, fmt.Errorf("new db pool: %w", err)
	default:
		if err := dbPool.Ping(ctx); err != nil {
			log.Warnf("failed to ping remote content store: %s", err)
		}
		collectors = append(collectors, pgxpoolprometheus.NewCollector(
			dbPool,
			map[string]string{"db_name": "devfolio"},
		))
	}

	promRegistry := metrics.SetupPrometheus(collectors...)
	metricsManager := metrics.NewManager("devfolio", "main", promRegistry)
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

	return &Server{
		config:        params.Config,
		listPolicy:    listPolicy,
		dbPool:        dbPool,
		fallbackStore: fallback.NewStore(),
		redisClient:   rdb,
		versionInfo:   params.VersionInfo,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup(rateLimiter middleware.RequestRateLimiter) *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	handlerParams := pages.NewHandlerParams{
		Seeds:          s.fallbackStore,
		MetricsManager: s.metricsManager,
		VersionInfo:    s.versionInfo,
	}
	// interfaces are only set with a live pool, a nil *blog.Repo would
	// look configured to the resolver
	if s.dbPool != nil {
		repo := blog.NewRepo(s.dbPool)
		handlerParams.Resolver = content.NewResolver(repo, s.fallbackStore, s.listPolicy, s.metricsManager)
		handlerParams.Creator = repo
		handlerParams.Remote = repo
	} else {
		handlerParams.Resolver = content.NewResolver(nil, s.fallbackStore, s.listPolicy, s.metricsManager)
	}

	pages.NewHandler(handlerParams).SetupRoutes(r, rateLimiter, s.config.AdminRateLimitAllowedPerMin)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup(redis_rate.NewLimiter(s.redisClient))

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      otelhttp.NewHandler(router, "devfolio-http"),
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
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

	s.metricsManager.GaugeLifeSignal.Set(1)
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

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}

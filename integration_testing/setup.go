//go:build integration_test || all_tests

package integration_testing

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"github.com/2beens/devfolio/internal"
	"github.com/2beens/devfolio/internal/blog"
	"github.com/2beens/devfolio/internal/config"
	"github.com/2beens/devfolio/internal/db"
)

const (
	serverPort = 9000
	serverHost = "localhost"
	pgPassword = "postgres"
)

var serverEndpoint = fmt.Sprintf("http://%s:%d", serverHost, serverPort)

type Suite struct {
	DB         *sql.DB
	dockerPool *dockertest.Pool
	server     *internal.Server
	teardown   []func()
}

func newSuite(ctx context.Context) (_ *Suite) {
	var err error
	suite := &Suite{
		teardown: make([]func(), 0),
	}

	// uses a sensible default on windows (tcp/http) and linux/osx (socket)
	suite.dockerPool, err = dockertest.NewPool("")
	if err != nil {
		log.Fatalf("could not create new dockertest pool: %s", err)
	}

	// uses pool to try to connect to Docker
	if err = suite.dockerPool.Client.Ping(); err != nil {
		log.Fatalf("could not ping dockertest pool: %s", err)
	}

	redisPort, err := suite.redisSetup()
	if err != nil {
		suite.cleanup()
		log.Fatalf("failed to setup redis: %s", err.Error())
	}

	pgPort, err := suite.postgresSetup(ctx)
	if err != nil {
		suite.cleanup()
		log.Fatalf("failed to setup postgres: %s", err)
	}

	suite.server, err = internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:                  getTestConfig(redisPort),
			RemoteURL:               remoteURL(pgPort),
			RemoteKey:               pgPassword,
			VersionInfo:             "test-version-info",
			RedisPassword:           "",
			HoneycombTracingEnabled: false,
		},
	)
	if err != nil {
		suite.cleanup()
		log.Fatalf("new server: %s", err)
	}

	suite.server.Serve(serverHost, serverPort)
	// give the listener a moment
	time.Sleep(200 * time.Millisecond)

	return suite
}

func (s *Suite) cleanup() {
	if s.server != nil {
		s.server.GracefulShutdown()
	}
	if s.DB != nil {
		s.DB.Close()
	}
	for _, teardown := range s.teardown {
		teardown()
	}
}

func getTestConfig(redisPort string) *config.Config {
	cfg, err := config.Parse("dev", fmt.Sprintf(`
[development]
host = %q
port = %d
log_level = "error"
redis_host = "localhost"
redis_port = %q
prometheus_metrics_port = "2113"
admin_rate_limit_allowed_per_min = 100
list_fallback_policy = "on_empty"
`, serverHost, serverPort, redisPort))
	if err != nil {
		log.Fatalf("test config: %s", err)
	}
	return cfg
}

func remoteURL(pgPort string) string {
	return fmt.Sprintf("postgres://postgres@localhost:%s/devfolio?sslmode=disable", pgPort)
}

func (s *Suite) redisSetup() (string, error) {
	redisResource, err := s.dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Name:       "devfolio-redis",
		Tag:        "6.2",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
	})
	if err != nil {
		return "", fmt.Errorf("run redis: %s", err)
	}

	s.teardown = append(s.teardown, func() {
		redisResource.Close()
	})

	redisPort := redisResource.GetPort("6379/tcp")
	return redisPort, nil
}

func (s *Suite) postgresSetup(ctx context.Context) (string, error) {
	pgResource, err := s.dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "15",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_PASSWORD=" + pgPassword,
			"POSTGRES_DB=devfolio",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	if err != nil {
		return "", fmt.Errorf("dockerpool run postgres: %s", err)
	}

	s.teardown = append(s.teardown, func() {
		pgResource.Close()
	})

	pgPort := pgResource.GetPort("5432/tcp")
	dsn := fmt.Sprintf("postgres://postgres:%s@localhost:%s/devfolio?sslmode=disable", pgPassword, pgPort)
	s.DB, err = sql.Open("postgres", dsn)
	if err != nil {
		return "", fmt.Errorf("open db conn: %s", err)
	}

	if err := s.dockerPool.Retry(s.DB.Ping); err != nil {
		return "", fmt.Errorf("ping db: %s", err)
	}

	// the service never migrates on its own
	pool, err := db.NewDBPool(ctx, db.NewDBPoolParams{URL: remoteURL(pgPort), Key: pgPassword})
	if err != nil {
		return "", fmt.Errorf("schema pool: %s", err)
	}
	defer pool.Close()
	if err := blog.NewRepo(pool).EnsureSchema(ctx); err != nil {
		return "", fmt.Errorf("ensure schema: %s", err)
	}

	return pgPort, nil
}

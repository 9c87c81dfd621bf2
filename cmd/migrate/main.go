package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/devfolio/internal/blog"
	"github.com/2beens/devfolio/internal/blog/fallback"
	"github.com/2beens/devfolio/internal/content"
	"github.com/2beens/devfolio/internal/db"
	"github.com/2beens/devfolio/internal/logging"
)

// migrate applies the schema to the remote store and seeds it with the
// bundled full posts. Safe to run repeatedly.
func main() {
	logLevel := flag.String("log-level", "info", "log level [trace | debug | info | warn | error]")
	schemaOnly := flag.Bool("schema-only", false, "only ensure the schema, do not seed posts")
	flag.Parse()

	logging.Setup(logging.LoggerSetupParams{
		LogLevel: *logLevel,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		URL: os.Getenv("DEVFOLIO_REMOTE_URL"),
		Key: os.Getenv("DEVFOLIO_REMOTE_KEY"),
	})
	if err != nil {
		log.Fatalf("new db pool: %s (use DEVFOLIO_REMOTE_URL and DEVFOLIO_REMOTE_KEY)", err)
	}
	defer dbPool.Close()

	repo := blog.NewRepo(dbPool)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatalf("ensure schema: %s", err)
	}
	log.Infoln("schema ok")

	if *schemaOnly {
		return
	}

	report := content.Seed(ctx, repo, fallback.NewStore().SeedPosts())
	for _, res := range report.Results {
		switch res.Status {
		case content.SeedFailed:
			fmt.Printf("  ✗ %s: %s\n", res.Slug, res.Error)
		case content.SeedExists:
			fmt.Printf("  = %s (id %d)\n", res.Slug, res.ID)
		default:
			fmt.Printf("  ✓ %s (id %d)\n", res.Slug, res.ID)
		}
	}
	fmt.Printf("created: %d, existing: %d, failed: %d\n", report.Created, report.Existing, report.Failed)

	if report.Failed > 0 {
		// deferred close would be skipped by os.Exit
		dbPool.Close()
		os.Exit(1)
	}
}

package main

import (
	"context"
	"log"
	"os"

	"github.com/bionano-bdd/bddb-backend/config"
	"github.com/bionano-bdd/bddb-backend/internal/bootstrap"
	cronjob "github.com/bionano-bdd/bddb-backend/internal/catalog/cron"
	"github.com/bionano-bdd/bddb-backend/internal/catalog/repository"
	"github.com/bionano-bdd/bddb-backend/internal/catalog/scoring"
	"github.com/bionano-bdd/bddb-backend/internal/storage/postgres"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: worker rescore")
	}

	switch os.Args[1] {
	case "rescore":
		runRescoreSweep()
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
}

// runRescoreSweep recomputes the documentation-quality score of every
// published project once and exits. The nightly cron inside the API runs
// the same sweep; this entry point exists for manual reconciliation.
func runRescoreSweep() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: postgres.DSN(&cfg.Database)})
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	projectRepo := repository.NewProjectRepository(pool)
	attachmentRepo := repository.NewAttachmentRepository(pool)
	engine := scoring.NewEngine(attachmentRepo, projectRepo)

	cronjob.NewScheduler(engine, projectRepo, projectRepo, 5).RunSweep(ctx)
}

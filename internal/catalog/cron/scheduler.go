// Package cronjob reconciles stored documentation-quality scores overnight.
// The score is a pure function of project and attachment state, so the
// sweep simply recomputes every published project and rewrites drifted
// values.
package cronjob

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/time/rate"

	"github.com/bionano-bdd/bddb-backend/internal/catalog/domain"
	"github.com/bionano-bdd/bddb-backend/internal/catalog/scoring"
)

// ProjectSource lists the projects the sweep walks. Newest-first ordering
// is as good as any here.
type ProjectSource interface {
	FetchProjects(ctx context.Context, sort domain.SortKey) ([]domain.Project, error)
}

type Scheduler struct {
	engine   *scoring.Engine
	projects ProjectSource
	scores   scoring.ScoreSaver
	limiter  *rate.Limiter
}

// NewScheduler builds the nightly reconciler. perSecond caps how many
// projects are rescored each second so the sweep never crowds out serving
// queries.
func NewScheduler(engine *scoring.Engine, projects ProjectSource, scores scoring.ScoreSaver, perSecond int) *Scheduler {
	if perSecond <= 0 {
		perSecond = 5
	}
	return &Scheduler{
		engine:   engine,
		projects: projects,
		scores:   scores,
		limiter:  rate.NewLimiter(rate.Limit(perSecond), perSecond),
	}
}

// Start registers the nightly run (12:00 AM).
func (s *Scheduler) Start() {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc("0 0 0 * * *", func() {
		s.RunSweep(context.Background())
	})
	if err != nil {
		log.Printf("Failed to create cron job: %v", err)
		return
	}

	log.Println("Cron scheduler started (score reconciliation nightly at 12:00AM)")
	c.Start()
}

// RunSweep recomputes the score of every published, non-deleted project and
// persists the ones that drifted. Per-project failures are logged and
// skipped; the sweep never aborts early.
func (s *Scheduler) RunSweep(ctx context.Context) {
	start := time.Now()
	projects, err := s.projects.FetchProjects(ctx, domain.SortNewest)
	if err != nil {
		log.Printf("[error] score sweep: fetch projects: %v", err)
		return
	}

	var rewritten, failed int
	for _, p := range projects {
		if err := s.limiter.Wait(ctx); err != nil {
			log.Printf("[warn] score sweep interrupted: %v", err)
			return
		}

		score, err := s.engine.Compute(ctx, p)
		if err != nil {
			failed++
			log.Printf("[warn] score sweep: project=%d compute: %v", p.ID, err)
			continue
		}
		if score == p.QualityOfDocumentation {
			continue
		}
		if err := s.scores.SaveProjectScore(ctx, p.ID, score); err != nil {
			failed++
			log.Printf("[warn] score sweep: project=%d persist: %v", p.ID, err)
			continue
		}
		rewritten++
	}

	log.Printf("[info] score sweep done: projects=%d rewritten=%d failed=%d took=%s",
		len(projects), rewritten, failed, time.Since(start))
}

package scoring

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bionano-bdd/bddb-backend/internal/catalog/domain"
)

// DefaultDebounce mirrors the settle window between a project update being
// written and its rescore reading the updated file set back.
const DefaultDebounce = 1 * time.Second

// Scheduler runs rescores detached from the request that triggered them.
// It keeps at most one pending run per project: scheduling again inside the
// debounce window supersedes the earlier run with the newer payload, so a
// rapid double-update produces a single evaluation of the final state.
type Scheduler struct {
	engine *Engine
	delay  time.Duration

	mu      sync.Mutex
	pending map[int64]*time.Timer
}

func NewScheduler(engine *Engine, delay time.Duration) *Scheduler {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Scheduler{
		engine:  engine,
		delay:   delay,
		pending: make(map[int64]*time.Timer),
	}
}

// ScheduleRescore queues an evaluation of the given project after the
// debounce delay. It returns immediately; the caller never observes the
// outcome. Failures are logged and the run is abandoned, no retry.
func (s *Scheduler) ScheduleRescore(projectID int64, p domain.Project) {
	jobID := uuid.New().String()[:8]

	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.pending[projectID]; ok {
		t.Stop()
	}
	s.pending[projectID] = time.AfterFunc(s.delay, func() {
		s.mu.Lock()
		delete(s.pending, projectID)
		s.mu.Unlock()

		if err := s.engine.Rescore(context.Background(), p); err != nil {
			log.Printf("[warn] job=%s project=%d rescore abandoned: %v", jobID, projectID, err)
			return
		}
		log.Printf("[info] job=%s project=%d rescore persisted", jobID, projectID)
	})
}

// Flush stops all pending timers. Used on shutdown; in-flight runs are not
// awaited.
func (s *Scheduler) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.pending {
		t.Stop()
		delete(s.pending, id)
	}
}

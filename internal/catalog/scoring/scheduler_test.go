package scoring

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bionano-bdd/bddb-backend/internal/catalog/domain"
)

type recordingScores struct {
	mu    sync.Mutex
	saved []int
}

func (r *recordingScores) SaveProjectScore(_ context.Context, _ int64, score int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, score)
	return nil
}

func (r *recordingScores) snapshot() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.saved...)
}

func TestSchedulerDebounce(t *testing.T) {
	t.Run("resubmit within the window supersedes the earlier run", func(t *testing.T) {
		scores := &recordingScores{}
		e := NewEngine(&fakeAttachments{}, scores)
		s := NewScheduler(e, 30*time.Millisecond)

		incomplete := domain.Project{ID: 1}
		complete := completeProject()
		complete.ID = 1

		s.ScheduleRescore(1, incomplete)
		s.ScheduleRescore(1, complete)

		require.Eventually(t, func() bool {
			return len(scores.snapshot()) == 1
		}, time.Second, 5*time.Millisecond)

		// Only the superseding payload was evaluated.
		assert.Equal(t, []int{2}, scores.snapshot())
	})

	t.Run("distinct projects debounce independently", func(t *testing.T) {
		scores := &recordingScores{}
		e := NewEngine(&fakeAttachments{}, scores)
		s := NewScheduler(e, 10*time.Millisecond)

		s.ScheduleRescore(1, domain.Project{ID: 1})
		s.ScheduleRescore(2, domain.Project{ID: 2})

		require.Eventually(t, func() bool {
			return len(scores.snapshot()) == 2
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("flush drops pending runs", func(t *testing.T) {
		scores := &recordingScores{}
		e := NewEngine(&fakeAttachments{}, scores)
		s := NewScheduler(e, 50*time.Millisecond)

		s.ScheduleRescore(1, domain.Project{ID: 1})
		s.Flush()

		time.Sleep(100 * time.Millisecond)
		assert.Empty(t, scores.snapshot())
	})
}

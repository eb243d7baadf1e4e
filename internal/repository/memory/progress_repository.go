package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/vytor/lingualearn/internal/logger"
	"github.com/vytor/lingualearn/internal/models"
	"github.com/vytor/lingualearn/internal/repository"
)

type progressRepository struct {
	mu        sync.Mutex
	maxHearts int
	learners  map[string]map[string]string
}

// NewProgressRepository creates an in-process ProgressRepository. Slot maps
// are replaced, never edited, so a failed update leaves no trace.
func NewProgressRepository(maxHearts int) repository.ProgressRepository {
	return &progressRepository{
		maxHearts: maxHearts,
		learners:  make(map[string]map[string]string),
	}
}

func (r *progressRepository) Load(ctx context.Context, learnerID string) (models.Progress, error) {
	log := logger.FromContext(ctx).WithPrefix("memory_repo")
	log.Debug("loading progress: learner=%s", learnerID)

	r.mu.Lock()
	slots := r.learners[learnerID]
	r.mu.Unlock()

	return repository.DecodeProgress(slots, r.maxHearts)
}

func (r *progressRepository) Update(ctx context.Context, learnerID string, fn repository.UpdateFunc) error {
	log := logger.FromContext(ctx).WithPrefix("memory_repo")

	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.learners[learnerID]
	changed, err := repository.Transition(current, r.maxHearts, fn)
	if err != nil {
		log.Debug("update aborted: learner=%s, err=%v", learnerID, err)
		return err
	}
	if len(changed) == 0 {
		return nil
	}

	next := make(map[string]string, len(current)+len(changed))
	maps.Copy(next, current)
	maps.Copy(next, changed)
	r.learners[learnerID] = next
	log.Debug("progress updated: learner=%s, slots=%d", learnerID, len(changed))
	return nil
}

func (r *progressRepository) Ping(ctx context.Context) error {
	return nil
}

package repository

import (
	"context"

	"github.com/vytor/lingualearn/internal/models"
)

// UpdateFunc mutates a learner's progress in place. Backends with optimistic
// concurrency may call it more than once, so it must not have side effects
// outside the progress value.
type UpdateFunc func(p *models.Progress) error

// ProgressRepository handles learner progress storage. Every Update is one
// atomic read-modify-write: either all changed slots are written or none.
type ProgressRepository interface {
	Load(ctx context.Context, learnerID string) (models.Progress, error)
	Update(ctx context.Context, learnerID string, fn UpdateFunc) error
	Ping(ctx context.Context) error
}

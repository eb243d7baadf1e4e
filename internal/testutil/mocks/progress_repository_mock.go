package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/lingualearn/internal/models"
	"github.com/vytor/lingualearn/internal/repository"
)

// MockProgressRepository is a mock implementation of repository.ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) Load(ctx context.Context, learnerID string) (models.Progress, error) {
	args := m.Called(ctx, learnerID)
	return args.Get(0).(models.Progress), args.Error(1)
}

// Update runs fn against the progress passed to Return so callers can
// inspect what the service computed, then returns the configured error.
func (m *MockProgressRepository) Update(ctx context.Context, learnerID string, fn repository.UpdateFunc) error {
	args := m.Called(ctx, learnerID, fn)
	if p, ok := args.Get(0).(*models.Progress); ok && p != nil {
		if err := fn(p); err != nil {
			return err
		}
	}
	return args.Error(1)
}

func (m *MockProgressRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

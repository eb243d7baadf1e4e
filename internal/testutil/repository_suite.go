package testutil

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/vytor/lingualearn/internal/models"
	"github.com/vytor/lingualearn/internal/repository"
	"golang.org/x/sync/errgroup"
)

// ProgressRepositorySuite is run against every ProgressRepository backend.
// NewRepo must return a fresh repository configured with the given hearts
// budget.
type ProgressRepositorySuite struct {
	suite.Suite
	NewRepo func(t *testing.T, maxHearts int) repository.ProgressRepository

	repo    repository.ProgressRepository
	learner string
}

func (s *ProgressRepositorySuite) SetupTest() {
	s.repo = s.NewRepo(s.T(), models.DefaultMaxHearts)
	s.learner = "learner-" + uuid.NewString()
}

func (s *ProgressRepositorySuite) TestPing() {
	s.Require().NoError(s.repo.Ping(context.Background()))
}

func (s *ProgressRepositorySuite) TestLoad_Defaults() {
	p, err := s.repo.Load(context.Background(), s.learner)
	s.Require().NoError(err)

	s.Assert().Equal(models.DefaultMaxHearts, p.Hearts)
	s.Assert().Equal(0, p.Streak)
	s.Assert().Empty(p.CompletedLessons)
	s.Assert().Empty(p.UnlockedAchievements)
	s.Assert().Empty(p.Sessions)
	s.Assert().True(p.LastStudyDate.IsZero())
}

func (s *ProgressRepositorySuite) TestUpdate_Persists() {
	ctx := context.Background()
	started := time.Date(2026, time.June, 3, 9, 0, 0, 0, time.UTC)

	err := s.repo.Update(ctx, s.learner, func(p *models.Progress) error {
		p.Streak = 4
		p.Hearts = 3
		p.CompletedLessons = append(p.CompletedLessons, "es-lesson-1")
		p.LessonBestScore["es-lesson-1"] = 87
		p.LastStudyDate = models.Date{Year: 2026, Month: time.June, Day: 3}
		p.UnlockedAchievements = append(p.UnlockedAchievements, "first-lesson")
		p.Sessions["es-lesson-2"] = models.Session{
			ID:             "6a1c2c0e-3c53-4f6b-a1de-0b9bbd5a2f3e",
			LessonID:       "es-lesson-2",
			State:          models.SessionInProgress,
			QuestionIndex:  2,
			Score:          1,
			TotalQuestions: 15,
			StartedAt:      started,
		}
		return nil
	})
	s.Require().NoError(err)

	p, err := s.repo.Load(ctx, s.learner)
	s.Require().NoError(err)
	s.Assert().Equal(4, p.Streak)
	s.Assert().Equal(3, p.Hearts)
	s.Assert().Equal([]string{"es-lesson-1"}, p.CompletedLessons)
	s.Assert().Equal(87, p.LessonBestScore["es-lesson-1"])
	s.Assert().Equal(models.Date{Year: 2026, Month: time.June, Day: 3}, p.LastStudyDate)
	s.Assert().Equal([]string{"first-lesson"}, p.UnlockedAchievements)

	session, ok := p.Sessions["es-lesson-2"]
	s.Require().True(ok)
	s.Assert().Equal(2, session.QuestionIndex)
	s.Assert().Equal(models.SessionInProgress, session.State)
	s.Assert().True(started.Equal(session.StartedAt))
}

func (s *ProgressRepositorySuite) TestUpdate_ErrorWritesNothing() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Update(ctx, s.learner, func(p *models.Progress) error {
		p.Streak = 2
		return nil
	}))

	boom := errors.New("boom")
	err := s.repo.Update(ctx, s.learner, func(p *models.Progress) error {
		p.Streak = 9
		p.Hearts = 1
		p.CompletedLessons = append(p.CompletedLessons, "fr-lesson-1")
		return boom
	})
	s.Assert().ErrorIs(err, boom)

	p, err := s.repo.Load(ctx, s.learner)
	s.Require().NoError(err)
	s.Assert().Equal(2, p.Streak)
	s.Assert().Equal(models.DefaultMaxHearts, p.Hearts)
	s.Assert().Empty(p.CompletedLessons)
}

func (s *ProgressRepositorySuite) TestUpdate_RejectsInvariantViolation() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Update(ctx, s.learner, func(p *models.Progress) error {
		p.LessonBestScore["es-lesson-1"] = 90
		return nil
	}))

	err := s.repo.Update(ctx, s.learner, func(p *models.Progress) error {
		p.LessonBestScore["es-lesson-1"] = 40
		return nil
	})
	s.Assert().ErrorIs(err, repository.ErrInvariantViolation)

	p, err := s.repo.Load(ctx, s.learner)
	s.Require().NoError(err)
	s.Assert().Equal(90, p.LessonBestScore["es-lesson-1"])
}

func (s *ProgressRepositorySuite) TestLearnersAreIsolated() {
	ctx := context.Background()
	other := "learner-" + uuid.NewString()

	s.Require().NoError(s.repo.Update(ctx, s.learner, func(p *models.Progress) error {
		p.Streak = 7
		return nil
	}))

	p, err := s.repo.Load(ctx, other)
	s.Require().NoError(err)
	s.Assert().Equal(0, p.Streak)
}

func (s *ProgressRepositorySuite) TestConcurrentUpdatesSerialize() {
	ctx := context.Background()
	const writers = 8

	var g errgroup.Group
	for i := 0; i < writers; i++ {
		g.Go(func() error {
			return s.repo.Update(ctx, s.learner, func(p *models.Progress) error {
				p.Streak++
				return nil
			})
		})
	}
	s.Require().NoError(g.Wait())

	p, err := s.repo.Load(ctx, s.learner)
	s.Require().NoError(err)
	s.Assert().Equal(writers, p.Streak)
}

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/lingualearn/internal/catalog"
	"github.com/vytor/lingualearn/internal/engine"
	"github.com/vytor/lingualearn/internal/errors"
	"github.com/vytor/lingualearn/internal/logger"
	"github.com/vytor/lingualearn/internal/models"
	"github.com/vytor/lingualearn/internal/repository"
)

// ProgressService runs the progression engine against a learner's stored
// progress. Every mutating call is a single repository update.
type ProgressService interface {
	StartLesson(ctx context.Context, learnerID, lessonID string) (*models.Session, error)
	ReviewLesson(ctx context.Context, learnerID, lessonID string) (*models.Session, error)
	SubmitAnswer(ctx context.Context, learnerID, lessonID string, questionIndex int, response models.Response) (*models.AnswerOutcome, error)
	IsLessonLocked(ctx context.Context, learnerID, trackCode string, index int) (bool, error)
	GetLessonStars(ctx context.Context, learnerID, lessonID string) (int, error)
	GetAchievementProgress(ctx context.Context, learnerID, achievementID string) (*models.AchievementProgress, error)
	CheckDailyStreakDecay(ctx context.Context, learnerID string, today models.Date) (*models.StreakCheck, error)
	GetProgress(ctx context.Context, learnerID string) (*models.Snapshot, error)
	TrackPath(ctx context.Context, learnerID, trackCode string) ([]models.LessonCard, error)
	Tracks(ctx context.Context, learnerID string) ([]models.TrackSummary, error)
	Achievements(ctx context.Context, learnerID string) ([]models.AchievementProgress, error)
	Dashboard(ctx context.Context, learnerID string) (*models.Dashboard, error)
	Today() models.Date
}

type progressService struct {
	repo      repository.ProgressRepository
	catalog   *catalog.Catalog
	maxHearts int
	now       func() time.Time
	loc       *time.Location
	newID     func() string
	spoken    engine.SpokenPolicy
}

// Option configures a ProgressService.
type Option func(*progressService)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *progressService) {
		s.now = now
	}
}

// WithLocation sets the zone in which study days are counted.
func WithLocation(loc *time.Location) Option {
	return func(s *progressService) {
		s.loc = loc
	}
}

// WithMaxHearts sets the hearts budget reported by Dashboard.
func WithMaxHearts(n int) Option {
	return func(s *progressService) {
		s.maxHearts = n
	}
}

// WithSessionIDs replaces the random session id generator.
func WithSessionIDs(gen func() string) Option {
	return func(s *progressService) {
		s.newID = gen
	}
}

// WithSpokenPolicy decides how spoken answers are judged.
func WithSpokenPolicy(p engine.SpokenPolicy) Option {
	return func(s *progressService) {
		s.spoken = p
	}
}

// NewProgressService creates a new ProgressService
func NewProgressService(repo repository.ProgressRepository, cat *catalog.Catalog, opts ...Option) ProgressService {
	s := &progressService{
		repo:      repo,
		catalog:   cat,
		maxHearts: models.DefaultMaxHearts,
		now:       time.Now,
		loc:       time.Local,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *progressService) Today() models.Date {
	return models.DateOf(s.now(), s.loc)
}

// fail logs err and converts anything that is not already an AppError into
// an internal error.
func fail(log *logger.Logger, op string, err error) error {
	if appErr, ok := errors.As(err); ok {
		log.Warn("%s rejected: %s", op, appErr.Message)
		return appErr
	}
	log.Error("failed to %s: %v", op, err)
	return errors.NewInternalError(err)
}

func (s *progressService) locked(lesson models.Lesson, snap models.Snapshot) bool {
	track, err := s.catalog.Track(lesson.Track)
	if err != nil {
		return true
	}
	return engine.IsLocked(track, lesson.Position, snap)
}

func (s *progressService) StartLesson(ctx context.Context, learnerID, lessonID string) (*models.Session, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_service")
	log.Debug("starting lesson: learner=%s, lesson=%s", learnerID, lessonID)

	lesson, err := s.catalog.Lesson(lessonID)
	if err != nil {
		return nil, fail(log, "start lesson", err)
	}

	var session models.Session
	resumed := false
	err = s.repo.Update(ctx, learnerID, func(p *models.Progress) error {
		if existing, ok := p.Sessions[lesson.ID]; ok && existing.State == models.SessionInProgress {
			if engine.Fits(existing, lesson) {
				session, resumed = existing, true
				return nil
			}
			log.Warn("discarding session that no longer fits lesson: lesson=%s, id=%s, question=%d, total=%d",
				lesson.ID, existing.ID, existing.QuestionIndex, existing.TotalQuestions)
		}
		if s.locked(lesson, p.Snapshot) {
			return errors.NewLessonLockedError(lesson.ID)
		}
		session, resumed = engine.NewSession(s.newID(), lesson, s.now()), false
		p.Sessions[lesson.ID] = session
		return nil
	})
	if err != nil {
		return nil, fail(log, "start lesson", err)
	}

	if resumed {
		log.Debug("resuming session: id=%s, question=%d", session.ID, session.QuestionIndex)
	} else {
		log.Info("lesson session started: learner=%s, lesson=%s, id=%s", learnerID, lesson.ID, session.ID)
	}
	return &session, nil
}

func (s *progressService) ReviewLesson(ctx context.Context, learnerID, lessonID string) (*models.Session, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_service")
	log.Debug("reviewing lesson: learner=%s, lesson=%s", learnerID, lessonID)

	lesson, err := s.catalog.Lesson(lessonID)
	if err != nil {
		return nil, fail(log, "review lesson", err)
	}

	var session models.Session
	err = s.repo.Update(ctx, learnerID, func(p *models.Progress) error {
		if s.locked(lesson, p.Snapshot) {
			return errors.NewLessonLockedError(lesson.ID)
		}
		if existing, ok := p.Sessions[lesson.ID]; ok {
			session = engine.Reset(existing, s.now())
			session.TotalQuestions = len(lesson.Questions)
		} else {
			session = engine.NewSession(s.newID(), lesson, s.now())
		}
		p.Sessions[lesson.ID] = session
		return nil
	})
	if err != nil {
		return nil, fail(log, "review lesson", err)
	}

	log.Info("lesson session reset for review: learner=%s, lesson=%s", learnerID, lesson.ID)
	return &session, nil
}

func (s *progressService) SubmitAnswer(ctx context.Context, learnerID, lessonID string, questionIndex int, response models.Response) (*models.AnswerOutcome, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_service")
	log.Debug("submitting answer: learner=%s, lesson=%s, question=%d", learnerID, lessonID, questionIndex)

	lesson, err := s.catalog.Lesson(lessonID)
	if err != nil {
		return nil, fail(log, "submit answer", err)
	}

	var outcome models.AnswerOutcome
	err = s.repo.Update(ctx, learnerID, func(p *models.Progress) error {
		now := s.now()
		existing, ok := p.Sessions[lesson.ID]
		stale := ok && existing.State == models.SessionInProgress && !engine.Fits(existing, lesson)
		if stale {
			log.Warn("discarding session that no longer fits lesson: lesson=%s, id=%s, question=%d, total=%d",
				lesson.ID, existing.ID, existing.QuestionIndex, existing.TotalQuestions)
		}
		if !ok || stale {
			if s.locked(lesson, p.Snapshot) {
				return errors.NewLessonLockedError(lesson.ID)
			}
			p.Sessions[lesson.ID] = engine.NewSession(s.newID(), lesson, now)
		}

		next, out, err := engine.SubmitAnswer(*p, s.catalog.Achievements(), engine.Submission{
			Lesson:        lesson,
			QuestionIndex: questionIndex,
			Response:      response,
			Today:         models.DateOf(now, s.loc),
			Now:           now,
			Spoken:        s.spoken,
		})
		if err != nil {
			return err
		}
		*p = next
		outcome = out
		return nil
	})
	if err != nil {
		return nil, fail(log, "submit answer", err)
	}

	switch outcome.Session.State {
	case models.SessionAbandoned:
		log.Info("lesson abandoned, out of hearts: learner=%s, lesson=%s", learnerID, lesson.ID)
	case models.SessionCompleted:
		c := outcome.Completion
		log.Info("lesson completed: learner=%s, lesson=%s, percentage=%d, stars=%d, best=%d", learnerID, lesson.ID, c.Percentage, c.Stars, c.BestScore)
		if c.StreakChanged {
			log.Info("streak updated: learner=%s, streak=%d", learnerID, c.Streak)
		}
		for _, id := range c.NewAchievements {
			log.Info("achievement unlocked: learner=%s, achievement=%s", learnerID, id)
		}
	}
	return &outcome, nil
}

func (s *progressService) IsLessonLocked(ctx context.Context, learnerID, trackCode string, index int) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_service")
	log.Debug("checking lock: learner=%s, track=%s, index=%d", learnerID, trackCode, index)

	track, err := s.catalog.Track(trackCode)
	if err != nil {
		return false, fail(log, "check lock", err)
	}
	if index < 0 || index >= len(track.Lessons) {
		return false, fail(log, "check lock", errors.NewUnknownLessonError(fmt.Sprintf("%s #%d", track.Code, index)))
	}

	p, err := s.repo.Load(ctx, learnerID)
	if err != nil {
		return false, fail(log, "load progress", err)
	}
	return engine.IsLocked(track, index, p.Snapshot), nil
}

func (s *progressService) GetLessonStars(ctx context.Context, learnerID, lessonID string) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_service")

	if _, err := s.catalog.Lesson(lessonID); err != nil {
		return 0, fail(log, "get lesson stars", err)
	}
	p, err := s.repo.Load(ctx, learnerID)
	if err != nil {
		return 0, fail(log, "load progress", err)
	}
	return engine.LessonStars(lessonID, p.Snapshot), nil
}

func (s *progressService) GetAchievementProgress(ctx context.Context, learnerID, achievementID string) (*models.AchievementProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_service")

	a, err := s.catalog.Achievement(achievementID)
	if err != nil {
		return nil, fail(log, "get achievement progress", err)
	}
	p, err := s.repo.Load(ctx, learnerID)
	if err != nil {
		return nil, fail(log, "load progress", err)
	}
	progress := engine.AchievementProgress(a, p.Snapshot)
	return &progress, nil
}

func (s *progressService) CheckDailyStreakDecay(ctx context.Context, learnerID string, today models.Date) (*models.StreakCheck, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_service")
	log.Debug("checking streak decay: learner=%s, today=%s", learnerID, today)

	var check models.StreakCheck
	err := s.repo.Update(ctx, learnerID, func(p *models.Progress) error {
		var reset bool
		p.Snapshot, reset = engine.AdvanceStreak(p.Snapshot, today, engine.StreakIdleCheck)
		check = models.StreakCheck{Streak: p.Streak, Reset: reset}
		return nil
	})
	if err != nil {
		return nil, fail(log, "check streak decay", err)
	}
	if check.Reset {
		log.Info("streak reset after missed day: learner=%s", learnerID)
	}
	return &check, nil
}

func (s *progressService) GetProgress(ctx context.Context, learnerID string) (*models.Snapshot, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_service")

	p, err := s.repo.Load(ctx, learnerID)
	if err != nil {
		return nil, fail(log, "load progress", err)
	}
	return &p.Snapshot, nil
}

func (s *progressService) TrackPath(ctx context.Context, learnerID, trackCode string) ([]models.LessonCard, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_service")

	track, err := s.catalog.Track(trackCode)
	if err != nil {
		return nil, fail(log, "get track path", err)
	}
	p, err := s.repo.Load(ctx, learnerID)
	if err != nil {
		return nil, fail(log, "load progress", err)
	}

	cards := make([]models.LessonCard, len(track.Lessons))
	for i, lesson := range track.Lessons {
		card := models.LessonCard{
			Lesson:    lesson,
			Completed: p.IsCompleted(lesson.ID),
			Locked:    engine.IsLocked(track, i, p.Snapshot),
			Stars:     engine.LessonStars(lesson.ID, p.Snapshot),
		}
		if best, ok := p.LessonBestScore[lesson.ID]; ok {
			card.BestScore = &best
		}
		cards[i] = card
	}
	return cards, nil
}

func (s *progressService) Tracks(ctx context.Context, learnerID string) ([]models.TrackSummary, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_service")

	p, err := s.repo.Load(ctx, learnerID)
	if err != nil {
		return nil, fail(log, "load progress", err)
	}

	tracks := s.catalog.Tracks()
	out := make([]models.TrackSummary, 0, len(tracks))
	for _, t := range tracks {
		summary := models.TrackSummary{Code: t.Code, Name: t.Name, Flag: t.Flag, Total: len(t.Lessons)}
		for _, l := range t.Lessons {
			if p.IsCompleted(l.ID) {
				summary.Completed++
			}
		}
		out = append(out, summary)
	}
	return out, nil
}

func (s *progressService) Achievements(ctx context.Context, learnerID string) ([]models.AchievementProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_service")

	p, err := s.repo.Load(ctx, learnerID)
	if err != nil {
		return nil, fail(log, "load progress", err)
	}

	achievements := s.catalog.Achievements()
	out := make([]models.AchievementProgress, len(achievements))
	for i, a := range achievements {
		out[i] = engine.AchievementProgress(a, p.Snapshot)
	}
	return out, nil
}

func (s *progressService) Dashboard(ctx context.Context, learnerID string) (*models.Dashboard, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_service")

	p, err := s.repo.Load(ctx, learnerID)
	if err != nil {
		return nil, fail(log, "load progress", err)
	}
	return &models.Dashboard{
		Streak:               p.Streak,
		Hearts:               p.Hearts,
		MaxHearts:            s.maxHearts,
		CompletedLessons:     len(p.CompletedLessons),
		TotalLessons:         s.catalog.LessonCount(),
		UnlockedAchievements: len(p.UnlockedAchievements),
		TotalAchievements:    len(s.catalog.Achievements()),
	}, nil
}

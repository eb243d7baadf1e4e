package engine

import (
	"time"

	"github.com/vytor/lingualearn/internal/models"
)

// NewSession begins a lesson at its first question.
func NewSession(id string, lesson models.Lesson, now time.Time) models.Session {
	return models.Session{
		ID:             id,
		LessonID:       lesson.ID,
		State:          models.SessionInProgress,
		TotalQuestions: len(lesson.Questions),
		StartedAt:      now,
	}
}

// Fits reports whether s still matches lesson's question count. A session
// stored before the catalog changed does not.
func Fits(s models.Session, lesson models.Lesson) bool {
	n := len(lesson.Questions)
	return s.LessonID == lesson.ID && s.TotalQuestions == n && s.QuestionIndex >= 0 && s.QuestionIndex < n
}

// Reset rewinds a session to its first question for a replay.
func Reset(s models.Session, now time.Time) models.Session {
	s.State = models.SessionInProgress
	s.QuestionIndex = 0
	s.Score = 0
	s.StartedAt = now
	s.FinishedAt = nil
	return s
}

// Advance applies one judged answer to an in-progress session and returns
// the new session and hearts. A wrong answer with one heart or fewer left
// abandons the session.
func Advance(s models.Session, hearts int, correct bool, now time.Time) (models.Session, int) {
	if correct {
		s.Score++
	} else {
		if hearts <= 1 {
			s.State = models.SessionAbandoned
			s.FinishedAt = &now
			return s, 0
		}
		hearts--
	}

	if s.QuestionIndex >= s.TotalQuestions-1 {
		s.State = models.SessionCompleted
		s.FinishedAt = &now
		return s, hearts
	}
	s.QuestionIndex++
	return s, hearts
}

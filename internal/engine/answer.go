package engine

import (
	"time"

	"github.com/vytor/lingualearn/internal/errors"
	"github.com/vytor/lingualearn/internal/models"
)

// Submission is one answer to the current question of a lesson.
type Submission struct {
	Lesson        models.Lesson
	QuestionIndex int
	Response      models.Response
	Today         models.Date
	Now           time.Time
	Spoken        SpokenPolicy
}

// SubmitAnswer judges the answer and returns the next progress value. The
// caller starts the lesson's session first; without one SubmitAnswer fails
// with a NoSession error. On error p is returned unchanged.
func SubmitAnswer(p models.Progress, achievements []models.Achievement, sub Submission) (models.Progress, models.AnswerOutcome, error) {
	lesson := sub.Lesson
	if sub.QuestionIndex < 0 || sub.QuestionIndex >= len(lesson.Questions) {
		return p, models.AnswerOutcome{}, errors.NewUnknownQuestionError(lesson.ID, sub.QuestionIndex)
	}

	session, ok := p.Sessions[lesson.ID]
	if !ok {
		return p, models.AnswerOutcome{}, errors.NewNoSessionError(lesson.ID)
	}
	if session.Terminal() {
		return p, models.AnswerOutcome{}, errors.NewSessionTerminalError(lesson.ID, string(session.State))
	}
	if sub.QuestionIndex != session.QuestionIndex {
		return p, models.AnswerOutcome{}, errors.NewStaleQuestionError(lesson.ID, sub.QuestionIndex, session.QuestionIndex)
	}

	question := lesson.Questions[sub.QuestionIndex]
	correct, err := JudgeWith(question, sub.Response, sub.Spoken)
	if err != nil {
		return p, models.AnswerOutcome{}, err
	}

	next := p.Clone()
	session, next.Hearts = Advance(session, next.Hearts, correct, sub.Now)
	next.Sessions[lesson.ID] = session

	outcome := models.AnswerOutcome{
		Correct:         correct,
		Explanation:     question.Explanation,
		Session:         session,
		HeartsRemaining: next.Hearts,
	}

	if session.State == models.SessionCompleted {
		var completion models.Completion
		next.Snapshot, completion = Complete(next.Snapshot, achievements, session, sub.Today)
		outcome.Completion = &completion
	}

	return next, outcome, nil
}

package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/lingualearn/internal/engine"
	"github.com/vytor/lingualearn/internal/errors"
	"github.com/vytor/lingualearn/internal/models"
)

func started(lesson models.Lesson, hearts int) models.Progress {
	p := models.NewProgress(models.DefaultMaxHearts)
	p.Hearts = hearts
	p.Sessions[lesson.ID] = engine.NewSession("s-1", lesson, now)
	return p
}

func play(t *testing.T, p models.Progress, lesson models.Lesson, answers []models.Response) (models.Progress, models.AnswerOutcome) {
	t.Helper()
	var out models.AnswerOutcome
	for _, r := range answers {
		var err error
		p, out, err = engine.SubmitAnswer(p, standardAchievements(), engine.Submission{
			Lesson:        lesson,
			QuestionIndex: p.Sessions[lesson.ID].QuestionIndex,
			Response:      r,
			Today:         today,
			Now:           now,
		})
		require.NoError(t, err)
	}
	return p, out
}

func TestSubmitAnswer_FourOfFive(t *testing.T) {
	lesson := choiceLesson("es-lesson-1", 5)
	p := started(lesson, 5)

	p, out := play(t, p, lesson, []models.Response{right(), right(), wrong(), right(), right()})

	require.NotNil(t, out.Completion)
	assert.Equal(t, 80, out.Completion.Percentage)
	assert.Equal(t, 2, out.Completion.Stars)
	assert.Equal(t, 4, out.HeartsRemaining)
	assert.Equal(t, models.SessionCompleted, out.Session.State)
	assert.Equal(t, 4, out.Session.Score)
	assert.Equal(t, 80, p.LessonBestScore["es-lesson-1"])
	assert.True(t, p.IsCompleted("es-lesson-1"))
	assert.Equal(t, 4, p.Hearts)
}

func TestSubmitAnswer_LastHeartAbandons(t *testing.T) {
	lesson := choiceLesson("es-lesson-1", 5)
	p := started(lesson, 1)
	before := p.Snapshot.Clone()

	p, out := play(t, p, lesson, []models.Response{wrong()})

	assert.False(t, out.Correct)
	assert.Nil(t, out.Completion)
	assert.Equal(t, 0, out.HeartsRemaining)
	assert.Equal(t, models.SessionAbandoned, out.Session.State)
	assert.Equal(t, 0, p.Hearts)
	assert.Equal(t, before.CompletedLessons, p.CompletedLessons)
	assert.Equal(t, before.LessonBestScore, p.LessonBestScore)
	assert.Equal(t, before.Streak, p.Streak)
	assert.Equal(t, before.LastStudyDate, p.LastStudyDate)
}

func TestSubmitAnswer_ZeroHeartsWrongAnswerStaysAtZero(t *testing.T) {
	lesson := choiceLesson("es-lesson-1", 3)
	p := started(lesson, 0)

	p, out := play(t, p, lesson, []models.Response{wrong()})

	assert.Equal(t, 0, p.Hearts)
	assert.Equal(t, models.SessionAbandoned, out.Session.State)
}

func TestSubmitAnswer_FirstLessonAchievement(t *testing.T) {
	lesson := choiceLesson("fr-lesson-1", 2)
	p := started(lesson, 5)

	p, out := play(t, p, lesson, []models.Response{right(), wrong()})

	require.NotNil(t, out.Completion)
	assert.Equal(t, 50, out.Completion.Percentage)
	assert.Equal(t, 0, out.Completion.Stars)
	assert.True(t, out.Completion.FirstCompletion)
	assert.Equal(t, []string{"first-lesson"}, out.Completion.NewAchievements)
	assert.Equal(t, 1, out.Completion.Streak)
	assert.True(t, out.Completion.StreakChanged)
	assert.Equal(t, today, p.LastStudyDate)
}

func TestSubmitAnswer_FinalAnswerCountsTowardScore(t *testing.T) {
	lesson := choiceLesson("de-lesson-1", 3)
	p := started(lesson, 5)

	_, out := play(t, p, lesson, []models.Response{right(), right(), right()})

	require.NotNil(t, out.Completion)
	assert.Equal(t, 100, out.Completion.Percentage)
	assert.Equal(t, 3, out.Completion.Stars)
	assert.ElementsMatch(t, []string{"first-lesson", "perfect-lesson"}, out.Completion.NewAchievements)
}

func TestSubmitAnswer_Errors(t *testing.T) {
	lesson := choiceLesson("es-lesson-1", 3)

	completed := started(lesson, 5)
	completed, _ = play(t, completed, lesson, []models.Response{right(), right(), right()})

	abandoned := started(lesson, 1)
	abandoned, _ = play(t, abandoned, lesson, []models.Response{wrong()})

	tests := []struct {
		name     string
		progress models.Progress
		index    int
		response models.Response
		kind     error
	}{
		{"index past end", started(lesson, 5), 3, right(), errors.ErrUnknownQuestion},
		{"negative index", started(lesson, 5), -1, right(), errors.ErrUnknownQuestion},
		{"after completion", completed, 2, right(), errors.ErrSessionTerminal},
		{"after abandonment", abandoned, 0, right(), errors.ErrSessionTerminal},
		{"stale index", started(lesson, 5), 1, right(), errors.ErrStaleQuestion},
		{"wrong response shape", started(lesson, 5), 0, models.TextResponse{Text: "right"}, errors.ErrInvalidResponse},
		{"no session", models.NewProgress(5), 0, right(), errors.ErrNoSession},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.progress.Clone()
			got, _, err := engine.SubmitAnswer(tt.progress, nil, engine.Submission{
				Lesson:        lesson,
				QuestionIndex: tt.index,
				Response:      tt.response,
				Today:         today,
				Now:           now,
			})
			assert.ErrorIs(t, err, tt.kind)
			assert.Equal(t, before, got)
		})
	}
}

func TestSubmitAnswer_DoubleSubmissionRejected(t *testing.T) {
	lesson := choiceLesson("es-lesson-1", 3)
	p := started(lesson, 5)

	p, _ = play(t, p, lesson, []models.Response{right()})
	_, _, err := engine.SubmitAnswer(p, nil, engine.Submission{Lesson: lesson, QuestionIndex: 0, Response: right(), Today: today, Now: now})

	assert.ErrorIs(t, err, errors.ErrStaleQuestion)
	assert.Equal(t, 1, p.Sessions[lesson.ID].Score)
}

func TestSubmitAnswer_DoesNotMutateInput(t *testing.T) {
	lesson := choiceLesson("es-lesson-1", 1)
	p := started(lesson, 5)
	before := p.Clone()

	_, _, err := engine.SubmitAnswer(p, standardAchievements(), engine.Submission{Lesson: lesson, QuestionIndex: 0, Response: right(), Today: today, Now: now})

	require.NoError(t, err)
	assert.Equal(t, before, p)
}

func TestSubmitAnswer_SpokenPolicyFromSubmission(t *testing.T) {
	lesson := models.Lesson{ID: "es-lesson-1", Questions: []models.Question{{ID: "q1", Kind: models.KindSpoken}}}
	p := started(lesson, 5)

	_, out, err := engine.SubmitAnswer(p, nil, engine.Submission{
		Lesson:   lesson,
		Response: models.SpokenResponse{},
		Today:    today,
		Now:      now,
		Spoken:   engine.NeverAccept,
	})
	require.NoError(t, err)
	assert.False(t, out.Correct)
	assert.Equal(t, 4, out.HeartsRemaining)
	require.NotNil(t, out.Completion)
	assert.Equal(t, 0, out.Completion.Percentage)
}

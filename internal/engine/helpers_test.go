package engine_test

import (
	"fmt"
	"time"

	"github.com/vytor/lingualearn/internal/models"
)

var (
	now   = time.Date(2026, time.March, 10, 18, 30, 0, 0, time.UTC)
	today = models.DateOf(now, time.UTC)
)

// choiceLesson builds a lesson of n choice questions whose answer is option 0.
func choiceLesson(id string, n int) models.Lesson {
	lesson := models.Lesson{ID: id, Title: id}
	for i := 1; i <= n; i++ {
		lesson.Questions = append(lesson.Questions, models.Question{
			ID:            fmt.Sprintf("q%d", i),
			Kind:          models.KindChoice,
			Options:       []string{"right", "wrong"},
			CorrectOption: 0,
			Explanation:   fmt.Sprintf("explanation %d", i),
		})
	}
	return lesson
}

func right() models.Response { return models.OptionResponse{Index: 0} }
func wrong() models.Response { return models.OptionResponse{Index: 1} }

func standardAchievements() []models.Achievement {
	return []models.Achievement{
		{ID: "first-lesson", Requirement: models.Requirement{Kind: models.RequireLessonsCompleted, Count: 1}},
		{ID: "streak-3", Requirement: models.Requirement{Kind: models.RequireStreak, Count: 3}},
		{ID: "perfect-lesson", Requirement: models.Requirement{Kind: models.RequirePerfectScore, Count: 1}},
		{ID: "five-lessons", Requirement: models.Requirement{Kind: models.RequireLessonsCompleted, Count: 5}},
	}
}

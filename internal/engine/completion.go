package engine

import (
	"slices"

	"github.com/vytor/lingualearn/internal/models"
)

// Percentage rounds score/total to a whole percent, halves rounding up.
func Percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return (score*200 + total) / (2 * total)
}

// Stars converts a percentage into a 0 to 3 star rating.
func Stars(percentage int) int {
	switch {
	case percentage >= 100:
		return 3
	case percentage >= 80:
		return 2
	case percentage >= 60:
		return 1
	default:
		return 0
	}
}

// Complete records a finished session against the snapshot.
func Complete(s models.Snapshot, achievements []models.Achievement, session models.Session, today models.Date) (models.Snapshot, models.Completion) {
	s = s.Clone()
	pct := Percentage(session.Score, session.TotalQuestions)

	first := !s.IsCompleted(session.LessonID)
	if first {
		s.CompletedLessons = append(s.CompletedLessons, session.LessonID)
	}

	best := max(s.LessonBestScore[session.LessonID], pct)
	s.LessonBestScore[session.LessonID] = best

	s, streakChanged := AdvanceStreak(s, today, StreakCompletion)

	s, unlocked := EvaluateAchievements(s, achievements)
	if unlocked == nil {
		unlocked = []string{}
	}

	return s, models.Completion{
		Percentage:      pct,
		Stars:           Stars(pct),
		BestScore:       best,
		FirstCompletion: first,
		Streak:          s.Streak,
		StreakChanged:   streakChanged,
		NewAchievements: slices.Clip(unlocked),
	}
}

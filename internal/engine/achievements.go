package engine

import "github.com/vytor/lingualearn/internal/models"

// RequirementProgress is the learner's current count toward req.
func RequirementProgress(req models.Requirement, s models.Snapshot) int {
	switch req.Kind {
	case models.RequireLessonsCompleted:
		return len(s.CompletedLessons)
	case models.RequireStreak:
		return s.Streak
	case models.RequirePerfectScore:
		return s.PerfectCount()
	}
	return 0
}

// EvaluateAchievements unlocks every locked achievement whose requirement
// s now meets and returns the ids unlocked by this call, in catalog order.
func EvaluateAchievements(s models.Snapshot, achievements []models.Achievement) (models.Snapshot, []string) {
	var unlocked []string
	for _, a := range achievements {
		if s.IsUnlocked(a.ID) {
			continue
		}
		if RequirementProgress(a.Requirement, s) >= a.Requirement.Count {
			unlocked = append(unlocked, a.ID)
		}
	}
	if len(unlocked) > 0 {
		s.UnlockedAchievements = append(append([]string{}, s.UnlockedAchievements...), unlocked...)
	}
	return s, unlocked
}

// AchievementProgress reports how far s is toward unlocking a.
func AchievementProgress(a models.Achievement, s models.Snapshot) models.AchievementProgress {
	return models.AchievementProgress{
		Achievement: a,
		Current:     RequirementProgress(a.Requirement, s),
		Target:      a.Requirement.Count,
		Unlocked:    s.IsUnlocked(a.ID),
	}
}

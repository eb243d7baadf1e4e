package engine

import "github.com/vytor/lingualearn/internal/models"

// StreakEvent is what triggers a streak transition.
type StreakEvent int

const (
	// StreakCompletion is a lesson finished on the given day.
	StreakCompletion StreakEvent = iota
	// StreakIdleCheck runs once when the application starts.
	StreakIdleCheck
)

// AdvanceStreak is the single streak transition. It returns the updated
// snapshot and whether the streak value changed.
func AdvanceStreak(s models.Snapshot, today models.Date, event StreakEvent) (models.Snapshot, bool) {
	before := s.Streak
	yesterday := today.AddDays(-1)

	switch event {
	case StreakCompletion:
		switch s.LastStudyDate {
		case today:
		case yesterday:
			s.Streak++
		default:
			s.Streak = 1
		}
		s.LastStudyDate = today
	case StreakIdleCheck:
		if !s.LastStudyDate.IsZero() && s.LastStudyDate != today && s.LastStudyDate != yesterday {
			s.Streak = 0
		}
	}
	return s, s.Streak != before
}

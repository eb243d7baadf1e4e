package models

import (
	"slices"
	"time"
)

// DefaultMaxHearts is the hearts budget of a fresh learner.
const DefaultMaxHearts = 5

// Snapshot is the persisted gamification state of one learner.
type Snapshot struct {
	Streak               int            `json:"streak"`
	Hearts               int            `json:"hearts"`
	CompletedLessons     []string       `json:"completed_lessons"`
	LessonBestScore      map[string]int `json:"lesson_scores"`
	LastStudyDate        Date           `json:"last_study_date"`
	UnlockedAchievements []string       `json:"unlocked_achievements"`
}

func NewSnapshot(maxHearts int) Snapshot {
	return Snapshot{
		Hearts:               maxHearts,
		CompletedLessons:     []string{},
		LessonBestScore:      map[string]int{},
		UnlockedAchievements: []string{},
	}
}

func (s Snapshot) Clone() Snapshot {
	out := s
	out.CompletedLessons = slices.Clone(s.CompletedLessons)
	out.UnlockedAchievements = slices.Clone(s.UnlockedAchievements)
	out.LessonBestScore = make(map[string]int, len(s.LessonBestScore))
	for k, v := range s.LessonBestScore {
		out.LessonBestScore[k] = v
	}
	if out.CompletedLessons == nil {
		out.CompletedLessons = []string{}
	}
	if out.UnlockedAchievements == nil {
		out.UnlockedAchievements = []string{}
	}
	return out
}

func (s Snapshot) IsCompleted(lessonID string) bool {
	return slices.Contains(s.CompletedLessons, lessonID)
}

func (s Snapshot) IsUnlocked(achievementID string) bool {
	return slices.Contains(s.UnlockedAchievements, achievementID)
}

// PerfectCount is the number of lessons whose best score is exactly 100.
func (s Snapshot) PerfectCount() int {
	n := 0
	for _, score := range s.LessonBestScore {
		if score == 100 {
			n++
		}
	}
	return n
}

type SessionState string

const (
	SessionInProgress SessionState = "in_progress"
	SessionCompleted  SessionState = "completed"
	SessionAbandoned  SessionState = "abandoned"
)

// Session is one attempt at a lesson.
type Session struct {
	ID             string       `json:"id"`
	LessonID       string       `json:"lesson_id"`
	State          SessionState `json:"state"`
	QuestionIndex  int          `json:"question_index"`
	Score          int          `json:"score"`
	TotalQuestions int          `json:"total_questions"`
	StartedAt      time.Time    `json:"started_at"`
	FinishedAt     *time.Time   `json:"finished_at,omitempty"`
}

func (s Session) Terminal() bool {
	return s.State == SessionCompleted || s.State == SessionAbandoned
}

// Progress is everything stored for a learner: the snapshot plus open
// sessions keyed by lesson id.
type Progress struct {
	Snapshot
	Sessions map[string]Session `json:"sessions"`
}

func NewProgress(maxHearts int) Progress {
	return Progress{
		Snapshot: NewSnapshot(maxHearts),
		Sessions: map[string]Session{},
	}
}

func (p Progress) Clone() Progress {
	out := Progress{Snapshot: p.Snapshot.Clone(), Sessions: make(map[string]Session, len(p.Sessions))}
	for k, v := range p.Sessions {
		if v.FinishedAt != nil {
			t := *v.FinishedAt
			v.FinishedAt = &t
		}
		out.Sessions[k] = v
	}
	return out
}

package models

// Response is a learner's answer. The set of variants is closed.
type Response interface {
	responseKind() string
}

// OptionResponse selects an option by zero-based index.
type OptionResponse struct {
	Index int
}

// TextResponse carries free text for translation questions.
type TextResponse struct {
	Text string
}

// SpokenResponse reports that the learner spoke an answer.
type SpokenResponse struct{}

func (OptionResponse) responseKind() string { return "option" }
func (TextResponse) responseKind() string   { return "text" }
func (SpokenResponse) responseKind() string { return "spoken" }

// Completion is what a finished lesson reports.
type Completion struct {
	Percentage      int      `json:"percentage"`
	Stars           int      `json:"stars"`
	BestScore       int      `json:"best_score"`
	FirstCompletion bool     `json:"first_completion"`
	Streak          int      `json:"streak"`
	StreakChanged   bool     `json:"streak_changed"`
	NewAchievements []string `json:"new_achievements"`
}

type AnswerOutcome struct {
	Correct         bool        `json:"correct"`
	Explanation     string      `json:"explanation,omitempty"`
	Session         Session     `json:"session"`
	HeartsRemaining int         `json:"hearts_remaining"`
	Completion      *Completion `json:"completion,omitempty"`
}

type AchievementProgress struct {
	Achievement Achievement `json:"achievement"`
	Current     int         `json:"current"`
	Target      int         `json:"target"`
	Unlocked    bool        `json:"unlocked"`
}

type StreakCheck struct {
	Streak int  `json:"streak"`
	Reset  bool `json:"reset"`
}

// LessonCard is one row of a track path.
type LessonCard struct {
	Lesson    Lesson `json:"lesson"`
	Completed bool   `json:"completed"`
	Locked    bool   `json:"locked"`
	Stars     int    `json:"stars"`
	BestScore *int   `json:"best_score,omitempty"`
}

type TrackSummary struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	Flag      string `json:"flag"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
}

type Dashboard struct {
	Streak               int `json:"streak"`
	Hearts               int `json:"hearts"`
	MaxHearts            int `json:"max_hearts"`
	CompletedLessons     int `json:"completed_lessons"`
	TotalLessons         int `json:"total_lessons"`
	UnlockedAchievements int `json:"unlocked_achievements"`
	TotalAchievements    int `json:"total_achievements"`
}

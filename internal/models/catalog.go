package models

type Difficulty string

const (
	Beginner     Difficulty = "Beginner"
	Intermediate Difficulty = "Intermediate"
	Advanced     Difficulty = "Advanced"
)

// ResponseKind is how a question expects to be answered.
type ResponseKind string

const (
	KindChoice      ResponseKind = "choice"
	KindTranslation ResponseKind = "translation"
	KindAudioChoice ResponseKind = "audio_choice"
	KindSpoken      ResponseKind = "spoken"
)

func (k ResponseKind) Valid() bool {
	switch k {
	case KindChoice, KindTranslation, KindAudioChoice, KindSpoken:
		return true
	}
	return false
}

type Question struct {
	ID            string       `json:"id" yaml:"id"`
	Kind          ResponseKind `json:"kind" yaml:"kind"`
	Prompt        string       `json:"prompt" yaml:"prompt"`
	Options       []string     `json:"options,omitempty" yaml:"options,omitempty"`
	CorrectOption int          `json:"correct_option" yaml:"correct_option"`
	ExpectedText  string       `json:"expected_text,omitempty" yaml:"expected_text,omitempty"`
	AudioURL      string       `json:"audio_url,omitempty" yaml:"audio_url,omitempty"`
	Explanation   string       `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}

type Lesson struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Duration    string     `json:"duration" yaml:"duration"`
	Difficulty  Difficulty `json:"difficulty" yaml:"difficulty"`
	Questions   []Question `json:"questions" yaml:"questions"`

	// Set by the catalog when the lesson is indexed.
	Track    string `json:"track" yaml:"-"`
	Position int    `json:"position" yaml:"-"`
}

// Track is one language course: an ordered lesson path.
type Track struct {
	Code    string   `json:"code" yaml:"code"`
	Name    string   `json:"name" yaml:"name"`
	Flag    string   `json:"flag" yaml:"flag"`
	Lessons []Lesson `json:"lessons" yaml:"lessons"`
}

type RequirementKind string

const (
	RequireLessonsCompleted RequirementKind = "lessons_completed"
	RequireStreak           RequirementKind = "streak"
	RequirePerfectScore     RequirementKind = "perfect_score"
)

func (k RequirementKind) Valid() bool {
	switch k {
	case RequireLessonsCompleted, RequireStreak, RequirePerfectScore:
		return true
	}
	return false
}

type Requirement struct {
	Kind  RequirementKind `json:"type" yaml:"type"`
	Count int             `json:"count" yaml:"count"`
}

type Achievement struct {
	ID          string      `json:"id" yaml:"id"`
	Title       string      `json:"title" yaml:"title"`
	Description string      `json:"description" yaml:"description"`
	Icon        string      `json:"icon" yaml:"icon"`
	Requirement Requirement `json:"requirement" yaml:"requirement"`
}

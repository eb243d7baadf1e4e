package catalog

import (
	"fmt"
	"strings"
	"sync"

	"github.com/vytor/lingualearn/internal/models"
)

const (
	lessonsPerTrack    = 50
	questionsPerLesson = 15
)

var languages = []struct {
	Name, Code, Flag string
}{
	{"Spanish", "es", "🇪🇸"},
	{"French", "fr", "🇫🇷"},
	{"German", "de", "🇩🇪"},
	{"Italian", "it", "🇮🇹"},
	{"Portuguese", "pt", "🇵🇹"},
	{"Japanese", "ja", "🇯🇵"},
	{"Korean", "ko", "🇰🇷"},
	{"Chinese", "zh", "🇨🇳"},
	{"Russian", "ru", "🇷🇺"},
	{"Arabic", "ar", "🇸🇦"},
	{"Hindi", "hi", "🇮🇳"},
	{"Dutch", "nl", "🇳🇱"},
	{"Swedish", "sv", "🇸🇪"},
	{"Norwegian", "no", "🇳🇴"},
	{"Polish", "pl", "🇵🇱"},
	{"Turkish", "tr", "🇹🇷"},
	{"Greek", "el", "🇬🇷"},
	{"Hebrew", "he", "🇮🇱"},
	{"Thai", "th", "🇹🇭"},
	{"Vietnamese", "vi", "🇻🇳"},
}

var topics = []string{
	"Basic Greetings", "Numbers 1-10", "Colors", "Family Members", "Days of Week",
	"Months", "Weather", "Food & Drinks", "Body Parts", "Clothing",
	"Transportation", "Animals", "Professions", "House & Home", "School",
	"Past Tense Basics", "Present Continuous", "Future Tense", "Questions", "Negations",
	"Prepositions", "Adjectives", "Adverbs", "Comparatives", "Superlatives",
	"Pronouns", "Possessives", "Modal Verbs", "Conditionals", "Subjunctive",
	"Complex Grammar", "Idioms", "Phrasal Verbs", "Business Language", "Academic Writing",
	"Literature", "Philosophy", "Science Terms", "Medical Vocabulary", "Legal Terms",
	"Advanced Conversation", "Cultural References", "Poetry", "Technical Writing", "Debate Skills",
	"Negotiation", "Presentation Skills", "Critical Analysis", "Abstract Concepts", "Mastery Test",
}

// BuiltinAchievements are the default achievement definitions.
var BuiltinAchievements = []models.Achievement{
	{ID: "first-lesson", Title: "First Steps", Description: "Complete your first lesson", Icon: "trophy",
		Requirement: models.Requirement{Kind: models.RequireLessonsCompleted, Count: 1}},
	{ID: "streak-3", Title: "Getting Started", Description: "Maintain a 3-day streak", Icon: "flame",
		Requirement: models.Requirement{Kind: models.RequireStreak, Count: 3}},
	{ID: "streak-7", Title: "Week Warrior", Description: "Maintain a 7-day streak", Icon: "flame",
		Requirement: models.Requirement{Kind: models.RequireStreak, Count: 7}},
	{ID: "streak-30", Title: "Monthly Master", Description: "Maintain a 30-day streak", Icon: "flame",
		Requirement: models.Requirement{Kind: models.RequireStreak, Count: 30}},
	{ID: "perfect-lesson", Title: "Perfect Score", Description: "Get 100% on any lesson", Icon: "star",
		Requirement: models.Requirement{Kind: models.RequirePerfectScore, Count: 1}},
	{ID: "five-lessons", Title: "Dedicated Learner", Description: "Complete 5 lessons", Icon: "award",
		Requirement: models.Requirement{Kind: models.RequireLessonsCompleted, Count: 5}},
	{ID: "fifty-lessons", Title: "Language Explorer", Description: "Complete 50 lessons", Icon: "award",
		Requirement: models.Requirement{Kind: models.RequireLessonsCompleted, Count: 50}},
	{ID: "hundred-lessons", Title: "Polyglot", Description: "Complete 100 lessons", Icon: "trophy",
		Requirement: models.Requirement{Kind: models.RequireLessonsCompleted, Count: 100}},
}

var (
	builtinOnce sync.Once
	builtin     *Catalog
	builtinErr  error
)

// Builtin returns the default catalog of 20 language tracks with 50 lessons
// each. It is generated once and shared.
func Builtin() (*Catalog, error) {
	builtinOnce.Do(func() {
		tracks := make([]models.Track, 0, len(languages))
		for _, lang := range languages {
			track := models.Track{Code: lang.Code, Name: lang.Name, Flag: lang.Flag}
			for n := 1; n <= lessonsPerTrack; n++ {
				track.Lessons = append(track.Lessons, generateLesson(lang.Name, lang.Code, n))
			}
			tracks = append(tracks, track)
		}
		builtin, builtinErr = New(tracks, BuiltinAchievements)
	})
	return builtin, builtinErr
}

func generateLesson(language, code string, n int) models.Lesson {
	topic := topicFor(n)
	difficulty := difficultyFor(n)
	lesson := models.Lesson{
		ID:          fmt.Sprintf("%s-lesson-%d", code, n),
		Title:       fmt.Sprintf("%s %d: %s", language, n, topic),
		Description: fmt.Sprintf("Learn %s in %s", strings.ToLower(topic), language),
		Duration:    durationFor(n),
		Difficulty:  difficulty,
	}
	for i := 1; i <= questionsPerLesson; i++ {
		lesson.Questions = append(lesson.Questions, models.Question{
			ID:            fmt.Sprintf("q%d", i),
			Kind:          models.KindChoice,
			Prompt:        fmt.Sprintf("%s %s - Question %d (%s)", language, topic, i, difficulty),
			Options:       []string{"Option A", "Option B", "Option C", "Option D"},
			CorrectOption: (n + i) % 4,
			Explanation:   fmt.Sprintf("This is the explanation for %s %s question %d.", language, topic, i),
		})
	}
	return lesson
}

func topicFor(n int) string {
	if n >= 1 && n <= len(topics) {
		return topics[n-1]
	}
	return fmt.Sprintf("Advanced Topic %d", n)
}

func difficultyFor(n int) models.Difficulty {
	switch {
	case n <= 16:
		return models.Beginner
	case n <= 33:
		return models.Intermediate
	default:
		return models.Advanced
	}
}

func durationFor(n int) string {
	switch {
	case n <= 16:
		return fmt.Sprintf("%d min", 3+n/3)
	case n <= 33:
		return fmt.Sprintf("%d min", 8+(n-16)/3)
	default:
		return fmt.Sprintf("%d min", 15+(n-33)/3)
	}
}

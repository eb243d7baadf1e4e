package catalog

import (
	"fmt"

	"github.com/vytor/lingualearn/internal/errors"
	"github.com/vytor/lingualearn/internal/models"
)

// Catalog is the read-only content the progression engine runs against.
type Catalog struct {
	tracks       []models.Track
	trackIndex   map[string]int
	lessons      map[string]models.Lesson
	achievements []models.Achievement
	achIndex     map[string]int
	lessonCount  int
}

// New indexes tracks and achievements. Every lesson gets its track code and
// position assigned; ids must be unique and every question and requirement
// must be of a known kind.
func New(tracks []models.Track, achievements []models.Achievement) (*Catalog, error) {
	c := &Catalog{
		trackIndex: make(map[string]int, len(tracks)),
		lessons:    make(map[string]models.Lesson),
		achIndex:   make(map[string]int, len(achievements)),
	}

	for ti, track := range tracks {
		if track.Code == "" {
			return nil, errors.NewValidationError("track", fmt.Sprintf("track %d has no code", ti))
		}
		if _, dup := c.trackIndex[track.Code]; dup {
			return nil, errors.NewValidationError("track", "duplicate track code "+track.Code)
		}
		lessons := make([]models.Lesson, len(track.Lessons))
		for li, lesson := range track.Lessons {
			if err := validateLesson(lesson); err != nil {
				return nil, err
			}
			if _, dup := c.lessons[lesson.ID]; dup {
				return nil, errors.NewValidationError("lesson", "duplicate lesson id "+lesson.ID)
			}
			lesson.Track = track.Code
			lesson.Position = li
			lessons[li] = lesson
			c.lessons[lesson.ID] = lesson
		}
		track.Lessons = lessons
		c.trackIndex[track.Code] = len(c.tracks)
		c.tracks = append(c.tracks, track)
		c.lessonCount += len(lessons)
	}

	for _, a := range achievements {
		if a.ID == "" {
			return nil, errors.NewValidationError("achievement", "missing id")
		}
		if _, dup := c.achIndex[a.ID]; dup {
			return nil, errors.NewValidationError("achievement", "duplicate achievement id "+a.ID)
		}
		if !a.Requirement.Kind.Valid() {
			return nil, errors.NewValidationError("achievement", fmt.Sprintf("%s has unknown requirement type %q", a.ID, a.Requirement.Kind))
		}
		if a.Requirement.Count < 1 {
			return nil, errors.NewValidationError("achievement", a.ID+" requirement count must be positive")
		}
		c.achIndex[a.ID] = len(c.achievements)
		c.achievements = append(c.achievements, a)
	}

	return c, nil
}

func validateLesson(l models.Lesson) error {
	if l.ID == "" {
		return errors.NewValidationError("lesson", "missing id")
	}
	if len(l.Questions) == 0 {
		return errors.NewValidationError("lesson", l.ID+" has no questions")
	}
	seen := make(map[string]bool, len(l.Questions))
	for i, q := range l.Questions {
		if q.ID == "" || seen[q.ID] {
			return errors.NewValidationError("question", fmt.Sprintf("%s question %d has a missing or duplicate id", l.ID, i))
		}
		seen[q.ID] = true
		switch q.Kind {
		case models.KindChoice, models.KindAudioChoice:
			if q.CorrectOption < 0 || q.CorrectOption >= len(q.Options) {
				return errors.NewValidationError("question", fmt.Sprintf("%s/%s correct option out of range", l.ID, q.ID))
			}
		case models.KindTranslation:
			if q.ExpectedText == "" {
				return errors.NewValidationError("question", fmt.Sprintf("%s/%s has no expected text", l.ID, q.ID))
			}
		case models.KindSpoken:
		default:
			return errors.NewValidationError("question", fmt.Sprintf("%s/%s has unknown kind %q", l.ID, q.ID, q.Kind))
		}
	}
	return nil
}

// Lesson looks a lesson up by id.
func (c *Catalog) Lesson(id string) (models.Lesson, error) {
	l, ok := c.lessons[id]
	if !ok {
		return models.Lesson{}, errors.NewUnknownLessonError(id)
	}
	return l, nil
}

func (c *Catalog) Track(code string) (models.Track, error) {
	i, ok := c.trackIndex[code]
	if !ok {
		return models.Track{}, errors.NewUnknownTrackError(code)
	}
	return c.tracks[i], nil
}

func (c *Catalog) Tracks() []models.Track {
	return c.tracks
}

func (c *Catalog) Achievements() []models.Achievement {
	return c.achievements
}

func (c *Catalog) Achievement(id string) (models.Achievement, error) {
	i, ok := c.achIndex[id]
	if !ok {
		return models.Achievement{}, errors.NewUnknownAchievementError(id)
	}
	return c.achievements[i], nil
}

// LessonCount is the number of lessons across all tracks.
func (c *Catalog) LessonCount() int {
	return c.lessonCount
}

package engine

import "github.com/vytor/lingualearn/internal/models"

// IsLocked reports whether the lesson at index in track is unavailable.
// Indexes outside the track are locked.
func IsLocked(track models.Track, index int, s models.Snapshot) bool {
	if index < 0 || index >= len(track.Lessons) {
		return true
	}
	if index == 0 {
		return false
	}
	return !s.IsCompleted(track.Lessons[index-1].ID)
}

// LessonStars is the star rating of the learner's best score, 0 if unplayed.
func LessonStars(lessonID string, s models.Snapshot) int {
	best, ok := s.LessonBestScore[lessonID]
	if !ok {
		return 0
	}
	return Stars(best)
}

package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/vytor/lingualearn/internal/models"
)

// Slot names. Each holds one JSON-encoded value per learner.
const (
	SlotStreak               = "streak"
	SlotHearts               = "hearts"
	SlotCompletedLessons     = "completedLessons"
	SlotLessonScores         = "lessonScores"
	SlotLastStudyDate        = "lastStudyDate"
	SlotUnlockedAchievements = "unlockedAchievements"
	SlotLessonSessions       = "lessonSessions"
)

// Slots lists every slot in a stable order.
var Slots = []string{
	SlotStreak,
	SlotHearts,
	SlotCompletedLessons,
	SlotLessonScores,
	SlotLastStudyDate,
	SlotUnlockedAchievements,
	SlotLessonSessions,
}

var ErrInvariantViolation = errors.New("progress invariant violated")

// DecodeProgress builds progress from raw slot values. Missing slots take
// their defaults and hearts are clamped to [0, maxHearts].
func DecodeProgress(slots map[string]string, maxHearts int) (models.Progress, error) {
	p := models.NewProgress(maxHearts)

	if v, ok := slots[SlotStreak]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return p, fmt.Errorf("decode slot %s: %w", SlotStreak, err)
		}
		p.Streak = max(n, 0)
	}
	if v, ok := slots[SlotHearts]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return p, fmt.Errorf("decode slot %s: %w", SlotHearts, err)
		}
		p.Hearts = min(max(n, 0), maxHearts)
	}

	jsonSlots := []struct {
		name string
		dst  any
	}{
		{SlotCompletedLessons, &p.CompletedLessons},
		{SlotLessonScores, &p.LessonBestScore},
		{SlotLastStudyDate, &p.LastStudyDate},
		{SlotUnlockedAchievements, &p.UnlockedAchievements},
		{SlotLessonSessions, &p.Sessions},
	}
	for _, s := range jsonSlots {
		v, ok := slots[s.name]
		if !ok || v == "" {
			continue
		}
		if err := json.Unmarshal([]byte(v), s.dst); err != nil {
			return p, fmt.Errorf("decode slot %s: %w", s.name, err)
		}
	}

	// A stored "null" leaves nil collections behind.
	if p.CompletedLessons == nil {
		p.CompletedLessons = []string{}
	}
	if p.LessonBestScore == nil {
		p.LessonBestScore = map[string]int{}
	}
	if p.UnlockedAchievements == nil {
		p.UnlockedAchievements = []string{}
	}
	if p.Sessions == nil {
		p.Sessions = map[string]models.Session{}
	}
	return p, nil
}

// EncodeProgress renders every slot of p.
func EncodeProgress(p models.Progress) (map[string]string, error) {
	out := map[string]string{
		SlotStreak: strconv.Itoa(p.Streak),
		SlotHearts: strconv.Itoa(p.Hearts),
	}
	jsonSlots := []struct {
		name string
		src  any
	}{
		{SlotCompletedLessons, p.CompletedLessons},
		{SlotLessonScores, p.LessonBestScore},
		{SlotLastStudyDate, p.LastStudyDate},
		{SlotUnlockedAchievements, p.UnlockedAchievements},
		{SlotLessonSessions, p.Sessions},
	}
	for _, s := range jsonSlots {
		b, err := json.Marshal(s.src)
		if err != nil {
			return nil, fmt.Errorf("encode slot %s: %w", s.name, err)
		}
		out[s.name] = string(b)
	}
	return out, nil
}

// Transition decodes slots, applies fn to a copy, checks the result against
// the snapshot invariants and returns only the slots whose value changed.
// An error from fn or from the check means nothing may be written.
func Transition(slots map[string]string, maxHearts int, fn UpdateFunc) (map[string]string, error) {
	before, err := DecodeProgress(slots, maxHearts)
	if err != nil {
		return nil, err
	}
	after := before.Clone()
	if err := fn(&after); err != nil {
		return nil, err
	}
	if err := CheckTransition(before.Snapshot, after.Snapshot, maxHearts); err != nil {
		return nil, err
	}

	oldEnc, err := EncodeProgress(before)
	if err != nil {
		return nil, err
	}
	newEnc, err := EncodeProgress(after)
	if err != nil {
		return nil, err
	}

	changed := make(map[string]string)
	for _, slot := range Slots {
		prev, present := slots[slot]
		if !present {
			prev = oldEnc[slot]
		}
		if prev != newEnc[slot] {
			changed[slot] = newEnc[slot]
		}
	}
	return changed, nil
}

// CheckTransition enforces the monotonic snapshot rules between two values.
func CheckTransition(before, after models.Snapshot, maxHearts int) error {
	if after.Hearts < 0 || after.Hearts > maxHearts {
		return fmt.Errorf("%w: hearts %d outside [0, %d]", ErrInvariantViolation, after.Hearts, maxHearts)
	}
	if after.Streak < 0 {
		return fmt.Errorf("%w: negative streak %d", ErrInvariantViolation, after.Streak)
	}
	for _, id := range before.CompletedLessons {
		if !slices.Contains(after.CompletedLessons, id) {
			return fmt.Errorf("%w: completed lesson %s removed", ErrInvariantViolation, id)
		}
	}
	for _, id := range before.UnlockedAchievements {
		if !slices.Contains(after.UnlockedAchievements, id) {
			return fmt.Errorf("%w: achievement %s removed", ErrInvariantViolation, id)
		}
	}
	for _, id := range slices.Sorted(maps.Keys(after.LessonBestScore)) {
		score := after.LessonBestScore[id]
		if score < 0 || score > 100 {
			return fmt.Errorf("%w: best score %d for %s outside [0, 100]", ErrInvariantViolation, score, id)
		}
		if prev, ok := before.LessonBestScore[id]; ok && score < prev {
			return fmt.Errorf("%w: best score for %s dropped from %d to %d", ErrInvariantViolation, id, prev, score)
		}
	}
	for id := range before.LessonBestScore {
		if _, ok := after.LessonBestScore[id]; !ok {
			return fmt.Errorf("%w: best score for %s removed", ErrInvariantViolation, id)
		}
	}
	return nil
}

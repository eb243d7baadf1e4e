package engine

import (
	"fmt"
	"strings"

	"github.com/vytor/lingualearn/internal/errors"
	"github.com/vytor/lingualearn/internal/models"
)

// SpokenPolicy decides spoken answers, which the engine cannot verify.
type SpokenPolicy int

const (
	// AlwaysAccept marks every spoken answer correct.
	AlwaysAccept SpokenPolicy = iota
	// NeverAccept marks every spoken answer wrong, for learners who must
	// type or pick instead.
	NeverAccept
)

// Judge reports whether r answers q correctly, accepting spoken answers.
func Judge(q models.Question, r models.Response) (bool, error) {
	return JudgeWith(q, r, AlwaysAccept)
}

// JudgeWith is Judge with an explicit policy for spoken answers.
func JudgeWith(q models.Question, r models.Response, spoken SpokenPolicy) (bool, error) {
	switch q.Kind {
	case models.KindChoice, models.KindAudioChoice:
		opt, ok := r.(models.OptionResponse)
		if !ok {
			return false, errors.NewInvalidResponseError(fmt.Sprintf("question %s expects an option index", q.ID))
		}
		if opt.Index < 0 || opt.Index >= len(q.Options) {
			return false, errors.NewInvalidResponseError(fmt.Sprintf("option %d out of range for question %s (%d options)", opt.Index, q.ID, len(q.Options)))
		}
		return opt.Index == q.CorrectOption, nil
	case models.KindTranslation:
		text, ok := r.(models.TextResponse)
		if !ok {
			return false, errors.NewInvalidResponseError(fmt.Sprintf("question %s expects a text answer", q.ID))
		}
		return normalize(text.Text) == normalize(q.ExpectedText), nil
	case models.KindSpoken:
		if _, ok := r.(models.SpokenResponse); !ok {
			return false, errors.NewInvalidResponseError(fmt.Sprintf("question %s expects a spoken answer", q.ID))
		}
		return judgeSpoken(spoken), nil
	default:
		return false, errors.NewInvalidResponseError(fmt.Sprintf("question %s has unsupported kind %q", q.ID, q.Kind))
	}
}

func judgeSpoken(policy SpokenPolicy) bool {
	switch policy {
	case AlwaysAccept:
		return true
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

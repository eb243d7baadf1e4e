package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/vytor/lingualearn/internal/models"
)

// emit writes v as indented JSON when --json is set, otherwise calls text.
func (a *app) emit(w io.Writer, v any, text func(w io.Writer) error) error {
	if a.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	return text(w)
}

func table(w io.Writer, header string, rows func(tw *tabwriter.Writer)) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	rows(tw)
	return tw.Flush()
}

func starString(n int) string {
	return strings.Repeat("*", n) + strings.Repeat(".", 3-n)
}

func printQuestion(w io.Writer, lesson models.Lesson, index int) {
	q := lesson.Questions[index]
	fmt.Fprintf(w, "Question %d/%d (%s): %s\n", index+1, len(lesson.Questions), q.Kind, q.Prompt)
	if q.AudioURL != "" {
		fmt.Fprintf(w, "  audio: %s\n", q.AudioURL)
	}
	for i, opt := range q.Options {
		fmt.Fprintf(w, "  %d) %s\n", i+1, opt)
	}
}

func printSession(w io.Writer, lesson models.Lesson, s models.Session) {
	fmt.Fprintf(w, "%s [%s] session %s\n", lesson.Title, s.State, s.ID)
	if s.State == models.SessionInProgress && s.QuestionIndex < len(lesson.Questions) {
		printQuestion(w, lesson, s.QuestionIndex)
	}
}

func printOutcome(w io.Writer, lesson models.Lesson, out *models.AnswerOutcome) {
	if out.Correct {
		fmt.Fprintln(w, "Correct!")
	} else {
		fmt.Fprintln(w, "Incorrect.")
	}
	if out.Explanation != "" {
		fmt.Fprintf(w, "  %s\n", out.Explanation)
	}
	fmt.Fprintf(w, "Hearts: %d\n", out.HeartsRemaining)

	switch out.Session.State {
	case models.SessionAbandoned:
		fmt.Fprintln(w, "Out of hearts. Lesson abandoned.")
	case models.SessionCompleted:
		c := out.Completion
		fmt.Fprintf(w, "Lesson complete: %d%% %s (best %d%%)\n", c.Percentage, starString(c.Stars), c.BestScore)
		fmt.Fprintf(w, "Streak: %d day(s)\n", c.Streak)
		for _, id := range c.NewAchievements {
			fmt.Fprintf(w, "Achievement unlocked: %s\n", id)
		}
	default:
		printQuestion(w, lesson, out.Session.QuestionIndex)
	}
}

package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/vytor/lingualearn/internal/models"
)

func newStartCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "start <lesson-id>",
		Short: "Start or resume a lesson and show the current question",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			session, err := a.svc.StartLesson(a.ctx, a.learner(), args[0])
			if err != nil {
				return err
			}
			return a.showSession(cmd.OutOrStdout(), *session)
		}),
	}
}

func newReviewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "review <lesson-id>",
		Short: "Replay a lesson from its first question",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			session, err := a.svc.ReviewLesson(a.ctx, a.learner(), args[0])
			if err != nil {
				return err
			}
			return a.showSession(cmd.OutOrStdout(), *session)
		}),
	}
}

func (a *app) showSession(w io.Writer, session models.Session) error {
	lesson, err := a.catalog.Lesson(session.LessonID)
	if err != nil {
		return err
	}
	return a.emit(w, session, func(w io.Writer) error {
		printSession(w, lesson, session)
		return nil
	})
}

func newAnswerCmd(a *app) *cobra.Command {
	var (
		option int
		text   string
		spoken bool
	)

	cmd := &cobra.Command{
		Use:   "answer <lesson-id> <question-number>",
		Short: "Answer the current question of a lesson",
		Long: "Answer the current question of a lesson. Question and option numbers start at 1.\n" +
			"Exactly one of --option, --text or --spoken must be given.",
		Args: cobra.ExactArgs(2),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("question number must be an integer: %w", err)
			}

			given := 0
			for _, name := range []string{"option", "text", "spoken"} {
				if cmd.Flags().Changed(name) {
					given++
				}
			}
			if given != 1 {
				return fmt.Errorf("exactly one of --option, --text or --spoken is required")
			}

			var response models.Response
			switch {
			case cmd.Flags().Changed("option"):
				response = models.OptionResponse{Index: option - 1}
			case cmd.Flags().Changed("text"):
				response = models.TextResponse{Text: text}
			case spoken:
				response = models.SpokenResponse{}
			default:
				return fmt.Errorf("--spoken=false is not an answer")
			}

			lesson, err := a.catalog.Lesson(args[0])
			if err != nil {
				return err
			}
			out, err := a.svc.SubmitAnswer(a.ctx, a.learner(), lesson.ID, n-1, response)
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), out, func(w io.Writer) error {
				printOutcome(w, lesson, out)
				return nil
			})
		}),
	}

	cmd.Flags().IntVar(&option, "option", 0, "Chosen option number")
	cmd.Flags().StringVar(&text, "text", "", "Typed translation")
	cmd.Flags().BoolVar(&spoken, "spoken", false, "The answer was spoken aloud")
	return cmd
}

package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vytor/lingualearn/internal/models"
)

func newTracksCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tracks",
		Short: "List language tracks with completed lesson counts",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			tracks, err := a.svc.Tracks(a.ctx, a.learner())
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), tracks, func(w io.Writer) error {
				return table(w, "CODE\tLANGUAGE\tCOMPLETED", func(tw *tabwriter.Writer) {
					for _, t := range tracks {
						fmt.Fprintf(tw, "%s\t%s %s\t%d/%d\n", t.Code, t.Flag, t.Name, t.Completed, t.Total)
					}
				})
			})
		}),
	}
}

func newPathCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "path <track> [lesson-number]",
		Short: "Show a track's lesson path, or whether one lesson is locked",
		Args:  cobra.RangeArgs(1, 2),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			if len(args) == 2 {
				n, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("lesson number must be an integer: %w", err)
				}
				locked, err := a.svc.IsLessonLocked(a.ctx, a.learner(), args[0], n-1)
				if err != nil {
					return err
				}
				return a.emit(cmd.OutOrStdout(), map[string]bool{"locked": locked}, func(w io.Writer) error {
					if locked {
						_, err := fmt.Fprintln(w, "locked")
						return err
					}
					_, err := fmt.Fprintln(w, "unlocked")
					return err
				})
			}

			cards, err := a.svc.TrackPath(a.ctx, a.learner(), args[0])
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), cards, func(w io.Writer) error {
				return table(w, "#\tLESSON\tTITLE\tLEVEL\tTIME\tSTATUS\tSTARS", func(tw *tabwriter.Writer) {
					for i, c := range cards {
						status := "open"
						switch {
						case c.Completed:
							status = "done"
						case c.Locked:
							status = "locked"
						}
						fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", i+1, c.Lesson.ID, c.Lesson.Title, c.Lesson.Difficulty, c.Lesson.Duration, status, starString(c.Stars))
					}
				})
			})
		}),
	}
}

func newStarsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stars <lesson-id>",
		Short: "Show the star rating of a lesson's best score",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			stars, err := a.svc.GetLessonStars(a.ctx, a.learner(), args[0])
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), map[string]int{"stars": stars}, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%s %d\n", starString(stars), stars)
				return err
			})
		}),
	}
}

func newAchievementsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "achievements [achievement-id]",
		Short: "List achievements with progress",
		Args:  cobra.MaximumNArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			var list []models.AchievementProgress
			if len(args) == 1 {
				p, err := a.svc.GetAchievementProgress(a.ctx, a.learner(), args[0])
				if err != nil {
					return err
				}
				list = []models.AchievementProgress{*p}
			} else {
				var err error
				if list, err = a.svc.Achievements(a.ctx, a.learner()); err != nil {
					return err
				}
			}
			return a.emit(cmd.OutOrStdout(), list, func(w io.Writer) error {
				return table(w, "ID\tTITLE\tPROGRESS\tUNLOCKED", func(tw *tabwriter.Writer) {
					for _, p := range list {
						mark := "no"
						if p.Unlocked {
							mark = "yes"
						}
						fmt.Fprintf(tw, "%s\t%s\t%d/%d\t%s\n", p.Achievement.ID, p.Achievement.Title, min(p.Current, p.Target), p.Target, mark)
					}
				})
			})
		}),
	}
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show streak, hearts and overall progress",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			dash, err := a.svc.Dashboard(a.ctx, a.learner())
			if err != nil {
				return err
			}
			snap, err := a.svc.GetProgress(a.ctx, a.learner())
			if err != nil {
				return err
			}
			view := struct {
				*models.Dashboard
				LastStudyDate models.Date `json:"last_study_date"`
			}{dash, snap.LastStudyDate}
			return a.emit(cmd.OutOrStdout(), view, func(w io.Writer) error {
				last := "never"
				if !snap.LastStudyDate.IsZero() {
					last = snap.LastStudyDate.String()
				}
				fmt.Fprintf(w, "Learner:      %s\n", a.learner())
				fmt.Fprintf(w, "Streak:       %d day(s), last studied %s\n", dash.Streak, last)
				fmt.Fprintf(w, "Hearts:       %d/%d\n", dash.Hearts, dash.MaxHearts)
				fmt.Fprintf(w, "Lessons:      %d/%d completed\n", dash.CompletedLessons, dash.TotalLessons)
				_, err := fmt.Fprintf(w, "Achievements: %d/%d unlocked\n", dash.UnlockedAchievements, dash.TotalAchievements)
				return err
			})
		}),
	}
}

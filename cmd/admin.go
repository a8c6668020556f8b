// ABOUTME: Admin commands for managing users, lessons, and quizzes
// ABOUTME: Every failure is reported; nothing falls back to a default

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/readsmvp/reads-cli/internal/client"
	"github.com/readsmvp/reads-cli/internal/format"
	"github.com/readsmvp/reads-cli/internal/tui/recentfiles"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	lessonDraft       client.LessonInput
	lessonContentFile string
	assumeYes         bool
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage users, lessons, and quizzes (admins only)",
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List all users",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(func(ctx context.Context) int {
			return runUsers(ctx, os.Stdout)
		})
	},
}

var promoteCmd = &cobra.Command{
	Use:   "promote <user-id>",
	Short: "Grant admin rights",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(func(ctx context.Context) int {
			return runSetAdmin(ctx, os.Stdout, args[0], true)
		})
	},
}

var demoteCmd = &cobra.Command{
	Use:   "demote <user-id>",
	Short: "Revoke admin rights",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(func(ctx context.Context) int {
			return runSetAdmin(ctx, os.Stdout, args[0], false)
		})
	},
}

var allLessonsCmd = &cobra.Command{
	Use:   "lessons",
	Short: "List every lesson",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(func(ctx context.Context) int {
			return runAllLessons(ctx, os.Stdout)
		})
	},
}

var createLessonCmd = &cobra.Command{
	Use:   "create-lesson",
	Short: "Publish a new lesson",
	Long: `Publish a new lesson. Content comes from --content or --content-file.

Example:
  reads admin create-lesson --category JAMB --title "Cell biology" --content-file cells.md`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(func(ctx context.Context) int {
			return runCreateLesson(ctx, os.Stdout, lessonDraft, lessonContentFile)
		})
	},
}

var deleteLessonCmd = &cobra.Command{
	Use:   "delete-lesson <lesson-id>",
	Short: "Delete a lesson with its quiz and rewards",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(func(ctx context.Context) int {
			if !confirm(fmt.Sprintf("Delete lesson %s and its quiz and rewards?", args[0])) {
				format.PrintWarning(os.Stdout, "Aborted")
				return exitError
			}
			return runDeleteLesson(ctx, os.Stdout, args[0])
		})
	},
}

var uploadQuizCmd = &cobra.Command{
	Use:   "upload-quiz <lesson-id> <file>",
	Short: "Upload quiz questions from a JSON or YAML file",
	Long: `Upload quiz questions for a lesson, replacing any existing ones.

The file holds a list of questions, or an object with a "questions" key:

  questions:
    - question: "What is 2 + 2?"
      options: ["3", "4", "5", "6"]
      correct_option: B`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(func(ctx context.Context) int {
			return runUploadQuiz(ctx, os.Stdout, args[0], args[1])
		})
	},
}

var deleteQuizCmd = &cobra.Command{
	Use:   "delete-quiz <lesson-id>",
	Short: "Delete every question on a lesson",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(func(ctx context.Context) int {
			if !confirm(fmt.Sprintf("Delete the quiz for lesson %s?", args[0])) {
				format.PrintWarning(os.Stdout, "Aborted")
				return exitError
			}
			return runDeleteQuiz(ctx, os.Stdout, args[0])
		})
	},
}

func init() {
	rootCmd.AddCommand(adminCmd)
	adminCmd.AddCommand(usersCmd, promoteCmd, demoteCmd, allLessonsCmd,
		createLessonCmd, deleteLessonCmd, uploadQuizCmd, deleteQuizCmd)

	f := createLessonCmd.Flags()
	f.StringVar(&lessonDraft.Category, "category", "", "Category, e.g. JAMB or WAEC")
	f.StringVar(&lessonDraft.Title, "title", "", "Lesson title")
	f.StringVar(&lessonDraft.Content, "content", "", "Lesson body")
	f.StringVar(&lessonContentFile, "content-file", "", "Read the lesson body from a file")
	f.StringVar(&lessonDraft.VideoURL, "video-url", "", "Optional video link")
	f.IntVar(&lessonDraft.OrderIndex, "order", 0, "Position within the category")

	for _, c := range []*cobra.Command{deleteLessonCmd, deleteQuizCmd} {
		c.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")
	}
}

// confirm asks on a terminal unless --yes was passed. Without a terminal
// destructive commands require --yes.
func confirm(question string) bool {
	if assumeYes {
		return true
	}
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return false
	}
	var ok bool
	if err := huh.NewConfirm().Title(question).Value(&ok).Run(); err != nil {
		return false
	}
	return ok
}

// runUsers lists users and returns exit code
func runUsers(ctx context.Context, w io.Writer) int {
	s, ok := newSession(w)
	if !ok {
		return exitError
	}
	users, err := s.client.Users(ctx)
	if err != nil {
		return s.fail(err)
	}
	return s.print(formatUsers(users))
}

func formatUsers(users []client.Profile) *format.Table {
	t := &format.Table{
		Headers: []string{"ID", "Name", "Email", "Role", "Joined"},
		Data:    users,
		Empty:   "No users",
	}
	for _, u := range users {
		role := "learner"
		if u.IsAdmin {
			role = "admin"
		}
		joined := "-"
		if !u.JoinedAt.IsZero() {
			joined = u.JoinedAt.Format("2006-01-02")
		}
		t.Rows = append(t.Rows, []string{u.ID, u.Name, u.Email, role, joined})
	}
	return t
}

// runSetAdmin promotes or demotes a user and returns exit code
func runSetAdmin(ctx context.Context, w io.Writer, rawID string, isAdmin bool) int {
	s, ok := newSession(w)
	if !ok {
		return exitError
	}
	id, err := parseID("user", rawID)
	if err != nil {
		return s.fail(err)
	}
	msg, err := s.client.SetAdmin(ctx, id, isAdmin)
	if err != nil {
		return s.fail(err)
	}
	format.PrintSuccess(w, "%s", msg)
	return exitOK
}

// runAllLessons lists every lesson and returns exit code
func runAllLessons(ctx context.Context, w io.Writer) int {
	s, ok := newSession(w)
	if !ok {
		return exitError
	}
	lessons, err := s.client.AllLessons(ctx)
	if err != nil {
		return s.fail(err)
	}
	return s.print(formatLessons(lessons, "No lessons yet"))
}

// runCreateLesson publishes a lesson and returns exit code
func runCreateLesson(ctx context.Context, w io.Writer, draft client.LessonInput, contentFile string) int {
	s, ok := newSession(w)
	if !ok {
		return exitError
	}
	if contentFile != "" {
		data, err := os.ReadFile(contentFile)
		if err != nil {
			return s.fail(fmt.Errorf("failed to read content file: %w", err))
		}
		draft.Content = string(data)
	}

	lesson, err := s.client.CreateLesson(ctx, draft)
	if err != nil {
		return s.fail(err)
	}
	format.PrintSuccess(w, "Created lesson %q", lesson.Title)
	return s.print(format.Record(lesson,
		[2]string{"ID", lesson.ID},
		[2]string{"Category", lesson.Category},
		[2]string{"Order", strconv.Itoa(lesson.OrderIndex)},
	))
}

// runDeleteLesson deletes a lesson and returns exit code
func runDeleteLesson(ctx context.Context, w io.Writer, rawID string) int {
	s, ok := newSession(w)
	if !ok {
		return exitError
	}
	id, err := parseID("lesson", rawID)
	if err != nil {
		return s.fail(err)
	}
	if err := s.client.DeleteLesson(ctx, id); err != nil {
		return s.fail(err)
	}
	format.PrintSuccess(w, "Deleted lesson %s", id)
	return exitOK
}

// runUploadQuiz uploads a question file and returns exit code
func runUploadQuiz(ctx context.Context, w io.Writer, rawID, path string) int {
	s, ok := newSession(w)
	if !ok {
		return exitError
	}
	id, err := parseID("lesson", rawID)
	if err != nil {
		return s.fail(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return s.fail(fmt.Errorf("failed to read quiz file: %w", err))
	}

	msg, err := s.client.UploadQuiz(ctx, id, data)
	if err != nil {
		return s.fail(err)
	}
	if err := recentfiles.New(s.cfg.ConfigDir).Add(path); err != nil {
		s.client.Logger().Warn("failed to remember quiz file", zap.String("path", path), zap.Error(err))
	}
	format.PrintSuccess(w, "%s", msg)
	return exitOK
}

// runDeleteQuiz deletes a lesson's quiz and returns exit code
func runDeleteQuiz(ctx context.Context, w io.Writer, rawID string) int {
	s, ok := newSession(w)
	if !ok {
		return exitError
	}
	id, err := parseID("lesson", rawID)
	if err != nil {
		return s.fail(err)
	}
	if err := s.client.DeleteQuiz(ctx, id); err != nil {
		return s.fail(err)
	}
	format.PrintSuccess(w, "Deleted quiz for lesson %s", id)
	return exitOK
}

// ABOUTME: Learn commands for browsing lessons and taking quizzes
// ABOUTME: Quiz submission reports an already-completed quiz with exit code 1

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/readsmvp/reads-cli/internal/client"
	"github.com/readsmvp/reads-cli/internal/format"
	"github.com/spf13/cobra"
)

var submitAnswers []string

var learnCmd = &cobra.Command{
	Use:   "learn",
	Short: "Browse lessons and take quizzes",
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List lesson categories",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(func(ctx context.Context) int {
			return runCategories(ctx, os.Stdout)
		})
	},
}

var lessonsCmd = &cobra.Command{
	Use:   "lessons <category>",
	Short: "List lessons in a category",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(func(ctx context.Context) int {
			return runLessons(ctx, os.Stdout, args[0])
		})
	},
}

var lessonCmd = &cobra.Command{
	Use:   "lesson <lesson-id>",
	Short: "Show a lesson",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(func(ctx context.Context) int {
			return runLesson(ctx, os.Stdout, args[0])
		})
	},
}

var quizCmd = &cobra.Command{
	Use:   "quiz <lesson-id>",
	Short: "Show a lesson's quiz questions",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(func(ctx context.Context) int {
			return runQuiz(ctx, os.Stdout, args[0])
		})
	},
}

var submitCmd = &cobra.Command{
	Use:   "submit <lesson-id>",
	Short: "Submit quiz answers",
	Long: `Submit answers for a lesson's quiz. Pass one --answer per question.

Example:
  reads learn submit 6f1c... --answer <question-id>=B --answer <question-id>=D`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runWithSignals(func(ctx context.Context) int {
			return runSubmit(ctx, os.Stdout, args[0], submitAnswers)
		})
	},
}

func init() {
	rootCmd.AddCommand(learnCmd)
	learnCmd.AddCommand(categoriesCmd, lessonsCmd, lessonCmd, quizCmd, submitCmd)
	submitCmd.Flags().StringArrayVarP(&submitAnswers, "answer", "a", nil, "Answer as <question-id>=<A-D> (repeatable)")
}

// runCategories lists categories and returns exit code
func runCategories(ctx context.Context, w io.Writer) int {
	s, ok := newSession(w)
	if !ok {
		return exitError
	}
	return s.print(formatCategories(s.client.Categories(ctx)))
}

func formatCategories(cats []client.Category) *format.Table {
	t := &format.Table{
		Headers: []string{"Category", "Lessons", "Color"},
		Data:    cats,
		Empty:   "No categories yet",
	}
	for _, c := range cats {
		t.Rows = append(t.Rows, []string{c.Name, strconv.Itoa(c.Count), c.Color})
	}
	return t
}

// runLessons lists a category's lessons and returns exit code
func runLessons(ctx context.Context, w io.Writer, category string) int {
	s, ok := newSession(w)
	if !ok {
		return exitError
	}
	return s.print(formatLessons(s.client.Lessons(ctx, category), "No lessons in "+category))
}

func formatLessons(lessons []client.LessonSummary, empty string) *format.Table {
	t := &format.Table{
		Headers: []string{"#", "ID", "Title", "Category", "Quiz"},
		Data:    lessons,
		Empty:   empty,
	}
	for _, l := range lessons {
		quiz := "-"
		if l.HasQuiz {
			quiz = "yes"
		}
		t.Rows = append(t.Rows, []string{strconv.Itoa(l.OrderIndex), l.ID, l.Title, l.Category, quiz})
	}
	return t
}

// runLesson shows one lesson and returns exit code
func runLesson(ctx context.Context, w io.Writer, rawID string) int {
	s, ok := newSession(w)
	if !ok {
		return exitError
	}
	id, err := parseID("lesson", rawID)
	if err != nil {
		return s.fail(err)
	}

	lesson, err := s.client.Lesson(ctx, id)
	if err != nil {
		return s.fail(err)
	}

	switch outputFormat(s.cfg) {
	case "table", "text":
		fmt.Fprintln(w, formatLessonHuman(lesson))
		return exitOK
	default:
		return s.print(&format.Table{Data: lesson})
	}
}

// formatLessonHuman renders a lesson as a readable page
func formatLessonHuman(l *client.LessonDetail) string {
	out := fmt.Sprintf("%s\n%s · lesson %d\n", l.Title, l.Category, l.OrderIndex)
	if l.VideoURL != "" {
		out += "Video: " + l.VideoURL + "\n"
	}
	out += "\n" + l.Content
	if l.HasQuiz {
		out += fmt.Sprintf("\n\nTake the quiz: reads learn quiz %s", l.ID)
	}
	return out
}

// runQuiz lists a lesson's questions and returns exit code
func runQuiz(ctx context.Context, w io.Writer, rawID string) int {
	s, ok := newSession(w)
	if !ok {
		return exitError
	}
	id, err := parseID("lesson", rawID)
	if err != nil {
		return s.fail(err)
	}

	questions, err := s.client.Quiz(ctx, id)
	if client.IsAlreadyCompleted(err) {
		format.PrintWarning(w, "You have already completed this quiz.")
		return exitOutcome
	}
	if err != nil {
		return s.fail(err)
	}

	switch outputFormat(s.cfg) {
	case "table", "text":
		fmt.Fprint(w, formatQuizHuman(questions))
		return exitOK
	default:
		return s.print(&format.Table{Data: questions})
	}
}

// optionLetters label the four options of every question
var optionLetters = []string{"A", "B", "C", "D"}

func formatQuizHuman(questions []client.QuizQuestion) string {
	if len(questions) == 0 {
		return "This lesson has no quiz questions.\n"
	}
	var out string
	for i, q := range questions {
		out += fmt.Sprintf("%d. %s\n   id: %s\n", i+1, q.Question, q.ID)
		for j, opt := range q.Options {
			if j < len(optionLetters) {
				out += fmt.Sprintf("   %s) %s\n", optionLetters[j], opt)
			}
		}
		out += "\n"
	}
	return out
}

// runSubmit submits answers and returns exit code
func runSubmit(ctx context.Context, w io.Writer, rawID string, pairs []string) int {
	s, ok := newSession(w)
	if !ok {
		return exitError
	}
	id, err := parseID("lesson", rawID)
	if err != nil {
		return s.fail(err)
	}
	answers, err := parseAnswers(pairs)
	if err != nil {
		return s.fail(err)
	}

	result, err := s.client.SubmitQuiz(ctx, client.QuizSubmission{LessonID: id, Answers: answers})
	if client.IsAlreadyCompleted(err) {
		format.PrintWarning(w, "You have already completed this quiz. No new tokens were awarded.")
		return exitOutcome
	}
	if err != nil {
		return s.fail(err)
	}

	return s.print(formatResult(result))
}

func formatResult(r *client.QuizResult) *format.Table {
	outcome := "Not passed"
	if r.Passed() {
		outcome = "Passed"
	}
	fields := [][2]string{
		{"Score", fmt.Sprintf("%d%%", r.Score)},
		{"Correct", strconv.Itoa(r.Correct)},
		{"Wrong", strconv.Itoa(r.Wrong)},
		{"Tokens awarded", strconv.Itoa(r.TokensAwarded)},
		{"Outcome", outcome},
	}
	if r.Message != "" {
		fields = append(fields, [2]string{"Message", r.Message})
	}
	return format.Record(r, fields...)
}

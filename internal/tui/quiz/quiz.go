// ABOUTME: Quiz screen as a bubbletea model, one huh select per question
// ABOUTME: Steps through the nav.QuizFlow phases and shows the graded result

package quiz

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/readsmvp/reads-cli/internal/client"
	"github.com/readsmvp/reads-cli/internal/nav"
	"github.com/readsmvp/reads-cli/internal/tui/icons"
	"github.com/readsmvp/reads-cli/internal/tui/result"
	"github.com/readsmvp/reads-cli/internal/tui/screen"
	"github.com/readsmvp/reads-cli/internal/tui/styles"
	"github.com/readsmvp/reads-cli/internal/tui/widgets"
)

// QuestionsLoadedMsg carries the questions of a quiz
type QuestionsLoadedMsg struct {
	screen.Result
	Questions []client.QuizQuestion
}

// GradedMsg carries the graded submission
type GradedMsg struct {
	screen.Result
	Graded *client.QuizResult
}

// letters are the option keys the backend grades against
var letters = []string{"A", "B", "C", "D"}

// Quiz runs one attempt at a lesson's quiz
type Quiz struct {
	client    *client.Client
	route     nav.State
	ref       nav.QuizRef
	hasRef    bool
	flow      nav.QuizFlow
	questions []client.QuizQuestion
	choices   []string
	step      int
	form      *huh.Form
	graded    *client.QuizResult
	submitted bool
	err       error
	spinner   spinner.Model
	width     int
}

// New creates the quiz screen for the lesson named in the route
func New(c *client.Client, route nav.State, width int) *Quiz {
	ref, ok := nav.PayloadOf[nav.QuizRef](route)
	return &Quiz{
		client:  c,
		route:   route,
		ref:     ref,
		hasRef:  ok,
		spinner: widgets.NewSpinner(),
		width:   width,
	}
}

// outcomeOf classifies a gateway error for the flow
func outcomeOf(err error) nav.QuizOutcome {
	switch {
	case err == nil:
		return nav.OutcomeOK
	case client.IsAlreadyCompleted(err):
		return nav.OutcomeAlreadyCompleted
	default:
		return nav.OutcomeError
	}
}

// Init implements screen.Screen
func (q *Quiz) Init() tea.Cmd {
	if !q.hasRef {
		q.flow = q.flow.Fetched(nav.OutcomeError, 0)
		return nil
	}
	route, lessonID := q.route, q.ref.LessonID
	load := func() tea.Msg {
		questions, err := q.client.Quiz(context.Background(), lessonID)
		return QuestionsLoadedMsg{Result: screen.Result{Route: route, Err: err}, Questions: questions}
	}
	return tea.Batch(load, q.spinner.Tick)
}

// Phase returns where the attempt stands
func (q *Quiz) Phase() nav.QuizPhase {
	return q.flow.Phase
}

// Update implements screen.Screen
func (q *Quiz) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		q.width = msg.Width
		if q.form != nil {
			form, cmd := q.form.Update(msg)
			if f, ok := form.(*huh.Form); ok {
				q.form = f
			}
			return q, cmd
		}
		return q, nil

	case QuestionsLoadedMsg:
		q.err = msg.Err
		q.questions = msg.Questions
		q.flow = q.flow.Fetched(outcomeOf(msg.Err), len(msg.Questions))
		if q.flow.Phase != nav.QuizAnswering {
			return q, nil
		}
		q.choices = make([]string, len(q.questions))
		q.step = 0
		q.form = q.questionForm(0)
		return q, q.form.Init()

	case GradedMsg:
		q.submitted = q.flow.Phase == nav.QuizSubmitting
		q.err = msg.Err
		q.graded = msg.Graded
		q.flow = q.flow.Graded(outcomeOf(msg.Err))
		if q.flow.Phase == nav.QuizResult && q.graded.Passed() {
			return q, screen.Emit(screen.BalanceChanged{})
		}
		return q, nil

	case spinner.TickMsg:
		if q.flow.Phase == nav.QuizLoading || q.flow.Phase == nav.QuizSubmitting {
			var cmd tea.Cmd
			q.spinner, cmd = q.spinner.Update(msg)
			return q, cmd
		}
		return q, nil

	case tea.KeyMsg:
		if q.flow.Phase == nav.QuizAnswering && msg.String() == "esc" {
			return q, screen.Back()
		}
		if q.flow.Phase.Terminal() && msg.String() == "l" {
			return q, screen.Go(nav.ToCategories())
		}
	}

	if q.flow.Phase != nav.QuizAnswering || q.form == nil {
		return q, nil
	}

	form, cmd := q.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		q.form = f
	}
	if q.form.State == huh.StateCompleted {
		return q.advance()
	}
	return q, cmd
}

func (q *Quiz) questionForm(i int) *huh.Form {
	question := q.questions[i]
	var options []huh.Option[string]
	for j, text := range question.Options {
		if j >= len(letters) {
			break
		}
		options = append(options, huh.NewOption(fmt.Sprintf("%s. %s", letters[j], text), letters[j]))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(question.Question).
				Description("Use ↑/↓ to select, Enter to confirm").
				Options(options...).
				Value(&q.choices[i]),
		),
	).WithTheme(styles.FormTheme()).WithShowHelp(false)
}

// advance moves to the next question or submits after the last one
func (q *Quiz) advance() (screen.Screen, tea.Cmd) {
	if q.step < len(q.questions)-1 {
		q.step++
		q.form = q.questionForm(q.step)
		return q, q.form.Init()
	}
	q.form = nil
	return q, q.submit()
}

// Submission builds the answers collected so far
func (q *Quiz) Submission() client.QuizSubmission {
	sub := client.QuizSubmission{LessonID: q.ref.LessonID}
	for i, question := range q.questions {
		sub.Answers = append(sub.Answers, client.Answer{QuestionID: question.ID, Selected: q.choices[i]})
	}
	return sub
}

func (q *Quiz) submit() tea.Cmd {
	q.flow = q.flow.Submit()
	route, sub := q.route, q.Submission()
	send := func() tea.Msg {
		res, err := q.client.SubmitQuiz(context.Background(), sub)
		return GradedMsg{Result: screen.Result{Route: route, Err: err}, Graded: res}
	}
	return tea.Batch(send, q.spinner.Tick)
}

// View implements screen.Screen
func (q *Quiz) View() string {
	var sb strings.Builder
	title := q.ref.LessonTitle
	if title == "" {
		title = "Quiz"
	}

	switch q.flow.Phase {
	case nav.QuizLoading:
		sb.WriteString(styles.Title.Render(icons.Quiz.String() + " " + title))
		sb.WriteString("\n")
		sb.WriteString(widgets.Loading(q.spinner, "Loading questions..."))

	case nav.QuizAnswering:
		sb.WriteString(q.renderProgress(title))
		sb.WriteString("\n\n")
		if q.form != nil {
			sb.WriteString(q.form.View())
		}

	case nav.QuizSubmitting:
		sb.WriteString(q.renderProgress(title))
		sb.WriteString("\n\n")
		sb.WriteString(widgets.Loading(q.spinner, "Grading your answers..."))

	case nav.QuizResult:
		sb.WriteString(result.New(q.graded, title, q.width).View())

	case nav.QuizCompleted:
		sb.WriteString(styles.Title.Render(icons.CheckOK.String() + " " + title))
		sb.WriteString("\n")
		sb.WriteString(styles.StatusOK.Render("You have already completed this quiz."))
		sb.WriteString("\n")
		sb.WriteString(styles.Subtitle.Render("Tokens are awarded once per lesson. Pick another lesson to keep earning."))

	case nav.QuizFailed:
		sb.WriteString(styles.Title.Render(icons.Quiz.String() + " " + title))
		sb.WriteString("\n")
		switch {
		case !q.hasRef:
			sb.WriteString(styles.Subtitle.Render("No quiz selected"))
		case q.err != nil && q.submitted:
			sb.WriteString(styles.StatusCritical.Render("Could not submit answers: " + q.err.Error()))
		case q.err != nil:
			sb.WriteString(styles.StatusCritical.Render("Could not load quiz: " + q.err.Error()))
		default:
			sb.WriteString(styles.Subtitle.Render("This lesson has no quiz yet"))
		}
	}

	return sb.String()
}

// renderProgress draws the question counter and a step bar
func (q *Quiz) renderProgress(title string) string {
	width := max(q.width-1, 40)

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary)

	total := len(q.questions)
	current := q.step + 1
	if q.flow.Phase == nav.QuizSubmitting {
		current = total
	}

	label := fmt.Sprintf("Question %d of %d", current, total)

	// Progress bar line format: "│  " + bar + " │" = 5 chars overhead
	barWidth := width - 5
	filledWidth := 0
	if total > 0 {
		filledWidth = current * barWidth / total
	}
	filledBar := lipgloss.NewStyle().Foreground(styles.Primary).Render(strings.Repeat("━", filledWidth))
	emptyBar := lipgloss.NewStyle().Foreground(styles.Surface).Render(strings.Repeat("─", barWidth-filledWidth))

	shown := title
	if r := []rune(shown); len(r) > width-8 {
		shown = string(r[:width-11]) + "..."
	}
	topFill := max(0, width-5-lipgloss.Width(shown))
	top := "┌─ " + titleStyle.Render(shown) + " " + strings.Repeat("─", topFill) + "┐"

	labelLine := "│ " + label + strings.Repeat(" ", max(0, width-4-lipgloss.Width(label))) + " │"
	barLine := "│  " + filledBar + emptyBar + " │"
	bottom := "└" + strings.Repeat("─", width-2) + "┘"

	return borderStyle.Render(strings.Join([]string{top, labelLine, barLine, bottom}, "\n"))
}

// Help implements screen.Screen
func (q *Quiz) Help() []string {
	switch q.flow.Phase {
	case nav.QuizAnswering:
		return []string{"↑↓ Select", "Enter Confirm", "Esc Cancel"}
	case nav.QuizLoading, nav.QuizSubmitting:
		return []string{"b Back"}
	default:
		return []string{"l Lessons", "b Back", "m Menu"}
	}
}

// Capturing implements screen.Screen
func (q *Quiz) Capturing() bool {
	return q.flow.Phase == nav.QuizAnswering
}

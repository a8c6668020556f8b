// ABOUTME: Graded quiz view showing score, answer split, and tokens awarded
// ABOUTME: Pass state comes from the award, the score bar only marks the pass mark

package result

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/readsmvp/reads-cli/internal/client"
	"github.com/readsmvp/reads-cli/internal/tui/icons"
	"github.com/readsmvp/reads-cli/internal/tui/styles"
	"github.com/readsmvp/reads-cli/internal/tui/widgets"
)

// Result displays a graded submission
type Result struct {
	result *client.QuizResult
	title  string
	width  int
}

// New creates a result view
func New(result *client.QuizResult, lessonTitle string, width int) *Result {
	return &Result{
		result: result,
		title:  lessonTitle,
		width:  width,
	}
}

// View renders the result
func (r *Result) View() string {
	if r.result == nil {
		return "No result"
	}

	var sb strings.Builder
	res := r.result

	sb.WriteString(styles.Title.Render(icons.Trophy.String() + " Quiz result"))
	sb.WriteString("\n")
	if r.title != "" {
		sb.WriteString(styles.Subtitle.Render(r.title))
		sb.WriteString("\n")
	}

	sb.WriteString(widgets.ResultBadge(res.Passed()))
	sb.WriteString("\n\n")

	config := widgets.DefaultProgressBarConfig()
	config.Width = min(40, max(10, r.width-12))
	sb.WriteString(widgets.ProgressBarWithLabel(float64(res.Score), config))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  Correct: %s\n", styles.StatusOK.Render(fmt.Sprintf("%d", res.Correct))))
	wrongStyle := styles.StatusOK
	if res.Wrong > 0 {
		wrongStyle = styles.StatusCritical
	}
	sb.WriteString(fmt.Sprintf("  Wrong:   %s\n", wrongStyle.Render(fmt.Sprintf("%d", res.Wrong))))
	sb.WriteString("\n")

	if res.Passed() {
		sb.WriteString(styles.TokenStyle.Render(fmt.Sprintf("%s +%d $READS earned", icons.Token.String(), res.TokensAwarded)))
	} else {
		sb.WriteString(styles.StatusWarning.Render(fmt.Sprintf("No tokens this time. Score %d%% or more to earn $READS.", widgets.PassMark)))
	}
	sb.WriteString("\n")

	if res.Message != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.Subtitle.Render(res.Message))
	}

	return lipgloss.NewStyle().Width(r.width).Render(sb.String())
}

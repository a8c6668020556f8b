// ABOUTME: Create-lesson form for the admin lessons tab
// ABOUTME: Field validators share the client's validator tags so bad input never leaves the form

package admin

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/readsmvp/reads-cli/internal/client"
	"github.com/readsmvp/reads-cli/internal/tui/icons"
	"github.com/readsmvp/reads-cli/internal/tui/screen"
	"github.com/readsmvp/reads-cli/internal/tui/styles"
)

// lessonDraft holds form values as typed
type lessonDraft struct {
	category string
	title    string
	content  string
	videoURL string
	order    string
}

func field(name, tags string) func(string) error {
	return func(s string) error {
		return client.ValidateField(name, s, tags)
	}
}

func validateOrder(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("order must be a whole number")
	}
	if n < 0 {
		return errors.New("order must be 0 or more")
	}
	return nil
}

// input converts the draft into a lesson payload
func (d lessonDraft) input() client.LessonInput {
	order, _ := strconv.Atoi(strings.TrimSpace(d.order))
	return client.LessonInput{
		Category:   d.category,
		Title:      d.title,
		Content:    d.content,
		VideoURL:   d.videoURL,
		OrderIndex: order,
	}
}

// categoryNames lists known categories for input suggestions
func (a *Admin) categoryNames() []string {
	var names []string
	for _, l := range a.lessons {
		if l.Category != "" && !slices.Contains(names, l.Category) {
			names = append(names, l.Category)
		}
	}
	slices.Sort(names)
	return names
}

func (a *Admin) lessonForm() *huh.Form {
	a.draft = lessonDraft{order: "0"}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Category").
				Suggestions(a.categoryNames()).
				Value(&a.draft.category).
				Validate(field("category", "required")),
			huh.NewInput().
				Title("Title").
				Value(&a.draft.title).
				Validate(field("title", "required,max=200")),
			huh.NewText().
				Title("Content").
				Value(&a.draft.content).
				Validate(field("content", "required")),
			huh.NewInput().
				Title("Video URL").
				Placeholder("optional").
				Value(&a.draft.videoURL).
				Validate(field("video_url", "omitempty,url")),
			huh.NewInput().
				Title("Order").
				Value(&a.draft.order).
				Validate(validateOrder),
		).Title(icons.Lesson.String() + " New lesson"),
	).WithTheme(styles.FormTheme()).WithShowHelp(false)
}

func (a *Admin) updateForm(msg tea.Msg) (screen.Screen, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		a.form = nil
		return a, a.createLesson(a.draft.input())
	case huh.StateAborted:
		a.form = nil
		return a, nil
	}
	return a, cmd
}

func (a *Admin) createLesson(input client.LessonInput) tea.Cmd {
	return a.run(func(ctx context.Context) (string, error) {
		lesson, err := a.client.CreateLesson(ctx, input)
		if err != nil {
			return "", err
		}
		return "Created lesson " + lesson.Title, nil
	}, "")
}

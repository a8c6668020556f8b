// ABOUTME: Centrally owned navigation state for the TUI
// ABOUTME: One transition function updates the (section, sub-view, payload) triple

package nav

import "fmt"

// Section selects a top-level module of the app
type Section string

const (
	SectionAuth      Section = "auth"
	SectionDashboard Section = "dashboard"
	SectionLearn     Section = "learn"
	SectionWallet    Section = "wallet"
	SectionProfile   Section = "profile"
	SectionAdmin     Section = "admin"
)

// Sections lists the sections in menu order
var Sections = []Section{
	SectionDashboard,
	SectionLearn,
	SectionWallet,
	SectionProfile,
	SectionAdmin,
	SectionAuth,
}

// SubView disambiguates screens within a section
type SubView string

const (
	ViewNone       SubView = ""
	ViewLogin      SubView = "login"
	ViewSignup     SubView = "signup"
	ViewCategories SubView = "categories"
	ViewLessonList SubView = "list"
	ViewLesson     SubView = "detail"
	ViewQuiz       SubView = "quiz"
)

// defaultSubViews is the sub-view a section opens on
var defaultSubViews = map[Section]SubView{
	SectionAuth:  ViewLogin,
	SectionLearn: ViewCategories,
}

// DefaultSubView returns the entry sub-view for a section
func DefaultSubView(s Section) SubView {
	return defaultSubViews[s]
}

// State is what is on screen
type State struct {
	Section Section
	SubView SubView
	Payload Payload
}

// Route is a fully formed State built by one of the route constructors
type Route = State

// Valid reports whether the payload matches what the sub-view expects
func (s State) Valid() bool {
	return KindOf(s.Payload) == ExpectedPayload[s.SubView]
}

func (s State) String() string {
	out := string(s.Section)
	if s.SubView != ViewNone {
		out += "/" + string(s.SubView)
	}
	if s.Payload != nil {
		out += fmt.Sprintf(" %+v", s.Payload)
	}
	return out
}

// ToSection opens a section on its default sub-view
func ToSection(section Section) Route {
	return State{Section: section, SubView: DefaultSubView(section)}
}

// ToSignup opens the registration form
func ToSignup() Route {
	return State{Section: SectionAuth, SubView: ViewSignup}
}

// ToCategories opens the category index
func ToCategories() Route {
	return State{Section: SectionLearn, SubView: ViewCategories}
}

// ToLessonList opens the lessons of one category
func ToLessonList(category string) Route {
	return State{Section: SectionLearn, SubView: ViewLessonList, Payload: CategoryRef{Name: category}}
}

// ToLessonDetail opens one lesson
func ToLessonDetail(lessonID string) Route {
	return State{Section: SectionLearn, SubView: ViewLesson, Payload: LessonRef{ID: lessonID}}
}

// ToQuiz opens the quiz for a lesson
func ToQuiz(lessonID, lessonTitle string) Route {
	return State{Section: SectionLearn, SubView: ViewQuiz, Payload: QuizRef{LessonID: lessonID, LessonTitle: lessonTitle}}
}

// maxHistory bounds the back-stack
const maxHistory = 32

// Controller owns the current State and its history
type Controller struct {
	current State
	history []State
}

// NewController starts at the given route with no history
func NewController(start Route) *Controller {
	return &Controller{current: start}
}

// State returns what is on screen
func (c *Controller) State() State {
	return c.current
}

// Navigate replaces the current state. It never rejects a transition.
func (c *Controller) Navigate(section Section, subView SubView, payload Payload) {
	next := State{Section: section, SubView: subView, Payload: payload}
	if next == c.current {
		return
	}
	c.history = append(c.history, c.current)
	if len(c.history) > maxHistory {
		c.history = c.history[len(c.history)-maxHistory:]
	}
	c.current = next
}

// Go applies a route
func (c *Controller) Go(r Route) {
	c.Navigate(r.Section, r.SubView, r.Payload)
}

// Back returns to the previous state. It reports false when there is none.
func (c *Controller) Back() bool {
	if len(c.history) == 0 {
		return false
	}
	last := len(c.history) - 1
	c.current = c.history[last]
	c.history = c.history[:last]
	return true
}

// CanGoBack reports whether Back would change the state
func (c *Controller) CanGoBack() bool {
	return len(c.history) > 0
}

// Reset jumps to a route and forgets history, used on sign-in and sign-out
func (c *Controller) Reset(r Route) {
	c.current = r
	c.history = nil
}

// ABOUTME: Nested navigation inside the admin section
// ABOUTME: Tabs plus a list/quiz-form flow that resets when the tab changes

package nav

// AdminTab is one privileged resource
type AdminTab string

const (
	AdminUsers   AdminTab = "users"
	AdminLessons AdminTab = "lessons"
	AdminManage  AdminTab = "manage"
)

// AdminTabs lists tabs in display order
var AdminTabs = []AdminTab{AdminUsers, AdminLessons, AdminManage}

// AdminFlow is the local flow within the manage tab
type AdminFlow string

const (
	FlowList     AdminFlow = "list"
	FlowQuizForm AdminFlow = "quiz_form"
)

// AdminState is the admin section's own navigation triple
type AdminState struct {
	Tab     AdminTab
	Flow    AdminFlow
	Payload Payload
}

// NewAdminState opens on the users tab
func NewAdminState() AdminState {
	return AdminState{Tab: AdminUsers, Flow: FlowList}
}

// SwitchTab selects a tab. Moving to a different tab drops any open form.
func (a AdminState) SwitchTab(tab AdminTab) AdminState {
	if tab == a.Tab {
		return a
	}
	return AdminState{Tab: tab, Flow: FlowList}
}

// NextTab cycles forward through the tabs
func (a AdminState) NextTab() AdminState {
	for i, t := range AdminTabs {
		if t == a.Tab {
			return a.SwitchTab(AdminTabs[(i+1)%len(AdminTabs)])
		}
	}
	return a.SwitchTab(AdminTabs[0])
}

// OpenQuizForm opens the quiz editor for a lesson. Only the manage tab has
// an editor; elsewhere the state is unchanged.
func (a AdminState) OpenQuizForm(lessonID string) AdminState {
	if a.Tab != AdminManage {
		return a
	}
	a.Flow = FlowQuizForm
	a.Payload = LessonRef{ID: lessonID}
	return a
}

// BackToList closes the quiz editor
func (a AdminState) BackToList() AdminState {
	a.Flow = FlowList
	a.Payload = nil
	return a
}

// EditingLesson returns the lesson whose quiz is being edited
func (a AdminState) EditingLesson() (string, bool) {
	if a.Flow != FlowQuizForm {
		return "", false
	}
	ref, ok := a.Payload.(LessonRef)
	return ref.ID, ok
}

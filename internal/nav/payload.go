// ABOUTME: Typed payload variants carried between screens
// ABOUTME: Each sub-view accepts exactly one payload kind

package nav

// Payload is a sealed set of navigation payloads
type Payload interface {
	payloadKind() PayloadKind
}

// PayloadKind names a payload variant
type PayloadKind string

const (
	PayloadNone     PayloadKind = "none"
	PayloadCategory PayloadKind = "category"
	PayloadLesson   PayloadKind = "lesson"
	PayloadQuiz     PayloadKind = "quiz"
)

// CategoryRef selects a lesson category by name
type CategoryRef struct {
	Name string
}

// LessonRef selects a lesson by id
type LessonRef struct {
	ID string
}

// QuizRef selects a lesson's quiz and keeps its title for the header
type QuizRef struct {
	LessonID    string
	LessonTitle string
}

func (CategoryRef) payloadKind() PayloadKind { return PayloadCategory }
func (LessonRef) payloadKind() PayloadKind   { return PayloadLesson }
func (QuizRef) payloadKind() PayloadKind     { return PayloadQuiz }

// ExpectedPayload is the payload kind each sub-view accepts. Sub-views not
// listed take no payload.
var ExpectedPayload = map[SubView]PayloadKind{
	ViewNone:       PayloadNone,
	ViewLogin:      PayloadNone,
	ViewSignup:     PayloadNone,
	ViewCategories: PayloadNone,
	ViewLessonList: PayloadCategory,
	ViewLesson:     PayloadLesson,
	ViewQuiz:       PayloadQuiz,
}

// KindOf returns the variant of a payload, PayloadNone for nil
func KindOf(p Payload) PayloadKind {
	if p == nil {
		return PayloadNone
	}
	return p.payloadKind()
}

// PayloadOf extracts the payload of a state as T. It reports false when the
// payload is absent or a different variant, so destinations can render an
// empty state instead of failing.
func PayloadOf[T Payload](s State) (T, bool) {
	v, ok := s.Payload.(T)
	return v, ok
}

// ABOUTME: Phase machine for taking a quiz
// ABOUTME: loading -> answering -> submitting -> result, with terminal completed and failed

package nav

// QuizPhase is where a quiz attempt stands
type QuizPhase int

const (
	QuizLoading QuizPhase = iota
	QuizAnswering
	QuizSubmitting
	QuizResult
	QuizCompleted
	QuizFailed
)

func (p QuizPhase) String() string {
	switch p {
	case QuizLoading:
		return "loading"
	case QuizAnswering:
		return "answering"
	case QuizSubmitting:
		return "submitting"
	case QuizResult:
		return "result"
	case QuizCompleted:
		return "completed"
	case QuizFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition is possible
func (p QuizPhase) Terminal() bool {
	return p == QuizResult || p == QuizCompleted || p == QuizFailed
}

// QuizOutcome classifies the answer to a fetch or submit
type QuizOutcome int

const (
	OutcomeOK QuizOutcome = iota
	OutcomeAlreadyCompleted
	OutcomeError
)

// QuizFlow tracks one quiz attempt. The zero value is loading.
type QuizFlow struct {
	Phase QuizPhase
}

// Fetched applies the outcome of loading questions. An empty quiz is a
// failure since there is nothing to answer.
func (f QuizFlow) Fetched(outcome QuizOutcome, questions int) QuizFlow {
	if f.Phase != QuizLoading {
		return f
	}
	switch {
	case outcome == OutcomeAlreadyCompleted:
		f.Phase = QuizCompleted
	case outcome == OutcomeError || questions == 0:
		f.Phase = QuizFailed
	default:
		f.Phase = QuizAnswering
	}
	return f
}

// Submit moves from answering to submitting
func (f QuizFlow) Submit() QuizFlow {
	if f.Phase == QuizAnswering {
		f.Phase = QuizSubmitting
	}
	return f
}

// Graded applies the outcome of a submission
func (f QuizFlow) Graded(outcome QuizOutcome) QuizFlow {
	if f.Phase != QuizSubmitting {
		return f
	}
	switch outcome {
	case OutcomeOK:
		f.Phase = QuizResult
	case OutcomeAlreadyCompleted:
		f.Phase = QuizCompleted
	default:
		f.Phase = QuizFailed
	}
	return f
}

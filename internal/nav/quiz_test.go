// ABOUTME: Tests for the quiz phase machine
// ABOUTME: Already-completed is its own terminal outcome, separate from failure

package nav

import "testing"

func TestQuizFlow_HappyPath(t *testing.T) {
	var f QuizFlow
	if f.Phase != QuizLoading {
		t.Fatalf("expected loading, got %s", f.Phase)
	}
	f = f.Fetched(OutcomeOK, 3)
	if f.Phase != QuizAnswering {
		t.Fatalf("expected answering, got %s", f.Phase)
	}
	f = f.Submit()
	if f.Phase != QuizSubmitting {
		t.Fatalf("expected submitting, got %s", f.Phase)
	}
	f = f.Graded(OutcomeOK)
	if f.Phase != QuizResult || !f.Phase.Terminal() {
		t.Errorf("expected terminal result, got %s", f.Phase)
	}
}

func TestQuizFlow_FetchOutcomes(t *testing.T) {
	tests := []struct {
		name      string
		outcome   QuizOutcome
		questions int
		want      QuizPhase
	}{
		{"already completed", OutcomeAlreadyCompleted, 0, QuizCompleted},
		{"error", OutcomeError, 0, QuizFailed},
		{"empty quiz", OutcomeOK, 0, QuizFailed},
		{"questions", OutcomeOK, 5, QuizAnswering},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QuizFlow{}.Fetched(tt.outcome, tt.questions).Phase
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestQuizFlow_SubmitAlreadyCompleted(t *testing.T) {
	f := QuizFlow{}.Fetched(OutcomeOK, 2).Submit().Graded(OutcomeAlreadyCompleted)
	if f.Phase != QuizCompleted {
		t.Errorf("expected completed, got %s", f.Phase)
	}
}

func TestQuizFlow_TerminalPhasesIgnoreEvents(t *testing.T) {
	f := QuizFlow{}.Fetched(OutcomeAlreadyCompleted, 0)
	f = f.Fetched(OutcomeOK, 3).Submit().Graded(OutcomeOK)
	if f.Phase != QuizCompleted {
		t.Errorf("terminal phase changed to %s", f.Phase)
	}
}

func TestQuizFlow_SubmitRequiresAnswering(t *testing.T) {
	f := QuizFlow{}.Submit()
	if f.Phase != QuizLoading {
		t.Errorf("submit during loading should be ignored, got %s", f.Phase)
	}
}

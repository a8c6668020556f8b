// ABOUTME: Tests for client-side validation helpers
// ABOUTME: Messages name the offending field and carry the validation kind

package client

import "testing"

func TestValidateField(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		value   string
		tags    string
		wantErr string
	}{
		{"valid email", "email", "ada@example.com", "required,email", ""},
		{"bad email", "email", "ada", "required,email", "email must be a valid email address"},
		{"blank required", "name", "   ", "required", "name is required"},
		{"bad url", "video_url", "not a url", "omitempty,url", "video_url must be a valid URL"},
		{"empty optional url", "video_url", "", "omitempty,url", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateField(tc.field, tc.value, tc.tags)
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tc.wantErr {
				t.Errorf("expected %q, got %v", tc.wantErr, err)
			}
			if !IsValidation(err) {
				t.Errorf("expected validation kind, got %v", err)
			}
		})
	}
}

func TestValidateLesson(t *testing.T) {
	ok := LessonInput{Category: "CRYPTO", Title: "Keys", Content: "Body", OrderIndex: 1}
	if err := ValidateLesson(ok); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	bad := ok
	bad.Title = "  "
	bad.OrderIndex = -1
	err := ValidateLesson(bad)
	if err == nil || err.Error() != "title is required; order_index must be 0 or more" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateQuizLetters(t *testing.T) {
	upload := QuizUpload{
		LessonID: "l1",
		Questions: []QuestionInput{{
			Question:      "Pick one",
			Options:       []string{"a", "b", "c", "d"},
			CorrectOption: "e",
		}},
	}
	err := ValidateQuiz(upload)
	if err == nil || !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "questions[0].correct_option must be one of A, B, C, D" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
